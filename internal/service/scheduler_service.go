package service

import (
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// SchedulerService wraps cron for deferred one-shot effects, like the
// fake-ban reveal. Delivery is best-effort: entries live in-process and die
// with it, so a scheduled job is not durable across restarts.
type SchedulerService struct {
	cron *cron.Cron
	mu   sync.Mutex
}

func NewSchedulerService(loc *time.Location) *SchedulerService {
	return &SchedulerService{
		cron: cron.New(cron.WithLocation(loc), cron.WithSeconds()),
	}
}

// Once runs job a single time after the given delay and then removes the
// entry. Pending entries are cancelled by Stop.
func (s *SchedulerService) Once(delay time.Duration, job func()) error {
	seconds := int(delay.Seconds())
	if seconds <= 0 {
		seconds = 1
	}
	spec := fmt.Sprintf("@every %ds", seconds)

	s.mu.Lock()
	defer s.mu.Unlock()

	var id cron.EntryID
	var fired sync.Once
	id, err := s.cron.AddFunc(spec, func() {
		fired.Do(func() {
			defer s.cron.Remove(id)
			job()
		})
	})
	if err != nil {
		return fmt.Errorf("schedule one-shot: %w", err)
	}
	return nil
}

func (s *SchedulerService) Start() {
	s.cron.Start()
}

// Stop cancels pending entries and waits for running jobs to finish.
func (s *SchedulerService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
