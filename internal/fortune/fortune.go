// Package fortune implements the date-seeded kismat scorer. The reading is
// a pure function of (subject id, calendar day): same inputs, same output.
package fortune

import (
	"crypto/md5"
	"fmt"
	"time"
)

// Band classifies a score into a verdict pool.
type Band int

const (
	BandBad     Band = iota // score < 30
	BandAverage             // 30 <= score < 70
	BandGood                // score >= 70
)

// Reading is one day's fortune for a subject.
type Reading struct {
	// Score in [0, 100].
	Score int
	// RemedyRoll in [0, 255]; reduced modulo the remedy pool length by the
	// caller.
	RemedyRoll int
}

// Day formats the calendar day used as the seed's date component (UTC).
func Day(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Read computes the reading for a subject on a given day.
func Read(subjectID int64, day string) Reading {
	seed := fmt.Sprintf("%d-%s", subjectID, day)
	sum := md5.Sum([]byte(seed))
	return Reading{
		Score:      int(sum[0]) % 101,
		RemedyRoll: int(sum[1]),
	}
}

// Band returns the verdict band for the reading's score.
func (r Reading) Band() Band {
	switch {
	case r.Score < 30:
		return BandBad
	case r.Score < 70:
		return BandAverage
	default:
		return BandGood
	}
}
