// Package bot classifies inbound Telegram updates and runs the command and
// action handlers. Each update is handled as an independent invocation: all
// cross-event state lives in the store, and handler failures never escape
// the router so the webhook can always acknowledge delivery.
package bot

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"inspector-chingum/internal/content"
	"inspector-chingum/internal/logger"
	"inspector-chingum/internal/model"
)

// UserStore is the per-user slice of the state store gateway.
type UserStore interface {
	GetOrCreate(ctx context.Context, telegramID int64, name string) (*model.User, error)
	Save(ctx context.Context, user *model.User) error
}

// GroupStore is the per-group slice of the state store gateway.
type GroupStore interface {
	GetOrCreate(ctx context.Context, chatID int64) (*model.Group, error)
	Save(ctx context.Context, group *model.Group) error
}

// AdminChecker answers live admin-privilege queries. Implementations must
// fail closed: any transport failure reads as "not an administrator".
type AdminChecker interface {
	IsAdministrator(ctx context.Context, chatID, userID int64) bool
}

// Effects is the outbound platform surface consumed by handlers.
type Effects interface {
	SendMessage(chatID int64, text string) (messageID int, err error)
	SendMessageWithKeyboard(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) (messageID int, err error)
	EditMessageText(chatID int64, messageID int, text string) error
	EditInlineMessage(inlineMessageID, text string) error
	DeleteMessage(chatID int64, messageID int) error
	AnswerCallback(callbackID, text string, showAlert bool) error
	AnswerInlineQuery(queryID string, results []interface{}) error
	RestrictMember(chatID, userID int64, until time.Time) error
	BanMember(chatID, userID int64) error
}

// Scheduler defers a one-shot effect. Best-effort: the job may never fire if
// the process is torn down first.
type Scheduler interface {
	Once(delay time.Duration, job func()) error
}

// Dispatcher routes updates to handlers and owns their collaborators.
type Dispatcher struct {
	users   UserStore
	groups  GroupStore
	admins  AdminChecker
	effects Effects
	table   *content.Table
	sched   Scheduler

	revealDelay time.Duration

	// Now is the clock used for AFK timestamps, fortune days and mute
	// durations. Overridable in tests.
	Now func() time.Time
}

func NewDispatcher(users UserStore, groups GroupStore, admins AdminChecker, effects Effects, table *content.Table, sched Scheduler, revealDelay time.Duration) *Dispatcher {
	return &Dispatcher{
		users:       users,
		groups:      groups,
		admins:      admins,
		effects:     effects,
		table:       table,
		sched:       sched,
		revealDelay: revealDelay,
		Now:         time.Now,
	}
}

// HandleUpdate classifies one update and dispatches it. Categories are
// mutually exclusive in the platform's event shape; first match wins.
// Never panics or returns an error: the webhook reports success regardless,
// to defeat redelivery storms.
func (d *Dispatcher) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error().Interface("panic", r).Msg("handler panicked")
		}
	}()

	var err error
	switch {
	case update.InlineQuery != nil:
		err = d.handleInlineQuery(ctx, update.InlineQuery)
	case update.CallbackQuery != nil:
		err = d.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil:
		err = d.handleMessage(ctx, update.Message)
	case update.EditedMessage != nil:
		err = d.handleEditedMessage(update.EditedMessage)
	}
	if err != nil {
		logger.Error().Err(err).Msg("handle update")
	}
}

// handleEditedMessage is the ghost-edit detector. The platform does not
// supply the prior text, so detection is presence-only.
func (d *Dispatcher) handleEditedMessage(msg *tgbotapi.Message) error {
	if msg.From == nil || msg.Chat == nil {
		return nil
	}
	name := msg.From.UserName
	if name == "" {
		name = msg.From.FirstName
	}
	text := "📸 **CAUGHT IN 4K!**\n@" + name + " just edited a message.\n*Doghla-pan mat kar!*"
	if _, err := d.effects.SendMessage(msg.Chat.ID, text); err != nil {
		logger.Warn().Err(err).Int64("chat", msg.Chat.ID).Msg("announce edit")
	}
	return nil
}
