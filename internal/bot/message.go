package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"inspector-chingum/internal/content"
	"inspector-chingum/internal/fortune"
	"inspector-chingum/internal/logger"
	"inspector-chingum/internal/model"
)

const (
	muteDuration   = 600 * time.Second
	saafDefault    = 5
	saafCeiling    = 50
	defaultAfkNote = "Sleeping"
)

func (d *Dispatcher) handleMessage(ctx context.Context, msg *tgbotapi.Message) error {
	if msg.From == nil || msg.Chat == nil {
		return nil
	}

	user, err := d.users.GetOrCreate(ctx, msg.From.ID, msg.From.FirstName)
	if err != nil {
		return fmt.Errorf("load user: %w", err)
	}
	group, err := d.groups.GetOrCreate(ctx, msg.Chat.ID)
	if err != nil {
		return fmt.Errorf("load group: %w", err)
	}

	// Section 144: while the chat is locked, non-admin messages are removed
	// and nothing else runs for this event.
	if group.LockedAll && !d.admins.IsAdministrator(ctx, msg.Chat.ID, msg.From.ID) {
		if err := d.effects.DeleteMessage(msg.Chat.ID, msg.MessageID); err != nil {
			logger.Warn().Err(err).Int64("chat", msg.Chat.ID).Msg("delete locked message")
		}
		return nil
	}

	if user.IsAfk {
		user.IsAfk = false
		user.AfkReason = ""
		if err := d.users.Save(ctx, user); err != nil {
			return fmt.Errorf("clear afk: %w", err)
		}
		d.announceReturn(ctx, msg.Chat.ID, msg.From)
	}

	// Mention-based "this user is AFK" detection needs reliable
	// mention-to-id resolution, which the platform does not give us for
	// plain @mentions. Out of scope.

	d.welcomeNewMembers(msg)

	switch cmd := parseCommand(msg.Text); cmd.kind {
	case cmdChallan:
		return d.handleChallan(ctx, msg, group)
	case cmdLock:
		return d.handleLock(ctx, msg, group, true)
	case cmdUnlock:
		return d.handleLock(ctx, msg, group, false)
	case cmdShout:
		return d.handleShout(msg, cmd.args)
	case cmdConfess:
		return d.handleConfess(ctx, msg, group, cmd.args)
	case cmdKismat:
		return d.handleKismat(ctx, msg, user, group)
	case cmdAukaat:
		return d.handleAukaat(msg)
	case cmdAfk:
		return d.handleAfk(ctx, msg, user, cmd.args)
	case cmdSaaf:
		return d.handleSaaf(ctx, msg, cmd.args)
	case cmdJhatka:
		return d.handleJhatka(ctx, msg)
	case cmdBirthday:
		return d.handleBirthday(ctx, msg, user, cmd.args)
	case cmdUnknown:
		return nil
	}
	return nil
}

func (d *Dispatcher) announceReturn(ctx context.Context, chatID int64, from *tgbotapi.User) {
	var text string
	if d.admins.IsAdministrator(ctx, chatID, from.ID) {
		text = content.Fill(d.table.One(content.AdminReturn), from.FirstName)
	} else {
		text = content.Fill(d.table.Random(content.AfkReturns), from.FirstName)
	}
	if _, err := d.effects.SendMessage(chatID, text); err != nil {
		logger.Warn().Err(err).Int64("chat", chatID).Msg("announce return")
	}
}

func (d *Dispatcher) welcomeNewMembers(msg *tgbotapi.Message) {
	for _, member := range msg.NewChatMembers {
		if member.IsBot {
			continue
		}
		text := content.Fill(d.table.Random(content.WelcomeMessage), member.FirstName)
		if _, err := d.effects.SendMessage(msg.Chat.ID, text); err != nil {
			logger.Warn().Err(err).Int64("chat", msg.Chat.ID).Msg("welcome member")
		}
	}
}

// handleChallan issues a moderation ticket against the replied-to user,
// with mute/ban/forgive buttons resolved later via callback.
func (d *Dispatcher) handleChallan(ctx context.Context, msg *tgbotapi.Message, group *model.Group) error {
	if msg.ReplyToMessage == nil || msg.ReplyToMessage.From == nil || !group.ChallanEnabled {
		return nil
	}
	// Checked live, never cached: admin status can change between events.
	if !d.admins.IsAdministrator(ctx, msg.Chat.ID, msg.From.ID) {
		return nil
	}

	target := msg.ReplyToMessage.From
	intro := content.Fill(d.table.One(content.ChallanIntro), target.FirstName)
	text := fmt.Sprintf("%s\n🛑 **Offense:** %s", intro, d.table.One(content.ChallanOffense))

	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🤫 Mute (10m)", fmt.Sprintf("mute_%d", target.ID)),
			tgbotapi.NewInlineKeyboardButtonData("🔨 Ban", fmt.Sprintf("ban_%d", target.ID)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("😂 Maafi (Forgive)", fmt.Sprintf("forgive_%d", target.ID)),
		),
	)

	if _, err := d.effects.SendMessageWithKeyboard(msg.Chat.ID, text, keyboard); err != nil {
		return fmt.Errorf("post challan: %w", err)
	}
	return nil
}

func (d *Dispatcher) handleLock(ctx context.Context, msg *tgbotapi.Message, group *model.Group, lock bool) error {
	if !d.admins.IsAdministrator(ctx, msg.Chat.ID, msg.From.ID) {
		return nil
	}

	group.LockedAll = lock
	if err := d.groups.Save(ctx, group); err != nil {
		return fmt.Errorf("save lock state: %w", err)
	}

	announcement := d.table.One(content.Section144)
	if !lock {
		announcement = d.table.One(content.Section144Off)
	}
	if _, err := d.effects.SendMessage(msg.Chat.ID, announcement); err != nil {
		logger.Warn().Err(err).Int64("chat", msg.Chat.ID).Msg("announce lock")
	}
	return nil
}

// handleShout deletes the invoking message and reposts the text anonymously.
func (d *Dispatcher) handleShout(msg *tgbotapi.Message, text string) error {
	if text == "" {
		return nil
	}
	if err := d.effects.DeleteMessage(msg.Chat.ID, msg.MessageID); err != nil {
		logger.Warn().Err(err).Int64("chat", msg.Chat.ID).Msg("delete shout source")
	}
	header := d.table.Random(content.ShoutIntros)
	if _, err := d.effects.SendMessage(msg.Chat.ID, fmt.Sprintf("%s\n\n\"%s\"", header, text)); err != nil {
		return fmt.Errorf("post shout: %w", err)
	}
	return nil
}

// handleConfess posts an anonymous confession, retiring the previous one so
// at most one stays live per group. Deleting the old confession is
// best-effort: an already-gone or too-old message is tolerated.
func (d *Dispatcher) handleConfess(ctx context.Context, msg *tgbotapi.Message, group *model.Group, text string) error {
	if text == "" || !group.ConfessEnabled {
		return nil
	}

	if err := d.effects.DeleteMessage(msg.Chat.ID, msg.MessageID); err != nil {
		logger.Warn().Err(err).Int64("chat", msg.Chat.ID).Msg("delete confess source")
	}

	if group.LastConfessionID != 0 {
		if err := d.effects.DeleteMessage(msg.Chat.ID, group.LastConfessionID); err != nil {
			logger.Debug().Err(err).Int("message", group.LastConfessionID).Msg("previous confession already gone")
		}
	}

	body := fmt.Sprintf("%s\n\n\"%s\"\n\n*(Purana paap mit gaya, naya aa gaya)*", d.table.One(content.ConfessHeader), text)
	messageID, err := d.effects.SendMessage(msg.Chat.ID, body)
	if err != nil {
		return fmt.Errorf("post confession: %w", err)
	}

	group.LastConfessionID = messageID
	if err := d.groups.Save(ctx, group); err != nil {
		return fmt.Errorf("save confession id: %w", err)
	}
	return nil
}

// handleKismat shows the daily fortune. Plain invocation scores the sender
// and records today's usage; as a reply it shows the replied-to user's
// reading, but only once they have checked it themselves today.
func (d *Dispatcher) handleKismat(ctx context.Context, msg *tgbotapi.Message, user *model.User, group *model.Group) error {
	if !group.KismatEnabled {
		return nil
	}

	today := fortune.Day(d.Now())
	subject := msg.From
	isReply := false

	if msg.ReplyToMessage != nil && msg.ReplyToMessage.From != nil {
		subject = msg.ReplyToMessage.From
		isReply = true

		target, err := d.users.GetOrCreate(ctx, subject.ID, subject.FirstName)
		if err != nil {
			return fmt.Errorf("load kismat target: %w", err)
		}
		if target.KismatUsed != today {
			if _, err := d.effects.SendMessage(msg.Chat.ID, d.table.One(content.KismatWait)); err != nil {
				logger.Warn().Err(err).Int64("chat", msg.Chat.ID).Msg("send kismat guidance")
			}
			return nil
		}
	}

	reading := fortune.Read(subject.ID, today)

	var pool string
	switch reading.Band() {
	case fortune.BandBad:
		pool = content.KismatBad
	case fortune.BandAverage:
		pool = content.KismatAvg
	default:
		pool = content.KismatGood
	}
	verdict := d.table.Pick(pool, reading.Score)
	totka := d.table.Pick(content.Totka, reading.RemedyRoll)

	text := fmt.Sprintf("🔮 **Kismat: %s**\n📊 Score: %d%%\n💬 \"%s\"\n🍀 Totka: %s",
		subject.FirstName, reading.Score, verdict, totka)
	if _, err := d.effects.SendMessage(msg.Chat.ID, text); err != nil {
		return fmt.Errorf("post kismat: %w", err)
	}

	// Only the plain form records usage, for the sender. Writing today's
	// date twice is harmless.
	if !isReply {
		user.KismatUsed = today
		if err := d.users.Save(ctx, user); err != nil {
			return fmt.Errorf("record kismat usage: %w", err)
		}
	}
	return nil
}

func (d *Dispatcher) handleAukaat(msg *tgbotapi.Message) error {
	item := d.table.Random(content.AukaatValues)
	text := fmt.Sprintf("💰 **Market Value of %s:**\n👉 %s", msg.From.FirstName, item)
	if _, err := d.effects.SendMessage(msg.Chat.ID, text); err != nil {
		return fmt.Errorf("post aukaat: %w", err)
	}
	return nil
}

func (d *Dispatcher) handleAfk(ctx context.Context, msg *tgbotapi.Message, user *model.User, reason string) error {
	if reason == "" {
		reason = defaultAfkNote
	}
	now := d.Now()
	user.IsAfk = true
	user.AfkReason = reason
	user.AfkSince = &now
	if err := d.users.Save(ctx, user); err != nil {
		return fmt.Errorf("set afk: %w", err)
	}

	text := fmt.Sprintf(content.Fill(d.table.One(content.AfkSet), msg.From.FirstName), reason)
	if _, err := d.effects.SendMessage(msg.Chat.ID, text); err != nil {
		logger.Warn().Err(err).Int64("chat", msg.Chat.ID).Msg("announce afk")
	}
	return nil
}

// handleSaaf bulk-deletes recent messages by walking ids downward from the
// invoking message. Best-effort, not transactional: the first failure stops
// the sweep.
func (d *Dispatcher) handleSaaf(ctx context.Context, msg *tgbotapi.Message, args string) error {
	if !d.admins.IsAdministrator(ctx, msg.Chat.ID, msg.From.ID) {
		return nil
	}

	count := saafDefault
	if args != "" {
		if n, err := strconv.Atoi(strings.Fields(args)[0]); err == nil && n > 0 {
			count = n
		}
	}
	if count > saafCeiling {
		count = saafCeiling
	}

	for i := 0; i < count; i++ {
		if err := d.effects.DeleteMessage(msg.Chat.ID, msg.MessageID-i); err != nil {
			if _, err := d.effects.SendMessage(msg.Chat.ID, d.table.One(content.SaafTooOld)); err != nil {
				logger.Warn().Err(err).Int64("chat", msg.Chat.ID).Msg("send saaf notice")
			}
			break
		}
	}
	return nil
}

// handleJhatka posts a fake ban and schedules the reveal edit. The deferred
// edit is best-effort and non-durable.
func (d *Dispatcher) handleJhatka(ctx context.Context, msg *tgbotapi.Message) error {
	if msg.ReplyToMessage == nil {
		return nil
	}
	if !d.admins.IsAdministrator(ctx, msg.Chat.ID, msg.From.ID) {
		return nil
	}

	messageID, err := d.effects.SendMessage(msg.Chat.ID, d.table.One(content.JhatkaBan))
	if err != nil {
		return fmt.Errorf("post jhatka: %w", err)
	}

	chatID := msg.Chat.ID
	reveal := d.table.One(content.JhatkaReveal)
	if err := d.sched.Once(d.revealDelay, func() {
		if err := d.effects.EditMessageText(chatID, messageID, reveal); err != nil {
			logger.Warn().Err(err).Int64("chat", chatID).Msg("jhatka reveal")
		}
	}); err != nil {
		return fmt.Errorf("schedule jhatka reveal: %w", err)
	}
	return nil
}

func (d *Dispatcher) handleBirthday(ctx context.Context, msg *tgbotapi.Message, user *model.User, args string) error {
	parsed, err := time.Parse("02-01", args)
	if err != nil {
		if _, err := d.effects.SendMessage(msg.Chat.ID, "🎂 Aise: /birthday DD-MM (jaise /birthday 07-03)"); err != nil {
			logger.Warn().Err(err).Int64("chat", msg.Chat.ID).Msg("send birthday usage")
		}
		return nil
	}

	user.Birthday = parsed.Format("02-01")
	if err := d.users.Save(ctx, user); err != nil {
		return fmt.Errorf("save birthday: %w", err)
	}

	text := fmt.Sprintf("🎂 **Noted!**\n%s ka birthday: %s. Inspector yaad rakhega.", msg.From.FirstName, user.Birthday)
	if _, err := d.effects.SendMessage(msg.Chat.ID, text); err != nil {
		logger.Warn().Err(err).Int64("chat", msg.Chat.ID).Msg("confirm birthday")
	}
	return nil
}
