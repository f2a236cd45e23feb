package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"inspector-chingum/internal/content"
	"inspector-chingum/internal/logger"
	"inspector-chingum/internal/whisper"
)

func (d *Dispatcher) handleCallback(ctx context.Context, query *tgbotapi.CallbackQuery) error {
	if query.From == nil {
		return nil
	}

	data := query.Data
	switch {
	case whisper.Recognized(data):
		return d.handleWhisperUnlock(query)
	case strings.HasPrefix(data, "mute_"), strings.HasPrefix(data, "ban_"), strings.HasPrefix(data, "forgive_"):
		return d.handleChallanResolve(ctx, query)
	default:
		// Unknown button: ack so the client spinner stops.
		if err := d.effects.AnswerCallback(query.ID, "", false); err != nil {
			logger.Warn().Err(err).Msg("ack unknown callback")
		}
		return nil
	}
}

// handleWhisperUnlock reveals a whisper to its addressed reader only. The
// reveal is an ephemeral alert; the carrying message is then edited to its
// expired state. A double-tap by the rightful reader can race the edit,
// which is accepted: the guarantee is at-most-reveal-once-to-the-right-party.
func (d *Dispatcher) handleWhisperUnlock(query *tgbotapi.CallbackQuery) error {
	token, err := whisper.Decode(query.Data)
	if err != nil {
		logger.Debug().Err(err).Msg("malformed whisper payload")
		return d.effects.AnswerCallback(query.ID, d.table.One(content.WhisperDenied), true)
	}

	if !token.Matches(query.From.UserName) {
		return d.effects.AnswerCallback(query.ID, d.table.One(content.WhisperDenied), true)
	}

	if err := d.effects.AnswerCallback(query.ID, token.Secret, true); err != nil {
		return fmt.Errorf("reveal whisper: %w", err)
	}

	if query.InlineMessageID != "" {
		expired := content.Fill(d.table.One(content.WhisperExpired), whisperHandle(token.Target))
		if err := d.effects.EditInlineMessage(query.InlineMessageID, expired); err != nil {
			logger.Warn().Err(err).Msg("expire whisper message")
		}
	}
	return nil
}

func whisperHandle(target string) string {
	return "@" + strings.TrimPrefix(target, "@")
}

// handleChallanResolve applies a pending moderation ticket. The clicker's
// admin status is checked fresh; a rejected attempt leaves the ticket open
// for another administrator. Concurrent resolutions are not serialized: the
// platform's message edit is the last-writer-wins arbiter.
func (d *Dispatcher) handleChallanResolve(ctx context.Context, query *tgbotapi.CallbackQuery) error {
	if query.Message == nil || query.Message.Chat == nil {
		return nil
	}
	chatID := query.Message.Chat.ID

	action, rawID, _ := strings.Cut(query.Data, "_")
	targetID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		logger.Debug().Str("data", query.Data).Msg("malformed challan payload")
		return d.effects.AnswerCallback(query.ID, "", false)
	}

	if !d.admins.IsAdministrator(ctx, chatID, query.From.ID) {
		return d.effects.AnswerCallback(query.ID, "Tu Inspector nahi hai! Hatt!", true)
	}

	switch action {
	case "mute":
		until := d.Now().Add(muteDuration)
		if err := d.effects.RestrictMember(chatID, targetID, until); err != nil {
			return fmt.Errorf("mute member: %w", err)
		}
		if err := d.effects.EditMessageText(chatID, query.Message.MessageID, d.table.One(content.ChallanPaid)); err != nil {
			logger.Warn().Err(err).Msg("edit challan to paid")
		}
	case "ban":
		if err := d.effects.BanMember(chatID, targetID); err != nil {
			return fmt.Errorf("ban member: %w", err)
		}
		if err := d.effects.EditMessageText(chatID, query.Message.MessageID, d.table.One(content.ChallanBanned)); err != nil {
			logger.Warn().Err(err).Msg("edit challan to banned")
		}
	case "forgive":
		if err := d.effects.EditMessageText(chatID, query.Message.MessageID, d.table.One(content.ChallanForgive)); err != nil {
			logger.Warn().Err(err).Msg("edit challan to pardoned")
		}
	}

	if err := d.effects.AnswerCallback(query.ID, "", false); err != nil {
		logger.Warn().Err(err).Msg("ack challan callback")
	}
	return nil
}
