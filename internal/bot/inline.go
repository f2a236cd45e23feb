package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"inspector-chingum/internal/whisper"
)

const whisperWord = "whisper"

// handleInlineQuery composes a whisper from "whisper @target secret words".
// The preview never shows the secret; it travels transport-encoded in the
// unlock button's payload. Unrecognized queries are silently ignored.
func (d *Dispatcher) handleInlineQuery(ctx context.Context, query *tgbotapi.InlineQuery) error {
	fields := strings.Fields(query.Query)
	if len(fields) < 3 || fields[0] != whisperWord {
		return nil
	}

	target := fields[1]
	secret := strings.Join(fields[2:], " ")

	preview := fmt.Sprintf("🔒 **GUPT SANDESH (WHISPER)**\n\n👤 **To:** %s\n📨 **From:** Anonymous\n\n*Tap below to read.*", target)

	article := tgbotapi.NewInlineQueryResultArticleMarkdown(whisper.Distinguisher(), "🤫 Send Whisper", preview)
	article.Description = fmt.Sprintf("Secret message for %s", target)
	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔐 Unlock Message", whisper.Encode(target, secret)),
		),
	)
	article.ReplyMarkup = &keyboard

	// Zero cache lifetime: every query is composed fresh.
	if err := d.effects.AnswerInlineQuery(query.ID, []interface{}{article}); err != nil {
		return fmt.Errorf("answer whisper query: %w", err)
	}
	return nil
}
