package bot

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"inspector-chingum/internal/logger"
)

// TelegramGateway implements Effects and AdminChecker over the Bot API.
type TelegramGateway struct {
	api *tgbotapi.BotAPI
}

func NewTelegramGateway(api *tgbotapi.BotAPI) *TelegramGateway {
	return &TelegramGateway{api: api}
}

// IsAdministrator asks the platform for the user's current status in the
// chat. Fail-closed: any transport failure reads as "not an administrator".
func (g *TelegramGateway) IsAdministrator(ctx context.Context, chatID, userID int64) bool {
	member, err := g.api.GetChatMember(tgbotapi.GetChatMemberConfig{
		ChatConfigWithUser: tgbotapi.ChatConfigWithUser{
			ChatID: chatID,
			UserID: userID,
		},
	})
	if err != nil {
		logger.Debug().Err(err).Int64("chat", chatID).Int64("user", userID).Msg("admin check failed")
		return false
	}
	return member.IsCreator() || member.IsAdministrator()
}

func (g *TelegramGateway) SendMessage(chatID int64, text string) (int, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	sent, err := g.api.Send(msg)
	if err != nil {
		return 0, err
	}
	return sent.MessageID, nil
}

func (g *TelegramGateway) SendMessageWithKeyboard(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) (int, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.ReplyMarkup = keyboard
	sent, err := g.api.Send(msg)
	if err != nil {
		return 0, err
	}
	return sent.MessageID, nil
}

func (g *TelegramGateway) EditMessageText(chatID int64, messageID int, text string) error {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	edit.ParseMode = tgbotapi.ModeMarkdown
	_, err := g.api.Send(edit)
	return err
}

func (g *TelegramGateway) EditInlineMessage(inlineMessageID, text string) error {
	edit := tgbotapi.EditMessageTextConfig{
		BaseEdit: tgbotapi.BaseEdit{InlineMessageID: inlineMessageID},
		Text:     text,
	}
	edit.ParseMode = tgbotapi.ModeMarkdown
	_, err := g.api.Request(edit)
	return err
}

func (g *TelegramGateway) DeleteMessage(chatID int64, messageID int) error {
	_, err := g.api.Request(tgbotapi.NewDeleteMessage(chatID, messageID))
	return err
}

func (g *TelegramGateway) AnswerCallback(callbackID, text string, showAlert bool) error {
	callback := tgbotapi.NewCallback(callbackID, text)
	if showAlert {
		callback = tgbotapi.NewCallbackWithAlert(callbackID, text)
	}
	_, err := g.api.Request(callback)
	return err
}

func (g *TelegramGateway) AnswerInlineQuery(queryID string, results []interface{}) error {
	_, err := g.api.Request(tgbotapi.InlineConfig{
		InlineQueryID: queryID,
		Results:       results,
		CacheTime:     0,
	})
	return err
}

func (g *TelegramGateway) RestrictMember(chatID, userID int64, until time.Time) error {
	_, err := g.api.Request(tgbotapi.RestrictChatMemberConfig{
		ChatMemberConfig: tgbotapi.ChatMemberConfig{
			ChatID: chatID,
			UserID: userID,
		},
		UntilDate: until.Unix(),
		Permissions: &tgbotapi.ChatPermissions{
			CanSendMessages: false,
		},
	})
	return err
}

func (g *TelegramGateway) BanMember(chatID, userID int64) error {
	_, err := g.api.Request(tgbotapi.BanChatMemberConfig{
		ChatMemberConfig: tgbotapi.ChatMemberConfig{
			ChatID: chatID,
			UserID: userID,
		},
	})
	return err
}
