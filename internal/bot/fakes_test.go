package bot

import (
	"context"
	"strings"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"inspector-chingum/internal/content"
	"inspector-chingum/internal/model"
)

type fakeUserStore struct {
	users map[int64]*model.User
	saves int
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[int64]*model.User)}
}

func (s *fakeUserStore) GetOrCreate(_ context.Context, telegramID int64, name string) (*model.User, error) {
	if user, ok := s.users[telegramID]; ok {
		if name != "" {
			user.Name = name
		}
		return user, nil
	}
	user := &model.User{TelegramID: telegramID, Name: name}
	s.users[telegramID] = user
	return user, nil
}

func (s *fakeUserStore) Save(_ context.Context, user *model.User) error {
	s.saves++
	s.users[user.TelegramID] = user
	return nil
}

type fakeGroupStore struct {
	groups map[int64]*model.Group
	saves  int
}

func newFakeGroupStore() *fakeGroupStore {
	return &fakeGroupStore{groups: make(map[int64]*model.Group)}
}

func (s *fakeGroupStore) GetOrCreate(_ context.Context, chatID int64) (*model.Group, error) {
	if group, ok := s.groups[chatID]; ok {
		return group, nil
	}
	group := &model.Group{
		ChatID:         chatID,
		RoastEnabled:   true,
		KismatEnabled:  true,
		ConfessEnabled: true,
		ChallanEnabled: true,
	}
	s.groups[chatID] = group
	return group, nil
}

func (s *fakeGroupStore) Save(_ context.Context, group *model.Group) error {
	s.saves++
	s.groups[group.ChatID] = group
	return nil
}

type fakeAdmins struct {
	ids map[int64]bool
}

func (a *fakeAdmins) IsAdministrator(_ context.Context, _ int64, userID int64) bool {
	return a.ids[userID]
}

type sentMessage struct {
	chatID   int64
	text     string
	keyboard *tgbotapi.InlineKeyboardMarkup
}

type editedMessage struct {
	chatID    int64
	messageID int
	text      string
}

type deletion struct {
	chatID    int64
	messageID int
}

type callbackAnswer struct {
	id    string
	text  string
	alert bool
}

type restriction struct {
	chatID int64
	userID int64
	until  time.Time
}

type banAction struct {
	chatID int64
	userID int64
}

type fakeEffects struct {
	nextMessageID int

	sent          []sentMessage
	edits         []editedMessage
	inlineEdits   map[string]string
	deleted       []deletion
	deleteErr     map[int]error
	callbacks     []callbackAnswer
	inlineAnswers map[string][]interface{}
	restricted    []restriction
	banned        []banAction
}

func newFakeEffects() *fakeEffects {
	return &fakeEffects{
		nextMessageID: 500,
		inlineEdits:   make(map[string]string),
		deleteErr:     make(map[int]error),
		inlineAnswers: make(map[string][]interface{}),
	}
}

func (e *fakeEffects) SendMessage(chatID int64, text string) (int, error) {
	e.nextMessageID++
	e.sent = append(e.sent, sentMessage{chatID: chatID, text: text})
	return e.nextMessageID, nil
}

func (e *fakeEffects) SendMessageWithKeyboard(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) (int, error) {
	e.nextMessageID++
	e.sent = append(e.sent, sentMessage{chatID: chatID, text: text, keyboard: &keyboard})
	return e.nextMessageID, nil
}

func (e *fakeEffects) EditMessageText(chatID int64, messageID int, text string) error {
	e.edits = append(e.edits, editedMessage{chatID: chatID, messageID: messageID, text: text})
	return nil
}

func (e *fakeEffects) EditInlineMessage(inlineMessageID, text string) error {
	e.inlineEdits[inlineMessageID] = text
	return nil
}

func (e *fakeEffects) DeleteMessage(chatID int64, messageID int) error {
	if err, ok := e.deleteErr[messageID]; ok {
		return err
	}
	e.deleted = append(e.deleted, deletion{chatID: chatID, messageID: messageID})
	return nil
}

func (e *fakeEffects) AnswerCallback(callbackID, text string, showAlert bool) error {
	e.callbacks = append(e.callbacks, callbackAnswer{id: callbackID, text: text, alert: showAlert})
	return nil
}

func (e *fakeEffects) AnswerInlineQuery(queryID string, results []interface{}) error {
	e.inlineAnswers[queryID] = results
	return nil
}

func (e *fakeEffects) RestrictMember(chatID, userID int64, until time.Time) error {
	e.restricted = append(e.restricted, restriction{chatID: chatID, userID: userID, until: until})
	return nil
}

func (e *fakeEffects) BanMember(chatID, userID int64) error {
	e.banned = append(e.banned, banAction{chatID: chatID, userID: userID})
	return nil
}

func (e *fakeEffects) allTexts() string {
	var texts []string
	for _, msg := range e.sent {
		texts = append(texts, msg.text)
	}
	return strings.Join(texts, "\n---\n")
}

type fakeScheduler struct {
	delays []time.Duration
	jobs   []func()
}

func (s *fakeScheduler) Once(delay time.Duration, job func()) error {
	s.delays = append(s.delays, delay)
	s.jobs = append(s.jobs, job)
	return nil
}

type fixtures struct {
	users   *fakeUserStore
	groups  *fakeGroupStore
	admins  *fakeAdmins
	effects *fakeEffects
	sched   *fakeScheduler
	now     time.Time
}

func newTestDispatcher(t *testing.T, adminIDs ...int64) (*Dispatcher, *fixtures) {
	t.Helper()

	f := &fixtures{
		users:   newFakeUserStore(),
		groups:  newFakeGroupStore(),
		admins:  &fakeAdmins{ids: make(map[int64]bool)},
		effects: newFakeEffects(),
		sched:   &fakeScheduler{},
		now:     time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC),
	}
	for _, id := range adminIDs {
		f.admins.ids[id] = true
	}

	d := NewDispatcher(f.users, f.groups, f.admins, f.effects, content.Default(), f.sched, 4*time.Second)
	d.Now = func() time.Time { return f.now }
	return d, f
}

func groupMessage(chatID, userID int64, name, text string) *tgbotapi.Message {
	return &tgbotapi.Message{
		MessageID: 100,
		From:      &tgbotapi.User{ID: userID, FirstName: name, UserName: strings.ToLower(name)},
		Chat:      &tgbotapi.Chat{ID: chatID},
		Text:      text,
	}
}

func replyMessage(chatID, userID int64, name, text string, target *tgbotapi.User) *tgbotapi.Message {
	msg := groupMessage(chatID, userID, name, text)
	msg.ReplyToMessage = &tgbotapi.Message{
		MessageID: 90,
		From:      target,
		Chat:      &tgbotapi.Chat{ID: chatID},
	}
	return msg
}
