package telegram

import (
	"context"
	"errors"
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lashon-study/lashon/internal/progress"
	"github.com/lashon-study/lashon/internal/quiz"
	"github.com/lashon-study/lashon/internal/record"
	"github.com/lashon-study/lashon/internal/store"
	"github.com/lashon-study/lashon/internal/vocab"
)

type fakeSender struct {
	sent      []tgbotapi.Chattable
	callbacks []tgbotapi.CallbackConfig
	err       error
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.sent = append(f.sent, c)
	return tgbotapi.Message{MessageID: len(f.sent)}, f.err
}

func (f *fakeSender) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	if cb, ok := c.(tgbotapi.CallbackConfig); ok {
		f.callbacks = append(f.callbacks, cb)
	}
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakeSender) lastText(t *testing.T) string {
	t.Helper()
	require.NotEmpty(t, f.sent)
	switch m := f.sent[len(f.sent)-1].(type) {
	case tgbotapi.MessageConfig:
		return m.Text
	case tgbotapi.EditMessageTextConfig:
		return m.Text
	}
	t.Fatalf("unexpected chattable %T", f.sent[len(f.sent)-1])
	return ""
}

type fakeResults struct {
	saved []store.Result
	err   error
}

func (f *fakeResults) Append(_ context.Context, r store.Result) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.saved = append(f.saved, r)
	return int64(len(f.saved)), nil
}

func (f *fakeResults) Recent(context.Context, int) ([]store.Result, error) { return f.saved, nil }

func (f *fakeResults) Stats(context.Context, string) (store.ResultStats, error) {
	var st store.ResultStats
	for _, r := range f.saved {
		st.Count++
		st.Correct += r.Correct
		st.Total += r.Total
	}
	return st, f.err
}

var fixedQuestions = []quiz.Question{
	{ID: "q1", Prompt: quiz.DailyPrompt, PromptTerm: "שלום", CorrectAnswer: "hello / peace", Options: []string{"hello / peace", "water", "house", "book"}},
	{ID: "q2", Prompt: quiz.DailyPrompt, PromptTerm: "מים", CorrectAnswer: "water", Options: []string{"bread", "water", "house", "book"}},
}

func newTestHandler(t *testing.T, opts Options) (*Handler, *fakeSender, *fakeResults) {
	t.Helper()
	pool, err := vocab.Default()
	require.NoError(t, err)
	tracker, err := progress.NewTracker(context.Background(), &progress.MemoryStore{}, nil)
	require.NoError(t, err)

	sender := &fakeSender{}
	results := &fakeResults{}
	h := NewHandler(sender, nil, pool, record.New(results, tracker, nil), opts)
	h.newSession = func() *quiz.Session { return quiz.NewFixedSession(fixedQuestions) }
	return h, sender, results
}

func command(chatID int64, text string) tgbotapi.Update {
	cmd := strings.Fields(text)[0]
	return tgbotapi.Update{Message: &tgbotapi.Message{
		MessageID: 100,
		Chat:      &tgbotapi.Chat{ID: chatID},
		Text:      text,
		Entities:  []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(cmd)}},
	}}
}

func press(chatID int64, messageID int, data string) tgbotapi.Update {
	return tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID:      "cb",
		Data:    data,
		Message: &tgbotapi.Message{MessageID: messageID, Chat: &tgbotapi.Chat{ID: chatID}},
	}}
}

// pick builds the payload of option oi on question qi of the chat's
// running quiz.
func pick(t *testing.T, h *Handler, chatID int64, qi, oi int) string {
	t.Helper()
	s := h.session(chatID)
	require.NotNil(t, s)
	return answerCallback(sessionToken(s.ID()), qi, oi)
}

func TestCallbackData(t *testing.T) {
	tests := []struct {
		data string
		want answer
		ok   bool
	}{
		{"ans:ab12cd34:0:3", answer{Token: "ab12cd34", Q: 0, O: 3}, true},
		{"ans:ab12cd34:12:1", answer{Token: "ab12cd34", Q: 12, O: 1}, true},
		{"ans:0:3", answer{}, false},
		{"ans::0:3", answer{}, false},
		{"ans:ab12cd34:x:1", answer{}, false},
		{"ans:ab12cd34:1:-2", answer{}, false},
		{"again", answer{}, false},
		{"", answer{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.data, func(t *testing.T) {
			got, err := parseAnswer(decodeCallback(tt.data))
			if !tt.ok {
				assert.ErrorIs(t, err, errBadCallback)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
	assert.Equal(t, "ans:ab12cd34:2:1", answerCallback("ab12cd34", 2, 1))
	assert.Equal(t, "ab12cd34", sessionToken("ab12cd34-5678-90ef"))
	assert.LessOrEqual(t, len(answerCallback(sessionToken("ab12cd34-5678-90ef"), 99, 3)), 64)
}

func TestHandler_Commands(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"/start", "Shalom"},
		{"/help", "/quiz"},
		{"/stats", "Streak: 0 days"},
		{"/bogus", "don't know"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			h, sender, _ := newTestHandler(t, Options{})
			h.handleUpdate(context.Background(), command(7, tt.text))
			assert.Contains(t, sender.lastText(t), tt.want)
		})
	}
}

func TestHandler_QuizFlow(t *testing.T) {
	ctx := context.Background()
	h, sender, results := newTestHandler(t, Options{})

	h.handleUpdate(ctx, command(7, "/quiz"))
	require.Len(t, sender.sent, 1)
	first := sender.sent[0].(tgbotapi.MessageConfig)
	assert.Contains(t, first.Text, "Question 1 of 2")
	kb, ok := first.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	require.True(t, ok)
	require.Len(t, kb.InlineKeyboard, quiz.OptionCount)
	assert.Equal(t, pick(t, h, 7, 0, 0), *kb.InlineKeyboard[0][0].CallbackData)

	// q1 correct, q2 wrong.
	h.handleUpdate(ctx, press(7, 1, pick(t, h, 7, 0, 0)))
	edit := sender.sent[1].(tgbotapi.EditMessageTextConfig)
	assert.Equal(t, 1, edit.MessageID)
	assert.Contains(t, edit.Text, "Correct")
	assert.Contains(t, sender.lastText(t), "Question 2 of 2")

	h.handleUpdate(ctx, press(7, 3, pick(t, h, 7, 1, 0)))
	assert.Contains(t, sender.sent[3].(tgbotapi.EditMessageTextConfig).Text, "You chose bread")
	summary := sender.lastText(t)
	assert.Contains(t, summary, "Score: 1 / 2")
	assert.NotContains(t, summary, "Level")

	require.Len(t, results.saved, 1)
	assert.Equal(t, store.KindDaily, results.saved[0].Kind)
	assert.Equal(t, 1, results.saved[0].Correct)
	assert.Equal(t, 1, h.recorder.Tracker().State().Streak)
	assert.Nil(t, h.session(7))
	assert.Len(t, sender.callbacks, 2)
}

func TestHandler_StaleAndMissing(t *testing.T) {
	ctx := context.Background()
	h, sender, _ := newTestHandler(t, Options{})

	h.handleUpdate(ctx, press(7, 1, "ans:ab12cd34:0:0"))
	require.Len(t, sender.callbacks, 1)
	assert.Equal(t, msgNoQuiz, sender.callbacks[0].Text)

	h.handleUpdate(ctx, command(7, "/quiz"))
	h.handleUpdate(ctx, press(7, 1, pick(t, h, 7, 0, 0)))
	h.handleUpdate(ctx, press(7, 1, pick(t, h, 7, 0, 2)))
	assert.Equal(t, msgStale, sender.callbacks[len(sender.callbacks)-1].Text)
	assert.Equal(t, 1, h.session(7).Index())
}

func TestHandler_ReplacedQuizButtonsAreStale(t *testing.T) {
	ctx := context.Background()
	h, sender, results := newTestHandler(t, Options{})
	quizzes := [][]quiz.Question{
		{{ID: "old", PromptTerm: "A", CorrectAnswer: "a", Options: []string{"a", "b", "c", "d"}}},
		{{ID: "new", PromptTerm: "B", CorrectAnswer: "z", Options: []string{"w", "x", "y", "z"}}},
	}
	h.newSession = func() *quiz.Session {
		qs := quizzes[0]
		quizzes = quizzes[1:]
		return quiz.NewFixedSession(qs)
	}

	h.handleUpdate(ctx, command(7, "/quiz"))
	oldPress := pick(t, h, 7, 0, 0)
	h.handleUpdate(ctx, command(7, "/quiz"))
	sent := len(sender.sent)

	h.handleUpdate(ctx, press(7, 1, oldPress))
	assert.Equal(t, msgStale, sender.callbacks[len(sender.callbacks)-1].Text)
	assert.Len(t, sender.sent, sent, "an old message must not be edited")
	assert.Empty(t, results.saved)
	assert.Equal(t, 0, h.session(7).Index())
	assert.Equal(t, quiz.InProgress, h.session(7).State())

	h.handleUpdate(ctx, press(7, 2, pick(t, h, 7, 0, 3)))
	require.Len(t, results.saved, 1)
	assert.Equal(t, 1, results.saved[0].Correct)
}

func TestHandler_OneSessionPerChat(t *testing.T) {
	ctx := context.Background()
	h, _, _ := newTestHandler(t, Options{})

	h.handleUpdate(ctx, command(1, "/quiz"))
	h.handleUpdate(ctx, command(2, "/quiz"))
	h.handleUpdate(ctx, press(2, 1, pick(t, h, 1, 0, 0)))
	assert.Equal(t, 0, h.session(2).Index(), "another chat's token must not match")

	h.handleUpdate(ctx, press(1, 1, pick(t, h, 1, 0, 0)))
	assert.Equal(t, 1, h.session(1).Index())
	assert.Equal(t, 0, h.session(2).Index())
}

func TestHandler_DisallowedChat(t *testing.T) {
	ctx := context.Background()
	h, sender, _ := newTestHandler(t, Options{AllowedChatID: 42})

	h.handleUpdate(ctx, command(7, "/start"))
	h.handleUpdate(ctx, press(7, 1, "ans:ab12cd34:0:0"))
	assert.Empty(t, sender.sent)
	assert.Empty(t, sender.callbacks)

	h.handleUpdate(ctx, command(42, "/start"))
	assert.Len(t, sender.sent, 1)
}

func TestHandler_SaveError(t *testing.T) {
	ctx := context.Background()
	h, sender, results := newTestHandler(t, Options{})
	results.err = errors.New("disk full")

	h.handleUpdate(ctx, command(7, "/quiz"))
	h.handleUpdate(ctx, press(7, 1, pick(t, h, 7, 0, 0)))
	h.handleUpdate(ctx, press(7, 3, pick(t, h, 7, 1, 1)))
	assert.Contains(t, sender.lastText(t), "could not be saved")

	h.handleUpdate(ctx, command(7, "/stats"))
	assert.Equal(t, msgStatsFailed, sender.lastText(t))
}

func TestHandler_Run(t *testing.T) {
	h, sender, _ := newTestHandler(t, Options{})
	updates := make(chan tgbotapi.Update, 1)
	updates <- command(7, "/help")
	close(updates)

	require.NoError(t, h.Run(context.Background(), updates))
	assert.Len(t, sender.sent, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, h.Run(ctx, make(chan tgbotapi.Update)), context.Canceled)
}
