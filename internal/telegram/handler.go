// Package telegram serves the daily quiz over a Telegram bot.
package telegram

import (
	"context"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/lashon-study/lashon/internal/quiz"
	"github.com/lashon-study/lashon/internal/record"
	"github.com/lashon-study/lashon/internal/vocab"
)

// Sender is the part of the Bot API client the handler uses.
// *tgbotapi.BotAPI satisfies it.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Options configures a Handler.
type Options struct {
	// AllowedChatID restricts the bot to one chat. Zero serves every chat.
	AllowedChatID int64
	// QuizCount is the number of questions per quiz.
	QuizCount int
}

type Handler struct {
	bot      Sender
	logger   *zap.Logger
	pool     *vocab.Pool
	recorder *record.Recorder
	opts     Options

	mu       sync.Mutex
	sessions map[int64]*quiz.Session

	newSession func() *quiz.Session
}

func NewHandler(bot Sender, logger *zap.Logger, pool *vocab.Pool, recorder *record.Recorder, opts Options) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.QuizCount <= 0 {
		opts.QuizCount = 10
	}
	h := &Handler{
		bot:      bot,
		logger:   logger,
		pool:     pool,
		recorder: recorder,
		opts:     opts,
		sessions: make(map[int64]*quiz.Session),
	}
	h.newSession = func() *quiz.Session {
		var entries []vocab.Entry
		if h.pool != nil {
			entries = h.pool.All()
		}
		return quiz.NewSession(quiz.NewEngine(quiz.Config{}), entries, h.opts.QuizCount)
	}
	return h
}

// Run handles updates until ctx is cancelled or the channel closes.
func (h *Handler) Run(ctx context.Context, updates <-chan tgbotapi.Update) error {
	h.logger.Info("telegram handler started", zap.Int64("allowed_chat_id", h.opts.AllowedChatID))
	defer h.logger.Info("telegram handler stopped")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) allowed(chatID int64) bool {
	return h.opts.AllowedChatID == 0 || h.opts.AllowedChatID == chatID
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if cb := update.CallbackQuery; cb != nil {
		if cb.Message == nil || !h.allowed(cb.Message.Chat.ID) {
			h.logger.Debug("callback from disallowed chat ignored")
			return
		}
		h.logger.Debug("callback received",
			zap.Int64("chat_id", cb.Message.Chat.ID),
			zap.String("data", cb.Data),
		)
		h.handleCallback(ctx, cb)
		return
	}

	if update.Message == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	chatID := update.Message.Chat.ID
	if !h.allowed(chatID) {
		h.logger.Warn("message from disallowed chat ignored", zap.Int64("chat_id", chatID))
		return
	}

	h.logger.Debug("update received",
		zap.Int64("chat_id", chatID),
		zap.String("text", update.Message.Text),
	)

	if !update.Message.IsCommand() {
		h.send(newHTMLMessage(chatID, msgUnknownCommand))
		return
	}

	switch update.Message.Command() {
	case "start":
		h.send(newHTMLMessage(chatID, msgWelcome))
	case "help":
		h.send(newHTMLMessage(chatID, msgHelp))
	case "quiz":
		h.startQuiz(chatID)
	case "stats":
		h.handleStats(ctx, chatID)
	default:
		h.send(newHTMLMessage(chatID, msgUnknownCommand))
	}
}

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	chatID := cb.Message.Chat.ID
	cd := decodeCallback(cb.Data)

	switch cd.Action {
	case actionAnswer:
		a, err := parseAnswer(cd)
		if err != nil {
			h.logger.Warn("bad answer callback", zap.String("data", cd.Raw))
			h.answerCallback(cb.ID, "")
			return
		}
		h.handleAnswer(ctx, cb, chatID, a)
	case actionAgain:
		h.answerCallback(cb.ID, "")
		h.startQuiz(chatID)
	default:
		h.logger.Warn("unknown callback action", zap.String("data", cd.Raw))
		h.answerCallback(cb.ID, "")
	}
}

func (h *Handler) handleStats(ctx context.Context, chatID int64) {
	var text string
	err := h.withErrorHandling(func(ctx context.Context) error {
		var err error
		text, err = h.stats(ctx)
		return err
	}, msgStatsFailed)(ctx, chatID)
	if err == nil {
		h.send(newHTMLMessage(chatID, text))
	}
}

func (h *Handler) answerCallback(id, text string) {
	if _, err := h.bot.Request(tgbotapi.NewCallback(id, text)); err != nil {
		h.logger.Error("failed to answer callback", zap.Error(err))
	}
}

func (h *Handler) send(c tgbotapi.Chattable) {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
	}
}
