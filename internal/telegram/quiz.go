package telegram

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/lashon-study/lashon/internal/progress"
	"github.com/lashon-study/lashon/internal/quiz"
	"github.com/lashon-study/lashon/internal/store"
)

// startQuiz replaces any quiz the chat had with a fresh one and sends
// the first question.
func (h *Handler) startQuiz(chatID int64) {
	s := h.newSession()
	if err := s.Start(); err != nil {
		h.logger.Error("failed to start quiz", zap.Int64("chat_id", chatID), zap.Error(err))
		h.send(newHTMLMessage(chatID, msgQuizFailed))
		return
	}

	h.mu.Lock()
	h.sessions[chatID] = s
	h.mu.Unlock()

	h.logger.Info("quiz started", zap.Int64("chat_id", chatID), zap.String("session_id", s.ID()))
	h.sendQuestion(chatID, s)
}

func (h *Handler) sendQuestion(chatID int64, s *quiz.Session) {
	q, ok := s.Current()
	if !ok {
		return
	}
	msg := newHTMLMessage(chatID, questionText(q, s.Index(), s.Len()))
	msg.ReplyMarkup = buildAnswerKeyboard(sessionToken(s.ID()), q, s.Index())
	h.send(msg)
}

func (h *Handler) session(chatID int64) *quiz.Session {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.sessions[chatID]
}

func (h *Handler) endSession(chatID int64, s *quiz.Session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.sessions[chatID] == s {
		delete(h.sessions, chatID)
	}
}

// handleAnswer applies a button press to the chat's quiz. Presses sent
// for an earlier quiz, or for a question other than the current one, are
// stale and only acknowledged.
func (h *Handler) handleAnswer(ctx context.Context, cb *tgbotapi.CallbackQuery, chatID int64, a answer) {
	s := h.session(chatID)
	if s == nil || s.State() != quiz.InProgress {
		h.answerCallback(cb.ID, msgNoQuiz)
		return
	}
	if a.Token != sessionToken(s.ID()) || a.Q != s.Index() {
		h.answerCallback(cb.ID, msgStale)
		return
	}
	qi := a.Q

	q, _ := s.Current()
	rec, err := s.SubmitIndex(a.O)
	if err != nil {
		if errors.Is(err, quiz.ErrInvalidChoice) {
			h.logger.Warn("answer out of range", zap.Int("option", a.O))
		}
		h.answerCallback(cb.ID, "")
		return
	}

	if rec.IsCorrect {
		h.answerCallback(cb.ID, "Correct!")
	} else {
		h.answerCallback(cb.ID, "Not quite")
	}
	h.send(newHTMLEdit(chatID, cb.Message.MessageID, verdictText(q, qi, s.Len(), rec)))

	if s.State() != quiz.Finished {
		h.sendQuestion(chatID, s)
		return
	}

	h.endSession(chatID, s)
	saveErr := h.recorder.Quiz(ctx, store.KindDaily, s)
	if saveErr != nil {
		h.logger.Error("failed to record quiz", zap.Int64("chat_id", chatID), zap.Error(saveErr))
	}

	msg := newHTMLMessage(chatID, summaryText(s.Score(), saveErr))
	msg.ReplyMarkup = buildAgainKeyboard()
	h.send(msg)
}

// stats renders the streak and result totals.
func (h *Handler) stats(ctx context.Context) (string, error) {
	var st *progress.State
	if t := h.recorder.Tracker(); t != nil {
		s := t.State()
		st = &s
	}
	var rs *store.ResultStats
	if repo := h.recorder.Results(); repo != nil {
		got, err := repo.Stats(ctx, "")
		if err != nil {
			return "", err
		}
		rs = &got
	}
	return statsText(st, rs), nil
}
