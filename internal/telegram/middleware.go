package telegram

import (
	"context"

	"go.uber.org/zap"
)

// withErrorHandling runs fn and, on failure, logs the error and tells the
// chat userMsg.
func (h *Handler) withErrorHandling(fn func(ctx context.Context) error, userMsg string) func(ctx context.Context, chatID int64) error {
	return func(ctx context.Context, chatID int64) error {
		if err := fn(ctx); err != nil {
			h.logger.Error("handler error",
				zap.Int64("chat_id", chatID),
				zap.Error(err),
			)
			h.send(newHTMLMessage(chatID, userMsg))
			return err
		}
		return nil
	}
}
