package telegram

import (
	"context"

	"go.uber.org/zap"

	"github.com/aliskhannn/lingua/internal/requestctx"
)

type HandlerFunc func(ctx context.Context, chatID int64) error

func (h *Handler) withErrorHandling(fn HandlerFunc) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if err := fn(ctx, chatID); err != nil {
			h.logger.Error("handle error",
				zap.Int64("chat_id", chatID),
				zap.String("user_id", requestctx.UserIDFromContext(ctx)),
				zap.Error(err),
			)
			_ = h.send(newHTMLMessage(chatID, msgInternalError))
			return nil
		}
		return nil
	}
}
