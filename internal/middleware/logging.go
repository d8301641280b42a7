package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Logging returns middleware that logs update processing time.
func Logging() bot.Middleware {
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			start := time.Now()
			next(ctx, b, update)

			slog.Debug("update processed",
				"type", updateType(update),
				"chat_id", ChatID(update),
				"duration", time.Since(start),
			)
		}
	}
}

func updateType(update *models.Update) string {
	switch {
	case update.Message != nil && update.Message.Document != nil:
		return "document"
	case update.Message != nil:
		return "message"
	case update.CallbackQuery != nil:
		return "callback_query"
	}
	return "unknown"
}
