package middleware

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/set-night/docqa/internal/service"
)

type ctxKey string

const WorkspaceKey ctxKey = "workspace"

// GetWorkspace extracts the chat's session store from context.
func GetWorkspace(ctx context.Context) *service.SessionStore {
	s, ok := ctx.Value(WorkspaceKey).(*service.SessionStore)
	if !ok {
		return nil
	}
	return s
}

// WithWorkspace stores the session store in ctx.
func WithWorkspace(ctx context.Context, store *service.SessionStore) context.Context {
	return context.WithValue(ctx, WorkspaceKey, store)
}

// WorkspaceLoader returns middleware that loads the chat's workspace into context.
// Updates without a chat pass through without one.
func WorkspaceLoader(workspaces *service.Workspaces) bot.Middleware {
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			if chatID := ChatID(update); chatID != 0 {
				ctx = WithWorkspace(ctx, workspaces.Get(chatID))
			}
			next(ctx, b, update)
		}
	}
}
