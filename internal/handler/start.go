package handler

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/set-night/docqa/internal/config"
	"github.com/set-night/docqa/internal/middleware"
	tg "github.com/set-night/docqa/internal/telegram"
)

func (h *Handler) handleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    update.Message.Chat.ID,
		Text:      welcomeText(),
		ParseMode: models.ParseModeMarkdownV1,
	})
}

// handleNew clears the active chat; existing chats stay in history.
func (h *Handler) handleNew(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	store := middleware.GetWorkspace(ctx)
	if store == nil {
		return
	}

	store.StartNewChat()
	tg.SendPlain(ctx, b, update.Message.Chat.ID, newChatText+"\n\n"+uploadPrompt(), nil)
}

// handleChat replays the active chat.
func (h *Handler) handleChat(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	store := middleware.GetWorkspace(ctx)
	if store == nil {
		return
	}

	chatID := update.Message.Chat.ID
	session, ok := store.Active()
	if !ok {
		tg.SendPlain(ctx, b, chatID, uploadPrompt(), nil)
		return
	}
	tg.SendLongMessage(ctx, b, chatID, renderTranscript(session, config.ReplayMessages), chatKeyboard(session.ID))
}
