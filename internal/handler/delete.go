package handler

import (
	"context"
	"log/slog"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/set-night/docqa/internal/middleware"
	tg "github.com/set-night/docqa/internal/telegram"
)

// handleDelete asks for confirmation before deleting the active chat.
func (h *Handler) handleDelete(ctx context.Context, b *bot.Bot, update *models.Update) {
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
		tg.SendPlain(ctx, b, chatID, noActiveText, nil)
		return
	}
	h.sendDeleteConfirmation(ctx, b, chatID, session.ID)
}

func (h *Handler) handleDeleteRequest(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID, _, ok := callbackTarget(ctx, b, update)
	if !ok {
		return
	}
	h.sendDeleteConfirmation(ctx, b, chatID, strings.TrimPrefix(update.CallbackQuery.Data, cbDeleteChat))
}

func (h *Handler) sendDeleteConfirmation(ctx context.Context, b *bot.Bot, chatID int64, sessionID string) {
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        confirmDeleteText(),
		ParseMode:   models.ParseModeMarkdownV1,
		ReplyMarkup: confirmDeleteKeyboard(sessionID),
	})
}

// handleDeleteConfirm deletes the chat. The active chat is cleared whichever
// chat was deleted.
func (h *Handler) handleDeleteConfirm(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID, messageID, ok := callbackTarget(ctx, b, update)
	if !ok {
		return
	}
	store := middleware.GetWorkspace(ctx)
	if store == nil {
		return
	}

	sessionID := strings.TrimPrefix(update.CallbackQuery.Data, cbDeleteConfirm)
	removed := store.DeleteSession(sessionID)
	slog.Info("session deleted", "chat_id", chatID, "session_id", sessionID, "found", removed)

	_, err := b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:    chatID,
		MessageID: messageID,
		Text:      deletedText + "\n\n" + uploadPrompt(),
	})
	if err != nil {
		tg.SendPlain(ctx, b, chatID, deletedText+"\n\n"+uploadPrompt(), nil)
	}
}

// handleDeleteCancel dismisses the confirmation without touching any chat.
func (h *Handler) handleDeleteCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID, messageID, ok := callbackTarget(ctx, b, update)
	if !ok {
		return
	}
	b.DeleteMessage(ctx, &bot.DeleteMessageParams{ChatID: chatID, MessageID: messageID})
}
