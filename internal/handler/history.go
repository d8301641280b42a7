package handler

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/set-night/docqa/internal/config"
	"github.com/set-night/docqa/internal/middleware"
	"github.com/set-night/docqa/internal/service"
	tg "github.com/set-night/docqa/internal/telegram"
)

func (h *Handler) handleHistory(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	store := middleware.GetWorkspace(ctx)
	if store == nil {
		return
	}

	h.sendHistoryPage(ctx, b, update.Message.Chat.ID, store, 0, false, 0)
}

func (h *Handler) sendHistoryPage(ctx context.Context, b *bot.Bot, chatID int64, store *service.SessionStore, page int, edit bool, messageID int) {
	lastError, _ := store.LastError()
	text, keyboard := historyPage(store.Sessions(), store.ActiveID(), lastError, page)

	if edit && messageID != 0 {
		_, err := b.EditMessageText(ctx, &bot.EditMessageTextParams{
			ChatID:      chatID,
			MessageID:   messageID,
			Text:        text,
			ParseMode:   models.ParseModeMarkdownV1,
			ReplyMarkup: keyboard,
		})
		if err == nil {
			return
		}
		slog.Debug("edit history page failed, sending new message", "error", err)
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        text,
		ParseMode:   models.ParseModeMarkdownV1,
		ReplyMarkup: keyboard,
	})
}

func (h *Handler) handleHistoryPage(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID, messageID, ok := callbackTarget(ctx, b, update)
	if !ok {
		return
	}
	store := middleware.GetWorkspace(ctx)
	if store == nil {
		return
	}

	page, _ := strconv.Atoi(strings.TrimPrefix(update.CallbackQuery.Data, cbHistoryPage))
	h.sendHistoryPage(ctx, b, chatID, store, page, true, messageID)
}

// handleSelectChat makes the tapped chat active and replays its transcript.
func (h *Handler) handleSelectChat(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID, messageID, ok := callbackTarget(ctx, b, update)
	if !ok {
		return
	}
	store := middleware.GetWorkspace(ctx)
	if store == nil {
		return
	}

	sessionID := strings.TrimPrefix(update.CallbackQuery.Data, cbSelectChat)
	store.SelectSession(sessionID)

	session, ok := store.Active()
	if !ok {
		tg.SendPlain(ctx, b, chatID, unknownChatText, nil)
		h.sendHistoryPage(ctx, b, chatID, store, 0, true, messageID)
		return
	}

	b.DeleteMessage(ctx, &bot.DeleteMessageParams{ChatID: chatID, MessageID: messageID})
	tg.SendLongMessage(ctx, b, chatID, renderTranscript(session, config.ReplayMessages), chatKeyboard(session.ID))
}

func (h *Handler) handleNewChatCallback(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID, _, ok := callbackTarget(ctx, b, update)
	if !ok {
		return
	}
	store := middleware.GetWorkspace(ctx)
	if store == nil {
		return
	}

	store.StartNewChat()
	tg.SendPlain(ctx, b, chatID, newChatText+"\n\n"+uploadPrompt(), nil)
}
