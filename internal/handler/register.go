package handler

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Register registers all command, callback and upload handlers on the bot instance.
// The catch-all text handler is registered by the caller after these.
func (h *Handler) Register() {
	// Commands
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypePrefix, h.handleStart)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/new", bot.MatchTypePrefix, h.handleNew)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/history", bot.MatchTypePrefix, h.handleHistory)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/chat", bot.MatchTypePrefix, h.handleChat)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/delete", bot.MatchTypePrefix, h.handleDelete)

	// Uploads
	h.bot.RegisterHandlerMatchFunc(isDocument, h.HandleDocument)

	// History callbacks
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, cbNewChat, bot.MatchTypeExact, h.handleNewChatCallback)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, cbHistoryPage, bot.MatchTypePrefix, h.handleHistoryPage)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, cbSelectChat, bot.MatchTypePrefix, h.handleSelectChat)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "cur", bot.MatchTypeExact, h.handleNoop)

	// Delete callbacks
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, cbDeleteChat, bot.MatchTypePrefix, h.handleDeleteRequest)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, cbDeleteConfirm, bot.MatchTypePrefix, h.handleDeleteConfirm)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, cbDeleteCancel, bot.MatchTypeExact, h.handleDeleteCancel)
}

func isDocument(update *models.Update) bool {
	return update.Message != nil && update.Message.Document != nil
}

// handleNoop is a no-op callback handler used for pagination indicators.
// It simply acknowledges the callback query.
func (h *Handler) handleNoop(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery != nil {
		b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
			CallbackQueryID: update.CallbackQuery.ID,
		})
	}
}

// callbackTarget acknowledges the callback and returns the message it was attached to.
func callbackTarget(ctx context.Context, b *bot.Bot, update *models.Update) (chatID int64, messageID int, ok bool) {
	if update.CallbackQuery == nil {
		return 0, 0, false
	}
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{CallbackQueryID: update.CallbackQuery.ID})

	msg := update.CallbackQuery.Message.Message
	if msg == nil {
		return 0, 0, false
	}
	return msg.Chat.ID, msg.ID, true
}
