package middleware

import "github.com/go-telegram/bot/models"

// ChatID returns the chat an update belongs to, or 0 when it has none.
func ChatID(update *models.Update) int64 {
	switch {
	case update.Message != nil:
		return update.Message.Chat.ID
	case update.CallbackQuery != nil && update.CallbackQuery.Message.Message != nil:
		return update.CallbackQuery.Message.Message.Chat.ID
	}
	return 0
}
