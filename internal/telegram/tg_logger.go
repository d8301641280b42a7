package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-telegram/bot"
	"github.com/set-night/docqa/internal/config"
)

// TelegramLogger mirrors developer diagnostics into a Telegram chat. It is a
// no-op unless LOG_TELEGRAM_CHAT_ID is set.
type TelegramLogger struct {
	bot *bot.Bot
	cfg *config.Config
}

func NewTelegramLogger(b *bot.Bot, cfg *config.Config) *TelegramLogger {
	return &TelegramLogger{bot: b, cfg: cfg}
}

func (l *TelegramLogger) Enabled() bool {
	return l != nil && l.cfg.LogTelegramChatID != 0
}

func (l *TelegramLogger) Log(message string) {
	if !l.Enabled() {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := l.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:          l.cfg.LogTelegramChatID,
		Text:            Truncate(message, MaxMessageLen),
		MessageThreadID: l.cfg.LogTopicError,
	})
	if err != nil {
		slog.Error("failed to send telegram log", "error", err)
	}
}

func (l *TelegramLogger) LogError(err error, context string) {
	if !l.Enabled() {
		return
	}
	l.Log(fmt.Sprintf("❌ Error\n\nContext: %s\nError: %s\nTime: %s",
		context, err.Error(), time.Now().Format("2006-01-02 15:04:05")))
}

func (l *TelegramLogger) LogAnswerFailure(chatID int64, fileName string, err error) {
	if !l.Enabled() {
		return
	}
	l.Log(fmt.Sprintf("⚠️ Answer unavailable\n\nChat: %d\nDocument: %s\nError: %s\nModel: %s (%s)",
		chatID, fileName, err.Error(), l.cfg.Model, l.cfg.Provider))
}
