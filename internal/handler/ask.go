package handler

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/set-night/docqa/internal/domain"
	"github.com/set-night/docqa/internal/middleware"
	"github.com/set-night/docqa/internal/service"
	tg "github.com/set-night/docqa/internal/telegram"
)

// HandleText treats any non-command text as a question about the active document.
func (h *Handler) HandleText(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Document != nil {
		return
	}

	msg := update.Message
	if strings.HasPrefix(msg.Text, "/") {
		return
	}

	store := middleware.GetWorkspace(ctx)
	if store == nil {
		return
	}

	h.ask(ctx, b, msg.Chat.ID, store, msg.Text)
}

func (h *Handler) ask(ctx context.Context, b *bot.Bot, chatID int64, store *service.SessionStore, question string) {
	if strings.TrimSpace(question) == "" {
		return
	}

	session, ok := store.Active()
	if !ok {
		tg.SendPlain(ctx, b, chatID, uploadPrompt(), nil)
		return
	}
	if store.IsLoading() {
		tg.SendPlain(ctx, b, chatID, inFlightText, nil)
		return
	}

	stopTyping := tg.StartTyping(ctx, b, chatID)
	statusMsg, _ := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   thinkingText,
	})

	out, err := h.transcript.Submit(ctx, store, question)
	stopTyping()
	if statusMsg != nil {
		b.DeleteMessage(ctx, &bot.DeleteMessageParams{
			ChatID:    chatID,
			MessageID: statusMsg.ID,
		})
	}

	switch {
	case errors.Is(err, domain.ErrRequestInFlight):
		tg.SendPlain(ctx, b, chatID, inFlightText, nil)
		return
	case errors.Is(err, domain.ErrNoActiveSession):
		tg.SendPlain(ctx, b, chatID, uploadPrompt(), nil)
		return
	case err != nil:
		return
	}

	if !out.Delivered {
		slog.Info("answer dropped, session deleted while waiting", "chat_id", chatID, "session_id", out.SessionID)
		return
	}

	if out.Failed() {
		slog.Error("answer unavailable", "error", out.Err, "chat_id", chatID, "session_id", out.SessionID)
		h.tgLogger.LogAnswerFailure(chatID, session.FileName, out.Err)
		tg.SendPlain(ctx, b, chatID, "⚠️ "+out.Banner, nil)
		tg.SendPlain(ctx, b, chatID, out.Reply.Text, nil)
		return
	}

	if err := tg.SendLongMessage(ctx, b, chatID, out.Reply.Text, nil); err != nil {
		slog.Error("send answer", "error", err, "chat_id", chatID)
		return
	}

	if h.cfg.ShowUsage {
		tg.SendPlain(ctx, b, chatID, h.pricing.FormatUsage(out.Answer), nil)
	}
}
