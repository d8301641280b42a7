package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/set-night/docqa/internal/domain"
	"github.com/set-night/docqa/internal/middleware"
	"github.com/set-night/docqa/internal/service"
	tg "github.com/set-night/docqa/internal/telegram"
)

// HandleDocument starts a new chat from an uploaded document. A caption, if
// present, is asked as the first question.
func (h *Handler) HandleDocument(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !isDocument(update) {
		return
	}

	msg := update.Message
	doc := msg.Document
	chatID := msg.Chat.ID

	store := middleware.GetWorkspace(ctx)
	if store == nil {
		return
	}

	if !service.IsAccepted(doc.FileName) {
		tg.SendPlain(ctx, b, chatID, unsupportedText(), nil)
		return
	}

	data, err := tg.DownloadFile(ctx, b, doc.FileID)
	if err != nil {
		slog.Error("download document", "error", err, "chat_id", chatID, "file", doc.FileName)
		h.tgLogger.LogError(err, fmt.Sprintf("download document %q in chat %d", doc.FileName, chatID))
		tg.SendPlain(ctx, b, chatID, uploadErrorText(err), nil)
		return
	}

	session, err := h.uploads.Accept(store, doc.FileName, data)
	if err != nil {
		slog.Warn("document rejected", "error", err, "chat_id", chatID, "file", doc.FileName)
		tg.SendPlain(ctx, b, chatID, uploadErrorText(err), nil)
		return
	}

	slog.Info("session created", "chat_id", chatID, "session_id", session.ID, "file", session.FileName, "bytes", len(data))

	seed, _ := session.LastMessage()
	tg.SendPlain(ctx, b, chatID, seed.Text, chatKeyboard(session.ID))

	if q := strings.TrimSpace(msg.Caption); q != "" {
		h.ask(ctx, b, chatID, store, q)
	}
}

func uploadErrorText(err error) string {
	switch {
	case errors.Is(err, domain.ErrUnsupportedFile):
		return unsupportedText()
	case errors.Is(err, domain.ErrDocumentTooLarge):
		return fmt.Sprintf("❌ %s", err.Error())
	default:
		return readErrorText
	}
}
