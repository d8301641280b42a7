package handler

import (
	"fmt"
	"strings"

	"github.com/go-telegram/bot/models"
	"github.com/set-night/docqa/internal/config"
	"github.com/set-night/docqa/internal/domain"
	tg "github.com/set-night/docqa/internal/telegram"
)

// Callback data prefixes.
const (
	cbNewChat       = "new_chat"
	cbHistoryPage   = "history_page_"
	cbSelectChat    = "select_chat_"
	cbDeleteChat    = "delete_chat_"
	cbDeleteConfirm = "delete_confirm_"
	cbDeleteCancel  = "delete_cancel"
)

const (
	deleteTitle = "Delete Chat Confirmation"
	deleteBody  = "Are you sure you want to delete this chat? This will remove the chat and its history permanently."

	readErrorText   = "Error reading file."
	inFlightText    = "⏳ Still thinking about your previous question."
	thinkingText    = "⏳ Thinking..."
	noActiveText    = "There is no open chat. Upload a document to start one."
	deletedText     = "🗑 Chat deleted."
	newChatText     = "🆕 New chat."
	unknownChatText = "❌ This chat no longer exists."
)

func uploadPrompt() string {
	return fmt.Sprintf("📎 Send me a document (%s) and ask questions about it.",
		strings.Join(config.AcceptedExtensions, ", "))
}

func unsupportedText() string {
	return fmt.Sprintf("❌ Unsupported file type. Accepted: %s", strings.Join(config.AcceptedExtensions, ", "))
}

func welcomeText() string {
	return "👋 *Intelligent Document Q&A*\n\n" +
		"Upload a document and I will answer questions using only its contents.\n\n" +
		"📋 *Commands:*\n" +
		"/new - Start a new chat\n" +
		"/history - Chat history\n" +
		"/chat - Show the current chat\n" +
		"/delete - Delete the current chat\n\n" +
		uploadPrompt()
}

func senderLabel(s domain.Sender) string {
	switch s {
	case domain.SenderUser:
		return "👤 You"
	case domain.SenderAI:
		return "🤖 AI"
	}
	panic(fmt.Sprintf("handler: unknown sender %d", uint8(s)))
}

// renderTranscript renders the last limit messages of a session under its
// file name. The result is plain text; message bodies appear unchanged.
func renderTranscript(session domain.ChatSession, limit int) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📄 %s\n", session.FileName))

	msgs := session.Messages
	if limit > 0 && len(msgs) > limit {
		sb.WriteString(fmt.Sprintf("… %d earlier messages\n", len(msgs)-limit))
		msgs = msgs[len(msgs)-limit:]
	}
	for _, m := range msgs {
		sb.WriteString("\n")
		sb.WriteString(senderLabel(m.Sender))
		sb.WriteString(": ")
		sb.WriteString(m.Text)
		sb.WriteString("\n")
	}
	return sb.String()
}

func chatKeyboard(sessionID string) *models.InlineKeyboardMarkup {
	return tg.InlineKeyboard(
		tg.ButtonRow(tg.InlineButton("🗑 Delete chat", cbDeleteChat+sessionID)),
		tg.ButtonRow(
			tg.InlineButton("➕ New chat", cbNewChat),
			tg.InlineButton("📂 History", cbHistoryPage+"0"),
		),
	)
}

func confirmDeleteText() string {
	return fmt.Sprintf("⚠️ *%s*\n\n%s", deleteTitle, deleteBody)
}

func confirmDeleteKeyboard(sessionID string) *models.InlineKeyboardMarkup {
	return tg.InlineKeyboard(tg.ButtonRow(
		tg.InlineButton("Cancel", cbDeleteCancel),
		tg.InlineButton("Confirm Delete", cbDeleteConfirm+sessionID),
	))
}

func historyLabel(s domain.ChatSession, activeID string) string {
	label := tg.Truncate(s.FileName, config.HistoryLabelLen)
	label = fmt.Sprintf("📄 %s (%d)", label, len(s.Messages))
	if s.ID == activeID {
		label += " ✅"
	}
	return label
}

// historyPage renders one page of the session list in creation order.
func historyPage(sessions []domain.ChatSession, activeID, lastError string, page int) (string, *models.InlineKeyboardMarkup) {
	totalPages := (len(sessions) + config.SessionsPerPage - 1) / config.SessionsPerPage
	if totalPages == 0 {
		totalPages = 1
	}
	if page >= totalPages {
		page = totalPages - 1
	}
	if page < 0 {
		page = 0
	}

	var sb strings.Builder
	if lastError != "" {
		sb.WriteString("⚠️ " + tg.EscapeMarkdown(lastError) + "\n\n")
	}
	sb.WriteString(fmt.Sprintf("📂 *Chat History* (%d)", len(sessions)))
	if len(sessions) == 0 {
		sb.WriteString("\n\nNo chats yet. " + uploadPrompt())
	}

	var rows [][]models.InlineKeyboardButton
	start := page * config.SessionsPerPage
	end := min(start+config.SessionsPerPage, len(sessions))
	for _, s := range sessions[start:end] {
		rows = append(rows, tg.ButtonRow(tg.InlineButton(historyLabel(s, activeID), cbSelectChat+s.ID)))
	}

	rows = append(rows, tg.ButtonRow(tg.InlineButton("➕ New Chat", cbNewChat)))
	if totalPages > 1 {
		rows = append(rows, tg.PaginationRow(page, totalPages, cbHistoryPage))
	}

	return sb.String(), tg.InlineKeyboard(rows...)
}
