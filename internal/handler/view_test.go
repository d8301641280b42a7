package handler

import (
	"fmt"
	"strings"
	"testing"

	"github.com/set-night/docqa/internal/domain"
	"github.com/set-night/docqa/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSenderLabel(t *testing.T) {
	assert.Contains(t, senderLabel(domain.SenderUser), "You")
	assert.Contains(t, senderLabel(domain.SenderAI), "AI")
	assert.Panics(t, func() { senderLabel(domain.Sender(0)) })
}

func TestRenderTranscript(t *testing.T) {
	session := domain.ChatSession{
		FileName: "my_notes.txt",
		Messages: []domain.Message{
			{ID: "1", Sender: domain.SenderAI, Text: domain.ReadyText("my_notes.txt")},
			{ID: "2", Sender: domain.SenderUser, Text: "What color is the sky?"},
			{ID: "3", Sender: domain.SenderAI, Text: "Blue."},
		},
	}

	got := renderTranscript(session, 0)
	assert.True(t, strings.HasPrefix(got, "📄 my_notes.txt\n"), got)

	seed := strings.Index(got, "is ready")
	question := strings.Index(got, "What color is the sky?")
	answer := strings.Index(got, "Blue.")
	assert.True(t, seed < question && question < answer, got)
	assert.NotContains(t, got, "earlier messages")

	limited := renderTranscript(session, 2)
	assert.Contains(t, limited, "1 earlier messages")
	assert.NotContains(t, limited, "is ready")
}

func TestRenderTranscriptKeepsTextAsIs(t *testing.T) {
	answer := "use my_var and other_var, then run `go test` or *not*\n```\nunclosed"
	session := domain.ChatSession{
		FileName: "a.md",
		Messages: []domain.Message{{ID: "1", Sender: domain.SenderAI, Text: answer}},
	}

	got := renderTranscript(session, 0)
	assert.Equal(t, "📄 a.md\n\n🤖 AI: "+answer+"\n", got)
}

func TestHistoryPage(t *testing.T) {
	store := service.NewSessionStore(service.NewIDSource())
	var ids []string
	for i := 0; i < 7; i++ {
		s := store.CreateSession("doc", fmt.Sprintf("doc%d.txt", i))
		ids = append(ids, s.ID)
	}
	store.SelectSession(ids[1])

	text, kb := historyPage(store.Sessions(), store.ActiveID(), "", 0)
	assert.Contains(t, text, "(7)")
	// 5 sessions, new chat row, pagination row
	require.Len(t, kb.InlineKeyboard, 7)
	assert.Equal(t, cbSelectChat+ids[0], kb.InlineKeyboard[0][0].CallbackData)
	assert.Contains(t, kb.InlineKeyboard[1][0].Text, "✅")
	assert.NotContains(t, kb.InlineKeyboard[0][0].Text, "✅")
	assert.Equal(t, cbNewChat, kb.InlineKeyboard[5][0].CallbackData)

	_, kb = historyPage(store.Sessions(), store.ActiveID(), "", 1)
	require.Len(t, kb.InlineKeyboard, 4)
	assert.Equal(t, cbSelectChat+ids[5], kb.InlineKeyboard[0][0].CallbackData)

	// Out of range pages clamp to the last page.
	_, kb = historyPage(store.Sessions(), store.ActiveID(), "", 9)
	assert.Equal(t, cbSelectChat+ids[5], kb.InlineKeyboard[0][0].CallbackData)
}

func TestHistoryPageEmptyWithBanner(t *testing.T) {
	text, kb := historyPage(nil, "", "Error fetching response: Failed to get a response from the AI model.", 0)

	assert.True(t, strings.HasPrefix(text, "⚠️ Error fetching response"))
	assert.Contains(t, text, "No chats yet")
	require.Len(t, kb.InlineKeyboard, 1)
	assert.Equal(t, cbNewChat, kb.InlineKeyboard[0][0].CallbackData)
}

func TestConfirmDeleteKeyboard(t *testing.T) {
	kb := confirmDeleteKeyboard("abc")
	require.Len(t, kb.InlineKeyboard, 1)
	row := kb.InlineKeyboard[0]
	require.Len(t, row, 2)
	assert.Equal(t, "Cancel", row[0].Text)
	assert.Equal(t, cbDeleteCancel, row[0].CallbackData)
	assert.Equal(t, "Confirm Delete", row[1].Text)
	assert.Equal(t, cbDeleteConfirm+"abc", row[1].CallbackData)

	assert.Contains(t, confirmDeleteText(), "Delete Chat Confirmation")
}

func TestCallbackDataFitsTelegramLimit(t *testing.T) {
	id := service.NewIDSource().SessionID()
	for _, prefix := range []string{cbSelectChat, cbDeleteChat, cbDeleteConfirm} {
		assert.LessOrEqual(t, len(prefix+id), 64)
	}
}

func TestUploadErrorText(t *testing.T) {
	assert.Equal(t, readErrorText, uploadErrorText(domain.ErrFileRead))
	assert.Equal(t, unsupportedText(), uploadErrorText(domain.ErrUnsupportedFile))
	assert.Contains(t, uploadErrorText(fmt.Errorf("%w: 10 characters (limit 5)", domain.ErrDocumentTooLarge)), "limit 5")
}
