package service

import (
	"testing"

	"github.com/set-night/docqa/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSession(t *testing.T) {
	store := NewSessionStore(NewIDSource())
	store.SetError("Error fetching response: old")

	s := store.CreateSession("The sky is blue.", "notes.txt")

	assert.Equal(t, 1, store.Count())
	assert.Equal(t, "notes.txt", s.FileName)
	assert.Equal(t, "The sky is blue.", s.FileContent)
	require.Len(t, s.Messages, 1)
	assert.Equal(t, domain.SenderAI, s.Messages[0].Sender)
	assert.Equal(t, `Document "notes.txt" is ready. What would you like to know?`, s.Messages[0].Text)

	active, ok := store.Active()
	require.True(t, ok)
	assert.Equal(t, s.ID, active.ID)

	_, hasErr := store.LastError()
	assert.False(t, hasErr)
}

func TestSessionsKeepCreationOrder(t *testing.T) {
	store := NewSessionStore(NewIDSource())
	a := store.CreateSession("a", "a.txt")
	b := store.CreateSession("b", "b.md")
	c := store.CreateSession("c", "c.csv")

	got := store.Sessions()
	require.Len(t, got, 3)
	assert.Equal(t, []string{a.ID, b.ID, c.ID}, []string{got[0].ID, got[1].ID, got[2].ID})

	active, _ := store.Active()
	assert.Equal(t, c.ID, active.ID)
}

func TestSelectSession(t *testing.T) {
	store := NewSessionStore(NewIDSource())
	a := store.CreateSession("a", "a.txt")
	store.CreateSession("b", "b.txt")

	store.SelectSession(a.ID)
	active, ok := store.Active()
	require.True(t, ok)
	assert.Equal(t, a.ID, active.ID)

	// Unknown ids are accepted and read back as no active session.
	store.SelectSession("missing")
	assert.Equal(t, "missing", store.ActiveID())
	_, ok = store.Active()
	assert.False(t, ok)
}

func TestDeleteSessionClearsActive(t *testing.T) {
	tests := []struct {
		name     string
		active   func(a, b domain.ChatSession) string
		deleteID func(a, b domain.ChatSession) string
	}{
		{
			name:     "delete active session",
			active:   func(a, b domain.ChatSession) string { return a.ID },
			deleteID: func(a, b domain.ChatSession) string { return a.ID },
		},
		{
			name:     "delete other session",
			active:   func(a, b domain.ChatSession) string { return a.ID },
			deleteID: func(a, b domain.ChatSession) string { return b.ID },
		},
		{
			name:     "delete unknown session",
			active:   func(a, b domain.ChatSession) string { return a.ID },
			deleteID: func(a, b domain.ChatSession) string { return "missing" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewSessionStore(NewIDSource())
			a := store.CreateSession("a", "a.txt")
			b := store.CreateSession("b", "b.txt")
			store.SelectSession(tt.active(a, b))

			store.DeleteSession(tt.deleteID(a, b))

			_, ok := store.Active()
			assert.False(t, ok)
			assert.Empty(t, store.ActiveID())
		})
	}
}

func TestDeleteSessionRemovesOnlyTarget(t *testing.T) {
	store := NewSessionStore(NewIDSource())
	a := store.CreateSession("a", "a.txt")
	b := store.CreateSession("b", "b.txt")
	c := store.CreateSession("c", "c.txt")

	assert.True(t, store.DeleteSession(b.ID))
	assert.False(t, store.DeleteSession(b.ID))

	got := store.Sessions()
	require.Len(t, got, 2)
	assert.Equal(t, a.ID, got[0].ID)
	assert.Equal(t, c.ID, got[1].ID)

	_, err := store.Session(b.ID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestAppendMessages(t *testing.T) {
	store := NewSessionStore(NewIDSource())
	s := store.CreateSession("doc", "doc.txt")

	u, ok := store.AppendUserMessage(s.ID, "question")
	require.True(t, ok)
	ai, ok := store.AppendAIMessage(s.ID, "answer")
	require.True(t, ok)

	got, err := store.Session(s.ID)
	require.NoError(t, err)
	require.Len(t, got.Messages, 3)
	assert.Equal(t, u, got.Messages[1])
	assert.Equal(t, ai, got.Messages[2])
	assert.Equal(t, domain.SenderUser, got.Messages[1].Sender)
	assert.Equal(t, domain.SenderAI, got.Messages[2].Sender)

	ids := map[string]bool{}
	for _, m := range got.Messages {
		assert.False(t, ids[m.ID], "duplicate message id %s", m.ID)
		ids[m.ID] = true
	}
}

func TestAppendToUnknownSessionIsNoop(t *testing.T) {
	store := NewSessionStore(NewIDSource())
	s := store.CreateSession("doc", "doc.txt")

	_, ok := store.AppendAIMessage("missing", "late answer")
	assert.False(t, ok)

	got, err := store.Session(s.ID)
	require.NoError(t, err)
	assert.Len(t, got.Messages, 1)
}

func TestStartNewChat(t *testing.T) {
	store := NewSessionStore(NewIDSource())
	store.CreateSession("doc", "doc.txt")

	store.StartNewChat()

	_, ok := store.Active()
	assert.False(t, ok)
	assert.Equal(t, 1, store.Count())
}

func TestSnapshotsAreReadOnly(t *testing.T) {
	store := NewSessionStore(NewIDSource())
	s := store.CreateSession("doc", "doc.txt")

	s.Messages[0].Text = "tampered"
	listed := store.Sessions()
	listed[0].Messages = append(listed[0].Messages, domain.Message{ID: "x"})

	got, err := store.Session(s.ID)
	require.NoError(t, err)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, domain.ReadyText("doc.txt"), got.Messages[0].Text)
}

func TestLoadingFlag(t *testing.T) {
	store := NewSessionStore(NewIDSource())

	assert.False(t, store.IsLoading())
	assert.True(t, store.TryBeginRequest())
	assert.True(t, store.IsLoading())
	assert.False(t, store.TryBeginRequest())

	store.EndRequest()
	assert.False(t, store.IsLoading())
	assert.True(t, store.TryBeginRequest())
}

func TestLastError(t *testing.T) {
	store := NewSessionStore(NewIDSource())

	store.SetError("Error fetching response: boom")
	msg, ok := store.LastError()
	assert.True(t, ok)
	assert.Equal(t, "Error fetching response: boom", msg)

	store.ClearError()
	_, ok = store.LastError()
	assert.False(t, ok)
}
