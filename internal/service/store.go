package service

import (
	"sync"
	"time"

	"github.com/set-night/docqa/internal/domain"
)

// SessionStore is the application state of one workspace: the uploaded
// sessions in creation order, the active session, the in-flight flag and the
// last error. It is mutated only through its methods and hands out copies.
type SessionStore struct {
	mu        sync.Mutex
	ids       *IDSource
	now       func() time.Time
	sessions  []*domain.ChatSession
	activeID  string
	loading   bool
	lastError string
}

func NewSessionStore(ids *IDSource) *SessionStore {
	return &SessionStore{ids: ids, now: time.Now}
}

// CreateSession adds a session seeded with the ready message, makes it active
// and clears the last error.
func (s *SessionStore) CreateSession(content, fileName string) domain.ChatSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := &domain.ChatSession{
		ID:          s.ids.SessionID(),
		FileName:    fileName,
		FileContent: content,
		Messages: []domain.Message{{
			ID:     s.ids.MessageID(),
			Sender: domain.SenderAI,
			Text:   domain.ReadyText(fileName),
		}},
		CreatedAt: s.now(),
	}

	s.sessions = append(s.sessions, session)
	s.activeID = session.ID
	s.lastError = ""
	return session.Clone()
}

// SelectSession points the active reference at id without checking that it exists.
func (s *SessionStore) SelectSession(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeID = id
}

// DeleteSession removes the session and always clears the active reference,
// whichever session was active.
func (s *SessionStore) DeleteSession(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := false
	kept := s.sessions[:0]
	for _, session := range s.sessions {
		if session.ID == id {
			removed = true
			continue
		}
		kept = append(kept, session)
	}
	for i := len(kept); i < len(s.sessions); i++ {
		s.sessions[i] = nil
	}
	s.sessions = kept
	s.activeID = ""
	return removed
}

// StartNewChat clears the active reference; sessions are untouched.
func (s *SessionStore) StartNewChat() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeID = ""
}

func (s *SessionStore) AppendUserMessage(sessionID, text string) (domain.Message, bool) {
	return s.appendMessage(sessionID, domain.SenderUser, text)
}

func (s *SessionStore) AppendAIMessage(sessionID, text string) (domain.Message, bool) {
	return s.appendMessage(sessionID, domain.SenderAI, text)
}

// appendMessage is a silent no-op when sessionID is unknown, which happens when
// an answer arrives after its session was deleted.
func (s *SessionStore) appendMessage(sessionID string, sender domain.Sender, text string) (domain.Message, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := s.find(sessionID)
	if session == nil {
		return domain.Message{}, false
	}

	msg := domain.Message{
		ID:     s.ids.MessageID(),
		Sender: sender,
		Text:   text,
	}
	session.Messages = append(session.Messages, msg)
	return msg, true
}

// Active resolves the active reference. A dangling reference reads as none.
func (s *SessionStore) Active() (domain.ChatSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.activeID == "" {
		return domain.ChatSession{}, false
	}
	session := s.find(s.activeID)
	if session == nil {
		return domain.ChatSession{}, false
	}
	return session.Clone(), true
}

func (s *SessionStore) ActiveID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeID
}

func (s *SessionStore) Session(id string) (domain.ChatSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := s.find(id)
	if session == nil {
		return domain.ChatSession{}, domain.ErrSessionNotFound
	}
	return session.Clone(), nil
}

// Sessions returns all sessions in creation order.
func (s *SessionStore) Sessions() []domain.ChatSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.ChatSession, len(s.sessions))
	for i, session := range s.sessions {
		out[i] = session.Clone()
	}
	return out
}

func (s *SessionStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// TryBeginRequest sets the loading flag unless a request is already in flight.
func (s *SessionStore) TryBeginRequest() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loading {
		return false
	}
	s.loading = true
	return true
}

func (s *SessionStore) EndRequest() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
}

func (s *SessionStore) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *SessionStore) SetError(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastError = text
}

func (s *SessionStore) ClearError() {
	s.SetError("")
}

func (s *SessionStore) LastError() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError, s.lastError != ""
}

func (s *SessionStore) find(id string) *domain.ChatSession {
	for _, session := range s.sessions {
		if session.ID == id {
			return session
		}
	}
	return nil
}
