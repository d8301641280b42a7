package domain

import (
	"fmt"
	"time"
)

// Sender identifies who wrote a transcript message. It has exactly two values.
type Sender uint8

const (
	SenderUser Sender = iota + 1
	SenderAI
)

func (s Sender) String() string {
	switch s {
	case SenderUser:
		return "user"
	case SenderAI:
		return "ai"
	}
	panic(fmt.Sprintf("domain: unknown sender %d", uint8(s)))
}

// Valid reports whether s is one of the declared senders.
func (s Sender) Valid() bool {
	return s == SenderUser || s == SenderAI
}

const (
	// ErrorReplyText is appended to the transcript whenever an answer cannot be produced.
	ErrorReplyText = "Sorry, I encountered an error. Please try again."
	// ErrorBannerPrefix prefixes the error banner shown after a failed answer.
	ErrorBannerPrefix = "Error fetching response: "
)

// ReadyText is the seeded AI message of a freshly uploaded document.
func ReadyText(fileName string) string {
	return fmt.Sprintf("Document \"%s\" is ready. What would you like to know?", fileName)
}

type Message struct {
	ID     string
	Sender Sender
	Text   string
}

type ChatSession struct {
	ID          string
	FileName    string
	FileContent string
	Messages    []Message
	CreatedAt   time.Time
}

// Clone returns a copy whose message slice is not shared with s.
func (s *ChatSession) Clone() ChatSession {
	c := *s
	c.Messages = make([]Message, len(s.Messages))
	copy(c.Messages, s.Messages)
	return c
}

// LastMessage returns the most recent message, if any.
func (s *ChatSession) LastMessage() (Message, bool) {
	if len(s.Messages) == 0 {
		return Message{}, false
	}
	return s.Messages[len(s.Messages)-1], true
}
