package service

import (
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
)

// IDSource hands out identifiers that are unique for the lifetime of the process.
// Message ids are millisecond timestamps bumped past the previous value, so two
// messages created in the same instant never collide.
type IDSource struct {
	mu   sync.Mutex
	now  func() time.Time
	last int64
}

func NewIDSource() *IDSource {
	return &IDSource{now: time.Now}
}

func (s *IDSource) MessageID() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	ms := s.now().UnixMilli()
	if ms <= s.last {
		ms = s.last + 1
	}
	s.last = ms
	return strconv.FormatInt(ms, 10)
}

// SessionID returns a time-ordered UUID.
func (s *IDSource) SessionID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
