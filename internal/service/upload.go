package service

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/set-night/docqa/internal/config"
	"github.com/set-night/docqa/internal/domain"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// UploadService turns an uploaded file into a new chat session.
type UploadService struct {
	maxChars int
}

// NewUploadService creates the service. maxChars <= 0 disables the size cap.
func NewUploadService(maxChars int) *UploadService {
	return &UploadService{maxChars: maxChars}
}

// IsAccepted reports whether the file name carries one of the accepted extensions.
func IsAccepted(fileName string) bool {
	ext := strings.ToLower(filepath.Ext(fileName))
	for _, accepted := range config.AcceptedExtensions {
		if ext == accepted {
			return true
		}
	}
	return false
}

// Decode reads data as UTF-8 text. Invalid byte sequences become U+FFFD;
// content is never interpreted beyond that.
func (s *UploadService) Decode(data []byte) (string, error) {
	text := strings.ToValidUTF8(string(bytes.TrimPrefix(data, utf8BOM)), "\uFFFD")
	if s.maxChars > 0 {
		if n := utf8.RuneCountInString(text); n > s.maxChars {
			return "", fmt.Errorf("%w: %d characters (limit %d)", domain.ErrDocumentTooLarge, n, s.maxChars)
		}
	}
	return text, nil
}

// Accept validates and decodes the file and creates its session in store.
// On any error the store is left untouched.
func (s *UploadService) Accept(store *SessionStore, fileName string, data []byte) (domain.ChatSession, error) {
	if !IsAccepted(fileName) {
		return domain.ChatSession{}, fmt.Errorf("%w: %s", domain.ErrUnsupportedFile, fileName)
	}

	content, err := s.Decode(data)
	if err != nil {
		return domain.ChatSession{}, err
	}

	return store.CreateSession(content, fileName), nil
}
