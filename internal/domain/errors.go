package domain

import "errors"

var (
	ErrConfiguration    = errors.New("configuration error")
	ErrFileRead         = errors.New("error reading file")
	ErrUnsupportedFile  = errors.New("unsupported file type")
	ErrDocumentTooLarge = errors.New("document too large")
	// ErrAnswerUnavailable is shown to the user verbatim after the banner prefix.
	ErrAnswerUnavailable = errors.New("Failed to get a response from the AI model.")
	ErrEmptyQuestion     = errors.New("question is empty")
	ErrRequestInFlight   = errors.New("active request exists")
	ErrNoActiveSession   = errors.New("no active session")
	ErrSessionNotFound   = errors.New("session not found")
	ErrModelNotFound     = errors.New("model not found")
)
