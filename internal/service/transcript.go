package service

import (
	"context"
	"errors"
	"strings"

	"github.com/set-night/docqa/internal/domain"
)

// Answerer produces an answer for a question about a document.
type Answerer interface {
	Ask(ctx context.Context, documentText, question string) (*domain.Answer, error)
}

// Outcome describes one accepted submission.
type Outcome struct {
	SessionID string
	Question  domain.Message
	Reply     domain.Message
	// Answer is nil when the answer could not be produced.
	Answer *domain.Answer
	// Banner holds the error banner text on failure.
	Banner string
	Err    error
	// Delivered is false when the session disappeared before the reply arrived.
	Delivered bool
}

func (o *Outcome) Failed() bool {
	return o.Err != nil
}

// Transcript runs the question/answer exchange against a workspace.
type Transcript struct {
	answers Answerer
}

func NewTranscript(answers Answerer) *Transcript {
	return &Transcript{answers: answers}
}

// Submit asks question against the active session of store. Rejected
// submissions (empty text, no active session, a request already in flight)
// return an error and change nothing. Accepted ones always append the user
// message followed by either the answer or the fixed error reply.
func (t *Transcript) Submit(ctx context.Context, store *SessionStore, question string) (*Outcome, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, domain.ErrEmptyQuestion
	}

	session, ok := store.Active()
	if !ok {
		return nil, domain.ErrNoActiveSession
	}

	if !store.TryBeginRequest() {
		return nil, domain.ErrRequestInFlight
	}
	defer store.EndRequest()

	userMsg, _ := store.AppendUserMessage(session.ID, question)
	store.ClearError()

	out := &Outcome{SessionID: session.ID, Question: userMsg}

	answer, err := t.answers.Ask(ctx, session.FileContent, question)
	if err != nil {
		out.Banner = domain.ErrorBannerPrefix + err.Error()
		if !errors.Is(err, domain.ErrAnswerUnavailable) {
			err = errors.Join(domain.ErrAnswerUnavailable, err)
		}
		out.Err = err
		store.SetError(out.Banner)
		out.Reply, out.Delivered = store.AppendAIMessage(session.ID, domain.ErrorReplyText)
		return out, nil
	}

	out.Answer = answer
	out.Reply, out.Delivered = store.AppendAIMessage(session.ID, answer.Text)
	return out, nil
}
