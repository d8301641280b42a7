package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/set-night/docqa/internal/domain"
	"github.com/set-night/docqa/internal/llm"
)

const promptTemplate = `Based on the following document, please answer the question. Your answer should be concise and directly based on the information in the document. If the answer cannot be found in the document, state clearly that the information is not available in the provided text.

--- DOCUMENT START ---
%s
--- DOCUMENT END ---

Question: %s`

// BuildPrompt embeds the whole document between delimiters, followed by the question.
func BuildPrompt(documentText, question string) string {
	return fmt.Sprintf(promptTemplate, documentText, question)
}

// AnswerService answers questions about a document with one completion call.
// Every failure is reported as domain.ErrAnswerUnavailable; the cause is only logged.
type AnswerService struct {
	completer llm.Completer
	model     string
	timeout   time.Duration
}

// NewAnswerService creates the service. A zero timeout leaves the call unbounded.
func NewAnswerService(completer llm.Completer, model string, timeout time.Duration) *AnswerService {
	return &AnswerService{
		completer: completer,
		model:     model,
		timeout:   timeout,
	}
}

func (s *AnswerService) Ask(ctx context.Context, documentText, question string) (*domain.Answer, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	resp, err := s.completer.Complete(ctx, llm.Request{
		Model:  s.model,
		Prompt: BuildPrompt(documentText, question),
	})
	if err != nil {
		slog.Error("answer request failed", "error", err, "provider", s.completer.Name(), "model", s.model)
		return nil, domain.ErrAnswerUnavailable
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		slog.Error("answer request returned empty text", "provider", s.completer.Name(), "model", s.model)
		return nil, domain.ErrAnswerUnavailable
	}

	model := resp.Model
	if model == "" {
		model = s.model
	}
	return &domain.Answer{
		Text:  text,
		Model: model,
		Usage: domain.Usage{
			PromptTokens:     resp.PromptTokens,
			CompletionTokens: resp.CompletionTokens,
		},
	}, nil
}
