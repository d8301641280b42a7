package service

import (
	"context"
	"sync"

	"github.com/set-night/docqa/internal/domain"
	"github.com/set-night/docqa/internal/llm"
)

type fakeCompleter struct {
	mu       sync.Mutex
	requests []llm.Request
	resp     *llm.Completion
	err      error
	// onCall, when set, runs with the call's context before returning.
	onCall func(ctx context.Context)
}

func (f *fakeCompleter) Name() string { return "fake" }

func (f *fakeCompleter) Complete(ctx context.Context, req llm.Request) (*llm.Completion, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()

	if f.onCall != nil {
		f.onCall(ctx)
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

type askCall struct {
	document string
	question string
}

type fakeAnswerer struct {
	mu     sync.Mutex
	calls  []askCall
	answer string
	err    error
	// before, when set, runs inside Ask before the result is returned.
	before func()
}

func (f *fakeAnswerer) Ask(_ context.Context, documentText, question string) (*domain.Answer, error) {
	f.mu.Lock()
	f.calls = append(f.calls, askCall{document: documentText, question: question})
	f.mu.Unlock()

	if f.before != nil {
		f.before()
	}
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Answer{Text: f.answer, Model: "fake-model"}, nil
}

func (f *fakeAnswerer) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}
