package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/set-night/docqa/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		provider string
		wantName string
		wantErr  bool
	}{
		{provider: config.ProviderOpenRouter, wantName: "openrouter"},
		{provider: config.ProviderOpenAI, wantName: "openai"},
		{provider: config.ProviderAnthropic, wantName: "anthropic"},
		{provider: "gemini", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			c, err := New(&config.Config{Provider: tt.provider, APIKey: "k", MaxTokens: 100})
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, c.Name())
		})
	}
}

func TestOpenAICompleter(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/chat/completions"))
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &gotBody))

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{
			"id": "cmpl-1",
			"object": "chat.completion",
			"created": 1,
			"model": "google/gemini-2.5-flash",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": " Blue. "}, "finish_reason": "stop"}],
			"usage": {"prompt_tokens": 12, "completion_tokens": 2, "total_tokens": 14}
		}`)
	}))
	defer srv.Close()

	c := NewOpenAICompleter("openrouter", "secret", srv.URL)
	got, err := c.Complete(context.Background(), Request{Model: "google/gemini-2.5-flash", Prompt: "hello"})
	require.NoError(t, err)

	assert.Equal(t, " Blue. ", got.Text)
	assert.Equal(t, 12, got.PromptTokens)
	assert.Equal(t, 2, got.CompletionTokens)
	assert.Equal(t, "google/gemini-2.5-flash", gotBody["model"])

	msgs, ok := gotBody["messages"].([]any)
	require.True(t, ok)
	require.Len(t, msgs, 1)
	assert.Equal(t, "hello", msgs[0].(map[string]any)["content"])
}

func TestOpenAICompleterErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "provider error", status: http.StatusInternalServerError, body: `{"error": {"message": "boom", "type": "server_error"}}`},
		{name: "no choices", status: http.StatusOK, body: `{"id": "x", "choices": []}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			c := NewOpenAICompleter("openai", "secret", srv.URL)
			_, err := c.Complete(context.Background(), Request{Model: "m", Prompt: "p"})
			assert.Error(t, err)
		})
	}
}

func TestAnthropicCompleter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/v1/messages"))
		assert.Equal(t, "secret", r.Header.Get("X-Api-Key"))

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{
			"id": "msg_1",
			"type": "message",
			"role": "assistant",
			"model": "claude-haiku-4-5",
			"content": [{"type": "text", "text": "Blue."}],
			"stop_reason": "end_turn",
			"usage": {"input_tokens": 20, "output_tokens": 3}
		}`)
	}))
	defer srv.Close()

	c := NewAnthropicCompleter("secret", srv.URL, 256)
	got, err := c.Complete(context.Background(), Request{Model: "claude-haiku-4-5", Prompt: "hello"})
	require.NoError(t, err)

	assert.Equal(t, "Blue.", got.Text)
	assert.Equal(t, "claude-haiku-4-5", got.Model)
	assert.Equal(t, 20, got.PromptTokens)
	assert.Equal(t, 3, got.CompletionTokens)
}

func TestAnthropicCompleterDoesNotRetry(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, `{"type": "error", "error": {"type": "api_error", "message": "boom"}}`)
	}))
	defer srv.Close()

	c := NewAnthropicCompleter("secret", srv.URL, 256)
	_, err := c.Complete(context.Background(), Request{Model: "claude-haiku-4-5", Prompt: "hello"})
	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}
