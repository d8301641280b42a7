// Package llm adapts hosted model providers to a single non-streaming
// completion call.
package llm

import (
	"context"
	"fmt"

	"github.com/set-night/docqa/internal/config"
)

// Request is a single-prompt completion request.
type Request struct {
	Model  string
	Prompt string
}

type Completion struct {
	Text             string
	Model            string
	PromptTokens     int
	CompletionTokens int
}

// Completer sends one prompt and returns the provider's reply.
type Completer interface {
	Complete(ctx context.Context, req Request) (*Completion, error)
	Name() string
}

// New builds the completer selected by cfg.Provider.
func New(cfg *config.Config) (Completer, error) {
	switch cfg.Provider {
	case config.ProviderOpenRouter:
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = config.OpenRouterBaseURL
		}
		return NewOpenAICompleter(config.ProviderOpenRouter, cfg.APIKey, baseURL), nil
	case config.ProviderOpenAI:
		return NewOpenAICompleter(config.ProviderOpenAI, cfg.APIKey, cfg.BaseURL), nil
	case config.ProviderAnthropic:
		return NewAnthropicCompleter(cfg.APIKey, cfg.BaseURL, cfg.MaxTokens), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s (supported: %s, %s, %s)",
			cfg.Provider, config.ProviderOpenRouter, config.ProviderOpenAI, config.ProviderAnthropic)
	}
}
