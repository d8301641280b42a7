package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/joho/godotenv"
	"github.com/set-night/docqa/internal/domain"
)

type Config struct {
	// Core
	BotToken string `env:"BOT_TOKEN"`
	APIKey   string `env:"API_KEY,required"`

	// Model provider
	Provider  string `env:"LLM_PROVIDER" envDefault:"openrouter"`
	Model     string `env:"LLM_MODEL"`
	BaseURL   string `env:"LLM_BASE_URL"`
	MaxTokens int    `env:"LLM_MAX_TOKENS" envDefault:"4096"`

	// Answering
	AnswerTimeout    time.Duration `env:"ANSWER_TIMEOUT" envDefault:"0s"`
	MaxDocumentChars int           `env:"MAX_DOCUMENT_CHARS" envDefault:"0"`

	// Workspaces
	WorkspaceIdleTTL time.Duration `env:"WORKSPACE_IDLE_TTL" envDefault:"0s"`

	// Usage display
	ShowUsage           bool    `env:"SHOW_USAGE" envDefault:"false"`
	PromptPricePerM     float64 `env:"PROMPT_PRICE_PER_M" envDefault:"0"`
	CompletionPricePerM float64 `env:"COMPLETION_PRICE_PER_M" envDefault:"0"`

	// Bot behavior
	DropPendingUpdates bool `env:"BOT_DROP_PENDING_UPDATES" envDefault:"false"`

	// Logging
	LogLevel          string `env:"LOG_LEVEL" envDefault:"info"`
	LogTelegramChatID int64  `env:"LOG_TELEGRAM_CHAT_ID"`
	LogTopicError     int    `env:"LOG_TOPIC_ERROR"`
}

// Load reads .env (when present) and the process environment. Any failure is
// wrapped in domain.ErrConfiguration.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: load .env: %w", domain.ErrConfiguration, err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("%w: parse config: %w", domain.ErrConfiguration, err)
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModels[cfg.Provider]
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrConfiguration, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.APIKey, validation.Required),
		validation.Field(&c.Provider, validation.Required, validation.In(ProviderOpenRouter, ProviderOpenAI, ProviderAnthropic)),
		validation.Field(&c.Model, validation.Required),
		validation.Field(&c.MaxTokens, validation.Min(1)),
		validation.Field(&c.AnswerTimeout, validation.Min(time.Duration(0))),
		validation.Field(&c.MaxDocumentChars, validation.Min(0)),
		validation.Field(&c.WorkspaceIdleTTL, validation.Min(time.Duration(0))),
		validation.Field(&c.PromptPricePerM, validation.Min(0.0)),
		validation.Field(&c.CompletionPricePerM, validation.Min(0.0)),
		validation.Field(&c.LogLevel, validation.In("debug", "info", "warn", "error")),
	)
}

// RequireBot checks the settings only the Telegram front end needs.
func (c *Config) RequireBot() error {
	err := validation.ValidateStruct(c,
		validation.Field(&c.BotToken, validation.Required),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrConfiguration, err)
	}
	return nil
}
