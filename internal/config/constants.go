package config

import "time"

const (
	ProviderOpenRouter = "openrouter"
	ProviderOpenAI     = "openai"
	ProviderAnthropic  = "anthropic"

	OpenRouterBaseURL = "https://openrouter.ai/api/v1"

	// Model catalog
	CatalogRequestTimeout = 15 * time.Second

	// Telegram limits
	MaxTelegramMessageLen = 4096

	// Sessions per history page
	SessionsPerPage = 5

	// Messages replayed when a chat is reopened
	ReplayMessages = 20

	// History button label length
	HistoryLabelLen = 32
)

// DefaultModels is used when LLM_MODEL is not set.
var DefaultModels = map[string]string{
	ProviderOpenRouter: "google/gemini-2.5-flash",
	ProviderOpenAI:     "gpt-4o-mini",
	ProviderAnthropic:  "claude-haiku-4-5",
}

// AcceptedExtensions lists the document types accepted for upload.
var AcceptedExtensions = []string{".txt", ".md", ".json", ".csv"}
