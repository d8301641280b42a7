package domain

// Usage is the token accounting reported by the model provider.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
}

type Answer struct {
	Text  string
	Model string
	Usage Usage
}
