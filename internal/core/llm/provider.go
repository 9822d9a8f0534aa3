package llm

import "context"

// Provider interface for chat-completion backends
type Provider interface {
	GenerateResponse(ctx context.Context, systemPrompt, userMessage string) (string, error)
	GetProviderName() string
}

// ProviderConfig holds connection settings for a provider
type ProviderConfig struct {
	APIKey      string
	BaseURL     string // OpenAI-compatible endpoint, empty for api.openai.com
	Model       string
	Temperature float32
	MaxTokens   int
}
