package llm

import (
	"context"
	"log"
)

// Service wraps the LLM provider for dependency injection
type Service struct {
	provider Provider
}

// NewService creates an LLM service for the given endpoint config
func NewService(cfg ProviderConfig) *Service {
	if cfg.APIKey == "" {
		log.Println("⚠️ OPENAI_API_KEY is empty, LLM calls will fail")
	}
	provider := NewOpenAIProvider(cfg)
	log.Printf("🤖 Using LLM provider: %s (model: %s)", provider.GetProviderName(), cfg.Model)
	return &Service{provider: provider}
}

// NewServiceWithProvider creates a service with a custom provider (for testing)
func NewServiceWithProvider(provider Provider) *Service {
	return &Service{provider: provider}
}

// GenerateResponse generates a model response
func (s *Service) GenerateResponse(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	return s.provider.GenerateResponse(ctx, systemPrompt, userMessage)
}

// GetProviderName returns current provider name
func (s *Service) GetProviderName() string {
	return s.provider.GetProviderName()
}
