package ocr

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const visionPrompt = `Transcribe all text visible in this image.
Return the text exactly as it appears, one line per visual line.
Do not add commentary, headers, or markdown.`

// LLMVisionProvider implements OCR by sending the image to a vision-capable
// model behind an OpenAI-compatible endpoint. Configured separately from the
// general LLM endpoint so a dedicated OCR model can be used.
type LLMVisionProvider struct {
	client *openai.Client
	model  string
}

// NewLLMVisionProvider creates an LLM-backed OCR provider
func NewLLMVisionProvider(apiKey, baseURL, model string) *LLMVisionProvider {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &LLMVisionProvider{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

// ExtractText extracts text from image using the vision model
func (p *LLMVisionProvider) ExtractText(ctx context.Context, imageData []byte) (*Result, error) {
	encoded := base64.StdEncoding.EncodeToString(imageData)

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeText,
						Text: visionPrompt,
					},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL: "data:image/jpeg;base64," + encoded,
						},
					},
				},
			},
		},
		Temperature: 0.0,
	})
	if err != nil {
		return nil, fmt.Errorf("vision model error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from vision model")
	}

	return &Result{
		Text:       strings.TrimSpace(resp.Choices[0].Message.Content),
		Confidence: 0.85,
	}, nil
}

// GetProviderName returns the name of the provider
func (p *LLMVisionProvider) GetProviderName() string {
	return fmt.Sprintf("LLM Vision (%s)", p.model)
}
