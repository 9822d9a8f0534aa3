package ocr

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/otiai10/gosseract/v2"
)

// TesseractProvider implements OCR using the Tesseract engine via gosseract.
// The client loads the recognition model on first use and is reused across
// calls; initialization is expensive enough that a per-call client would
// dominate crop processing time.
type TesseractProvider struct {
	languages []string

	mu     sync.Mutex // gosseract clients are not safe for concurrent use
	client *gosseract.Client
}

// NewTesseractProvider creates a new Tesseract OCR provider.
// languages is a tesseract language spec such as "chi_sim+eng".
func NewTesseractProvider(languages string) *TesseractProvider {
	if languages == "" {
		languages = "eng"
	}
	return &TesseractProvider{
		languages: strings.Split(languages, "+"),
	}
}

// ExtractText extracts text from an image using Tesseract
func (p *TesseractProvider) ExtractText(ctx context.Context, imageData []byte) (*Result, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.client == nil {
		client := gosseract.NewClient()
		if err := client.SetLanguage(p.languages...); err != nil {
			client.Close()
			return nil, fmt.Errorf("failed to set tesseract languages: %w", err)
		}
		p.client = client
	}

	if err := p.client.SetImageFromBytes(imageData); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	text, err := p.client.Text()
	if err != nil {
		return nil, fmt.Errorf("tesseract recognition failed: %w", err)
	}

	return &Result{
		Text:       strings.TrimSpace(text),
		Confidence: 0.90, // tesseract does not report page confidence here
	}, nil
}

// Close releases the underlying tesseract client
func (p *TesseractProvider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.client != nil {
		err := p.client.Close()
		p.client = nil
		return err
	}
	return nil
}

// GetProviderName returns the name of the provider
func (p *TesseractProvider) GetProviderName() string {
	return "Tesseract OCR"
}
