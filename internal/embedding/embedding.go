// Package embedding provides the external embedding provider client, turning
// text into fixed-length numeric vectors. The provider is rate-limited and
// billable; every call carries a bounded timeout and bounded retries.
package embedding

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/jonathan/skillmatch/internal/llm"
)

// Provider turns text into a fixed-length embedding vector.
type Provider interface {
	// Embed generates the embedding vector for text.
	Embed(ctx context.Context, text string) ([]float64, error)
	// Close releases any resources held by the provider.
	Close() error
}

// GeminiProvider implements Provider using the Gemini embedding models.
type GeminiProvider struct {
	client *genai.Client
	config *llm.Config
	retry  *llm.RetryPolicy
}

// NewGeminiProvider creates an embedding provider backed by Gemini.
func NewGeminiProvider(ctx context.Context, config *llm.Config, apiKey string) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if config == nil {
		config = llm.DefaultConfig()
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiProvider{
		client: client,
		config: config,
		retry:  llm.DefaultRetryPolicy(),
	}, nil
}

// Embed generates the embedding vector for text. Empty text is rejected up
// front rather than spent on a billable call that yields a degenerate vector.
func (p *GeminiProvider) Embed(ctx context.Context, text string) ([]float64, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("text cannot be empty")
	}

	model := p.client.EmbeddingModel(p.config.EmbeddingModel)

	var vector []float64
	err := p.retry.Do(ctx, func(ctx context.Context) error {
		callCtx, cancel := context.WithTimeout(ctx, p.config.Timeout())
		defer cancel()

		resp, err := model.EmbedContent(callCtx, genai.Text(text))
		if err != nil {
			return err
		}
		if resp.Embedding == nil || len(resp.Embedding.Values) == 0 {
			return &llm.ProviderError{Kind: llm.KindUnavailable, Message: "empty embedding in response"}
		}

		vector = make([]float64, len(resp.Embedding.Values))
		for i, v := range resp.Embedding.Values {
			vector[i] = float64(v)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}

	return vector, nil
}

// Close releases resources held by the provider.
func (p *GeminiProvider) Close() error {
	if p.client != nil {
		return p.client.Close()
	}
	return nil
}
