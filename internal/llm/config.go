// Package llm provides centralized LLM configuration and client abstractions
// for the matching engine's extraction and normalization calls.
package llm

import "time"

// ModelTier represents the complexity/capability level of a model
type ModelTier string

const (
	// TierLite is for simple tasks: skill normalization, label cleanup
	TierLite ModelTier = "lite"
	// TierStandard is for moderate reasoning: structured skill extraction
	TierStandard ModelTier = "standard"
	// TierAdvanced is for complex reasoning; kept so callers can opt individual
	// operations up without a client change
	TierAdvanced ModelTier = "advanced"
)

// Provider represents an LLM provider
type Provider string

// Provider constants define supported LLM providers
const (
	// ProviderGemini is the Google Gemini provider
	ProviderGemini Provider = "gemini"
)

// Config holds the model configuration for the engine
type Config struct {
	Provider Provider
	Models   map[ModelTier]string
	// EmbeddingModel is the model used by the embedding provider client
	EmbeddingModel string
	// RequestTimeout bounds every individual provider call
	RequestTimeout time.Duration
}

// DefaultConfig returns the default configuration (currently Gemini)
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
		EmbeddingModel: "text-embedding-004",
		RequestTimeout: 30 * time.Second,
	}
}

// GetModel returns the model name for a given tier
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	// Fallback chain: try standard, then lite
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return ""
}

// Timeout returns the configured request timeout, or a sane default.
func (c *Config) Timeout() time.Duration {
	if c.RequestTimeout > 0 {
		return c.RequestTimeout
	}
	return 30 * time.Second
}
