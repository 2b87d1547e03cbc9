package llm

import (
	"context"
	"fmt"
)

// Provider defines the contract for the external model services the
// pipeline depends on: text embedding, entailment classification, and
// free-form generation (used for summaries and extraction fallback).
// Providers are process-wide singletons; implementations must be safe
// for concurrent use.
type Provider interface {
	// Name returns the provider name
	Name() string

	// Embed generates one embedding vector per input text
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// ClassifyEntailment runs an NLI-style judgment of the premise
	// (evidence) against the hypothesis (claim)
	ClassifyEntailment(ctx context.Context, premise, hypothesis string) (Entailment, error)

	// Generate produces free-form text for the given prompt
	Generate(ctx context.Context, prompt string, maxTokens int) (string, error)

	// IsAvailable checks if the provider is configured and reachable
	IsAvailable(ctx context.Context) bool
}

// Entailment is the raw judgment of the entailment classifier
type Entailment struct {
	// Label is the classifier's top label, lowercased:
	// "entailment", "contradiction", or anything else (treated neutral)
	Label string

	// Score is the probability of the top label in [0, 1]
	Score float64
}

// Config holds provider configuration
type Config struct {
	// Provider name: "openai", "huggingface"
	Provider string

	// Model is the generation model name (provider-specific)
	Model string

	// EmbeddingModel is the embedding model name
	EmbeddingModel string

	// EntailmentModel is the NLI classifier model name
	EntailmentModel string

	// APIKey authenticates against the provider
	APIKey string

	// BaseURL overrides the provider endpoint
	BaseURL string

	// Timeout for API requests, in seconds
	Timeout int

	// MaxTokens caps generation length
	MaxTokens int

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:        "openai",
		Model:           "gpt-4o-mini",
		EmbeddingModel:  "text-embedding-3-small",
		EntailmentModel: "roberta-large-mnli",
		Timeout:         30,
		MaxTokens:       1000,
	}
}

// Validate checks the configuration for obvious problems
func (c Config) Validate() error {
	switch c.Provider {
	case "openai", "huggingface":
		if c.APIKey == "" {
			return fmt.Errorf("%s: API key is required", c.Provider)
		}
		return nil
	case "":
		return fmt.Errorf("provider is required")
	default:
		return fmt.Errorf("unknown provider: %s", c.Provider)
	}
}
