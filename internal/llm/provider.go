// Package llm provides a pluggable interface for LLM providers.
package llm

import (
	"context"
	"fmt"

	"github.com/debatesphere/claimcheck/internal/config"
)

// CompletionOptions contains options for completion requests.
type CompletionOptions struct {
	MaxTokens   int
	Temperature float64
	Model       string
}

// DefaultCompletionOptions returns sensible defaults.
func DefaultCompletionOptions() CompletionOptions {
	return CompletionOptions{
		MaxTokens:   2048,
		Temperature: 0.0,
	}
}

// Provider defines the interface for LLM providers.
type Provider interface {
	// CompleteWithSystem generates a completion with a system prompt.
	CompleteWithSystem(ctx context.Context, system, user string, opts CompletionOptions) (string, error)

	// Name returns the provider name.
	Name() string
}

// NewProvider creates a new LLM provider based on configuration.
// Returns (nil, nil) when no provider is configured: the generative
// evidence source is optional.
func NewProvider(cfg *config.LLMConfig) (Provider, error) {
	switch cfg.Provider {
	case "":
		return nil, nil
	case "openai":
		return NewOpenAIProvider(cfg)
	case "ollama":
		return NewOllamaProvider(cfg)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}
