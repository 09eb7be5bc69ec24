package llm

import (
	"context"
	"fmt"
)

// Unconfigured stands in for a provider whose credential is missing.
type Unconfigured struct {
	Provider string
}

func (u Unconfigured) Name() string {
	return u.Provider
}

func (u Unconfigured) Generate(ctx context.Context, req Request) (*Response, error) {
	return nil, fmt.Errorf("%s: %w", u.Provider, ErrNotConfigured)
}

// New returns the generator for provider. A missing API key is not an error
// here: the returned generator fails every call with ErrNotConfigured.
func New(ctx context.Context, provider, apiKey, model string) (Generator, error) {
	if apiKey == "" {
		return Unconfigured{Provider: provider}, nil
	}

	switch provider {
	case "gemini", "google":
		return NewGeminiClient(ctx, apiKey, model)
	case "openai":
		return NewOpenAIClient(apiKey, model), nil
	case "anthropic", "claude":
		return NewAnthropicClient(apiKey, model), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q (valid: gemini, openai, anthropic)", provider)
	}
}
