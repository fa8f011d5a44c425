package llm

import (
	"context"
	"fmt"

	"github.com/DeafMist/trend-poster/internal/config"
)

// Backend sends a filled prompt to a text-generation service and returns the raw
// response envelope. ExtractText turns the envelope into text.
type Backend interface {
	Complete(ctx context.Context, prompt string) (any, error)
	Name() string
}

// NewBackend returns the backend selected by cfg.Provider.
func NewBackend(cfg config.LLM) (Backend, error) {
	switch cfg.Provider {
	case config.ProviderOpenAI:
		return NewOpenAI(cfg), nil
	case config.ProviderAnthropic:
		return NewAnthropic(cfg), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}
