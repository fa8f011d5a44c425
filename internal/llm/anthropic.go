package llm

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	anthoption "github.com/anthropics/anthropic-sdk-go/option"

	"github.com/DeafMist/trend-poster/internal/config"
)

const defaultAnthropicMaxTokens = 1024

// Anthropic calls the Messages API.
type Anthropic struct {
	client      *anthropic.Client
	model       anthropic.Model
	temperature float64
	maxTokens   int64
}

func NewAnthropic(cfg config.LLM) *Anthropic {
	opts := []anthoption.RequestOption{
		anthoption.WithAPIKey(cfg.APIKey),
		anthoption.WithMaxRetries(cfg.MaxRetries),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, anthoption.WithBaseURL(cfg.BaseURL))
	}
	maxTokens := int64(cfg.MaxTokens)
	if maxTokens <= 0 {
		maxTokens = defaultAnthropicMaxTokens
	}
	client := anthropic.NewClient(opts...)
	return &Anthropic{
		client:      &client,
		model:       anthropic.Model(cfg.Model),
		temperature: cfg.Temperature,
		maxTokens:   maxTokens,
	}
}

func (c *Anthropic) Name() string { return config.ProviderAnthropic }

// Complete returns the *anthropic.Message for prompt.
func (c *Anthropic) Complete(ctx context.Context, prompt string) (any, error) {
	resp, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       c.model,
		MaxTokens:   c.maxTokens,
		Temperature: anthropic.Float(c.temperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("anthropic API error: %w", err)
	}
	return resp, nil
}
