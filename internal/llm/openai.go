package llm

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	oaoption "github.com/openai/openai-go/option"

	"github.com/DeafMist/trend-poster/internal/config"
)

// OpenAI talks to any OpenAI-compatible chat completions API. Groq is the default target.
type OpenAI struct {
	client      *openai.Client
	model       openai.ChatModel
	temperature float64
	maxTokens   int
}

// NewOpenAI builds the client. Retries are configured here and nowhere else.
func NewOpenAI(cfg config.LLM) *OpenAI {
	opts := []oaoption.RequestOption{
		oaoption.WithAPIKey(cfg.APIKey),
		oaoption.WithMaxRetries(cfg.MaxRetries),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, oaoption.WithBaseURL(cfg.BaseURL))
	}
	client := openai.NewClient(opts...)
	return &OpenAI{
		client:      &client,
		model:       openai.ChatModel(cfg.Model),
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
	}
}

func (c *OpenAI) Name() string { return config.ProviderOpenAI }

// Complete returns the *openai.ChatCompletion for prompt.
func (c *OpenAI) Complete(ctx context.Context, prompt string) (any, error) {
	params := openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(c.temperature),
	}
	if c.maxTokens > 0 {
		params.MaxTokens = openai.Int(int64(c.maxTokens))
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("openai API error: %w", err)
	}
	return resp, nil
}
