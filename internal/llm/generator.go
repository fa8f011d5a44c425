package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/DeafMist/trend-poster/internal/config"
	"github.com/DeafMist/trend-poster/internal/logger"
	"github.com/DeafMist/trend-poster/internal/models"
	"github.com/DeafMist/trend-poster/internal/processing"
)

// ErrEmptyGeneration is returned when the backend produced nothing usable after sanitizing.
var ErrEmptyGeneration = errors.New("empty generation")

// Generator turns a headline or a topic into a persona-voiced post.
type Generator struct {
	backend Backend
	persona config.Persona
	log     *slog.Logger
}

func NewGenerator(backend Backend, persona config.Persona, log *slog.Logger) *Generator {
	return &Generator{
		backend: backend,
		persona: persona,
		log:     logger.OrDiscard(log).With("backend", backend.Name()),
	}
}

// Generate writes a post about a news item.
func (g *Generator) Generate(ctx context.Context, item models.NewsItem) (models.GeneratedPost, error) {
	return g.generate(ctx, promptData{
		Name:        g.persona.Name,
		Hashtags:    g.persona.Hashtags,
		Topic:       item.Title,
		Title:       item.Title,
		Description: item.Description,
		Topics:      item.Topics,
	})
}

// GenerateFromTopic writes a post about a bare topic such as a hashtag.
func (g *Generator) GenerateFromTopic(ctx context.Context, topic string) (models.GeneratedPost, error) {
	return g.generate(ctx, promptData{
		Name:     g.persona.Name,
		Hashtags: g.persona.Hashtags,
		Topic:    topic,
	})
}

func (g *Generator) generate(ctx context.Context, data promptData) (models.GeneratedPost, error) {
	prompt, err := renderPrompt(data)
	if err != nil {
		return models.GeneratedPost{}, fmt.Errorf("render prompt: %w", err)
	}

	resp, err := g.backend.Complete(ctx, prompt)
	if err != nil {
		g.log.Error("generate post", slog.Any("err", err))
		return models.GeneratedPost{}, fmt.Errorf("generate post: %w", err)
	}

	raw := ExtractText(resp)
	post := models.GeneratedPost{RawText: raw, CleanText: processing.Sanitize(raw)}
	if post.CleanText == "" {
		g.log.Warn("empty generation", slog.Int("raw_len", len(raw)))
		return post, ErrEmptyGeneration
	}

	g.log.Debug("post generated", slog.Int("length", len([]rune(post.CleanText))))
	return post, nil
}
