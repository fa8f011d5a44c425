package publisher

import (
	"context"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/DeafMist/trend-poster/internal/logger"
	"github.com/DeafMist/trend-poster/internal/models"
	"github.com/DeafMist/trend-poster/internal/processing"
)

const (
	// DefaultMaxLength is the X post ceiling in characters.
	DefaultMaxLength = 280
	ellipsis         = "..."
)

// Poster submits final text to a posting backend.
type Poster interface {
	Post(ctx context.Context, text string) (models.PostReceipt, error)
}

// Publisher enforces the length ceiling and hands text to a Poster.
type Publisher struct {
	poster    Poster
	maxLength int
	log       *slog.Logger
}

// New builds a Publisher. maxLength <= len("...") falls back to DefaultMaxLength.
func New(poster Poster, maxLength int, log *slog.Logger) *Publisher {
	if maxLength <= len(ellipsis) {
		maxLength = DefaultMaxLength
	}
	return &Publisher{
		poster:    poster,
		maxLength: maxLength,
		log:       logger.OrDiscard(log),
	}
}

// Publish sanitizes, truncates and posts text.
func (p *Publisher) Publish(ctx context.Context, text string) (models.PostReceipt, error) {
	final := Truncate(processing.Sanitize(text), p.maxLength)

	receipt, err := p.poster.Post(ctx, final)
	if err != nil {
		p.log.Error("publish post", slog.Any("err", err))
		return models.PostReceipt{}, fmt.Errorf("publish post: %w", err)
	}

	p.log.Info("post published", slog.String("id", receipt.ID), slog.String("text", final))
	return receipt, nil
}

// Truncate shortens s to at most limit runes, replacing the tail with "..." when cut.
func Truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit-len(ellipsis)]) + ellipsis
}
