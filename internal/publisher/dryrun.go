package publisher

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/DeafMist/trend-poster/internal/config"
	"github.com/DeafMist/trend-poster/internal/logger"
	"github.com/DeafMist/trend-poster/internal/models"
)

// DryRun logs posts instead of sending them.
type DryRun struct {
	log *slog.Logger
}

func NewDryRun(log *slog.Logger) *DryRun {
	return &DryRun{log: logger.OrDiscard(log)}
}

func (d *DryRun) Post(_ context.Context, text string) (models.PostReceipt, error) {
	id := "dry-run-" + uuid.NewString()
	d.log.Info("dry run, post not sent", slog.String("id", id), slog.String("text", text))
	return models.PostReceipt{ID: id, Text: text, PostedAt: time.Now().UTC()}, nil
}

// NewPoster returns the X client, or a DryRun poster when cfg.DryRun is set.
func NewPoster(ctx context.Context, cfg config.X, log *slog.Logger) Poster {
	if cfg.DryRun {
		return NewDryRun(log)
	}
	return NewXClient(ctx, cfg)
}
