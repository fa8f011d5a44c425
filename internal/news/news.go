package news

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/DeafMist/trend-poster/internal/config"
	"github.com/DeafMist/trend-poster/internal/models"
	"github.com/DeafMist/trend-poster/internal/processing"
)

// Status tells the caller whether a fetch produced usable headlines.
type Status string

const (
	StatusFound  Status = "found"
	StatusEmpty  Status = "empty"
	StatusFailed Status = "failed"
)

// Result is the outcome of a fetch. Err is set only when Status is StatusFailed.
type Result struct {
	Status Status
	Items  []models.NewsItem
	Err    error
}

// Fetcher returns up to n current headlines. Fetch never fails with an error;
// problems are reported through Result.
type Fetcher interface {
	Fetch(ctx context.Context, n int) Result
}

func failed(err error) Result {
	return Result{Status: StatusFailed, Err: err}
}

// collect keeps the source ordering, drops invalid items and caps the list at n.
func collect(candidates []models.NewsItem, n int, fetchedAt time.Time) Result {
	items := make([]models.NewsItem, 0, min(len(candidates), n))
	for _, item := range candidates {
		if len(items) >= n {
			break
		}
		if !item.Valid() {
			continue
		}
		item.Topics = processing.ExtractTopics(item.Title, item.Description)
		item.FetchedAt = fetchedAt
		items = append(items, item)
	}
	if len(items) == 0 {
		return Result{Status: StatusEmpty}
	}
	return Result{Status: StatusFound, Items: items}
}

// New returns the fetcher selected by cfg.Source.
func New(cfg config.News, log *slog.Logger) (Fetcher, error) {
	switch cfg.Source {
	case config.SourceNewsAPI:
		return NewNewsAPI(cfg, nil, log), nil
	case config.SourceRSS:
		return NewRSS(cfg, nil, log), nil
	default:
		return nil, fmt.Errorf("unknown news source %q", cfg.Source)
	}
}
