package news

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/DeafMist/trend-poster/internal/config"
	"github.com/DeafMist/trend-poster/internal/logger"
	"github.com/DeafMist/trend-poster/internal/models"
)

// RSS reads headlines from a list of RSS or Atom feeds.
type RSS struct {
	feeds  []string
	parser *gofeed.Parser
	log    *slog.Logger
	now    func() time.Time
}

// NewRSS builds a feed reader. A nil httpClient gets one with cfg.HTTPTimeout.
func NewRSS(cfg config.News, httpClient *http.Client, log *slog.Logger) *RSS {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.HTTPTimeout}
	}
	parser := gofeed.NewParser()
	parser.Client = httpClient
	return &RSS{
		feeds:  cfg.RSSFeeds,
		parser: parser,
		log:    logger.OrDiscard(log).With("source", config.SourceRSS),
		now:    time.Now,
	}
}

// Fetch walks the feeds in order and returns up to n items published today (UTC) or undated.
// Only when every feed fails is the result StatusFailed.
func (r *RSS) Fetch(ctx context.Context, n int) Result {
	now := r.now().UTC()
	today := now.Format("2006-01-02")

	var (
		candidates []models.NewsItem
		errs       []error
	)
	for _, feedURL := range r.feeds {
		feed, err := r.parser.ParseURLWithContext(feedURL, ctx)
		if err != nil {
			r.log.Warn("parse feed", slog.String("feed", feedURL), slog.Any("err", err))
			errs = append(errs, fmt.Errorf("feed %s: %w", feedURL, err))
			continue
		}
		for _, item := range feed.Items {
			published := publishedAt(item)
			if !published.IsZero() && published.UTC().Format("2006-01-02") != today {
				continue
			}
			candidates = append(candidates, models.NewsItem{
				Title:       strings.TrimSpace(item.Title),
				Description: strings.TrimSpace(item.Description),
				SourceURL:   item.Link,
				PublishedAt: published,
			})
		}
	}

	if len(errs) > 0 && len(errs) == len(r.feeds) {
		err := errors.Join(errs...)
		r.log.Error("fetch feeds", slog.Any("err", err))
		return failed(err)
	}

	res := collect(candidates, n, now)
	r.log.Info("feeds fetched",
		slog.Int("feeds", len(r.feeds)),
		slog.Int("candidates", len(candidates)),
		slog.Int("kept", len(res.Items)),
	)
	return res
}

func publishedAt(item *gofeed.Item) time.Time {
	switch {
	case item.PublishedParsed != nil:
		return item.PublishedParsed.UTC()
	case item.UpdatedParsed != nil:
		return item.UpdatedParsed.UTC()
	default:
		return time.Time{}
	}
}
