package news

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/DeafMist/trend-poster/internal/config"
	"github.com/DeafMist/trend-poster/internal/logger"
	"github.com/DeafMist/trend-poster/internal/models"
)

type article struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt"`
}

type headlinesResponse struct {
	Status   string    `json:"status"`
	Code     string    `json:"code"`
	Message  string    `json:"message"`
	Articles []article `json:"articles"`
}

// NewsAPI fetches top headlines from newsapi.org.
type NewsAPI struct {
	cfg  config.News
	http *http.Client
	log  *slog.Logger
	now  func() time.Time
}

// NewNewsAPI builds a headlines client. A nil httpClient gets one with cfg.HTTPTimeout.
func NewNewsAPI(cfg config.News, httpClient *http.Client, log *slog.Logger) *NewsAPI {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.HTTPTimeout}
	}
	return &NewsAPI{
		cfg:  cfg,
		http: httpClient,
		log:  logger.OrDiscard(log).With("source", config.SourceNewsAPI),
		now:  time.Now,
	}
}

// Fetch returns up to n of today's headlines in the source's popularity order.
func (c *NewsAPI) Fetch(ctx context.Context, n int) Result {
	articles, err := c.request(ctx)
	if err != nil {
		c.log.Error("fetch headlines", slog.Any("err", err))
		return failed(err)
	}

	candidates := make([]models.NewsItem, 0, len(articles))
	for _, a := range articles {
		candidates = append(candidates, models.NewsItem{
			Title:       strings.TrimSpace(a.Title),
			Description: strings.TrimSpace(a.Description),
			SourceURL:   a.URL,
			PublishedAt: parsePublished(a.PublishedAt),
		})
	}

	res := collect(candidates, n, c.now().UTC())
	c.log.Info("headlines fetched",
		slog.Int("received", len(articles)),
		slog.Int("kept", len(res.Items)),
	)
	return res
}

func (c *NewsAPI) request(ctx context.Context) ([]article, error) {
	params := url.Values{}
	params.Set("apiKey", c.cfg.APIKey)
	params.Set("language", c.cfg.Language)
	params.Set("sortBy", c.cfg.SortBy)
	params.Set("pageSize", strconv.Itoa(c.cfg.PageSize))
	params.Set("from", c.now().Format("2006-01-02"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.Endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload headlinesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if payload.Status == "error" {
		return nil, fmt.Errorf("newsapi error %s: %s", payload.Code, payload.Message)
	}
	return payload.Articles, nil
}

func parsePublished(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	ts, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}
	return ts.UTC()
}
