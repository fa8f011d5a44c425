package publisher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dghubble/oauth1"

	"github.com/DeafMist/trend-poster/internal/config"
	"github.com/DeafMist/trend-poster/internal/models"
)

type createPostRequest struct {
	Text string `json:"text"`
}

type createPostResponse struct {
	Data struct {
		ID   string `json:"id"`
		Text string `json:"text"`
	} `json:"data"`
}

// XClient posts to the X API v2 with OAuth 1.0a user context.
type XClient struct {
	endpoint string
	http     *http.Client
	now      func() time.Time
}

// NewXClient signs every request with the four account credentials in cfg.
func NewXClient(ctx context.Context, cfg config.X) *XClient {
	oauthCfg := oauth1.NewConfig(cfg.ConsumerKey, cfg.ConsumerSecret)
	token := oauth1.NewToken(cfg.AccessToken, cfg.AccessSecret)
	return newXClient(cfg.Endpoint, oauthCfg.Client(ctx, token))
}

func newXClient(endpoint string, httpClient *http.Client) *XClient {
	return &XClient{
		endpoint: strings.TrimRight(endpoint, "/"),
		http:     httpClient,
		now:      time.Now,
	}
}

// Post creates a post and returns its id.
func (c *XClient) Post(ctx context.Context, text string) (models.PostReceipt, error) {
	payload, err := json.Marshal(createPostRequest{Text: text})
	if err != nil {
		return models.PostReceipt{}, fmt.Errorf("encode post: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/2/tweets", bytes.NewReader(payload))
	if err != nil {
		return models.PostReceipt{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return models.PostReceipt{}, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return models.PostReceipt{}, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return models.PostReceipt{}, fmt.Errorf("x api status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var created createPostResponse
	if err := json.Unmarshal(body, &created); err != nil {
		return models.PostReceipt{}, fmt.Errorf("decode response: %w", err)
	}
	if created.Data.ID == "" {
		return models.PostReceipt{}, fmt.Errorf("x api response missing id: %s", strings.TrimSpace(string(body)))
	}

	return models.PostReceipt{
		ID:       created.Data.ID,
		Text:     created.Data.Text,
		PostedAt: c.now().UTC(),
	}, nil
}
