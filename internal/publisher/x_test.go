package publisher_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DeafMist/trend-poster/internal/config"
	"github.com/DeafMist/trend-poster/internal/publisher"
	"github.com/stretchr/testify/require"
)

func xConfig(endpoint string) config.X {
	return config.X{
		Endpoint:       endpoint,
		ConsumerKey:    "ck",
		ConsumerSecret: "cs",
		AccessToken:    "at",
		AccessSecret:   "as",
	}
}

func TestXClientPostSignsRequest(t *testing.T) {
	var (
		method, path, auth string
		body               struct {
			Text string `json:"text"`
		}
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		path = r.URL.Path
		auth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"data":{"id":"1790","text":"hello #Zappo"}}`))
	}))
	defer srv.Close()

	client := publisher.NewXClient(context.Background(), xConfig(srv.URL+"/"))
	receipt, err := client.Post(context.Background(), "hello #Zappo")
	require.NoError(t, err)

	require.Equal(t, http.MethodPost, method)
	require.Equal(t, "/2/tweets", path)
	require.Contains(t, auth, "OAuth ")
	require.Contains(t, auth, `oauth_consumer_key="ck"`)
	require.Contains(t, auth, `oauth_token="at"`)
	require.Contains(t, auth, "oauth_signature=")
	require.Equal(t, "hello #Zappo", body.Text)

	require.Equal(t, "1790", receipt.ID)
	require.Equal(t, "hello #Zappo", receipt.Text)
	require.False(t, receipt.PostedAt.IsZero())
}

func TestXClientPostErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{name: "forbidden", status: http.StatusForbidden, body: `{"detail":"duplicate content"}`, want: "403"},
		{name: "rate limited", status: http.StatusTooManyRequests, body: `{"title":"Too Many Requests"}`, want: "429"},
		{name: "missing id", status: http.StatusCreated, body: `{"data":{}}`, want: "missing id"},
		{name: "bad json", status: http.StatusCreated, body: `nope`, want: "decode response"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := publisher.NewXClient(context.Background(), xConfig(srv.URL))
			_, err := client.Post(context.Background(), "hi")
			require.ErrorContains(t, err, tt.want)
		})
	}
}
