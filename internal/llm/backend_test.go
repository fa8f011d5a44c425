package llm_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/DeafMist/trend-poster/internal/config"
	"github.com/DeafMist/trend-poster/internal/llm"
)

func TestOpenAIBackendComplete(t *testing.T) {
	var body struct {
		Model       string  `json:"model"`
		Temperature float64 `json:"temperature"`
		Messages    []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	var auth, path string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		auth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"cmpl-1","object":"chat.completion","created":1,"model":"llama",
			"choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":"hello from groq"}}]}`))
	}))
	defer srv.Close()

	backend := llm.NewOpenAI(config.LLM{
		Provider:    config.ProviderOpenAI,
		APIKey:      "groq-key",
		BaseURL:     srv.URL + "/",
		Model:       "llama-3.1-70b-versatile",
		Temperature: 0.6,
		MaxTokens:   256,
	})

	resp, err := backend.Complete(context.Background(), "write something")
	require.NoError(t, err)
	require.Equal(t, "hello from groq", llm.ExtractText(resp))
	require.Equal(t, "/chat/completions", path)
	require.Equal(t, "Bearer groq-key", auth)
	require.Equal(t, "llama-3.1-70b-versatile", body.Model)
	require.InDelta(t, 0.6, body.Temperature, 1e-9)
	require.Len(t, body.Messages, 1)
	require.Equal(t, "user", body.Messages[0].Role)
	require.Equal(t, "write something", body.Messages[0].Content)
}

func TestOpenAIBackendError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"bad key","type":"invalid_request_error"}}`))
	}))
	defer srv.Close()

	backend := llm.NewOpenAI(config.LLM{APIKey: "k", BaseURL: srv.URL + "/", Model: "m"})

	_, err := backend.Complete(context.Background(), "x")
	require.ErrorContains(t, err, "openai API error")
}

func TestAnthropicBackendComplete(t *testing.T) {
	var body struct {
		Model     string `json:"model"`
		MaxTokens int    `json:"max_tokens"`
	}
	var key, path string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		key = r.Header.Get("X-Api-Key")
		_ = json.NewDecoder(r.Body).Decode(&body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"msg_1","type":"message","role":"assistant","model":"claude",
			"content":[{"type":"text","text":"hello from claude"}],
			"stop_reason":"end_turn","usage":{"input_tokens":3,"output_tokens":4}}`))
	}))
	defer srv.Close()

	backend := llm.NewAnthropic(config.LLM{
		Provider: config.ProviderAnthropic,
		APIKey:   "anth-key",
		BaseURL:  srv.URL + "/",
		Model:    "claude-3-5-haiku-latest",
	})

	resp, err := backend.Complete(context.Background(), "write something")
	require.NoError(t, err)
	require.Equal(t, "hello from claude", llm.ExtractText(resp))
	require.Equal(t, "/v1/messages", path)
	require.Equal(t, "anth-key", key)
	require.Equal(t, "claude-3-5-haiku-latest", body.Model)
	require.Equal(t, 1024, body.MaxTokens)
}

func TestNewBackend(t *testing.T) {
	b, err := llm.NewBackend(config.LLM{Provider: config.ProviderOpenAI, APIKey: "k"})
	require.NoError(t, err)
	require.Equal(t, config.ProviderOpenAI, b.Name())

	b, err = llm.NewBackend(config.LLM{Provider: config.ProviderAnthropic, APIKey: "k"})
	require.NoError(t, err)
	require.Equal(t, config.ProviderAnthropic, b.Name())

	_, err = llm.NewBackend(config.LLM{Provider: "other"})
	require.Error(t, err)
}
