package processing_test

import (
	"strings"
	"testing"

	"github.com/DeafMist/trend-poster/internal/processing"
	"github.com/stretchr/testify/require"
)

func TestExtractTopicsCapitalizedWords(t *testing.T) {
	got := processing.ExtractTopics("NASA Confirms Water on Mars", "")

	require.Equal(t, "#Confirms #Mars #NASA #Water", got)
	for _, tag := range strings.Fields(got) {
		require.True(t, strings.HasPrefix(tag, "#"))
		require.Greater(t, len(strings.TrimPrefix(tag, "#")), 2)
	}
}

func TestExtractTopicsFallback(t *testing.T) {
	tests := []struct {
		name        string
		title       string
		description string
	}{
		{name: "empty", title: "", description: ""},
		{name: "lowercase", title: "markets rally after quiet week", description: "stocks closed higher"},
		{name: "short tokens only", title: "US and UK", description: "an EU deal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, processing.FallbackTopic, processing.ExtractTopics(tt.title, tt.description))
		})
	}
}

func TestExtractTopicsUsesDescriptionAndDedupes(t *testing.T) {
	got := processing.ExtractTopics("Officials said Biden", "a visit to Paris and Paris again")

	require.Equal(t, "#Biden #Officials #Paris", got)
}

func TestSplitTopics(t *testing.T) {
	require.Equal(t, []string{"#A1x", "#Mars"}, processing.SplitTopics(" #A1x  #Mars "))
	require.Empty(t, processing.SplitTopics(""))
}
