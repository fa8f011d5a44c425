package status_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/DeafMist/trend-poster/internal/models"
	"github.com/DeafMist/trend-poster/internal/status"
	"github.com/stretchr/testify/require"
)

func outcome(i int) models.RunOutcome {
	return models.RunOutcome{RunID: fmt.Sprintf("run-%d", i), Status: models.RunPosted}
}

func TestTrackerEmpty(t *testing.T) {
	tr := status.NewTracker(3)

	require.Empty(t, tr.Recent(0))
	_, ok := tr.Last()
	require.False(t, ok)
	require.Zero(t, tr.Total())
}

func TestTrackerKeepsNewestFirst(t *testing.T) {
	tr := status.NewTracker(3)
	for i := 1; i <= 5; i++ {
		tr.Observe(context.Background(), outcome(i))
	}

	ids := func(runs []models.RunOutcome) []string {
		out := make([]string, 0, len(runs))
		for _, r := range runs {
			out = append(out, r.RunID)
		}
		return out
	}

	require.Equal(t, []string{"run-5", "run-4", "run-3"}, ids(tr.Recent(0)))
	require.Equal(t, []string{"run-5", "run-4"}, ids(tr.Recent(2)))
	last, ok := tr.Last()
	require.True(t, ok)
	require.Equal(t, "run-5", last.RunID)
	require.Equal(t, 5, tr.Total())
}

func TestTrackerConcurrentObserve(t *testing.T) {
	tr := status.NewTracker(0)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tr.Observe(context.Background(), outcome(i))
			_ = tr.Recent(5)
		}(i)
	}
	wg.Wait()

	require.Equal(t, 100, tr.Total())
	require.Len(t, tr.Recent(0), status.DefaultCapacity)
}
