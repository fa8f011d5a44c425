package scheduler_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DeafMist/trend-poster/internal/scheduler"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now   time.Time
	waits []time.Duration
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) After(d time.Duration) <-chan time.Time {
	c.waits = append(c.waits, d)
	c.now = c.now.Add(d)
	ch := make(chan time.Time, 1)
	ch <- c.now
	return ch
}

func TestRunImmediatelyThenEveryInterval(t *testing.T) {
	start := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	clock := &fakeClock{now: start}
	sched, err := scheduler.ParseSchedule(40*time.Minute, "")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var runs []time.Time
	job := func(ctx context.Context) error {
		runs = append(runs, clock.Now())
		switch len(runs) {
		case 1:
			return errors.New("generation backend down")
		case 2:
			panic("unexpected response")
		case 4:
			cancel()
		}
		return nil
	}

	scheduler.New(sched, clock, nil).Run(ctx, job)

	require.Equal(t, []time.Time{
		start,
		start.Add(40 * time.Minute),
		start.Add(80 * time.Minute),
		start.Add(120 * time.Minute),
	}, runs)
	require.Equal(t, []time.Duration{40 * time.Minute, 40 * time.Minute, 40 * time.Minute}, clock.waits)
}

func TestRunStopsWhenCancelledBeforeNextActivation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	sched, err := scheduler.ParseSchedule(time.Hour, "")
	require.NoError(t, err)

	scheduler.New(sched, &fakeClock{now: time.Now()}, nil).Run(ctx, func(context.Context) error {
		calls++
		return nil
	})

	require.Equal(t, 1, calls)
}

func TestParseSchedule(t *testing.T) {
	base := time.Date(2024, 5, 1, 10, 15, 0, 0, time.UTC)

	every, err := scheduler.ParseSchedule(40*time.Minute, "")
	require.NoError(t, err)
	require.Equal(t, base.Add(40*time.Minute), every.Next(base))

	hourly, err := scheduler.ParseSchedule(40*time.Minute, "CRON_TZ=UTC 0 * * * *")
	require.NoError(t, err)
	require.Equal(t, time.Date(2024, 5, 1, 11, 0, 0, 0, time.UTC), hourly.Next(base))

	_, err = scheduler.ParseSchedule(time.Minute, "not a cron")
	require.Error(t, err)

	_, err = scheduler.ParseSchedule(0, "")
	require.Error(t, err)
}
