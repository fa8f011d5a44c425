package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/DeafMist/trend-poster/internal/logger"
)

// Job is one unit of scheduled work.
type Job func(ctx context.Context) error

// Clock abstracts time so tests can fast-forward.
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

type realClock struct{}

func (realClock) Now() time.Time                         { return time.Now() }
func (realClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

// RealClock returns the wall clock.
func RealClock() Clock { return realClock{} }

// ParseSchedule returns a standard cron schedule when expr is set, otherwise a fixed interval.
func ParseSchedule(interval time.Duration, expr string) (cron.Schedule, error) {
	if expr != "" {
		sched, err := cron.ParseStandard(expr)
		if err != nil {
			return nil, fmt.Errorf("parse cron expression %q: %w", expr, err)
		}
		return sched, nil
	}
	if interval <= 0 {
		return nil, fmt.Errorf("interval must be positive")
	}
	return cron.Every(interval), nil
}

// Scheduler runs a job immediately and then at every activation of its schedule.
// Runs never overlap.
type Scheduler struct {
	schedule cron.Schedule
	clock    Clock
	log      *slog.Logger
}

// New builds a Scheduler. A nil clock means the wall clock.
func New(schedule cron.Schedule, clock Clock, log *slog.Logger) *Scheduler {
	if clock == nil {
		clock = RealClock()
	}
	return &Scheduler{
		schedule: schedule,
		clock:    clock,
		log:      logger.OrDiscard(log),
	}
}

// Run blocks until ctx is cancelled. Job errors and panics are logged and do not stop the loop.
func (s *Scheduler) Run(ctx context.Context, job Job) {
	s.invoke(ctx, job)

	for {
		if ctx.Err() != nil {
			s.log.Info("scheduler stopped")
			return
		}

		now := s.clock.Now()
		next := s.schedule.Next(now)
		s.log.Debug("next run scheduled", slog.Time("at", next))

		select {
		case <-ctx.Done():
			s.log.Info("scheduler stopped")
			return
		case <-s.clock.After(next.Sub(now)):
			s.invoke(ctx, job)
		}
	}
}

func (s *Scheduler) invoke(ctx context.Context, job Job) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("job panicked (will run again on next activation)", slog.Any("panic", r))
		}
	}()

	if err := job(ctx); err != nil {
		s.log.Warn("job failed (will run again on next activation)", slog.Any("err", err))
	}
}
