package status

import (
	"context"
	"sync"

	"github.com/DeafMist/trend-poster/internal/models"
)

// DefaultCapacity is how many outcomes a Tracker keeps.
const DefaultCapacity = 50

// Tracker keeps the most recent run outcomes in a fixed-size ring.
type Tracker struct {
	mu    sync.RWMutex
	runs  []models.RunOutcome
	next  int
	full  bool
	total int
}

func NewTracker(capacity int) *Tracker {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Tracker{runs: make([]models.RunOutcome, capacity)}
}

// Observe records an outcome, evicting the oldest one when full.
func (t *Tracker) Observe(_ context.Context, outcome models.RunOutcome) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.runs[t.next] = outcome
	t.next = (t.next + 1) % len(t.runs)
	if t.next == 0 {
		t.full = true
	}
	t.total++
}

// Recent returns up to limit outcomes, newest first. limit <= 0 means all kept outcomes.
func (t *Tracker) Recent(limit int) []models.RunOutcome {
	t.mu.RLock()
	defer t.mu.RUnlock()

	size := t.next
	if t.full {
		size = len(t.runs)
	}
	if limit <= 0 || limit > size {
		limit = size
	}

	out := make([]models.RunOutcome, 0, limit)
	for i := 1; i <= limit; i++ {
		idx := (t.next - i + len(t.runs)) % len(t.runs)
		out = append(out, t.runs[idx])
	}
	return out
}

// Last returns the newest outcome, if any.
func (t *Tracker) Last() (models.RunOutcome, bool) {
	recent := t.Recent(1)
	if len(recent) == 0 {
		return models.RunOutcome{}, false
	}
	return recent[0], true
}

// Total counts every outcome observed, including evicted ones.
func (t *Tracker) Total() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.total
}
