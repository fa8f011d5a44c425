package models

import "time"

// Run statuses.
const (
	RunPosted = "posted"
	RunNoNews = "no_news"
	RunFailed = "failed"
)

// RunOutcome summarizes one pipeline invocation.
type RunOutcome struct {
	RunID      string    `json:"run_id"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Headline   string    `json:"headline,omitempty"`
	Topic      string    `json:"topic,omitempty"`
	PostID     string    `json:"post_id,omitempty"`
	PostText   string    `json:"post_text,omitempty"`
	Status     string    `json:"status"`
	Error      string    `json:"error,omitempty"`
}

// Duration returns how long the run took.
func (r RunOutcome) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
