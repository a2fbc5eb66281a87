package models

import "time"

type Outcome string

const (
	OutcomePending    Outcome = "pending"
	OutcomeExpired    Outcome = "expired"
	OutcomeCancelled  Outcome = "cancelled"
	OutcomeSuperseded Outcome = "superseded"
)

// Run is one countdown as kept in history.
type Run struct {
	ID        string
	Seconds   int
	StartedAt time.Time
	EndedAt   *time.Time
	Outcome   Outcome
}

func (r *Run) Duration() time.Duration {
	return time.Duration(r.Seconds) * time.Second
}
