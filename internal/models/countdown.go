package models

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseCounting
	PhaseExpired
	PhaseCancelled
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseCounting:
		return "counting"
	case PhaseExpired:
		return "expired"
	case PhaseCancelled:
		return "cancelled"
	}
	return "unknown"
}

// Terminal reports whether the run has ended.
func (p Phase) Terminal() bool {
	return p == PhaseExpired || p == PhaseCancelled
}

// CountdownState is owned by the scheduler; callers only ever get copies.
type CountdownState struct {
	Remaining   int // seconds
	Total       int // seconds requested by the current run
	Scheduled   bool
	Phase       Phase
	WarningSent bool
}
