package gateway

import (
	"context"
	"fmt"
	"sync"
)

// Recorder is an in-memory Gateway for tests. It records every call and
// returns Err (if set) from each of them.
type Recorder struct {
	mu    sync.Mutex
	Calls []string
	Err   error
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Schedule(_ context.Context, seconds int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Calls = append(r.Calls, fmt.Sprintf("schedule %d", seconds))
	return r.Err
}

func (r *Recorder) Cancel(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Calls = append(r.Calls, "cancel")
	return r.Err
}

// Snapshot returns a copy of the recorded calls.
func (r *Recorder) Snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.Calls...)
}

var _ Gateway = (*Recorder)(nil)
