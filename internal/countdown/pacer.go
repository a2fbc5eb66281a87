package countdown

import (
	"sync"
	"time"
)

// Pacer calls fn every interval until stopped.
type Pacer interface {
	Start(interval time.Duration, fn func())
	Stop()
}

// TickerPacer drives ticks from a time.Ticker goroutine. Every tick is handed
// to Dispatch so it runs on the owner's event loop instead of the ticker
// goroutine; a nil Dispatch calls fn directly.
type TickerPacer struct {
	Dispatch func(func())

	mu   sync.Mutex
	done chan struct{}
}

func NewTickerPacer(dispatch func(func())) *TickerPacer {
	return &TickerPacer{Dispatch: dispatch}
}

// Start replaces any running ticker.
func (p *TickerPacer) Start(interval time.Duration, fn func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()

	done := make(chan struct{})
	p.done = done
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if p.Dispatch != nil {
					p.Dispatch(fn)
				} else {
					fn()
				}
			}
		}
	}()
}

func (p *TickerPacer) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
}

func (p *TickerPacer) stopLocked() {
	if p.done != nil {
		close(p.done)
		p.done = nil
	}
}

// ManualPacer never ticks on its own; tests drive the scheduler with Tick.
type ManualPacer struct {
	Running  bool
	Interval time.Duration
	Starts   int
	Stops    int
	fn       func()
}

func (m *ManualPacer) Start(interval time.Duration, fn func()) {
	m.Running = true
	m.Interval = interval
	m.Starts++
	m.fn = fn
}

func (m *ManualPacer) Stop() {
	m.Running = false
	m.Stops++
}

// Fire invokes the registered callback the way a real tick would, even after
// Stop, so tests can simulate a late tick.
func (m *ManualPacer) Fire() {
	if m.fn != nil {
		m.fn()
	}
}

var (
	_ Pacer = (*TickerPacer)(nil)
	_ Pacer = (*ManualPacer)(nil)
)
