// Package countdown owns the shutdown countdown: it asks the gateway to
// schedule the shutdown, ticks the remaining time down once per second and
// withdraws the request on cancel.
//
// A Scheduler is not safe for concurrent use. Every method, including the
// ticks coming from its Pacer, must run on one event loop.
package countdown

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Sqwerrr/Shutdown-Timer/internal/gateway"
	"github.com/Sqwerrr/Shutdown-Timer/internal/logger"
	"github.com/Sqwerrr/Shutdown-Timer/internal/models"
)

var ErrInvalidDuration = errors.New("countdown: duration must be positive")

const (
	DefaultInterval       = time.Second
	DefaultWarningSeconds = 60
	gatewayTimeout        = 10 * time.Second
)

// Events are optional callbacks; nil fields are skipped.
type Events struct {
	Started      func(seconds int)
	Tick         func(remaining int)
	Warning      func(remaining int)
	Expired      func()
	Cancelled    func()
	GatewayError func(op string, err error)
}

type Option func(*Scheduler)

func WithPacer(p Pacer) Option {
	return func(s *Scheduler) { s.pacer = p }
}

func WithLogger(l logger.Logger) Option {
	return func(s *Scheduler) { s.log = l }
}

func WithInterval(d time.Duration) Option {
	return func(s *Scheduler) { s.interval = d }
}

// WithWarningAt sets the remaining seconds at which Warning fires.
// Zero or less disables the warning.
func WithWarningAt(seconds int) Option {
	return func(s *Scheduler) { s.warnAt = seconds }
}

type Scheduler struct {
	state    models.CountdownState
	gateway  gateway.Gateway
	pacer    Pacer
	log      logger.Logger
	interval time.Duration
	warnAt   int
	// gen identifies the current run; ticks carrying an older value are dropped.
	gen         uint64
	subscribers []Events
}

func New(gw gateway.Gateway, opts ...Option) *Scheduler {
	s := &Scheduler{
		gateway:  gw,
		interval: DefaultInterval,
		warnAt:   DefaultWarningSeconds,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.pacer == nil {
		s.pacer = NewTickerPacer(nil)
	}
	if s.log == nil {
		s.log = logger.NewNopLogger()
	}
	return s
}

// Subscribe registers callbacks. Subscribers are called in registration order.
func (s *Scheduler) Subscribe(e Events) {
	s.subscribers = append(s.subscribers, e)
}

// State returns a copy of the current state.
func (s *Scheduler) State() models.CountdownState {
	return s.state
}

func (s *Scheduler) WarningAt() int {
	return s.warnAt
}

// SetWarningAt changes the warning threshold. A run that is already
// counting uses the new value from its next tick on; zero or less disables
// the warning.
func (s *Scheduler) SetWarningAt(seconds int) {
	s.warnAt = seconds
}

// Start schedules a shutdown in seconds and begins counting down. Starting
// while a run is counting withdraws the previous OS request first.
func (s *Scheduler) Start(seconds int) error {
	if seconds <= 0 {
		return ErrInvalidDuration
	}

	if s.state.Scheduled {
		s.log.Info("countdown: restarting, %d seconds were left", s.state.Remaining)
		s.pacer.Stop()
		s.call("cancel", s.gateway.Cancel)
	}

	s.gen++
	s.state = models.CountdownState{
		Remaining: seconds,
		Total:     seconds,
		Scheduled: true,
		Phase:     models.PhaseCounting,
	}
	s.call("schedule", func(ctx context.Context) error {
		return s.gateway.Schedule(ctx, seconds)
	})
	s.log.Info("countdown: shutdown in %s", FormatClock(seconds))

	for _, e := range s.subscribers {
		if e.Started != nil {
			e.Started(seconds)
		}
	}
	s.report()
	s.checkWarning()

	gen := s.gen
	s.pacer.Start(s.interval, func() { s.tick(gen) })
	return nil
}

// Tick advances the current run by one second.
func (s *Scheduler) Tick() {
	s.tick(s.gen)
}

func (s *Scheduler) tick(gen uint64) {
	if gen != s.gen || s.state.Phase != models.PhaseCounting {
		return
	}
	if s.state.Remaining > 0 {
		s.state.Remaining--
		s.report()
		s.checkWarning()
	}
	if s.state.Remaining == 0 {
		s.pacer.Stop()
		s.state.Phase = models.PhaseExpired
		s.state.Scheduled = false
		s.log.Info("countdown: expired, shutting down")
		for _, e := range s.subscribers {
			if e.Expired != nil {
				e.Expired()
			}
		}
	}
}

// Cancel withdraws the scheduled shutdown. It reports whether there was one.
func (s *Scheduler) Cancel() bool {
	if !s.state.Scheduled {
		return false
	}
	s.call("cancel", s.gateway.Cancel)
	s.gen++
	s.state.Scheduled = false
	s.state.Phase = models.PhaseCancelled
	s.pacer.Stop()
	s.log.Info("countdown: cancelled with %s left", FormatClock(s.state.Remaining))
	for _, e := range s.subscribers {
		if e.Cancelled != nil {
			e.Cancelled()
		}
	}
	return true
}

func (s *Scheduler) report() {
	for _, e := range s.subscribers {
		if e.Tick != nil {
			e.Tick(s.state.Remaining)
		}
	}
}

func (s *Scheduler) checkWarning() {
	if s.warnAt <= 0 || s.state.WarningSent || s.state.Remaining != s.warnAt {
		return
	}
	s.state.WarningSent = true
	for _, e := range s.subscribers {
		if e.Warning != nil {
			e.Warning(s.state.Remaining)
		}
	}
}

// call runs one gateway operation. Failures are logged and handed to
// subscribers; they never block the state transition.
func (s *Scheduler) call(op string, fn func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), gatewayTimeout)
	defer cancel()
	if err := fn(ctx); err != nil {
		s.log.Error("countdown: %s failed: %v", op, err)
		for _, e := range s.subscribers {
			if e.GatewayError != nil {
				e.GatewayError(op, err)
			}
		}
	}
}

// FormatClock renders seconds as MM:SS. Minutes do not wrap at an hour.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
