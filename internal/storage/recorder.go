package storage

import (
	"time"

	"github.com/Sqwerrr/Shutdown-Timer/internal/countdown"
	"github.com/Sqwerrr/Shutdown-Timer/internal/logger"
	"github.com/Sqwerrr/Shutdown-Timer/internal/models"
)

// Recorder writes one history row per countdown run. Write failures are
// logged and never reach the countdown.
type Recorder struct {
	db      *Database
	log     logger.Logger
	now     func() time.Time
	current string
}

func NewRecorder(db *Database, log logger.Logger) *Recorder {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &Recorder{db: db, log: log, now: time.Now}
}

// Events returns the callbacks to pass to Scheduler.Subscribe.
func (r *Recorder) Events() countdown.Events {
	return countdown.Events{
		Started:   r.started,
		Expired:   func() { r.finish(models.OutcomeExpired) },
		Cancelled: func() { r.finish(models.OutcomeCancelled) },
	}
}

// Current is the id of the pending run, if any.
func (r *Recorder) Current() string {
	return r.current
}

func (r *Recorder) started(seconds int) {
	at := r.now()
	if _, err := r.db.SupersedePending(at); err != nil {
		r.log.Error("history: %v", err)
	}
	run, err := r.db.StartRun(seconds, at)
	if err != nil {
		r.current = ""
		r.log.Error("history: %v", err)
		return
	}
	r.current = run.ID
}

func (r *Recorder) finish(outcome models.Outcome) {
	if r.current == "" {
		return
	}
	if err := r.db.FinishRun(r.current, outcome, r.now()); err != nil {
		r.log.Error("history: %v", err)
	}
	r.current = ""
}
