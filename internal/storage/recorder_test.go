package storage

import (
	"testing"
	"time"

	"github.com/Sqwerrr/Shutdown-Timer/internal/countdown"
	"github.com/Sqwerrr/Shutdown-Timer/internal/gateway"
	"github.com/Sqwerrr/Shutdown-Timer/internal/logger"
	"github.com/Sqwerrr/Shutdown-Timer/internal/models"
)

func newRecordedScheduler(t *testing.T) (*countdown.Scheduler, *Database, *Recorder, *logger.MockLogger) {
	t.Helper()
	db := openTestDB(t)
	log := logger.NewMockLogger()
	rec := NewRecorder(db, log)
	clock := base
	rec.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	s := countdown.New(gateway.NewRecorder(), countdown.WithPacer(&countdown.ManualPacer{}))
	s.Subscribe(rec.Events())
	return s, db, rec, log
}

func TestRecorder_Lifecycle(t *testing.T) {
	s, db, rec, log := newRecordedScheduler(t)

	_ = s.Start(120) // superseded by the next start
	first := rec.Current()
	_ = s.Start(3)
	second := rec.Current()
	for i := 0; i < 3; i++ {
		s.Tick()
	}
	_ = s.Start(600)
	third := rec.Current()
	s.Cancel()

	if first == second || second == third || rec.Current() != "" {
		t.Fatalf("ids: %q %q %q current=%q", first, second, third, rec.Current())
	}
	want := map[string]models.Outcome{
		first:  models.OutcomeSuperseded,
		second: models.OutcomeExpired,
		third:  models.OutcomeCancelled,
	}
	for id, outcome := range want {
		run, err := db.GetRun(id)
		if err != nil {
			t.Fatal(err)
		}
		if run.Outcome != outcome {
			t.Errorf("run %s outcome = %v, want %v", id, run.Outcome, outcome)
		}
		if run.EndedAt == nil {
			t.Errorf("run %s has no ended_at", id)
		}
	}
	if errs := log.Errors(); len(errs) != 0 {
		t.Errorf("logged errors: %q", errs)
	}
}

func TestRecorder_WriteFailureIsLogged(t *testing.T) {
	s, db, rec, log := newRecordedScheduler(t)
	db.Close()

	if err := s.Start(30); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if rec.Current() != "" {
		t.Error("current set despite failed insert")
	}
	if !s.State().Scheduled {
		t.Error("countdown blocked by history failure")
	}
	if len(log.Errors()) == 0 {
		t.Error("failure not logged")
	}
	s.Cancel()
}
