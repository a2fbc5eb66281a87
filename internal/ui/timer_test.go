package ui

import (
	"reflect"
	"testing"

	"fyne.io/fyne/v2/test"

	"github.com/Sqwerrr/Shutdown-Timer/internal/countdown"
	"github.com/Sqwerrr/Shutdown-Timer/internal/gateway"
	"github.com/Sqwerrr/Shutdown-Timer/internal/models"
)

type countingChime struct{ plays int }

func (c *countingChime) Play() { c.plays++ }

func newTestPanel(t *testing.T) (*ShutdownPanel, *countdown.Scheduler, *gateway.Recorder, *countingChime) {
	t.Helper()
	a := test.NewApp()
	t.Cleanup(a.Quit)

	w := a.NewWindow("test")
	gw := gateway.NewRecorder()
	s := countdown.New(gw, countdown.WithPacer(&countdown.ManualPacer{}))
	chime := &countingChime{}
	p := NewShutdownPanel(w, s, []int{5, 15, 45, 10, 30, 60}, chime, nil)
	w.SetContent(p.Container())
	return p, s, gw, chime
}

func hasOverlay(p *ShutdownPanel) bool {
	return p.window.Canvas().Overlays().Top() != nil
}

func TestShutdownPanel_PresetLayout(t *testing.T) {
	p, _, _, _ := newTestPanel(t)
	var labels []string
	for _, b := range p.presetButtons {
		labels = append(labels, b.Text)
	}
	want := []string{"5 min", "15 min", "45 min", "10 min", "30 min", "60 min"}
	if !reflect.DeepEqual(labels, want) {
		t.Fatalf("preset labels = %q, want %q", labels, want)
	}
}

func TestShutdownPanel_PresetStarts(t *testing.T) {
	p, s, gw, _ := newTestPanel(t)

	test.Tap(p.presetButtons[1])

	if got := gw.Snapshot(); !reflect.DeepEqual(got, []string{"schedule 900"}) {
		t.Fatalf("gateway calls = %q", got)
	}
	if p.clockLabel.Text != "15:00" {
		t.Errorf("clock = %q, want 15:00", p.clockLabel.Text)
	}
	if p.statusLabel.Text != statusCounting {
		t.Errorf("status = %q", p.statusLabel.Text)
	}

	s.Tick()
	if p.clockLabel.Text != "14:59" {
		t.Errorf("clock after tick = %q, want 14:59", p.clockLabel.Text)
	}
}

func TestShutdownPanel_CustomMinutes(t *testing.T) {
	p, s, gw, _ := newTestPanel(t)

	test.Type(p.minutesEntry, "2")
	test.Tap(p.okButton)

	if got := gw.Snapshot(); !reflect.DeepEqual(got, []string{"schedule 120"}) {
		t.Fatalf("gateway calls = %q", got)
	}
	if p.minutesEntry.Text != "" {
		t.Errorf("entry not cleared: %q", p.minutesEntry.Text)
	}
	if s.State().Remaining != 120 {
		t.Errorf("remaining = %d", s.State().Remaining)
	}
}

func TestShutdownPanel_InvalidCustomMinutes(t *testing.T) {
	for _, text := range []string{"abc", "0", "-4"} {
		p, s, gw, _ := newTestPanel(t)

		test.Type(p.minutesEntry, text)
		test.Tap(p.okButton)

		if len(gw.Snapshot()) != 0 {
			t.Errorf("%q: gateway called", text)
		}
		if s.State() != (models.CountdownState{}) {
			t.Errorf("%q: state changed to %+v", text, s.State())
		}
		if !hasOverlay(p) {
			t.Errorf("%q: no error dialog", text)
		}
		if p.minutesEntry.Text != text {
			t.Errorf("%q: entry changed to %q", text, p.minutesEntry.Text)
		}
	}
}

func TestShutdownPanel_Cancel(t *testing.T) {
	p, s, gw, _ := newTestPanel(t)

	test.Tap(p.cancelButton)
	if len(gw.Snapshot()) != 0 || hasOverlay(p) {
		t.Fatal("cancel while idle had side effects")
	}

	test.Tap(p.presetButtons[0])
	s.Tick()
	test.Tap(p.cancelButton)

	if got, want := gw.Snapshot(), []string{"schedule 300", "cancel"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("gateway calls = %q, want %q", got, want)
	}
	if p.statusLabel.Text != statusCancelled {
		t.Errorf("status = %q", p.statusLabel.Text)
	}
	if !hasOverlay(p) {
		t.Error("no cancel dialog")
	}
	if s.State().Phase != models.PhaseCancelled {
		t.Errorf("phase = %v", s.State().Phase)
	}
}

func TestShutdownPanel_WarningAndExpiry(t *testing.T) {
	p, s, _, chime := newTestPanel(t)

	test.Type(p.minutesEntry, "2")
	test.Tap(p.okButton)
	for i := 0; i < 60; i++ {
		s.Tick()
	}
	if chime.plays != 1 {
		t.Fatalf("chime plays = %d, want 1", chime.plays)
	}
	if !hasOverlay(p) {
		t.Fatal("no warning dialog")
	}

	for i := 0; i < 60; i++ {
		s.Tick()
	}
	if p.clockLabel.Text != "00:00" || p.statusLabel.Text != statusExpired {
		t.Errorf("clock=%q status=%q", p.clockLabel.Text, p.statusLabel.Text)
	}
	if chime.plays != 1 {
		t.Errorf("chime plays = %d, want 1", chime.plays)
	}
}

func TestShutdownPanel_GatewayError(t *testing.T) {
	p, s, gw, _ := newTestPanel(t)
	gw.Err = errTest("not permitted")

	test.Tap(p.presetButtons[0])
	if !hasOverlay(p) {
		t.Fatal("gateway failure not shown")
	}
	if !s.State().Scheduled {
		t.Error("state did not transition")
	}
}

type errTest string

func (e errTest) Error() string { return string(e) }
