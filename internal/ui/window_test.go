package ui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/theme"

	"github.com/Sqwerrr/Shutdown-Timer/internal/config"
	"github.com/Sqwerrr/Shutdown-Timer/internal/countdown"
	"github.com/Sqwerrr/Shutdown-Timer/internal/gateway"
	"github.com/Sqwerrr/Shutdown-Timer/internal/models"
	"github.com/Sqwerrr/Shutdown-Timer/internal/storage"
)

func TestMainWindow_WithHistory(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	db, err := storage.NewDatabase(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	s := countdown.New(gateway.NewRecorder(), countdown.WithPacer(&countdown.ManualPacer{}))
	w := NewMainWindow(a, Deps{
		Config:    config.DefaultConfig(),
		Scheduler: s,
		History:   db,
	})

	if _, ok := w.Window().Content().(*container.AppTabs); !ok {
		t.Fatalf("content = %T, want tabs", w.Window().Content())
	}

	test.Tap(w.panel.presetButtons[0])
	if len(w.history.runs) != 1 || w.history.runs[0].Outcome != models.OutcomePending {
		t.Fatalf("history after start = %+v", w.history.runs)
	}

	test.Tap(w.panel.cancelButton)
	if w.history.runs[0].Outcome != models.OutcomeCancelled {
		t.Fatalf("outcome after cancel = %v", w.history.runs[0].Outcome)
	}
	if !strings.Contains(w.history.statsLabel.Text, "Cancelled: 1") {
		t.Errorf("stats = %q", w.history.statsLabel.Text)
	}
}

func TestMainWindow_WithoutHistory(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	cfg := config.DefaultConfig()
	cfg.Theme.DarkMode = false
	s := countdown.New(gateway.NewRecorder(), countdown.WithPacer(&countdown.ManualPacer{}))
	w := NewMainWindow(a, Deps{Config: cfg, Scheduler: s})

	if w.history != nil {
		t.Fatal("history view created without a database")
	}
	if w.Window().Content() != w.panel.Container() {
		t.Fatal("panel is not the window content")
	}
}

func TestDescribeRun(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	r := &models.Run{Seconds: 900, StartedAt: now.Add(-2 * time.Hour), Outcome: models.OutcomeExpired}
	got := describeRun(r, now)
	if !strings.Contains(got, "2 hours ago") || !strings.Contains(got, "15 min") || !strings.Contains(got, "expired") {
		t.Errorf("describeRun = %q", got)
	}
}

func TestFormatDelay(t *testing.T) {
	for in, want := range map[int]string{60: "1 min", 900: "15 min", 90: "01:30"} {
		if got := formatDelay(in); got != want {
			t.Errorf("formatDelay(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestSettingsDialog_SavesAndApplies(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	path := filepath.Join(t.TempDir(), "config.yaml")
	m, err := config.NewManagerAt(path)
	if err != nil {
		t.Fatal(err)
	}
	s := countdown.New(gateway.NewRecorder(), countdown.WithPacer(&countdown.ManualPacer{}))
	warnings := 0
	s.Subscribe(countdown.Events{Warning: func(int) { warnings++ }})
	w := NewMainWindow(a, Deps{Config: m.GetConfig(), Manager: m, Scheduler: s})
	if w.settings == nil {
		t.Fatal("settings dialog not created")
	}

	w.settings.Show()
	if w.settings.presetsEntry.Text != "5, 15, 45, 10, 30, 60" || w.settings.warningEntry.Text != "60" || !w.settings.darkCheck.Checked {
		t.Fatalf("form = %q / %q / %v", w.settings.presetsEntry.Text, w.settings.warningEntry.Text, w.settings.darkCheck.Checked)
	}

	w.settings.presetsEntry.SetText("1, 2")
	w.settings.warningEntry.SetText("5")
	w.settings.darkCheck.SetChecked(false)
	w.settings.submit()

	reloaded, err := config.NewManagerAt(path)
	if err != nil {
		t.Fatal(err)
	}
	got := reloaded.GetConfig()
	if len(got.Timer.Presets) != 2 || got.Timer.Presets[1] != 2 || got.Timer.WarningSeconds != 5 {
		t.Errorf("saved timer config = %+v", got.Timer)
	}
	if got.Theme.DarkMode {
		t.Error("dark mode still saved as on")
	}

	// The running window picks the changes up without a relaunch.
	if n := len(w.panel.presetButtons); n != 2 {
		t.Fatalf("preset buttons = %d, want 2", n)
	}
	if w.panel.presetButtons[1].Text != "2 min" {
		t.Errorf("second preset = %q", w.panel.presetButtons[1].Text)
	}
	if th, ok := a.Settings().Theme().(*variantTheme); !ok || th.variant != theme.VariantLight {
		t.Errorf("theme = %#v, want light variant", a.Settings().Theme())
	}
	if s.WarningAt() != 5 {
		t.Fatalf("WarningAt() = %d, want 5", s.WarningAt())
	}
	if err := s.Start(10); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		s.Tick()
	}
	if warnings != 1 {
		t.Errorf("warnings = %d, want 1", warnings)
	}
}

func TestSettingsDialog_RejectsBadInput(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	m, err := config.NewManagerAt(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	win := a.NewWindow("settings")
	sd := NewSettingsDialog(win, m, func(*config.Config) {
		t.Error("onSaved called for rejected input")
	})
	sd.Show()

	sd.presetsEntry.SetText("5, nope")
	sd.submit()
	sd.presetsEntry.SetText("5")
	sd.warningEntry.SetText("-1")
	sd.submit()

	if got := m.GetConfig().Timer.Presets; len(got) != 6 {
		t.Errorf("presets changed to %v", got)
	}
}
