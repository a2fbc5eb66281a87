package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/Sqwerrr/Shutdown-Timer/internal/config"
	"github.com/Sqwerrr/Shutdown-Timer/internal/countdown"
	"github.com/Sqwerrr/Shutdown-Timer/internal/logger"
	"github.com/Sqwerrr/Shutdown-Timer/internal/sound"
	"github.com/Sqwerrr/Shutdown-Timer/internal/storage"
)

// Deps is everything the window needs. History may be nil, in which case
// the history tab is left out; without a Manager there is no settings button.
type Deps struct {
	Config    *config.Config
	Manager   *config.Manager
	Scheduler *countdown.Scheduler
	History   *storage.Database
	Chime     sound.Chime
	Log       logger.Logger
}

type MainWindow struct {
	app       fyne.App
	scheduler *countdown.Scheduler
	log       logger.Logger

	window   fyne.Window
	panel    *ShutdownPanel
	history  *HistoryView
	settings *SettingsDialog
}

func NewMainWindow(app fyne.App, deps Deps) *MainWindow {
	if deps.Log == nil {
		deps.Log = logger.NewNopLogger()
	}
	if deps.Config.Theme.DarkMode {
		app.Settings().SetTheme(newVariantTheme(true))
	}

	w := &MainWindow{
		app:       app,
		scheduler: deps.Scheduler,
		log:       deps.Log,
		window:    app.NewWindow(deps.Config.App.Name),
	}
	w.setup(deps)
	return w
}

func (w *MainWindow) setup(deps Deps) {
	// The recorder has to see Started before the history tab refreshes.
	if deps.History != nil {
		deps.Scheduler.Subscribe(storage.NewRecorder(deps.History, deps.Log).Events())
	}

	w.panel = NewShutdownPanel(w.window, deps.Scheduler, deps.Config.Timer.Presets, deps.Chime, deps.Log)

	var content fyne.CanvasObject = w.panel.Container()
	if deps.History != nil {
		w.history = NewHistoryView(deps.History, deps.Log)
		deps.Scheduler.Subscribe(countdown.Events{
			Started:   func(int) { w.history.Refresh() },
			Expired:   w.history.Refresh,
			Cancelled: w.history.Refresh,
		})
		content = container.NewAppTabs(
			container.NewTabItem("Timer", w.panel.Container()),
			container.NewTabItem("History", w.history.Container()),
		)
	}

	if deps.Manager != nil {
		w.settings = NewSettingsDialog(w.window, deps.Manager, w.applySettings)
		toolbar := widget.NewToolbar(
			widget.NewToolbarSpacer(),
			widget.NewToolbarAction(theme.SettingsIcon(), w.settings.Show),
		)
		content = container.NewBorder(toolbar, nil, nil, nil, content)
	}

	w.window.SetContent(content)
	w.SetSize(float32(deps.Config.App.WindowWidth), float32(deps.Config.App.WindowHeight))
	w.window.SetFixedSize(true)
}

// applySettings pushes saved settings into the running window.
func (w *MainWindow) applySettings(cfg *config.Config) {
	w.scheduler.SetWarningAt(cfg.Timer.WarningSeconds)
	w.panel.SetPresets(cfg.Timer.Presets)
	w.app.Settings().SetTheme(newVariantTheme(cfg.Theme.DarkMode))
	w.log.Info("ui: settings applied: presets %v, warning at %ds", cfg.Timer.Presets, w.scheduler.WarningAt())
}

func (w *MainWindow) SetSize(width, height float32) {
	w.window.Resize(fyne.NewSize(width, height))
}

func (w *MainWindow) Window() fyne.Window {
	return w.window
}

// Show runs the event loop until the window closes.
func (w *MainWindow) Show() {
	w.window.ShowAndRun()
}
