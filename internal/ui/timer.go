package ui

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/Sqwerrr/Shutdown-Timer/internal/countdown"
	"github.com/Sqwerrr/Shutdown-Timer/internal/logger"
	"github.com/Sqwerrr/Shutdown-Timer/internal/sound"
)

const (
	statusIdle      = "Choose the time until shutdown"
	statusCounting  = "Shutdown scheduled"
	statusExpired   = "Shutting down..."
	statusCancelled = "Cancelled"
)

var (
	clockColor  = color.NRGBA{R: 0, G: 204, B: 68, A: 255}
	statusColor = color.NRGBA{R: 224, G: 224, B: 224, A: 255}
)

// ShutdownPanel is the main screen: status line, countdown, presets, custom
// minutes and the cancel button. It only translates clicks into scheduler
// calls and scheduler events into widget updates.
type ShutdownPanel struct {
	scheduler *countdown.Scheduler
	window    fyne.Window
	chime     sound.Chime
	log       logger.Logger

	container     *fyne.Container
	presetGrid    *fyne.Container
	statusLabel   *canvas.Text
	clockLabel    *canvas.Text
	presetButtons []*widget.Button
	minutesEntry  *widget.Entry
	okButton      *widget.Button
	cancelButton  *widget.Button
}

func NewShutdownPanel(window fyne.Window, s *countdown.Scheduler, presets []int, chime sound.Chime, log logger.Logger) *ShutdownPanel {
	if chime == nil {
		chime = sound.Silent{}
	}
	if log == nil {
		log = logger.NewNopLogger()
	}
	p := &ShutdownPanel{
		scheduler: s,
		window:    window,
		chime:     chime,
		log:       log,
	}

	p.statusLabel = canvas.NewText(statusIdle, statusColor)
	p.statusLabel.TextStyle = fyne.TextStyle{Bold: true}
	p.statusLabel.TextSize = 18
	p.statusLabel.Alignment = fyne.TextAlignCenter

	p.clockLabel = canvas.NewText("", clockColor)
	p.clockLabel.TextStyle = fyne.TextStyle{Bold: true}
	p.clockLabel.TextSize = 36
	p.clockLabel.Alignment = fyne.TextAlignCenter

	p.presetGrid = container.NewGridWithColumns(2)
	p.SetPresets(presets)

	p.minutesEntry = widget.NewEntry()
	p.minutesEntry.SetPlaceHolder("Minutes")
	p.minutesEntry.OnSubmitted = func(string) { p.submitCustom() }

	p.okButton = widget.NewButton("OK", p.submitCustom)
	p.okButton.Importance = widget.MediumImportance

	p.cancelButton = widget.NewButtonWithIcon("Cancel shutdown", theme.CancelIcon(), p.cancel)
	p.cancelButton.Importance = widget.DangerImportance

	input := container.NewBorder(nil, nil, nil, p.okButton, p.minutesEntry)

	p.container = container.NewVBox(
		container.NewPadded(p.statusLabel),
		container.NewPadded(p.clockLabel),
		p.presetGrid,
		input,
		p.cancelButton,
	)

	s.Subscribe(countdown.Events{
		Started:      func(int) { p.setStatus(statusCounting) },
		Tick:         p.showRemaining,
		Warning:      p.warn,
		Expired:      func() { p.setStatus(statusExpired) },
		Cancelled:    p.cancelled,
		GatewayError: p.gatewayFailed,
	})
	return p
}

func (p *ShutdownPanel) Container() *fyne.Container {
	return p.container
}

// SetPresets replaces the quick-pick buttons. The left column fills first.
func (p *ShutdownPanel) SetPresets(presets []int) {
	left, right := container.NewVBox(), container.NewVBox()
	half := (len(presets) + 1) / 2
	p.presetButtons = nil
	for i, minutes := range presets {
		seconds := minutes * 60
		btn := widget.NewButton(fmt.Sprintf("%d min", minutes), func() {
			p.start(seconds)
		})
		btn.Importance = widget.HighImportance
		p.presetButtons = append(p.presetButtons, btn)
		if i < half {
			left.Add(btn)
		} else {
			right.Add(btn)
		}
	}
	p.presetGrid.Objects = []fyne.CanvasObject{left, right}
	p.presetGrid.Refresh()
}

func (p *ShutdownPanel) start(seconds int) {
	if err := p.scheduler.Start(seconds); err != nil {
		dialog.ShowError(err, p.window)
	}
}

func (p *ShutdownPanel) submitCustom() {
	minutes, err := ParseMinutes(p.minutesEntry.Text)
	if err != nil {
		p.log.Warning("ui: rejected custom minutes %q", p.minutesEntry.Text)
		dialog.ShowError(err, p.window)
		return
	}
	p.start(minutes * 60)
	p.minutesEntry.SetText("")
}

func (p *ShutdownPanel) cancel() {
	p.scheduler.Cancel()
}

func (p *ShutdownPanel) setStatus(text string) {
	p.statusLabel.Text = text
	p.statusLabel.Refresh()
}

func (p *ShutdownPanel) showRemaining(remaining int) {
	p.clockLabel.Text = countdown.FormatClock(remaining)
	p.clockLabel.Refresh()
}

func (p *ShutdownPanel) warn(remaining int) {
	msg := fmt.Sprintf("%s left until shutdown!", countdown.FormatClock(remaining))
	p.chime.Play()
	if app := fyne.CurrentApp(); app != nil {
		app.SendNotification(fyne.NewNotification("Shutdown Timer", msg))
	}
	dialog.ShowInformation("Warning", msg, p.window)
}

func (p *ShutdownPanel) cancelled() {
	p.setStatus(statusCancelled)
	dialog.ShowInformation("Cancelled", "Shutdown cancelled!", p.window)
}

func (p *ShutdownPanel) gatewayFailed(op string, err error) {
	dialog.ShowError(fmt.Errorf("could not %s the shutdown: %w", op, err), p.window)
}
