package ui

import (
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/Sqwerrr/Shutdown-Timer/internal/config"
)

// SettingsDialog edits the preset buttons, the warning threshold and the
// theme. Saved changes go to the config file and are handed to onSaved so
// the running window can pick them up.
type SettingsDialog struct {
	manager      *config.Manager
	window       fyne.Window
	onSaved      func(*config.Config)
	presetsEntry *widget.Entry
	warningEntry *widget.Entry
	darkCheck    *widget.Check
	form         *widget.Form
}

func NewSettingsDialog(window fyne.Window, manager *config.Manager, onSaved func(*config.Config)) *SettingsDialog {
	sd := &SettingsDialog{
		manager:      manager,
		window:       window,
		onSaved:      onSaved,
		presetsEntry: widget.NewEntry(),
		warningEntry: widget.NewEntry(),
		darkCheck:    widget.NewCheck("Dark mode", nil),
	}
	sd.presetsEntry.SetPlaceHolder("5, 15, 45, 10, 30, 60")
	sd.warningEntry.SetPlaceHolder("60")

	sd.form = &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Presets (minutes)", Widget: sd.presetsEntry},
			{Text: "Warning (seconds)", Widget: sd.warningEntry},
			{Text: "Theme", Widget: sd.darkCheck},
		},
		OnSubmit:   sd.submit,
		SubmitText: "Save",
	}
	return sd
}

// Show fills the form from the current config and opens it.
func (sd *SettingsDialog) Show() {
	cfg := sd.manager.GetConfig()
	sd.presetsEntry.SetText(formatPresets(cfg.Timer.Presets))
	sd.warningEntry.SetText(strconv.Itoa(cfg.Timer.WarningSeconds))
	sd.darkCheck.SetChecked(cfg.Theme.DarkMode)

	dialog.ShowCustom("Settings", "Close", sd.form, sd.window)
}

func (sd *SettingsDialog) submit() {
	presets, err := ParsePresets(sd.presetsEntry.Text)
	if err != nil {
		dialog.ShowError(err, sd.window)
		return
	}
	warning, err := strconv.Atoi(strings.TrimSpace(sd.warningEntry.Text))
	if err != nil || warning < 0 {
		dialog.ShowError(errInvalidWarning, sd.window)
		return
	}

	if err := sd.manager.UpdateTimerConfig(config.TimerConfig{
		Presets:        presets,
		WarningSeconds: warning,
	}); err != nil {
		dialog.ShowError(err, sd.window)
		return
	}
	if dark := sd.darkCheck.Checked; dark != sd.manager.GetConfig().Theme.DarkMode {
		if err := sd.manager.UpdateThemeConfig(config.ThemeConfig{DarkMode: dark}); err != nil {
			dialog.ShowError(err, sd.window)
			return
		}
	}

	if sd.onSaved != nil {
		sd.onSaved(sd.manager.GetConfig())
	}
	dialog.ShowInformation("Settings", fmt.Sprintf("Saved to %s.", sd.manager.Path()), sd.window)
}
