package commands

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/urfave/cli"

	"github.com/Sqwerrr/Shutdown-Timer/internal/config"
	"github.com/Sqwerrr/Shutdown-Timer/internal/countdown"
	"github.com/Sqwerrr/Shutdown-Timer/internal/logger"
	"github.com/Sqwerrr/Shutdown-Timer/internal/sound"
	"github.com/Sqwerrr/Shutdown-Timer/internal/ui"
)

const appID = "ShutdownTimer.1.0"

func gui(c *cli.Context) error {
	e, err := loadEnv(c)
	if err != nil {
		return err
	}
	defer e.close()

	gw, err := e.gateway()
	if err != nil {
		return err
	}

	// Ticks come from a ticker goroutine; fyne.Do hops them onto the UI loop.
	scheduler := countdown.New(gw,
		countdown.WithPacer(countdown.NewTickerPacer(fyne.Do)),
		countdown.WithLogger(e.log),
		countdown.WithWarningAt(e.cfg.Timer.WarningSeconds),
	)

	deps := ui.Deps{
		Config:    e.cfg,
		Manager:   e.manager,
		Scheduler: scheduler,
		Chime:     loadChime(e.manager, e.cfg.Sound, e.log),
		Log:       e.log,
	}
	db, err := e.openHistory()
	if err != nil {
		e.log.Warning("history disabled: %v", err)
	} else {
		defer db.Close()
		deps.History = db
	}

	a := app.NewWithID(appID)
	ui.NewMainWindow(a, deps).Show()
	return nil
}

// loadChime prefers the configured wav and falls back to the built-in one.
func loadChime(m *config.Manager, cfg config.SoundConfig, log logger.Logger) sound.Chime {
	if !cfg.Enabled {
		return sound.Silent{}
	}
	if cfg.WarningFile != "" {
		p, err := sound.Load(m.ResolvePath(cfg.WarningFile), cfg.Volume, log)
		if err == nil {
			return p
		}
		log.Warning("warning chime: %v, using the built-in one", err)
	}
	p, err := sound.Default(cfg.Volume, log)
	if err != nil {
		log.Warning("warning chime disabled: %v", err)
		return sound.Silent{}
	}
	return p
}
