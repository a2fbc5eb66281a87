package commands

import (
	"github.com/urfave/cli"

	"github.com/Sqwerrr/Shutdown-Timer/internal/config"
	"github.com/Sqwerrr/Shutdown-Timer/internal/gateway"
	"github.com/Sqwerrr/Shutdown-Timer/internal/logger"
	"github.com/Sqwerrr/Shutdown-Timer/internal/storage"
)

// env is what every command needs, built from the global flags.
type env struct {
	manager *config.Manager
	cfg     *config.Config
	log     logger.Logger
}

func loadEnv(c *cli.Context) (*env, error) {
	var (
		manager *config.Manager
		err     error
	)
	if path := c.GlobalString("config"); path != "" {
		manager, err = config.NewManagerAt(path)
	} else {
		manager, err = config.NewManager()
	}
	if err != nil {
		return nil, err
	}

	cfg := manager.GetConfig()
	if c.GlobalBool("dry-run") {
		cfg.Gateway.DryRun = true
	}

	var log logger.Logger = logger.NewConsoleLogger()
	if cfg.App.LogFile != "" {
		fileLog, err := logger.NewFileLogger(manager.ResolvePath(cfg.App.LogFile))
		if err != nil {
			log.Warning("%v", err)
		} else {
			log = logger.NewMultiLogger(log, fileLog)
		}
	}
	for _, w := range manager.Warnings {
		log.Warning("%s", w)
	}

	return &env{manager: manager, cfg: cfg, log: log}, nil
}

func (e *env) gateway() (gateway.Gateway, error) {
	return gateway.New(gateway.Options{
		DryRun:   e.cfg.Gateway.DryRun,
		Schedule: e.cfg.Gateway.ScheduleCommand,
		Cancel:   e.cfg.Gateway.CancelCommand,
	}, e.log)
}

func (e *env) openHistory() (*storage.Database, error) {
	return storage.NewDatabase(e.manager.ResolvePath(e.cfg.Database.Path))
}

func (e *env) close() {
	e.log.Close()
}
