// Package gateway issues the operating system's shutdown and abort commands.
//
// The countdown itself never talks to the OS; it goes through a Gateway so a
// dry-run or a fake can stand in for the real shell.
package gateway

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/Sqwerrr/Shutdown-Timer/internal/logger"
)

var (
	ErrUnsupportedPlatform = errors.New("gateway: unsupported platform")
	ErrInvalidDelay        = errors.New("gateway: delay must be positive")
	ErrEmptyCommand        = errors.New("gateway: empty command")
)

// Gateway schedules and aborts an OS-level shutdown.
type Gateway interface {
	Schedule(ctx context.Context, seconds int) error
	Cancel(ctx context.Context) error
}

// Runner executes one command and returns its combined output.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// DefaultGrace is how long the shell waits for a shutdown command before
// leaving it running in the background. Some shutdown(8) implementations
// stay in the foreground until the deadline.
const DefaultGrace = 2 * time.Second

// ExecRunner runs commands with os/exec.
type ExecRunner struct {
	// Grace, when positive, bounds the wait. A command still running after
	// Grace is left alone and counts as success; it is never killed.
	Grace time.Duration
}

func (r ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	if r.Grace <= 0 {
		return exec.CommandContext(ctx, name, args...).CombinedOutput()
	}

	var out bytes.Buffer
	cmd := exec.Command(name, args...)
	cmd.Stdout = &out
	cmd.Stderr = &out
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	timer := time.NewTimer(r.Grace)
	defer timer.Stop()
	select {
	case err := <-done:
		return out.Bytes(), err
	case <-timer.C:
	case <-ctx.Done():
	}
	return nil, nil
}

// Options select and customize the gateway.
type Options struct {
	DryRun bool
	// GOOS defaults to runtime.GOOS.
	GOOS string
	// Schedule and Cancel replace the platform argv when non-empty.
	Schedule []string
	Cancel   []string
}

// New builds the gateway described by opts.
func New(opts Options, log logger.Logger) (Gateway, error) {
	goos := opts.GOOS
	if goos == "" {
		goos = runtime.GOOS
	}

	commands, err := CommandsFor(goos)
	if err != nil && (len(opts.Schedule) == 0 || len(opts.Cancel) == 0) {
		return nil, err
	}
	if len(opts.Schedule) > 0 {
		commands.Schedule = opts.Schedule
	}
	if len(opts.Cancel) > 0 {
		commands.Cancel = opts.Cancel
	}

	if opts.DryRun {
		return NewDryRun(commands, log), nil
	}
	return NewShell(commands, ExecRunner{Grace: DefaultGrace}, log), nil
}

// Shell runs the configured commands through a Runner.
type Shell struct {
	commands CommandSet
	runner   Runner
	log      logger.Logger
}

func NewShell(commands CommandSet, runner Runner, log logger.Logger) *Shell {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &Shell{commands: commands, runner: runner, log: log}
}

func (s *Shell) Schedule(ctx context.Context, seconds int) error {
	if seconds <= 0 {
		return ErrInvalidDelay
	}
	return s.run(ctx, "schedule", s.commands.ScheduleArgs(seconds))
}

func (s *Shell) Cancel(ctx context.Context) error {
	return s.run(ctx, "cancel", s.commands.CancelArgs())
}

func (s *Shell) run(ctx context.Context, op string, argv []string) error {
	if len(argv) == 0 {
		return fmt.Errorf("gateway: %s: %w", op, ErrEmptyCommand)
	}
	s.log.Info("gateway: %s: %s", op, strings.Join(argv, " "))
	out, err := s.runner.Run(ctx, argv[0], argv[1:]...)
	if err != nil {
		if msg := strings.TrimSpace(string(out)); msg != "" {
			return fmt.Errorf("gateway: %s: %s: %w", op, msg, err)
		}
		return fmt.Errorf("gateway: %s: %w", op, err)
	}
	return nil
}

// DryRun logs the commands it would have run.
type DryRun struct {
	commands CommandSet
	log      logger.Logger
}

func NewDryRun(commands CommandSet, log logger.Logger) *DryRun {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &DryRun{commands: commands, log: log}
}

func (d *DryRun) Schedule(_ context.Context, seconds int) error {
	if seconds <= 0 {
		return ErrInvalidDelay
	}
	d.log.Info("gateway: dry run: would exec %q", d.commands.ScheduleArgs(seconds))
	return nil
}

func (d *DryRun) Cancel(context.Context) error {
	d.log.Info("gateway: dry run: would exec %q", d.commands.CancelArgs())
	return nil
}

var (
	_ Gateway = (*Shell)(nil)
	_ Gateway = (*DryRun)(nil)
)
