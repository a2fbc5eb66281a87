package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"github.com/Sqwerrr/Shutdown-Timer/internal/countdown"
	"github.com/Sqwerrr/Shutdown-Timer/internal/gateway"
	"github.com/Sqwerrr/Shutdown-Timer/internal/logger"
	"github.com/Sqwerrr/Shutdown-Timer/internal/models"
	"github.com/Sqwerrr/Shutdown-Timer/internal/storage"
	"github.com/Sqwerrr/Shutdown-Timer/internal/ui"
)

func schedule(c *cli.Context) error {
	text := c.String("minutes")
	if text == "" {
		text = c.Args().First()
	}
	minutes, err := ui.ParseMinutes(text)
	if err != nil {
		return cli.NewExitError(err.Error(), 2)
	}

	e, err := loadEnv(c)
	if err != nil {
		return err
	}
	defer e.close()

	gw, err := e.gateway()
	if err != nil {
		return err
	}

	var history *storage.Database
	if db, err := e.openHistory(); err != nil {
		e.log.Warning("history disabled: %v", err)
	} else {
		defer db.Close()
		history = db
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	phase, err := runHeadless(ctx, headlessOptions{
		gateway:   gw,
		history:   history,
		log:       e.log,
		out:       os.Stdout,
		seconds:   minutes * 60,
		warningAt: e.cfg.Timer.WarningSeconds,
	})
	if err != nil {
		return err
	}
	if phase == models.PhaseCancelled {
		fmt.Fprintln(os.Stdout, "Shutdown cancelled.")
	}
	return nil
}

type headlessOptions struct {
	gateway   gateway.Gateway
	history   *storage.Database
	log       logger.Logger
	out       io.Writer
	seconds   int
	warningAt int
	// interval overrides countdown.DefaultInterval; tests shorten it.
	interval time.Duration
}

// runHeadless drives one countdown on the calling goroutine until it expires
// or ctx is done, in which case the shutdown is cancelled.
func runHeadless(ctx context.Context, opts headlessOptions) (models.Phase, error) {
	queue := make(chan func())
	quit := make(chan struct{})
	defer close(quit)

	pacer := countdown.NewTickerPacer(func(fn func()) {
		select {
		case queue <- fn:
		case <-quit:
		}
	})
	defer pacer.Stop()

	schedOpts := []countdown.Option{
		countdown.WithPacer(pacer),
		countdown.WithLogger(opts.log),
		countdown.WithWarningAt(opts.warningAt),
	}
	if opts.interval > 0 {
		schedOpts = append(schedOpts, countdown.WithInterval(opts.interval))
	}
	s := countdown.New(opts.gateway, schedOpts...)
	if opts.history != nil {
		s.Subscribe(storage.NewRecorder(opts.history, opts.log).Events())
	}

	p := mpb.NewWithContext(context.Background(), mpb.WithWidth(48), mpb.WithOutput(opts.out))
	bar := p.AddBar(int64(opts.seconds),
		mpb.PrependDecorators(
			decor.Name("shutdown in "),
			decor.Any(func(st decor.Statistics) string {
				return countdown.FormatClock(int(st.Total - st.Current))
			}, decor.WC{W: 6}),
		),
		mpb.AppendDecorators(
			decor.OnAbort(decor.OnComplete(decor.Percentage(decor.WC{W: 5}), "shutting down"), "cancelled"),
		),
	)

	finished := false
	s.Subscribe(countdown.Events{
		Tick: func(remaining int) {
			bar.SetCurrent(int64(opts.seconds - remaining))
		},
		Warning: func(remaining int) {
			fmt.Fprintf(p, "%s left until shutdown!\n", countdown.FormatClock(remaining))
		},
		Expired: func() { finished = true },
		Cancelled: func() {
			finished = true
			bar.Abort(false)
		},
		GatewayError: func(op string, err error) {
			fmt.Fprintf(p, "could not %s the shutdown: %v\n", op, err)
		},
	})

	if err := s.Start(opts.seconds); err != nil {
		bar.Abort(true)
		p.Wait()
		return s.State().Phase, err
	}

	for !finished {
		select {
		case fn := <-queue:
			fn()
		case <-ctx.Done():
			s.Cancel()
		}
	}
	p.Wait()
	return s.State().Phase, nil
}
