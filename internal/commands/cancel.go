package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli"
)

func cancel(c *cli.Context) error {
	e, err := loadEnv(c)
	if err != nil {
		return err
	}
	defer e.close()

	gw, err := e.gateway()
	if err != nil {
		return err
	}

	ctx, done := context.WithTimeout(context.Background(), 10*time.Second)
	defer done()
	if err := gw.Cancel(ctx); err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	fmt.Fprintln(c.App.Writer, "Shutdown cancelled.")
	return nil
}
