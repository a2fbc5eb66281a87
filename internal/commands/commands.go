// Package commands is the command-line surface. With no subcommand it opens
// the window; schedule, cancel and history work without a display.
package commands

import (
	"fmt"

	"github.com/urfave/cli"
)

type BuildArgs struct {
	Version string
	Commit  string
}

const description = `Schedules the operating system to shut down after a delay,
shows the countdown and lets you cancel it.`

var globalFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "config, c",
		Usage: "path to config.yaml (default ~/.shutdown-timer/config.yaml)",
	},
	cli.BoolFlag{
		Name:  "dry-run",
		Usage: "log the shutdown commands instead of running them",
	},
}

var scheduleFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "minutes, m",
		Usage: "delay before shutdown, in whole minutes",
	},
}

var historyFlags = []cli.Flag{
	cli.IntFlag{
		Name:  "limit, n",
		Value: 20,
		Usage: "number of runs to show",
	},
}

func newApp(bArgs BuildArgs) *cli.App {
	app := cli.NewApp()
	app.Name = "shutdown-timer"
	app.HelpName = "shutdown-timer"
	app.Usage = "shut the computer down after a countdown"
	app.Description = description
	app.Version = bArgs.Version
	if bArgs.Commit != "" {
		app.Version = fmt.Sprintf("%s-%s", bArgs.Version, bArgs.Commit)
	}
	app.Flags = globalFlags
	app.Action = gui
	app.Commands = []cli.Command{
		{
			Name:   "gui",
			Usage:  "open the window (default)",
			Action: gui,
		},
		{
			Name:      "schedule",
			Aliases:   []string{"s"},
			Usage:     "count down in the terminal and shut down at zero",
			ArgsUsage: "[minutes]",
			Flags:     scheduleFlags,
			Action:    schedule,
		},
		{
			Name:   "cancel",
			Usage:  "abort a scheduled shutdown",
			Action: cancel,
		},
		{
			Name:    "history",
			Aliases: []string{"h"},
			Usage:   "show past countdowns",
			Flags:   historyFlags,
			Action:  history,
		},
	}
	return app
}

// Execute runs the command line described by args (os.Args).
func Execute(args []string, bArgs BuildArgs) error {
	return newApp(bArgs).Run(args)
}
