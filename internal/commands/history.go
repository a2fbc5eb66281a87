package commands

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli"

	"github.com/Sqwerrr/Shutdown-Timer/internal/countdown"
	"github.com/Sqwerrr/Shutdown-Timer/internal/models"
	"github.com/Sqwerrr/Shutdown-Timer/internal/storage"
)

func history(c *cli.Context) error {
	e, err := loadEnv(c)
	if err != nil {
		return err
	}
	defer e.close()

	db, err := e.openHistory()
	if err != nil {
		return err
	}
	defer db.Close()

	return printHistory(c.App.Writer, db, c.Int("limit"), time.Now())
}

func printHistory(w io.Writer, db *storage.Database, limit int, now time.Time) error {
	runs, err := db.RecentRuns(limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(w, "No countdowns yet.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "STARTED\tDELAY\tOUTCOME\tENDED")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			humanize.RelTime(r.StartedAt, now, "ago", "from now"),
			countdown.FormatClock(r.Seconds),
			r.Outcome,
			endedAfter(r),
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	stats, err := db.GetStats()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "\n%d runs, %d shut down, %d cancelled\n", stats.Total, stats.Expired, stats.Cancelled)
	return nil
}

func endedAfter(r *models.Run) string {
	if r.EndedAt == nil {
		return "-"
	}
	return "after " + countdown.FormatClock(int(r.EndedAt.Sub(r.StartedAt).Seconds()))
}
