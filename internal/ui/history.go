package ui

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/dustin/go-humanize"

	"github.com/Sqwerrr/Shutdown-Timer/internal/countdown"
	"github.com/Sqwerrr/Shutdown-Timer/internal/logger"
	"github.com/Sqwerrr/Shutdown-Timer/internal/models"
	"github.com/Sqwerrr/Shutdown-Timer/internal/storage"
)

const historyLimit = 50

// HistoryView lists past countdowns.
type HistoryView struct {
	container  *fyne.Container
	db         *storage.Database
	log        logger.Logger
	runs       []*models.Run
	list       *widget.List
	statsLabel *widget.Label
	refreshBtn *widget.Button
	now        func() time.Time
}

func NewHistoryView(db *storage.Database, log logger.Logger) *HistoryView {
	if log == nil {
		log = logger.NewNopLogger()
	}
	hv := &HistoryView{
		db:         db,
		log:        log,
		statsLabel: widget.NewLabel(""),
		now:        time.Now,
	}
	hv.setup()
	return hv
}

func (hv *HistoryView) setup() {
	title := widget.NewLabelWithStyle("History", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})

	hv.refreshBtn = widget.NewButtonWithIcon("", theme.ViewRefreshIcon(), hv.Refresh)

	hv.list = widget.NewList(
		func() int { return len(hv.runs) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.ListItemID, item fyne.CanvasObject) {
			item.(*widget.Label).SetText(describeRun(hv.runs[id], hv.now()))
		},
	)

	toolbar := container.NewBorder(nil, nil, nil, hv.refreshBtn, hv.statsLabel)
	hv.container = container.NewBorder(
		container.NewVBox(title, toolbar),
		nil, nil, nil,
		hv.list,
	)
	hv.Refresh()
}

// Refresh reloads runs and totals from the database.
func (hv *HistoryView) Refresh() {
	runs, err := hv.db.RecentRuns(historyLimit)
	if err != nil {
		hv.log.Error("ui: history: %v", err)
		return
	}
	stats, err := hv.db.GetStats()
	if err != nil {
		hv.log.Error("ui: history: %v", err)
		return
	}

	hv.runs = runs
	hv.statsLabel.SetText(fmt.Sprintf(
		"Total: %d  Shut down: %d  Cancelled: %d",
		stats.Total, stats.Expired, stats.Cancelled,
	))
	hv.list.Refresh()
}

func (hv *HistoryView) Container() *fyne.Container {
	return hv.container
}

func describeRun(r *models.Run, now time.Time) string {
	return fmt.Sprintf("%s  %s  %s",
		humanize.RelTime(r.StartedAt, now, "ago", "from now"),
		formatDelay(r.Seconds),
		r.Outcome,
	)
}

// formatDelay renders whole minutes as "15 min" and anything else as MM:SS.
func formatDelay(seconds int) string {
	if seconds%60 == 0 {
		return fmt.Sprintf("%d min", seconds/60)
	}
	return countdown.FormatClock(seconds)
}
