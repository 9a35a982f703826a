// Package week provides the runner logic for the weekly task grid.
package week

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/mercury/pkg/app"
	"tableflip.dev/mercury/pkg/printers"
	"tableflip.dev/mercury/pkg/schedule"
	"tableflip.dev/mercury/pkg/timeutil"
)

// Week renders one week of tasks, bucketed per day.
type Week struct {
	ShowID  bool
	Summary bool

	// On anchors the window; zero means now. Offset then shifts whole weeks.
	On     *time.Time
	Offset int

	Service *app.Service
}

// Do fetches and prints the window's tasks. When the backend is down the
// last cached snapshot is shown with its age.
func (n *Week) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not show week, no service")
	}

	now := time.Now()
	anchor := now
	if n.On != nil {
		anchor = *n.On
	}
	w := timeutil.WindowFor(anchor)
	for i := 0; i < n.Offset; i++ {
		w = w.Next()
	}
	for i := 0; i > n.Offset; i-- {
		w = w.Previous()
	}

	res, err := n.Service.Week(ctx, w)
	if err != nil {
		return err
	}

	index := schedule.Bucket(res.Tasks)
	pp := printers.PrettyPrint{ShowID: n.ShowID}
	fmt.Println("")
	if res.Offline {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Printf("offline, showing snapshot from %s\n\n", res.FetchedAt.Format(time.RFC822))
	}
	if n.Summary {
		pp.WeekHeader(w, now)
		pp.WeekSummary(w, index)
		return nil
	}
	pp.Week(w, index, now)
	return nil
}
