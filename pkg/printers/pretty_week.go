package printers

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/mercury/pkg/schedule"
	"tableflip.dev/mercury/pkg/timeutil"
)

// Week renders one section per day of the window, Sunday first. Days with no
// scheduled tasks are skipped unless they are today.
func (pp *PrettyPrint) Week(w timeutil.Window, index schedule.Index, now time.Time) {
	pp.WeekHeader(w, now)

	todayKey := timeutil.DateKey(now)
	for _, day := range w.Days() {
		key := timeutil.DateKey(day)
		tasks := index.On(key)
		if len(tasks) == 0 && key != todayKey {
			continue
		}

		pp.dayHeading(day, key == todayKey)
		pp.Tasks(tasks...)
	}
}

// WeekHeader prints the window's date range with completion totals.
func (pp *PrettyPrint) WeekHeader(w timeutil.Window, now time.Time) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	start := w.Start
	end := w.End()
	_, _ = t.Printf("Week of %s %d", start.Month(), start.Day())
	if w.Contains(now) {
		_, _ = c.Print("  (this week)")
	}
	_, _ = fmt.Fprintf(color.Output, "  %s → %s\n\n", timeutil.DateKey(start), timeutil.DateKey(end))
}

// WeekSummary prints a one-row-per-day completion overview.
func (pp *PrettyPrint) WeekSummary(w timeutil.Window, index schedule.Index) {
	tbl := uitable.New()
	tbl.Separator = "  "
	for _, day := range w.Days() {
		tasks := index.On(timeutil.DateKey(day))
		done := 0
		for _, t := range tasks {
			if t.Completed {
				done++
			}
		}
		cell := color.New(color.Faint).Sprint("none")
		if len(tasks) > 0 {
			cell = fmt.Sprintf("%d/%d done", done, len(tasks))
			if done == len(tasks) {
				cell = color.New(color.FgGreen).Sprint(cell)
			}
		}
		tbl.AddRow(day.Weekday().String(), cell)
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
	fmt.Println("")
}

func (pp *PrettyPrint) dayHeading(day time.Time, today bool) {
	t := color.New(color.Bold)
	if pp.ShowID {
		_, _ = t.Print(spacing)
	}
	_, _ = t.Printf("%s %d", day.Weekday(), day.Day())
	if today {
		_, _ = color.New(color.FgCyan).Print("  ← today")
	}
	fmt.Println("")
}
