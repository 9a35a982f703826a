// Package schedule turns flat task collections into the weekly calendar
// view model: a date-keyed bucket index plus a navigable week cursor.
package schedule

import (
	"tableflip.dev/mercury/pkg/habit"
	"tableflip.dev/mercury/pkg/timeutil"
)

// Index maps date keys (YYYY-MM-DD) to the tasks scheduled that day.
// It is rebuilt from scratch whenever the task collection changes.
type Index struct {
	buckets map[string][]habit.Task
}

// Bucket groups tasks by their own date key, preserving input order within
// each day. Days without tasks get no entry; On returns an empty slice for
// them.
func Bucket(tasks []habit.Task) Index {
	buckets := make(map[string][]habit.Task, len(tasks))
	for _, t := range tasks {
		buckets[t.Date] = append(buckets[t.Date], t)
	}
	return Index{buckets: buckets}
}

// On returns the tasks for a date key, possibly empty, never nil lookup
// failure.
func (ix Index) On(dateKey string) []habit.Task {
	return ix.buckets[dateKey]
}

// Len reports how many tasks the index holds across all days.
func (ix Index) Len() int {
	n := 0
	for _, tasks := range ix.buckets {
		n += len(tasks)
	}
	return n
}

// Days returns the 7 task lists for a window, Sunday through Saturday.
func (ix Index) Days(w timeutil.Window) [][]habit.Task {
	days := make([][]habit.Task, 7)
	for i, d := range w.Days() {
		days[i] = ix.On(timeutil.DateKey(d))
	}
	return days
}
