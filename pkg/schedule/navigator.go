package schedule

import (
	"time"

	"tableflip.dev/mercury/pkg/timeutil"
)

// Navigator is the stateful cursor over the displayed week. Each transition
// bumps a generation counter; fetches tag their responses with the
// generation they were issued for, and stale responses are discarded instead
// of overwriting newer data.
type Navigator struct {
	window     timeutil.Window
	generation uint64
	now        func() time.Time
}

// NewNavigator starts at the week containing the current time.
func NewNavigator() *Navigator {
	n := &Navigator{now: time.Now}
	n.window = timeutil.WindowFor(n.now())
	return n
}

// SetNow overrides the clock, for tests and fixed-date rendering.
func (n *Navigator) SetNow(now func() time.Time) {
	if now == nil {
		now = time.Now
	}
	n.now = now
	n.window = timeutil.WindowFor(n.now())
	n.generation++
}

// Window returns the current week window.
func (n *Navigator) Window() timeutil.Window {
	return n.window
}

// Generation identifies the current window; it increases on every
// transition.
func (n *Navigator) Generation() uint64 {
	return n.generation
}

// Current reports whether gen still matches the displayed window, i.e.
// whether a fetch tagged with gen is safe to apply.
func (n *Navigator) Current(gen uint64) bool {
	return gen == n.generation
}

// PreviousWeek moves the cursor back seven days.
func (n *Navigator) PreviousWeek() timeutil.Window {
	n.window = n.window.Previous()
	n.generation++
	return n.window
}

// NextWeek moves the cursor forward seven days.
func (n *Navigator) NextWeek() timeutil.Window {
	n.window = n.window.Next()
	n.generation++
	return n.window
}

// JumpToToday recenters on the week containing now.
func (n *Navigator) JumpToToday() timeutil.Window {
	n.window = timeutil.WindowFor(n.now())
	n.generation++
	return n.window
}
