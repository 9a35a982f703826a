// Package timeutil provides the Sunday-start week math used when bucketing
// tasks into calendar days.
package timeutil

import "time"

const layoutISO = "2006-01-02"

// StartOfWeek returns the most recent Sunday at midnight for d, in d's
// location. A Sunday input maps to itself.
func StartOfWeek(d time.Time) time.Time {
	midnight := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
	return midnight.AddDate(0, 0, -int(midnight.Weekday()))
}

// DateKey returns the YYYY-MM-DD key for d, derived from local calendar
// fields. Keys are never derived through UTC truncation; mixing the two
// disagrees near midnight.
func DateKey(d time.Time) string {
	return d.Format(layoutISO)
}

// ParseDateKey parses a YYYY-MM-DD key back into a local midnight time.
func ParseDateKey(key string) (time.Time, error) {
	return time.ParseInLocation(layoutISO, key, time.Local)
}

// DaysInWeek returns the 7 consecutive days starting at start, Sunday through
// Saturday when start came from StartOfWeek.
func DaysInWeek(start time.Time) []time.Time {
	days := make([]time.Time, 7)
	for i := range days {
		days[i] = start.AddDate(0, 0, i)
	}
	return days
}

// Window is a Sunday-to-Saturday span used for calendar display and
// date-range task queries. Start always falls on a Sunday at midnight.
type Window struct {
	Start time.Time
}

// WindowFor returns the window containing d.
func WindowFor(d time.Time) Window {
	return Window{Start: StartOfWeek(d)}
}

// End returns the last day of the window at midnight.
func (w Window) End() time.Time {
	return w.Start.AddDate(0, 0, 6)
}

// EndOfDay returns the inclusive range boundary, 23:59:59.999 on day 6.
func (w Window) EndOfDay() time.Time {
	end := w.End()
	return time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, int(999*time.Millisecond), end.Location())
}

// Days lists the window's 7 days in order.
func (w Window) Days() []time.Time {
	return DaysInWeek(w.Start)
}

// Contains reports whether d's calendar day falls inside the window.
func (w Window) Contains(d time.Time) bool {
	key := DateKey(d)
	return key >= DateKey(w.Start) && key <= DateKey(w.End())
}

// Previous shifts the window back one week.
func (w Window) Previous() Window {
	return Window{Start: w.Start.AddDate(0, 0, -7)}
}

// Next shifts the window forward one week.
func (w Window) Next() Window {
	return Window{Start: w.Start.AddDate(0, 0, 7)}
}
