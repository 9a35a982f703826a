// Package habit defines recurring habits, their weekday schedules, and the
// single-day tasks derived from them.
package habit

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Weekday codes as the backend serializes them.
const (
	Mon = "Mon"
	Tue = "Tue"
	Wed = "Wed"
	Thu = "Thu"
	Fri = "Fri"
	Sat = "Sat"
	Sun = "Sun"
)

// WeekdayCodes lists the codes Monday-first, matching the order the schedule
// picker presents them.
func WeekdayCodes() []string {
	return []string{Mon, Tue, Wed, Thu, Fri, Sat, Sun}
}

var fullNames = map[string]string{
	Sun: "Sunday",
	Mon: "Monday",
	Tue: "Tuesday",
	Wed: "Wednesday",
	Thu: "Thursday",
	Fri: "Friday",
	Sat: "Saturday",
}

// WeekdayName expands a code to its full name ("Mon" -> "Monday").
func WeekdayName(code string) string {
	return fullNames[code]
}

// CodeFor returns the serialized code for a time.Weekday.
func CodeFor(d time.Weekday) string {
	return d.String()[:3]
}

// ValidCode reports whether code is one of the seven weekday codes.
func ValidCode(code string) bool {
	_, ok := fullNames[code]
	return ok
}

// JoinDays serializes a weekday set the way the backend stores it,
// comma-joined with a space ("Mon, Wed, Fri").
func JoinDays(codes []string) string {
	return strings.Join(codes, ", ")
}

// SplitDays parses a serialized weekday set, dropping unknown codes.
func SplitDays(serialized string) []string {
	parts := strings.Split(serialized, ",")
	codes := make([]string, 0, len(parts))
	for _, p := range parts {
		if code := strings.TrimSpace(p); ValidCode(code) {
			codes = append(codes, code)
		}
	}
	return codes
}

// Habit is a recurring weekly activity tied to a goal. StreakStatus is
// maintained server-side; clients refresh it after completion toggles.
type Habit struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Color        string `json:"color"`
	DaysOfWeek   string `json:"daysOfWeek"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	StreakStatus int    `json:"streakStatus"`
	GoalID       int64  `json:"goalId"`
	GoalTitle    string `json:"goalTitle,omitempty"`
	UserID       int64  `json:"userId"`
	Username     string `json:"username,omitempty"`
	CreatedAt    string `json:"createdAt,omitempty"`
	UpdatedAt    string `json:"updatedAt,omitempty"`
}

// Days returns the habit's weekday codes.
func (h *Habit) Days() []string {
	return SplitDays(h.DaysOfWeek)
}

// Validate checks the creation rules: non-empty name and description, at
// least one weekday, both dates present, end strictly after start.
func (h *Habit) Validate() error {
	if strings.TrimSpace(h.Name) == "" {
		return errors.New("habit: name is required")
	}
	if strings.TrimSpace(h.Description) == "" {
		return errors.New("habit: description is required")
	}
	if len(h.Days()) == 0 {
		return errors.New("habit: select at least one day")
	}
	if h.StartDate == "" || h.EndDate == "" {
		return errors.New("habit: start and end dates are required")
	}
	if h.EndDate <= h.StartDate {
		return errors.New("habit: end date must be after start date")
	}
	return nil
}

func (h *Habit) String() string {
	return fmt.Sprintf("%s (%s)", h.Name, h.DaysOfWeek)
}
