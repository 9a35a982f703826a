// Package goal defines the goal record and its lifecycle status.
package goal

import (
	"errors"
	"fmt"
	"strings"
)

// Status tracks where a goal is in its lifecycle.
type Status string

const (
	StatusNotStarted Status = "NOT_STARTED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusPaused     Status = "PAUSED"
	StatusCancelled  Status = "CANCELLED"
)

// AllStatuses lists every status in display order.
func AllStatuses() []Status {
	return []Status{StatusNotStarted, StatusInProgress, StatusCompleted, StatusPaused, StatusCancelled}
}

// StatusForName resolves user input like "in_progress" or "paused".
func StatusForName(name string) (Status, error) {
	normalized := Status(strings.ToUpper(strings.TrimSpace(name)))
	for _, s := range AllStatuses() {
		if s == normalized {
			return s, nil
		}
	}
	return "", fmt.Errorf("goal: unknown status %q", name)
}

const (
	// MaxTitleLen bounds goal titles.
	MaxTitleLen = 100
	// MaxDescriptionLen bounds goal descriptions.
	MaxDescriptionLen = 500
)

// Goal is a user-defined long-term objective with a date range and status.
// Field names follow the backend's JSON wire format.
type Goal struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
	Emoji       string `json:"emoji,omitempty"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Status      Status `json:"status"`
	UserID      int64  `json:"userId"`
	Username    string `json:"username,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
	UpdatedAt   string `json:"updatedAt,omitempty"`
}

// ValidateTitle enforces the non-empty, bounded title rule.
func ValidateTitle(title string) error {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return errors.New("goal: title is required")
	}
	if len([]rune(trimmed)) > MaxTitleLen {
		return fmt.Errorf("goal: title exceeds %d characters", MaxTitleLen)
	}
	return nil
}

// ValidateDescription enforces the description bound. Empty is allowed.
func ValidateDescription(description string) error {
	if len([]rune(description)) > MaxDescriptionLen {
		return fmt.Errorf("goal: description exceeds %d characters", MaxDescriptionLen)
	}
	return nil
}

// ValidateDates requires both dates set with start on or before end.
// Dates are YYYY-MM-DD strings, so lexical order is date order.
func ValidateDates(startDate, endDate string) error {
	if startDate == "" || endDate == "" {
		return errors.New("goal: start and end dates are required")
	}
	if startDate > endDate {
		return errors.New("goal: start date must be on or before end date")
	}
	return nil
}
