// Package note defines the progress notes attached to a goal.
package note

import (
	"errors"
	"sort"
	"strings"
)

// Note is a timestamped progress entry belonging to one goal.
type Note struct {
	ID        int64  `json:"id"`
	Content   string `json:"content"`
	GoalID    int64  `json:"goalId"`
	CreatedAt string `json:"createdAt"`
}

// Validate requires non-empty content.
func (n *Note) Validate() error {
	if strings.TrimSpace(n.Content) == "" {
		return errors.New("note: content is required")
	}
	return nil
}

// SortNewestFirst orders notes for display, newest first. CreatedAt is an
// ISO timestamp, so lexical order is chronological.
func SortNewestFirst(notes []Note) {
	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].CreatedAt > notes[j].CreatedAt
	})
}
