package api

import (
	"context"
	"fmt"
	"net/http"

	"tableflip.dev/mercury/pkg/note"
)

// CreateNoteRequest attaches a progress note to a goal.
type CreateNoteRequest struct {
	Content string `json:"content"`
	GoalID  int64  `json:"goalId"`
	UserID  int64  `json:"userId"`
}

// CreateNote creates a note on a goal.
func (c *Client) CreateNote(ctx context.Context, req CreateNoteRequest) (*note.Note, error) {
	var n note.Note
	if err := c.do(ctx, http.MethodPost, "/notes", req, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

// NotesByGoal lists a goal's notes, newest first.
func (c *Client) NotesByGoal(ctx context.Context, goalID int64) ([]note.Note, error) {
	var notes []note.Note
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/notes/goal/%d", goalID), nil, &notes); err != nil {
		return nil, err
	}
	note.SortNewestFirst(notes)
	return notes, nil
}

// CountNotesByGoal reports how many notes a goal carries.
func (c *Client) CountNotesByGoal(ctx context.Context, goalID int64) (int64, error) {
	var res countResponse
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/notes/goal/%d/count", goalID), nil, &res); err != nil {
		return 0, err
	}
	return res.Count, nil
}

// UpdateNote replaces a note's content.
func (c *Client) UpdateNote(ctx context.Context, id int64, content string) (*note.Note, error) {
	var n note.Note
	body := map[string]string{"content": content}
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/notes/%d", id), body, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

// DeleteNote removes a note.
func (c *Client) DeleteNote(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/notes/%d", id), nil, nil)
}
