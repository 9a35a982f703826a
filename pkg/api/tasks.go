package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"tableflip.dev/mercury/pkg/habit"
)

// CreateTaskRequest creates a single-day task under a habit.
type CreateTaskRequest struct {
	Name    string `json:"name"`
	Date    string `json:"date"`
	HabitID int64  `json:"habitId"`
	UserID  int64  `json:"userId"`
}

// UpdateTaskRequest carries a partial task edit.
type UpdateTaskRequest struct {
	Name      string `json:"name,omitempty"`
	Completed *bool  `json:"completed,omitempty"`
	Date      string `json:"date,omitempty"`
}

// CreateTask creates a new task.
func (c *Client) CreateTask(ctx context.Context, req CreateTaskRequest) (*habit.Task, error) {
	var t habit.Task
	if err := c.do(ctx, http.MethodPost, "/tasks", req, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// TaskByID fetches one task. Returns (nil, nil) on 404.
func (c *Client) TaskByID(ctx context.Context, id int64) (*habit.Task, error) {
	var t habit.Task
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/tasks/%d", id), nil, &t)
	if IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// TasksByUser lists every task owned by a user.
func (c *Client) TasksByUser(ctx context.Context, userID int64) ([]habit.Task, error) {
	var tasks []habit.Task
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/tasks/user/%d", userID), nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// TasksByHabit lists tasks derived from one habit.
func (c *Client) TasksByHabit(ctx context.Context, habitID int64) ([]habit.Task, error) {
	var tasks []habit.Task
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/tasks/habit/%d", habitID), nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// TasksByDateRange lists a user's tasks between two YYYY-MM-DD dates,
// inclusive. This is the weekly calendar query.
func (c *Client) TasksByDateRange(ctx context.Context, userID int64, startDate, endDate string) ([]habit.Task, error) {
	path := fmt.Sprintf("/tasks/user/%d/week?startDate=%s&endDate=%s",
		userID, url.QueryEscape(startDate), url.QueryEscape(endDate))
	var tasks []habit.Task
	if err := c.do(ctx, http.MethodGet, path, nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// CompletedTasksByUser lists a user's finished tasks.
func (c *Client) CompletedTasksByUser(ctx context.Context, userID int64) ([]habit.Task, error) {
	var tasks []habit.Task
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/tasks/user/%d/completed", userID), nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// PendingTasksByUser lists a user's unfinished tasks.
func (c *Client) PendingTasksByUser(ctx context.Context, userID int64) ([]habit.Task, error) {
	var tasks []habit.Task
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/tasks/user/%d/pending", userID), nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// ToggleTask flips a task's completion flag. The server recalculates any
// derived streak counters; callers refresh habits afterwards.
func (c *Client) ToggleTask(ctx context.Context, id int64) (*habit.Task, error) {
	var t habit.Task
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/tasks/%d/toggle", id), nil, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// UpdateTask applies a partial edit to a task.
func (c *Client) UpdateTask(ctx context.Context, id int64, req UpdateTaskRequest) (*habit.Task, error) {
	var t habit.Task
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/tasks/%d", id), req, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// DeleteTask removes a task.
func (c *Client) DeleteTask(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/tasks/%d", id), nil, nil)
}
