package api

import (
	"context"
	"fmt"
	"net/http"

	"tableflip.dev/mercury/pkg/habit"
)

// CreateHabitRequest creates a habit under a goal.
type CreateHabitRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	DaysOfWeek  string `json:"daysOfWeek"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Color       string `json:"color"`
	GoalID      int64  `json:"goalId"`
	UserID      int64  `json:"userId"`
}

// UpdateHabitRequest carries a partial habit edit.
type UpdateHabitRequest struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	DaysOfWeek  string `json:"daysOfWeek,omitempty"`
	StartDate   string `json:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty"`
	Color       string `json:"color,omitempty"`
}

// CreateHabit creates a new habit.
func (c *Client) CreateHabit(ctx context.Context, req CreateHabitRequest) (*habit.Habit, error) {
	var h habit.Habit
	if err := c.do(ctx, http.MethodPost, "/habits", req, &h); err != nil {
		return nil, err
	}
	return &h, nil
}

// HabitByID fetches one habit. Returns (nil, nil) on 404.
func (c *Client) HabitByID(ctx context.Context, id int64) (*habit.Habit, error) {
	var h habit.Habit
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/habits/%d", id), nil, &h)
	if IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &h, nil
}

// HabitsByUser lists all habits for a user, including server-maintained
// streak counters.
func (c *Client) HabitsByUser(ctx context.Context, userID int64) ([]habit.Habit, error) {
	var habits []habit.Habit
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/habits/user/%d", userID), nil, &habits); err != nil {
		return nil, err
	}
	return habits, nil
}

// HabitsByGoal lists habits belonging to a goal.
func (c *Client) HabitsByGoal(ctx context.Context, goalID int64) ([]habit.Habit, error) {
	var habits []habit.Habit
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/habits/goal/%d", goalID), nil, &habits); err != nil {
		return nil, err
	}
	return habits, nil
}

// CountHabitsByUser reports the user's habit total.
func (c *Client) CountHabitsByUser(ctx context.Context, userID int64) (int64, error) {
	var res countResponse
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/habits/user/%d/count", userID), nil, &res); err != nil {
		return 0, err
	}
	return res.Count, nil
}

// UpdateHabit applies a partial edit to a habit.
func (c *Client) UpdateHabit(ctx context.Context, id int64, req UpdateHabitRequest) (*habit.Habit, error) {
	var h habit.Habit
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/habits/%d", id), req, &h); err != nil {
		return nil, err
	}
	return &h, nil
}

// DeleteHabit removes a habit. The backend cascades to its tasks.
func (c *Client) DeleteHabit(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/habits/%d", id), nil, nil)
}
