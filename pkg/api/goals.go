package api

import (
	"context"
	"fmt"
	"net/http"

	"tableflip.dev/mercury/pkg/goal"
)

// CreateGoalRequest creates a goal. Dates are YYYY-MM-DD.
type CreateGoalRequest struct {
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	ImageURL    string      `json:"imageUrl,omitempty"`
	Emoji       string      `json:"emoji,omitempty"`
	StartDate   string      `json:"startDate"`
	EndDate     string      `json:"endDate"`
	Status      goal.Status `json:"status,omitempty"`
	UserID      int64       `json:"userId"`
}

// UpdateGoalRequest carries a full goal edit.
type UpdateGoalRequest struct {
	Title       string      `json:"title,omitempty"`
	Description string      `json:"description,omitempty"`
	ImageURL    string      `json:"imageUrl,omitempty"`
	Emoji       string      `json:"emoji,omitempty"`
	StartDate   string      `json:"startDate,omitempty"`
	EndDate     string      `json:"endDate,omitempty"`
	Status      goal.Status `json:"status,omitempty"`
}

// CreateGoal creates a new goal for a user.
func (c *Client) CreateGoal(ctx context.Context, req CreateGoalRequest) (*goal.Goal, error) {
	var g goal.Goal
	if err := c.do(ctx, http.MethodPost, "/goals", req, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

// GoalByID fetches one goal. Returns (nil, nil) on 404.
func (c *Client) GoalByID(ctx context.Context, id int64) (*goal.Goal, error) {
	var g goal.Goal
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/goals/%d", id), nil, &g)
	if IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// GoalsByUser lists all goals owned by a user.
func (c *Client) GoalsByUser(ctx context.Context, userID int64) ([]goal.Goal, error) {
	var goals []goal.Goal
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/goals/user/%d", userID), nil, &goals); err != nil {
		return nil, err
	}
	return goals, nil
}

// ActiveGoalsByUser lists goals still in progress for a user.
func (c *Client) ActiveGoalsByUser(ctx context.Context, userID int64) ([]goal.Goal, error) {
	var goals []goal.Goal
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/goals/user/%d/active", userID), nil, &goals); err != nil {
		return nil, err
	}
	return goals, nil
}

// CompletedGoalsByUser lists goals the user has finished.
func (c *Client) CompletedGoalsByUser(ctx context.Context, userID int64) ([]goal.Goal, error) {
	var goals []goal.Goal
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/goals/user/%d/completed", userID), nil, &goals); err != nil {
		return nil, err
	}
	return goals, nil
}

// OverdueGoalsByUser lists unfinished goals whose end date has passed.
func (c *Client) OverdueGoalsByUser(ctx context.Context, userID int64) ([]goal.Goal, error) {
	var goals []goal.Goal
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/goals/user/%d/overdue", userID), nil, &goals); err != nil {
		return nil, err
	}
	return goals, nil
}

// UpdateGoal applies a full edit to a goal.
func (c *Client) UpdateGoal(ctx context.Context, id int64, req UpdateGoalRequest) (*goal.Goal, error) {
	var g goal.Goal
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/goals/%d", id), req, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

// UpdateGoalStatus patches the status field in isolation.
func (c *Client) UpdateGoalStatus(ctx context.Context, id int64, status goal.Status) (*goal.Goal, error) {
	var g goal.Goal
	body := map[string]goal.Status{"status": status}
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/goals/%d/status", id), body, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

// DeleteGoal removes a goal. The backend cascades to habits and notes.
func (c *Client) DeleteGoal(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/goals/%d", id), nil, nil)
}
