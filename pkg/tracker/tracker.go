// Package tracker owns the in-memory task/habit collections behind the
// weekly view and applies completion toggles optimistically.
package tracker

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/mercury/pkg/habit"
	"tableflip.dev/mercury/pkg/schedule"
)

// ErrUnknownTask reports a toggle aimed at a task the controller does not
// hold.
var ErrUnknownTask = errors.New("tracker: unknown task")

// TaskToggler flips a task's completion flag on the backend.
type TaskToggler interface {
	ToggleTask(ctx context.Context, id int64) (*habit.Task, error)
}

// HabitLister refreshes the user's habits, picking up the streak counters
// the server recalculates after a toggle.
type HabitLister interface {
	HabitsByUser(ctx context.Context, userID int64) ([]habit.Habit, error)
}

// Controller mutates its collections only from the single UI thread of
// control; no locking.
type Controller struct {
	UserID  int64
	Toggler TaskToggler
	Habits  HabitLister

	tasks  []habit.Task
	habits []habit.Habit
	index  schedule.Index
}

// SetTasks replaces the task collection and rebuilds the bucket index.
func (c *Controller) SetTasks(tasks []habit.Task) {
	c.tasks = tasks
	c.index = schedule.Bucket(c.tasks)
}

// SetHabits replaces the habit collection.
func (c *Controller) SetHabits(habits []habit.Habit) {
	c.habits = habits
}

// Tasks exposes the current task collection.
func (c *Controller) Tasks() []habit.Task {
	return c.tasks
}

// HabitList exposes the current habit collection.
func (c *Controller) HabitList() []habit.Habit {
	return c.habits
}

// Index exposes the current date-key bucket index.
func (c *Controller) Index() schedule.Index {
	return c.index
}

// Task returns the controller's copy of a task, or nil when it holds none
// with that id.
func (c *Controller) Task(taskID int64) *habit.Task {
	for i := range c.tasks {
		if c.tasks[i].ID == taskID {
			t := c.tasks[i]
			return &t
		}
	}
	return nil
}

// Apply replaces the local copy of a task with the given state, e.g. the
// server's answer after a confirmed toggle, and rebuilds the index.
func (c *Controller) Apply(updated habit.Task) {
	for i := range c.tasks {
		if c.tasks[i].ID == updated.ID {
			c.tasks[i] = updated
			c.index = schedule.Bucket(c.tasks)
			return
		}
	}
}

// Toggle flips the task's completed flag locally first, then confirms with
// the backend. On success the user's habits are refreshed so streak counters
// catch up. On failure the flag is reverted to its pre-toggle value and the
// error is returned for display; there is no automatic retry.
//
// Overlapping toggles on the same task are not serialized here; ordering of
// the two remote calls is collaborator-dependent.
func (c *Controller) Toggle(ctx context.Context, taskID int64) error {
	idx := -1
	for i := range c.tasks {
		if c.tasks[i].ID == taskID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: %d", ErrUnknownTask, taskID)
	}

	was := c.tasks[idx].Completed
	c.tasks[idx].Completed = !was
	c.index = schedule.Bucket(c.tasks)

	updated, err := c.Toggler.ToggleTask(ctx, taskID)
	if err != nil {
		c.tasks[idx].Completed = was
		c.index = schedule.Bucket(c.tasks)
		return fmt.Errorf("tracker: toggle task %d: %w", taskID, err)
	}
	if updated != nil {
		c.Apply(*updated)
	}

	if c.Habits != nil {
		habits, err := c.Habits.HabitsByUser(ctx, c.UserID)
		if err != nil {
			// The toggle committed; only the streak refresh is stale.
			return fmt.Errorf("tracker: refresh habits: %w", err)
		}
		c.habits = habits
	}
	return nil
}
