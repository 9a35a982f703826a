package wizard

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"tableflip.dev/mercury/pkg/api"
	"tableflip.dev/mercury/pkg/goal"
	"tableflip.dev/mercury/pkg/habit"
	"tableflip.dev/mercury/pkg/palette"
)

// GoalCreator creates the goal record on submit.
type GoalCreator interface {
	CreateGoal(ctx context.Context, req api.CreateGoalRequest) (*goal.Goal, error)
}

// HabitCreator creates one habit record.
type HabitCreator interface {
	CreateHabit(ctx context.Context, req api.CreateHabitRequest) (*habit.Habit, error)
}

// TaskCreator creates one task record.
type TaskCreator interface {
	CreateTask(ctx context.Context, req api.CreateTaskRequest) (*habit.Task, error)
}

// SubmitResult reports what the wizard created. HabitErrors holds the
// failures from the best-effort habit batch; a created goal plus failed
// habits is still a completed submit.
type SubmitResult struct {
	Goal        *goal.Goal
	Created     []habit.Habit
	HabitErrors []error
}

// Submit creates the goal, then issues one habit creation per accepted
// candidate concurrently. A goal-creation failure aborts the whole submit.
// Habit creations are independently fault-tolerant: failures are collected,
// not rolled back, and siblings proceed. Colors cycle through the palette by
// candidate index.
func (w *GoalWizard) Submit(ctx context.Context, goals GoalCreator, habits HabitCreator, userID int64) (*SubmitResult, error) {
	if ok, reason := w.CanAdvance(StepTitle); !ok {
		return nil, fmt.Errorf("wizard: %s", reason)
	}
	if ok, reason := w.CanAdvance(StepDates); !ok {
		return nil, fmt.Errorf("wizard: %s", reason)
	}

	g, err := goals.CreateGoal(ctx, api.CreateGoalRequest{
		Title:       strings.TrimSpace(w.Title),
		Description: strings.TrimSpace(w.Description),
		ImageURL:    strings.TrimSpace(w.ImageURL),
		Emoji:       w.Emoji,
		StartDate:   w.StartDate,
		EndDate:     w.EndDate,
		UserID:      userID,
	})
	if err != nil {
		return nil, fmt.Errorf("wizard: create goal: %w", err)
	}

	result := &SubmitResult{Goal: g}
	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	for i, c := range w.Candidates {
		if !c.Accepted {
			continue
		}
		wg.Add(1)
		go func(index int, c Candidate) {
			defer wg.Done()
			created, err := habits.CreateHabit(ctx, api.CreateHabitRequest{
				Name:        c.Name,
				Description: c.Description,
				DaysOfWeek:  habit.JoinDays(c.DaysOfWeek),
				StartDate:   w.StartDate,
				EndDate:     w.EndDate,
				Color:       palette.At(index).Hex,
				GoalID:      g.ID,
				UserID:      userID,
			})
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.HabitErrors = append(result.HabitErrors, fmt.Errorf("habit %q: %w", c.Name, err))
				return
			}
			result.Created = append(result.Created, *created)
		}(i, c)
	}
	wg.Wait()
	return result, nil
}
