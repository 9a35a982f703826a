// Package app provides high-level operations over the backend client and
// the offline snapshot cache so UIs and CLIs can share logic.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tableflip.dev/mercury/pkg/ai"
	"tableflip.dev/mercury/pkg/api"
	"tableflip.dev/mercury/pkg/goal"
	"tableflip.dev/mercury/pkg/habit"
	"tableflip.dev/mercury/pkg/note"
	"tableflip.dev/mercury/pkg/store"
	"tableflip.dev/mercury/pkg/timeutil"
	"tableflip.dev/mercury/pkg/wizard"
)

// Backend is the slice of the REST client the service depends on.
type Backend interface {
	TasksByDateRange(ctx context.Context, userID int64, startDate, endDate string) ([]habit.Task, error)
	ToggleTask(ctx context.Context, id int64) (*habit.Task, error)
	HabitsByUser(ctx context.Context, userID int64) ([]habit.Habit, error)
	GoalsByUser(ctx context.Context, userID int64) ([]goal.Goal, error)
	ActiveGoalsByUser(ctx context.Context, userID int64) ([]goal.Goal, error)
	UpdateGoal(ctx context.Context, id int64, req api.UpdateGoalRequest) (*goal.Goal, error)
	UpdateGoalStatus(ctx context.Context, id int64, status goal.Status) (*goal.Goal, error)
	DeleteGoal(ctx context.Context, id int64) error
	DeleteHabit(ctx context.Context, id int64) error
	CreateNote(ctx context.Context, req api.CreateNoteRequest) (*note.Note, error)
	NotesByGoal(ctx context.Context, goalID int64) ([]note.Note, error)
	UpdateNote(ctx context.Context, id int64, content string) (*note.Note, error)
	DeleteNote(ctx context.Context, id int64) error
}

// Creator is the slice of the REST client the goal and habit wizards
// submit through.
type Creator interface {
	wizard.GoalCreator
	wizard.HabitCreator
	wizard.TaskCreator
}

// Service wraps the backend and the snapshot cache for one signed-in user.
// Reads prefer the backend and fall back to the last snapshot when it is
// unreachable; writes always require the backend.
type Service struct {
	Backend Backend
	Creator Creator
	AI      ai.Recommender
	Cache   store.Snapshots
	UserID  int64
}

// WeekResult is a window of tasks plus where they came from.
type WeekResult struct {
	Tasks     []habit.Task
	Offline   bool
	FetchedAt time.Time
}

var errNoBackend = errors.New("app: no backend configured")

// Week fetches the tasks for a window, caching on success and falling back
// to the cache when the backend is unreachable.
func (s *Service) Week(ctx context.Context, w timeutil.Window) (*WeekResult, error) {
	if s.Backend == nil {
		return nil, errNoBackend
	}
	start := timeutil.DateKey(w.Start)
	end := timeutil.DateKey(w.End())

	tasks, err := s.Backend.TasksByDateRange(ctx, s.UserID, start, end)
	if err == nil {
		if s.Cache != nil {
			if cerr := s.Cache.SaveWeek(s.UserID, start, tasks); cerr != nil {
				return nil, fmt.Errorf("app: cache week: %w", cerr)
			}
		}
		return &WeekResult{Tasks: tasks}, nil
	}

	if s.Cache != nil {
		cached, at, cerr := s.Cache.Week(s.UserID, start)
		if cerr == nil {
			return &WeekResult{Tasks: cached, Offline: true, FetchedAt: at}, nil
		}
	}
	return nil, fmt.Errorf("app: fetch week %s: %w", start, err)
}

// Habits lists the user's habits with their streak counters.
func (s *Service) Habits(ctx context.Context) ([]habit.Habit, bool, error) {
	if s.Backend == nil {
		return nil, false, errNoBackend
	}
	habits, err := s.Backend.HabitsByUser(ctx, s.UserID)
	if err == nil {
		if s.Cache != nil {
			if cerr := s.Cache.SaveHabits(s.UserID, habits); cerr != nil {
				return nil, false, fmt.Errorf("app: cache habits: %w", cerr)
			}
		}
		return habits, false, nil
	}
	if s.Cache != nil {
		cached, _, cerr := s.Cache.Habits(s.UserID)
		if cerr == nil {
			return cached, true, nil
		}
	}
	return nil, false, fmt.Errorf("app: fetch habits: %w", err)
}

// Goals lists the user's goals, optionally only the active ones. Active
// goals are in progress or not started with the end date still ahead.
func (s *Service) Goals(ctx context.Context, activeOnly bool) ([]goal.Goal, bool, error) {
	if s.Backend == nil {
		return nil, false, errNoBackend
	}
	var (
		goals []goal.Goal
		err   error
	)
	if activeOnly {
		goals, err = s.Backend.ActiveGoalsByUser(ctx, s.UserID)
	} else {
		goals, err = s.Backend.GoalsByUser(ctx, s.UserID)
	}
	if err == nil {
		if s.Cache != nil && !activeOnly {
			if cerr := s.Cache.SaveGoals(s.UserID, goals); cerr != nil {
				return nil, false, fmt.Errorf("app: cache goals: %w", cerr)
			}
		}
		return goals, false, nil
	}
	if s.Cache != nil && !activeOnly {
		cached, _, cerr := s.Cache.Goals(s.UserID)
		if cerr == nil {
			return cached, true, nil
		}
	}
	return nil, false, fmt.Errorf("app: fetch goals: %w", err)
}

// Toggle flips one task's completion on the backend and returns the stored
// state.
func (s *Service) Toggle(ctx context.Context, taskID int64) (*habit.Task, error) {
	if s.Backend == nil {
		return nil, errNoBackend
	}
	t, err := s.Backend.ToggleTask(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("app: toggle task %d: %w", taskID, err)
	}
	return t, nil
}

// EditGoal applies a partial update to a goal's fields. Fields left empty
// in req keep their current values on the backend.
func (s *Service) EditGoal(ctx context.Context, goalID int64, req api.UpdateGoalRequest) (*goal.Goal, error) {
	if s.Backend == nil {
		return nil, errNoBackend
	}
	if req.Title != "" {
		if err := goal.ValidateTitle(req.Title); err != nil {
			return nil, err
		}
	}
	if err := goal.ValidateDescription(req.Description); err != nil {
		return nil, err
	}
	if req.StartDate != "" && req.EndDate != "" {
		if err := goal.ValidateDates(req.StartDate, req.EndDate); err != nil {
			return nil, err
		}
	}
	g, err := s.Backend.UpdateGoal(ctx, goalID, req)
	if err != nil {
		return nil, fmt.Errorf("app: edit goal %d: %w", goalID, err)
	}
	return g, nil
}

// SetGoalStatus moves a goal through its lifecycle.
func (s *Service) SetGoalStatus(ctx context.Context, goalID int64, status goal.Status) (*goal.Goal, error) {
	if s.Backend == nil {
		return nil, errNoBackend
	}
	g, err := s.Backend.UpdateGoalStatus(ctx, goalID, status)
	if err != nil {
		return nil, fmt.Errorf("app: set goal %d status: %w", goalID, err)
	}
	return g, nil
}

// DeleteGoal removes a goal; the backend cascades to habits and tasks.
func (s *Service) DeleteGoal(ctx context.Context, goalID int64) error {
	if s.Backend == nil {
		return errNoBackend
	}
	if err := s.Backend.DeleteGoal(ctx, goalID); err != nil {
		return fmt.Errorf("app: delete goal %d: %w", goalID, err)
	}
	return nil
}

// DeleteHabit removes a habit and its tasks.
func (s *Service) DeleteHabit(ctx context.Context, habitID int64) error {
	if s.Backend == nil {
		return errNoBackend
	}
	if err := s.Backend.DeleteHabit(ctx, habitID); err != nil {
		return fmt.Errorf("app: delete habit %d: %w", habitID, err)
	}
	return nil
}

// AddNote records a progress note on a goal.
func (s *Service) AddNote(ctx context.Context, goalID int64, content string) (*note.Note, error) {
	if s.Backend == nil {
		return nil, errNoBackend
	}
	n := note.Note{Content: content, GoalID: goalID}
	if err := n.Validate(); err != nil {
		return nil, err
	}
	created, err := s.Backend.CreateNote(ctx, api.CreateNoteRequest{Content: content, GoalID: goalID, UserID: s.UserID})
	if err != nil {
		return nil, fmt.Errorf("app: add note: %w", err)
	}
	return created, nil
}

// Notes lists a goal's notes, newest first.
func (s *Service) Notes(ctx context.Context, goalID int64) ([]note.Note, error) {
	if s.Backend == nil {
		return nil, errNoBackend
	}
	notes, err := s.Backend.NotesByGoal(ctx, goalID)
	if err != nil {
		return nil, fmt.Errorf("app: fetch notes: %w", err)
	}
	return notes, nil
}

// EditNote replaces a note's content.
func (s *Service) EditNote(ctx context.Context, noteID int64, content string) (*note.Note, error) {
	if s.Backend == nil {
		return nil, errNoBackend
	}
	n := note.Note{Content: content}
	if err := n.Validate(); err != nil {
		return nil, err
	}
	updated, err := s.Backend.UpdateNote(ctx, noteID, content)
	if err != nil {
		return nil, fmt.Errorf("app: edit note %d: %w", noteID, err)
	}
	return updated, nil
}

// DeleteNote removes a note.
func (s *Service) DeleteNote(ctx context.Context, noteID int64) error {
	if s.Backend == nil {
		return errNoBackend
	}
	if err := s.Backend.DeleteNote(ctx, noteID); err != nil {
		return fmt.Errorf("app: delete note %d: %w", noteID, err)
	}
	return nil
}

// Sync refreshes every cached snapshot for the user: all goals, habits, and
// the window around now.
func (s *Service) Sync(ctx context.Context, now time.Time) error {
	if _, _, err := s.Goals(ctx, false); err != nil {
		return err
	}
	if _, _, err := s.Habits(ctx); err != nil {
		return err
	}
	w := timeutil.WindowFor(now)
	for _, window := range []timeutil.Window{w.Previous(), w, w.Next()} {
		if _, err := s.Week(ctx, window); err != nil {
			return err
		}
	}
	return nil
}

// Watch subscribes to cache change events.
func (s *Service) Watch(ctx context.Context) (<-chan store.Event, error) {
	if s.Cache == nil {
		return nil, errors.New("app: no cache configured")
	}
	return s.Cache.Watch(ctx)
}
