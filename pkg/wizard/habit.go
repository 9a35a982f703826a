package wizard

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"tableflip.dev/mercury/pkg/api"
	"tableflip.dev/mercury/pkg/habit"
	"tableflip.dev/mercury/pkg/palette"
	"tableflip.dev/mercury/pkg/timeutil"
)

// AutoTask is a task derived from a habit's weekday schedule, shown for
// editing before submission.
type AutoTask struct {
	Date    string
	DayName string
	Name    string
}

// HabitForm collects a standalone habit creation: one validation gate
// instead of stepped guards. On submit it creates the habit and then its
// current-week tasks.
type HabitForm struct {
	Name         string
	Description  string
	Color        string
	GoalID       int64
	SelectedDays []string
	StartDate    string
	EndDate      string

	tasks         []AutoTask
	tasksStale    bool
	renamedByDate map[string]string
}

// ToggleDay adds or removes a weekday code from the selection.
func (f *HabitForm) ToggleDay(code string) {
	if !habit.ValidCode(code) {
		return
	}
	for i, c := range f.SelectedDays {
		if c == code {
			f.SelectedDays = append(f.SelectedDays[:i], f.SelectedDays[i+1:]...)
			f.tasksStale = true
			return
		}
	}
	f.SelectedDays = append(f.SelectedDays, code)
	f.tasksStale = true
}

// Validate returns field-keyed problems; an empty map means the form can be
// submitted.
func (f *HabitForm) Validate() map[string]string {
	errs := make(map[string]string)
	if strings.TrimSpace(f.Name) == "" {
		errs["name"] = "Name is required"
	}
	if strings.TrimSpace(f.Description) == "" {
		errs["description"] = "Description is required"
	}
	if f.GoalID == 0 {
		errs["goal"] = "Goal is required"
	}
	if len(f.SelectedDays) == 0 {
		errs["days"] = "Select at least one day"
	}
	if f.StartDate == "" {
		errs["startDate"] = "Start date is required"
	}
	if f.EndDate == "" {
		errs["endDate"] = "End date is required"
	}
	if f.StartDate != "" && f.EndDate != "" && f.EndDate <= f.StartDate {
		errs["endDate"] = "End date must be after start date"
	}
	return errs
}

// AutoTasks derives the tasks for the current calendar week (Sunday-start,
// relative to now): one per selected weekday, named "{habit} - {Weekday}".
// Individual edits via RenameTask survive regeneration. Weeks beyond the
// current one are not pre-created by this flow.
func (f *HabitForm) AutoTasks(now time.Time) []AutoTask {
	if !f.tasksStale && f.tasks != nil {
		return f.tasks
	}
	selected := make(map[string]bool, len(f.SelectedDays))
	for _, code := range f.SelectedDays {
		selected[code] = true
	}
	tasks := make([]AutoTask, 0, len(f.SelectedDays))
	for _, day := range timeutil.WindowFor(now).Days() {
		code := habit.CodeFor(day.Weekday())
		if !selected[code] {
			continue
		}
		date := timeutil.DateKey(day)
		name := fmt.Sprintf("Task - %s", habit.WeekdayName(code))
		if trimmed := strings.TrimSpace(f.Name); trimmed != "" {
			name = fmt.Sprintf("%s - %s", trimmed, habit.WeekdayName(code))
		}
		if renamed, ok := f.renamedByDate[date]; ok {
			name = renamed
		}
		tasks = append(tasks, AutoTask{Date: date, DayName: habit.WeekdayName(code), Name: name})
	}
	f.tasks = tasks
	f.tasksStale = false
	return f.tasks
}

// RenameTask overrides the generated name for the task on the given date.
func (f *HabitForm) RenameTask(date, name string) {
	if f.renamedByDate == nil {
		f.renamedByDate = make(map[string]string)
	}
	f.renamedByDate[date] = name
	f.tasksStale = true
}

// Invalidate forces AutoTasks to regenerate, e.g. after the name changed.
func (f *HabitForm) Invalidate() {
	f.tasksStale = true
}

// Submit creates the habit, then the current-week tasks concurrently once
// the habit call resolves. Task failures are collected best-effort and do
// not abort siblings; a habit-creation failure aborts the submit.
func (f *HabitForm) Submit(ctx context.Context, habits HabitCreator, tasks TaskCreator, userID int64, now time.Time) (*habit.Habit, []error, error) {
	if errs := f.Validate(); len(errs) > 0 {
		for _, msg := range errs {
			return nil, nil, fmt.Errorf("wizard: %s", msg)
		}
	}

	color := f.Color
	if color == "" {
		color = palette.Default().Hex
	}
	created, err := habits.CreateHabit(ctx, api.CreateHabitRequest{
		Name:        strings.TrimSpace(f.Name),
		Description: strings.TrimSpace(f.Description),
		DaysOfWeek:  habit.JoinDays(f.SelectedDays),
		StartDate:   f.StartDate,
		EndDate:     f.EndDate,
		Color:       color,
		GoalID:      f.GoalID,
		UserID:      userID,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("wizard: create habit: %w", err)
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		taskErrs []error
	)
	for _, at := range f.AutoTasks(now) {
		wg.Add(1)
		go func(at AutoTask) {
			defer wg.Done()
			_, err := tasks.CreateTask(ctx, api.CreateTaskRequest{
				Name:    at.Name,
				Date:    at.Date,
				HabitID: created.ID,
				UserID:  userID,
			})
			if err != nil {
				mu.Lock()
				taskErrs = append(taskErrs, fmt.Errorf("task %s: %w", at.Date, err))
				mu.Unlock()
			}
		}(at)
	}
	wg.Wait()
	return created, taskErrs, nil
}
