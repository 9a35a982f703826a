// Package habits provides the runner logic for habit operations.
package habits

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/mercury/pkg/app"
	"tableflip.dev/mercury/pkg/printers"
	"tableflip.dev/mercury/pkg/wizard"
)

// New creates a habit under a goal and its tasks for the current week.
type New struct {
	Name        string
	Description string
	Color       string
	GoalID      int64
	Days        []string
	StartDate   string
	EndDate     string

	UserID  int64
	Habits  wizard.HabitCreator
	Tasks   wizard.TaskCreator
	Service *app.Service
}

func (n *New) Do(ctx context.Context) error {
	if n.Habits == nil || n.Tasks == nil {
		return errors.New("can not create habit, no backend")
	}

	form := &wizard.HabitForm{
		Name:        n.Name,
		Description: n.Description,
		Color:       n.Color,
		GoalID:      n.GoalID,
		StartDate:   n.StartDate,
		EndDate:     n.EndDate,
	}
	for _, day := range n.Days {
		form.ToggleDay(day)
	}
	if errs := form.Validate(); len(errs) > 0 {
		fields := make([]string, 0, len(errs))
		for field := range errs {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		for _, field := range fields {
			fmt.Printf("%s: %s\n", field, errs[field])
		}
		return errors.New("habit is incomplete")
	}

	created, taskErrs, err := form.Submit(ctx, n.Habits, n.Tasks, n.UserID, time.Now())
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{ShowID: true}
	fmt.Println("")
	pp.Title("Created")
	pp.Habits(*created)
	for _, terr := range taskErrs {
		_, _ = color.New(color.FgYellow).Printf("skipped: %v\n", terr)
	}

	return nil
}

// Delete removes a habit and its tasks.
type Delete struct {
	ID int64

	Service *app.Service
}

func (n *Delete) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not delete, no service")
	}
	if err := n.Service.DeleteHabit(ctx, n.ID); err != nil {
		return err
	}
	fmt.Printf("deleted habit %d\n", n.ID)
	return nil
}
