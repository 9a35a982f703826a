// Package get provides the runner logic for listing records.
package get

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/mercury/pkg/app"
	"tableflip.dev/mercury/pkg/printers"
)

// Kinds the get runner understands.
const (
	KindGoals  = "goals"
	KindHabits = "habits"
	KindNotes  = "notes"
)

// Get lists goals, habits, or a goal's notes.
type Get struct {
	ShowID bool
	Kind   string

	// Active limits goals to the ones still being worked.
	Active bool
	// GoalID scopes notes to one goal.
	GoalID int64

	Service *app.Service
}

func (n *Get) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not get, no service")
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID}
	fmt.Println("")

	switch n.Kind {
	case KindGoals:
		goals, offline, err := n.Service.Goals(ctx, n.Active)
		if err != nil {
			return err
		}
		title := "Goals"
		if n.Active {
			title = "Active Goals"
		}
		if offline {
			title += " (offline)"
		}
		pp.TitleWithCount(title, len(goals), "goal")
		pp.Goals(goals...)

	case KindHabits:
		habits, offline, err := n.Service.Habits(ctx)
		if err != nil {
			return err
		}
		title := "Habits"
		if offline {
			title += " (offline)"
		}
		pp.TitleWithCount(title, len(habits), "habit")
		pp.Habits(habits...)

	case KindNotes:
		if n.GoalID == 0 {
			return errors.New("get notes requires a goal id")
		}
		notes, err := n.Service.Notes(ctx, n.GoalID)
		if err != nil {
			return err
		}
		pp.TitleWithCount("Notes", len(notes), "note")
		pp.Notes(notes...)

	default:
		return fmt.Errorf("unknown kind %q, want goals, habits, or notes", n.Kind)
	}

	return nil
}
