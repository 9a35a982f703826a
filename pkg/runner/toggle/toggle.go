// Package toggle provides the runner logic for flipping task completion.
package toggle

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tableflip.dev/mercury/pkg/app"
	"tableflip.dev/mercury/pkg/printers"
	"tableflip.dev/mercury/pkg/timeutil"
	"tableflip.dev/mercury/pkg/tracker"
)

// Toggle flips one task's completion state.
type Toggle struct {
	ID int64

	Service *app.Service
}

// Do toggles the task through the completion controller so the confirmed
// state and the refreshed habit streaks come back together. Tasks outside
// the current week are toggled directly against the backend.
func (n *Toggle) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not toggle, no service")
	}

	ctrl := &tracker.Controller{
		UserID:  n.Service.UserID,
		Toggler: n.Service.Backend,
		Habits:  n.Service.Backend,
	}
	if week, err := n.Service.Week(ctx, timeutil.WindowFor(time.Now())); err == nil {
		ctrl.SetTasks(week.Tasks)
	}

	err := ctrl.Toggle(ctx, n.ID)
	if errors.Is(err, tracker.ErrUnknownTask) {
		return n.toggleDirect(ctx)
	}
	if err != nil {
		return err
	}

	t := ctrl.Task(n.ID)
	pp := printers.PrettyPrint{ShowID: true}
	fmt.Println("")
	pp.Title(t.Date)
	pp.Tasks(*t)

	habits := ctrl.HabitList()
	pp.TitleWithCount("Habits", len(habits), "habit")
	pp.Habits(habits...)

	return nil
}

func (n *Toggle) toggleDirect(ctx context.Context) error {
	t, err := n.Service.Toggle(ctx, n.ID)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{ShowID: true}
	fmt.Println("")
	pp.Title(t.Date)
	pp.Tasks(*t)

	habits, _, err := n.Service.Habits(ctx)
	if err != nil {
		return err
	}
	pp.TitleWithCount("Habits", len(habits), "habit")
	pp.Habits(habits...)

	return nil
}
