package goals

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/mercury/pkg/app"
	"tableflip.dev/mercury/pkg/goal"
	"tableflip.dev/mercury/pkg/printers"
)

// SetStatus moves a goal through its lifecycle.
type SetStatus struct {
	ID     int64
	Status string

	Service *app.Service
}

func (n *SetStatus) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not set status, no service")
	}
	status, err := goal.StatusForName(n.Status)
	if err != nil {
		return err
	}

	g, err := n.Service.SetGoalStatus(ctx, n.ID, status)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{ShowID: true}
	fmt.Println("")
	pp.Goals(*g)
	return nil
}

// Delete removes a goal and everything under it.
type Delete struct {
	ID int64

	Service *app.Service
}

func (n *Delete) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not delete, no service")
	}
	if err := n.Service.DeleteGoal(ctx, n.ID); err != nil {
		return err
	}
	fmt.Printf("deleted goal %d\n", n.ID)
	return nil
}
