package goals

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/mercury/pkg/api"
	"tableflip.dev/mercury/pkg/app"
	"tableflip.dev/mercury/pkg/printers"
)

// Edit updates a goal's fields. Only the fields set here change; the rest
// keep their stored values.
type Edit struct {
	ID          int64
	Title       string
	Description string
	Emoji       string
	ImageURL    string
	StartDate   string
	EndDate     string

	Service *app.Service
}

func (n *Edit) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not edit goal, no service")
	}

	g, err := n.Service.EditGoal(ctx, n.ID, api.UpdateGoalRequest{
		Title:       n.Title,
		Description: n.Description,
		Emoji:       n.Emoji,
		ImageURL:    n.ImageURL,
		StartDate:   n.StartDate,
		EndDate:     n.EndDate,
	})
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{ShowID: true}
	fmt.Println("")
	pp.Goals(*g)
	return nil
}
