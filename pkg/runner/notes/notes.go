// Package notes provides the runner logic for goal progress notes.
package notes

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/mercury/pkg/app"
	"tableflip.dev/mercury/pkg/printers"
)

// Add records a progress note on a goal and echoes the goal's notes.
type Add struct {
	GoalID  int64
	Content string

	Service *app.Service
}

func (n *Add) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not add note, no service")
	}
	if _, err := n.Service.AddNote(ctx, n.GoalID, n.Content); err != nil {
		return err
	}

	all, err := n.Service.Notes(ctx, n.GoalID)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{}
	fmt.Println("")
	pp.TitleWithCount("Notes", len(all), "note")
	pp.Notes(all...)
	return nil
}

// Edit replaces a note's content and echoes the updated note.
type Edit struct {
	ID      int64
	Content string

	Service *app.Service
}

func (n *Edit) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not edit note, no service")
	}
	updated, err := n.Service.EditNote(ctx, n.ID, n.Content)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{ShowID: true}
	fmt.Println("")
	pp.Notes(*updated)
	return nil
}

// Delete removes one note.
type Delete struct {
	ID int64

	Service *app.Service
}

func (n *Delete) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not delete note, no service")
	}
	if err := n.Service.DeleteNote(ctx, n.ID); err != nil {
		return err
	}
	fmt.Printf("deleted note %d\n", n.ID)
	return nil
}
