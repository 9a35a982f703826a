package commands

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/mercury/pkg/commands/options"
	"tableflip.dev/mercury/pkg/runner/notes"
)

func addNote(topLevel *cobra.Command) {
	gopts := &options.GoalOptions{}

	cmd := &cobra.Command{
		Use:     "note <text>",
		Aliases: []string{"notes"},
		Short:   "Record a progress note on a goal",
		Example: `
mercury note --goal 7 first week done, speaking feels easier
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires note text")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(context.Background(), true)
			if err != nil {
				return err
			}
			s := notes.Add{
				GoalID:  gopts.GoalID,
				Content: strings.Join(args, " "),
				Service: e.Service,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddGoalArgs(cmd, gopts)
	base.AddOutputArg(cmd, output)

	addNoteEdit(cmd)
	addNoteDelete(cmd)
	topLevel.AddCommand(cmd)
}

func addNoteEdit(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "edit <id> <text>",
		Short: "Replace a note's text",
		Example: `
mercury note edit 12 second week done, conversations flow now
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) < 2 {
				return errors.New("requires a note id and replacement text")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return errors.New("requires a numeric note id")
			}
			e, err := loadEnv(context.Background(), true)
			if err != nil {
				return err
			}
			s := notes.Edit{
				ID:      id,
				Content: strings.Join(args[1:], " "),
				Service: e.Service,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}

func addNoteDelete(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a note",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return errors.New("requires a numeric note id")
			}
			e, err := loadEnv(context.Background(), true)
			if err != nil {
				return err
			}
			s := notes.Delete{ID: id, Service: e.Service}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}
