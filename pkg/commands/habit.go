package commands

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/mercury/pkg/commands/options"
	"tableflip.dev/mercury/pkg/runner/habits"
)

func addHabit(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "habit",
		Short: "Create and manage habits",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addHabitNew(cmd)
	addHabitDelete(cmd)

	topLevel.AddCommand(cmd)
}

func addHabitNew(topLevel *cobra.Command) {
	name := ""
	gopts := &options.GoalOptions{}
	hopts := &options.HabitOptions{}

	cmd := &cobra.Command{
		Use:     "new <name>",
		Aliases: []string{"add", "create"},
		Short:   "Create a habit under a goal, scheduling this week's tasks",
		Example: `
mercury habit new Morning run --goal 7 -d Mon,Wed,Fri --description "5k before work" --start 2025-06-01 --end 2025-09-01
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a name")
			}
			name = strings.Join(args, " ")
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(context.Background(), true)
			if err != nil {
				return err
			}
			uid, err := e.Session.UserID()
			if err != nil {
				return err
			}
			s := habits.New{
				Name:        name,
				Description: hopts.Description,
				Color:       hopts.Color,
				GoalID:      gopts.GoalID,
				Days:        hopts.Days,
				StartDate:   hopts.StartDate,
				EndDate:     hopts.EndDate,
				UserID:      uid,
				Habits:      e.Client,
				Tasks:       e.Client,
				Service:     e.Service,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddGoalArgs(cmd, gopts)
	options.AddHabitFieldArgs(cmd, hopts)

	topLevel.AddCommand(cmd)
}

func addHabitDelete(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a habit and its tasks",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return errors.New("requires a numeric habit id")
			}
			e, err := loadEnv(context.Background(), true)
			if err != nil {
				return err
			}
			s := habits.Delete{ID: id, Service: e.Service}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}
