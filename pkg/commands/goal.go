package commands

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/mercury/pkg/ai"
	"tableflip.dev/mercury/pkg/commands/options"
	"tableflip.dev/mercury/pkg/goal"
	"tableflip.dev/mercury/pkg/runner/goals"
)

func addGoal(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "goal",
		Short: "Create and manage goals",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addGoalNew(cmd)
	addGoalEdit(cmd)
	addGoalStatus(cmd)
	addGoalDelete(cmd)

	topLevel.AddCommand(cmd)
}

func addGoalNew(topLevel *cobra.Command) {
	gopts := &options.GoalOptions{}

	cmd := &cobra.Command{
		Use:     "new <title>",
		Aliases: []string{"add", "create"},
		Short:   "Create a goal, with AI-suggested habits unless skipped",
		Example: `
mercury goal new Learn Spanish --end 2025-12-31
mercury goal new Run a marathon --no-ai --emoji 🏃
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a title")
			}
			gopts.Title = strings.Join(args, " ")
			return goal.ValidateTitle(gopts.Title)
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
			s := goals.New{
				Title:       gopts.Title,
				Description: gopts.Description,
				Emoji:       gopts.Emoji,
				ImageURL:    gopts.ImageURL,
				StartDate:   gopts.StartDate,
				EndDate:     gopts.EndDate,
				SkipAI:      gopts.SkipAI,
				UserID:      uid,
				Recommender: ai.New(e.Config.OpenAIKey),
				Goals:       e.Client,
				Habits:      e.Client,
			}
			if e.Config.OpenAIKey == "" {
				s.SkipAI = true
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddGoalFieldArgs(cmd, gopts)

	topLevel.AddCommand(cmd)
}

func addGoalEdit(topLevel *cobra.Command) {
	gopts := &options.GoalOptions{}

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update a goal's title, description, dates, or card",
		Example: `
mercury goal edit 7 --title "Learn Spanish fluently"
mercury goal edit 7 --end 2026-06-30 --start 2026-01-01
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return errors.New("requires a numeric goal id")
			}
			if cmd.Flags().NFlag() == 0 {
				return errors.New("requires at least one field flag")
			}
			e, err := loadEnv(context.Background(), true)
			if err != nil {
				return err
			}
			s := goals.Edit{
				ID:          id,
				Title:       gopts.Title,
				Description: gopts.Description,
				Emoji:       gopts.Emoji,
				ImageURL:    gopts.ImageURL,
				StartDate:   gopts.StartDate,
				EndDate:     gopts.EndDate,
				Service:     e.Service,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddGoalEditFieldArgs(cmd, gopts)

	topLevel.AddCommand(cmd)
}

func addGoalStatus(topLevel *cobra.Command) {
	statuses := make([]string, 0, len(goal.AllStatuses()))
	for _, s := range goal.AllStatuses() {
		statuses = append(statuses, strings.ToLower(string(s)))
	}

	cmd := &cobra.Command{
		Use:   "status <id> <status>",
		Short: "Move a goal through its lifecycle: " + strings.Join(statuses, ", "),
		Example: `
mercury goal status 7 completed
mercury goal status 7 paused
`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return errors.New("requires a numeric goal id")
			}
			e, err := loadEnv(context.Background(), true)
			if err != nil {
				return err
			}
			s := goals.SetStatus{
				ID:      id,
				Status:  args[1],
				Service: e.Service,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}

func addGoalDelete(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a goal and its habits and tasks",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return errors.New("requires a numeric goal id")
			}
			e, err := loadEnv(context.Background(), true)
			if err != nil {
				return err
			}
			s := goals.Delete{ID: id, Service: e.Service}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}
