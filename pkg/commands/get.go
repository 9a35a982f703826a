package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/mercury/pkg/commands/options"
	"tableflip.dev/mercury/pkg/runner/get"
)

func addGet(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	gopts := &options.GoalOptions{}

	cmd := &cobra.Command{
		Use:       "get [kind]",
		Short:     "Get goals, habits, or notes",
		ValidArgs: []string{get.KindGoals, get.KindHabits, get.KindNotes},
		Example: `
mercury get goals
mercury get goals --active
mercury get habits -k
mercury get notes --goal 7
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return fmt.Errorf("requires a kind: %s", strings.Join(cmd.ValidArgs, ", "))
			}
			return cobra.OnlyValidArgs(cmd, args[:1])
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(context.Background(), true)
			if err != nil {
				return err
			}
			s := get.Get{
				ShowID:  io.ShowID,
				Kind:    args[0],
				Active:  gopts.Active,
				GoalID:  gopts.GoalID,
				Service: e.Service,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddShowIDArgs(cmd, io)
	options.AddActiveArg(cmd, gopts)
	options.AddGoalArgs(cmd, gopts)

	topLevel.AddCommand(cmd)
}
