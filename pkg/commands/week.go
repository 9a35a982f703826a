package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/mercury/pkg/commands/options"
	"tableflip.dev/mercury/pkg/runner/week"
)

func addWeek(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	oo := &options.OnOptions{}
	offset := 0
	summary := false

	cmd := &cobra.Command{
		Use:     "week",
		Aliases: []string{"w"},
		Short:   "Show the week's tasks, Sunday through Saturday",
		Example: `
mercury week
mercury week --offset -1
mercury week --on 2025-6-15 --summary
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			on, err := oo.GetOn()
			if err != nil {
				return err
			}
			e, err := loadEnv(context.Background(), true)
			if err != nil {
				return err
			}
			s := week.Week{
				ShowID:  io.ShowID,
				Summary: summary,
				On:      on,
				Offset:  offset,
				Service: e.Service,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	cmd.Flags().IntVar(&offset, "offset", 0, "Shift whole weeks from the anchor, negative for the past.")
	cmd.Flags().BoolVar(&summary, "summary", false, "One line per day with completion totals.")
	options.AddOnArgs(cmd, oo)
	options.AddShowIDArgs(cmd, io)

	topLevel.AddCommand(cmd)
}
