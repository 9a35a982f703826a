package commands

import (
	"context"
	"errors"
	"strconv"

	"github.com/spf13/cobra"

	"tableflip.dev/mercury/pkg/runner/toggle"
)

func addToggle(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "toggle <task id>",
		Aliases: []string{"done", "check"},
		Short:   "Flip a task between done and not done",
		Example: `
mercury toggle 214
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return errors.New("requires a numeric task id")
			}
			e, err := loadEnv(context.Background(), true)
			if err != nil {
				return err
			}
			s := toggle.Toggle{
				ID:      id,
				Service: e.Service,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}
