package commands

import (
	"context"

	"github.com/spf13/cobra"

	runnersync "tableflip.dev/mercury/pkg/runner/sync"
)

func addSync(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Refresh the offline snapshot cache",
		Example: `
mercury sync
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(context.Background(), true)
			if err != nil {
				return err
			}
			s := runnersync.Sync{Service: e.Service}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}
