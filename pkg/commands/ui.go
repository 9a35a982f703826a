package commands

import (
	"context"

	"github.com/spf13/cobra"

	tuiapp "tableflip.dev/mercury/pkg/tui/app"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Open the text-based user interface",
		Example: `
mercury ui
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(context.Background(), true)
			if err != nil {
				return err
			}
			return tuiapp.Run(e.Service, e.Session)
		},
	}

	topLevel.AddCommand(cmd)
}
