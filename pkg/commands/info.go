package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/mercury/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show configuration, session, and cache state",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(context.Background(), false)
			if err != nil {
				return err
			}
			if uid, uerr := e.Session.UserID(); uerr == nil {
				e.Service.UserID = uid
			}
			s := info.Info{
				Config:  e.Config,
				Session: e.Session,
				Service: e.Service,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}
