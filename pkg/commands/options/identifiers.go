// Package options defines shared flag helpers for CLI commands.
package options

import (
	"github.com/spf13/cobra"
)

// IDOptions
type IDOptions struct {
	ShowID bool
	ID     int64
}

func AddShowIDArgs(cmd *cobra.Command, o *IDOptions) {
	cmd.Flags().BoolVarP(&o.ShowID, "show-id", "k", false,
		"Show record IDs.")
}

func AddIDArgs(cmd *cobra.Command, o *IDOptions) {
	cmd.Flags().Int64Var(&o.ID, "id", 0,
		"Specify the id of a record.")
}
