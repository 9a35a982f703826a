package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/mercury/pkg/runner/login"
)

func addLogin(topLevel *cobra.Command) {
	s := login.Login{}

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Register or refresh your identity with the backend",
		Example: `
mercury login --provider github --provider-id 1138 --username n3wscott
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if s.Provider == "" || s.ProviderID == "" {
				return errors.New("requires --provider and --provider-id")
			}
			e, err := loadEnv(context.Background(), false)
			if err != nil {
				return err
			}
			s.Client = e.Client
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	cmd.Flags().StringVar(&s.Provider, "provider", "", "Identity provider, example: github.")
	cmd.Flags().StringVar(&s.ProviderID, "provider-id", "", "Your id at the provider.")
	cmd.Flags().StringVar(&s.Username, "username", "", "Display username.")
	cmd.Flags().StringVar(&s.Email, "email", "", "Contact email.")
	cmd.Flags().StringVar(&s.Name, "name", "", "Full name.")

	topLevel.AddCommand(cmd)
}
