// Package login provides the runner that registers or refreshes the user
// identity with the backend.
package login

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/mercury/pkg/api"
)

// Registrar upserts a user record by provider identity.
type Registrar interface {
	CreateOrUpdateUser(ctx context.Context, req api.CreateUserRequest) (*api.User, error)
}

// Login upserts the configured identity so later commands can resolve it.
type Login struct {
	Provider   string
	ProviderID string
	Username   string
	Email      string
	Name       string

	Client Registrar
}

func (n *Login) Do(ctx context.Context) error {
	if n.Client == nil {
		return errors.New("can not login, no client")
	}
	if n.Provider == "" || n.ProviderID == "" {
		return errors.New("login requires --provider and --provider-id")
	}

	user, err := n.Client.CreateOrUpdateUser(ctx, api.CreateUserRequest{
		Provider:   n.Provider,
		ProviderID: n.ProviderID,
		Username:   n.Username,
		Email:      n.Email,
		Name:       n.Name,
	})
	if err != nil {
		return err
	}

	fmt.Printf("signed in as %s (user %d)\n", user.Username, user.ID)
	fmt.Println("add provider and provider_id to your .mercury config to stay signed in")
	return nil
}
