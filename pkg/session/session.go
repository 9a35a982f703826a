// Package session resolves and carries the authenticated user identity.
// Components receive a Session explicitly rather than reading global state.
package session

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/mercury/pkg/api"
)

// State is the session tri-state.
type State int

const (
	// Unauthenticated means no identity is configured or resolution failed.
	Unauthenticated State = iota
	// Loading means a resolution is in flight.
	Loading
	// Authenticated means User is populated.
	Authenticated
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Authenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

// ErrNoIdentity means the config carries no provider identity to resolve.
var ErrNoIdentity = errors.New("session: no provider identity configured")

// UserResolver looks up a user by provider identity.
type UserResolver interface {
	UserByProvider(ctx context.Context, provider, providerID string) (*api.User, error)
}

// Session is the explicit identity context handed to components that need
// the current user.
type Session struct {
	State State
	User  *api.User
	Err   error
}

// Resolve looks up the configured provider identity and returns the settled
// session. A missing user or lookup failure settles to Unauthenticated with
// Err recorded; it never panics a caller into a half-authenticated state.
func Resolve(ctx context.Context, resolver UserResolver, provider, providerID string) Session {
	if provider == "" || providerID == "" {
		return Session{State: Unauthenticated, Err: ErrNoIdentity}
	}
	user, err := resolver.UserByProvider(ctx, provider, providerID)
	if err != nil {
		return Session{State: Unauthenticated, Err: fmt.Errorf("session: resolve user: %w", err)}
	}
	if user == nil {
		return Session{State: Unauthenticated, Err: fmt.Errorf("session: no user for %s/%s", provider, providerID)}
	}
	return Session{State: Authenticated, User: user}
}

// UserID returns the authenticated user's id, or an error otherwise.
func (s Session) UserID() (int64, error) {
	if s.State != Authenticated || s.User == nil {
		if s.Err != nil {
			return 0, s.Err
		}
		return 0, errors.New("session: not authenticated")
	}
	return s.User.ID, nil
}
