package session

import (
	"context"
	"errors"
	"testing"

	"tableflip.dev/mercury/pkg/api"
)

type fakeResolver struct {
	user *api.User
	err  error
}

func (f *fakeResolver) UserByProvider(ctx context.Context, provider, providerID string) (*api.User, error) {
	return f.user, f.err
}

func TestResolveAuthenticated(t *testing.T) {
	r := &fakeResolver{user: &api.User{ID: 7, Provider: "github", ProviderID: "88", Username: "sam"}}
	s := Resolve(context.Background(), r, "github", "88")
	if s.State != Authenticated {
		t.Fatalf("expected authenticated, got %s", s.State)
	}
	id, err := s.UserID()
	if err != nil || id != 7 {
		t.Fatalf("expected user 7, got %d (%v)", id, err)
	}
}

func TestResolveWithoutIdentity(t *testing.T) {
	s := Resolve(context.Background(), &fakeResolver{}, "", "")
	if s.State != Unauthenticated || !errors.Is(s.Err, ErrNoIdentity) {
		t.Fatalf("expected unauthenticated/ErrNoIdentity, got %s %v", s.State, s.Err)
	}
	if _, err := s.UserID(); err == nil {
		t.Fatal("expected error from UserID on unauthenticated session")
	}
}

func TestResolveUnknownUser(t *testing.T) {
	s := Resolve(context.Background(), &fakeResolver{}, "github", "missing")
	if s.State != Unauthenticated || s.Err == nil {
		t.Fatalf("expected unauthenticated with error, got %s %v", s.State, s.Err)
	}
}

func TestResolveLookupFailure(t *testing.T) {
	r := &fakeResolver{err: errors.New("boom")}
	s := Resolve(context.Background(), r, "github", "88")
	if s.State != Unauthenticated || s.Err == nil {
		t.Fatalf("expected unauthenticated with error, got %s %v", s.State, s.Err)
	}
}
