package api

import (
	"context"
	"fmt"
	"net/http"
)

// User is the backend's user record, keyed by OAuth provider identity.
type User struct {
	ID         int64  `json:"id"`
	Provider   string `json:"provider"`
	ProviderID string `json:"providerId"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	Name       string `json:"name,omitempty"`
	AvatarURL  string `json:"avatarUrl,omitempty"`
	Bio        string `json:"bio,omitempty"`
	Location   string `json:"location,omitempty"`
	CreatedAt  string `json:"createdAt,omitempty"`
	UpdatedAt  string `json:"updatedAt,omitempty"`
}

// CreateUserRequest creates or updates a user keyed by provider identity.
type CreateUserRequest struct {
	Provider   string `json:"provider"`
	ProviderID string `json:"providerId"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	Name       string `json:"name,omitempty"`
	AvatarURL  string `json:"avatarUrl,omitempty"`
}

// CreateOrUpdateUser upserts the user record for a provider identity.
func (c *Client) CreateOrUpdateUser(ctx context.Context, req CreateUserRequest) (*User, error) {
	var u User
	if err := c.do(ctx, http.MethodPost, "/users", req, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// UserByProvider resolves a provider+providerId pair. Returns (nil, nil)
// when no such user exists.
func (c *Client) UserByProvider(ctx context.Context, provider, providerID string) (*User, error) {
	var u User
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/users/provider/%s/%s", provider, providerID), nil, &u)
	if IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// UserByID fetches a user by id. Returns (nil, nil) on 404.
func (c *Client) UserByID(ctx context.Context, id int64) (*User, error) {
	var u User
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/users/%d", id), nil, &u)
	if IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
