package api

import (
	"context"
	"net/http"

	"github.com/ch1tg/GameTrackr-web/internal/domain"
)

// Credentials carries one of Username or Email plus the password. The zero
// field is omitted from the request body.
type Credentials struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password"`
}

// Registration is the payload for creating an account.
type Registration struct {
	Username string `json:"username" validate:"required,min=3,max=32"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// ProfileUpdate changes username and/or email. Empty fields are left as-is
// by the server.
type ProfileUpdate struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
}

type passwordChange struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

type accountDeletion struct {
	Password string `json:"password"`
}

// Login authenticates against the upstream API. On success the session and
// CSRF cookies land in the client's jar.
func (c *Client) Login(ctx context.Context, creds Credentials) (*domain.User, error) {
	var user domain.User
	if err := c.sendJSON(ctx, http.MethodPost, "/auth/login", creds, &user, "login failed"); err != nil {
		return nil, err
	}
	return &user, nil
}

// Register creates an account and signs it in.
func (c *Client) Register(ctx context.Context, reg Registration) (*domain.User, error) {
	var user domain.User
	if err := c.sendJSON(ctx, http.MethodPost, "/auth/register", reg, &user, "registration failed"); err != nil {
		return nil, err
	}
	return &user, nil
}

// Me returns the authenticated user, or an error when no session exists.
func (c *Client) Me(ctx context.Context) (*domain.User, error) {
	var user domain.User
	if err := c.getJSON(ctx, "/auth/me", nil, &user, "failed to fetch user"); err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout invalidates the upstream session.
func (c *Client) Logout(ctx context.Context) error {
	return c.sendJSON(ctx, http.MethodPost, "/auth/logout", nil, nil, "logout failed")
}

// UpdateProfile patches the current user's username and/or email.
func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) (*domain.User, error) {
	var user domain.User
	if err := c.sendJSON(ctx, http.MethodPatch, "/auth/me", update, &user, "failed to update profile"); err != nil {
		return nil, err
	}
	return &user, nil
}

// ChangePassword replaces the account password after the server verifies the
// old one.
func (c *Client) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	body := passwordChange{OldPassword: oldPassword, NewPassword: newPassword}
	return c.sendJSON(ctx, http.MethodPut, "/auth/me/password", body, nil, "failed to change password")
}

// DeleteAccount permanently removes the account. The server re-checks the
// password before deleting.
func (c *Client) DeleteAccount(ctx context.Context, password string) error {
	return c.sendJSON(ctx, http.MethodDelete, "/auth/me", accountDeletion{Password: password}, nil, "failed to delete account")
}
