package upstream

import (
	"context"
	"net/http"

	"vcarpool/models"
)

func (c *Client) Me(ctx context.Context, token string) (*models.User, error) {
	var out models.User
	if err := c.do(ctx, request{op: "users.me", method: http.MethodGet, path: "/users/me", token: token}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateMe(ctx context.Context, token string, update models.ProfileUpdate) (*models.User, error) {
	var out models.User
	req := request{op: "users.update_me", method: http.MethodPut, path: "/users/me", token: token, body: update}
	if err := c.do(ctx, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ChangePassword(ctx context.Context, token string, change models.PasswordChange) error {
	req := request{op: "users.password", method: http.MethodPut, path: "/users/me/password", token: token, body: change}
	return c.do(ctx, req, nil)
}

// CreateUser is admin-only upstream.
func (c *Client) CreateUser(ctx context.Context, token string, user models.UserCreate) (*models.User, error) {
	var out models.User
	req := request{op: "users.create", method: http.MethodPost, path: "/users", token: token, body: user}
	if err := c.do(ctx, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
