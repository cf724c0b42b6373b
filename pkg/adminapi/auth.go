package adminapi

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/me/adminctl/pkg/model"
)

// Login exchanges credentials for a session token. It does not persist
// anything; the session controller owns storage.
func (c *Client) Login(ctx context.Context, req model.LoginRequest) (*model.AuthResponse, error) {
	body, err := c.do(ctx, "POST", "/auth/login", req, false)
	if err != nil {
		return nil, err
	}
	return parseAuthResponse(body)
}

// Register creates a new account. The API does not log the account in;
// the current session, if any, is unaffected.
func (c *Client) Register(ctx context.Context, form model.UserForm) (*model.AuthResponse, error) {
	body, err := c.do(ctx, "POST", "/auth/register", form, false)
	if err != nil {
		return nil, err
	}
	return parseAuthResponse(body)
}

// Logout invalidates the session server-side and returns the server's
// confirmation message.
func (c *Client) Logout(ctx context.Context) (string, error) {
	body, err := c.do(ctx, "POST", "/auth/logout", nil, true)
	if err != nil {
		return "", err
	}
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("parse logout response: %w", err)
	}
	return payload.Message, nil
}

// Refresh renews the current credential before it expires.
func (c *Client) Refresh(ctx context.Context) (*model.AuthResponse, error) {
	body, err := c.do(ctx, "POST", "/auth/refresh", nil, true)
	if err != nil {
		return nil, err
	}
	return parseAuthResponse(body)
}

// Check validates the current credential with the server. A nil error
// means the token is still accepted.
func (c *Client) Check(ctx context.Context) (*model.AuthResponse, error) {
	body, err := c.do(ctx, "GET", "/auth/check", nil, true)
	if err != nil {
		return nil, err
	}
	return parseAuthResponse(body)
}

func parseAuthResponse(body []byte) (*model.AuthResponse, error) {
	var resp model.AuthResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parse auth response: %w", err)
	}
	return &resp, nil
}
