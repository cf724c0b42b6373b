package adminapi

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/me/adminctl/pkg/model"
)

// ListUsers fetches all user records.
func (c *Client) ListUsers(ctx context.Context) ([]model.User, error) {
	body, err := c.do(ctx, "GET", "/usuarios", nil, true)
	if err != nil {
		return nil, err
	}
	return unmarshalData[[]model.User](body)
}

// GetUser fetches a single user by ID.
func (c *Client) GetUser(ctx context.Context, id int64) (*model.User, error) {
	body, err := c.do(ctx, "GET", "/usuarios/"+strconv.FormatInt(id, 10), nil, true)
	if err != nil {
		return nil, err
	}
	return unmarshalData[*model.User](body)
}

// CreateUser creates a user record.
func (c *Client) CreateUser(ctx context.Context, form model.UserForm) (*model.User, error) {
	body, err := c.do(ctx, "POST", "/usuarios", form, true)
	if err != nil {
		return nil, err
	}
	return unmarshalData[*model.User](body)
}

// UpdateUser updates an existing user record. Zero-valued optional fields
// in the form are omitted from the request.
func (c *Client) UpdateUser(ctx context.Context, id int64, form model.UserForm) (*model.User, error) {
	body, err := c.do(ctx, "PUT", "/usuarios/"+strconv.FormatInt(id, 10), form, true)
	if err != nil {
		return nil, err
	}
	return unmarshalData[*model.User](body)
}

// DeleteUser deletes a user record and returns the server's confirmation
// message.
func (c *Client) DeleteUser(ctx context.Context, id int64) (string, error) {
	body, err := c.do(ctx, "DELETE", "/usuarios/"+strconv.FormatInt(id, 10), nil, true)
	if err != nil {
		return "", err
	}
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("parse delete response: %w", err)
	}
	return payload.Message, nil
}
