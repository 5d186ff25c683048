package api

import (
	"context"
	"fmt"
	"net/http"
)

const staffPath = "/staff"

// Staff is a backend staff account. Management is manager-gated
// server-side; the console additionally hides these screens from
// non-managers via the route guard.
type Staff struct {
	ID         int64  `json:"id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	Department string `json:"department"`
	Active     bool   `json:"active"`
}

// StaffCreateRequest is the create payload.
type StaffCreateRequest struct {
	Email      string `json:"email"`
	Name       string `json:"name"`
	Department string `json:"department"`
}

// StaffUpdateRequest is the update payload; zero values are left unchanged
// by the backend.
type StaffUpdateRequest struct {
	Name       string `json:"name,omitempty"`
	Department string `json:"department,omitempty"`
	Active     *bool  `json:"active,omitempty"`
}

func (c *Client) ListStaff(ctx context.Context) ([]Staff, error) {
	var out []Staff
	if err := c.do(ctx, http.MethodGet, staffPath, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateStaff(ctx context.Context, req StaffCreateRequest) (*Staff, error) {
	out := &Staff{}
	if err := c.do(ctx, http.MethodPost, staffPath, req, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpdateStaff(ctx context.Context, id int64, req StaffUpdateRequest) (*Staff, error) {
	out := &Staff{}
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("%s/%d", staffPath, id), req, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) DeleteStaff(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("%s/%d", staffPath, id), nil, nil)
}
