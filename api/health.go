package api

import (
	"context"
	"net/http"
)

// Health is the backend liveness report.
type Health struct {
	Status string `json:"status"`
}

// CheckHealth probes the backend. It requires no session.
func (c *Client) CheckHealth(ctx context.Context) (*Health, error) {
	out := &Health{}
	if err := c.do(ctx, http.MethodGet, "/health", nil, out); err != nil {
		return nil, err
	}
	return out, nil
}
