// Package health checks the backend's actuator health endpoint.
package health

import (
	"context"

	"github.com/pkg/errors"

	"github.com/fittrack/go-fitness-client/api"
)

// StatusUp is the status value a healthy backend reports.
const StatusUp = "UP"

// Status is the actuator health response.
type Status struct {
	Status     string               `json:"status"`
	Components map[string]Component `json:"components,omitempty"`
}

// Component is the health of one backend subsystem.
type Component struct {
	Status  string         `json:"status"`
	Details map[string]any `json:"details,omitempty"`
}

// Up reports whether the overall status is UP.
func (s Status) Up() bool {
	return s.Status == StatusUp
}

// Client checks the backend health endpoint.
type Client struct {
	api *api.Client
}

// NewClient creates a health Client over the shared api client.
func NewClient(client *api.Client) *Client {
	return &Client{api: client}
}

// Check fetches the backend health status.
func (c *Client) Check(ctx context.Context) (*Status, error) {
	var out Status
	if err := c.api.Get(ctx, "actuator/health", nil, &out); err != nil {
		return nil, errors.Wrap(err, "[Client.Check] actuator/health")
	}
	return &out, nil
}

// Healthy reports whether the backend is reachable and every component
// is up. Unreachable backends report false, not an error.
func (c *Client) Healthy(ctx context.Context) bool {
	status, err := c.Check(ctx)
	return err == nil && status.Up()
}
