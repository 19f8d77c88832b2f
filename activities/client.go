package activities

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/fittrack/go-fitness-client/api"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Client is the typed client for the activity routes.
type Client struct {
	api *api.Client
}

// NewClient creates an activities Client over the shared api client.
func NewClient(client *api.Client) *Client {
	return &Client{api: client}
}

// List fetches all activities of the signed-in user.
func (c *Client) List(ctx context.Context) ([]Activity, error) {
	var out []Activity
	if err := c.api.Get(ctx, "activities", nil, &out); err != nil {
		return nil, errors.Wrap(err, "[Client.List] activities")
	}
	return out, nil
}

// Get fetches a single activity by ID.
func (c *Client) Get(ctx context.Context, id string) (*Activity, error) {
	var out Activity
	if err := c.api.Get(ctx, fmt.Sprintf("activities/%s", id), nil, &out); err != nil {
		return nil, errors.Wrapf(err, "[Client.Get] activities/%s", id)
	}
	return &out, nil
}

// Create logs a new activity.
func (c *Client) Create(ctx context.Context, req CreateRequest) (*Activity, error) {
	if err := validate.Struct(req); err != nil {
		return nil, errors.Wrap(err, "[Client.Create] validation")
	}

	var out Activity
	if err := c.api.Post(ctx, "activities", req, &out); err != nil {
		return nil, errors.Wrap(err, "[Client.Create] activities")
	}
	return &out, nil
}

// Update applies a partial update to an activity.
func (c *Client) Update(ctx context.Context, id string, req UpdateRequest) (*Activity, error) {
	var out Activity
	if err := c.api.Put(ctx, fmt.Sprintf("activities/%s", id), req, &out); err != nil {
		return nil, errors.Wrapf(err, "[Client.Update] activities/%s", id)
	}
	return &out, nil
}

// Delete removes an activity.
func (c *Client) Delete(ctx context.Context, id string) error {
	if err := c.api.Delete(ctx, fmt.Sprintf("activities/%s", id), nil); err != nil {
		return errors.Wrapf(err, "[Client.Delete] activities/%s", id)
	}
	return nil
}

// Statistics fetches the signed-in user's aggregate activity statistics.
func (c *Client) Statistics(ctx context.Context) (*Stats, error) {
	var out Stats
	if err := c.api.Get(ctx, "activities/statistics", nil, &out); err != nil {
		return nil, errors.Wrap(err, "[Client.Statistics] activities/statistics")
	}
	return &out, nil
}
