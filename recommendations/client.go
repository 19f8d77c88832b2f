package recommendations

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/fittrack/go-fitness-client/api"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Client is the typed client for the recommendation routes.
type Client struct {
	api *api.Client
}

// NewClient creates a recommendations Client over the shared api client.
func NewClient(client *api.Client) *Client {
	return &Client{api: client}
}

// Generate asks the backend to generate a recommendation for an activity.
func (c *Client) Generate(ctx context.Context, req GenerateRequest) (*Recommendation, error) {
	if err := validate.Struct(req); err != nil {
		return nil, errors.Wrap(err, "[Client.Generate] validation")
	}

	var out Recommendation
	if err := c.api.Post(ctx, "recommendations/generate", req, &out); err != nil {
		return nil, errors.Wrap(err, "[Client.Generate] recommendations/generate")
	}
	return &out, nil
}

// ForUser fetches all recommendations of a user.
func (c *Client) ForUser(ctx context.Context, userID string) ([]Recommendation, error) {
	var out []Recommendation
	if err := c.api.Get(ctx, fmt.Sprintf("recommendations/user/%s", userID), nil, &out); err != nil {
		return nil, errors.Wrapf(err, "[Client.ForUser] recommendations/user/%s", userID)
	}
	return out, nil
}

// ForActivity fetches the recommendations tied to an activity.
func (c *Client) ForActivity(ctx context.Context, activityID string) ([]Recommendation, error) {
	var out []Recommendation
	if err := c.api.Get(ctx, fmt.Sprintf("recommendations/activity/%s", activityID), nil, &out); err != nil {
		return nil, errors.Wrapf(err, "[Client.ForActivity] recommendations/activity/%s", activityID)
	}
	return out, nil
}

// Get fetches a single recommendation by ID.
func (c *Client) Get(ctx context.Context, id string) (*Recommendation, error) {
	var out Recommendation
	if err := c.api.Get(ctx, fmt.Sprintf("recommendations/%s", id), nil, &out); err != nil {
		return nil, errors.Wrapf(err, "[Client.Get] recommendations/%s", id)
	}
	return &out, nil
}

// Create records a recommendation by hand.
func (c *Client) Create(ctx context.Context, req CreateRequest) (*Recommendation, error) {
	if err := validate.Struct(req); err != nil {
		return nil, errors.Wrap(err, "[Client.Create] validation")
	}

	var out Recommendation
	if err := c.api.Post(ctx, "recommendations", req, &out); err != nil {
		return nil, errors.Wrap(err, "[Client.Create] recommendations")
	}
	return &out, nil
}

// Delete removes a recommendation.
func (c *Client) Delete(ctx context.Context, id string) error {
	if err := c.api.Delete(ctx, fmt.Sprintf("recommendations/%s", id), nil); err != nil {
		return errors.Wrapf(err, "[Client.Delete] recommendations/%s", id)
	}
	return nil
}
