package measurements

import (
	"context"
	"fmt"
	"net/url"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/fittrack/go-fitness-client/api"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Client is the typed client for the measurement routes.
type Client struct {
	api *api.Client
}

// NewClient creates a measurements Client over the shared api client.
func NewClient(client *api.Client) *Client {
	return &Client{api: client}
}

// List fetches all measurements of the signed-in user.
func (c *Client) List(ctx context.Context) ([]Measurement, error) {
	var out []Measurement
	if err := c.api.Get(ctx, "measurements", nil, &out); err != nil {
		return nil, errors.Wrap(err, "[Client.List] measurements")
	}
	return out, nil
}

// ListByDateRange fetches the measurements between two dates, inclusive.
// Dates use the backend's YYYY-MM-DD form.
func (c *Client) ListByDateRange(ctx context.Context, startDate, endDate string) ([]Measurement, error) {
	params := url.Values{}
	params.Set("startDate", startDate)
	params.Set("endDate", endDate)

	var out []Measurement
	if err := c.api.Get(ctx, "measurements", params, &out); err != nil {
		return nil, errors.Wrap(err, "[Client.ListByDateRange] measurements")
	}
	return out, nil
}

// Get fetches a single measurement by ID.
func (c *Client) Get(ctx context.Context, id string) (*Measurement, error) {
	var out Measurement
	if err := c.api.Get(ctx, fmt.Sprintf("measurements/%s", id), nil, &out); err != nil {
		return nil, errors.Wrapf(err, "[Client.Get] measurements/%s", id)
	}
	return &out, nil
}

// Create records a new measurement.
func (c *Client) Create(ctx context.Context, m Measurement) (*Measurement, error) {
	if err := validate.Struct(m); err != nil {
		return nil, errors.Wrap(err, "[Client.Create] validation")
	}

	var out Measurement
	if err := c.api.Post(ctx, "measurements", m, &out); err != nil {
		return nil, errors.Wrap(err, "[Client.Create] measurements")
	}
	return &out, nil
}

// Update replaces a measurement.
func (c *Client) Update(ctx context.Context, id string, m Measurement) (*Measurement, error) {
	var out Measurement
	if err := c.api.Put(ctx, fmt.Sprintf("measurements/%s", id), m, &out); err != nil {
		return nil, errors.Wrapf(err, "[Client.Update] measurements/%s", id)
	}
	return &out, nil
}

// Delete removes a measurement.
func (c *Client) Delete(ctx context.Context, id string) error {
	if err := c.api.Delete(ctx, fmt.Sprintf("measurements/%s", id), nil); err != nil {
		return errors.Wrapf(err, "[Client.Delete] measurements/%s", id)
	}
	return nil
}
