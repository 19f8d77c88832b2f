package goals

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/fittrack/go-fitness-client/api"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Client is the typed client for the goal routes.
type Client struct {
	api *api.Client
}

// NewClient creates a goals Client over the shared api client.
func NewClient(client *api.Client) *Client {
	return &Client{api: client}
}

// List fetches all goals of the signed-in user.
func (c *Client) List(ctx context.Context) ([]Goal, error) {
	var out []Goal
	if err := c.api.Get(ctx, "goals", nil, &out); err != nil {
		return nil, errors.Wrap(err, "[Client.List] goals")
	}
	return out, nil
}

// Get fetches a single goal by ID.
func (c *Client) Get(ctx context.Context, id string) (*Goal, error) {
	var out Goal
	if err := c.api.Get(ctx, fmt.Sprintf("goals/%s", id), nil, &out); err != nil {
		return nil, errors.Wrapf(err, "[Client.Get] goals/%s", id)
	}
	return &out, nil
}

// Create creates a new goal.
func (c *Client) Create(ctx context.Context, goal Goal) (*Goal, error) {
	if err := validate.Struct(goal); err != nil {
		return nil, errors.Wrap(err, "[Client.Create] validation")
	}

	var out Goal
	if err := c.api.Post(ctx, "goals", goal, &out); err != nil {
		return nil, errors.Wrap(err, "[Client.Create] goals")
	}
	return &out, nil
}

// Update replaces a goal.
func (c *Client) Update(ctx context.Context, id string, goal Goal) (*Goal, error) {
	var out Goal
	if err := c.api.Put(ctx, fmt.Sprintf("goals/%s", id), goal, &out); err != nil {
		return nil, errors.Wrapf(err, "[Client.Update] goals/%s", id)
	}
	return &out, nil
}

// Delete removes a goal and its milestones.
func (c *Client) Delete(ctx context.Context, id string) error {
	if err := c.api.Delete(ctx, fmt.Sprintf("goals/%s", id), nil); err != nil {
		return errors.Wrapf(err, "[Client.Delete] goals/%s", id)
	}
	return nil
}

// AddMilestone attaches a milestone to a goal.
func (c *Client) AddMilestone(ctx context.Context, goalID string, milestone Milestone) (*Milestone, error) {
	if err := validate.Struct(milestone); err != nil {
		return nil, errors.Wrap(err, "[Client.AddMilestone] validation")
	}

	var out Milestone
	if err := c.api.Post(ctx, fmt.Sprintf("goals/%s/milestones", goalID), milestone, &out); err != nil {
		return nil, errors.Wrapf(err, "[Client.AddMilestone] goals/%s/milestones", goalID)
	}
	return &out, nil
}

// AchieveMilestone marks a milestone as achieved.
func (c *Client) AchieveMilestone(ctx context.Context, milestoneID string) (*Milestone, error) {
	var out Milestone
	if err := c.api.Put(ctx, fmt.Sprintf("goals/milestones/%s/achieve", milestoneID), struct{}{}, &out); err != nil {
		return nil, errors.Wrapf(err, "[Client.AchieveMilestone] goals/milestones/%s/achieve", milestoneID)
	}
	return &out, nil
}
