package auth

import (
	"context"

	"github.com/fittrack/go-fitness-client/api"
	"github.com/fittrack/go-fitness-client/users"
	"github.com/pkg/errors"
)

// Client calls the authentication endpoints.
type Client struct {
	api *api.Client
}

// NewClient creates an auth Client over the given API client.
func NewClient(apiClient *api.Client) *Client {
	return &Client{api: apiClient}
}

// Login exchanges credentials for tokens and the user profile.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*Response, error) {
	if err := ValidateLogin(req); err != nil {
		return nil, err
	}
	var resp Response
	if err := c.api.Post(ctx, "auth/login", req, &resp); err != nil {
		return nil, errors.Wrap(err, "[Client.Login] auth/login")
	}
	return &resp, nil
}

// Register creates an account and signs it in.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*Response, error) {
	if err := ValidateRegistration(req); err != nil {
		return nil, err
	}
	var resp Response
	if err := c.api.Post(ctx, "auth/register", req, &resp); err != nil {
		return nil, errors.Wrap(err, "[Client.Register] auth/register")
	}
	return &resp, nil
}

// Refresh exchanges a refresh token for a new access token, optionally
// with a rotated refresh token.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*TokenRefreshResponse, error) {
	var resp TokenRefreshResponse
	req := TokenRefreshRequest{RefreshToken: refreshToken}
	if err := c.api.Post(ctx, "auth/refresh", req, &resp); err != nil {
		return nil, errors.Wrap(err, "[Client.Refresh] auth/refresh")
	}
	return &resp, nil
}

// Profile fetches the authenticated user's profile.
func (c *Client) Profile(ctx context.Context) (*users.User, error) {
	var user users.User
	if err := c.api.Get(ctx, "users/profile", nil, &user); err != nil {
		return nil, errors.Wrap(err, "[Client.Profile] users/profile")
	}
	return &user, nil
}
