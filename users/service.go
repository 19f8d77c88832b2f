package users

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/pkg/errors"

	"github.com/fittrack/go-fitness-client/api"
)

// ProfileUpdate carries the editable profile fields. Nil fields are
// omitted so the backend treats the update as partial.
type ProfileUpdate struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Email     *string `json:"email,omitempty"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// Service is the typed client for the users routes. The list, search and
// delete operations require the ADMIN role server-side.
type Service struct {
	api *api.Client
}

// NewService creates a users Service over the shared api client.
func NewService(client *api.Client) *Service {
	return &Service{api: client}
}

// Profile fetches the signed-in user's profile.
func (s *Service) Profile(ctx context.Context) (*User, error) {
	var user User
	if err := s.api.Get(ctx, "users/profile", nil, &user); err != nil {
		return nil, errors.Wrap(err, "[Service.Profile] users/profile")
	}
	return &user, nil
}

// UpdateProfile applies a partial profile update and returns the updated
// user.
func (s *Service) UpdateProfile(ctx context.Context, update ProfileUpdate) (*User, error) {
	var user User
	if err := s.api.Put(ctx, "users/profile", update, &user); err != nil {
		return nil, errors.Wrap(err, "[Service.UpdateProfile] users/profile")
	}
	return &user, nil
}

// ChangePassword changes the signed-in user's password.
func (s *Service) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	req := changePasswordRequest{CurrentPassword: currentPassword, NewPassword: newPassword}
	if err := s.api.Post(ctx, "users/change-password", req, nil); err != nil {
		return errors.Wrap(err, "[Service.ChangePassword] users/change-password")
	}
	return nil
}

// Get fetches a user by ID.
func (s *Service) Get(ctx context.Context, userID string) (*User, error) {
	var user User
	if err := s.api.Get(ctx, fmt.Sprintf("users/%s", userID), nil, &user); err != nil {
		return nil, errors.Wrapf(err, "[Service.Get] users/%s", userID)
	}
	return &user, nil
}

// List returns a page of all users.
func (s *Service) List(ctx context.Context, page, size int) (*api.Page[User], error) {
	var out api.Page[User]
	if err := s.api.Get(ctx, "users", pageParams(page, size), &out); err != nil {
		return nil, errors.Wrap(err, "[Service.List] users")
	}
	return &out, nil
}

// Search returns a page of users whose name or email matches query.
func (s *Service) Search(ctx context.Context, query string, page, size int) (*api.Page[User], error) {
	params := pageParams(page, size)
	params.Set("query", query)

	var out api.Page[User]
	if err := s.api.Get(ctx, "users/search", params, &out); err != nil {
		return nil, errors.Wrap(err, "[Service.Search] users/search")
	}
	return &out, nil
}

// Delete removes a user.
func (s *Service) Delete(ctx context.Context, userID string) error {
	if err := s.api.Delete(ctx, fmt.Sprintf("users/%s", userID), nil); err != nil {
		return errors.Wrapf(err, "[Service.Delete] users/%s", userID)
	}
	return nil
}

func pageParams(page, size int) url.Values {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("size", strconv.Itoa(size))
	return params
}
