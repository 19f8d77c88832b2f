package session

import (
	"context"

	apiclient "github.com/fittrack/go-fitness-client/api"
	"github.com/fittrack/go-fitness-client/auth"
	"github.com/fittrack/go-fitness-client/routes"
	"github.com/fittrack/go-fitness-client/storage"
	"github.com/fittrack/go-fitness-client/token"
	"github.com/fittrack/go-fitness-client/users"
	"github.com/pkg/errors"
)

// Login authenticates with credentials. On success the tokens and user
// are persisted, the session becomes authenticated and the returned route
// is the role-appropriate dashboard. On failure the session is untouched
// and exactly one user-facing notification is raised.
func (s *Service) Login(ctx context.Context, req auth.LoginRequest) (routes.Route, error) {
	resp, err := s.api.Login(ctx, req)
	if err != nil {
		s.notifyAuthError(err)
		return "", errors.Wrap(err, "[Service.Login]")
	}

	route := s.handleAuthSuccess(resp)
	s.notifier.Success("Login successful!")
	return route, nil
}

// Register creates an account and signs it in, with the same success and
// failure behavior as Login.
func (s *Service) Register(ctx context.Context, req auth.RegisterRequest) (routes.Route, error) {
	resp, err := s.api.Register(ctx, req)
	if err != nil {
		s.notifyAuthError(err)
		return "", errors.Wrap(err, "[Service.Register]")
	}

	route := s.handleAuthSuccess(resp)
	s.notifier.Success("Registration successful!")
	return route, nil
}

// HandleOAuthToken completes a provider login from the raw token the
// OAuth redirect delivered: persist it, validate its shape, then fetch
// the full profile with it. Any failure fully clears the session.
func (s *Service) HandleOAuthToken(ctx context.Context, raw string) (routes.Route, error) {
	s.store.SetToken(raw)

	if _, err := token.Decode(raw); err != nil {
		s.clearAuthData()
		return "", errors.Wrap(ErrInvalidToken, "[Service.HandleOAuthToken]")
	}

	user, err := s.api.Profile(ctx)
	if err != nil {
		s.clearAuthData()
		return "", errors.Wrap(err, "[Service.HandleOAuthToken] profile fetch")
	}

	s.store.Set(storage.KeyUser, user)
	s.setState(user, true)
	return routes.DashboardFor(user.Role), nil
}

// Logout clears all persisted session data and resets the session to
// unauthenticated. It always succeeds and returns the login route.
func (s *Service) Logout() routes.Route {
	s.clearAuthData()
	s.notifier.Info("You have been logged out")
	s.emitNav(routes.RouteLogin)
	return routes.RouteLogin
}

// Refresh exchanges the stored refresh token for a new access token. At
// most one refresh call is in flight at a time: concurrent callers share
// the in-flight call's result. Failure forces a logout and propagates.
//
// Without a stored refresh token Refresh fails immediately, regardless of
// any in-flight call.
func (s *Service) Refresh(ctx context.Context) (string, error) {
	refreshToken, ok := storage.Get[string](s.store, storage.KeyRefreshToken)
	if !ok || refreshToken == "" {
		return "", errors.Wrap(ErrNoRefreshToken, "[Service.Refresh]")
	}

	newToken, err, _ := s.refreshGroup.Do("refresh", func() (any, error) {
		resp, err := s.api.Refresh(ctx, refreshToken)
		if err != nil {
			s.Logout()
			return nil, errors.Wrap(err, "[Service.Refresh] auth/refresh")
		}

		s.store.SetToken(resp.Token)
		if resp.RefreshToken != "" {
			// Rotated by the backend; otherwise the stored one stays valid.
			s.store.Set(storage.KeyRefreshToken, resp.RefreshToken)
		}
		s.setState(s.CurrentUser(), true)
		return resp.Token, nil
	})
	if err != nil {
		return "", err
	}
	return newToken.(string), nil
}

// RefreshIfNeeded refreshes the access token when the session is
// authenticated and the token is inside the refresh window. Errors are
// logged, not surfaced; the failure path inside Refresh already forces
// the logout.
func (s *Service) RefreshIfNeeded(ctx context.Context) {
	if !s.IsAuthenticated() {
		return
	}
	if !token.NeedsRefresh(s.Token(), s.threshold) {
		return
	}
	if _, err := s.Refresh(ctx); err != nil {
		s.log.Error().Err(err).Msg("token refresh failed")
	}
}

// UpdateUser replaces the cached user, e.g. after a profile edit.
func (s *Service) UpdateUser(user users.User) {
	s.store.Set(storage.KeyUser, user)
	s.mu.RLock()
	authenticated := s.state.IsAuthenticated
	s.mu.RUnlock()
	s.setState(&user, authenticated)
}

func (s *Service) handleAuthSuccess(resp *auth.Response) routes.Route {
	s.store.SetToken(resp.Token)
	if resp.RefreshToken != "" {
		s.store.Set(storage.KeyRefreshToken, resp.RefreshToken)
	}
	s.store.Set(storage.KeyUser, resp.User)

	user := resp.User
	s.setState(&user, true)
	return routes.DashboardFor(user.Role)
}

func (s *Service) clearAuthData() {
	s.store.RemoveToken()
	s.store.Remove(storage.KeyUser)
	s.setState(nil, false)
}

// notifyAuthError raises the single user-facing message for a failed
// login or registration. The api client suppresses its generic toast for
// auth endpoints, so this is the only notification the user sees.
func (s *Service) notifyAuthError(err error) {
	message := "An error occurred during authentication"

	var apiErr *apiclient.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.ServerMessage != "":
			message = apiErr.ServerMessage
		case apiErr.Status == 401:
			message = "Invalid credentials"
		case apiErr.Status == 403:
			message = "Access forbidden"
		case apiErr.Status == 0:
			message = "Unable to connect to server"
		}
	}
	s.notifier.Error(message)
}
