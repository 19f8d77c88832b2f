package session

import (
	"context"

	"github.com/fittrack/go-fitness-client/auth"
	"github.com/fittrack/go-fitness-client/users"
)

// AuthAPI is the slice of the backend the session manager needs. It is
// satisfied by *auth.Client.
type AuthAPI interface {
	Login(ctx context.Context, req auth.LoginRequest) (*auth.Response, error)
	Register(ctx context.Context, req auth.RegisterRequest) (*auth.Response, error)
	Refresh(ctx context.Context, refreshToken string) (*auth.TokenRefreshResponse, error)
	Profile(ctx context.Context) (*users.User, error)
}
