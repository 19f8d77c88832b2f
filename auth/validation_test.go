package auth_test

import (
	"testing"

	"github.com/fittrack/go-fitness-client/auth"
	"github.com/stretchr/testify/require"
)

func TestValidateLogin(t *testing.T) {
	tests := []struct {
		name    string
		req     auth.LoginRequest
		wantErr bool
	}{
		{"valid", auth.LoginRequest{Email: "john.doe@example.com", Password: "Password1"}, false},
		{"missing email", auth.LoginRequest{Password: "Password1"}, true},
		{"bad email", auth.LoginRequest{Email: "not-an-email", Password: "Password1"}, true},
		{"missing password", auth.LoginRequest{Email: "john.doe@example.com"}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := auth.ValidateLogin(tc.req)
			if tc.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestValidateRegistration(t *testing.T) {
	valid := auth.RegisterRequest{
		Email:     "jane.doe@example.com",
		Password:  "Password1",
		FirstName: "Jane",
		LastName:  "Doe",
	}
	require.NoError(t, auth.ValidateRegistration(valid))

	missingName := valid
	missingName.FirstName = ""
	require.Error(t, auth.ValidateRegistration(missingName))

	weak := valid
	weak.Password = "password"
	require.Error(t, auth.ValidateRegistration(weak))
}

func TestValidatePasswordStrength(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid", "Password1", false},
		{"too short", "Pa1", true},
		{"no uppercase", "password1", true},
		{"no lowercase", "PASSWORD1", true},
		{"no number", "Passwords", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := auth.ValidatePasswordStrength(tc.password)
			if tc.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
