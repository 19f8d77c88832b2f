// Package oauthlogin implements provider sign-in: building the backend's
// authorization redirect URLs, parsing the token callback contract, and
// an optional full authorization-code flow against an OIDC provider for
// environments without a browser session to delegate to.
package oauthlogin

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/pkg/errors"
)

// Provider names the backend supports on its authorization routes.
const (
	ProviderGoogle = "google"
	ProviderGitHub = "github"
)

// Callback errors.
var (
	// ErrProviderError is returned when the provider reported a failure in
	// the callback's error parameter.
	ErrProviderError = errors.New("provider reported an error")

	// ErrNoToken is returned when the callback carries neither a token nor
	// an error.
	ErrNoToken = errors.New("no authentication token received")
)

// AuthorizationURL builds the URL that starts a provider login on the
// backend. backendURL is the server root, without the /api suffix.
func AuthorizationURL(backendURL, provider string) string {
	return fmt.Sprintf("%s/oauth2/authorization/%s", strings.TrimSuffix(backendURL, "/"), provider)
}

// ParseCallback extracts the access token from the redirect the backend
// issues after a provider login. The contract is a token query parameter
// on success and an error query parameter on failure.
func ParseCallback(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", errors.Wrap(err, "[ParseCallback]")
	}

	query := u.Query()
	if msg := query.Get("error"); msg != "" {
		return "", errors.Wrapf(ErrProviderError, "[ParseCallback] %s", msg)
	}

	token := query.Get("token")
	if token == "" {
		return "", errors.Wrap(ErrNoToken, "[ParseCallback]")
	}
	return token, nil
}
