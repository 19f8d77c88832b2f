package oauthlogin

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"net"
	"net/http"
	"time"

	gooidc "github.com/coreos/go-oidc/v3/oidc"
	"github.com/pkg/errors"
	"golang.org/x/oauth2"
)

// FlowConfig configures a direct authorization-code flow against an OIDC
// provider. This path bypasses the backend's browser redirect dance and
// is meant for terminal sign-in.
type FlowConfig struct {
	ClientID     string
	ClientSecret string
	IssuerURL    string
	Scopes       []string
	// ListenAddr is the loopback address the callback server binds to.
	// Defaults to 127.0.0.1:0.
	ListenAddr string
	HTTPClient *http.Client
}

// Flow runs authorization-code + PKCE against a discovered OIDC provider
// with a loopback callback server catching the redirect.
type Flow struct {
	config   *oauth2.Config
	verifier *gooidc.IDTokenVerifier
	listen   string
}

// NewFlow discovers the provider's endpoints and prepares the flow.
func NewFlow(ctx context.Context, cfg FlowConfig) (*Flow, error) {
	if cfg.ClientID == "" {
		return nil, errors.New("[oauthlogin.NewFlow] client ID is required")
	}
	if cfg.IssuerURL == "" {
		return nil, errors.New("[oauthlogin.NewFlow] issuer URL is required")
	}

	if cfg.HTTPClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, cfg.HTTPClient)
	}

	provider, err := gooidc.NewProvider(ctx, cfg.IssuerURL)
	if err != nil {
		return nil, errors.Wrap(err, "[oauthlogin.NewFlow] discovery")
	}

	scopes := cfg.Scopes
	if len(scopes) == 0 {
		scopes = []string{gooidc.ScopeOpenID, "profile", "email"}
	}

	listen := cfg.ListenAddr
	if listen == "" {
		listen = "127.0.0.1:0"
	}

	return &Flow{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint:     provider.Endpoint(),
			Scopes:       scopes,
		},
		verifier: provider.Verifier(&gooidc.Config{ClientID: cfg.ClientID}),
		listen:   listen,
	}, nil
}

// Run executes the whole flow: bind the loopback listener, hand the
// authorization URL to openBrowser, wait for the redirect, exchange the
// code and verify the ID token. The returned string is the raw ID token
// for the session's OAuth handoff.
func (f *Flow) Run(ctx context.Context, openBrowser func(authURL string) error) (string, error) {
	listener, err := net.Listen("tcp", f.listen)
	if err != nil {
		return "", errors.Wrap(err, "[Flow.Run] listen")
	}
	defer listener.Close()

	state, err := randomString(32)
	if err != nil {
		return "", errors.Wrap(err, "[Flow.Run] generate state")
	}
	pkce := oauth2.GenerateVerifier()

	config := *f.config
	config.RedirectURL = "http://" + listener.Addr().String() + "/callback"

	authURL := config.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.S256ChallengeOption(pkce),
	)

	type callback struct {
		code string
		err  error
	}
	results := make(chan callback, 1)

	mux := http.NewServeMux()
	mux.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		switch {
		case query.Get("error") != "":
			http.Error(w, "Sign-in failed. You can close this window.", http.StatusBadRequest)
			results <- callback{err: errors.Wrapf(ErrProviderError, "[Flow.Run] %s", query.Get("error"))}
		case query.Get("state") != state:
			http.Error(w, "Sign-in failed. You can close this window.", http.StatusBadRequest)
			results <- callback{err: errors.New("[Flow.Run] state mismatch")}
		default:
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			_, _ = w.Write([]byte("Signed in. You can close this window."))
			results <- callback{code: query.Get("code")}
		}
	})

	server := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	go func() { _ = server.Serve(listener) }()
	defer server.Close()

	if err := openBrowser(authURL); err != nil {
		return "", errors.Wrap(err, "[Flow.Run] open browser")
	}

	var code string
	select {
	case <-ctx.Done():
		return "", errors.Wrap(ctx.Err(), "[Flow.Run] waiting for callback")
	case result := <-results:
		if result.err != nil {
			return "", result.err
		}
		code = result.code
	}

	token, err := config.Exchange(ctx, code, oauth2.VerifierOption(pkce))
	if err != nil {
		return "", errors.Wrap(err, "[Flow.Run] exchange")
	}

	rawID, ok := token.Extra("id_token").(string)
	if !ok || rawID == "" {
		return "", errors.New("[Flow.Run] missing id_token in token response")
	}
	if _, err := f.verifier.Verify(ctx, rawID); err != nil {
		return "", errors.Wrap(err, "[Flow.Run] verify id_token")
	}
	return rawID, nil
}

func randomString(length int) (string, error) {
	buf := make([]byte, (length*3+3)/4)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf)[:length], nil
}
