// Package api is the HTTP boundary to the fitness service. Every outgoing
// request passes through one interception point that injects the bearer
// token and normalizes failures into user-facing messages (see Error).
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fittrack/go-fitness-client/notify"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DefaultTimeout bounds each request when no timeout option is given.
const DefaultTimeout = 30 * time.Second

// TokenSource yields the current access token, or "" when unauthenticated.
type TokenSource interface {
	Token() string
}

// TokenSourceFunc adapts a function to the TokenSource interface.
type TokenSourceFunc func() string

func (f TokenSourceFunc) Token() string { return f() }

// Client talks to the fitness API.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	timeout        time.Duration
	tokens         TokenSource
	notifier       notify.Notifier
	onUnauthorized func()
	log            zerolog.Logger
}

// NewClient creates a Client rooted at baseURL (e.g.
// "http://localhost:8080/api").
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		timeout:  DefaultTimeout,
		notifier: notify.NopNotifier{},
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: c.timeout}
	}
	return c
}

// BaseURL returns the API base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// BackendURL returns the server root with any trailing "/api" removed,
// the address OAuth redirects are built against.
func (c *Client) BackendURL() string {
	return strings.TrimSuffix(c.baseURL, "/api")
}

// Get issues a GET request and decodes the JSON response into out.
func (c *Client) Get(ctx context.Context, endpoint string, params url.Values, out any) error {
	return c.doJSON(ctx, http.MethodGet, endpoint, params, nil, out)
}

// Post issues a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, endpoint string, body, out any) error {
	return c.doJSON(ctx, http.MethodPost, endpoint, nil, body, out)
}

// Put issues a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, endpoint string, body, out any) error {
	return c.doJSON(ctx, http.MethodPut, endpoint, nil, body, out)
}

// Patch issues a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, endpoint string, body, out any) error {
	return c.doJSON(ctx, http.MethodPatch, endpoint, nil, body, out)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, endpoint string, out any) error {
	return c.doJSON(ctx, http.MethodDelete, endpoint, nil, nil, out)
}

// Upload sends r as a multipart form file under field and decodes the
// JSON response into out.
func (c *Client) Upload(ctx context.Context, endpoint, field, filename string, r io.Reader, out any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	if err != nil {
		return err
	}
	if _, err := io.Copy(fw, r); err != nil {
		return err
	}
	if err := mw.Close(); err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, endpoint, &buf, mw.FormDataContentType(), out)
}

func (c *Client) doJSON(ctx context.Context, method, endpoint string, params url.Values, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}
	return c.do(ctx, method, endpointWithParams(endpoint, params), reader, "application/json", out)
}

func (c *Client) do(ctx context.Context, method, endpoint string, body io.Reader, contentType string, out any) error {
	requestID := uuid.New().String()
	target := c.baseURL + "/" + strings.TrimPrefix(endpoint, "/")

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", requestID)
	if body != nil {
		req.Header.Set("Content-Type", contentType)
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.fail(&Error{
			Status:    0,
			Message:   normalizeMessage(0, ""),
			RequestID: requestID,
			Err:       err,
		}, target)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return c.fail(c.readError(resp, requestID), target)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return err
	}
	return nil
}

func (c *Client) readError(resp *http.Response, requestID string) *Error {
	var serverMessage string
	var body errorResponse
	if data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20)); err == nil {
		if json.Unmarshal(data, &body) == nil {
			serverMessage = body.Message
		}
	}
	return &Error{
		Status:        resp.StatusCode,
		Message:       normalizeMessage(resp.StatusCode, serverMessage),
		ServerMessage: serverMessage,
		RequestID:     requestID,
	}
}

// fail applies the side effects of a normalized failure: one log line, a
// forced logout on 401, and at most one user-facing notification - never
// for auth endpoints, which raise their own more specific message. The
// error always propagates to the caller.
func (c *Client) fail(apiErr *Error, target string) error {
	c.log.Error().
		Int("status", apiErr.Status).
		Str("request_id", apiErr.RequestID).
		Str("url", target).
		Msg(apiErr.Message)

	if apiErr.Status == http.StatusUnauthorized && c.onUnauthorized != nil {
		c.onUnauthorized()
	}

	if !isAuthEndpoint(target) {
		c.notifier.Error(apiErr.Message)
	}
	return apiErr
}

func isAuthEndpoint(target string) bool {
	return strings.Contains(target, "/auth/")
}

func endpointWithParams(endpoint string, params url.Values) string {
	if len(params) == 0 {
		return endpoint
	}
	return endpoint + "?" + params.Encode()
}
