package api

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrConnection is returned when the server cannot be reached at all.
	ErrConnection = errors.New("unable to connect")

	// ErrBadRequest is returned for HTTP 400 responses.
	ErrBadRequest = errors.New("bad request")

	// ErrUnauthorized is returned for HTTP 401 responses.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden is returned for HTTP 403 responses.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound is returned for HTTP 404 responses.
	ErrNotFound = errors.New("not found")

	// ErrServer is returned for HTTP 5xx responses.
	ErrServer = errors.New("server error")
)

// Error is the normalized form of any failed request. It always reaches
// the caller; the client never swallows a failure.
type Error struct {
	// Status is the HTTP status code, or 0 for transport-level failures.
	Status int
	// Message is the normalized user-facing message.
	Message string
	// ServerMessage is the message supplied by the server, when present.
	ServerMessage string
	// RequestID correlates the failure with client logs.
	RequestID string
	// Err is the underlying transport error, when any.
	Err error
}

// Error returns the normalized message.
func (e *Error) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("api: %s", e.Message)
	}
	return fmt.Sprintf("api [%d]: %s", e.Status, e.Message)
}

// Unwrap returns the underlying transport error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is maps the error onto the package sentinels by status class.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrConnection:
		return e.Status == 0
	case ErrBadRequest:
		return e.Status == 400
	case ErrUnauthorized:
		return e.Status == 401
	case ErrForbidden:
		return e.Status == 403
	case ErrNotFound:
		return e.Status == 404
	case ErrServer:
		return e.Status >= 500
	}
	return false
}

// errorResponse is the backend's error body shape.
type errorResponse struct {
	Message string              `json:"message"`
	Status  int                 `json:"status"`
	Path    string              `json:"path,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// normalizeMessage maps a failure to its fixed user-facing message.
func normalizeMessage(status int, serverMessage string) string {
	switch status {
	case 0:
		return "Unable to connect to server"
	case 400:
		if serverMessage != "" {
			return serverMessage
		}
		return "Bad request"
	case 401:
		return "Unauthorized access"
	case 403:
		return "Access forbidden"
	case 404:
		return "Resource not found"
	case 500:
		return "Internal server error"
	default:
		if serverMessage != "" {
			return serverMessage
		}
		return fmt.Sprintf("Error: %d", status)
	}
}
