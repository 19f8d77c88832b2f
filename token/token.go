// Package token decodes the payload portion of bearer access tokens.
//
// Decoding is deliberately unverified: signature verification happens on
// the server, and the client only inspects claims to drive advisory
// decisions (expiry display, proactive refresh). The server independently
// rejects stale or forged tokens.
package token

import (
	"encoding/json"
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/fittrack/go-fitness-client/internal/utils"
	"github.com/pkg/errors"
)

// DefaultRefreshThreshold is how close to expiry a token must be before
// NeedsRefresh reports true when no explicit threshold is given.
const DefaultRefreshThreshold = 5 * time.Minute

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// ErrMalformedToken is returned by Decode when the token does not carry a
// decodable payload segment.
var ErrMalformedToken = errors.New("malformed token")

// Payload holds the claims this client reads from an access token.
// Pointer fields distinguish an absent claim from a zero value.
type Payload struct {
	Sub   string `json:"sub"`           // User's unique ID
	Email string `json:"email"`         // User's email address
	Role  string `json:"role"`          // USER or ADMIN
	Iat   *int64 `json:"iat,omitempty"` // Issued at (seconds since epoch)
	Exp   *int64 `json:"exp,omitempty"` // Expiration (seconds since epoch)
}

// Decode extracts the payload from a raw bearer token without verifying
// its signature. It fails if the token does not have exactly three
// dot-separated segments or the middle segment is not base64url JSON.
func Decode(raw string) (*Payload, error) {
	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		return nil, errors.Wrap(ErrMalformedToken, "[Decode] token must have three segments")
	}

	segment, err := jwtlib.NewParser().DecodeSegment(parts[1])
	if err != nil {
		return nil, errors.Wrap(ErrMalformedToken, "[Decode] payload is not base64url")
	}

	var payload Payload
	if err := json.Unmarshal(segment, &payload); err != nil {
		return nil, errors.Wrap(ErrMalformedToken, "[Decode] payload is not JSON")
	}
	return &payload, nil
}

// IsExpired reports whether the token is expired. Tokens that cannot be
// decoded or carry no expiry claim are treated as expired.
func IsExpired(raw string) bool {
	payload, err := Decode(raw)
	if err != nil || payload.Exp == nil {
		return true
	}
	return !ExpirationOf(payload).After(NowTimeFunc())
}

// ExpirationTime returns the token's expiry. ok is false when the token
// cannot be decoded or has no expiry claim.
func ExpirationTime(raw string) (expiry time.Time, ok bool) {
	payload, err := Decode(raw)
	if err != nil || payload.Exp == nil {
		return time.Time{}, false
	}
	return ExpirationOf(payload), true
}

// ExpirationOf converts a decoded payload's exp claim to a time. The zero
// time is returned when the claim is absent.
func ExpirationOf(payload *Payload) time.Time {
	if payload == nil || payload.Exp == nil {
		return time.Time{}
	}
	return time.Unix(utils.Value(payload.Exp), 0)
}

// TimeUntilExpiry returns how long until the token expires, clamped at
// zero for expired or undecodable tokens.
func TimeUntilExpiry(raw string) time.Duration {
	expiry, ok := ExpirationTime(raw)
	if !ok {
		return 0
	}
	remaining := expiry.Sub(NowTimeFunc())
	if remaining < 0 {
		return 0
	}
	return remaining
}

// NeedsRefresh reports whether the token expires within threshold but has
// not expired yet. A threshold of zero or less means DefaultRefreshThreshold.
//
// An already-expired token does not "need refresh" - it needs a new login.
// The proactive refresh watcher therefore never recovers a session whose
// token expired while the process was idle; that case is caught reactively
// by the next 401.
func NeedsRefresh(raw string, threshold time.Duration) bool {
	if threshold <= 0 {
		threshold = DefaultRefreshThreshold
	}
	remaining := TimeUntilExpiry(raw)
	return remaining > 0 && remaining < threshold
}

// Role extracts the role claim. ok is false when the token cannot be
// decoded or the claim is empty.
func Role(raw string) (role string, ok bool) {
	payload, err := Decode(raw)
	if err != nil || payload.Role == "" {
		return "", false
	}
	return payload.Role, true
}

// UserID extracts the subject claim.
func UserID(raw string) (id string, ok bool) {
	payload, err := Decode(raw)
	if err != nil || payload.Sub == "" {
		return "", false
	}
	return payload.Sub, true
}

// Email extracts the email claim.
func Email(raw string) (email string, ok bool) {
	payload, err := Decode(raw)
	if err != nil || payload.Email == "" {
		return "", false
	}
	return payload.Email, true
}
