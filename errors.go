package medclient

import (
	"errors"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

// ErrUnauthorized is the sentinel returned when a response is classified as
// unauthorized. By the time a caller sees it the credential has already been
// removed and the registered on-unauthorized handler has run, so callers must
// not retry or render a normal error form.
var ErrUnauthorized = errors.New("UNAUTHORIZED")

// ErrMalformedCredential is returned when the stored credential cannot be
// decoded into claims.
var ErrMalformedCredential = errors.New("malformed credential")

// ErrNoRoleClaim is returned when a decoded credential carries no usable role
// and a degraded session cannot be synthesized from it.
var ErrNoRoleClaim = errors.New("credential has no role claim")

// ErrNoData is returned when an envelope is decoded but carries no data field.
var ErrNoData = errors.New("response envelope has no data")

// ErrSessionExpired is the rich error surfaced to users when a background
// unauthorized response forces a logout.
var ErrSessionExpired = goerrors.New("your session has expired, please sign in again", goerrors.CategoryAuth).
	WithTextCode("UNAUTHORIZED").
	WithCode(goerrors.CodeUnauthorized)

// unauthorizedMarkers mirrors the backend's free-text failure messages. The
// substring match is deliberately loose ("token", "expired") to stay
// compatible with every endpoint; a business error that merely mentions a
// token will also force a logout.
// TODO: tighten once the backend ships stable error codes alongside messages.
var unauthorizedMarkers = []string{
	"not authorized, no token",
	"unauthorized",
	"token",
	"expired",
}

// IsUnauthorizedMessage reports whether a failure message should be treated
// as an unauthorized classification.
func IsUnauthorizedMessage(message string) bool {
	lower := strings.ToLower(message)
	for _, marker := range unauthorizedMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// IsUnauthorizedError reports whether err carries the unauthorized sentinel.
func IsUnauthorizedError(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// isAuthRejection widens the sentinel check for the restore path, where the
// backend may reject a stale credential with a plain failure message instead
// of a 401.
func isAuthRejection(err error) bool {
	if err == nil {
		return false
	}
	if IsUnauthorizedError(err) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "not authorized") || strings.Contains(msg, "invalid")
}

// userMessage extracts a message suitable for display, preferring rich error
// messages over raw error text.
func userMessage(err error, fallback string) string {
	if err == nil {
		return fallback
	}

	var richErr *goerrors.Error
	if errors.As(err, &richErr) && richErr.Message != "" {
		return richErr.Message
	}

	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return msg
	}
	return fallback
}
