package session

import (
	"errors"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

const (
	textCodeTokenExpired   = "TOKEN_EXPIRED"
	textCodeTokenMalformed = "TOKEN_MALFORMED"
	textCodeLoginFailed    = "LOGIN_FAILED"
	textCodeLoginInFlight  = "LOGIN_IN_FLIGHT"
)

// loginFallbackMessage is shown when the backend gives us nothing usable.
const loginFallbackMessage = "Login failed. Please check your credentials and try again."

// ErrTokenExpired is returned when a decoded token's expiry has passed.
// Initialize recovers from it locally by purging the store.
var ErrTokenExpired = goerrors.New("token is expired", goerrors.CategoryAuth).
	WithTextCode(textCodeTokenExpired).
	WithCode(goerrors.CodeUnauthorized)

// ErrTokenMalformed is returned when a token cannot be decoded at all.
var ErrTokenMalformed = goerrors.New("token is malformed", goerrors.CategoryAuth).
	WithTextCode(textCodeTokenMalformed).
	WithCode(goerrors.CodeUnauthorized)

// ErrLoginFailed is the base error for a rejected or unreachable credential
// exchange. The Message carries whatever the backend told us; it is the one
// error class surfaced to the operator verbatim.
var ErrLoginFailed = goerrors.New(loginFallbackMessage, goerrors.CategoryAuth).
	WithTextCode(textCodeLoginFailed).
	WithCode(goerrors.CodeUnauthorized)

// ErrLoginInFlight rejects a login attempted while another one is running,
// so overlapping calls cannot interleave writes to session state. Callers
// should disable the trigger while the session reports loading.
var ErrLoginInFlight = goerrors.New("a login is already in progress", goerrors.CategoryConflict).
	WithTextCode(textCodeLoginInFlight).
	WithCode(goerrors.CodeConflict)

// ErrNoStoredSession is the error for an empty token cache.
var ErrNoStoredSession = errors.New("no stored session")

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) && richErr.TextCode == textCodeTokenExpired {
		return true
	}
	return strings.Contains(err.Error(), "token is expired")
}

// IsMalformedError will check for error message
func IsMalformedError(err error) bool {
	if err == nil {
		return false
	}
	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) && richErr.TextCode == textCodeTokenMalformed {
		return true
	}
	return strings.Contains(err.Error(), "token is malformed") ||
		strings.Contains(err.Error(), "missing or malformed JWT")
}

// IsLoginFailedError reports whether err came out of the credential exchange.
func IsLoginFailedError(err error) bool {
	if err == nil {
		return false
	}
	var richErr *goerrors.Error
	return goerrors.As(err, &richErr) && richErr.TextCode == textCodeLoginFailed
}

// loginFailed builds the operator-facing login error, preferring the message
// extracted from the backend response over the generic fallback.
func loginFailed(message string, cause error) error {
	clone := ErrLoginFailed.Clone()
	if message != "" {
		clone.Message = message
	}
	if cause != nil {
		clone.Source = cause
		return clone.WithMetadata(map[string]any{
			"cause": cause.Error(),
		})
	}
	return clone
}
