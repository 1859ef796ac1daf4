package auth

import (
	"strings"

	"github.com/goliatone/go-errors"
)

// ErrIdentityNotFound is the error we return for non found identities
var ErrIdentityNotFound = errors.New("identity not found", errors.CategoryAuth).
	WithTextCode("IDENTITY_NOT_FOUND")

// ErrInvalidCredentials is the single external signal for every rejected
// Login or RefreshToken attempt. Unknown user, bad password, token/identity
// mismatch, and bad refresh token all collapse to this value so callers can
// not learn which factor failed.
var ErrInvalidCredentials = errors.New("invalid credentials", errors.CategoryAuth).
	WithTextCode("INVALID_CREDENTIALS")

// ErrMismatchedHashAndPassword is returned when a password does not match
// its stored hash
var ErrMismatchedHashAndPassword = errors.New("mismatched hash and password", errors.CategoryAuth).
	WithTextCode("PASSWORD_MISMATCH")

// ErrMissingSigningKey signals an absent or empty signing key. Fatal
// configuration error, never retried.
var ErrMissingSigningKey = errors.New("signing key is not configured", errors.CategoryInternal).
	WithTextCode("MISSING_SIGNING_KEY")

// ErrTokenExpired is returned when validating an expired access token
var ErrTokenExpired = errors.New("token is expired", errors.CategoryAuth).
	WithTextCode("TOKEN_EXPIRED")

// ErrTokenMalformed is returned when a token string cannot be parsed
var ErrTokenMalformed = errors.New("token is malformed", errors.CategoryAuth).
	WithTextCode("TOKEN_MALFORMED")

// ErrNoEmptyString rejects empty required values
var ErrNoEmptyString = errors.New("value must not be empty", errors.CategoryBadInput).
	WithTextCode("EMPTY_VALUE")

// IsAuthenticationError reports whether err carries the auth category, i.e.
// whether the caller should surface a uniform unauthenticated signal.
func IsAuthenticationError(err error) bool {
	if err == nil {
		return false
	}
	var richErr *errors.Error
	if errors.As(err, &richErr) {
		return richErr.Category == errors.CategoryAuth
	}
	return false
}

// IsIdentityNotFound reports whether err marks an absent identity, from this
// package or from a repository layer not-found error.
func IsIdentityNotFound(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrIdentityNotFound) {
		return true
	}
	if errors.IsNotFound(err) {
		return true
	}
	var richErr *errors.Error
	if errors.As(err, &richErr) {
		return richErr.TextCode == ErrIdentityNotFound.TextCode
	}
	return false
}

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrTokenExpired) {
		return true
	}
	return strings.Contains(err.Error(), "token is expired")
}

// IsMalformedError will check for error message
func IsMalformedError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrTokenMalformed) {
		return true
	}
	return strings.Contains(err.Error(), "token is malformed") ||
		strings.Contains(err.Error(), "missing or malformed JWT")
}
