// Package common defines shared constants and sentinel errors used across
// client and server layers of Pixelboard. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Remote query errors.
	ErrAmbiguousMatch = errors.New("more than one row matched")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Session-facing errors. Messages are shown to the user verbatim.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrUnauthenticated    = errors.New("not signed in")
	ErrNotImplemented     = errors.New("not implemented yet")
	ErrOperationFailed    = errors.New("operation failed")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
)
