package common

import "errors"

// Sentinel errors for lookups and token handling. Match
// them with errors.Is.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken        = errors.New("invalid token")
	ErrTokenExpired        = errors.New("token expired")
	ErrTokenRevoked        = errors.New("token revoked")
	ErrInvalidCredentials  = errors.New("invalid username or password")
	ErrRefreshWindowClosed = errors.New("token too old to refresh")
)
