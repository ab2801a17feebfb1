package storage

import "errors"

// Common storage errors
var (
	// ErrUserNotFound indicates that user was not found in storage
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists indicates that user with this email already exists
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrSessionNotFound indicates that session entry is absent from the cache
	// (revoked or expired); this is a valid outcome, not an infrastructure failure
	ErrSessionNotFound = errors.New("session not found")

	// ErrCacheUnavailable indicates that the session cache backend cannot be reached
	ErrCacheUnavailable = errors.New("session cache unavailable")
)
