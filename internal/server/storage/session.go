package storage

import (
	"context"
	"time"
)

// SessionCache defines interface for server-side token validity tracking.
// Key is the token's unique identifier (jti), value is the owning user ID.
// An absent key means the token is revoked or expired regardless of its
// own cryptographic validity.
type SessionCache interface {
	// Save stores tokenID -> userID with the given TTL
	// Overwrites an existing entry; returns ErrCacheUnavailable on backend failure
	Save(ctx context.Context, tokenID, userID string, ttl time.Duration) error

	// Get retrieves the user ID owning tokenID
	// Returns ErrSessionNotFound if the entry is absent (revoked/expired),
	// ErrCacheUnavailable on backend failure
	Get(ctx context.Context, tokenID string) (string, error)

	// Delete proactively revokes tokenID before its TTL lapses
	// Deleting an absent key is a no-op
	Delete(ctx context.Context, tokenID string) error
}
