package auth

import "errors"

// Service errors
var (
	// ErrInvalidCredentials is returned for unknown email, wrong password and
	// unparsable stored hash alike, so login failures never reveal whether an
	// account exists
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrSessionPersistence indicates that a minted token's cache entry could
	// not be stored; the token must not be handed to the client in that case
	ErrSessionPersistence = errors.New("failed to persist session")
)
