package handlers

import (
	"context"

	"github.com/negatiview/negatiview/internal/models"
)

type contextKey string

// identityKey — ключ, под которым middleware кладет Identity в контекст запроса
const identityKey contextKey = "identity"

// Identity — данные аутентифицированного запроса: пользователь и jti
// access токена, которым он представился. Живет один вызов обработчика,
// нигде не сохраняется.
type Identity struct {
	User          *models.User
	AccessToken   string
	AccessTokenID string
}

// WithIdentity returns a context carrying the request identity
func WithIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// GetIdentity extracts the request identity from the context
// ok is false on routes that ran without authentication
func GetIdentity(ctx context.Context) (*Identity, bool) {
	identity, ok := ctx.Value(identityKey).(*Identity)
	return identity, ok && identity != nil
}
