package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/negatiview/negatiview/internal/client/storage"
)

func (c *Cli) runLogout(ctx context.Context) error {
	authData, err := c.authStorage.GetAuth(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrAuthNotFound) {
			c.io.Println("Not authenticated, nothing to do.")
			return nil
		}
		return fmt.Errorf("failed to get auth data: %w", err)
	}

	// Отзываем сессию на сервере; сбой сети не мешает локальному logout
	if err := c.apiClient.Logout(ctx, authData.AccessToken, authData.RefreshToken); err != nil {
		c.io.Printf("Warning: failed to revoke server session: %v\n", err)
	}

	if err := c.authStorage.DeleteAuth(ctx); err != nil && !errors.Is(err, storage.ErrAuthNotFound) {
		return fmt.Errorf("failed to delete auth data: %w", err)
	}

	c.io.Println("✓ Logged out.")
	return nil
}
