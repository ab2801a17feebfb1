package cli

import (
	"context"
	"fmt"

	"github.com/negatiview/negatiview/internal/client/api"
	"github.com/negatiview/negatiview/internal/client/storage"
	pkgapi "github.com/negatiview/negatiview/pkg/api"
)

func (c *Cli) runLogin(ctx context.Context) error {
	c.io.Println("=== Login ===")
	c.io.Println()

	email, err := c.io.ReadInput("Email: ")
	if err != nil {
		return fmt.Errorf("failed to read email: %w", err)
	}

	password, err := c.io.ReadPassword("Password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	c.io.Println()
	c.io.Println("Authenticating...")

	session, err := c.apiClient.Login(ctx, pkgapi.LoginRequest{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return err
	}

	if err := c.saveSession(ctx, session); err != nil {
		return err
	}

	c.io.Println()
	c.io.Println("✓ Login successful!")
	c.io.Printf("Email: %s\n", session.User.Email)
	c.io.Println()
	c.io.Println("Your session has been saved.")

	return nil
}

// saveSession сохраняет токены сессии в локальном хранилище
func (c *Cli) saveSession(ctx context.Context, session *api.Session) error {
	authData := &storage.AuthData{
		Email:        session.User.Email,
		DisplayName:  session.User.DisplayName,
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
		ExpiresAt:    session.ExpiresAt,
	}

	if err := c.authStorage.SaveAuth(ctx, authData); err != nil {
		return fmt.Errorf("failed to save auth data: %w", err)
	}
	return nil
}
