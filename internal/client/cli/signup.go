package cli

import (
	"context"
	"fmt"

	"github.com/negatiview/negatiview/internal/validation"
	"github.com/negatiview/negatiview/pkg/api"
)

func (c *Cli) runSignUp(ctx context.Context) error {
	c.io.Println("=== Sign Up ===")
	c.io.Println()

	email, err := c.io.ReadInput("Email: ")
	if err != nil {
		return fmt.Errorf("failed to read email: %w", err)
	}
	if err := validation.ValidateEmail(email); err != nil {
		return err
	}

	displayName, err := c.io.ReadInput("Display name: ")
	if err != nil {
		return fmt.Errorf("failed to read display name: %w", err)
	}
	if err := validation.ValidateDisplayName(displayName); err != nil {
		return err
	}

	password, err := c.io.ReadPassword("Password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}
	if err := validation.ValidatePassword(password); err != nil {
		return err
	}

	confirm, err := c.io.ReadPassword("Confirm password: ")
	if err != nil {
		return fmt.Errorf("failed to read password confirmation: %w", err)
	}
	if password != confirm {
		return fmt.Errorf("passwords do not match")
	}

	c.io.Println()
	c.io.Println("Registering...")

	session, err := c.apiClient.SignUp(ctx, api.SignUpRequest{
		Email:       email,
		Password:    password,
		DisplayName: displayName,
	})
	if err != nil {
		return err
	}

	if err := c.saveSession(ctx, session); err != nil {
		return err
	}

	c.io.Println()
	c.io.Println("✓ Account created!")
	c.io.Printf("Email: %s\n", session.User.Email)
	c.io.Printf("Display name: %s\n", session.User.DisplayName)
	c.io.Println()
	c.io.Println("Your session has been saved.")

	return nil
}
