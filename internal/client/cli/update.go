package cli

import (
	"context"
	"fmt"

	"github.com/negatiview/negatiview/internal/validation"
	"github.com/negatiview/negatiview/pkg/api"
)

func (c *Cli) runUpdate(ctx context.Context) error {
	authData, err := c.requireSession(ctx)
	if err != nil {
		return err
	}

	// Текущий профиль служит значениями по умолчанию
	current, err := c.apiClient.Me(ctx, authData.AccessToken)
	if err != nil {
		return err
	}

	c.io.Println("=== Update Profile ===")
	c.io.Println("Press Enter to keep the current value.")
	c.io.Println()

	email, err := c.readWithDefault("Email", current.Email)
	if err != nil {
		return err
	}
	if err := validation.ValidateEmail(email); err != nil {
		return err
	}

	displayName, err := c.readWithDefault("Display name", current.DisplayName)
	if err != nil {
		return err
	}
	if err := validation.ValidateDisplayName(displayName); err != nil {
		return err
	}

	biography, err := c.readWithDefault("Biography", current.Biography)
	if err != nil {
		return err
	}

	profileImageURL, err := c.readWithDefault("Profile image URL", current.ProfileImageURL)
	if err != nil {
		return err
	}

	// Пустой пароль означает "не менять"
	password, err := c.io.ReadPassword("New password (optional): ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}
	if password != "" {
		if err := validation.ValidatePassword(password); err != nil {
			return err
		}
	}

	user, err := c.apiClient.UpdateMe(ctx, authData.AccessToken, api.UserUpdateRequest{
		Email:           email,
		DisplayName:     displayName,
		Biography:       biography,
		ProfileImageURL: profileImageURL,
		Password:        password,
	})
	if err != nil {
		return err
	}

	// Обновляем локальную копию профиля
	authData.Email = user.Email
	authData.DisplayName = user.DisplayName
	if err := c.authStorage.SaveAuth(ctx, authData); err != nil {
		return fmt.Errorf("failed to save auth data: %w", err)
	}

	c.io.Println()
	c.io.Println("✓ Profile updated.")

	return nil
}

func (c *Cli) readWithDefault(label, current string) (string, error) {
	prompt := fmt.Sprintf("%s [%s]: ", label, current)
	input, err := c.io.ReadInput(prompt)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", label, err)
	}
	if input == "" {
		return current, nil
	}
	return input, nil
}
