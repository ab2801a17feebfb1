package cli

import (
	"context"
)

func (c *Cli) runMe(ctx context.Context) error {
	authData, err := c.requireSession(ctx)
	if err != nil {
		return err
	}

	// Профиль читаем с сервера, а не из локального хранилища:
	// он мог измениться из браузера
	user, err := c.apiClient.Me(ctx, authData.AccessToken)
	if err != nil {
		return err
	}

	c.io.Println("=== Profile ===")
	c.io.Println()
	c.io.Printf("Email: %s\n", user.Email)
	c.io.Printf("Display name: %s\n", user.DisplayName)
	if user.Biography != "" {
		c.io.Printf("Biography: %s\n", user.Biography)
	}
	if user.ProfileImageURL != "" {
		c.io.Printf("Profile image: %s\n", user.ProfileImageURL)
	}

	return nil
}
