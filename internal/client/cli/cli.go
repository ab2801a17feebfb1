package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/negatiview/negatiview/internal/client/api"
	"github.com/negatiview/negatiview/internal/client/iocli"
	"github.com/negatiview/negatiview/internal/client/storage"
)

// Cli связывает команды консольного клиента с API сервером
// и локальным хранилищем сессии
type Cli struct {
	io          iocli.IO
	apiClient   *api.Client
	authStorage storage.AuthStorage
}

func New(io iocli.IO, apiClient *api.Client, authStorage storage.AuthStorage) *Cli {
	return &Cli{
		io:          io,
		apiClient:   apiClient,
		authStorage: authStorage,
	}
}

// Run выполняет одну команду CLI
func (c *Cli) Run(ctx context.Context, command string, args []string) {
	var err error

	switch command {
	case "signup":
		err = c.runSignUp(ctx)
	case "login":
		err = c.runLogin(ctx)
	case "logout":
		err = c.runLogout(ctx)
	case "status":
		err = c.runStatus(ctx)
	case "me":
		err = c.runMe(ctx)
	case "update":
		err = c.runUpdate(ctx)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		PrintUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func PrintUsage() {
	fmt.Println("Negatiview Client")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  negatiview [OPTIONS] COMMAND")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version        Show version information")
	fmt.Println("  --server URL     Server URL (default: http://localhost:8000)")
	fmt.Println("  --db PATH        Path to local session database (default: negatiview-client.db)")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  signup           Register a new account")
	fmt.Println("  login            Login to server")
	fmt.Println("  logout           Logout and revoke the session")
	fmt.Println("  status           Show authentication status")
	fmt.Println("  me               Show current profile")
	fmt.Println("  update           Update current profile")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  negatiview signup")
	fmt.Println("  negatiview login")
	fmt.Println("  negatiview me")
	fmt.Println("  negatiview --server https://example.com login")
}

// requireSession загружает сохраненную сессию или объясняет, как ее получить
func (c *Cli) requireSession(ctx context.Context) (*storage.AuthData, error) {
	authData, err := c.authStorage.GetAuth(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrAuthNotFound) {
			return nil, fmt.Errorf("not authenticated. Please run 'negatiview login' first")
		}
		return nil, fmt.Errorf("failed to get auth data: %w", err)
	}
	return authData, nil
}
