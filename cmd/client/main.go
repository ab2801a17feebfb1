package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/negatiview/negatiview/internal/client/api"
	"github.com/negatiview/negatiview/internal/client/cli"
	"github.com/negatiview/negatiview/internal/client/iocli"
	"github.com/negatiview/negatiview/internal/client/storage/boltdb"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Глобальные флаги
	showVersion := flag.Bool("version", false, "Show version information")
	serverURL := flag.String("server", "http://localhost:8000", "Server URL")
	dbPath := flag.String("db", "negatiview-client.db", "Path to local session database")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	// Получаем команду
	args := flag.Args()
	if len(args) == 0 {
		cli.PrintUsage()
		os.Exit(1)
	}

	command := args[0]

	ctx := context.Background()

	// Открываем BoltDB хранилище сессии
	authStorage, err := boltdb.New(ctx, *dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := authStorage.Close(); err != nil {
			slog.Error("failed to close database", "error", err)
		}
	}()

	apiClient := api.NewClient(*serverURL)

	// Выполняем команду
	c := cli.New(iocli.NewStdio(), apiClient, authStorage)
	c.Run(ctx, command, args[1:])
}

func printVersion() {
	fmt.Printf("Negatiview Client\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
