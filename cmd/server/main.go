package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/negatiview/negatiview/internal/config"
	"github.com/negatiview/negatiview/internal/server"
	"github.com/negatiview/negatiview/internal/server/auth"
	"github.com/negatiview/negatiview/internal/server/jwt"
	"github.com/negatiview/negatiview/internal/server/middleware"
	"github.com/negatiview/negatiview/internal/server/storage/postgres"
	"github.com/negatiview/negatiview/internal/server/storage/redis"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	configPath := flag.String("config", "", "Path to optional yaml config file")
	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := newLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Credential store
	userStorage, err := postgres.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to init postgres storage: %w", err)
	}
	defer func() {
		if err := userStorage.Close(); err != nil {
			logger.Error("failed to close postgres storage", slog.Any("error", err))
		}
	}()

	// Session cache
	sessionCache, err := redis.New(ctx, cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("failed to init session cache: %w", err)
	}
	defer func() {
		if err := sessionCache.Close(); err != nil {
			logger.Error("failed to close session cache", slog.Any("error", err))
		}
	}()

	accessCodec, refreshCodec, err := buildCodecs(cfg)
	if err != nil {
		return fmt.Errorf("failed to build token codecs: %w", err)
	}

	authService := auth.NewService(logger, userStorage, sessionCache, accessCodec, refreshCodec)

	limiter := middleware.NewRateLimiter(cfg.RateLimit.Rate, cfg.RateLimit.Window, logger)
	defer limiter.Stop()

	router := server.NewRouter(server.Options{
		Logger:   logger,
		Auth:     authService,
		Users:    userStorage,
		Sessions: sessionCache,
		Limiter:  limiter,
		Metrics:  middleware.NewMetrics(),
		Version:  Version,
	})

	srv := &http.Server{
		Addr:         cfg.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errC := make(chan error, 1)
	go func() {
		logger.Info("server listening",
			slog.String("address", cfg.Address),
			slog.String("version", Version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errC <- err
		}
	}()

	select {
	case err := <-errC:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}

	return nil
}

// buildCodecs выбирает алгоритм подписи по конфигурации:
// RS256 при заданных PEM парах, иначе HS256 с общим секретом
func buildCodecs(cfg *config.Config) (*jwt.Codec, *jwt.Codec, error) {
	if cfg.JWT.UseRSA() {
		access, err := jwt.NewRS256(cfg.JWT.AccessTokenPrivateKey, cfg.JWT.AccessTokenPublicKey, cfg.JWT.AccessTTL())
		if err != nil {
			return nil, nil, fmt.Errorf("access codec: %w", err)
		}
		refresh, err := jwt.NewRS256(cfg.JWT.RefreshTokenPrivateKey, cfg.JWT.RefreshTokenPublicKey, cfg.JWT.RefreshTTL())
		if err != nil {
			return nil, nil, fmt.Errorf("refresh codec: %w", err)
		}
		return access, refresh, nil
	}

	return jwt.NewHS256(cfg.JWT.Secret, cfg.JWT.AccessTTL()),
		jwt.NewHS256(cfg.JWT.Secret, cfg.JWT.RefreshTTL()),
		nil
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.LogJSON {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}

func printVersion() {
	fmt.Printf("Negatiview Server\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
