package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/negatiview/negatiview/internal/server/storage"
)

// opTimeout ограничивает каждый вызов к Redis, чтобы медленный кэш
// не задерживал обработку запроса
const opTimeout = 2 * time.Second

// SessionCache represents Redis-backed session cache implementation
type SessionCache struct {
	client *redis.Client
}

// New creates a new Redis session cache
// redisURL is a connection URL, e.g. redis://localhost:6379/0
func New(ctx context.Context, redisURL string) (*SessionCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	// Проверяем соединение
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return &SessionCache{client: client}, nil
}

// Close closes the Redis connection
func (c *SessionCache) Close() error {
	return c.client.Close()
}

// Save stores tokenID -> userID with the given TTL
func (c *SessionCache) Save(ctx context.Context, tokenID, userID string, ttl time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if err := c.client.Set(ctx, tokenID, userID, ttl).Err(); err != nil {
		return fmt.Errorf("%w: %w", storage.ErrCacheUnavailable, err)
	}

	return nil
}

// Get retrieves the user ID owning tokenID
func (c *SessionCache) Get(ctx context.Context, tokenID string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	value, err := c.client.Get(ctx, tokenID).Result()
	if err != nil {
		// Отсутствие ключа — валидный исход: сессия отозвана или истекла
		if errors.Is(err, redis.Nil) {
			return "", storage.ErrSessionNotFound
		}
		return "", fmt.Errorf("%w: %w", storage.ErrCacheUnavailable, err)
	}

	return value, nil
}

// Delete proactively revokes tokenID
func (c *SessionCache) Delete(ctx context.Context, tokenID string) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	// DEL отсутствующего ключа не является ошибкой
	if err := c.client.Del(ctx, tokenID).Err(); err != nil {
		return fmt.Errorf("%w: %w", storage.ErrCacheUnavailable, err)
	}

	return nil
}
