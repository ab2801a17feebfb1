package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config содержит конфигурацию сервера
// Все значения читаются из окружения; yaml файл опционален
type Config struct {
	Address     string // адрес HTTP сервера, например :8080
	LogLevel    string // debug | info | warn | error
	LogJSON     bool   // JSON формат логов вместо текстового
	DatabaseURL string // PostgreSQL connection string
	RedisURL    string // Redis connection URL
	JWT         JWT
	RateLimit   RateLimit
}

// JWT содержит ключевой материал и окна жизни токенов
// Симметричный Secret и асимметричные PEM пары взаимоисключаемы:
// при заданных ключах используется RS256, иначе HS256
type JWT struct {
	Secret                 string // общий секрет для HS256
	AccessTokenPrivateKey  string // base64-encoded PEM, RS256
	AccessTokenPublicKey   string
	RefreshTokenPrivateKey string
	RefreshTokenPublicKey  string
	AccessTokenMaxAge      int // минуты
	RefreshTokenMaxAge     int // минуты
}

// RateLimit настраивает ограничение частоты credential endpoints
type RateLimit struct {
	Rate   int
	Window time.Duration
}

// AccessTTL returns the access token validity window
func (j JWT) AccessTTL() time.Duration {
	return time.Duration(j.AccessTokenMaxAge) * time.Minute
}

// RefreshTTL returns the refresh token validity window
func (j JWT) RefreshTTL() time.Duration {
	return time.Duration(j.RefreshTokenMaxAge) * time.Minute
}

// UseRSA reports whether asymmetric key material is configured
func (j JWT) UseRSA() bool {
	return j.AccessTokenPrivateKey != "" || j.AccessTokenPublicKey != ""
}

// Load читает конфигурацию: значения по умолчанию, затем опциональный
// yaml файл, затем переменные окружения (окружение побеждает)
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
		_ = v.ReadInConfig()
	}

	v.SetDefault("address", ":8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_json", false)

	v.SetDefault("database_url", "")
	v.SetDefault("redis_url", "")

	v.SetDefault("jwt_secret", "")
	v.SetDefault("access_token_private_key", "")
	v.SetDefault("access_token_public_key", "")
	v.SetDefault("refresh_token_private_key", "")
	v.SetDefault("refresh_token_public_key", "")
	v.SetDefault("access_token_max_age", 15)
	v.SetDefault("refresh_token_max_age", 60)

	v.SetDefault("rate_limit", 10)
	v.SetDefault("rate_limit_window", "1m")

	v.AutomaticEnv()

	cfg := &Config{
		Address:     v.GetString("address"),
		LogLevel:    v.GetString("log_level"),
		LogJSON:     v.GetBool("log_json"),
		DatabaseURL: v.GetString("database_url"),
		RedisURL:    v.GetString("redis_url"),
		JWT: JWT{
			Secret:                 v.GetString("jwt_secret"),
			AccessTokenPrivateKey:  v.GetString("access_token_private_key"),
			AccessTokenPublicKey:   v.GetString("access_token_public_key"),
			RefreshTokenPrivateKey: v.GetString("refresh_token_private_key"),
			RefreshTokenPublicKey:  v.GetString("refresh_token_public_key"),
			AccessTokenMaxAge:      v.GetInt("access_token_max_age"),
			RefreshTokenMaxAge:     v.GetInt("refresh_token_max_age"),
		},
		RateLimit: RateLimit{
			Rate:   v.GetInt("rate_limit"),
			Window: v.GetDuration("rate_limit_window"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate проверяет обязательные поля до старта сервера
func (c *Config) validate() error {
	if c.DatabaseURL == "" {
		return errors.New("DATABASE_URL must be set")
	}
	if c.RedisURL == "" {
		return errors.New("REDIS_URL must be set")
	}

	if c.JWT.UseRSA() {
		for name, value := range map[string]string{
			"ACCESS_TOKEN_PRIVATE_KEY":  c.JWT.AccessTokenPrivateKey,
			"ACCESS_TOKEN_PUBLIC_KEY":   c.JWT.AccessTokenPublicKey,
			"REFRESH_TOKEN_PRIVATE_KEY": c.JWT.RefreshTokenPrivateKey,
			"REFRESH_TOKEN_PUBLIC_KEY":  c.JWT.RefreshTokenPublicKey,
		} {
			if value == "" {
				return fmt.Errorf("%s must be set when asymmetric keys are used", name)
			}
		}
	} else if c.JWT.Secret == "" {
		return errors.New("either JWT_SECRET or the token keypairs must be set")
	}

	if c.JWT.AccessTokenMaxAge <= 0 || c.JWT.RefreshTokenMaxAge <= 0 {
		return errors.New("token max age must be positive")
	}

	return nil
}
