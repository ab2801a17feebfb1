package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/negatiview/negatiview/internal/crypto"
	"github.com/negatiview/negatiview/internal/models"
	"github.com/negatiview/negatiview/internal/server/jwt"
	"github.com/negatiview/negatiview/internal/server/storage"
)

// Service реализует аутентификацию и выпуск сессий:
// проверку пары email/пароль, создание пользователя, выпуск пары
// access/refresh токенов и их регистрацию в кэше сессий
type Service struct {
	logger   *slog.Logger
	users    storage.UserStorage
	sessions storage.SessionCache
	access   *jwt.Codec
	refresh  *jwt.Codec
}

// NewService creates a new auth service
func NewService(logger *slog.Logger, users storage.UserStorage, sessions storage.SessionCache, access, refresh *jwt.Codec) *Service {
	return &Service{
		logger:   logger,
		users:    users,
		sessions: sessions,
		access:   access,
		refresh:  refresh,
	}
}

// Authenticate verifies an email/password pair against the stored hash.
// Returns ErrInvalidCredentials for unknown email, wrong password and
// unparsable hash alike; storage failures are returned as-is so the caller
// can report them as infrastructure errors instead of masking a database
// outage as a failed login.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			// Выравниваем время ответа: хешируем пароль даже когда
			// пользователя нет, чтобы не выдать его отсутствие по таймингу
			_ = crypto.VerifyPassword(password, dummyHash)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := crypto.VerifyPassword(password, user.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// SignUp creates a new user with a freshly hashed password and opens a session
func (s *Service) SignUp(ctx context.Context, email, password, displayName string) (*models.User, *models.SessionTokens, error) {
	hashedPassword, err := crypto.HashPassword(password)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:          uuid.New().String(),
		Email:       email,
		DisplayName: displayName,
		Password:    hashedPassword,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, nil, err
	}

	tokens, err := s.CreateSession(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}

	return user, tokens, nil
}

// Login authenticates the user and opens a new session
func (s *Service) Login(ctx context.Context, email, password string) (*models.User, *models.SessionTokens, error) {
	user, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, nil, err
	}

	tokens, err := s.CreateSession(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}

	return user, tokens, nil
}

// CreateSession mints one access and one refresh token and registers both
// in the session cache. Токены возвращаются только после того, как обе
// записи подтверждены в кэше: токен без записи был бы неотзываемым.
func (s *Service) CreateSession(ctx context.Context, userID string) (*models.SessionTokens, error) {
	accessToken, err := s.access.Issue(userID)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.refresh.Issue(userID)
	if err != nil {
		return nil, err
	}

	if err := s.sessions.Save(ctx, accessToken.TokenID, userID, s.access.TTL()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSessionPersistence, err)
	}

	if err := s.sessions.Save(ctx, refreshToken.TokenID, userID, s.refresh.TTL()); err != nil {
		// Откатываем уже записанную access запись, чтобы не оставить
		// половину сессии; неудача отката не страшна — TTL доделает
		if delErr := s.sessions.Delete(ctx, accessToken.TokenID); delErr != nil {
			s.logger.WarnContext(ctx, "failed to roll back access session entry",
				slog.String("token_id", accessToken.TokenID),
				slog.Any("error", delErr))
		}
		return nil, fmt.Errorf("%w: %w", ErrSessionPersistence, err)
	}

	return &models.SessionTokens{
		Access:  *accessToken,
		Refresh: *refreshToken,
	}, nil
}

// Revoke deletes session cache entries for the given token IDs.
// Idempotent: revoking an already-absent entry is a no-op.
func (s *Service) Revoke(ctx context.Context, tokenIDs ...string) error {
	for _, id := range tokenIDs {
		if id == "" {
			continue
		}
		if err := s.sessions.Delete(ctx, id); err != nil {
			return fmt.Errorf("failed to revoke session %s: %w", id, err)
		}
	}
	return nil
}

// AccessCodec returns the access-token codec (used by the auth middleware)
func (s *Service) AccessCodec() *jwt.Codec {
	return s.access
}

// RefreshCodec returns the refresh-token codec
func (s *Service) RefreshCodec() *jwt.Codec {
	return s.refresh
}

// dummyHash — валидная PHC строка для выравнивания времени ответа
// при логине с несуществующим email (пароль заведомо не совпадет)
const dummyHash = "$argon2id$v=19$m=65536,t=1,p=4$AAAAAAAAAAAAAAAAAAAAAA$t5de0GZJGNsAIx7ab0hLjtRUqMQUSFSC1hBgnpPnUBk"
