package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/negatiview/negatiview/internal/server/handlers"
	"github.com/negatiview/negatiview/internal/server/jwt"
	"github.com/negatiview/negatiview/internal/server/storage"
)

// ErrTokenNotFound indicates that the request carried no bearer token at all
var ErrTokenNotFound = errors.New("token not found")

// Authenticator — middleware аутентификации запросов.
// Машина состояний на каждый запрос: извлечь токен, проверить подпись,
// подтвердить запись сессии в кэше, загрузить пользователя, положить
// identity в контекст. Любой сбой обрывает цепочку с типизированной ошибкой.
type Authenticator struct {
	logger   *slog.Logger
	codec    *jwt.Codec
	sessions storage.SessionCache
	users    storage.UserStorage
}

// NewAuthenticator creates the request-authentication middleware
// codec must be the access-token codec
func NewAuthenticator(logger *slog.Logger, codec *jwt.Codec, sessions storage.SessionCache, users storage.UserStorage) *Authenticator {
	return &Authenticator{
		logger:   logger,
		codec:    codec,
		sessions: sessions,
		users:    users,
	}
}

// Require защищает маршруты с обязательной аутентификацией
// Отсутствующий или невалидный токен ⇒ 401
func (a *Authenticator) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, err := a.authenticate(r)
		if err != nil {
			a.reject(w, r, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(handlers.WithIdentity(r.Context(), identity)))
	})
}

// Optional аутентифицирует запрос когда токен предъявлен, но пропускает
// запрос дальше с пустым identity контекстом, если токена нет, он
// невалиден или его сессия отозвана. Инфраструктурные сбои (кэш, БД)
// не маскируются под "не аутентифицирован" и по-прежнему обрывают запрос.
func (a *Authenticator) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, err := a.authenticate(r)
		if err != nil {
			// Отсутствие/невалидность токена — не препятствие
			if anonymousAllowed(err) {
				next.ServeHTTP(w, r)
				return
			}
			a.reject(w, r, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(handlers.WithIdentity(r.Context(), identity)))
	})
}

// anonymousAllowed сообщает, можно ли продолжить запрос без identity.
// Разрешены только исходы "токена нет / он не действует"; все прочие
// ошибки инфраструктурные и обрывают запрос.
func anonymousAllowed(err error) bool {
	return errors.Is(err, ErrTokenNotFound) ||
		errors.Is(err, jwt.ErrInvalidToken) ||
		errors.Is(err, storage.ErrSessionNotFound) ||
		errors.Is(err, storage.ErrUserNotFound)
}

// authenticate выполняет все шаги проверки одного запроса
func (a *Authenticator) authenticate(r *http.Request) (*handlers.Identity, error) {
	ctx := r.Context()

	// 1. Извлекаем токен: cookie имеет приоритет над заголовком
	token := extractToken(r)
	if token == "" {
		return nil, ErrTokenNotFound
	}

	// 2. Проверяем подпись и сроки
	claims, err := a.codec.Verify(token)
	if err != nil {
		return nil, err
	}

	// 3. Подтверждаем, что сессия не отозвана сервером
	cachedUserID, err := a.sessions.Get(ctx, claims.ID)
	if err != nil {
		return nil, err
	}

	// Криптографически валидный токен с чужой записью в кэше —
	// признак вытесненного токена, отклоняем
	if cachedUserID != claims.Subject {
		return nil, jwt.ErrInvalidToken
	}

	// 4. Загружаем пользователя
	user, err := a.users.GetUserByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	return &handlers.Identity{
		User:          user,
		AccessToken:   token,
		AccessTokenID: claims.ID,
	}, nil
}

// reject обрывает запрос с единым JSON телом ошибки
func (a *Authenticator) reject(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, ErrTokenNotFound) {
		a.logger.WarnContext(r.Context(), "missing access token",
			slog.String("path", r.URL.Path))
		handlers.SendError(w, "Access token not found. Please login", http.StatusUnauthorized)
		return
	}

	statusCode, message := handlers.MapError(err)
	if statusCode >= http.StatusInternalServerError {
		a.logger.ErrorContext(r.Context(), "authentication infrastructure failure",
			slog.String("path", r.URL.Path),
			slog.Any("error", err))
	} else {
		a.logger.WarnContext(r.Context(), "authentication rejected",
			slog.String("path", r.URL.Path),
			slog.Any("error", err))
	}
	handlers.SendError(w, message, statusCode)
}

// extractToken ищет access токен: сначала cookie, затем
// заголовок Authorization: Bearer <token>
func extractToken(r *http.Request) string {
	if cookie, err := r.Cookie(handlers.AccessTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}
