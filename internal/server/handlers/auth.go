package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/negatiview/negatiview/internal/models"
	"github.com/negatiview/negatiview/internal/server/auth"
	"github.com/negatiview/negatiview/internal/validation"
	"github.com/negatiview/negatiview/pkg/api"
)

// AuthHandler обрабатывает запросы регистрации, входа и выхода
type AuthHandler struct {
	logger  *slog.Logger
	service *auth.Service
}

// NewAuthHandler creates a new handler for authentication endpoints
func NewAuthHandler(logger *slog.Logger, service *auth.Service) *AuthHandler {
	return &AuthHandler{
		logger:  logger,
		service: service,
	}
}

// SignUp обрабатывает POST /api/users
// Регистрация нового пользователя с немедленным открытием сессии
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.Wrapper[api.SignUpRequest]
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode signup request", slog.Any("error", err))
		SendError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	// Валидация входных данных
	if err := validation.ValidateEmail(req.Data.Email); err != nil {
		SendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := validation.ValidateDisplayName(req.Data.DisplayName); err != nil {
		SendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := validation.ValidatePassword(req.Data.Password); err != nil {
		SendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	user, tokens, err := h.service.SignUp(ctx, req.Data.Email, req.Data.Password, req.Data.DisplayName)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	h.logger.InfoContext(ctx, "user registered",
		slog.String("user_id", user.ID))

	setSessionCookies(w, tokens, h.service.AccessCodec().TTL(), h.service.RefreshCodec().TTL())
	SendJSON(w, api.AuthResponse{
		Status:  "success",
		Message: "User created",
		Data:    toUserResponse(user, tokens.Access.Token),
	}, http.StatusOK)
}

// Login обрабатывает POST /api/login
// Аутентификация пользователя по паре email/пароль
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.Wrapper[api.LoginRequest]
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode login request", slog.Any("error", err))
		SendError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.Data.Email == "" || req.Data.Password == "" {
		SendError(w, "email and password are required", http.StatusBadRequest)
		return
	}

	user, tokens, err := h.service.Login(ctx, req.Data.Email, req.Data.Password)
	if err != nil {
		// Неизвестный email и неверный пароль дают одинаковый ответ
		WriteError(w, h.logger, err)
		return
	}

	h.logger.InfoContext(ctx, "user logged in",
		slog.String("user_id", user.ID))

	setSessionCookies(w, tokens, h.service.AccessCodec().TTL(), h.service.RefreshCodec().TTL())
	SendJSON(w, api.AuthResponse{
		Status:  "success",
		Message: "Login successful",
		Data:    toUserResponse(user, tokens.Access.Token),
	}, http.StatusOK)
}

// Logout обрабатывает POST /api/logout
// Отзывает записи сессии в кэше и очищает cookies.
// Маршрут с опциональной аутентификацией: повторный logout без живой
// сессии — no-op, а не ошибка.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var tokenIDs []string

	// jti access токена приходит из identity контекста, если middleware
	// смог аутентифицировать запрос
	if identity, ok := GetIdentity(ctx); ok {
		tokenIDs = append(tokenIDs, identity.AccessTokenID)
	}

	// refresh токен достаем из cookie и отзываем его запись тоже
	if cookie, err := r.Cookie(RefreshTokenCookie); err == nil && cookie.Value != "" {
		if claims, err := h.service.RefreshCodec().Verify(cookie.Value); err == nil {
			tokenIDs = append(tokenIDs, claims.ID)
		}
	}

	if len(tokenIDs) > 0 {
		if err := h.service.Revoke(ctx, tokenIDs...); err != nil {
			WriteError(w, h.logger, err)
			return
		}
		h.logger.InfoContext(ctx, "session revoked")
	}

	clearSessionCookies(w)
	SendJSON(w, map[string]string{"status": "success"}, http.StatusOK)
}

// toUserResponse собирает DTO профиля для ответов API
func toUserResponse(user *models.User, accessToken string) api.UserResponse {
	return api.UserResponse{
		Email:           user.Email,
		DisplayName:     user.DisplayName,
		AccessToken:     accessToken,
		Biography:       user.Biography,
		ProfileImageURL: user.ProfileImageURL,
	}
}
