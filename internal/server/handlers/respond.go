package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/negatiview/negatiview/internal/server/auth"
	"github.com/negatiview/negatiview/internal/server/jwt"
	"github.com/negatiview/negatiview/internal/server/storage"
	"github.com/negatiview/negatiview/pkg/api"
)

// SendJSON сериализует v и пишет его с указанным статусом
func SendJSON(w http.ResponseWriter, v any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// SendError пишет единый JSON формат ошибки {status, message}
// status поле равно "fail" для клиентских ошибок и "error" для серверных
func SendError(w http.ResponseWriter, message string, statusCode int) {
	status := "fail"
	if statusCode >= http.StatusInternalServerError {
		status = "error"
	}
	SendJSON(w, api.ErrorResponse{Status: status, Message: message}, statusCode)
}

// MapError сводит ошибки ядра к (HTTP статус, сообщение)
// Единственная точка маппинга: обработчики и middleware не собирают
// тела ошибок на местах
func MapError(err error) (int, string) {
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Login failed: Invalid credentials"
	case errors.Is(err, jwt.ErrInvalidToken), errors.Is(err, storage.ErrSessionNotFound):
		return http.StatusUnauthorized, "Invalid token"
	case errors.Is(err, storage.ErrUserNotFound):
		return http.StatusUnauthorized, "User not found"
	case errors.Is(err, storage.ErrUserAlreadyExists):
		return http.StatusConflict, "Email is already taken"
	case errors.Is(err, storage.ErrCacheUnavailable):
		return http.StatusInternalServerError, "Session cache unavailable"
	case errors.Is(err, auth.ErrSessionPersistence):
		return http.StatusInternalServerError, "Failed to persist session"
	case errors.Is(err, jwt.ErrSigning):
		return http.StatusInternalServerError, "Failed to issue token"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

// WriteError логирует ошибку и отправляет клиенту ее маппинг
func WriteError(w http.ResponseWriter, logger *slog.Logger, err error) {
	statusCode, message := MapError(err)
	if statusCode >= http.StatusInternalServerError {
		logger.Error("request failed", slog.Any("error", err))
	}
	SendError(w, message, statusCode)
}
