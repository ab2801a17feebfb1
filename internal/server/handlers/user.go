package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/negatiview/negatiview/internal/crypto"
	"github.com/negatiview/negatiview/internal/server/storage"
	"github.com/negatiview/negatiview/internal/validation"
	"github.com/negatiview/negatiview/pkg/api"
)

// UserHandler обрабатывает запросы текущего профиля
type UserHandler struct {
	logger *slog.Logger
	users  storage.UserStorage
}

// NewUserHandler creates a new handler for profile endpoints
func NewUserHandler(logger *slog.Logger, users storage.UserStorage) *UserHandler {
	return &UserHandler{
		logger: logger,
		users:  users,
	}
}

// Me обрабатывает GET /api/me
// Возвращает профиль аутентифицированного пользователя
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := GetIdentity(r.Context())
	if !ok {
		SendError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	SendJSON(w, api.AuthResponse{
		Status: "success",
		Data:   toUserResponse(identity.User, identity.AccessToken),
	}, http.StatusOK)
}

// UpdateMe обрабатывает PUT /api/me
// Обновляет профиль; пароль меняется только когда передан новый
func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, ok := GetIdentity(ctx)
	if !ok {
		SendError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req api.Wrapper[api.UserUpdateRequest]
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode update request", slog.Any("error", err))
		SendError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := validation.ValidateEmail(req.Data.Email); err != nil {
		SendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := validation.ValidateDisplayName(req.Data.DisplayName); err != nil {
		SendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	user := *identity.User
	user.Email = req.Data.Email
	user.DisplayName = req.Data.DisplayName
	user.Biography = req.Data.Biography
	user.ProfileImageURL = req.Data.ProfileImageURL

	if req.Data.Password != "" {
		if err := validation.ValidatePassword(req.Data.Password); err != nil {
			SendError(w, err.Error(), http.StatusBadRequest)
			return
		}
		hashed, err := crypto.HashPassword(req.Data.Password)
		if err != nil {
			WriteError(w, h.logger, err)
			return
		}
		user.Password = hashed
	}

	if err := h.users.UpdateUser(ctx, &user); err != nil {
		WriteError(w, h.logger, err)
		return
	}

	h.logger.InfoContext(ctx, "user updated",
		slog.String("user_id", user.ID))

	SendJSON(w, api.AuthResponse{
		Status:  "success",
		Message: "User updated successfully",
		Data:    toUserResponse(&user, identity.AccessToken),
	}, http.StatusOK)
}
