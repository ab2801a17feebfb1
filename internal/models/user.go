package models

import "time"

// User представляет пользователя в системе
type User struct {
	ID              string    `json:"id"`                // UUID пользователя
	Email           string    `json:"email"`             // уникальный email
	DisplayName     string    `json:"display_name"`      // отображаемое имя
	Password        string    `json:"-"`                 // argon2id хеш пароля (PHC строка)
	Biography       string    `json:"biography"`         // биография, опционально
	ProfileImageURL string    `json:"profile_image_url"` // URL аватара, опционально
	CreatedAt       time.Time `json:"created_at"`        // время создания
	UpdatedAt       time.Time `json:"updated_at"`        // время последнего обновления
}
