package models

import "time"

// TokenDetails описывает один выданный токен
// TokenID (jti) служит ключом записи сессии в кэше
type TokenDetails struct {
	Token     string    `json:"token"`      // подписанная строка токена
	TokenID   string    `json:"token_id"`   // UUID токена (jti)
	ExpiresAt time.Time `json:"expires_at"` // абсолютное время истечения
}

// SessionTokens представляет пару токенов одной сессии
type SessionTokens struct {
	Access  TokenDetails `json:"access"`
	Refresh TokenDetails `json:"refresh"`
}
