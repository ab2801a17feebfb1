package handlers

import (
	"net/http"
	"time"

	"github.com/negatiview/negatiview/internal/models"
)

// Cookie names expected by the Negatiview front end
const (
	AccessTokenCookie  = "access_token"
	RefreshTokenCookie = "refresh_token"
	// LoggedInCookie — не HttpOnly маркер для клиентского UI,
	// токенов не содержит
	LoggedInCookie = "logged_in"
)

// setSessionCookies прикрепляет выданную пару токенов к ответу.
// Max-Age каждого cookie равен окну жизни соответствующего токена,
// так что cookie и токен истекают вместе.
func setSessionCookies(w http.ResponseWriter, tokens *models.SessionTokens, accessTTL, refreshTTL time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     AccessTokenCookie,
		Value:    tokens.Access.Token,
		Path:     "/",
		MaxAge:   int(accessTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshTokenCookie,
		Value:    tokens.Refresh.Token,
		Path:     "/",
		MaxAge:   int(refreshTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     LoggedInCookie,
		Value:    "true",
		Path:     "/",
		MaxAge:   int(refreshTTL.Seconds()),
		HttpOnly: false,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearSessionCookies удаляет сессионные cookies (logout)
func clearSessionCookies(w http.ResponseWriter) {
	for _, name := range []string{AccessTokenCookie, RefreshTokenCookie, LoggedInCookie} {
		httpOnly := name != LoggedInCookie
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: httpOnly,
			SameSite: http.SameSiteLaxMode,
		})
	}
}
