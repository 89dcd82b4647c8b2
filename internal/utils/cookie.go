package utils

import (
	"net/http"
	"time"
)

// AuthCookieName — имя cookie с сессионным токеном.
const AuthCookieName = "auth"

// SetAuthCookie выставляет сессионную cookie: path=/, HttpOnly, SameSite=Lax,
// Secure — только в prod-окружении.
func SetAuthCookie(w http.ResponseWriter, token string, ttl time.Duration, env string) {
	http.SetCookie(w, &http.Cookie{
		Name:     AuthCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   env == "prod",
		MaxAge:   int(ttl.Seconds()),
	})
}

// ClearAuthCookie удаляет сессионную cookie. Идемпотентно.
func ClearAuthCookie(w http.ResponseWriter, env string) {
	http.SetCookie(w, &http.Cookie{
		Name:     AuthCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   env == "prod",
		MaxAge:   -1,
	})
}
