package handler

import (
	"auth-service/config"
	"auth-service/internal/model"
	"auth-service/internal/security"
	"net/http"
	"time"
)

type CookieSettings struct {
	Domain     string
	Secure     bool
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

func NewCookieSettings(cookie *config.CookieConfig, jwt *config.JWTConfig) CookieSettings {
	return CookieSettings{
		Domain:     cookie.Domain,
		Secure:     cookie.Secure,
		AccessTTL:  jwt.AccessTokenTTL,
		RefreshTTL: jwt.RefreshTokenTTL,
	}
}

func (c CookieSettings) setAuthCookies(w http.ResponseWriter, tokens *model.TokensPair) {
	http.SetCookie(w, c.cookie(security.AccessTokenCookie, tokens.AccessToken, c.AccessTTL, tokens.AccessExpiresAt))
	http.SetCookie(w, c.cookie(security.RefreshTokenCookie, tokens.RefreshToken, c.RefreshTTL, tokens.RefreshExpiresAt))
}

func (c CookieSettings) clearAuthCookies(w http.ResponseWriter) {
	for _, name := range []string{security.AccessTokenCookie, security.RefreshTokenCookie} {
		cookie := c.cookie(name, "", 0, time.Unix(0, 0))
		cookie.MaxAge = -1
		http.SetCookie(w, cookie)
	}
}

func (c CookieSettings) cookie(name, value string, ttl time.Duration, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   c.Domain,
		MaxAge:   int(ttl / time.Second),
		Expires:  expires,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteStrictMode,
	}
}
