package middleware

import (
	"net/http"
	"time"

	cookieAuth "github.com/MrEthical07/cookieAuth"
)

// SetAuthCookies writes the access/refresh pair as HTTP-only cookies using
// the engine's cookie policy. Tokens never reach script-visible storage.
func SetAuthCookies(w http.ResponseWriter, cfg cookieAuth.Config, accessToken, refreshToken string) {
	http.SetCookie(w, authCookie(cfg, cfg.Cookie.AccessName, accessToken, cfg.JWT.AccessTTL))
	http.SetCookie(w, authCookie(cfg, cfg.Cookie.RefreshName, refreshToken, cfg.JWT.RefreshTTL))
}

// ClearAuthCookies expires both auth cookies immediately.
func ClearAuthCookies(w http.ResponseWriter, cfg cookieAuth.Config) {
	http.SetCookie(w, expiredCookie(cfg, cfg.Cookie.AccessName))
	http.SetCookie(w, expiredCookie(cfg, cfg.Cookie.RefreshName))
}

func authCookie(cfg cookieAuth.Config, name, value string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     cfg.Cookie.Path,
		Domain:   cfg.Cookie.Domain,
		MaxAge:   int(ttl / time.Second),
		HttpOnly: true,
		Secure:   cfg.Cookie.Secure,
		SameSite: cfg.Cookie.SameSite,
	}
}

func expiredCookie(cfg cookieAuth.Config, name string) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     cfg.Cookie.Path,
		Domain:   cfg.Cookie.Domain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cfg.Cookie.Secure,
		SameSite: cfg.Cookie.SameSite,
	}
}

func cookieValue(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}
