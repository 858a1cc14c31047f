package middleware

import (
	"context"
	"net/http"

	cookieAuth "github.com/MrEthical07/cookieAuth"
	"github.com/MrEthical07/cookieAuth/session"
)

type authResultContextKey struct{}

// AuthResultFromContext returns the authentication result attached by [Guard].
func AuthResultFromContext(ctx context.Context) (*cookieAuth.AuthResult, bool) {
	res, ok := ctx.Value(authResultContextKey{}).(*cookieAuth.AuthResult)
	return res, ok
}

// SessionFromContext returns the attached session record, or nil when the
// request was not guarded.
func SessionFromContext(ctx context.Context) *session.Record {
	res, ok := AuthResultFromContext(ctx)
	if !ok {
		return nil
	}
	return res.Record
}

// Guard authenticates each request from the auth cookie pair. An expired
// access token with a live refresh token is renewed silently: the handler
// runs as if the token had been live, and the response carries the fresh
// pair as replacement cookies. Rejections short-circuit with the standard
// error envelope.
func Guard(engine *cookieAuth.Engine) func(http.Handler) http.Handler {
	var cfg cookieAuth.Config
	if engine != nil {
		// Config is immutable after Build; snapshot it once instead of
		// cloning per request.
		cfg = engine.Config()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if engine == nil {
				cookieAuth.WriteError(w, cookieAuth.ErrTokenMissing)
				return
			}

			access := cookieValue(r, cfg.Cookie.AccessName)
			refresh := cookieValue(r, cfg.Cookie.RefreshName)

			ctx := cookieAuth.WithClientIP(r.Context(), clientIP(r))
			ctx = cookieAuth.WithUserAgent(ctx, r.UserAgent())

			res, err := engine.Authenticate(ctx, access, refresh)
			if err != nil {
				cookieAuth.WriteError(w, err)
				return
			}

			if res.Renewed {
				SetAuthCookies(w, cfg, res.AccessToken, res.RefreshToken)
			}

			ctx = context.WithValue(ctx, authResultContextKey{}, res)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func clientIP(r *http.Request) string {
	host := r.RemoteAddr
	for i := len(host) - 1; i >= 0; i-- {
		if host[i] == ':' {
			return host[:i]
		}
	}
	return host
}
