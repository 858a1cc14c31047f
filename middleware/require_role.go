package middleware

import (
	"net/http"

	cookieAuth "github.com/MrEthical07/cookieAuth"
)

// RequireRole gates a route behind the allowed role set. It must run after
// [Guard]; an unguarded request is rejected as unauthenticated rather than
// unauthorized.
func RequireRole(engine *cookieAuth.Engine, allowed ...cookieAuth.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := SessionFromContext(r.Context())
			if err := engine.Authorize(rec, allowed...); err != nil {
				cookieAuth.WriteError(w, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
