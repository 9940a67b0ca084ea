package mw

import (
	"context"
	"net/http"

	"github.com/MrSnakeDoc/csfinder/internal/session"
)

type sessionKey struct{}

// Session attaches a session id to every request. A missing or expired
// cookie starts a new session and sets the cookie on the response.
func Session(registry *session.Registry, secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var id string
			if c, err := r.Cookie(session.CookieName); err == nil {
				if _, ok := registry.Get(c.Value); ok {
					id = c.Value
				}
			}

			if id == "" {
				id = registry.Create()
				http.SetCookie(w, &http.Cookie{
					Name:     session.CookieName,
					Value:    id,
					Path:     "/",
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := context.WithValue(r.Context(), sessionKey{}, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionID returns the session id attached by Session, or "".
func SessionID(ctx context.Context) string {
	id, _ := ctx.Value(sessionKey{}).(string)
	return id
}
