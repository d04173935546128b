package visitor

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// CookieName holds the signed visitor token in the browser.
const CookieName = "quizdrill_sid"

type ctxKey struct{}

// FromContext returns the visitor sid set by Middleware, or "" if absent.
func FromContext(ctx context.Context) string {
	sid, _ := ctx.Value(ctxKey{}).(string)
	return sid
}

// Middleware reuses a valid visitor cookie or mints a new identity, refreshes
// the cookie TTL, and exposes the sid to handlers via the request context.
func Middleware(svc *Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var sid string
			if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
				if id, err := svc.Parse(c.Value); err == nil && id != "" {
					sid = id
				}
			}
			if sid == "" {
				sid = uuid.NewString()
			}
			tok, err := svc.Issue(sid)
			if err != nil {
				http.Error(w, "issue token", http.StatusInternalServerError)
				return
			}
			http.SetCookie(w, &http.Cookie{
				Name:     CookieName,
				Value:    tok,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
				Expires:  time.Now().Add(svc.ttl),
			})
			ctx := context.WithValue(r.Context(), ctxKey{}, sid)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
