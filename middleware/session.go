package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const (
	// SessionCookie identifies the browser session that owns a cart.
	SessionCookie = "retrofit_session"
	sessionMaxAge = 30 * 24 * time.Hour
)

type ctxKeySessionID struct{}

// EnsureSession makes sure every request carries a session id, issuing a
// new cookie when the browser has none.
func EnsureSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var sessionID string
		c, err := r.Cookie(SessionCookie)
		if err == nil && validSessionID(c.Value) {
			sessionID = c.Value
		} else {
			sessionID = uuid.New().String()
			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookie,
				Value:    sessionID,
				Path:     "/",
				MaxAge:   int(sessionMaxAge.Seconds()),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		ctx := context.WithValue(r.Context(), ctxKeySessionID{}, sessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func validSessionID(v string) bool {
	id, err := uuid.Parse(v)
	return err == nil && id.String() == v
}

// SessionID returns the session id set by EnsureSession.
func SessionID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKeySessionID{}).(string)
	return id
}
