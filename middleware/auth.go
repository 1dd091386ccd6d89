package middleware

import (
	"context"
	"net/http"
	"strings"

	"go-retrofit/utils"
)

// AdminCookie carries the admin token for browser sessions.
const AdminCookie = "admin_token"

type ctxKeyClaims struct{}

// TokenFromRequest reads a bearer token, falling back to the admin cookie.
func TokenFromRequest(r *http.Request) string {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		return ""
	}
	if c, err := r.Cookie(AdminCookie); err == nil {
		return c.Value
	}
	return ""
}

// AdminMiddleware verifies the admin token and attaches its claims to the
// context.
func AdminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr := TokenFromRequest(r)
		if tokenStr == "" {
			writeError(w, "Authorization missing", http.StatusUnauthorized)
			return
		}

		claims, err := utils.ParseJWT(tokenStr)
		if err != nil {
			LoggerFrom(r.Context()).WithError(err).Debug("rejected admin token")
			writeError(w, "Invalid token", http.StatusUnauthorized)
			return
		}
		if claims.Role != utils.AdminRole {
			writeError(w, "Forbidden: Admins only", http.StatusForbidden)
			return
		}

		ctx := context.WithValue(r.Context(), ctxKeyClaims{}, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ClaimsFrom returns the admin claims set by AdminMiddleware.
func ClaimsFrom(ctx context.Context) (*utils.Claims, bool) {
	claims, ok := ctx.Value(ctxKeyClaims{}).(*utils.Claims)
	return claims, ok
}
