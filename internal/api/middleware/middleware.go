package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/mcoot/staffdir/internal/api/apierr"
	"github.com/mcoot/staffdir/internal/middleware"
	"github.com/mcoot/staffdir/internal/services/auth"
)

// TokenVerifier decodes bearer tokens
type TokenVerifier interface {
	VerifyToken(token string) (*auth.Claims, bool)
}

// OptionalAuth attaches the caller's claims to the request context when a
// valid bearer token is present. Invalid or missing tokens leave the request
// anonymous; handlers decide whether that is allowed.
func OptionalAuth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token := ExtractToken(r); token != "" {
				if claims, ok := verifier.VerifyToken(token); ok {
					r = r.WithContext(auth.WithClaims(r.Context(), claims))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ExtractToken returns the bearer token from the Authorization header
func ExtractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}
	return ""
}

// Recovery turns panics into a generic JSON 500
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, func(w http.ResponseWriter, _ *http.Request, _ any) {
		apierr.WriteError(w, apierr.NewInternalError())
	})
}
