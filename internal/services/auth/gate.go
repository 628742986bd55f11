package auth

import (
	"context"

	"github.com/mcoot/staffdir/internal/model"
)

type contextKey string

const claimsContextKey contextKey = "claims"

// WithClaims returns a context carrying the verified identity of the caller
func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsContextKey, claims)
}

// ClaimsFromContext returns the caller's identity, or nil for anonymous requests
func ClaimsFromContext(ctx context.Context) *Claims {
	claims, _ := ctx.Value(claimsContextKey).(*Claims)
	return claims
}

// RequireAuthenticated fails with ErrAuthenticationRequired for anonymous callers
func RequireAuthenticated(ctx context.Context) (*Claims, error) {
	claims := ClaimsFromContext(ctx)
	if claims == nil {
		return nil, model.ErrAuthenticationRequired
	}
	return claims, nil
}

// RequireAdmin fails with ErrAuthenticationRequired for anonymous callers and
// ErrAdminRequired for callers without the admin role
func RequireAdmin(ctx context.Context) (*Claims, error) {
	claims, err := RequireAuthenticated(ctx)
	if err != nil {
		return nil, err
	}
	if !claims.IsAdmin() {
		return nil, model.ErrAdminRequired
	}
	return claims, nil
}
