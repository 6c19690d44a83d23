package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/verdant-studio/portal-api/internal/domain"
	jwtinfra "github.com/verdant-studio/portal-api/internal/infrastructure/jwt"
)

type contextKey string

const claimsKey contextKey = "claims"

// Auth returns middleware that validates the Bearer JWT and injects claims
// into the request context. Any invalid token fails the same way: 401 with a
// generic message.
func Auth(provider *jwtinfra.Provider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				writeJSONError(w, http.StatusUnauthorized, "missing or invalid authorization header")
				return
			}
			claims := provider.Verify(strings.TrimPrefix(authHeader, "Bearer "))
			if claims == nil {
				writeJSONError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}
			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext extracts JWT claims from the request context.
func ClaimsFromContext(ctx context.Context) (*jwtinfra.Claims, bool) {
	c, ok := ctx.Value(claimsKey).(*jwtinfra.Claims)
	return c, ok
}

// IdentityFromContext converts the verified claims to a domain identity.
// Handlers use this for ownership checks; the request body never supplies
// the caller's email or role.
func IdentityFromContext(ctx context.Context) (domain.Identity, bool) {
	c, ok := ClaimsFromContext(ctx)
	if !ok {
		return domain.Identity{}, false
	}
	return domain.Identity{UserID: c.UserID, Email: c.Email, Role: c.Role}, true
}

// WithClaims injects claims into ctx. Exposed for handler tests.
func WithClaims(ctx context.Context, c *jwtinfra.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}
