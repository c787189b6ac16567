// Package auth provides the bearer-token gate for admin routes. Identity is
// resolved by the external auth provider on every request; the verified
// principal travels in the request context. There is no local token store
// and no refresh handling — expired sessions require a fresh login.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

// Principal is the identity the auth provider resolves for a live token.
type Principal struct {
	ID    string
	Email string
	Name  string
}

// Verifier validates a bearer token against the auth provider.
type Verifier interface {
	Verify(ctx context.Context, token string) (*Principal, error)
}

// ErrMissingToken is returned when the Authorization header is absent or
// not a syntactically valid Bearer header.
var ErrMissingToken = errors.New("auth: missing bearer token")

type contextKey string

const principalKey contextKey = "principal"

// WithPrincipal stores the principal in the context.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// PrincipalFromContext retrieves the principal set by RequireAuth.
func PrincipalFromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey).(*Principal)
	return p, ok
}

// BearerToken extracts the token from the Authorization header.
func BearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return "", ErrMissingToken
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if token == "" {
		return "", ErrMissingToken
	}
	return token, nil
}

// RequireAuth wraps admin-only handlers. A missing header rejects the
// request before any provider call; a provider rejection maps to 401 with
// no further detail leaked to the client.
func RequireAuth(verifier Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := BearerToken(r)
			if err != nil {
				unauthorized(w, "Authorization token required")
				return
			}

			principal, err := verifier.Verify(r.Context(), token)
			if err != nil || principal == nil {
				unauthorized(w, "Invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), principal)))
		})
	}
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]any{"error": true, "message": message})
}
