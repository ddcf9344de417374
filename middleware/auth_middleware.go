// Package middleware implements the token policies applied in front of
// the resource handlers. Every policy decides from the token and path
// parameters alone; none of them touches the database.
package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"jobly/apperr"
	"jobly/auth"
)

// TokenHeader is the request header carrying the session token.
const TokenHeader = "_token"

type contextKey string

const claimsKey contextKey = "claims"

// ClaimsFrom returns the verified claims attached by a policy, or nil for
// an anonymous request.
func ClaimsFrom(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(claimsKey).(*auth.Claims)
	return claims
}

type Middleware struct {
	Tokens *auth.TokenService
}

func New(tokens *auth.TokenService) *Middleware {
	return &Middleware{Tokens: tokens}
}

// Authenticate is the identity-attach policy. A request without a token
// proceeds anonymously; a valid token attaches claims to the context; a
// token that fails verification is rejected outright rather than being
// forwarded as a server error.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get(TokenHeader)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := m.Tokens.Verify(token)
		if err != nil {
			writeUnauthorized(w)
			return
		}

		next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims)))
	})
}

// EnsureOwner requires a valid token whose username matches the
// {username} path parameter.
func (m *Middleware) EnsureOwner(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := m.Tokens.Verify(r.Header.Get(TokenHeader))
		if err != nil || claims.Username != mux.Vars(r)["username"] {
			writeUnauthorized(w)
			return
		}

		next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims)))
	})
}

// EnsureAdmin requires a valid token with the admin claim set.
func (m *Middleware) EnsureAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := m.Tokens.Verify(r.Header.Get(TokenHeader))
		if err != nil || !claims.IsAdmin {
			writeUnauthorized(w)
			return
		}

		next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims)))
	})
}

func withClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(apperr.Unauthorized())
}
