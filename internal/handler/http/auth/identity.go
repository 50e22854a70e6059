// Package auth resolves the caller's identity from an optional bearer token.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"summary-service/internal/handler/http/respond"
)

type ctxKey string

const ctxUser ctxKey = "user"

var (
	errMissingBearer = errors.New("missing bearer token")
	errInvalidToken  = errors.New("invalid token")
	errInvalidSub    = errors.New("invalid sub claim")
)

// Identity verifies HS256 bearer tokens signed with secret and stores the
// email in the "sub" claim on the request context. Requests without an
// Authorization header pass through anonymously; a present but invalid token
// is rejected with 401. An empty secret disables verification entirely.
func Identity(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if len(secret) == 0 || header == "" {
				next.ServeHTTP(w, r)
				return
			}

			email, err := validateJWT(header, secret)
			if err != nil {
				respond.SafeError(w, http.StatusUnauthorized, fmt.Errorf("unauthorized: %w", err))
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), email)))
		})
	}
}

func validateJWT(authz string, secret []byte) (string, error) {
	const prefix = "Bearer "
	if !strings.HasPrefix(authz, prefix) {
		return "", errMissingBearer
	}
	tokenString := strings.TrimPrefix(authz, prefix)

	tok, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !tok.Valid {
		return "", errInvalidToken
	}

	sub, err := tok.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", errInvalidSub
	}
	return sub, nil
}

// WithUser returns a context carrying email as the authenticated user.
func WithUser(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, ctxUser, email)
}

// UserFromContext returns the authenticated email, if any.
func UserFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(ctxUser).(string)
	return email, ok && email != ""
}

// ResolveUser prefers the token identity over a client-supplied email.
func ResolveUser(ctx context.Context, supplied string) string {
	if email, ok := UserFromContext(ctx); ok {
		return email
	}
	return strings.TrimSpace(supplied)
}
