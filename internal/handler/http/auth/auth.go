// Package auth validates the bearer tokens protecting mutation endpoints.
// Tokens are HS256 JWTs carrying the account subject and an admin flag;
// ownership checks against that subject happen in the handlers.
package auth

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strings"

	"github.com/Aywac/tawzifak1122/internal/handler/http/respond"

	"github.com/golang-jwt/jwt/v5"
)

type ctxKey string

const identityKey ctxKey = "identity"

// Identity is the authenticated caller extracted from a bearer token.
type Identity struct {
	// Subject is the account ID, matching the users collection document ID
	// and the ownerID stored on listings.
	Subject string
	Admin   bool
}

// CanManage reports whether the caller may mutate a resource owned by
// ownerID. Admins may mutate anything.
func (id Identity) CanManage(ownerID string) bool {
	return id.Admin || (id.Subject != "" && id.Subject == ownerID)
}

// FromContext returns the identity stored by the middleware.
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}

// WithIdentity returns a context carrying the given identity.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// ParseToken validates an HS256 JWT and extracts the caller identity.
func ParseToken(tokenString string, secret []byte) (Identity, error) {
	tok, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil || !tok.Valid {
		return Identity{}, errors.New("invalid token")
	}

	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, errors.New("invalid token claims")
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return Identity{}, errors.New("missing subject claim")
	}
	admin, _ := claims["admin"].(bool)
	return Identity{Subject: sub, Admin: admin}, nil
}

func bearerIdentity(r *http.Request, secret []byte) (Identity, error) {
	const prefix = "Bearer "
	authz := r.Header.Get("Authorization")
	if !strings.HasPrefix(authz, prefix) {
		return Identity{}, errors.New("missing bearer token")
	}
	return ParseToken(strings.TrimPrefix(authz, prefix), secret)
}

// Require wraps a handler so that only requests with a valid bearer token
// reach it. The caller identity is added to the request context.
func Require(next http.Handler) http.Handler {
	secret := []byte(os.Getenv("JWT_SECRET"))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := bearerIdentity(r, secret)
		if err != nil {
			respond.JSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
			return
		}
		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
	})
}

// RequireAdmin wraps a handler so that only admin tokens reach it.
func RequireAdmin(next http.Handler) http.Handler {
	return Require(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, _ := FromContext(r.Context())
		if !id.Admin {
			respond.JSON(w, http.StatusForbidden, map[string]string{"error": "forbidden"})
			return
		}
		next.ServeHTTP(w, r)
	}))
}
