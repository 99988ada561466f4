// Package auth validates bearer tokens and exposes the authenticated
// caller's user id to handlers through the request context. Token issuance
// lives in a separate service; this package only checks what it is handed.
package auth

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey struct{}

// Validator checks bearer tokens against the configured secret, issuer
// and audience.
type Validator struct {
	parser *jwt.Parser
	secret []byte
}

func NewValidator(secret, issuer, audience string) *Validator {
	return &Validator{
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}),
			jwt.WithIssuer(issuer),
			jwt.WithAudience(audience),
			jwt.WithExpirationRequired(),
		),
		secret: []byte(secret),
	}
}

// Middleware rejects requests without a valid bearer token and stores the
// caller's user id in the request context for downstream handlers.
func (v *Validator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := v.authenticate(r)
		if err != nil {
			http.Error(w, "invalid or missing token", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
	})
}

func (v *Validator) authenticate(r *http.Request) (int64, error) {
	header := r.Header.Get("Authorization")

	scheme, tokenStr, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || tokenStr == "" {
		return 0, jwt.ErrTokenMalformed
	}

	var claims jwt.RegisteredClaims

	_, err := v.parser.ParseWithClaims(tokenStr, &claims, func(_ *jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil {
		return 0, err
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, jwt.ErrTokenInvalidSubject
	}

	return userID, nil
}

// WithUserID returns a context carrying the authenticated user id.
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, contextKey{}, userID)
}

// UserID extracts the authenticated user id set by Middleware.
func UserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(contextKey{}).(int64)
	return userID, ok
}
