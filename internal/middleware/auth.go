package middleware

import (
	"context"
	"net/http"
	"strings"

	"promptfeed/internal/auth"
)

type sessionKey struct{}

// TokenParser validates a bearer token.
type TokenParser interface {
	ParseToken(raw string) (*auth.SessionClaims, error)
}

// OptionalAuth attaches the session claims when a valid bearer token is sent.
// Requests without a token, or with a bad one, continue anonymously.
func OptionalAuth(parser TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token := BearerToken(r); token != "" && parser != nil {
				if claims, err := parser.ParseToken(token); err == nil {
					r = r.WithContext(ContextWithSession(r.Context(), claims))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// BearerToken extracts the token from an "Authorization: Bearer" header.
func BearerToken(r *http.Request) string {
	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func ContextWithSession(ctx context.Context, claims *auth.SessionClaims) context.Context {
	if claims == nil || strings.TrimSpace(claims.Subject) == "" {
		return ctx
	}
	return context.WithValue(ctx, sessionKey{}, claims)
}

func SessionFromContext(ctx context.Context) *auth.SessionClaims {
	if v, ok := ctx.Value(sessionKey{}).(*auth.SessionClaims); ok {
		return v
	}
	return nil
}

// UserIDFromContext returns the signed-in user's id, or "" for anonymous requests.
func UserIDFromContext(ctx context.Context) string {
	if claims := SessionFromContext(ctx); claims != nil {
		return claims.Subject
	}
	return ""
}
