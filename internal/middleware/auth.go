package middleware

import (
	"context"
	"net/http"
	"strings"
)

// TokenVerifier validates a bearer token and returns the identity uid it
// belongs to.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (string, error)
}

// VerifierFunc adapts a function to the TokenVerifier interface.
type VerifierFunc func(ctx context.Context, idToken string) (string, error)

func (f VerifierFunc) VerifyIDToken(ctx context.Context, idToken string) (string, error) {
	return f(ctx, idToken)
}

const userUIDKey contextKey = "user_uid"

// Auth requires a valid "Authorization: Bearer <token>" header and stores the
// verified uid on the request context.
func Auth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				http.Error(w, `{"error":"missing or malformed authorization header"}`, http.StatusUnauthorized)
				return
			}
			uid, err := verifier.VerifyIDToken(r.Context(), token)
			if err != nil {
				http.Error(w, `{"error":"invalid token"}`, http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), userUIDKey, uid)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserUIDFromContext returns the uid placed by Auth, or "".
func UserUIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(userUIDKey).(string); ok {
		return v
	}
	return ""
}
