package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"ConferenceAPI/internal/logger"
)

// User is the authenticated caller.
type User struct {
	ID    string
	Email string
	Name  string
}

type contextKey string

const userContextKey contextKey = "auth_user"

func WithUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, userContextKey, u)
}

func UserFromContext(ctx context.Context) (*User, bool) {
	u, ok := ctx.Value(userContextKey).(*User)
	return u, ok && u != nil
}

// Middleware attaches the bearer token's user to the request context.
// Requests without a token pass through anonymously; a token that fails
// validation is rejected with 401.
func Middleware(v *JWTValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get("Authorization")
			if raw == "" {
				next.ServeHTTP(w, r)
				return
			}
			token, ok := strings.CutPrefix(raw, "Bearer ")
			if !ok || v == nil {
				unauthorized(w, "invalid authorization header")
				return
			}
			user, err := v.ValidateToken(strings.TrimSpace(token))
			if err != nil {
				logger.Warn("auth_rejected", map[string]any{
					"path":  r.URL.Path,
					"error": err.Error(),
				})
				unauthorized(w, "invalid token")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{"code": http.StatusUnauthorized, "message": msg},
	})
}
