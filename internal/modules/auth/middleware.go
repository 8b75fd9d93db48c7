package auth

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

// UserIDKey is the request context key holding the authenticated user id.
const UserIDKey contextKey = "auth.user_id"

// open paths reachable without a token
var openPaths = map[string]bool{
	"/health":            true,
	"/api/v1/auth/login": true,
}

// Middleware rejects requests without a valid bearer token and stores the
// authenticated user id on the request context.
func Middleware(service Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if openPaths[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				http.Error(w, "missing bearer token", http.StatusUnauthorized)
				return
			}
			userID, err := service.VerifyToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
