package auth

import "context"

// Service defines the interface for authentication-related business logic.
type Service interface {
	Login(ctx context.Context, email, password string) (string, error)

	// VerifyToken parses a bearer token and returns the subject user id.
	VerifyToken(token string) (string, error)
}
