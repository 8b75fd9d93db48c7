package user

import (
	"context"

	"github.com/google/uuid"
)

// Service defines the interface for user-related business logic.
type Service interface {
	RegisterUser(ctx context.Context, email, password, firstName, lastName, role string) (*User, error)
	GetUser(ctx context.Context, id string) (*User, error)
	ListUsers(ctx context.Context) ([]*User, error)

	// ListUserIDsByRole feeds housekeeping's auto-assignment.
	ListUserIDsByRole(ctx context.Context, role string) ([]uuid.UUID, error)

	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}
