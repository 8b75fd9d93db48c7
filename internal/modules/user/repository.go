package user

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines user data access.
type Repository interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByID(ctx context.Context, id string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	ListUsers(ctx context.Context) ([]*User, error)
	ListUserIDsByRole(ctx context.Context, role Role) ([]uuid.UUID, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}
