package user

import (
	"time"

	"github.com/google/uuid"
)

// Role is a staff role. It gates module access and drives housekeeping task
// assignment.
type Role string

const (
	RoleManager      Role = "MANAGER"
	RoleReception    Role = "RECEPTION"
	RoleWaiter       Role = "WAITER"
	RoleKitchen      Role = "KITCHEN"
	RoleHousekeeping Role = "HOUSEKEEPING"
)

// ValidRole reports whether r is a known staff role.
func ValidRole(r Role) bool {
	switch r {
	case RoleManager, RoleReception, RoleWaiter, RoleKitchen, RoleHousekeeping:
		return true
	}
	return false
}

// User represents a staff account.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"first_name,omitempty"`
	LastName     string    `json:"last_name,omitempty"`
	Role         Role      `json:"role"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
