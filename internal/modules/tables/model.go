package tables

import (
	"time"

	"github.com/google/uuid"
)

// Status represents the state of a dining table.
type Status string

const (
	StatusAvailable Status = "AVAILABLE"
	StatusOccupied  Status = "OCCUPIED"
	StatusReserved  Status = "RESERVED"
)

// ValidStatus reports whether s is a known table status.
func ValidStatus(s Status) bool {
	switch s {
	case StatusAvailable, StatusOccupied, StatusReserved:
		return true
	}
	return false
}

// Table is a dining table in the restaurant.
type Table struct {
	ID        uuid.UUID `json:"id"`
	Number    int       `json:"number"`
	Seats     int       `json:"seats"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateTableRequest is the payload for creating a table.
type CreateTableRequest struct {
	Number int `json:"number"`
	Seats  int `json:"seats"`
}

// SetStatusRequest is the payload for a manual status change.
type SetStatusRequest struct {
	Status string `json:"status"`
}
