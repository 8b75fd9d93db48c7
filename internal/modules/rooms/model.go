package rooms

import (
	"time"

	"github.com/google/uuid"
)

// Status represents the lifecycle state of a room.
type Status string

const (
	StatusAvailable   Status = "AVAILABLE"
	StatusOccupied    Status = "OCCUPIED"
	StatusCleaning    Status = "CLEANING"
	StatusMaintenance Status = "MAINTENANCE"
)

// validTransitions defines allowed room status changes. Checkout sends an
// occupied room to CLEANING, never straight back to AVAILABLE; housekeeping
// closes the loop.
var validTransitions = map[Status][]Status{
	StatusAvailable:   {StatusOccupied, StatusCleaning, StatusMaintenance},
	StatusOccupied:    {StatusCleaning, StatusMaintenance},
	StatusCleaning:    {StatusAvailable, StatusMaintenance},
	StatusMaintenance: {StatusAvailable, StatusCleaning},
}

// CanTransition checks whether a status change is allowed.
func CanTransition(from, to Status) bool {
	for _, next := range validTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidStatus reports whether s is a known room status.
func ValidStatus(s Status) bool {
	_, ok := validTransitions[s]
	return ok
}

// RoomType classifies rooms for rate and display purposes.
type RoomType string

const (
	TypeStandard  RoomType = "STANDARD"
	TypeDeluxe    RoomType = "DELUXE"
	TypeExecutive RoomType = "EXECUTIVE"
	TypeSuite     RoomType = "SUITE"
)

// ValidRoomType reports whether t is a known room type.
func ValidRoomType(t RoomType) bool {
	switch t {
	case TypeStandard, TypeDeluxe, TypeExecutive, TypeSuite:
		return true
	}
	return false
}

// Room is a hotel room.
type Room struct {
	ID        uuid.UUID `json:"id"`
	Number    string    `json:"number"`
	Type      RoomType  `json:"type"`
	Rate      float64   `json:"rate"` // per night, ZMW
	Floor     int       `json:"floor"`
	Status    Status    `json:"status"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateRoomRequest is the payload for creating a room.
type CreateRoomRequest struct {
	Number string  `json:"number"`
	Type   string  `json:"type"`
	Rate   float64 `json:"rate"`
	Floor  int     `json:"floor"`
	Notes  string  `json:"notes"`
}

// UpdateRoomRequest is the payload for updating room details.
type UpdateRoomRequest struct {
	Type  string   `json:"type"`
	Rate  *float64 `json:"rate"`
	Floor *int     `json:"floor"`
	Notes *string  `json:"notes"`
}

// SetStatusRequest is the payload for a status transition.
type SetStatusRequest struct {
	Status string `json:"status"`
}
