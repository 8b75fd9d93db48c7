package booking

import (
	"time"

	"github.com/google/uuid"
)

// Status represents the lifecycle state of a booking.
type Status string

const (
	StatusConfirmed  Status = "CONFIRMED"
	StatusCheckedIn  Status = "CHECKED_IN"
	StatusCheckedOut Status = "CHECKED_OUT"
	StatusCancelled  Status = "CANCELLED"
	StatusNoShow     Status = "NO_SHOW"
)

// validTransitions defines allowed booking status changes.
var validTransitions = map[Status][]Status{
	StatusConfirmed:  {StatusCheckedIn, StatusCancelled, StatusNoShow},
	StatusCheckedIn:  {StatusCheckedOut},
	StatusCheckedOut: {},
	StatusCancelled:  {},
	StatusNoShow:     {},
}

// CanTransition checks whether a booking status change is allowed.
func CanTransition(from, to Status) bool {
	for _, next := range validTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Booking is a room reservation. NightlyRate is snapshotted from the room at
// creation time so later rate changes do not reprice existing stays.
type Booking struct {
	ID          uuid.UUID `json:"id"`
	GuestName   string    `json:"guest_name"`
	GuestPhone  string    `json:"guest_phone,omitempty"`
	GuestEmail  string    `json:"guest_email,omitempty"`
	RoomID      uuid.UUID `json:"room_id"`
	RoomNumber  string    `json:"room_number"`
	CheckIn     time.Time `json:"check_in"`
	CheckOut    time.Time `json:"check_out"`
	Nights      int       `json:"nights"`
	NightlyRate float64   `json:"nightly_rate"`
	TotalAmount float64   `json:"total_amount"`
	Status      Status    `json:"status"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateBookingRequest is the payload for creating a booking.
type CreateBookingRequest struct {
	GuestName  string `json:"guest_name"`
	GuestPhone string `json:"guest_phone"`
	GuestEmail string `json:"guest_email"`
	RoomID     string `json:"room_id"`
	CheckIn    string `json:"check_in"`  // YYYY-MM-DD
	CheckOut   string `json:"check_out"` // YYYY-MM-DD
	Notes      string `json:"notes"`
}

// CheckOutRequest is the payload for checking a guest out.
type CheckOutRequest struct {
	PaymentMethod string `json:"payment_method"`
}
