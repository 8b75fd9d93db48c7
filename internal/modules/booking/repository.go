package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines booking data access.
type Repository interface {
	CreateBooking(ctx context.Context, b *Booking) error
	GetBookingByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	ListBookings(ctx context.Context, status Status) ([]*Booking, error)
	ListBookingsForRoom(ctx context.Context, roomID uuid.UUID) ([]*Booking, error)

	// HasOverlap reports whether the room has a CONFIRMED or CHECKED_IN
	// booking whose stay intersects [checkIn, checkOut).
	HasOverlap(ctx context.Context, roomID uuid.UUID, checkIn, checkOut time.Time) (bool, error)

	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
}
