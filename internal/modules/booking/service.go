package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lusakagrand/hoteldesk-backend/internal/modules/rooms"
)

// RoomDirectory is what the booking service needs from the room module.
type RoomDirectory interface {
	GetRoom(ctx context.Context, id uuid.UUID) (*rooms.Room, error)
	SetStatus(ctx context.Context, id uuid.UUID, status rooms.Status) (*rooms.Room, error)
}

// CleaningScheduler files a housekeeping task when a guest checks out.
type CleaningScheduler interface {
	ScheduleCleaning(ctx context.Context, roomID uuid.UUID) error
}

// SaleRecorder writes the room-charge ledger entry at checkout.
type SaleRecorder interface {
	RecordSale(ctx context.Context, amount float64, sourceRef, paymentMethod, guestName, description string) error
}

const dateLayout = "2006-01-02"

// Service defines reservation business logic.
type Service interface {
	CreateBooking(ctx context.Context, req CreateBookingRequest) (*Booking, error)
	GetBooking(ctx context.Context, id uuid.UUID) (*Booking, error)
	ListBookings(ctx context.Context, status string) ([]*Booking, error)
	ListBookingsForRoom(ctx context.Context, roomID uuid.UUID) ([]*Booking, error)

	// CheckIn transitions CONFIRMED -> CHECKED_IN and occupies the room.
	CheckIn(ctx context.Context, id uuid.UUID) (*Booking, error)

	// CheckOut transitions CHECKED_IN -> CHECKED_OUT, records the room charge
	// on the ledger, sends the room to CLEANING and schedules housekeeping.
	CheckOut(ctx context.Context, id uuid.UUID, req CheckOutRequest) (*Booking, error)

	Cancel(ctx context.Context, id uuid.UUID) (*Booking, error)
	MarkNoShow(ctx context.Context, id uuid.UUID) (*Booking, error)
}

type service struct {
	repo         Repository
	roomDir      RoomDirectory
	housekeeping CleaningScheduler
	ledger       SaleRecorder
}

// NewService creates a new booking service.
func NewService(repo Repository, roomDir RoomDirectory, housekeeping CleaningScheduler, ledger SaleRecorder) Service {
	return &service{repo: repo, roomDir: roomDir, housekeeping: housekeeping, ledger: ledger}
}

func (s *service) CreateBooking(ctx context.Context, req CreateBookingRequest) (*Booking, error) {
	if req.GuestName == "" {
		return nil, fmt.Errorf("guest_name is required")
	}
	roomID, err := uuid.Parse(req.RoomID)
	if err != nil {
		return nil, fmt.Errorf("invalid room_id: %w", err)
	}
	checkIn, err := time.Parse(dateLayout, req.CheckIn)
	if err != nil {
		return nil, fmt.Errorf("invalid check_in date: %w", err)
	}
	checkOut, err := time.Parse(dateLayout, req.CheckOut)
	if err != nil {
		return nil, fmt.Errorf("invalid check_out date: %w", err)
	}
	if !checkOut.After(checkIn) {
		return nil, fmt.Errorf("check_out must be after check_in")
	}

	room, err := s.roomDir.GetRoom(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("room not found: %w", err)
	}
	if room.Status == rooms.StatusMaintenance {
		return nil, fmt.Errorf("room %s is under maintenance", room.Number)
	}

	overlap, err := s.repo.HasOverlap(ctx, roomID, checkIn, checkOut)
	if err != nil {
		return nil, err
	}
	if overlap {
		return nil, fmt.Errorf("room %s is already booked for those dates", room.Number)
	}

	nights := int(checkOut.Sub(checkIn).Hours() / 24)
	b := &Booking{
		ID:          uuid.New(),
		GuestName:   req.GuestName,
		GuestPhone:  req.GuestPhone,
		GuestEmail:  req.GuestEmail,
		RoomID:      roomID,
		RoomNumber:  room.Number,
		CheckIn:     checkIn,
		CheckOut:    checkOut,
		Nights:      nights,
		NightlyRate: room.Rate,
		TotalAmount: room.Rate * float64(nights),
		Status:      StatusConfirmed,
		Notes:       req.Notes,
	}
	if err := s.repo.CreateBooking(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) GetBooking(ctx context.Context, id uuid.UUID) (*Booking, error) {
	return s.repo.GetBookingByID(ctx, id)
}

func (s *service) ListBookings(ctx context.Context, status string) ([]*Booking, error) {
	var st Status
	if status != "" {
		st = Status(status)
		if _, ok := validTransitions[st]; !ok {
			return nil, fmt.Errorf("invalid status %q", status)
		}
	}
	return s.repo.ListBookings(ctx, st)
}

func (s *service) ListBookingsForRoom(ctx context.Context, roomID uuid.UUID) ([]*Booking, error) {
	return s.repo.ListBookingsForRoom(ctx, roomID)
}

func (s *service) CheckIn(ctx context.Context, id uuid.UUID) (*Booking, error) {
	b, err := s.transition(ctx, id, StatusCheckedIn)
	if err != nil {
		return nil, err
	}
	if _, err := s.roomDir.SetStatus(ctx, b.RoomID, rooms.StatusOccupied); err != nil {
		return nil, fmt.Errorf("occupy room: %w", err)
	}
	return b, nil
}

func (s *service) CheckOut(ctx context.Context, id uuid.UUID, req CheckOutRequest) (*Booking, error) {
	if req.PaymentMethod == "" {
		return nil, fmt.Errorf("payment_method is required")
	}
	b, err := s.transition(ctx, id, StatusCheckedOut)
	if err != nil {
		return nil, err
	}

	sourceRef := fmt.Sprintf("BOOKING-%s", b.ID)
	description := fmt.Sprintf("Room %s, %d night stay", b.RoomNumber, b.Nights)
	if err := s.ledger.RecordSale(ctx, b.TotalAmount, sourceRef, req.PaymentMethod, b.GuestName, description); err != nil {
		return nil, fmt.Errorf("record room charge: %w", err)
	}

	if _, err := s.roomDir.SetStatus(ctx, b.RoomID, rooms.StatusCleaning); err != nil {
		return nil, fmt.Errorf("send room to cleaning: %w", err)
	}
	if err := s.housekeeping.ScheduleCleaning(ctx, b.RoomID); err != nil {
		return nil, fmt.Errorf("schedule cleaning: %w", err)
	}
	return b, nil
}

func (s *service) Cancel(ctx context.Context, id uuid.UUID) (*Booking, error) {
	return s.transition(ctx, id, StatusCancelled)
}

func (s *service) MarkNoShow(ctx context.Context, id uuid.UUID) (*Booking, error) {
	return s.transition(ctx, id, StatusNoShow)
}

func (s *service) transition(ctx context.Context, id uuid.UUID, to Status) (*Booking, error) {
	b, err := s.repo.GetBookingByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanTransition(b.Status, to) {
		return nil, fmt.Errorf("invalid status transition from %s to %s", b.Status, to)
	}
	if err := s.repo.UpdateStatus(ctx, id, to); err != nil {
		return nil, err
	}
	b.Status = to
	return b, nil
}
