package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type postgresRepo struct {
	db *sql.DB
}

// NewPostgresRepository creates a PostgreSQL-backed booking repository.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepo{db: db}
}

const bookingColumns = `id, guest_name, guest_phone, guest_email, room_id, room_number,
	check_in, check_out, nights, nightly_rate, total_amount, status, notes, created_at, updated_at`

func (r *postgresRepo) CreateBooking(ctx context.Context, b *Booking) error {
	query := `
		INSERT INTO bookings (id, guest_name, guest_phone, guest_email, room_id, room_number,
			check_in, check_out, nights, nightly_rate, total_amount, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.db.ExecContext(ctx, query,
		b.ID, b.GuestName, b.GuestPhone, b.GuestEmail, b.RoomID, b.RoomNumber,
		b.CheckIn, b.CheckOut, b.Nights, b.NightlyRate, b.TotalAmount, b.Status, b.Notes)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

func (r *postgresRepo) GetBookingByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	b := &Booking{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&b.ID, &b.GuestName, &b.GuestPhone, &b.GuestEmail, &b.RoomID, &b.RoomNumber,
		&b.CheckIn, &b.CheckOut, &b.Nights, &b.NightlyRate, &b.TotalAmount,
		&b.Status, &b.Notes, &b.CreatedAt, &b.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("booking not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return b, nil
}

func (r *postgresRepo) ListBookings(ctx context.Context, status Status) ([]*Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings`
	args := []interface{}{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY check_in DESC`
	return r.queryBookings(ctx, query, args...)
}

func (r *postgresRepo) ListBookingsForRoom(ctx context.Context, roomID uuid.UUID) ([]*Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE room_id = $1 ORDER BY check_in DESC`
	return r.queryBookings(ctx, query, roomID)
}

func (r *postgresRepo) HasOverlap(ctx context.Context, roomID uuid.UUID, checkIn, checkOut time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE room_id = $1
			  AND status IN ($2, $3)
			  AND check_in < $4
			  AND check_out > $5
		)`
	var exists bool
	err := r.db.QueryRowContext(ctx, query,
		roomID, StatusConfirmed, StatusCheckedIn, checkOut, checkIn).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check booking overlap: %w", err)
	}
	return exists, nil
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	query := `UPDATE bookings SET status = $1, updated_at = $2 WHERE id = $3`
	res, err := r.db.ExecContext(ctx, query, status, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("booking %s not found", id)
	}
	return nil
}

func (r *postgresRepo) queryBookings(ctx context.Context, query string, args ...interface{}) ([]*Booking, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer rows.Close()

	var out []*Booking
	for rows.Next() {
		b := &Booking{}
		if err := rows.Scan(&b.ID, &b.GuestName, &b.GuestPhone, &b.GuestEmail, &b.RoomID, &b.RoomNumber,
			&b.CheckIn, &b.CheckOut, &b.Nights, &b.NightlyRate, &b.TotalAmount,
			&b.Status, &b.Notes, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
