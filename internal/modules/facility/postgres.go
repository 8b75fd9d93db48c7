package facility

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

type postgresRepo struct {
	db *sql.DB
}

// NewPostgresRepository creates a PostgreSQL-backed facility repository.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepo{db: db}
}

func (r *postgresRepo) CreateFacility(ctx context.Context, f *Facility) error {
	query := `
		INSERT INTO facilities (id, name, kind, hourly_rate, capacity, active)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.ExecContext(ctx, query, f.ID, f.Name, f.Kind, f.HourlyRate, f.Capacity, f.Active)
	if err != nil {
		return fmt.Errorf("failed to create facility: %w", err)
	}
	return nil
}

func (r *postgresRepo) GetFacilityByID(ctx context.Context, id uuid.UUID) (*Facility, error) {
	query := `
		SELECT id, name, kind, hourly_rate, capacity, active, created_at, updated_at
		FROM facilities WHERE id = $1`
	f := &Facility{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&f.ID, &f.Name, &f.Kind, &f.HourlyRate, &f.Capacity, &f.Active, &f.CreatedAt, &f.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("facility not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get facility: %w", err)
	}
	return f, nil
}

func (r *postgresRepo) ListFacilities(ctx context.Context) ([]*Facility, error) {
	query := `
		SELECT id, name, kind, hourly_rate, capacity, active, created_at, updated_at
		FROM facilities ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list facilities: %w", err)
	}
	defer rows.Close()

	var out []*Facility
	for rows.Next() {
		f := &Facility{}
		if err := rows.Scan(&f.ID, &f.Name, &f.Kind, &f.HourlyRate, &f.Capacity,
			&f.Active, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan facility: %w", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (r *postgresRepo) CreateSession(ctx context.Context, s *Session) error {
	query := `
		INSERT INTO facility_sessions (id, facility_id, guest_name, status, started_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.ExecContext(ctx, query, s.ID, s.FacilityID, s.GuestName, s.Status, s.StartedAt)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

func (r *postgresRepo) GetSessionByID(ctx context.Context, id uuid.UUID) (*Session, error) {
	query := `
		SELECT id, facility_id, guest_name, status, started_at, ended_at, amount, payment_method
		FROM facility_sessions WHERE id = $1`
	s := &Session{}
	var method sql.NullString
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&s.ID, &s.FacilityID, &s.GuestName, &s.Status, &s.StartedAt, &s.EndedAt, &s.Amount, &method)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("session not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	s.PaymentMethod = method.String
	return s, nil
}

func (r *postgresRepo) ListSessions(ctx context.Context, facilityID *uuid.UUID, status SessionStatus) ([]*Session, error) {
	query := `
		SELECT id, facility_id, guest_name, status, started_at, ended_at, amount, payment_method
		FROM facility_sessions WHERE 1=1`
	args := []interface{}{}
	if facilityID != nil {
		args = append(args, *facilityID)
		query += fmt.Sprintf(" AND facility_id = $%d", len(args))
	}
	if status != "" {
		args = append(args, status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	query += ` ORDER BY started_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var out []*Session
	for rows.Next() {
		s := &Session{}
		var method sql.NullString
		if err := rows.Scan(&s.ID, &s.FacilityID, &s.GuestName, &s.Status,
			&s.StartedAt, &s.EndedAt, &s.Amount, &method); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		s.PaymentMethod = method.String
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *postgresRepo) CountOpenSessions(ctx context.Context, facilityID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM facility_sessions WHERE facility_id = $1 AND status = $2`
	var n int
	if err := r.db.QueryRowContext(ctx, query, facilityID, SessionOpen).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count open sessions: %w", err)
	}
	return n, nil
}

func (r *postgresRepo) CloseSession(ctx context.Context, s *Session) error {
	query := `
		UPDATE facility_sessions
		SET status = $1, ended_at = $2, amount = $3, payment_method = $4
		WHERE id = $5 AND status = $6`
	res, err := r.db.ExecContext(ctx, query,
		SessionClosed, s.EndedAt, s.Amount, s.PaymentMethod, s.ID, SessionOpen)
	if err != nil {
		return fmt.Errorf("failed to close session: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("session %s is not open", s.ID)
	}
	return nil
}
