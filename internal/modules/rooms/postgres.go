package rooms

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

// NewPostgresRepository creates a PostgreSQL-backed room repository.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepo{db: db}
}

const roomColumns = `id, number, type, rate, floor, status, notes, created_at, updated_at`

func (r *postgresRepo) CreateRoom(ctx context.Context, room *Room) error {
	query := `
		INSERT INTO rooms (id, number, type, rate, floor, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.ExecContext(ctx, query,
		room.ID, room.Number, room.Type, room.Rate, room.Floor, room.Status, room.Notes)
	if err != nil {
		return fmt.Errorf("failed to create room: %w", err)
	}
	return nil
}

func (r *postgresRepo) GetRoomByID(ctx context.Context, id uuid.UUID) (*Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms WHERE id = $1`
	return r.scanRoom(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresRepo) GetRoomByNumber(ctx context.Context, number string) (*Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms WHERE number = $1`
	return r.scanRoom(r.db.QueryRowContext(ctx, query, number))
}

func (r *postgresRepo) ListRooms(ctx context.Context, status Status) ([]*Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms`
	args := []interface{}{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY number`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	defer rows.Close()

	var out []*Room
	for rows.Next() {
		room := &Room{}
		if err := rows.Scan(&room.ID, &room.Number, &room.Type, &room.Rate, &room.Floor,
			&room.Status, &room.Notes, &room.CreatedAt, &room.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan room: %w", err)
		}
		out = append(out, room)
	}
	return out, rows.Err()
}

func (r *postgresRepo) UpdateRoom(ctx context.Context, room *Room) error {
	query := `
		UPDATE rooms
		SET type = $1, rate = $2, floor = $3, notes = $4, updated_at = $5
		WHERE id = $6`
	res, err := r.db.ExecContext(ctx, query,
		room.Type, room.Rate, room.Floor, room.Notes, time.Now(), room.ID)
	if err != nil {
		return fmt.Errorf("failed to update room: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("room %s not found", room.ID)
	}
	return nil
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	query := `UPDATE rooms SET status = $1, updated_at = $2 WHERE id = $3`
	res, err := r.db.ExecContext(ctx, query, status, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update room status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("room %s not found", id)
	}
	return nil
}

func (r *postgresRepo) DeleteRoom(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM rooms WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete room: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("room %s not found", id)
	}
	return nil
}

func (r *postgresRepo) scanRoom(row *sql.Row) (*Room, error) {
	room := &Room{}
	err := row.Scan(&room.ID, &room.Number, &room.Type, &room.Rate, &room.Floor,
		&room.Status, &room.Notes, &room.CreatedAt, &room.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("room not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}
	return room, nil
}
