package tables

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

// NewPostgresRepository creates a PostgreSQL-backed table repository.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepo{db: db}
}

func (r *postgresRepo) CreateTable(ctx context.Context, table *Table) error {
	query := `
		INSERT INTO dining_tables (id, number, seats, status)
		VALUES ($1, $2, $3, $4)`
	_, err := r.db.ExecContext(ctx, query, table.ID, table.Number, table.Seats, table.Status)
	if err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}
	return nil
}

func (r *postgresRepo) GetTableByID(ctx context.Context, id uuid.UUID) (*Table, error) {
	query := `
		SELECT id, number, seats, status, created_at, updated_at
		FROM dining_tables WHERE id = $1`
	t := &Table{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&t.ID, &t.Number, &t.Seats, &t.Status, &t.CreatedAt, &t.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("table not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get table: %w", err)
	}
	return t, nil
}

func (r *postgresRepo) ListTables(ctx context.Context) ([]*Table, error) {
	query := `
		SELECT id, number, seats, status, created_at, updated_at
		FROM dining_tables ORDER BY number`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	defer rows.Close()

	var out []*Table
	for rows.Next() {
		t := &Table{}
		if err := rows.Scan(&t.ID, &t.Number, &t.Seats, &t.Status, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan table: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	query := `UPDATE dining_tables SET status = $1, updated_at = $2 WHERE id = $3`
	res, err := r.db.ExecContext(ctx, query, status, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update table status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("table %s not found", id)
	}
	return nil
}

func (r *postgresRepo) UpdateStatusIf(ctx context.Context, id uuid.UUID, from, to Status) (bool, error) {
	query := `UPDATE dining_tables SET status = $1, updated_at = $2 WHERE id = $3 AND status = $4`
	res, err := r.db.ExecContext(ctx, query, to, time.Now(), id, from)
	if err != nil {
		return false, fmt.Errorf("failed to update table status: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *postgresRepo) DeleteTable(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM dining_tables WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete table: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("table %s not found", id)
	}
	return nil
}
