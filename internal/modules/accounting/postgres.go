package accounting

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL accounting repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) CreateEntry(ctx context.Context, e *Entry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO account_entries
		  (id, type, amount, description, source_ref, payment_method, guest_name, entry_date)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		e.ID, e.Type, e.Amount, e.Description, e.SourceRef, e.PaymentMethod, e.GuestName, e.EntryDate)
	if err != nil {
		return fmt.Errorf("insert account_entry: %w", err)
	}
	return nil
}

func (r *postgresRepo) GetEntryByID(ctx context.Context, id uuid.UUID) (*Entry, error) {
	e := &Entry{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id,type,amount,description,source_ref,payment_method,guest_name,entry_date,created_at
		FROM account_entries WHERE id=$1`, id).
		Scan(&e.ID, &e.Type, &e.Amount, &e.Description, &e.SourceRef,
			&e.PaymentMethod, &e.GuestName, &e.EntryDate, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *postgresRepo) ListEntries(ctx context.Context, from, to time.Time, entryType EntryType) ([]*Entry, error) {
	query := `SELECT id,type,amount,description,source_ref,payment_method,guest_name,entry_date,created_at
	          FROM account_entries WHERE entry_date >= $1 AND entry_date < $2`
	args := []interface{}{from, to}
	if entryType != "" {
		query += ` AND type=$3`
		args = append(args, entryType)
	}
	query += ` ORDER BY entry_date DESC, created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var entries []*Entry
	for rows.Next() {
		e := &Entry{}
		if err := rows.Scan(&e.ID, &e.Type, &e.Amount, &e.Description, &e.SourceRef,
			&e.PaymentMethod, &e.GuestName, &e.EntryDate, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
