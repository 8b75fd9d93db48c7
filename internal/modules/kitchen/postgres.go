package kitchen

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL kitchen repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) CreateTicket(ctx context.Context, t *Ticket) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO kitchen_orders
		  (id, order_id, guest_name, status, priority, estimated_minutes)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		t.ID, t.OrderID, t.GuestName, t.Status, t.Priority, t.EstimatedMinutes)
	if err != nil {
		return fmt.Errorf("insert kitchen_order: %w", err)
	}

	for _, item := range t.Items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO kitchen_order_items
			  (id, ticket_id, order_item_id, name, quantity, special_instructions)
			VALUES ($1,$2,$3,$4,$5,$6)`,
			item.ID, t.ID, item.OrderItemID, item.Name, item.Quantity, item.SpecialInstructions)
		if err != nil {
			return fmt.Errorf("insert kitchen_order_item: %w", err)
		}
	}

	return tx.Commit()
}

func (r *postgresRepo) GetTicketByID(ctx context.Context, id uuid.UUID) (*Ticket, error) {
	t := &Ticket{}
	var startedAt, readyAt sql.NullTime
	err := r.db.QueryRowContext(ctx, `
		SELECT id,order_id,guest_name,status,priority,estimated_minutes,
		       started_at,ready_at,created_at,updated_at
		FROM kitchen_orders WHERE id=$1`, id).
		Scan(&t.ID, &t.OrderID, &t.GuestName, &t.Status, &t.Priority, &t.EstimatedMinutes,
			&startedAt, &readyAt, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if startedAt.Valid {
		t.StartedAt = &startedAt.Time
	}
	if readyAt.Valid {
		t.ReadyAt = &readyAt.Time
	}
	t.Items, err = r.listItems(ctx, t.ID)
	return t, err
}

func (r *postgresRepo) ListTickets(ctx context.Context, status TicketStatus) ([]*Ticket, error) {
	query := `SELECT id,order_id,guest_name,status,priority,estimated_minutes,
	                 started_at,ready_at,created_at,updated_at
	          FROM kitchen_orders`
	args := []interface{}{}
	if status != "" {
		query += ` WHERE status=$1`
		args = append(args, status)
	}
	query += ` ORDER BY priority DESC, created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var tickets []*Ticket
	for rows.Next() {
		t := &Ticket{}
		var startedAt, readyAt sql.NullTime
		if err := rows.Scan(&t.ID, &t.OrderID, &t.GuestName, &t.Status, &t.Priority,
			&t.EstimatedMinutes, &startedAt, &readyAt, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		if startedAt.Valid {
			t.StartedAt = &startedAt.Time
		}
		if readyAt.Valid {
			t.ReadyAt = &readyAt.Time
		}
		tickets = append(tickets, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, t := range tickets {
		if t.Items, err = r.listItems(ctx, t.ID); err != nil {
			return nil, err
		}
	}
	return tickets, nil
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status TicketStatus) error {
	now := time.Now()
	query := `UPDATE kitchen_orders SET status=$1, updated_at=$2`
	switch status {
	case TicketInProgress:
		query += `, started_at=$2`
	case TicketReady:
		query += `, ready_at=$2`
	}
	query += ` WHERE id=$3`
	_, err := r.db.ExecContext(ctx, query, status, now, id)
	return err
}

// ── helpers ──────────────────────────────────────────────────────────────────

func (r *postgresRepo) listItems(ctx context.Context, ticketID uuid.UUID) ([]*TicketItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, ticket_id, order_item_id, name, quantity, special_instructions
		FROM kitchen_order_items WHERE ticket_id=$1`, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*TicketItem
	for rows.Next() {
		item := &TicketItem{}
		if err := rows.Scan(&item.ID, &item.TicketID, &item.OrderItemID,
			&item.Name, &item.Quantity, &item.SpecialInstructions); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
