package supplier

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

// NewPostgresRepository creates a PostgreSQL-backed supplier repository.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepo{db: db}
}

const supplierColumns = `id, name, contact_name, phone, email, address, active, created_at, updated_at`

func (r *postgresRepo) CreateSupplier(ctx context.Context, s *Supplier) error {
	query := `
		INSERT INTO suppliers (id, name, contact_name, phone, email, address, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID, s.Name, s.ContactName, s.Phone, s.Email, s.Address, s.Active)
	if err != nil {
		return fmt.Errorf("failed to create supplier: %w", err)
	}
	return nil
}

func (r *postgresRepo) GetSupplierByID(ctx context.Context, id uuid.UUID) (*Supplier, error) {
	query := `SELECT ` + supplierColumns + ` FROM suppliers WHERE id = $1`
	s := &Supplier{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&s.ID, &s.Name, &s.ContactName, &s.Phone, &s.Email, &s.Address,
		&s.Active, &s.CreatedAt, &s.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("supplier not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get supplier: %w", err)
	}
	return s, nil
}

func (r *postgresRepo) ListSuppliers(ctx context.Context, activeOnly bool) ([]*Supplier, error) {
	query := `SELECT ` + supplierColumns + ` FROM suppliers`
	if activeOnly {
		query += ` WHERE active = TRUE`
	}
	query += ` ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list suppliers: %w", err)
	}
	defer rows.Close()

	var out []*Supplier
	for rows.Next() {
		s := &Supplier{}
		if err := rows.Scan(&s.ID, &s.Name, &s.ContactName, &s.Phone, &s.Email, &s.Address,
			&s.Active, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan supplier: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *postgresRepo) UpdateSupplier(ctx context.Context, s *Supplier) error {
	query := `
		UPDATE suppliers
		SET contact_name = $1, phone = $2, email = $3, address = $4, active = $5, updated_at = $6
		WHERE id = $7`
	res, err := r.db.ExecContext(ctx, query,
		s.ContactName, s.Phone, s.Email, s.Address, s.Active, time.Now(), s.ID)
	if err != nil {
		return fmt.Errorf("failed to update supplier: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("supplier %s not found", s.ID)
	}
	return nil
}

func (r *postgresRepo) CreateDelivery(ctx context.Context, d *Delivery) error {
	query := `
		INSERT INTO deliveries (id, supplier_id, inventory_item_id, quantity, unit_cost, total_cost, notes, received_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.ExecContext(ctx, query,
		d.ID, d.SupplierID, d.InventoryItemID, d.Quantity, d.UnitCost, d.TotalCost, d.Notes, d.ReceivedAt)
	if err != nil {
		return fmt.Errorf("failed to create delivery: %w", err)
	}
	return nil
}

func (r *postgresRepo) ListDeliveries(ctx context.Context, supplierID *uuid.UUID) ([]*Delivery, error) {
	query := `
		SELECT id, supplier_id, inventory_item_id, quantity, unit_cost, total_cost, notes, received_at
		FROM deliveries`
	args := []interface{}{}
	if supplierID != nil {
		query += ` WHERE supplier_id = $1`
		args = append(args, *supplierID)
	}
	query += ` ORDER BY received_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list deliveries: %w", err)
	}
	defer rows.Close()

	var out []*Delivery
	for rows.Next() {
		d := &Delivery{}
		if err := rows.Scan(&d.ID, &d.SupplierID, &d.InventoryItemID, &d.Quantity,
			&d.UnitCost, &d.TotalCost, &d.Notes, &d.ReceivedAt); err != nil {
			return nil, fmt.Errorf("failed to scan delivery: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
