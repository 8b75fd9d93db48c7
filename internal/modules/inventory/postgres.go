package inventory

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL inventory repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) CreateItem(ctx context.Context, it *InventoryItem) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO inventory
		  (id, name, unit, quantity, reorder_level, unit_cost, supplier_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		it.ID, it.Name, it.Unit, it.Quantity, it.ReorderLevel, it.UnitCost, it.SupplierID)
	if err != nil {
		return fmt.Errorf("insert inventory item: %w", err)
	}
	return nil
}

func (r *postgresRepo) GetItemByID(ctx context.Context, id uuid.UUID) (*InventoryItem, error) {
	return scanItem(r.db.QueryRowContext(ctx, `
		SELECT id,name,unit,quantity,reorder_level,unit_cost,supplier_id,created_at,updated_at
		FROM inventory WHERE id=$1`, id))
}

func (r *postgresRepo) ListItems(ctx context.Context) ([]*InventoryItem, error) {
	return r.queryItems(ctx, `
		SELECT id,name,unit,quantity,reorder_level,unit_cost,supplier_id,created_at,updated_at
		FROM inventory ORDER BY name ASC`)
}

func (r *postgresRepo) ListLowStock(ctx context.Context) ([]*InventoryItem, error) {
	return r.queryItems(ctx, `
		SELECT id,name,unit,quantity,reorder_level,unit_cost,supplier_id,created_at,updated_at
		FROM inventory WHERE quantity <= reorder_level ORDER BY name ASC`)
}

func (r *postgresRepo) DecrementStock(ctx context.Context, id uuid.UUID, qty float64) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE inventory
		SET quantity = GREATEST(quantity - $1, 0), updated_at = $2
		WHERE id = $3`,
		qty, time.Now(), id)
	if err != nil {
		return fmt.Errorf("decrement stock: %w", err)
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return fmt.Errorf("inventory item %s not found", id)
	}
	return nil
}

func (r *postgresRepo) AddStock(ctx context.Context, id uuid.UUID, qty float64) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE inventory
		SET quantity = quantity + $1, updated_at = $2
		WHERE id = $3`,
		qty, time.Now(), id)
	if err != nil {
		return fmt.Errorf("add stock: %w", err)
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return fmt.Errorf("inventory item %s not found", id)
	}
	return nil
}

// DeductRecipeIngredients calls the deduct_recipe_ingredients SQL function.
// The function walks the menu item's recipe and applies every decrement in
// one statement, so concurrent sales never interleave partial deductions.
func (r *postgresRepo) DeductRecipeIngredients(ctx context.Context, menuItemID uuid.UUID, qtySold int) error {
	if _, err := r.db.ExecContext(ctx,
		`SELECT deduct_recipe_ingredients($1, $2)`, menuItemID, qtySold); err != nil {
		return fmt.Errorf("deduct recipe ingredients for %s: %w", menuItemID, err)
	}
	return nil
}

func (r *postgresRepo) DeleteItem(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM inventory WHERE id=$1`, id)
	return err
}

// ── helpers ──────────────────────────────────────────────────────────────────

type rowScanner interface{ Scan(dest ...interface{}) error }

func scanItem(row rowScanner) (*InventoryItem, error) {
	it := &InventoryItem{}
	var supplierID sql.NullString
	err := row.Scan(&it.ID, &it.Name, &it.Unit, &it.Quantity, &it.ReorderLevel,
		&it.UnitCost, &supplierID, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if supplierID.Valid {
		sid, err := uuid.Parse(supplierID.String)
		if err == nil {
			it.SupplierID = &sid
		}
	}
	return it, nil
}

func (r *postgresRepo) queryItems(ctx context.Context, query string, args ...interface{}) ([]*InventoryItem, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*InventoryItem
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
