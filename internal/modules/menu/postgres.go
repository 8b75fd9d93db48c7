package menu

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL menu repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) CreateItem(ctx context.Context, m *MenuItem) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO menu_items
		  (id, name, description, category, price, currency, tax_rate,
		   track_inventory, inventory_item_id, is_available)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		m.ID, m.Name, m.Description, m.Category, m.Price, m.Currency, m.TaxRate,
		m.TrackInventory, m.InventoryItemID, m.IsAvailable)
	if err != nil {
		return fmt.Errorf("insert menu_item: %w", err)
	}
	return nil
}

func (r *postgresRepo) GetItemByID(ctx context.Context, id uuid.UUID) (*MenuItem, error) {
	m, err := r.scanItem(r.db.QueryRowContext(ctx, `
		SELECT id,name,description,category,price,currency,tax_rate,
		       track_inventory,inventory_item_id,is_available,created_at,updated_at
		FROM menu_items WHERE id=$1`, id))
	if err != nil {
		return nil, err
	}
	m.Recipe, err = r.listRecipe(ctx, m.ID)
	return m, err
}

func (r *postgresRepo) ListItems(ctx context.Context, category Category, availableOnly bool) ([]*MenuItem, error) {
	query := `SELECT id,name,description,category,price,currency,tax_rate,
	                 track_inventory,inventory_item_id,is_available,created_at,updated_at
	          FROM menu_items WHERE 1=1`
	args := []interface{}{}
	if category != "" {
		args = append(args, category)
		query += fmt.Sprintf(` AND category=$%d`, len(args))
	}
	if availableOnly {
		query += ` AND is_available`
	}
	query += ` ORDER BY category ASC, name ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*MenuItem
	for rows.Next() {
		m, err := r.scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

func (r *postgresRepo) UpdateItem(ctx context.Context, m *MenuItem) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE menu_items
		SET name=$1, description=$2, category=$3, price=$4, tax_rate=$5, updated_at=$6
		WHERE id=$7`,
		m.Name, m.Description, m.Category, m.Price, m.TaxRate, time.Now(), m.ID)
	return err
}

func (r *postgresRepo) SetAvailability(ctx context.Context, id uuid.UUID, available bool) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE menu_items SET is_available=$1, updated_at=$2 WHERE id=$3`,
		available, time.Now(), id)
	return err
}

// ReplaceRecipe swaps the whole recipe in a single transaction so the
// payment-time deduction never sees a half-written ingredient list.
func (r *postgresRepo) ReplaceRecipe(ctx context.Context, menuItemID uuid.UUID, ingredients []*RecipeIngredient) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM recipe_ingredients WHERE menu_item_id=$1`, menuItemID); err != nil {
		return fmt.Errorf("clear recipe: %w", err)
	}
	for _, ing := range ingredients {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO recipe_ingredients (id, menu_item_id, inventory_item_id, quantity, unit)
			VALUES ($1,$2,$3,$4,$5)`,
			ing.ID, menuItemID, ing.InventoryItemID, ing.Quantity, ing.Unit)
		if err != nil {
			return fmt.Errorf("insert recipe_ingredient: %w", err)
		}
	}
	return tx.Commit()
}

func (r *postgresRepo) DeleteItem(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM recipe_ingredients WHERE menu_item_id=$1`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM menu_items WHERE id=$1`, id); err != nil {
		return err
	}
	return tx.Commit()
}

// ── helpers ──────────────────────────────────────────────────────────────────

type rowScanner interface{ Scan(dest ...interface{}) error }

func (r *postgresRepo) scanItem(row rowScanner) (*MenuItem, error) {
	m := &MenuItem{}
	var taxRate sql.NullFloat64
	var invID sql.NullString
	err := row.Scan(&m.ID, &m.Name, &m.Description, &m.Category, &m.Price, &m.Currency,
		&taxRate, &m.TrackInventory, &invID, &m.IsAvailable, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if taxRate.Valid {
		v := taxRate.Float64
		m.TaxRate = &v
	}
	if invID.Valid {
		id, err := uuid.Parse(invID.String)
		if err == nil {
			m.InventoryItemID = &id
		}
	}
	return m, nil
}

func (r *postgresRepo) listRecipe(ctx context.Context, menuItemID uuid.UUID) ([]*RecipeIngredient, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, menu_item_id, inventory_item_id, quantity, unit
		FROM recipe_ingredients WHERE menu_item_id=$1`, menuItemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*RecipeIngredient
	for rows.Next() {
		ing := &RecipeIngredient{}
		if err := rows.Scan(&ing.ID, &ing.MenuItemID, &ing.InventoryItemID, &ing.Quantity, &ing.Unit); err != nil {
			return nil, err
		}
		out = append(out, ing)
	}
	return out, rows.Err()
}
