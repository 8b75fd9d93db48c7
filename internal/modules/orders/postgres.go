package orders

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lusakagrand/hoteldesk-backend/internal/modules/menu"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL orders repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) ListActiveOrders(ctx context.Context) ([]*Order, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id,guest_name,guest_type,table_id,room_number,status,
		       subtotal,tax_amount,total_amount,payment_method,created_at,updated_at
		FROM orders WHERE status=$1 ORDER BY created_at DESC`, StatusActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var orders []*Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, o := range orders {
		if o.Items, err = r.ListItems(ctx, o.ID); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (r *postgresRepo) InsertOrder(ctx context.Context, o *Order) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO orders
		  (id, guest_name, guest_type, table_id, room_number, status,
		   subtotal, tax_amount, total_amount)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		o.ID, o.GuestName, o.GuestType, o.TableID, o.RoomNumber, o.Status,
		o.Subtotal, o.TaxAmount, o.TotalAmount)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func (r *postgresRepo) UpdateTotals(ctx context.Context, id uuid.UUID, subtotal, tax, total float64) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE orders SET subtotal=$1, tax_amount=$2, total_amount=$3, updated_at=$4
		WHERE id=$5`,
		subtotal, tax, total, time.Now(), id)
	if err != nil {
		return fmt.Errorf("update order totals: %w", err)
	}
	return nil
}

func (r *postgresRepo) MarkPaid(ctx context.Context, id uuid.UUID, paymentMethod string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders SET status=$1, payment_method=$2, updated_at=$3
		WHERE id=$4 AND status=$5`,
		StatusPaid, paymentMethod, time.Now(), id, StatusActive)
	if err != nil {
		return fmt.Errorf("mark order paid: %w", err)
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return fmt.Errorf("order %s is not active", id)
	}
	return nil
}

// DeleteOrder removes items before the order inside one transaction; the
// foreign key requires that ordering.
func (r *postgresRepo) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM order_items WHERE order_id=$1`, id); err != nil {
		return fmt.Errorf("delete order items: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM orders WHERE id=$1`, id); err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	return tx.Commit()
}

func (r *postgresRepo) ListItems(ctx context.Context, orderID uuid.UUID) ([]*OrderItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id,order_id,menu_item_id,name,category,price,quantity,tax_rate,
		       special_instructions,status,created_at,updated_at
		FROM order_items WHERE order_id=$1 ORDER BY created_at ASC`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*OrderItem
	for rows.Next() {
		item := &OrderItem{}
		var category string
		if err := rows.Scan(&item.ID, &item.OrderID, &item.MenuItemID, &item.Name,
			&category, &item.Price, &item.Quantity, &item.TaxRate,
			&item.SpecialInstructions, &item.Status, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, err
		}
		item.Category = menu.Category(category)
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *postgresRepo) InsertItem(ctx context.Context, item *OrderItem) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO order_items
		  (id, order_id, menu_item_id, name, category, price, quantity, tax_rate,
		   special_instructions, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		item.ID, item.OrderID, item.MenuItemID, item.Name, item.Category,
		item.Price, item.Quantity, item.TaxRate, item.SpecialInstructions, item.Status)
	if err != nil {
		return fmt.Errorf("insert order item: %w", err)
	}
	return nil
}

func (r *postgresRepo) UpdateItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE order_items SET quantity=$1, updated_at=$2 WHERE id=$3`,
		quantity, time.Now(), itemID)
	if err != nil {
		return fmt.Errorf("update item quantity: %w", err)
	}
	return nil
}

func (r *postgresRepo) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM order_items WHERE id=$1`, itemID)
	if err != nil {
		return fmt.Errorf("delete order item: %w", err)
	}
	return nil
}

// ── helpers ──────────────────────────────────────────────────────────────────

type rowScanner interface{ Scan(dest ...interface{}) error }

func scanOrder(row rowScanner) (*Order, error) {
	o := &Order{}
	var tableID sql.NullString
	var paymentMethod sql.NullString
	err := row.Scan(&o.ID, &o.GuestName, &o.GuestType, &tableID, &o.RoomNumber,
		&o.Status, &o.Subtotal, &o.TaxAmount, &o.TotalAmount, &paymentMethod,
		&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if tableID.Valid {
		tid, err := uuid.Parse(tableID.String)
		if err == nil {
			o.TableID = &tid
		}
	}
	if paymentMethod.Valid {
		o.PaymentMethod = paymentMethod.String
	}
	return o, nil
}
