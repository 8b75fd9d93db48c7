package orders

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the persistent store for orders and their line items.
// The Store treats the repository as the source of truth: totals are always
// recomputed from a fresh ListItems read, never from cached state.
type Repository interface {
	// ListActiveOrders returns all ACTIVE orders with their items, newest first.
	ListActiveOrders(ctx context.Context) ([]*Order, error)

	// InsertOrder persists a new order row.
	InsertOrder(ctx context.Context, o *Order) error

	// UpdateTotals persists recomputed subtotal/tax/total on an order.
	UpdateTotals(ctx context.Context, id uuid.UUID, subtotal, tax, total float64) error

	// MarkPaid transitions an order to PAID with the given payment method.
	MarkPaid(ctx context.Context, id uuid.UUID, paymentMethod string) error

	// DeleteOrder removes the order's items first, then the order itself
	// (items reference the order by foreign key).
	DeleteOrder(ctx context.Context, id uuid.UUID) error

	// ListItems returns the currently persisted line items for an order.
	ListItems(ctx context.Context, orderID uuid.UUID) ([]*OrderItem, error)

	// InsertItem persists a new line item.
	InsertItem(ctx context.Context, item *OrderItem) error

	// UpdateItemQuantity sets a line item's quantity.
	UpdateItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error

	// DeleteItem removes a line item.
	DeleteItem(ctx context.Context, itemID uuid.UUID) error
}
