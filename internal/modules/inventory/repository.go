package inventory

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines data access for stock items.
type Repository interface {
	// CreateItem persists a new stock item.
	CreateItem(ctx context.Context, it *InventoryItem) error

	// GetItemByID retrieves a stock item.
	GetItemByID(ctx context.Context, id uuid.UUID) (*InventoryItem, error)

	// ListItems returns all stock items ordered by name.
	ListItems(ctx context.Context) ([]*InventoryItem, error)

	// ListLowStock returns items at or below their reorder level.
	ListLowStock(ctx context.Context) ([]*InventoryItem, error)

	// DecrementStock subtracts qty from an item's quantity, floored at zero,
	// and stamps updated_at.
	DecrementStock(ctx context.Context, id uuid.UUID, qty float64) error

	// AddStock adds qty to an item's quantity and stamps updated_at.
	AddStock(ctx context.Context, id uuid.UUID, qty float64) error

	// DeductRecipeIngredients invokes the server-side routine that subtracts
	// every ingredient of a menu item's recipe in one atomic statement.
	DeductRecipeIngredients(ctx context.Context, menuItemID uuid.UUID, qtySold int) error

	// DeleteItem removes a stock item.
	DeleteItem(ctx context.Context, id uuid.UUID) error
}
