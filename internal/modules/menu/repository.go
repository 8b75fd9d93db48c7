package menu

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines data access for menu items and recipes.
type Repository interface {
	// CreateItem persists a new menu item.
	CreateItem(ctx context.Context, m *MenuItem) error

	// GetItemByID retrieves a menu item with its recipe.
	GetItemByID(ctx context.Context, id uuid.UUID) (*MenuItem, error)

	// ListItems returns menu items, optionally filtered by category and availability.
	ListItems(ctx context.Context, category Category, availableOnly bool) ([]*MenuItem, error)

	// UpdateItem persists edited fields of a menu item.
	UpdateItem(ctx context.Context, m *MenuItem) error

	// SetAvailability toggles whether an item can be ordered.
	SetAvailability(ctx context.Context, id uuid.UUID, available bool) error

	// ReplaceRecipe deletes and re-inserts the item's recipe atomically.
	ReplaceRecipe(ctx context.Context, menuItemID uuid.UUID, ingredients []*RecipeIngredient) error

	// DeleteItem removes a menu item and its recipe.
	DeleteItem(ctx context.Context, id uuid.UUID) error
}
