package inventory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Service defines stock management business logic. DecrementStock and
// DeductRecipeIngredients are called by the POS payment pipeline.
type Service interface {
	CreateItem(ctx context.Context, req CreateItemRequest) (*InventoryItem, error)
	GetItem(ctx context.Context, id uuid.UUID) (*InventoryItem, error)
	ListItems(ctx context.Context) ([]*InventoryItem, error)
	ListLowStock(ctx context.Context) ([]*InventoryItem, error)

	// AdjustStock applies a manual correction (positive or negative delta).
	AdjustStock(ctx context.Context, id uuid.UUID, req AdjustStockRequest) (*InventoryItem, error)

	// AddStock restocks an item, e.g. from a supplier delivery.
	AddStock(ctx context.Context, id uuid.UUID, qty float64) error

	// DecrementStock subtracts sold quantity, floored at zero.
	DecrementStock(ctx context.Context, id uuid.UUID, qty float64) error

	// DeductRecipeIngredients atomically subtracts a menu item's recipe.
	DeductRecipeIngredients(ctx context.Context, menuItemID uuid.UUID, qtySold int) error

	DeleteItem(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo Repository
}

// NewService creates a new inventory service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateItem(ctx context.Context, req CreateItemRequest) (*InventoryItem, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if req.Unit == "" {
		return nil, fmt.Errorf("unit is required")
	}
	if req.Quantity < 0 || req.ReorderLevel < 0 || req.UnitCost < 0 {
		return nil, fmt.Errorf("quantity, reorder_level and unit_cost must not be negative")
	}

	it := &InventoryItem{
		ID:           uuid.New(),
		Name:         req.Name,
		Unit:         req.Unit,
		Quantity:     req.Quantity,
		ReorderLevel: req.ReorderLevel,
		UnitCost:     req.UnitCost,
	}
	if req.SupplierID != "" {
		sid, err := uuid.Parse(req.SupplierID)
		if err != nil {
			return nil, fmt.Errorf("invalid supplier_id: %w", err)
		}
		it.SupplierID = &sid
	}
	if err := s.repo.CreateItem(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *service) GetItem(ctx context.Context, id uuid.UUID) (*InventoryItem, error) {
	return s.repo.GetItemByID(ctx, id)
}

func (s *service) ListItems(ctx context.Context) ([]*InventoryItem, error) {
	return s.repo.ListItems(ctx)
}

func (s *service) ListLowStock(ctx context.Context) ([]*InventoryItem, error) {
	return s.repo.ListLowStock(ctx)
}

func (s *service) AdjustStock(ctx context.Context, id uuid.UUID, req AdjustStockRequest) (*InventoryItem, error) {
	if req.Delta == 0 {
		return nil, fmt.Errorf("delta must not be zero")
	}
	var err error
	if req.Delta > 0 {
		err = s.repo.AddStock(ctx, id, req.Delta)
	} else {
		err = s.repo.DecrementStock(ctx, id, -req.Delta)
	}
	if err != nil {
		return nil, err
	}
	return s.repo.GetItemByID(ctx, id)
}

func (s *service) AddStock(ctx context.Context, id uuid.UUID, qty float64) error {
	if qty <= 0 {
		return fmt.Errorf("quantity must be > 0")
	}
	return s.repo.AddStock(ctx, id, qty)
}

func (s *service) DecrementStock(ctx context.Context, id uuid.UUID, qty float64) error {
	if qty <= 0 {
		return fmt.Errorf("quantity must be > 0")
	}
	return s.repo.DecrementStock(ctx, id, qty)
}

func (s *service) DeductRecipeIngredients(ctx context.Context, menuItemID uuid.UUID, qtySold int) error {
	if qtySold <= 0 {
		return fmt.Errorf("quantity sold must be > 0")
	}
	return s.repo.DeductRecipeIngredients(ctx, menuItemID, qtySold)
}

func (s *service) DeleteItem(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteItem(ctx, id)
}
