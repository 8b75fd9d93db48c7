package menu

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Service defines menu management business logic.
type Service interface {
	// CreateItem validates and persists a new menu item.
	CreateItem(ctx context.Context, req CreateMenuItemRequest) (*MenuItem, error)

	// GetItem retrieves a menu item with its recipe.
	GetItem(ctx context.Context, id uuid.UUID) (*MenuItem, error)

	// ListItems returns menu items, optionally filtered by category.
	ListItems(ctx context.Context, category string, availableOnly bool) ([]*MenuItem, error)

	// UpdateItem applies edits to an existing menu item.
	UpdateItem(ctx context.Context, id uuid.UUID, req UpdateMenuItemRequest) (*MenuItem, error)

	// SetAvailability toggles whether an item can be ordered.
	SetAvailability(ctx context.Context, id uuid.UUID, available bool) error

	// SetRecipe replaces the item's recipe.
	SetRecipe(ctx context.Context, id uuid.UUID, req SetRecipeRequest) (*MenuItem, error)

	// DeleteItem removes a menu item.
	DeleteItem(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo Repository
}

// NewService creates a new menu service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateItem(ctx context.Context, req CreateMenuItemRequest) (*MenuItem, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if req.Price < 0 {
		return nil, fmt.Errorf("price must not be negative")
	}
	category := Category(strings.ToUpper(req.Category))
	if !ValidCategory(category) {
		return nil, fmt.Errorf("invalid category %q", req.Category)
	}
	if req.TaxRate != nil && (*req.TaxRate < 0 || *req.TaxRate > 100) {
		return nil, fmt.Errorf("invalid tax_rate: must be a percentage between 0 and 100")
	}

	currency := req.Currency
	if currency == "" {
		currency = "ZMW"
	}

	m := &MenuItem{
		ID:             uuid.New(),
		Name:           req.Name,
		Description:    req.Description,
		Category:       category,
		Price:          req.Price,
		Currency:       currency,
		TaxRate:        req.TaxRate,
		TrackInventory: req.TrackInventory,
		IsAvailable:    true,
	}
	if req.InventoryItemID != "" {
		invID, err := uuid.Parse(req.InventoryItemID)
		if err != nil {
			return nil, fmt.Errorf("invalid inventory_item_id: %w", err)
		}
		m.InventoryItemID = &invID
	}
	if m.TrackInventory && m.InventoryItemID == nil {
		return nil, fmt.Errorf("inventory_item_id is required when track_inventory is set")
	}

	if err := s.repo.CreateItem(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *service) GetItem(ctx context.Context, id uuid.UUID) (*MenuItem, error) {
	return s.repo.GetItemByID(ctx, id)
}

func (s *service) ListItems(ctx context.Context, category string, availableOnly bool) ([]*MenuItem, error) {
	var c Category
	if category != "" {
		c = Category(strings.ToUpper(category))
		if !ValidCategory(c) {
			return nil, fmt.Errorf("invalid category %q", category)
		}
	}
	return s.repo.ListItems(ctx, c, availableOnly)
}

func (s *service) UpdateItem(ctx context.Context, id uuid.UUID, req UpdateMenuItemRequest) (*MenuItem, error) {
	m, err := s.repo.GetItemByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("menu item not found: %w", err)
	}
	if req.Name != "" {
		m.Name = req.Name
	}
	if req.Description != "" {
		m.Description = req.Description
	}
	if req.Category != "" {
		category := Category(strings.ToUpper(req.Category))
		if !ValidCategory(category) {
			return nil, fmt.Errorf("invalid category %q", req.Category)
		}
		m.Category = category
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, fmt.Errorf("price must not be negative")
		}
		m.Price = *req.Price
	}
	if req.TaxRate != nil {
		if *req.TaxRate < 0 || *req.TaxRate > 100 {
			return nil, fmt.Errorf("invalid tax_rate: must be a percentage between 0 and 100")
		}
		m.TaxRate = req.TaxRate
	}
	if err := s.repo.UpdateItem(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *service) SetAvailability(ctx context.Context, id uuid.UUID, available bool) error {
	return s.repo.SetAvailability(ctx, id, available)
}

func (s *service) SetRecipe(ctx context.Context, id uuid.UUID, req SetRecipeRequest) (*MenuItem, error) {
	if _, err := s.repo.GetItemByID(ctx, id); err != nil {
		return nil, fmt.Errorf("menu item not found: %w", err)
	}
	ingredients := make([]*RecipeIngredient, 0, len(req.Ingredients))
	for _, line := range req.Ingredients {
		invID, err := uuid.Parse(line.InventoryItemID)
		if err != nil {
			return nil, fmt.Errorf("invalid inventory_item_id: %w", err)
		}
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("ingredient quantity must be > 0")
		}
		ingredients = append(ingredients, &RecipeIngredient{
			ID:              uuid.New(),
			MenuItemID:      id,
			InventoryItemID: invID,
			Quantity:        line.Quantity,
			Unit:            line.Unit,
		})
	}
	if err := s.repo.ReplaceRecipe(ctx, id, ingredients); err != nil {
		return nil, err
	}
	return s.repo.GetItemByID(ctx, id)
}

func (s *service) DeleteItem(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteItem(ctx, id)
}
