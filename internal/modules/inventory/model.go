package inventory

import (
	"time"

	"github.com/google/uuid"
)

// InventoryItem is a stocked ingredient or sellable unit tracked by quantity.
type InventoryItem struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	Unit         string     `json:"unit"` // e.g. "kg", "l", "bottle", "piece"
	Quantity     float64    `json:"quantity"`
	ReorderLevel float64    `json:"reorder_level"`
	UnitCost     float64    `json:"unit_cost"`
	SupplierID   *uuid.UUID `json:"supplier_id,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// CreateItemRequest is the payload for adding a stock item.
type CreateItemRequest struct {
	Name         string  `json:"name"`
	Unit         string  `json:"unit"`
	Quantity     float64 `json:"quantity,omitempty"`
	ReorderLevel float64 `json:"reorder_level,omitempty"`
	UnitCost     float64 `json:"unit_cost,omitempty"`
	SupplierID   string  `json:"supplier_id,omitempty"`
}

// AdjustStockRequest is the payload for a manual stock correction.
type AdjustStockRequest struct {
	Delta  float64 `json:"delta"` // positive restocks, negative writes off
	Reason string  `json:"reason,omitempty"`
}
