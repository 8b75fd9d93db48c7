package supplier

import (
	"time"

	"github.com/google/uuid"
)

// Supplier is a vendor the hotel buys stock from.
type Supplier struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	ContactName string    `json:"contact_name,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Email       string    `json:"email,omitempty"`
	Address     string    `json:"address,omitempty"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Delivery records stock received from a supplier. TotalCost feeds the
// expense ledger; Quantity feeds inventory.
type Delivery struct {
	ID              uuid.UUID `json:"id"`
	SupplierID      uuid.UUID `json:"supplier_id"`
	InventoryItemID uuid.UUID `json:"inventory_item_id"`
	Quantity        float64   `json:"quantity"`
	UnitCost        float64   `json:"unit_cost"`
	TotalCost       float64   `json:"total_cost"`
	Notes           string    `json:"notes,omitempty"`
	ReceivedAt      time.Time `json:"received_at"`
}

// CreateSupplierRequest is the payload for registering a supplier.
type CreateSupplierRequest struct {
	Name        string `json:"name"`
	ContactName string `json:"contact_name"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Address     string `json:"address"`
}

// UpdateSupplierRequest is the payload for updating supplier details.
type UpdateSupplierRequest struct {
	ContactName *string `json:"contact_name"`
	Phone       *string `json:"phone"`
	Email       *string `json:"email"`
	Address     *string `json:"address"`
	Active      *bool   `json:"active"`
}

// RecordDeliveryRequest is the payload for receiving a delivery.
type RecordDeliveryRequest struct {
	SupplierID      string  `json:"supplier_id"`
	InventoryItemID string  `json:"inventory_item_id"`
	Quantity        float64 `json:"quantity"`
	UnitCost        float64 `json:"unit_cost"`
	Notes           string  `json:"notes"`
}
