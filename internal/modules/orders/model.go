package orders

import (
	"time"

	"github.com/google/uuid"

	"github.com/lusakagrand/hoteldesk-backend/internal/modules/menu"
)

// GuestType indicates who the order is for and how it will be settled.
type GuestType string

const (
	GuestRoom   GuestType = "ROOM"    // charged to a room
	GuestTable  GuestType = "TABLE"   // seated at a restaurant table
	GuestWalkIn GuestType = "WALK_IN" // standalone bar/restaurant guest
)

// ValidGuestType reports whether t is a known guest type.
func ValidGuestType(t GuestType) bool {
	switch t {
	case GuestRoom, GuestTable, GuestWalkIn:
		return true
	}
	return false
}

// OrderStatus represents the lifecycle state of a POS order.
type OrderStatus string

const (
	StatusActive    OrderStatus = "ACTIVE"
	StatusPaid      OrderStatus = "PAID"
	StatusCancelled OrderStatus = "CANCELLED"
)

// ItemStatus represents the preparation state of a line item.
type ItemStatus string

const (
	ItemPending   ItemStatus = "PENDING"
	ItemPreparing ItemStatus = "PREPARING"
	ItemReady     ItemStatus = "READY"
	ItemServed    ItemStatus = "SERVED"
)

// Order is a POS order for the restaurant, bar, or room service.
// TotalAmount always equals Subtotal + TaxAmount; all three are recomputed
// from the persisted line items after every item mutation.
type Order struct {
	ID            uuid.UUID    `json:"id"`
	GuestName     string       `json:"guest_name"`
	GuestType     GuestType    `json:"guest_type"`
	TableID       *uuid.UUID   `json:"table_id,omitempty"`     // set when GuestType == TABLE
	RoomNumber    string       `json:"room_number,omitempty"`  // set when GuestType == ROOM
	Status        OrderStatus  `json:"status"`
	Subtotal      float64      `json:"subtotal"`
	TaxAmount     float64      `json:"tax_amount"`
	TotalAmount   float64      `json:"total_amount"`
	PaymentMethod string       `json:"payment_method,omitempty"`
	Items         []*OrderItem `json:"items"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// OrderItem is a single line on an order. Quantity is always > 0; setting a
// quantity to zero deletes the line instead.
type OrderItem struct {
	ID                  uuid.UUID     `json:"id"`
	OrderID             uuid.UUID     `json:"order_id"`
	MenuItemID          uuid.UUID     `json:"menu_item_id"`
	Name                string        `json:"name"`
	Category            menu.Category `json:"category"`
	Price               float64       `json:"price"` // unit price snapshot at add time
	Quantity            int           `json:"quantity"`
	TaxRate             float64       `json:"tax_rate"` // percent, resolved at add time
	SpecialInstructions string        `json:"special_instructions,omitempty"`
	Status              ItemStatus    `json:"status"`
	CreatedAt           time.Time     `json:"created_at"`
	UpdatedAt           time.Time     `json:"updated_at"`
}

// LineTotal is the item's contribution to the order subtotal.
func (i *OrderItem) LineTotal() float64 { return i.Price * float64(i.Quantity) }

// CreateOrderRequest is the payload for opening a new order.
type CreateOrderRequest struct {
	GuestName  string `json:"guest_name"`
	GuestType  string `json:"guest_type"`
	TableID    string `json:"table_id,omitempty"`
	RoomNumber string `json:"room_number,omitempty"`
}

// AddItemRequest is the payload for adding a menu item to an order.
type AddItemRequest struct {
	MenuItemID          string `json:"menu_item_id"`
	Quantity            int    `json:"quantity,omitempty"` // defaults to 1
	SpecialInstructions string `json:"special_instructions,omitempty"`
}

// UpdateQuantityRequest is the payload for changing a line item's quantity.
// A quantity of zero removes the line.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// PaymentRequest is the payload for settling an order.
type PaymentRequest struct {
	PaymentMethod string `json:"payment_method"`
}
