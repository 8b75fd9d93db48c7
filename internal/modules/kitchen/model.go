package kitchen

import (
	"time"

	"github.com/google/uuid"
)

// TicketStatus represents the lifecycle state of a kitchen ticket.
type TicketStatus string

const (
	TicketQueued     TicketStatus = "QUEUED"
	TicketInProgress TicketStatus = "IN_PROGRESS"
	TicketReady      TicketStatus = "READY"
	TicketServed     TicketStatus = "SERVED"
	TicketCancelled  TicketStatus = "CANCELLED"
)

// validTransitions defines the allowed state machine transitions for tickets.
var validTransitions = map[TicketStatus][]TicketStatus{
	TicketQueued:     {TicketInProgress, TicketCancelled},
	TicketInProgress: {TicketReady, TicketCancelled},
	TicketReady:      {TicketServed},
	TicketServed:     {},
	TicketCancelled:  {},
}

// CanTransition returns true if the transition from current to next is valid.
func CanTransition(current, next TicketStatus) bool {
	allowed, ok := validTransitions[current]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == next {
			return true
		}
	}
	return false
}

// Ticket bundles the kitchen-relevant line items of a paid order.
type Ticket struct {
	ID               uuid.UUID     `json:"id"`
	OrderID          uuid.UUID     `json:"order_id"`
	GuestName        string        `json:"guest_name"`
	Status           TicketStatus  `json:"status"`
	Priority         int           `json:"priority"`
	EstimatedMinutes int           `json:"estimated_minutes"`
	Items            []*TicketItem `json:"items,omitempty"`
	StartedAt        *time.Time    `json:"started_at,omitempty"`
	ReadyAt          *time.Time    `json:"ready_at,omitempty"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

// TicketItem is a single dish or drink on a ticket.
type TicketItem struct {
	ID                  uuid.UUID `json:"id"`
	TicketID            uuid.UUID `json:"ticket_id"`
	OrderItemID         uuid.UUID `json:"order_item_id"`
	Name                string    `json:"name"`
	Quantity            int       `json:"quantity"`
	SpecialInstructions string    `json:"special_instructions,omitempty"`
}

// TicketLine describes one line of a dispatch request.
type TicketLine struct {
	OrderItemID         uuid.UUID `json:"order_item_id"`
	Name                string    `json:"name"`
	Quantity            int       `json:"quantity"`
	SpecialInstructions string    `json:"special_instructions,omitempty"`
}

// UpdateStatusRequest is the payload for advancing a ticket's status.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}
