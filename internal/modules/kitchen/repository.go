package kitchen

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines data access for kitchen tickets.
type Repository interface {
	// CreateTicket persists a ticket and its items atomically in a transaction.
	CreateTicket(ctx context.Context, t *Ticket) error

	// GetTicketByID retrieves a ticket with its items.
	GetTicketByID(ctx context.Context, id uuid.UUID) (*Ticket, error)

	// ListTickets returns tickets, optionally filtered by status, oldest first
	// (the kitchen works the queue front-to-back).
	ListTickets(ctx context.Context, status TicketStatus) ([]*Ticket, error)

	// UpdateStatus advances a ticket and stamps started_at/ready_at as appropriate.
	UpdateStatus(ctx context.Context, id uuid.UUID, status TicketStatus) error
}
