package kitchen

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
)

// Service defines kitchen ticket business logic.
type Service interface {
	// DispatchTicket persists a ticket for a paid order and notifies the
	// kitchen display queue. Persistence failure is an error; a publish
	// failure is only logged, since the ticket is already on file.
	DispatchTicket(ctx context.Context, orderID uuid.UUID, guestName string, lines []TicketLine, estimatedMinutes, priority int) error

	// GetTicket retrieves a ticket with its items.
	GetTicket(ctx context.Context, id uuid.UUID) (*Ticket, error)

	// ListTickets returns the ticket queue, optionally filtered by status.
	ListTickets(ctx context.Context, status string) ([]*Ticket, error)

	// UpdateStatus advances a ticket through the kitchen state machine.
	UpdateStatus(ctx context.Context, id uuid.UUID, req UpdateStatusRequest) (*Ticket, error)
}

type service struct {
	repo      Repository
	publisher Publisher // nil when no broker is configured
}

// NewService creates a new kitchen service.
func NewService(repo Repository, publisher Publisher) Service {
	return &service{repo: repo, publisher: publisher}
}

func (s *service) DispatchTicket(ctx context.Context, orderID uuid.UUID, guestName string, lines []TicketLine, estimatedMinutes, priority int) error {
	if len(lines) == 0 {
		return fmt.Errorf("ticket must contain at least one line")
	}

	t := &Ticket{
		ID:               uuid.New(),
		OrderID:          orderID,
		GuestName:        guestName,
		Status:           TicketQueued,
		Priority:         priority,
		EstimatedMinutes: estimatedMinutes,
	}
	for _, line := range lines {
		t.Items = append(t.Items, &TicketItem{
			ID:                  uuid.New(),
			TicketID:            t.ID,
			OrderItemID:         line.OrderItemID,
			Name:                line.Name,
			Quantity:            line.Quantity,
			SpecialInstructions: line.SpecialInstructions,
		})
	}

	if err := s.repo.CreateTicket(ctx, t); err != nil {
		return fmt.Errorf("create kitchen ticket: %w", err)
	}

	if s.publisher != nil {
		if err := s.publisher.PublishTicket(ctx, t); err != nil {
			log.Printf("kitchen: ticket %s persisted but publish failed: %v", t.ID, err)
		}
	}
	return nil
}

func (s *service) GetTicket(ctx context.Context, id uuid.UUID) (*Ticket, error) {
	return s.repo.GetTicketByID(ctx, id)
}

func (s *service) ListTickets(ctx context.Context, status string) ([]*Ticket, error) {
	return s.repo.ListTickets(ctx, TicketStatus(strings.ToUpper(status)))
}

func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, req UpdateStatusRequest) (*Ticket, error) {
	t, err := s.repo.GetTicketByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("ticket not found: %w", err)
	}
	next := TicketStatus(strings.ToUpper(req.Status))
	if !CanTransition(t.Status, next) {
		return nil, fmt.Errorf("cannot transition ticket from %s to %s", t.Status, next)
	}
	if err := s.repo.UpdateStatus(ctx, id, next); err != nil {
		return nil, err
	}
	t.Status = next
	return t, nil
}
