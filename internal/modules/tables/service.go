package tables

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Service defines dining table business logic. Occupy and Release are driven
// by the POS order lifecycle for table orders.
type Service interface {
	CreateTable(ctx context.Context, req CreateTableRequest) (*Table, error)
	GetTable(ctx context.Context, id uuid.UUID) (*Table, error)
	ListTables(ctx context.Context) ([]*Table, error)
	SetStatus(ctx context.Context, id uuid.UUID, status string) (*Table, error)
	DeleteTable(ctx context.Context, id uuid.UUID) error

	// Occupy marks a table OCCUPIED only if it was AVAILABLE. A table that is
	// already occupied or reserved is left untouched; opening a second order
	// on a busy table is allowed and must not fail.
	Occupy(ctx context.Context, id uuid.UUID) error

	// Release marks a table AVAILABLE after the order is paid or deleted.
	Release(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo Repository
}

// NewService creates a new table service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateTable(ctx context.Context, req CreateTableRequest) (*Table, error) {
	if req.Number <= 0 {
		return nil, fmt.Errorf("number must be > 0")
	}
	if req.Seats <= 0 {
		return nil, fmt.Errorf("seats must be > 0")
	}
	t := &Table{
		ID:     uuid.New(),
		Number: req.Number,
		Seats:  req.Seats,
		Status: StatusAvailable,
	}
	if err := s.repo.CreateTable(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *service) GetTable(ctx context.Context, id uuid.UUID) (*Table, error) {
	return s.repo.GetTableByID(ctx, id)
}

func (s *service) ListTables(ctx context.Context) ([]*Table, error) {
	return s.repo.ListTables(ctx)
}

func (s *service) SetStatus(ctx context.Context, id uuid.UUID, status string) (*Table, error) {
	st := Status(strings.ToUpper(status))
	if !ValidStatus(st) {
		return nil, fmt.Errorf("invalid status %q", status)
	}
	if err := s.repo.UpdateStatus(ctx, id, st); err != nil {
		return nil, err
	}
	return s.repo.GetTableByID(ctx, id)
}

func (s *service) DeleteTable(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteTable(ctx, id)
}

func (s *service) Occupy(ctx context.Context, id uuid.UUID) error {
	// conditional update keeps this idempotent under concurrent orders
	_, err := s.repo.UpdateStatusIf(ctx, id, StatusAvailable, StatusOccupied)
	return err
}

func (s *service) Release(ctx context.Context, id uuid.UUID) error {
	return s.repo.UpdateStatus(ctx, id, StatusAvailable)
}
