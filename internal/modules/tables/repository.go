package tables

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines table data access.
type Repository interface {
	CreateTable(ctx context.Context, table *Table) error
	GetTableByID(ctx context.Context, id uuid.UUID) (*Table, error)
	ListTables(ctx context.Context) ([]*Table, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error

	// UpdateStatusIf sets the status only when the current status matches.
	// Returns true when the row changed.
	UpdateStatusIf(ctx context.Context, id uuid.UUID, from, to Status) (bool, error)

	DeleteTable(ctx context.Context, id uuid.UUID) error
}
