package accounting

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines data access for ledger entries.
type Repository interface {
	// CreateEntry persists a ledger entry.
	CreateEntry(ctx context.Context, e *Entry) error

	// GetEntryByID retrieves a single entry.
	GetEntryByID(ctx context.Context, id uuid.UUID) (*Entry, error)

	// ListEntries returns entries within [from, to), optionally filtered by
	// type, newest first.
	ListEntries(ctx context.Context, from, to time.Time, entryType EntryType) ([]*Entry, error)
}
