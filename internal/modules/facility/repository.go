package facility

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines facility and session data access.
type Repository interface {
	CreateFacility(ctx context.Context, f *Facility) error
	GetFacilityByID(ctx context.Context, id uuid.UUID) (*Facility, error)
	ListFacilities(ctx context.Context) ([]*Facility, error)

	CreateSession(ctx context.Context, s *Session) error
	GetSessionByID(ctx context.Context, id uuid.UUID) (*Session, error)
	ListSessions(ctx context.Context, facilityID *uuid.UUID, status SessionStatus) ([]*Session, error)
	CountOpenSessions(ctx context.Context, facilityID uuid.UUID) (int, error)
	CloseSession(ctx context.Context, s *Session) error
}
