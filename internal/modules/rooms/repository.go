package rooms

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines room data access.
type Repository interface {
	CreateRoom(ctx context.Context, room *Room) error
	GetRoomByID(ctx context.Context, id uuid.UUID) (*Room, error)
	GetRoomByNumber(ctx context.Context, number string) (*Room, error)
	ListRooms(ctx context.Context, status Status) ([]*Room, error)
	UpdateRoom(ctx context.Context, room *Room) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
	DeleteRoom(ctx context.Context, id uuid.UUID) error
}
