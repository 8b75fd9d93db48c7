package rooms

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Service defines room business logic. SetStatus guards every change through
// the transition table; booking and housekeeping drive it for check-in,
// checkout and post-cleaning flips.
type Service interface {
	CreateRoom(ctx context.Context, req CreateRoomRequest) (*Room, error)
	GetRoom(ctx context.Context, id uuid.UUID) (*Room, error)
	GetRoomByNumber(ctx context.Context, number string) (*Room, error)
	ListRooms(ctx context.Context, status string) ([]*Room, error)
	UpdateRoom(ctx context.Context, id uuid.UUID, req UpdateRoomRequest) (*Room, error)
	SetStatus(ctx context.Context, id uuid.UUID, status Status) (*Room, error)
	DeleteRoom(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo Repository
}

// NewService creates a new room service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateRoom(ctx context.Context, req CreateRoomRequest) (*Room, error) {
	if req.Number == "" {
		return nil, fmt.Errorf("number is required")
	}
	roomType := RoomType(strings.ToUpper(req.Type))
	if !ValidRoomType(roomType) {
		return nil, fmt.Errorf("invalid room type %q", req.Type)
	}
	if req.Rate < 0 {
		return nil, fmt.Errorf("rate must not be negative")
	}

	room := &Room{
		ID:     uuid.New(),
		Number: req.Number,
		Type:   roomType,
		Rate:   req.Rate,
		Floor:  req.Floor,
		Status: StatusAvailable,
		Notes:  req.Notes,
	}
	if err := s.repo.CreateRoom(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

func (s *service) GetRoom(ctx context.Context, id uuid.UUID) (*Room, error) {
	return s.repo.GetRoomByID(ctx, id)
}

func (s *service) GetRoomByNumber(ctx context.Context, number string) (*Room, error) {
	return s.repo.GetRoomByNumber(ctx, number)
}

func (s *service) ListRooms(ctx context.Context, status string) ([]*Room, error) {
	var st Status
	if status != "" {
		st = Status(strings.ToUpper(status))
		if !ValidStatus(st) {
			return nil, fmt.Errorf("invalid status %q", status)
		}
	}
	return s.repo.ListRooms(ctx, st)
}

func (s *service) UpdateRoom(ctx context.Context, id uuid.UUID, req UpdateRoomRequest) (*Room, error) {
	room, err := s.repo.GetRoomByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Type != "" {
		roomType := RoomType(strings.ToUpper(req.Type))
		if !ValidRoomType(roomType) {
			return nil, fmt.Errorf("invalid room type %q", req.Type)
		}
		room.Type = roomType
	}
	if req.Rate != nil {
		if *req.Rate < 0 {
			return nil, fmt.Errorf("rate must not be negative")
		}
		room.Rate = *req.Rate
	}
	if req.Floor != nil {
		room.Floor = *req.Floor
	}
	if req.Notes != nil {
		room.Notes = *req.Notes
	}
	if err := s.repo.UpdateRoom(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

func (s *service) SetStatus(ctx context.Context, id uuid.UUID, status Status) (*Room, error) {
	if !ValidStatus(status) {
		return nil, fmt.Errorf("invalid status %q", status)
	}
	room, err := s.repo.GetRoomByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if room.Status == status {
		return room, nil
	}
	if !CanTransition(room.Status, status) {
		return nil, fmt.Errorf("invalid status transition from %s to %s", room.Status, status)
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	room.Status = status
	return room, nil
}

func (s *service) DeleteRoom(ctx context.Context, id uuid.UUID) error {
	room, err := s.repo.GetRoomByID(ctx, id)
	if err != nil {
		return err
	}
	if room.Status == StatusOccupied {
		return fmt.Errorf("room %s is occupied and cannot be deleted", room.Number)
	}
	return s.repo.DeleteRoom(ctx, id)
}
