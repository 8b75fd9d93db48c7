package housekeeping

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/lusakagrand/hoteldesk-backend/internal/modules/rooms"
)

// AttendantSource lists the staff who can take housekeeping work.
type AttendantSource interface {
	ListUserIDsByRole(ctx context.Context, role string) ([]uuid.UUID, error)
}

// RoomFlipper returns a cleaned room to service.
type RoomFlipper interface {
	SetStatus(ctx context.Context, id uuid.UUID, status rooms.Status) (*rooms.Room, error)
}

// RoleHousekeeping is the staff role eligible for task auto-assignment.
const RoleHousekeeping = "HOUSEKEEPING"

// Service defines housekeeping business logic. Unassigned tasks are handed to
// the attendant with the fewest open tasks; completing a CLEANING task makes
// the room available again.
type Service interface {
	CreateTask(ctx context.Context, req CreateTaskRequest) (*Task, error)
	GetTask(ctx context.Context, id uuid.UUID) (*Task, error)
	ListTasks(ctx context.Context, status, assigneeID string) ([]*Task, error)

	// ScheduleCleaning files an auto-assigned CLEANING task. Called by the
	// booking module on checkout.
	ScheduleCleaning(ctx context.Context, roomID uuid.UUID) error

	StartTask(ctx context.Context, id uuid.UUID) (*Task, error)
	CompleteTask(ctx context.Context, id uuid.UUID) (*Task, error)
	Reassign(ctx context.Context, id uuid.UUID, req ReassignRequest) (*Task, error)
}

type service struct {
	repo       Repository
	attendants AttendantSource
	roomFlip   RoomFlipper
}

// NewService creates a new housekeeping service.
func NewService(repo Repository, attendants AttendantSource, roomFlip RoomFlipper) Service {
	return &service{repo: repo, attendants: attendants, roomFlip: roomFlip}
}

func (s *service) CreateTask(ctx context.Context, req CreateTaskRequest) (*Task, error) {
	roomID, err := uuid.Parse(req.RoomID)
	if err != nil {
		return nil, fmt.Errorf("invalid room_id: %w", err)
	}
	taskType := TaskType(strings.ToUpper(req.Type))
	if !ValidTaskType(taskType) {
		return nil, fmt.Errorf("invalid task type %q", req.Type)
	}

	task := &Task{
		ID:     uuid.New(),
		RoomID: roomID,
		Type:   taskType,
		Status: StatusPending,
		Notes:  req.Notes,
	}
	if req.AssigneeID != "" {
		aid, err := uuid.Parse(req.AssigneeID)
		if err != nil {
			return nil, fmt.Errorf("invalid assignee_id: %w", err)
		}
		task.AssigneeID = &aid
	} else if aid := s.pickAttendant(ctx); aid != nil {
		task.AssigneeID = aid
	}

	if err := s.repo.CreateTask(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *service) GetTask(ctx context.Context, id uuid.UUID) (*Task, error) {
	return s.repo.GetTaskByID(ctx, id)
}

func (s *service) ListTasks(ctx context.Context, status, assigneeID string) ([]*Task, error) {
	var st TaskStatus
	if status != "" {
		st = TaskStatus(strings.ToUpper(status))
		if _, ok := validTransitions[st]; !ok {
			return nil, fmt.Errorf("invalid status %q", status)
		}
	}
	var aid *uuid.UUID
	if assigneeID != "" {
		parsed, err := uuid.Parse(assigneeID)
		if err != nil {
			return nil, fmt.Errorf("invalid assignee_id: %w", err)
		}
		aid = &parsed
	}
	return s.repo.ListTasks(ctx, st, aid)
}

func (s *service) ScheduleCleaning(ctx context.Context, roomID uuid.UUID) error {
	task := &Task{
		ID:     uuid.New(),
		RoomID: roomID,
		Type:   TaskCleaning,
		Status: StatusPending,
		Notes:  "post-checkout cleaning",
	}
	if aid := s.pickAttendant(ctx); aid != nil {
		task.AssigneeID = aid
	}
	return s.repo.CreateTask(ctx, task)
}

func (s *service) StartTask(ctx context.Context, id uuid.UUID) (*Task, error) {
	return s.transition(ctx, id, StatusInProgress)
}

func (s *service) CompleteTask(ctx context.Context, id uuid.UUID) (*Task, error) {
	task, err := s.transition(ctx, id, StatusDone)
	if err != nil {
		return nil, err
	}
	if task.Type == TaskCleaning {
		if _, err := s.roomFlip.SetStatus(ctx, task.RoomID, rooms.StatusAvailable); err != nil {
			return nil, fmt.Errorf("return room to service: %w", err)
		}
	}
	return task, nil
}

func (s *service) Reassign(ctx context.Context, id uuid.UUID, req ReassignRequest) (*Task, error) {
	aid, err := uuid.Parse(req.AssigneeID)
	if err != nil {
		return nil, fmt.Errorf("invalid assignee_id: %w", err)
	}
	task, err := s.repo.GetTaskByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task.Status == StatusDone {
		return nil, fmt.Errorf("task %s is already done", id)
	}
	if err := s.repo.UpdateAssignee(ctx, id, aid); err != nil {
		return nil, err
	}
	task.AssigneeID = &aid
	return task, nil
}

// pickAttendant returns the housekeeping attendant with the fewest open
// tasks, or nil when none are on the roster. Assignment failures are not
// fatal: an unassigned task still shows up on the pending board.
func (s *service) pickAttendant(ctx context.Context) *uuid.UUID {
	ids, err := s.attendants.ListUserIDsByRole(ctx, RoleHousekeeping)
	if err != nil || len(ids) == 0 {
		return nil
	}
	counts, err := s.repo.CountOpenTasks(ctx)
	if err != nil {
		return nil
	}
	best := ids[0]
	for _, id := range ids[1:] {
		if counts[id] < counts[best] {
			best = id
		}
	}
	return &best
}

func (s *service) transition(ctx context.Context, id uuid.UUID, to TaskStatus) (*Task, error) {
	task, err := s.repo.GetTaskByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanTransition(task.Status, to) {
		return nil, fmt.Errorf("invalid status transition from %s to %s", task.Status, to)
	}
	if err := s.repo.UpdateStatus(ctx, id, to); err != nil {
		return nil, err
	}
	task.Status = to
	return task, nil
}
