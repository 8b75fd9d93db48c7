package housekeeping

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"

	"github.com/lusakagrand/hoteldesk-backend/internal/modules/rooms"
)

type memRepo struct {
	tasks map[uuid.UUID]*Task
}

func newMemRepo() *memRepo { return &memRepo{tasks: map[uuid.UUID]*Task{}} }

func (r *memRepo) CreateTask(ctx context.Context, t *Task) error {
	r.tasks[t.ID] = t
	return nil
}

func (r *memRepo) GetTaskByID(ctx context.Context, id uuid.UUID) (*Task, error) {
	t, ok := r.tasks[id]
	if !ok {
		return nil, fmt.Errorf("task not found")
	}
	return t, nil
}

func (r *memRepo) ListTasks(ctx context.Context, status TaskStatus, assigneeID *uuid.UUID) ([]*Task, error) {
	var out []*Task
	for _, t := range r.tasks {
		if status != "" && t.Status != status {
			continue
		}
		if assigneeID != nil && (t.AssigneeID == nil || *t.AssigneeID != *assigneeID) {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (r *memRepo) CountOpenTasks(ctx context.Context) (map[uuid.UUID]int, error) {
	counts := map[uuid.UUID]int{}
	for _, t := range r.tasks {
		if t.Status != StatusDone && t.AssigneeID != nil {
			counts[*t.AssigneeID]++
		}
	}
	return counts, nil
}

func (r *memRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status TaskStatus) error {
	t, ok := r.tasks[id]
	if !ok {
		return fmt.Errorf("task %s not found", id)
	}
	t.Status = status
	return nil
}

func (r *memRepo) UpdateAssignee(ctx context.Context, id uuid.UUID, assigneeID uuid.UUID) error {
	t, ok := r.tasks[id]
	if !ok {
		return fmt.Errorf("task %s not found", id)
	}
	t.AssigneeID = &assigneeID
	return nil
}

type fakeAttendants struct {
	ids []uuid.UUID
}

func (f *fakeAttendants) ListUserIDsByRole(ctx context.Context, role string) ([]uuid.UUID, error) {
	if role != RoleHousekeeping {
		return nil, nil
	}
	return f.ids, nil
}

type fakeRoomFlip struct {
	statuses map[uuid.UUID]rooms.Status
}

func (f *fakeRoomFlip) SetStatus(ctx context.Context, id uuid.UUID, status rooms.Status) (*rooms.Room, error) {
	f.statuses[id] = status
	return &rooms.Room{ID: id, Status: status}, nil
}

func TestScheduleCleaningPicksLeastLoadedAttendant(t *testing.T) {
	repo := newMemRepo()
	busy, idle := uuid.New(), uuid.New()
	svc := NewService(repo, &fakeAttendants{ids: []uuid.UUID{busy, idle}}, &fakeRoomFlip{statuses: map[uuid.UUID]rooms.Status{}})
	ctx := context.Background()

	// preload two open tasks on the first attendant
	for i := 0; i < 2; i++ {
		a := busy
		repo.tasks[uuid.New()] = &Task{ID: uuid.New(), Type: TaskCleaning, Status: StatusPending, AssigneeID: &a}
	}

	if err := svc.ScheduleCleaning(ctx, uuid.New()); err != nil {
		t.Fatalf("ScheduleCleaning: %v", err)
	}

	var created *Task
	for _, task := range repo.tasks {
		if task.Notes == "post-checkout cleaning" {
			created = task
		}
	}
	if created == nil {
		t.Fatal("cleaning task not created")
	}
	if created.AssigneeID == nil || *created.AssigneeID != idle {
		t.Errorf("assignee = %v, want the idle attendant %s", created.AssigneeID, idle)
	}
}

func TestScheduleCleaningWithoutRosterLeavesUnassigned(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, &fakeAttendants{}, &fakeRoomFlip{statuses: map[uuid.UUID]rooms.Status{}})

	if err := svc.ScheduleCleaning(context.Background(), uuid.New()); err != nil {
		t.Fatalf("ScheduleCleaning: %v", err)
	}
	for _, task := range repo.tasks {
		if task.AssigneeID != nil {
			t.Errorf("task assigned with empty roster: %v", task.AssigneeID)
		}
	}
}

func TestCompleteCleaningReturnsRoomToService(t *testing.T) {
	repo := newMemRepo()
	flip := &fakeRoomFlip{statuses: map[uuid.UUID]rooms.Status{}}
	svc := NewService(repo, &fakeAttendants{}, flip)
	ctx := context.Background()

	roomID := uuid.New()
	task, err := svc.CreateTask(ctx, CreateTaskRequest{RoomID: roomID.String(), Type: "CLEANING"})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if _, err := svc.StartTask(ctx, task.ID); err != nil {
		t.Fatalf("StartTask: %v", err)
	}
	if _, err := svc.CompleteTask(ctx, task.ID); err != nil {
		t.Fatalf("CompleteTask: %v", err)
	}
	if flip.statuses[roomID] != rooms.StatusAvailable {
		t.Errorf("room status = %s, want AVAILABLE", flip.statuses[roomID])
	}
}

func TestCompleteMaintenanceDoesNotTouchRoom(t *testing.T) {
	repo := newMemRepo()
	flip := &fakeRoomFlip{statuses: map[uuid.UUID]rooms.Status{}}
	svc := NewService(repo, &fakeAttendants{}, flip)
	ctx := context.Background()

	roomID := uuid.New()
	task, _ := svc.CreateTask(ctx, CreateTaskRequest{RoomID: roomID.String(), Type: "MAINTENANCE"})
	if _, err := svc.CompleteTask(ctx, task.ID); err != nil {
		t.Fatalf("CompleteTask: %v", err)
	}
	if len(flip.statuses) != 0 {
		t.Errorf("room status changed for a maintenance task: %v", flip.statuses)
	}
}

func TestTaskTransitions(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, &fakeAttendants{}, &fakeRoomFlip{statuses: map[uuid.UUID]rooms.Status{}})
	ctx := context.Background()

	task, _ := svc.CreateTask(ctx, CreateTaskRequest{RoomID: uuid.New().String(), Type: "LAUNDRY"})
	if _, err := svc.CompleteTask(ctx, task.ID); err != nil {
		t.Fatalf("complete from pending: %v", err)
	}
	if _, err := svc.StartTask(ctx, task.ID); err == nil {
		t.Error("started a DONE task")
	}
}
