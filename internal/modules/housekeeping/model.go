package housekeeping

import (
	"time"

	"github.com/google/uuid"
)

// TaskType classifies housekeeping work.
type TaskType string

const (
	TaskCleaning    TaskType = "CLEANING"
	TaskTurndown    TaskType = "TURNDOWN"
	TaskMaintenance TaskType = "MAINTENANCE"
	TaskLaundry     TaskType = "LAUNDRY"
)

// ValidTaskType reports whether t is a known task type.
func ValidTaskType(t TaskType) bool {
	switch t {
	case TaskCleaning, TaskTurndown, TaskMaintenance, TaskLaundry:
		return true
	}
	return false
}

// TaskStatus represents the state of a housekeeping task.
type TaskStatus string

const (
	StatusPending    TaskStatus = "PENDING"
	StatusInProgress TaskStatus = "IN_PROGRESS"
	StatusDone       TaskStatus = "DONE"
)

// validTransitions defines allowed task status changes.
var validTransitions = map[TaskStatus][]TaskStatus{
	StatusPending:    {StatusInProgress, StatusDone},
	StatusInProgress: {StatusDone},
	StatusDone:       {},
}

// CanTransition checks whether a task status change is allowed.
func CanTransition(from, to TaskStatus) bool {
	for _, next := range validTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Task is one unit of housekeeping work on a room.
type Task struct {
	ID          uuid.UUID  `json:"id"`
	RoomID      uuid.UUID  `json:"room_id"`
	Type        TaskType   `json:"type"`
	Status      TaskStatus `json:"status"`
	AssigneeID  *uuid.UUID `json:"assignee_id,omitempty"`
	Notes       string     `json:"notes,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// CreateTaskRequest is the payload for creating a task. When AssigneeID is
// empty the task is auto-assigned to the least loaded attendant.
type CreateTaskRequest struct {
	RoomID     string `json:"room_id"`
	Type       string `json:"type"`
	AssigneeID string `json:"assignee_id"`
	Notes      string `json:"notes"`
}

// ReassignRequest is the payload for moving a task to another attendant.
type ReassignRequest struct {
	AssigneeID string `json:"assignee_id"`
}
