package housekeeping

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines housekeeping task data access.
type Repository interface {
	CreateTask(ctx context.Context, task *Task) error
	GetTaskByID(ctx context.Context, id uuid.UUID) (*Task, error)
	ListTasks(ctx context.Context, status TaskStatus, assigneeID *uuid.UUID) ([]*Task, error)

	// CountOpenTasks returns, per assignee, the number of tasks not yet DONE.
	// Attendants with no open tasks are absent from the map.
	CountOpenTasks(ctx context.Context) (map[uuid.UUID]int, error)

	UpdateStatus(ctx context.Context, id uuid.UUID, status TaskStatus) error
	UpdateAssignee(ctx context.Context, id uuid.UUID, assigneeID uuid.UUID) error
}
