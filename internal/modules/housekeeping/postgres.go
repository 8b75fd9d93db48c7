package housekeeping

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type postgresRepo struct {
	db *sql.DB
}

// NewPostgresRepository creates a PostgreSQL-backed housekeeping repository.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepo{db: db}
}

const taskColumns = `id, room_id, type, status, assignee_id, notes, created_at, completed_at`

func (r *postgresRepo) CreateTask(ctx context.Context, task *Task) error {
	query := `
		INSERT INTO housekeeping_tasks (id, room_id, type, status, assignee_id, notes)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.ExecContext(ctx, query,
		task.ID, task.RoomID, task.Type, task.Status, task.AssigneeID, task.Notes)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

func (r *postgresRepo) GetTaskByID(ctx context.Context, id uuid.UUID) (*Task, error) {
	query := `SELECT ` + taskColumns + ` FROM housekeeping_tasks WHERE id = $1`
	task := &Task{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&task.ID, &task.RoomID, &task.Type, &task.Status,
		&task.AssigneeID, &task.Notes, &task.CreatedAt, &task.CompletedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("task not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return task, nil
}

func (r *postgresRepo) ListTasks(ctx context.Context, status TaskStatus, assigneeID *uuid.UUID) ([]*Task, error) {
	query := `SELECT ` + taskColumns + ` FROM housekeeping_tasks WHERE 1=1`
	args := []interface{}{}
	if status != "" {
		args = append(args, status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if assigneeID != nil {
		args = append(args, *assigneeID)
		query += fmt.Sprintf(" AND assignee_id = $%d", len(args))
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var out []*Task
	for rows.Next() {
		task := &Task{}
		if err := rows.Scan(&task.ID, &task.RoomID, &task.Type, &task.Status,
			&task.AssigneeID, &task.Notes, &task.CreatedAt, &task.CompletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		out = append(out, task)
	}
	return out, rows.Err()
}

func (r *postgresRepo) CountOpenTasks(ctx context.Context) (map[uuid.UUID]int, error) {
	query := `
		SELECT assignee_id, COUNT(*)
		FROM housekeeping_tasks
		WHERE status <> $1 AND assignee_id IS NOT NULL
		GROUP BY assignee_id`
	rows, err := r.db.QueryContext(ctx, query, StatusDone)
	if err != nil {
		return nil, fmt.Errorf("failed to count open tasks: %w", err)
	}
	defer rows.Close()

	counts := map[uuid.UUID]int{}
	for rows.Next() {
		var id uuid.UUID
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, fmt.Errorf("failed to scan task count: %w", err)
		}
		counts[id] = n
	}
	return counts, rows.Err()
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status TaskStatus) error {
	query := `UPDATE housekeeping_tasks SET status = $1, completed_at = $2 WHERE id = $3`
	var completedAt *time.Time
	if status == StatusDone {
		now := time.Now()
		completedAt = &now
	}
	res, err := r.db.ExecContext(ctx, query, status, completedAt, id)
	if err != nil {
		return fmt.Errorf("failed to update task status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("task %s not found", id)
	}
	return nil
}

func (r *postgresRepo) UpdateAssignee(ctx context.Context, id uuid.UUID, assigneeID uuid.UUID) error {
	query := `UPDATE housekeeping_tasks SET assignee_id = $1 WHERE id = $2`
	res, err := r.db.ExecContext(ctx, query, assigneeID, id)
	if err != nil {
		return fmt.Errorf("failed to reassign task: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("task %s not found", id)
	}
	return nil
}
