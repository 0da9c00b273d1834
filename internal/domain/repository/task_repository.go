package repository

import (
	"context"
	"errors"
	"time"

	"focusflow/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrTaskNotFound is returned when a task does not exist.
var ErrTaskNotFound = errors.New("task not found")

// TaskRepository defines the standard operations for task persistence.
type TaskRepository interface {
	// FindByID retrieves a single task by its unique ID, category preloaded.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Task, error)

	// ListByOwner retrieves every task belonging to the given account,
	// ordered by creation time descending (most recent first).
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Task, error)

	// Create persists a new task.
	Create(ctx context.Context, task *entity.Task) error

	// Update modifies an existing task.
	Update(ctx context.Context, task *entity.Task) error

	// Delete removes a task permanently.
	Delete(ctx context.Context, id uuid.UUID) error

	// ListDueReminders retrieves incomplete tasks whose reminder is active and
	// whose due date is at or before the given instant. This is the candidate
	// query the external reminder job polls; it has no side effects.
	ListDueReminders(ctx context.Context, now time.Time) ([]*entity.Task, error)
}
