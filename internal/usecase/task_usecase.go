package usecase

import (
	"context"
	"time"

	"focusflow/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// CreateTaskInput defines the data required to create a task. A nil or zero
// CategoryID means no category.
type CreateTaskInput struct {
	OwnerID         uuid.UUID
	Content         string
	CategoryID      uuid.UUID
	DueDate         *time.Time
	ReminderActive  bool
	ReminderMinutes *int
}

// UpdateTaskInput defines a partial task update. Nil fields are left
// untouched; a non-nil zero CategoryID clears the category, and ClearDueDate
// removes the due date.
type UpdateTaskInput struct {
	OwnerID         uuid.UUID
	TaskID          uuid.UUID
	Content         *string
	CategoryID      *uuid.UUID
	DueDate         *time.Time
	ClearDueDate    bool
	ReminderActive  *bool
	ReminderMinutes *int
}

// TaskUsecase defines the interface for task operations. Every mutation
// requires the authenticated owner; operations on another account's task fail
// with Forbidden and disclose nothing about the target.
type TaskUsecase interface {
	Create(ctx context.Context, input *CreateTaskInput) (*entity.Task, error)
	List(ctx context.Context, ownerID uuid.UUID) ([]*entity.Task, error)
	SetCompleted(ctx context.Context, ownerID, taskID uuid.UUID, completed bool) (*entity.Task, error)
	Update(ctx context.Context, input *UpdateTaskInput) (*entity.Task, error)
	Delete(ctx context.Context, ownerID, taskID uuid.UUID) error

	// DueReminders lists incomplete tasks whose reminder is due at the given
	// instant. This is the candidate query for the external reminder job.
	DueReminders(ctx context.Context, now time.Time) ([]*entity.Task, error)

	// ListCategories returns the shared reference categories.
	ListCategories(ctx context.Context) ([]*entity.Category, error)
}
