package repository

import (
	"context"
	"errors"

	"focusflow/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrCategoryNotFound is returned when a category does not exist.
var ErrCategoryNotFound = errors.New("category not found")

// CategoryRepository defines the operations for the shared category reference data.
type CategoryRepository interface {
	// FindByID retrieves a single category by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)

	// List retrieves all categories ordered by name.
	List(ctx context.Context) ([]*entity.Category, error)

	// Seed inserts the given category names if not already present.
	// Idempotent; safe to re-run at every provisioning.
	Seed(ctx context.Context, names []string) error
}
