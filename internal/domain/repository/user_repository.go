// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"focusflow/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for user persistence. They let the application layer
// branch on outcomes without depending on database-specific errors.
var (
	// ErrUserNotFound is returned when no account matches the lookup.
	ErrUserNotFound = errors.New("user not found")
	// ErrDuplicateEmail is returned when the email uniqueness constraint fires.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrDuplicateUsername is returned when the username uniqueness constraint fires.
	ErrDuplicateUsername = errors.New("username already registered")
)

// UserRepository defines the standard operations for account persistence.
// Uniqueness of email and username is enforced by the store, not by
// check-then-act in the application: concurrent registrations surface as
// ErrDuplicateEmail / ErrDuplicateUsername from Create.
type UserRepository interface {
	// FindByID retrieves a single account by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a single account by its lowercased email.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByUsername retrieves a single account by its username.
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// Create persists a new account.
	Create(ctx context.Context, user *entity.User) error

	// Update modifies an existing account (e.g. flipping EmailVerified).
	Update(ctx context.Context, user *entity.User) error
}
