package repository

import (
	"context"
	"errors"

	"focusflow/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrSessionNotFound is returned when a session is not found.
var ErrSessionNotFound = errors.New("session not found")

// SessionRepository defines the interface for authenticated session persistence.
type SessionRepository interface {
	// Create persists a new session, established at login.
	Create(ctx context.Context, session *entity.Session) error

	// FindByTokenHash retrieves a session by its stored refresh token hash.
	FindByTokenHash(ctx context.Context, tokenHash string) (*entity.Session, error)

	// DeleteByTokenHash ends a session. Deleting a hash that does not exist is
	// not an error, which keeps logout idempotent.
	DeleteByTokenHash(ctx context.Context, tokenHash string) error

	// DeleteByUserID removes every session for an account.
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error

	// DeleteExpired removes all expired sessions. Called periodically for cleanup.
	DeleteExpired(ctx context.Context) error
}
