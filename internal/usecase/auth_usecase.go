// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"focusflow/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
type RegisterInput struct {
	Email    string
	Username string
	Password string
}

// LoginInput defines the data required to log in.
type LoginInput struct {
	Email    string
	Password string
}

// ResendVerificationInput defines the data for requesting a fresh
// verification email. CooldownKey identifies the requesting client for the
// resend throttle.
type ResendVerificationInput struct {
	Email       string
	CooldownKey string
}

// RefreshInput carries the refresh token to exchange for a new token pair.
type RefreshInput struct {
	RefreshToken string
}

// LogoutInput carries the refresh token whose session should end.
type LogoutInput struct {
	RefreshToken string
}

// --- Output DTOs ---

// RegisterOutput returns the newly created account's basic information.
// EmailSent is false when the verification email could not be dispatched; the
// account exists either way and the user should use the resend path.
type RegisterOutput struct {
	User      *entity.User
	EmailSent bool
}

// LoginOutput returns the generated tokens after a successful login.
type LoginOutput struct {
	AccessToken  string
	RefreshToken string
	User         *entity.User
}

// VerifyEmailOutput reports the result of a verification link visit.
// AlreadyVerified distinguishes the idempotent re-verify case for messaging.
type VerifyEmailOutput struct {
	Email           string
	AlreadyVerified bool
}

// ResendVerificationOutput reports the result of a resend request. The
// response shape is identical whether or not the account exists.
type ResendVerificationOutput struct {
	EmailSent bool
}

// RefreshOutput returns the rotated token pair. The previous refresh token is
// no longer usable once this is issued.
type RefreshOutput struct {
	AccessToken  string
	RefreshToken string
}

// AuthUsecase defines the interface for account and session operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AuthUsecase interface {
	Register(ctx context.Context, input *RegisterInput) (*RegisterOutput, error)
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)
	VerifyEmail(ctx context.Context, token string) (*VerifyEmailOutput, error)
	ResendVerification(ctx context.Context, input *ResendVerificationInput) (*ResendVerificationOutput, error)
	Refresh(ctx context.Context, input *RefreshInput) (*RefreshOutput, error)
	Logout(ctx context.Context, input *LogoutInput) error

	// LogoutAll ends every session of the account, for use after a password
	// change or a suspected token leak.
	LogoutAll(ctx context.Context, userID uuid.UUID) error
}
