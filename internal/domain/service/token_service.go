package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionClaims defines the custom claims carried by session JWTs.
type SessionClaims struct {
	UserID uuid.UUID
	Type   string // "access" or "refresh"
	jwt.RegisteredClaims
}

// SessionTokenService defines the interface for the tokens that back an
// authenticated session. Login establishes a session, logout clears it; the
// implementation is selected by configuration, so an external-identity-backed
// variant can replace the local one without touching the use cases.
type SessionTokenService interface {
	// GenerateTokens creates a new access token and refresh token for a given account.
	GenerateTokens(userID uuid.UUID) (accessToken string, refreshToken string, err error)

	// ValidateAccessToken checks an access token and returns its claims.
	ValidateAccessToken(tokenString string) (*SessionClaims, error)

	// HashToken returns the hash under which a raw refresh token is stored.
	HashToken(token string) string

	// RefreshTokenDuration returns the configured refresh token lifetime.
	RefreshTokenDuration() time.Duration
}

// Internal failure modes of verification token validation. Both collapse to
// the same user-facing outcome; the split exists for diagnostics only.
var (
	// ErrTokenExpired is returned when the token's age exceeds the allowed horizon.
	ErrTokenExpired = errors.New("verification token expired")
	// ErrTokenMalformed is returned when the signature does not verify or the
	// token is scoped to a different purpose.
	ErrTokenMalformed = errors.New("verification token malformed or tampered")
)

// VerificationTokenService issues and validates the signed, time-limited
// tokens carried in email verification links. Tokens are tamper-evident and
// require no server-side storage: the subject email and issuance time are
// embedded in the signed payload.
type VerificationTokenService interface {
	// Issue serializes and signs the subject email with an implicit issuance
	// timestamp, scoped to the email-confirmation purpose.
	Issue(email string) (string, error)

	// Validate verifies signature authenticity and purpose scope, then checks
	// that the token's age does not exceed maxAge. Returns the subject email,
	// or ErrTokenExpired / ErrTokenMalformed.
	Validate(token string, maxAge time.Duration) (string, error)
}
