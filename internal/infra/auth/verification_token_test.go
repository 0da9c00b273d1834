package auth

import (
	"testing"
	"time"

	"focusflow/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestVerificationService(now time.Time) *verificationTokenService {
	return &verificationTokenService{
		secret: "verification-secret",
		ttl:    time.Hour,
		now:    func() time.Time { return now },
	}
}

func TestVerificationToken_RoundTrip(t *testing.T) {
	issuedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestVerificationService(issuedAt)

	token, err := svc.Issue("a@x.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	subject, err := svc.Validate(token, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", subject)
}

func TestVerificationToken_ExpiryHorizon(t *testing.T) {
	issuedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	issuer := newTestVerificationService(issuedAt)

	token, err := issuer.Issue("a@x.com")
	require.NoError(t, err)

	// One second inside the horizon still validates.
	late := newTestVerificationService(issuedAt.Add(3599 * time.Second))
	subject, err := late.Validate(token, 3600*time.Second)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", subject)

	// One second past the horizon fails as expired.
	tooLate := newTestVerificationService(issuedAt.Add(3601 * time.Second))
	_, err = tooLate.Validate(token, 3600*time.Second)
	assert.ErrorIs(t, err, service.ErrTokenExpired)
}

func TestVerificationToken_Tampered(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestVerificationService(now)

	token, err := svc.Issue("a@x.com")
	require.NoError(t, err)

	_, err = svc.Validate(token+"x", time.Hour)
	assert.ErrorIs(t, err, service.ErrTokenMalformed)

	_, err = svc.Validate("not-a-token", time.Hour)
	assert.ErrorIs(t, err, service.ErrTokenMalformed)
}

func TestVerificationToken_WrongSecret(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestVerificationService(now)

	token, err := svc.Issue("a@x.com")
	require.NoError(t, err)

	other := &verificationTokenService{
		secret: "a-different-secret",
		ttl:    time.Hour,
		now:    func() time.Time { return now },
	}
	_, err = other.Validate(token, time.Hour)
	assert.ErrorIs(t, err, service.ErrTokenMalformed)
}

func TestVerificationToken_PurposeScope(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestVerificationService(now)

	// A token signed with the same key but a different purpose must not pass.
	claims := jwt.MapClaims{
		"sub":     "a@x.com",
		"iat":     now.Unix(),
		"exp":     now.Add(time.Hour).Unix(),
		"purpose": "password-reset",
	}
	foreign, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(svc.secret))
	require.NoError(t, err)

	_, err = svc.Validate(foreign, time.Hour)
	assert.ErrorIs(t, err, service.ErrTokenMalformed)
}
