package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"focusflow/config"
	"focusflow/internal/domain/service"
)

// verificationPurpose scopes the signature so a verification token cannot be
// replayed against any other signed-token surface, even with a shared key.
const verificationPurpose = "email-confirmation"

// verificationTokenService issues and validates the signed tokens embedded in
// email verification links. The token is a compact HS256 JWT carrying the
// subject email, the issuance timestamp, and a fixed purpose claim; nothing
// is stored server-side.
type verificationTokenService struct {
	secret string
	ttl    time.Duration
	now    func() time.Time
}

// NewVerificationTokenService is the constructor for verificationTokenService.
func NewVerificationTokenService(cfg *config.Config) (service.VerificationTokenService, error) {
	if cfg.SecretKey.Verification == "" {
		return nil, errors.New("verification token secret must be provided")
	}

	return &verificationTokenService{
		secret: cfg.SecretKey.Verification,
		ttl:    cfg.Verification.TokenTTL,
		now:    time.Now,
	}, nil
}

// Issue signs the subject email with the current issuance timestamp.
func (s *verificationTokenService) Issue(email string) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":     email,
		"iat":     now.Unix(),
		"exp":     now.Add(s.ttl).Unix(),
		"purpose": verificationPurpose,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return "", errors.Wrap(err, "failed to sign verification token")
	}

	return signed, nil
}

// Validate verifies authenticity and purpose scope, then enforces the caller's
// age horizon against the embedded issuance timestamp.
func (s *verificationTokenService) Validate(tokenString string, maxAge time.Duration) (string, error) {
	token, err := jwt.Parse(tokenString,
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}

			return []byte(s.secret), nil
		},
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", service.ErrTokenExpired
		}

		return "", service.ErrTokenMalformed
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", service.ErrTokenMalformed
	}

	if purpose, _ := claims["purpose"].(string); purpose != verificationPurpose {
		return "", service.ErrTokenMalformed
	}

	issuedAt, err := claims.GetIssuedAt()
	if err != nil || issuedAt == nil {
		return "", service.ErrTokenMalformed
	}
	if s.now().Sub(issuedAt.Time) > maxAge {
		return "", service.ErrTokenExpired
	}

	subject, _ := claims["sub"].(string)
	if subject == "" {
		return "", service.ErrTokenMalformed
	}

	return subject, nil
}
