// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"focusflow/config"
	deliverycontext "focusflow/internal/delivery/context"
	"focusflow/internal/domain/entity"
	domainerrors "focusflow/internal/domain/errors"
	"focusflow/internal/domain/repository"
	"focusflow/internal/domain/service"
	"focusflow/internal/usecase"
	"focusflow/internal/util"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	usernameMinLen = 3
	usernameMaxLen = 25
	passwordMinLen = 6
)

// authService implements the AuthUsecase interface.
type authService struct {
	txManager    repository.TransactionManager
	userRepo     repository.UserRepository
	sessionRepo  repository.SessionRepository
	hasher       service.PasswordHasher
	sessionToken service.SessionTokenService
	verifyToken  service.VerificationTokenService
	mailer       service.Mailer
	cooldown     service.ResendCooldown
	tokenTTL     time.Duration
	logger       *slog.Logger
}

// AuthServiceParams holds dependencies for authService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	SessionRepo  repository.SessionRepository
	Hasher       service.PasswordHasher
	SessionToken service.SessionTokenService
	VerifyToken  service.VerificationTokenService
	Mailer       service.Mailer
	Cooldown     service.ResendCooldown
	Config       *config.Config
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		txManager:    params.TxManager,
		userRepo:     params.UserRepo,
		sessionRepo:  params.SessionRepo,
		hasher:       params.Hasher,
		sessionToken: params.SessionToken,
		verifyToken:  params.VerifyToken,
		mailer:       params.Mailer,
		cooldown:     params.Cooldown,
		tokenTTL:     params.Config.Verification.TokenTTL,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// normalizeEmail case-normalizes an address the way it is stored.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateRegisterInput(input *usecase.RegisterInput) error {
	if _, err := mail.ParseAddress(input.Email); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("email address is not valid")
	}
	if n := len(input.Username); n < usernameMinLen || n > usernameMaxLen {
		return domainerrors.ErrValidationFailed.WithDetails("username must be between 3 and 25 characters")
	}
	if len(input.Password) < passwordMinLen {
		return domainerrors.ErrValidationFailed.WithDetails("password must be at least 6 characters")
	}

	return nil
}

// Register creates an unverified account and dispatches the verification
// email. Dispatch failure is non-fatal: the account stays created and the
// caller is steered to the resend path.
func (srv *authService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	email := normalizeEmail(input.Email)
	username := strings.TrimSpace(input.Username)

	srv.log(ctx).Info("Starting registration", slog.String("email", email))

	if err := validateRegisterInput(&usecase.RegisterInput{Email: email, Username: username, Password: input.Password}); err != nil {
		return nil, err
	}

	// Hash outside the transaction, bcrypt is CPU-bound.
	passwordHash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage("failed to hash password during registration")
	}

	newUser := &entity.User{
		Email:        email,
		Username:     username,
		PasswordHash: passwordHash,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		existing, findErr := userRepo.FindByEmail(ctx, email)
		if findErr == nil {
			if existing.EmailVerified {
				return domainerrors.ErrEmailAlreadyRegistered
			}

			return domainerrors.ErrEmailPendingVerification
		}
		if !errors.Is(findErr, repository.ErrUserNotFound) {
			return errors.Wrap(findErr, "failed to look up email during registration")
		}

		if _, findErr := userRepo.FindByUsername(ctx, username); findErr == nil {
			return domainerrors.ErrUsernameTaken
		} else if !errors.Is(findErr, repository.ErrUserNotFound) {
			return errors.Wrap(findErr, "failed to look up username during registration")
		}

		// The store's unique constraints settle the check-then-act race:
		// a concurrent insert surfaces here as a duplicate error.
		if createErr := userRepo.Create(ctx, newUser); createErr != nil {
			switch {
			case errors.Is(createErr, repository.ErrDuplicateEmail):
				return domainerrors.ErrEmailPendingVerification
			case errors.Is(createErr, repository.ErrDuplicateUsername):
				return domainerrors.ErrUsernameTaken
			}

			return errors.Wrap(createErr, "failed to create user during registration")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Registration rejected", slog.String("email", email), slog.Any("error", err))

		return nil, err
	}

	emailSent := srv.dispatchVerificationEmail(ctx, email)

	srv.log(ctx).Info("Registration completed",
		slog.Any("userID", newUser.ID),
		slog.Bool("emailSent", emailSent),
	)

	return &usecase.RegisterOutput{User: newUser, EmailSent: emailSent}, nil
}

// dispatchVerificationEmail issues a fresh token and attempts delivery.
// Returns whether the email actually went out.
func (srv *authService) dispatchVerificationEmail(ctx context.Context, email string) bool {
	token, err := srv.verifyToken.Issue(email)
	if err != nil {
		srv.log(ctx).Error("Failed to issue verification token", slog.String("email", email), slog.Any("error", err))

		return false
	}

	if err := srv.mailer.SendVerificationEmail(ctx, email, token); err != nil {
		srv.log(ctx).Warn("Failed to send verification email", slog.String("email", email), slog.Any("error", err))

		return false
	}

	return true
}

// Login checks credentials and, for verified accounts only, establishes a
// session. Unknown email and wrong password are indistinguishable to the
// caller.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	email := normalizeEmail(input.Email)

	srv.log(ctx).Debug("Starting login", slog.String("email", email))

	user, err := srv.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}

		return nil, errors.Wrap(err, "failed to look up account during login")
	}

	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("email", email))

		return nil, domainerrors.ErrInvalidCredentials
	}

	// Credentials are correct, but no session is granted until verified.
	if !user.EmailVerified {
		return nil, domainerrors.ErrEmailNotVerified
	}

	accessToken, refreshToken, err := srv.sessionToken.GenerateTokens(user.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate session tokens")
	}

	session := &entity.Session{
		UserID:    user.ID,
		TokenHash: srv.sessionToken.HashToken(refreshToken),
		ExpiresAt: time.Now().Add(srv.sessionToken.RefreshTokenDuration()),
	}
	if err := srv.sessionRepo.Create(ctx, session); err != nil {
		return nil, errors.Wrap(err, "failed to store session during login")
	}

	srv.log(ctx).Debug("Login succeeded", slog.Any("userID", user.ID))

	return &usecase.LoginOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}

// VerifyEmail validates a verification link token and flips the account to
// verified. Re-verifying an already verified account is a no-op success.
func (srv *authService) VerifyEmail(ctx context.Context, token string) (*usecase.VerifyEmailOutput, error) {
	email, err := srv.verifyToken.Validate(token, srv.tokenTTL)
	if err != nil {
		// Expired and tampered differ only in the logs, never to the caller.
		srv.log(ctx).Warn("Verification token rejected", slog.Any("error", err))

		return nil, domainerrors.ErrInvalidVerificationToken
	}

	output := &usecase.VerifyEmailOutput{Email: email}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		user, findErr := userRepo.FindByEmail(ctx, email)
		if findErr != nil {
			if errors.Is(findErr, repository.ErrUserNotFound) {
				return domainerrors.ErrUserNotFound
			}

			return errors.Wrap(findErr, "failed to look up account during verification")
		}

		if user.EmailVerified {
			output.AlreadyVerified = true

			return nil
		}

		user.EmailVerified = true
		if updateErr := userRepo.Update(ctx, user); updateErr != nil {
			return errors.Wrap(updateErr, "failed to mark account verified")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Email verified",
		slog.String("email", email),
		slog.Bool("alreadyVerified", output.AlreadyVerified),
	)

	return output, nil
}

// ResendVerification issues and sends a fresh verification token. The
// acknowledgement for an unknown account is indistinguishable from a
// successful send, and the cooldown is recorded only after a dispatch that
// actually succeeded.
func (srv *authService) ResendVerification(ctx context.Context, input *usecase.ResendVerificationInput) (*usecase.ResendVerificationOutput, error) {
	email := normalizeEmail(input.Email)

	user, err := srv.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Debug("Resend requested for unknown account", slog.String("email", email))

			return &usecase.ResendVerificationOutput{EmailSent: false}, nil
		}

		return nil, errors.Wrap(err, "failed to look up account for resend")
	}

	if user.EmailVerified {
		return nil, domainerrors.ErrEmailAlreadyRegistered
	}

	if ok, remaining := srv.cooldown.CanSend(input.CooldownKey); !ok {
		return nil, domainerrors.ErrResendCooldownActive.WithDetails(
			"wait " + util.FormatDuration(remaining) + " before requesting another email",
		)
	}

	if !srv.dispatchVerificationEmail(ctx, email) {
		return &usecase.ResendVerificationOutput{EmailSent: false}, nil
	}

	srv.cooldown.RecordSend(input.CooldownKey)

	return &usecase.ResendVerificationOutput{EmailSent: true}, nil
}

// Refresh exchanges a stored refresh token for a new token pair, rotating the
// session: the old token stops working the moment the new one is issued.
// Unknown and expired tokens collapse to the same invalid-session outcome.
func (srv *authService) Refresh(ctx context.Context, input *usecase.RefreshInput) (*usecase.RefreshOutput, error) {
	oldHash := srv.sessionToken.HashToken(input.RefreshToken)

	session, err := srv.sessionRepo.FindByTokenHash(ctx, oldHash)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			srv.log(ctx).Warn("Refresh rejected, session unknown or expired")

			return nil, domainerrors.ErrSessionInvalid
		}

		return nil, errors.Wrap(err, "failed to look up session during refresh")
	}

	accessToken, refreshToken, err := srv.sessionToken.GenerateTokens(session.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate session tokens during refresh")
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		sessionRepo := repoFactory.SessionRepo()

		if deleteErr := sessionRepo.DeleteByTokenHash(ctx, oldHash); deleteErr != nil {
			return errors.Wrap(deleteErr, "failed to retire old session during refresh")
		}

		return sessionRepo.Create(ctx, &entity.Session{
			UserID:    session.UserID,
			TokenHash: srv.sessionToken.HashToken(refreshToken),
			ExpiresAt: time.Now().Add(srv.sessionToken.RefreshTokenDuration()),
		})
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Debug("Session refreshed", slog.Any("userID", session.UserID))

	return &usecase.RefreshOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Logout ends the session for the given refresh token. Unknown or already
// cleared tokens succeed, repeated logouts are harmless.
func (srv *authService) Logout(ctx context.Context, input *usecase.LogoutInput) error {
	tokenHash := srv.sessionToken.HashToken(input.RefreshToken)

	if err := srv.sessionRepo.DeleteByTokenHash(ctx, tokenHash); err != nil {
		srv.log(ctx).Error("Failed to delete session", slog.Any("error", err))

		return errors.Wrap(err, "failed to delete session")
	}

	return nil
}

// LogoutAll ends every session of the account. Idempotent: an account with no
// sessions succeeds.
func (srv *authService) LogoutAll(ctx context.Context, userID uuid.UUID) error {
	if err := srv.sessionRepo.DeleteByUserID(ctx, userID); err != nil {
		srv.log(ctx).Error("Failed to delete sessions", slog.Any("userID", userID), slog.Any("error", err))

		return errors.Wrap(err, "failed to delete sessions")
	}

	srv.log(ctx).Info("All sessions ended", slog.Any("userID", userID))

	return nil
}
