// Package mail provides the outbound email dispatch implementations.
package mail

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/gomail.v2"

	"focusflow/config"
	"focusflow/internal/domain/service"
)

// smtpMailer sends verification emails over SMTP.
type smtpMailer struct {
	dialer  *gomail.Dialer
	from    string
	baseURL string
	logger  *slog.Logger
}

// NewMailer builds the mailer from configuration. When no mail section is
// configured it falls back to a log-only mailer, so local environments work
// without an SMTP server.
func NewMailer(cfg *config.Config, logger *slog.Logger) service.Mailer {
	if cfg.Mail == nil || cfg.Mail.Host == "" {
		logger.Warn("Mail transport not configured, verification emails will only be logged")

		return &logMailer{logger: logger}
	}

	return &smtpMailer{
		dialer:  gomail.NewDialer(cfg.Mail.Host, cfg.Mail.Port, cfg.Mail.Username, cfg.Mail.Password),
		from:    cfg.Mail.From,
		baseURL: strings.TrimSuffix(cfg.Mail.BaseURL, "/"),
		logger:  logger,
	}
}

// SendVerificationEmail delivers the confirmation link for the token.
func (m *smtpMailer) SendVerificationEmail(_ context.Context, recipient, token string) error {
	confirmURL := fmt.Sprintf("%s/auth/verify-email/%s", m.baseURL, token)

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", recipient)
	msg.SetHeader("Subject", "Please verify your email - FocusFlow")
	msg.SetBody("text/html", fmt.Sprintf(
		"<p>Welcome to FocusFlow!</p><p>Please confirm your email address by following this link:</p><p><a href=%q>%s</a></p><p>The link expires in one hour.</p>",
		confirmURL, confirmURL,
	))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return errors.Wrap(err, "failed to send verification email")
	}

	m.logger.Info("Verification email sent", slog.String("recipient", recipient))

	return nil
}

// logMailer records the verification link instead of dispatching it.
type logMailer struct {
	logger *slog.Logger
}

func (m *logMailer) SendVerificationEmail(_ context.Context, recipient, token string) error {
	m.logger.Info("Verification email (log only)",
		slog.String("recipient", recipient),
		slog.String("token", token),
	)

	return nil
}
