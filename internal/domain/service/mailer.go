package service

import "context"

// Mailer defines the outbound email collaborator. Dispatch is a best-effort
// side effect: a failure here must never roll back the account mutation that
// preceded it.
type Mailer interface {
	// SendVerificationEmail delivers the verification link for the token to
	// the recipient address.
	SendVerificationEmail(ctx context.Context, recipient, token string) error
}
