package service

import "time"

// ResendCooldown throttles repeated verification-email sends per client key.
// It is keyed by session, not by account, so it is a coarse best-effort
// anti-spam measure, not a security control.
type ResendCooldown interface {
	// CanSend reports whether a send is currently allowed for the key, and if
	// not, how long until the window reopens.
	CanSend(key string) (bool, time.Duration)

	// RecordSend marks a send for the key. Callers record only after the
	// dispatch actually succeeded.
	RecordSend(key string)
}
