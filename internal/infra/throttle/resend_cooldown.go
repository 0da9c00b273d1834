// Package throttle provides in-memory rate limiting for best-effort abuse
// prevention. State is per-process; a restart resets every window.
package throttle

import (
	"sync"
	"time"

	"focusflow/config"
	"focusflow/internal/domain/service"
)

const cleanupInterval = 10 * time.Minute

// memoryCooldown tracks the last verification-email send per client key and
// enforces a fixed window between sends.
type memoryCooldown struct {
	mu       sync.Mutex
	lastSend map[string]time.Time
	window   time.Duration
	now      func() time.Time
}

// NewResendCooldown is the constructor for memoryCooldown. The window comes
// from the verification policy configuration.
func NewResendCooldown(cfg *config.Config) service.ResendCooldown {
	cd := newMemoryCooldown(cfg.Verification.ResendCooldown, time.Now)
	go cd.cleanup()

	return cd
}

func newMemoryCooldown(window time.Duration, now func() time.Time) *memoryCooldown {
	return &memoryCooldown{
		lastSend: make(map[string]time.Time),
		window:   window,
		now:      now,
	}
}

// CanSend reports whether the window has reopened for the key, and the
// remaining wait otherwise.
func (cd *memoryCooldown) CanSend(key string) (bool, time.Duration) {
	cd.mu.Lock()
	defer cd.mu.Unlock()

	last, exists := cd.lastSend[key]
	if !exists {
		return true, 0
	}

	elapsed := cd.now().Sub(last)
	if elapsed >= cd.window {
		return true, 0
	}

	return false, cd.window - elapsed
}

// RecordSend marks a send for the key. Called only after dispatch succeeded,
// so a failed send never locks the user out of the resend path.
func (cd *memoryCooldown) RecordSend(key string) {
	cd.mu.Lock()
	defer cd.mu.Unlock()

	cd.lastSend[key] = cd.now()
}

// cleanup drops entries whose window has long passed so the map does not grow
// without bound.
func (cd *memoryCooldown) cleanup() {
	for {
		time.Sleep(cleanupInterval)
		cd.mu.Lock()
		for key, last := range cd.lastSend {
			if cd.now().Sub(last) > cd.window {
				delete(cd.lastSend, key)
			}
		}
		cd.mu.Unlock()
	}
}
