// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core entity in the system, representing a single account.
// Email and Username are globally unique; the email is stored lowercased.
type User struct {
	ID            uuid.UUID // The unique identifier for the account.
	Email         string    // Login identifier, case-normalized to lowercase.
	Username      string    // Display handle, 3-25 characters, unique.
	PasswordHash  string    // Bcrypt hash of the password. Never the plaintext.
	EmailVerified bool      // False until the verification link is confirmed.
	CreatedAt     time.Time // Timestamp of when this account was created.
	UpdatedAt     time.Time // Timestamp of the last modification.
}

// Session represents a single authenticated session established at login.
// The raw refresh token is never stored; only its SHA-256 hash is kept so a
// leaked database cannot be replayed against the API.
type Session struct {
	ID        uuid.UUID // The unique ID for this session record.
	UserID    uuid.UUID // Links this session to the account it belongs to.
	TokenHash string    // SHA-256 hash of the raw refresh token.
	ExpiresAt time.Time // When this session stops being usable.
	CreatedAt time.Time // When the user logged in.
}
