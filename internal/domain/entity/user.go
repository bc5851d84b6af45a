// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core entity of the system, representing a single registered account.
// PasswordHash and RefreshTokenHash are credential material; they must never be
// serialized into API responses (see Sanitized).
type User struct {
	ID               uuid.UUID `json:"id"`        // The unique identifier for the user.
	Email            string    `json:"email"`     // The user's login identifier; unique and stored lowercased.
	FullName         string    `json:"fullName"`  // The user's display name.
	PasswordHash     string    `json:"-"`         // bcrypt hash of the user's password.
	RefreshTokenHash string    `json:"-"`         // SHA-256 hash of the single active refresh token; empty when logged out.
	CreatedAt        time.Time `json:"createdAt"` // Timestamp of when this account was created.
	UpdatedAt        time.Time `json:"updatedAt"` // Timestamp of the last modification to this account.
}

// Sanitized returns a copy of the user with all credential material stripped.
// Handlers and the auth middleware attach only sanitized users to responses
// and request contexts.
func (u *User) Sanitized() *User {
	if u == nil {
		return nil
	}

	clone := *u
	clone.PasswordHash = ""
	clone.RefreshTokenHash = ""

	return &clone
}
