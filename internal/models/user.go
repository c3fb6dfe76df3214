package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered account.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string `json:"id"`

	// Email is the user's email address (unique). Used for login and
	// notifications.
	Email string `json:"email"`

	// DisplayName is the name shown to other users.
	DisplayName string `json:"display_name"`

	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash string `json:"-"`

	// Currency is the user's ledger currency (ISO 4217). Every expense
	// and debt of this user is recorded in it.
	Currency string `json:"currency"`

	// CreatedAt and UpdatedAt are Unix timestamps.
	CreatedAt int64 `json:"created_at"`
	UpdatedAt int64 `json:"updated_at"`
}

// NewUser creates a user with a fresh ID and timestamps.
func NewUser(email, displayName, passwordHash, currency string) *User {
	now := time.Now().Unix()
	return &User{
		ID:           uuid.New().String(),
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: passwordHash,
		Currency:     currency,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
