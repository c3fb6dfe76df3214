package models

// Friend is a known contact of a user. Expense participants other than
// Self must reference a friend of the acting user.
type Friend struct {
	// ID is the unique identifier for the friend record (UUID format).
	ID string `json:"id"`

	// UserID is the account this contact belongs to.
	UserID string `json:"-"`

	// Name is the display name of the contact.
	Name string `json:"name"`

	// Email is used for debt notifications. Optional.
	Email string `json:"email,omitempty"`

	// CreatedAt is the Unix timestamp when the friend was added.
	CreatedAt int64 `json:"created_at"`
}
