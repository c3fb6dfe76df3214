package models

import "github.com/kmadan/splitledger/internal/money"

// DebtType is the origin kind of an obligation.
type DebtType string

const (
	// DebtSplit marks obligations derived from a split expense.
	DebtSplit DebtType = "split"
)

// DebtStatus is the settlement state of an obligation.
type DebtStatus string

const (
	DebtPending DebtStatus = "pending"
	DebtSettled DebtStatus = "settled"
)

// DebtObligation is a single directed debt: Debtor owes Creditor Amount.
// Obligations are created in a batch when their expense is created and
// removed in cascade when it is deleted.
type DebtObligation struct {
	// ID is the unique identifier for the obligation (UUID format).
	ID string `json:"id"`

	// UserID is the account whose ledger this obligation belongs to.
	UserID string `json:"-"`

	// ExpenseID links back to the owning expense.
	ExpenseID string `json:"expense_id"`

	// Creditor is the participant who is owed.
	Creditor Participant `json:"creditor"`

	// Debtor is the participant who owes. Never equal to Creditor.
	Debtor Participant `json:"debtor"`

	// Amount is strictly positive.
	Amount money.Money `json:"amount"`

	// Type records where the obligation came from.
	Type DebtType `json:"type"`

	// Status is pending until settled.
	Status DebtStatus `json:"status"`

	// CreatedAt is the Unix timestamp when the obligation was recorded.
	CreatedAt int64 `json:"created_at"`
}
