package models

import "github.com/kmadan/splitledger/internal/money"

// SplitStrategy is the rule used to divide an expense total.
type SplitStrategy string

const (
	// StrategyEqual divides the total evenly among all sharers,
	// payer included.
	StrategyEqual SplitStrategy = "equal"

	// StrategyCustom uses caller-supplied per-participant shares that
	// must sum exactly to the total.
	StrategyCustom SplitStrategy = "custom"
)

// ExpenseStatus is the lifecycle state of an expense.
type ExpenseStatus string

const (
	ExpenseActive  ExpenseStatus = "active"
	ExpenseSettled ExpenseStatus = "settled"
)

// Share is one participant's allocated portion of an expense total.
type Share struct {
	Participant Participant `json:"participant"`
	Amount      money.Money `json:"amount"`
}

// Expense is a persisted shared expense. An expense owns the debt
// obligations derived from it: deleting the expense cascades to them.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string `json:"id"`

	// UserID is the account that recorded the expense. All participants
	// are interpreted relative to this user.
	UserID string `json:"-"`

	// Description is the human-readable reason for the expense.
	Description string `json:"description"`

	// Total is the full expense amount in minor units.
	Total money.Money `json:"total"`

	// Payer is who covered the total. Self or a friend ID; never part
	// of Shares.
	Payer Participant `json:"paid_by"`

	// Strategy records how the total was divided.
	Strategy SplitStrategy `json:"split_type"`

	// Shares are the allocated portions for the selected participants,
	// in request order. The payer's own portion is total minus the sum
	// of Shares and is derived, never stored.
	Shares []Share `json:"shares"`

	// Status transitions active -> settled once every derived debt is
	// settled. No other mutation happens in place.
	Status ExpenseStatus `json:"status"`

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64 `json:"created_at"`
}
