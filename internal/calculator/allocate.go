// Package calculator implements the pure split-expense ledger core:
// allocating a total across participants, deriving pairwise debts from
// an allocation, and folding debts into per-user balance summaries.
// Nothing in this package touches storage or holds mutable state, so
// every function is safe for concurrent use.
package calculator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kmadan/splitledger/internal/models"
	"github.com/kmadan/splitledger/internal/money"
)

// PayerImplicitlyIncluded names the participant convention: the payer is
// always counted as one extra sharer on top of the selected participant
// set and must never appear inside it.
const PayerImplicitlyIncluded = true

var (
	ErrEmptyDescription     = errors.New("description must not be empty")
	ErrNonPositiveTotal     = errors.New("total must be greater than zero")
	ErrNoParticipants       = errors.New("at least one participant required")
	ErrDuplicateParticipant = errors.New("duplicate participant")
	ErrPayerInParticipants  = errors.New("payer must not appear in the participant set")
	ErrNegativeShare        = errors.New("custom share must not be negative")
	ErrSplitMismatch        = errors.New("custom shares must sum to the total")
)

// SplitRequest is the validated input for one allocation.
type SplitRequest struct {
	Description  string
	Total        money.Money
	Strategy     models.SplitStrategy
	Payer        models.Participant
	Participants []models.Participant

	// CustomShares maps participant to proposed share. Consulted only
	// for StrategyCustom; a missing entry counts as zero.
	CustomShares map[models.Participant]money.Money
}

// Allocation is the result of dividing a total: one share per selected
// participant, in request order, summing exactly to the total minus the
// payer's implicit share.
type Allocation struct {
	Total  money.Money
	Shares []models.Share
}

// PayerShare is the payer's implicit portion: the total minus the sum of
// the explicit shares. It is derived rather than stored to avoid double
// counting.
func (a *Allocation) PayerShare() money.Money {
	remaining := a.Total.Units
	for _, s := range a.Shares {
		remaining -= s.Amount.Units
	}
	return money.New(remaining, a.Total.Currency)
}

// Allocate validates a split request and divides its total across the
// selected participants. The returned shares always reconcile exactly:
// sum(shares) + payer share == total, in minor units.
func Allocate(req SplitRequest) (*Allocation, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	switch req.Strategy {
	case models.StrategyCustom:
		return allocateCustom(req)
	default:
		return allocateEqual(req)
	}
}

func validate(req SplitRequest) error {
	if strings.TrimSpace(req.Description) == "" {
		return ErrEmptyDescription
	}
	if !req.Total.IsPositive() {
		return ErrNonPositiveTotal
	}
	if len(req.Participants) == 0 {
		return ErrNoParticipants
	}
	seen := make(map[models.Participant]bool, len(req.Participants))
	for _, p := range req.Participants {
		if seen[p] {
			return fmt.Errorf("%w: %s", ErrDuplicateParticipant, p)
		}
		seen[p] = true
	}
	if seen[req.Payer] {
		return fmt.Errorf("%w: %s", ErrPayerInParticipants, req.Payer)
	}
	return nil
}

// allocateEqual divides the total evenly among all sharers. Integer
// division leaves a remainder of at most people-1 minor units; it is
// handed out one unit at a time in participant order so the shares sum
// to the total exactly, with the payer absorbing the base share.
func allocateEqual(req SplitRequest) (*Allocation, error) {
	people := int64(len(req.Participants))
	if PayerImplicitlyIncluded {
		people++
	}

	base := req.Total.Units / people
	remainder := req.Total.Units % people

	shares := make([]models.Share, len(req.Participants))
	for i, p := range req.Participants {
		units := base
		if int64(i) < remainder {
			units++
		}
		shares[i] = models.Share{
			Participant: p,
			Amount:      money.New(units, req.Total.Currency),
		}
	}
	return &Allocation{Total: req.Total, Shares: shares}, nil
}

// allocateCustom uses the caller's proposed shares verbatim. The shares
// must partition the total exactly; there is no implicit remainder
// assignment in this mode.
func allocateCustom(req SplitRequest) (*Allocation, error) {
	sum := money.Zero(req.Total.Currency)
	shares := make([]models.Share, len(req.Participants))
	for i, p := range req.Participants {
		proposed, ok := req.CustomShares[p]
		if !ok {
			proposed = money.Zero(req.Total.Currency)
		}
		if proposed.Units < 0 {
			return nil, fmt.Errorf("%w: %s", ErrNegativeShare, p)
		}
		var err error
		if sum, err = sum.Add(proposed); err != nil {
			return nil, err
		}
		shares[i] = models.Share{Participant: p, Amount: proposed}
	}

	// Zero tolerance: off by one minor unit is still a mismatch.
	if !sum.Equals(req.Total) {
		return nil, fmt.Errorf("%w: proposed %s, total %s", ErrSplitMismatch, sum.Format(), req.Total.Format())
	}
	return &Allocation{Total: req.Total, Shares: shares}, nil
}
