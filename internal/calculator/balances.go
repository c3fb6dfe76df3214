package calculator

import (
	"github.com/kmadan/splitledger/internal/models"
	"github.com/kmadan/splitledger/internal/money"
)

// LedgerSummary is a viewing user's aggregate position over a set of
// obligations. It is a transient view, recomputed on demand.
type LedgerSummary struct {
	// TotalLent is the sum of pending split amounts owed to the viewer.
	TotalLent money.Money `json:"total_lent"`

	// TotalOwed is the sum of pending split amounts the viewer owes.
	TotalOwed money.Money `json:"total_owed"`

	// NetBalance is TotalLent - TotalOwed. Negative when the viewer
	// owes more than they are owed.
	NetBalance money.Money `json:"net_balance"`
}

// Summarize folds obligations into the viewer's ledger summary. Only
// pending split-type obligations in the summary currency are counted;
// everything else is ignored, so a malformed or empty input degrades to
// zero values rather than failing.
//
// Summarize is a pure function of its input: calling it twice on the
// same sequence yields an identical summary, and concurrent callers
// never interfere.
func Summarize(viewer models.Participant, currency string, obligations []models.DebtObligation) LedgerSummary {
	var lent, owed int64
	for _, o := range obligations {
		if o.Type != models.DebtSplit || o.Status != models.DebtPending {
			continue
		}
		if o.Amount.Currency != currency {
			continue
		}
		switch viewer {
		case o.Creditor:
			lent += o.Amount.Units
		case o.Debtor:
			owed += o.Amount.Units
		}
	}
	return LedgerSummary{
		TotalLent:  money.New(lent, currency),
		TotalOwed:  money.New(owed, currency),
		NetBalance: money.New(lent-owed, currency),
	}
}
