package calculator

import "github.com/kmadan/splitledger/internal/models"

// DeriveDebts turns an allocation into pairwise debt obligations: one
// pending split-type obligation per participant share, owed to the
// payer. The payer never owes themselves, and zero shares produce no
// obligation. Output order matches allocation order so downstream
// persistence and notification are deterministic.
//
// DeriveDebts is pure: it assigns no IDs or timestamps and performs no
// I/O. Persisting and notifying the result is the caller's job.
func DeriveDebts(expenseID string, payer models.Participant, alloc *Allocation) []models.DebtObligation {
	debts := make([]models.DebtObligation, 0, len(alloc.Shares))
	for _, share := range alloc.Shares {
		if share.Participant == payer || !share.Amount.IsPositive() {
			continue
		}
		debts = append(debts, models.DebtObligation{
			ExpenseID: expenseID,
			Creditor:  payer,
			Debtor:    share.Participant,
			Amount:    share.Amount,
			Type:      models.DebtSplit,
			Status:    models.DebtPending,
		})
	}
	return debts
}
