package calculator

import (
	"testing"

	"github.com/kmadan/splitledger/internal/models"
)

func pendingSplit(creditor, debtor models.Participant, units int64) models.DebtObligation {
	return models.DebtObligation{
		Creditor: creditor,
		Debtor:   debtor,
		Amount:   inr(units),
		Type:     models.DebtSplit,
		Status:   models.DebtPending,
	}
}

func TestSummarize(t *testing.T) {
	obligations := []models.DebtObligation{
		pendingSplit("u1", "u2", 100),
	}

	u1 := Summarize("u1", "INR", obligations)
	if u1.TotalLent.Units != 100 || u1.TotalOwed.Units != 0 || u1.NetBalance.Units != 100 {
		t.Errorf("u1 summary = lent %d owed %d net %d, want 100/0/100",
			u1.TotalLent.Units, u1.TotalOwed.Units, u1.NetBalance.Units)
	}

	u2 := Summarize("u2", "INR", obligations)
	if u2.TotalLent.Units != 0 || u2.TotalOwed.Units != 100 || u2.NetBalance.Units != -100 {
		t.Errorf("u2 summary = lent %d owed %d net %d, want 0/100/-100",
			u2.TotalLent.Units, u2.TotalOwed.Units, u2.NetBalance.Units)
	}
}

func TestSummarizeFilters(t *testing.T) {
	settled := pendingSplit("self", "f1", 500)
	settled.Status = models.DebtSettled

	other := pendingSplit("self", "f1", 700)
	other.Type = models.DebtType("loan")

	foreign := pendingSplit("self", "f1", 900)
	foreign.Amount.Currency = "USD"

	obligations := []models.DebtObligation{
		pendingSplit("self", "f1", 100),
		pendingSplit("f2", "self", 40),
		settled,
		other,
		foreign,
	}

	got := Summarize(models.Self, "INR", obligations)
	if got.TotalLent.Units != 100 {
		t.Errorf("total lent = %d, want 100 (settled/other-type/foreign ignored)", got.TotalLent.Units)
	}
	if got.TotalOwed.Units != 40 {
		t.Errorf("total owed = %d, want 40", got.TotalOwed.Units)
	}
	if got.NetBalance.Units != 60 {
		t.Errorf("net balance = %d, want 60", got.NetBalance.Units)
	}
}

func TestSummarizeIdempotent(t *testing.T) {
	obligations := []models.DebtObligation{
		pendingSplit("self", "f1", 123),
		pendingSplit("f2", "self", 45),
		pendingSplit("self", "f3", 6),
	}

	first := Summarize(models.Self, "INR", obligations)
	second := Summarize(models.Self, "INR", obligations)
	if first != second {
		t.Errorf("summaries differ across identical calls: %+v vs %+v", first, second)
	}

	want := first.TotalLent.Units - first.TotalOwed.Units
	if first.NetBalance.Units != want {
		t.Errorf("net balance %d != lent - owed (%d)", first.NetBalance.Units, want)
	}
}

func TestSummarizeEmptyInput(t *testing.T) {
	got := Summarize(models.Self, "INR", nil)
	if got.TotalLent.Units != 0 || got.TotalOwed.Units != 0 || got.NetBalance.Units != 0 {
		t.Errorf("empty input must degrade to zero values, got %+v", got)
	}
	if got.TotalLent.Currency != "INR" {
		t.Errorf("summary currency = %s, want INR", got.TotalLent.Currency)
	}
}
