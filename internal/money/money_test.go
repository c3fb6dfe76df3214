package money

import (
	"errors"
	"testing"
)

func TestAddSub(t *testing.T) {
	a := New(250, "INR")
	b := New(100, "INR")

	sum, err := a.Add(b)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if sum.Units != 350 || sum.Currency != "INR" {
		t.Errorf("Add = %+v, want 350 INR", sum)
	}

	diff, err := a.Sub(b)
	if err != nil {
		t.Fatalf("Sub failed: %v", err)
	}
	if diff.Units != 150 {
		t.Errorf("Sub = %d, want 150", diff.Units)
	}

	// Differences may go negative; that is a valid net balance.
	neg, err := b.Sub(a)
	if err != nil {
		t.Fatalf("Sub failed: %v", err)
	}
	if neg.Units != -150 {
		t.Errorf("Sub = %d, want -150", neg.Units)
	}
}

func TestCurrencyMismatch(t *testing.T) {
	a := New(100, "INR")
	b := New(100, "USD")

	if _, err := a.Add(b); !errors.Is(err, ErrCurrencyMismatch) {
		t.Errorf("Add across currencies = %v, want ErrCurrencyMismatch", err)
	}
	if _, err := a.Sub(b); !errors.Is(err, ErrCurrencyMismatch) {
		t.Errorf("Sub across currencies = %v, want ErrCurrencyMismatch", err)
	}
}

func TestMulRatio(t *testing.T) {
	m := New(1000, "INR")

	half := m.MulRatio(1, 2)
	if half.Units != 500 {
		t.Errorf("MulRatio(1,2) = %d, want 500", half.Units)
	}

	// Truncates toward zero; remainder reconciliation is the caller's job.
	third := m.MulRatio(1, 3)
	if third.Units != 333 {
		t.Errorf("MulRatio(1,3) = %d, want 333", third.Units)
	}
}

func TestComparisons(t *testing.T) {
	if !New(1, "INR").IsPositive() {
		t.Error("1 minor unit should be positive")
	}
	if New(0, "INR").IsPositive() {
		t.Error("zero should not be positive")
	}
	if New(-5, "INR").IsPositive() {
		t.Error("negative should not be positive")
	}
	if !New(42, "INR").Equals(New(42, "INR")) {
		t.Error("identical amounts should be equal")
	}
	if New(42, "INR").Equals(New(42, "USD")) {
		t.Error("same units in different currencies should not be equal")
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		m    Money
		want string
	}{
		{New(123456, "INR"), "1234.56 INR"},
		{New(5, "USD"), "0.05 USD"},
		{New(-150, "INR"), "-1.50 INR"},
		{Zero("EUR"), "0.00 EUR"},
	}
	for _, tt := range tests {
		if got := tt.m.Format(); got != tt.want {
			t.Errorf("Format(%d %s) = %q, want %q", tt.m.Units, tt.m.Currency, got, tt.want)
		}
	}
}
