// Package money implements fixed-precision monetary amounts as integer
// counts of minor currency units (paise, cents). Amounts are never
// represented as floating point, so sums reconcile exactly.
package money

import (
	"errors"
	"fmt"
)

// ErrCurrencyMismatch is returned when arithmetic mixes two currencies.
var ErrCurrencyMismatch = errors.New("currency mismatch")

// Money is an amount in integer minor units of a single currency.
// The zero value is zero units of the empty currency.
type Money struct {
	// Units is the amount in minor units (e.g. paise). May be negative,
	// as in a net balance.
	Units int64 `json:"units"`

	// Currency is the ISO 4217 code (e.g. "INR", "USD").
	Currency string `json:"currency"`
}

// New returns an amount of the given minor units and currency.
func New(units int64, currency string) Money {
	return Money{Units: units, Currency: currency}
}

// Zero returns a zero amount in the given currency.
func Zero(currency string) Money {
	return Money{Currency: currency}
}

// Add returns m + o. Fails with ErrCurrencyMismatch if the currencies differ.
func (m Money) Add(o Money) (Money, error) {
	if m.Currency != o.Currency {
		return Money{}, fmt.Errorf("%w: %s + %s", ErrCurrencyMismatch, m.Currency, o.Currency)
	}
	return Money{Units: m.Units + o.Units, Currency: m.Currency}, nil
}

// Sub returns m - o. Fails with ErrCurrencyMismatch if the currencies differ.
func (m Money) Sub(o Money) (Money, error) {
	if m.Currency != o.Currency {
		return Money{}, fmt.Errorf("%w: %s - %s", ErrCurrencyMismatch, m.Currency, o.Currency)
	}
	return Money{Units: m.Units - o.Units, Currency: m.Currency}, nil
}

// MulRatio returns m scaled by num/den, truncated toward zero.
// The caller is responsible for reconciling any truncated remainder.
func (m Money) MulRatio(num, den int64) Money {
	return Money{Units: m.Units * num / den, Currency: m.Currency}
}

// IsPositive reports whether the amount is strictly greater than zero.
func (m Money) IsPositive() bool {
	return m.Units > 0
}

// Equals reports whether both amount and currency are identical.
func (m Money) Equals(o Money) bool {
	return m.Units == o.Units && m.Currency == o.Currency
}

// Format renders the amount with two decimal places and the currency code,
// e.g. "12.34 INR". Symbol lookup is left to the presentation layer.
func (m Money) Format() string {
	units := m.Units
	sign := ""
	if units < 0 {
		sign = "-"
		units = -units
	}
	return fmt.Sprintf("%s%d.%02d %s", sign, units/100, units%100, m.Currency)
}
