// Package money provides the Money value object used for all balances and
// transaction amounts. Amounts are fixed-point decimals with two fractional
// digits; every arithmetic operation requires matching currencies.
package money

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/altinbank/core/pkg/currency"
	"github.com/shopspring/decimal"
)

// Decimals is the number of fractional digits carried by every amount.
const Decimals = 2

var (
	// ErrCurrencyMismatch is returned when an operation combines amounts
	// in different currencies.
	ErrCurrencyMismatch = errors.New("currency mismatch")

	// ErrInvalidDecimalPlaces is returned when an amount carries more
	// fractional digits than the fixed-point representation allows.
	ErrInvalidDecimalPlaces = errors.New("amount has more than 2 decimal places")
)

// Money is an immutable monetary value in a specific currency.
//
// Invariants:
//   - The amount always has at most two fractional digits.
//   - The currency code is always valid.
//   - Arithmetic between two Money values requires the same currency.
type Money struct {
	amount   decimal.Decimal
	currency currency.Code
}

// New creates a Money value from a decimal amount and currency code.
// The amount must not carry more than two fractional digits.
func New(amount decimal.Decimal, code currency.Code) (Money, error) {
	if !currency.IsValidFormat(code.String()) {
		return Money{}, currency.ErrInvalidCurrencyCode
	}
	if !amount.Equal(amount.Truncate(Decimals)) {
		return Money{}, ErrInvalidDecimalPlaces
	}
	return Money{amount: amount, currency: code}, nil
}

// NewFromString parses a decimal string such as "1000.00" into Money.
func NewFromString(s string, code currency.Code) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return New(d, code)
}

// NewFromFloat converts a float64 into Money. The value is validated
// against the two-fractional-digit limit before conversion.
func NewFromFloat(f float64, code currency.Code) (Money, error) {
	return New(decimal.NewFromFloat(f), code)
}

// Zero returns a zero amount in the given currency.
func Zero(code currency.Code) Money {
	return Money{amount: decimal.Zero, currency: code}
}

// Amount returns the underlying decimal amount.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Float64 returns the amount as a float64. Exact for two fractional digits
// within the supported range.
func (m Money) Float64() float64 {
	f, _ := m.amount.Float64()
	return f
}

// Currency returns the currency code of the amount.
func (m Money) Currency() currency.Code {
	return m.currency
}

// Add returns m + other. Fails on currency mismatch.
func (m Money) Add(other Money) (Money, error) {
	if !m.IsSameCurrency(other) {
		return Money{}, ErrCurrencyMismatch
	}
	return Money{amount: m.amount.Add(other.amount), currency: m.currency}, nil
}

// Subtract returns m - other. Fails on currency mismatch.
func (m Money) Subtract(other Money) (Money, error) {
	if !m.IsSameCurrency(other) {
		return Money{}, ErrCurrencyMismatch
	}
	return Money{amount: m.amount.Sub(other.amount), currency: m.currency}, nil
}

// Negate returns the amount with its sign flipped.
func (m Money) Negate() Money {
	return Money{amount: m.amount.Neg(), currency: m.currency}
}

// Equals reports whether both amount and currency match.
func (m Money) Equals(other Money) bool {
	return m.IsSameCurrency(other) && m.amount.Equal(other.amount)
}

// GreaterThan reports whether m > other. Fails on currency mismatch.
func (m Money) GreaterThan(other Money) (bool, error) {
	if !m.IsSameCurrency(other) {
		return false, ErrCurrencyMismatch
	}
	return m.amount.GreaterThan(other.amount), nil
}

// LessThan reports whether m < other. Fails on currency mismatch.
func (m Money) LessThan(other Money) (bool, error) {
	if !m.IsSameCurrency(other) {
		return false, ErrCurrencyMismatch
	}
	return m.amount.LessThan(other.amount), nil
}

// IsSameCurrency reports whether both values share a currency.
func (m Money) IsSameCurrency(other Money) bool {
	return m.currency == other.currency
}

// IsPositive reports whether the amount is strictly greater than zero.
func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// IsNegative reports whether the amount is strictly less than zero.
func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// String formats the amount with two fractional digits and the currency
// code, e.g. "1000.00 EUR".
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.amount.StringFixed(Decimals), m.currency)
}

// MarshalJSON serializes the value as {"amount":"1000.00","currency":"EUR"}.
// The amount is a string so no precision is lost in transit.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Amount   string `json:"amount"`
		Currency string `json:"currency"`
	}{
		Amount:   m.amount.StringFixed(Decimals),
		Currency: m.currency.String(),
	})
}

// UnmarshalJSON parses the wire form produced by MarshalJSON.
func (m *Money) UnmarshalJSON(data []byte) error {
	var wire struct {
		Amount   string `json:"amount"`
		Currency string `json:"currency"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	parsed, err := NewFromString(wire.Amount, currency.Code(wire.Currency))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
