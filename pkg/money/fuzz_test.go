package money_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/altinbank/core/pkg/currency"
	"github.com/altinbank/core/pkg/money"
)

// FuzzNew tests the constructor invariants with random input.
func FuzzNew(f *testing.F) {
	// Only add parseable amounts and valid currency codes as seed values
	f.Add("100.00", "USD")
	f.Add("-50.25", "EUR")
	f.Add("0", "ALL")
	f.Add("999999999999.99", "GBP")
	f.Add("0.01", "CHF")

	f.Fuzz(func(t *testing.T, amount string, cc string) {
		defer func() {
			if r := recover(); r != nil {
				t.Errorf("New panicked: %v (amount=%q, currency=%q)", r, amount, cc)
			}
		}()

		// Skip invalid currency codes in fuzzing
		if !currency.IsValidFormat(cc) {
			t.Skip("Skipping invalid currency code")
		}
		d, err := decimal.NewFromString(amount)
		if err != nil {
			t.Skip("Skipping unparseable amount")
		}

		code := currency.Code(cc)
		m, err := money.New(d, code)
		if err != nil {
			// More than two fractional digits is the only rejection left.
			if d.Equal(d.Truncate(money.Decimals)) {
				t.Fatalf("Failed to create money: %v", err)
			}
			return
		}

		// Verify currency code is preserved
		if got := m.Currency(); got != code {
			t.Errorf("Currency code changed: got %q, want %q", got, code)
		}

		// Verify the amount and its sign are preserved
		if !m.Amount().Equal(d) {
			t.Errorf("Amount changed: got %s, want %s", m.Amount(), d)
		}
		switch {
		case d.IsPositive() && !m.IsPositive():
			t.Errorf("Positive amount %s became non-positive: %s", d, m.Amount())
		case d.IsNegative() && !m.IsNegative():
			t.Errorf("Negative amount %s became non-negative: %s", d, m.Amount())
		case d.IsZero() && !m.IsZero():
			t.Errorf("Zero amount became non-zero: %s", m.Amount())
		}

		// Verify the formatted value parses back to an equal one
		s := m.String()
		back, err := money.NewFromString(s[:len(s)-4], m.Currency())
		if err != nil {
			t.Fatalf("Round-trip parse failed for %q: %v", s, err)
		}
		if !back.Equals(m) {
			t.Errorf("Round trip changed value: got %s, want %s", back, m)
		}
	})
}
