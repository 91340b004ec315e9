package money_test

import (
	"testing"

	"github.com/altinbank/core/pkg/currency"
	"github.com/altinbank/core/pkg/money"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("valid amount", func(t *testing.T) {
		m, err := money.NewFromString("1000.00", "EUR")
		require.NoError(t, err)
		assert.Equal(t, "1000.00 EUR", m.String())
	})

	t.Run("rejects more than two decimal places", func(t *testing.T) {
		_, err := money.NewFromString("10.005", "EUR")
		assert.ErrorIs(t, err, money.ErrInvalidDecimalPlaces)
	})

	t.Run("rejects invalid currency code", func(t *testing.T) {
		_, err := money.NewFromString("10.00", "euro")
		assert.ErrorIs(t, err, currency.ErrInvalidCurrencyCode)
	})

	t.Run("rejects malformed amount string", func(t *testing.T) {
		_, err := money.NewFromString("ten", "EUR")
		assert.Error(t, err)
	})
}

func TestArithmetic(t *testing.T) {
	t.Parallel()
	a, err := money.NewFromString("100.50", "EUR")
	require.NoError(t, err)
	b, err := money.NewFromString("0.50", "EUR")
	require.NoError(t, err)

	t.Run("add", func(t *testing.T) {
		sum, err := a.Add(b)
		require.NoError(t, err)
		assert.Equal(t, "101.00 EUR", sum.String())
	})

	t.Run("subtract", func(t *testing.T) {
		diff, err := a.Subtract(b)
		require.NoError(t, err)
		assert.Equal(t, "100.00 EUR", diff.String())
	})

	t.Run("negate", func(t *testing.T) {
		assert.True(t, b.Negate().IsNegative())
	})

	t.Run("currency mismatch", func(t *testing.T) {
		usd, err := money.NewFromString("1.00", "USD")
		require.NoError(t, err)
		_, err = a.Add(usd)
		assert.ErrorIs(t, err, money.ErrCurrencyMismatch)
		_, err = a.Subtract(usd)
		assert.ErrorIs(t, err, money.ErrCurrencyMismatch)
		_, err = a.GreaterThan(usd)
		assert.ErrorIs(t, err, money.ErrCurrencyMismatch)
	})
}

func TestComparisons(t *testing.T) {
	t.Parallel()
	big, _ := money.NewFromString("50.00", "EUR")
	small, _ := money.NewFromString("20.00", "EUR")

	gt, err := big.GreaterThan(small)
	require.NoError(t, err)
	assert.True(t, gt)

	lt, err := small.LessThan(big)
	require.NoError(t, err)
	assert.True(t, lt)

	assert.True(t, big.IsPositive())
	assert.True(t, small.Negate().IsNegative())
	assert.True(t, money.Zero("EUR").IsZero())
	assert.True(t, big.Equals(big))
	assert.False(t, big.Equals(small))
}

func TestNewFromFloat(t *testing.T) {
	t.Parallel()
	m, err := money.NewFromFloat(150.25, "EUR")
	require.NoError(t, err)
	assert.True(t, m.Amount().Equal(decimal.RequireFromString("150.25")))

	_, err = money.NewFromFloat(0.001, "EUR")
	assert.ErrorIs(t, err, money.ErrInvalidDecimalPlaces)
}
