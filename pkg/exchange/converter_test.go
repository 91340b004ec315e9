package exchange_test

import (
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/altinbank/core/pkg/exchange"
	"github.com/altinbank/core/pkg/money"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	os.Exit(m.Run())
}

func newConverter() *exchange.Converter {
	return exchange.NewConverter(exchange.NewStaticSource(), nil)
}

func TestRateLookup(t *testing.T) {
	t.Parallel()
	source := exchange.NewStaticSource()

	t.Run("known pair", func(t *testing.T) {
		rate, ok := source.Rate("USD", "EUR")
		require.True(t, ok)
		assert.True(t, rate.Equal(decimal.RequireFromString("0.85")))
	})

	t.Run("same currency has no rate", func(t *testing.T) {
		_, ok := source.Rate("EUR", "EUR")
		assert.False(t, ok)
	})

	t.Run("unknown pair", func(t *testing.T) {
		_, ok := source.Rate("EUR", "JPY")
		assert.False(t, ok)
	})
}

func TestConvert(t *testing.T) {
	t.Parallel()
	conv := newConverter()

	t.Run("applies rate with half-up rounding", func(t *testing.T) {
		m, err := money.NewFromString("100.00", "USD")
		require.NoError(t, err)
		res, err := conv.Convert(m, "EUR")
		require.NoError(t, err)
		assert.True(t, res.Applied)
		assert.Equal(t, "85.00 EUR", res.Converted.String())
	})

	t.Run("rounds to two fractional digits", func(t *testing.T) {
		m, err := money.NewFromString("123.45", "ALL")
		require.NoError(t, err)
		res, err := conv.Convert(m, "EUR")
		require.NoError(t, err)
		// 123.45 * 0.0081 = 0.999945 -> 1.00
		assert.Equal(t, "1.00 EUR", res.Converted.String())
	})

	t.Run("same currency passes through", func(t *testing.T) {
		m, err := money.NewFromString("42.00", "EUR")
		require.NoError(t, err)
		res, err := conv.Convert(m, "EUR")
		require.NoError(t, err)
		assert.False(t, res.Applied)
		assert.True(t, res.Converted.Equals(m))
	})

	t.Run("missing rate returns amount unconverted", func(t *testing.T) {
		m, err := money.NewFromString("10.00", "EUR")
		require.NoError(t, err)
		res, err := conv.Convert(m, "JPY")
		require.NoError(t, err)
		assert.False(t, res.Applied)
		assert.Equal(t, "10.00 JPY", res.Converted.String())
	})
}

// Converting there and back is only idempotent to rounding tolerance;
// the table's rates are not exact inverses of each other.
func TestRoundTripTolerance(t *testing.T) {
	t.Parallel()
	conv := newConverter()

	m, err := money.NewFromString("250.00", "EUR")
	require.NoError(t, err)

	there, err := conv.Convert(m, "USD")
	require.NoError(t, err)
	back, err := conv.Convert(there.Converted, "EUR")
	require.NoError(t, err)

	diff := back.Converted.Amount().Sub(m.Amount()).Abs()
	tolerance := decimal.RequireFromString("0.01").
		Add(m.Amount().Mul(decimal.RequireFromString("0.01")))
	assert.True(t, diff.LessThanOrEqual(tolerance),
		"round trip drifted by %s", diff)
}
