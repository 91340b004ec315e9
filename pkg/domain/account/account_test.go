package account_test

import (
	"testing"

	"github.com/altinbank/core/pkg/domain"
	"github.com/altinbank/core/pkg/domain/account"
	"github.com/altinbank/core/pkg/money"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMoney(t *testing.T, s string) money.Money {
	t.Helper()
	m, err := money.NewFromString(s, "EUR")
	require.NoError(t, err)
	return m
}

func TestBuild(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		acc, err := account.New().WithUserID(uuid.New()).Build()
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, acc.ID)
		assert.True(t, acc.Active)
		assert.True(t, acc.Balance.IsZero())
		assert.Equal(t, "EUR", acc.Currency().String())
	})

	t.Run("requires owner", func(t *testing.T) {
		_, err := account.New().Build()
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("rejects negative opening balance", func(t *testing.T) {
		_, err := account.New().
			WithUserID(uuid.New()).
			WithBalance(mustMoney(t, "-1.00")).
			Build()
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestApplyDelta(t *testing.T) {
	t.Parallel()

	newAccount := func(t *testing.T, balance string) *account.Account {
		acc, err := account.New().
			WithUserID(uuid.New()).
			WithBalance(mustMoney(t, balance)).
			Build()
		require.NoError(t, err)
		return acc
	}

	t.Run("credit increases balance", func(t *testing.T) {
		acc := newAccount(t, "1000.00")
		require.NoError(t, acc.ApplyDelta(mustMoney(t, "100.00")))
		assert.Equal(t, "1100.00 EUR", acc.Balance.String())
	})

	t.Run("debit decreases balance", func(t *testing.T) {
		acc := newAccount(t, "1000.00")
		require.NoError(t, acc.ApplyDelta(mustMoney(t, "100.00").Negate()))
		assert.Equal(t, "900.00 EUR", acc.Balance.String())
	})

	t.Run("rejects overdraw and leaves balance unchanged", func(t *testing.T) {
		acc := newAccount(t, "50.00")
		err := acc.ApplyDelta(mustMoney(t, "50.01").Negate())
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.Equal(t, "50.00 EUR", acc.Balance.String())
	})

	t.Run("allows draining to exactly zero", func(t *testing.T) {
		acc := newAccount(t, "50.00")
		require.NoError(t, acc.ApplyDelta(mustMoney(t, "50.00").Negate()))
		assert.True(t, acc.Balance.IsZero())
	})

	t.Run("rejects mutation of inactive account", func(t *testing.T) {
		acc := newAccount(t, "100.00")
		acc.Deactivate()
		err := acc.ApplyDelta(mustMoney(t, "10.00"))
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("rejects currency mismatch", func(t *testing.T) {
		acc := newAccount(t, "100.00")
		usd, err := money.NewFromString("10.00", "USD")
		require.NoError(t, err)
		assert.ErrorIs(t, acc.ApplyDelta(usd), domain.ErrValidation)
	})
}

func TestRedenominate(t *testing.T) {
	t.Parallel()
	acc, err := account.New().
		WithUserID(uuid.New()).
		WithBalance(mustMoney(t, "100.00")).
		Build()
	require.NoError(t, err)

	usd, err := money.NewFromString("118.00", "USD")
	require.NoError(t, err)
	require.NoError(t, acc.Redenominate(usd))
	assert.Equal(t, "USD", acc.Currency().String())
	assert.Equal(t, "118.00 USD", acc.Balance.String())
}
