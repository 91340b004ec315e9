package currency_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/altinbank/core/internal/fixtures"
	"github.com/altinbank/core/pkg/currency"
	"github.com/altinbank/core/pkg/domain"
	"github.com/altinbank/core/pkg/domain/account"
	"github.com/altinbank/core/pkg/exchange"
	"github.com/altinbank/core/pkg/money"
	currencyservice "github.com/altinbank/core/pkg/service/currency"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	os.Exit(m.Run())
}

func newService(t *testing.T) (*currencyservice.Service, *fixtures.Store) {
	t.Helper()
	store := fixtures.NewStore()
	conv := exchange.NewConverter(exchange.NewStaticSource(), nil)
	return currencyservice.New(store, conv, nil), store
}

func seedAccount(t *testing.T, store *fixtures.Store, balance string, code currency.Code) *account.Account {
	t.Helper()
	bal, err := money.NewFromString(balance, code)
	require.NoError(t, err)
	acc, err := account.New().WithUserID(uuid.New()).WithBalance(bal).Build()
	require.NoError(t, err)
	store.SeedAccount(acc)
	return acc
}

func TestRegister(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newService(t)

	cur, err := svc.Register(ctx, "USD", "US Dollar")
	require.NoError(t, err)
	assert.True(t, cur.Active)

	_, err = svc.Register(ctx, "USD", "US Dollar")
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)

	_, err = svc.Register(ctx, "usd", "US Dollar")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestDeactivate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("base currency is protected regardless of account state", func(t *testing.T) {
		svc, _ := newService(t)
		err := svc.Deactivate(ctx, currency.BaseCurrency)
		assert.ErrorIs(t, err, domain.ErrInvariantViolation)
	})

	t.Run("re-denominates holdings into base before flipping the flag", func(t *testing.T) {
		svc, store := newService(t)
		_, err := svc.Register(ctx, "USD", "US Dollar")
		require.NoError(t, err)
		accUSD := seedAccount(t, store, "100.00", "USD")
		accEUR := seedAccount(t, store, "40.00", "EUR")

		require.NoError(t, svc.Deactivate(ctx, "USD"))

		// 100.00 USD * 0.85 = 85.00 EUR
		got := store.Account(accUSD.ID)
		assert.Equal(t, "85.00 EUR", got.Balance.String())
		// untouched account keeps its balance
		assert.Equal(t, "40.00 EUR", store.Account(accEUR.ID).Balance.String())

		cur, err := svc.Get(ctx, "USD")
		require.NoError(t, err)
		assert.False(t, cur.Active)
	})

	t.Run("unknown currency", func(t *testing.T) {
		svc, _ := newService(t)
		assert.ErrorIs(t, svc.Deactivate(ctx, "JPY"), domain.ErrNotFound)
	})
}

func TestDelete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("base currency cannot be deleted", func(t *testing.T) {
		svc, _ := newService(t)
		assert.ErrorIs(t, svc.Delete(ctx, currency.BaseCurrency), domain.ErrInvariantViolation)
	})

	t.Run("re-denominates then removes the record", func(t *testing.T) {
		svc, store := newService(t)
		_, err := svc.Register(ctx, "USD", "US Dollar")
		require.NoError(t, err)
		acc := seedAccount(t, store, "200.00", "USD")

		require.NoError(t, svc.Delete(ctx, "USD"))

		assert.Equal(t, "170.00 EUR", store.Account(acc.ID).Balance.String())
		_, err = svc.Get(ctx, "USD")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestActivate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newService(t)

	_, err := svc.Register(ctx, "USD", "US Dollar")
	require.NoError(t, err)
	require.NoError(t, svc.Deactivate(ctx, "USD"))
	require.NoError(t, svc.Activate(ctx, "USD"))

	cur, err := svc.Get(ctx, "USD")
	require.NoError(t, err)
	assert.True(t, cur.Active)
}
