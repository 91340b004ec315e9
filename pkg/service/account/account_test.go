package account_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/altinbank/core/internal/fixtures"
	"github.com/altinbank/core/pkg/currency"
	"github.com/altinbank/core/pkg/domain"
	"github.com/altinbank/core/pkg/domain/user"
	"github.com/altinbank/core/pkg/money"
	accountservice "github.com/altinbank/core/pkg/service/account"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	os.Exit(m.Run())
}

func newEnv(t *testing.T) (*accountservice.Service, *fixtures.Store, *user.User) {
	t.Helper()
	store := fixtures.NewStore()
	u, err := user.New("testuser", "test@example.com", "secret")
	require.NoError(t, err)
	store.SeedUser(u)
	return accountservice.New(store, nil), store, u
}

func eur(t *testing.T, s string) money.Money {
	t.Helper()
	m, err := money.NewFromString(s, "EUR")
	require.NoError(t, err)
	return m
}

func TestOpen(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("opens an active account with the given balance", func(t *testing.T) {
		svc, store, u := newEnv(t)
		acc, err := svc.Open(ctx, u.ID, eur(t, "1000.00"))
		require.NoError(t, err)
		assert.True(t, acc.Active)
		assert.Equal(t, "1000.00 EUR", store.Account(acc.ID).Balance.String())
	})

	t.Run("rejects negative opening balance", func(t *testing.T) {
		svc, _, u := newEnv(t)
		_, err := svc.Open(ctx, u.ID, eur(t, "100.00").Negate())
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("rejects unregistered currency", func(t *testing.T) {
		svc, _, u := newEnv(t)
		jpy, err := money.NewFromString("100.00", "JPY")
		require.NoError(t, err)
		_, err = svc.Open(ctx, u.ID, jpy)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("rejects inactive currency", func(t *testing.T) {
		svc, store, u := newEnv(t)
		store.SeedCurrency(&currency.Currency{Code: "ALL", Name: "Lek", Active: false})
		all, err := money.NewFromString("100.00", "ALL")
		require.NoError(t, err)
		_, err = svc.Open(ctx, u.ID, all)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("rejects unknown owner", func(t *testing.T) {
		svc, _, _ := newEnv(t)
		_, err := svc.Open(ctx, uuid.New(), eur(t, "100.00"))
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestDeactivate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, store, u := newEnv(t)

	acc, err := svc.Open(ctx, u.ID, eur(t, "100.00"))
	require.NoError(t, err)

	require.NoError(t, svc.Deactivate(ctx, acc.ID))
	assert.False(t, store.Account(acc.ID).Active)

	// idempotent
	require.NoError(t, svc.Deactivate(ctx, acc.ID))

	assert.ErrorIs(t, svc.Deactivate(ctx, uuid.New()), domain.ErrNotFound)
}

func TestListByUser(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _, u := newEnv(t)

	_, err := svc.Open(ctx, u.ID, eur(t, "100.00"))
	require.NoError(t, err)
	_, err = svc.Open(ctx, u.ID, eur(t, "200.00"))
	require.NoError(t, err)

	accounts, err := svc.ListByUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Len(t, accounts, 2)
}
