package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/altinbank/core/pkg/currency"
	"github.com/altinbank/core/pkg/domain"
	"github.com/altinbank/core/pkg/domain/transaction"
	"github.com/altinbank/core/pkg/money"
	pkgrepo "github.com/altinbank/core/pkg/repository"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDb, mock, err := sqlmock.New()
	require.NoError(t, err)
	dialector := postgres.New(postgres.Config{
		Conn:       mockDb,
		DriverName: "postgres",
	})
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return db, mock
}

func TestAccountRepository_Get(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)
	db, mock := newMockDB(t)

	repo := accountRepository{db: db}
	accountID := uuid.New()
	userID := uuid.New()

	rows := sqlmock.NewRows([]string{"id", "user_id", "balance", "currency", "active", "created_at", "updated_at"}).
		AddRow(accountID, userID, "250.00", "EUR", true, time.Now().UTC(), time.Now().UTC())
	mock.ExpectQuery(`SELECT \* FROM "accounts" WHERE id = \$1 ORDER BY "accounts"\."id" LIMIT \$2`).
		WithArgs(accountID, 1).WillReturnRows(rows)

	acc, err := repo.Get(context.Background(), accountID)
	require.NoError(err)
	require.Equal(accountID, acc.ID)
	assert.Equal(currency.Code("EUR"), acc.Balance.Currency())
	assert.True(acc.Balance.Amount().Equal(decimal.RequireFromString("250.00")))

	mock.ExpectQuery(`SELECT \* FROM "accounts" WHERE id = \$1 ORDER BY "accounts"\."id" LIMIT \$2`).
		WithArgs(sqlmock.AnyArg(), 1).WillReturnError(gorm.ErrRecordNotFound)

	_, err = repo.Get(context.Background(), uuid.New())
	require.ErrorIs(err, domain.ErrNotFound)
}

func TestAccountRepository_GetForUpdate(t *testing.T) {
	require := require.New(t)
	db, mock := newMockDB(t)

	repo := accountRepository{db: db}
	accountID := uuid.New()
	userID := uuid.New()

	rows := sqlmock.NewRows([]string{"id", "user_id", "balance", "currency", "active", "created_at", "updated_at"}).
		AddRow(accountID, userID, "100.00", "USD", true, time.Now().UTC(), time.Now().UTC())
	mock.ExpectQuery(`SELECT \* FROM "accounts" WHERE id = \$1 ORDER BY "accounts"\."id" LIMIT \$2 FOR UPDATE`).
		WithArgs(accountID, 1).WillReturnRows(rows)

	acc, err := repo.GetForUpdate(context.Background(), accountID)
	require.NoError(err)
	require.Equal(accountID, acc.ID)
	require.NoError(mock.ExpectationsWereMet())
}

func TestAccountRepository_Update_NotFound(t *testing.T) {
	require := require.New(t)
	db, mock := newMockDB(t)

	repo := accountRepository{db: db}
	accountID := uuid.New()
	userID := uuid.New()

	rows := sqlmock.NewRows([]string{"id", "user_id", "balance", "currency", "active", "created_at", "updated_at"}).
		AddRow(accountID, userID, "40.00", "EUR", true, time.Now().UTC(), time.Now().UTC())
	mock.ExpectQuery(`SELECT \* FROM "accounts" WHERE id = \$1`).
		WithArgs(accountID, 1).WillReturnRows(rows)

	acc, err := repo.Get(context.Background(), accountID)
	require.NoError(err)

	mock.ExpectExec(`UPDATE "accounts" SET (.+) WHERE id = \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.Update(context.Background(), acc)
	require.ErrorIs(err, domain.ErrNotFound)
}

func TestTransactionRepository_Create(t *testing.T) {
	require := require.New(t)
	db, mock := newMockDB(t)

	repo := transactionRepository{db: db}
	from := uuid.New()
	amount, err := money.NewFromString("100.00", "EUR")
	require.NoError(err)
	tx := transaction.NewFromIntent(transaction.Intent{
		Type:          transaction.TypeDebit,
		Amount:        amount,
		FromAccountID: &from,
	})

	mock.ExpectExec(`INSERT INTO "transactions" (.+) VALUES (.+)`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(repo.Create(context.Background(), tx))

	mock.ExpectExec(`INSERT INTO "transactions" (.+) VALUES (.+)`).
		WillReturnError(errors.New("create error"))

	require.Error(repo.Create(context.Background(), tx))
}

func TestUoW_Do(t *testing.T) {
	require := require.New(t)
	db, mock := newMockDB(t)

	uow := NewUoW(db)

	mock.ExpectBegin()
	mock.ExpectCommit()
	err := uow.Do(context.Background(), func(u pkgrepo.UnitOfWork) error {
		require.NotNil(u.Accounts())
		require.NotNil(u.Transactions())
		return nil
	})
	require.NoError(err)

	mock.ExpectBegin()
	mock.ExpectRollback()
	boom := errors.New("boom")
	err = uow.Do(context.Background(), func(u pkgrepo.UnitOfWork) error {
		return boom
	})
	require.ErrorIs(err, boom)
	require.NoError(mock.ExpectationsWereMet())
}
