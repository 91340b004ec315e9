// Package repository declares the persistence contracts of the core. The
// concrete implementations live in infra/repository; services and the
// engine only ever see these interfaces, obtained through a UnitOfWork so
// all repositories share one transaction session.
package repository

import (
	"context"

	"github.com/altinbank/core/pkg/currency"
	"github.com/altinbank/core/pkg/domain/account"
	"github.com/altinbank/core/pkg/domain/card"
	"github.com/altinbank/core/pkg/domain/request"
	"github.com/altinbank/core/pkg/domain/transaction"
	"github.com/altinbank/core/pkg/domain/user"
	"github.com/google/uuid"
)

// AccountRepository persists accounts.
type AccountRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*account.Account, error)
	// GetForUpdate loads the account with a row-level write lock held
	// until the surrounding unit of work commits.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*account.Account, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*account.Account, error)
	ListByCurrency(ctx context.Context, code currency.Code) ([]*account.Account, error)
	Create(ctx context.Context, a *account.Account) error
	Update(ctx context.Context, a *account.Account) error
}

// TransactionRepository persists ledger entries. Entries are append-only:
// there is deliberately no update or delete.
type TransactionRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error)
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*transaction.Transaction, error)
	Create(ctx context.Context, tx *transaction.Transaction) error
}

// CurrencyRepository persists the currency registry.
type CurrencyRepository interface {
	Get(ctx context.Context, code currency.Code) (*currency.Currency, error)
	List(ctx context.Context) ([]*currency.Currency, error)
	Create(ctx context.Context, c *currency.Currency) error
	Update(ctx context.Context, c *currency.Currency) error
	Delete(ctx context.Context, code currency.Code) error
}

// CardRepository persists issued cards.
type CardRepository interface {
	Get(ctx context.Context, number string) (*card.Card, error)
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*card.Card, error)
	Create(ctx context.Context, c *card.Card) error
}

// AccountRequestRepository persists account-opening requests.
type AccountRequestRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*request.AccountRequest, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*request.AccountRequest, error)
	Create(ctx context.Context, r *request.AccountRequest) error
	Update(ctx context.Context, r *request.AccountRequest) error
}

// CardRequestRepository persists card-issuance requests.
type CardRequestRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*request.CardRequest, error)
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*request.CardRequest, error)
	Create(ctx context.Context, r *request.CardRequest) error
	Update(ctx context.Context, r *request.CardRequest) error
}

// UserRepository persists users.
type UserRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*user.User, error)
	GetByUsername(ctx context.Context, username string) (*user.User, error)
	Create(ctx context.Context, u *user.User) error
}
