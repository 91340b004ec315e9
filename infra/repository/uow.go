// Package repository implements the persistence contracts over gorm and
// postgres. A UoW opens one gorm transaction per Do call and hands out
// repositories bound to that session.
package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/altinbank/core/pkg/repository"
)

// UoW is the gorm-backed unit of work.
type UoW struct {
	db *gorm.DB
	tx *gorm.DB
}

var _ repository.UnitOfWork = (*UoW)(nil)

// NewUoW wraps a database handle. The returned value is safe to share;
// each Do call gets its own transaction.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{db: db}
}

// session returns the active transaction, or the bare handle when
// called outside Do.
func (u *UoW) session() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

// Do runs fn inside a single database transaction. Nested calls join
// the transaction already in progress.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	if u.tx != nil {
		return fn(u)
	}
	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&UoW{db: u.db, tx: tx})
	})
	return mapError(err)
}

func (u *UoW) Accounts() repository.AccountRepository {
	return &accountRepository{db: u.session()}
}

func (u *UoW) Transactions() repository.TransactionRepository {
	return &transactionRepository{db: u.session()}
}

func (u *UoW) Currencies() repository.CurrencyRepository {
	return &currencyRepository{db: u.session()}
}

func (u *UoW) Cards() repository.CardRepository {
	return &cardRepository{db: u.session()}
}

func (u *UoW) AccountRequests() repository.AccountRequestRepository {
	return &accountRequestRepository{db: u.session()}
}

func (u *UoW) CardRequests() repository.CardRequestRepository {
	return &cardRequestRepository{db: u.session()}
}

func (u *UoW) Users() repository.UserRepository {
	return &userRepository{db: u.session()}
}
