// Package engine implements the transaction engine: it validates a
// submitted intent, converts currency, mutates account balances and
// appends the ledger entry, all inside one atomic unit of work.
//
// Ordering is strict: structural and account-state validation happen
// before any currency conversion, and conversion happens before any
// balance mutation. A rejected intent never produces a ledger entry.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/altinbank/core/pkg/domain"
	"github.com/altinbank/core/pkg/domain/account"
	"github.com/altinbank/core/pkg/domain/transaction"
	"github.com/altinbank/core/pkg/exchange"
	"github.com/altinbank/core/pkg/money"
	"github.com/altinbank/core/pkg/repository"
	"github.com/google/uuid"
)

// Engine validates and commits money movements.
type Engine struct {
	uow       repository.UnitOfWork
	converter *exchange.Converter
	logger    *slog.Logger
}

// New creates an Engine.
func New(uow repository.UnitOfWork, converter *exchange.Converter, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		uow:       uow,
		converter: converter,
		logger:    logger.With("component", "engine"),
	}
}

// Submit validates the intent, performs the movement and returns the
// ledger entry. On any failure the unit of work rolls back and no entry
// is recorded; errors wrap the sentinels in pkg/domain.
func (e *Engine) Submit(ctx context.Context, intent transaction.Intent) (*transaction.Transaction, error) {
	if err := intent.Validate(); err != nil {
		return nil, err
	}

	var tx *transaction.Transaction
	err := e.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := e.lockAccounts(ctx, uow, intent)
		if err != nil {
			return err
		}
		if err := e.checkPreconditions(ctx, uow, accounts); err != nil {
			return err
		}

		var from, to *account.Account
		if intent.FromAccountID != nil {
			from = accounts[*intent.FromAccountID]
		}
		if intent.ToAccountID != nil {
			to = accounts[*intent.ToAccountID]
		}

		switch intent.Type {
		case transaction.TypeDebit:
			err = e.debit(from, intent.Amount)
		case transaction.TypeCredit:
			err = e.credit(to, intent.Amount)
		case transaction.TypeTransfer:
			err = e.transfer(from, to, intent.Amount)
		}
		if err != nil {
			return err
		}

		for _, acc := range accounts {
			if err := uow.Accounts().Update(ctx, acc); err != nil {
				return err
			}
		}
		tx = transaction.NewFromIntent(intent)
		return uow.Transactions().Create(ctx, tx)
	})
	if err != nil {
		e.logger.Info("transaction rejected",
			"type", intent.Type, "amount", intent.Amount, "error", err)
		return nil, err
	}
	e.logger.Info("transaction committed",
		"id", tx.ID, "type", tx.Type, "amount", tx.Amount)
	return tx, nil
}

// lockAccounts loads every referenced account with a row lock, in
// ascending identifier order regardless of from/to role, so concurrent
// transfers over the same pair cannot deadlock.
func (e *Engine) lockAccounts(
	ctx context.Context,
	uow repository.UnitOfWork,
	intent transaction.Intent,
) (map[uuid.UUID]*account.Account, error) {
	ids := make([]uuid.UUID, 0, 2)
	if intent.FromAccountID != nil {
		ids = append(ids, *intent.FromAccountID)
	}
	if intent.ToAccountID != nil {
		ids = append(ids, *intent.ToAccountID)
	}
	sort.Slice(ids, func(i, j int) bool {
		return ids[i].String() < ids[j].String()
	})

	accounts := make(map[uuid.UUID]*account.Account, len(ids))
	for _, id := range ids {
		acc, err := uow.Accounts().GetForUpdate(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("loading account %s: %w", id, err)
		}
		accounts[id] = acc
	}
	return accounts, nil
}

// checkPreconditions rejects the intent before any conversion or
// mutation: every referenced account must be active and denominated in an
// active currency.
func (e *Engine) checkPreconditions(
	ctx context.Context,
	uow repository.UnitOfWork,
	accounts map[uuid.UUID]*account.Account,
) error {
	for _, acc := range accounts {
		if !acc.Active {
			return fmt.Errorf("%w: account %s is not active", domain.ErrValidation, acc.ID)
		}
		cur, err := uow.Currencies().Get(ctx, acc.Currency())
		if err != nil {
			return fmt.Errorf("loading currency %s: %w", acc.Currency(), err)
		}
		if !cur.Active {
			return fmt.Errorf("%w: currency %s is not active", domain.ErrValidation, cur.Code)
		}
	}
	return nil
}

// debit converts the stated amount into the source account's currency and
// withdraws it. Fails with ErrInsufficientFunds when the converted amount
// exceeds the balance.
func (e *Engine) debit(from *account.Account, amount money.Money) error {
	conv, err := e.converter.Convert(amount, from.Currency())
	if err != nil {
		return err
	}
	exceeds, err := conv.Converted.GreaterThan(from.Balance)
	if err != nil {
		return err
	}
	if exceeds {
		return fmt.Errorf("%w: account %s", domain.ErrInsufficientFunds, from.ID)
	}
	return from.ApplyDelta(conv.Converted.Negate())
}

// credit converts the stated amount into the destination account's
// currency and deposits it. The credit limits were already enforced on
// the stated amount during intent validation.
func (e *Engine) credit(to *account.Account, amount money.Money) error {
	conv, err := e.converter.Convert(amount, to.Currency())
	if err != nil {
		return err
	}
	return to.ApplyDelta(conv.Converted)
}

// transfer applies debit semantics to the source and credit semantics to
// the destination as one unit. Both conversions complete before either
// balance changes.
func (e *Engine) transfer(from, to *account.Account, amount money.Money) error {
	outConv, err := e.converter.Convert(amount, from.Currency())
	if err != nil {
		return err
	}
	inConv, err := e.converter.Convert(amount, to.Currency())
	if err != nil {
		return err
	}
	exceeds, err := outConv.Converted.GreaterThan(from.Balance)
	if err != nil {
		return err
	}
	if exceeds {
		return fmt.Errorf("%w: account %s", domain.ErrInsufficientFunds, from.ID)
	}
	if err := from.ApplyDelta(outConv.Converted.Negate()); err != nil {
		return err
	}
	return to.ApplyDelta(inConv.Converted)
}
