// Package account provides account lifecycle operations for privileged
// callers: direct opening, status changes and queries. Balance mutation
// is not available here; that is the engine's job.
package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/altinbank/core/pkg/domain"
	"github.com/altinbank/core/pkg/domain/account"
	"github.com/altinbank/core/pkg/domain/transaction"
	"github.com/altinbank/core/pkg/money"
	"github.com/altinbank/core/pkg/repository"
	"github.com/google/uuid"
)

// Service provides account lifecycle operations.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates an account Service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{uow: uow, logger: logger.With("service", "account")}
}

// Open creates an account for the user with the given opening balance.
// The balance's currency must be registered and active.
func (s *Service) Open(ctx context.Context, userID uuid.UUID, openingBalance money.Money) (*account.Account, error) {
	if openingBalance.IsNegative() {
		return nil, fmt.Errorf("%w: opening balance cannot be negative", domain.ErrValidation)
	}
	var acc *account.Account
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		cur, err := uow.Currencies().Get(ctx, openingBalance.Currency())
		if err != nil {
			return err
		}
		if !cur.Active {
			return fmt.Errorf("%w: currency %s is not active", domain.ErrValidation, cur.Code)
		}
		if _, err := uow.Users().Get(ctx, userID); err != nil {
			return err
		}
		acc, err = account.New().
			WithUserID(userID).
			WithBalance(openingBalance).
			Build()
		if err != nil {
			return err
		}
		return uow.Accounts().Create(ctx, acc)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("account opened", "id", acc.ID, "user", userID, "balance", acc.Balance)
	return acc, nil
}

// Deactivate marks the account inactive. Terminal; accounts are never
// deleted.
func (s *Service) Deactivate(ctx context.Context, id uuid.UUID) error {
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		acc, err := uow.Accounts().GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if !acc.Active {
			return nil
		}
		acc.Deactivate()
		return uow.Accounts().Update(ctx, acc)
	})
}

// Get returns an account by identifier.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	var acc *account.Account
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		var err error
		acc, err = uow.Accounts().Get(ctx, id)
		return err
	})
	return acc, err
}

// ListByUser returns every account the user owns.
func (s *Service) ListByUser(ctx context.Context, userID uuid.UUID) ([]*account.Account, error) {
	var out []*account.Account
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		var err error
		out, err = uow.Accounts().ListByUser(ctx, userID)
		return err
	})
	return out, err
}

// Transactions returns the ledger entries touching the account.
func (s *Service) Transactions(ctx context.Context, accountID uuid.UUID) ([]*transaction.Transaction, error) {
	var out []*transaction.Transaction
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if _, err := uow.Accounts().Get(ctx, accountID); err != nil {
			return err
		}
		var err error
		out, err = uow.Transactions().ListByAccount(ctx, accountID)
		return err
	})
	return out, err
}
