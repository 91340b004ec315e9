// Package currency provides the administrative operations on the
// currency registry: registration, activation, deactivation and
// deletion. Deactivating or deleting a currency re-denominates every
// account holding it into the base currency first, as a single atomic
// batch; a partial re-denomination must never be observable.
package currency

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/altinbank/core/pkg/currency"
	"github.com/altinbank/core/pkg/domain"
	"github.com/altinbank/core/pkg/exchange"
	"github.com/altinbank/core/pkg/repository"
)

// Service manages the currency registry.
type Service struct {
	uow       repository.UnitOfWork
	converter *exchange.Converter
	logger    *slog.Logger
}

// New creates a currency Service.
func New(uow repository.UnitOfWork, converter *exchange.Converter, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		uow:       uow,
		converter: converter,
		logger:    logger.With("service", "currency"),
	}
}

// Register adds a new active currency to the registry.
func (s *Service) Register(ctx context.Context, code currency.Code, name string) (*currency.Currency, error) {
	if !currency.IsValidFormat(code.String()) {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, currency.ErrInvalidCurrencyCode)
	}
	cur := &currency.Currency{
		Code:      code,
		Name:      name,
		Active:    true,
		CreatedAt: time.Now(),
	}
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		return uow.Currencies().Create(ctx, cur)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("currency registered", "code", code, "name", name)
	return cur, nil
}

// Get returns a currency by code.
func (s *Service) Get(ctx context.Context, code currency.Code) (*currency.Currency, error) {
	var cur *currency.Currency
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		var err error
		cur, err = uow.Currencies().Get(ctx, code)
		return err
	})
	return cur, err
}

// List returns every registered currency.
func (s *Service) List(ctx context.Context) ([]*currency.Currency, error) {
	var out []*currency.Currency
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		var err error
		out, err = uow.Currencies().List(ctx)
		return err
	})
	return out, err
}

// Activate marks a currency active again.
func (s *Service) Activate(ctx context.Context, code currency.Code) error {
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		cur, err := uow.Currencies().Get(ctx, code)
		if err != nil {
			return err
		}
		if cur.Active {
			return nil
		}
		cur.Active = true
		return uow.Currencies().Update(ctx, cur)
	})
}

// Deactivate re-denominates every account holding the currency into the
// base currency, then marks the currency inactive. Fails with
// ErrInvariantViolation for the base currency.
func (s *Service) Deactivate(ctx context.Context, code currency.Code) error {
	if code.IsBase() {
		return fmt.Errorf("%w: cannot deactivate the base currency", domain.ErrInvariantViolation)
	}
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		cur, err := uow.Currencies().Get(ctx, code)
		if err != nil {
			return err
		}
		if !cur.Active {
			return nil
		}
		if err := s.redenominate(ctx, uow, code); err != nil {
			return err
		}
		cur.Active = false
		return uow.Currencies().Update(ctx, cur)
	})
	if err != nil {
		return err
	}
	s.logger.Info("currency deactivated", "code", code)
	return nil
}

// Delete removes a currency after re-denominating all accounts holding
// it. Fails with ErrInvariantViolation for the base currency.
func (s *Service) Delete(ctx context.Context, code currency.Code) error {
	if code.IsBase() {
		return fmt.Errorf("%w: cannot delete the base currency", domain.ErrInvariantViolation)
	}
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if _, err := uow.Currencies().Get(ctx, code); err != nil {
			return err
		}
		if err := s.redenominate(ctx, uow, code); err != nil {
			return err
		}
		return uow.Currencies().Delete(ctx, code)
	})
	if err != nil {
		return err
	}
	s.logger.Info("currency deleted", "code", code)
	return nil
}

// redenominate converts the balance of every account held in code into
// the base currency and reassigns the account. Runs inside the caller's
// unit of work so the whole batch commits or rolls back together.
func (s *Service) redenominate(ctx context.Context, uow repository.UnitOfWork, code currency.Code) error {
	accounts, err := uow.Accounts().ListByCurrency(ctx, code)
	if err != nil {
		return err
	}
	for _, acc := range accounts {
		conv, err := s.converter.Convert(acc.Balance, currency.BaseCurrency)
		if err != nil {
			return fmt.Errorf("re-denominating account %s: %w", acc.ID, err)
		}
		if err := acc.Redenominate(conv.Converted); err != nil {
			return err
		}
		if err := uow.Accounts().Update(ctx, acc); err != nil {
			return err
		}
	}
	if len(accounts) > 0 {
		s.logger.Info("re-denominated accounts into base currency",
			"currency", code, "accounts", len(accounts))
	}
	return nil
}
