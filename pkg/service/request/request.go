// Package request implements the account-opening and card-issuance
// workflows: customers file requests, bankers approve or reject them, and
// approval triggers account creation or card issuance in the same atomic
// unit as the state transition.
package request

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/altinbank/core/pkg/currency"
	"github.com/altinbank/core/pkg/domain"
	"github.com/altinbank/core/pkg/domain/account"
	"github.com/altinbank/core/pkg/domain/card"
	"github.com/altinbank/core/pkg/domain/request"
	"github.com/altinbank/core/pkg/exchange"
	"github.com/altinbank/core/pkg/money"
	"github.com/altinbank/core/pkg/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MinimumSalary is the income threshold for card issuance, in the base
// currency. The applicant's salary is converted before comparison.
var MinimumSalary = decimal.NewFromInt(500)

// Service runs the request workflows.
type Service struct {
	uow       repository.UnitOfWork
	converter *exchange.Converter
	logger    *slog.Logger
}

// New creates a request Service.
func New(uow repository.UnitOfWork, converter *exchange.Converter, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		uow:       uow,
		converter: converter,
		logger:    logger.With("service", "request"),
	}
}

// SubmitAccountRequest files a pending account-opening request.
func (s *Service) SubmitAccountRequest(
	ctx context.Context,
	userID uuid.UUID,
	accountType string,
	initialDeposit money.Money,
) (*request.AccountRequest, error) {
	req, err := request.NewAccountRequest(userID, accountType, initialDeposit)
	if err != nil {
		return nil, err
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if _, err := uow.Users().Get(ctx, userID); err != nil {
			return err
		}
		cur, err := uow.Currencies().Get(ctx, initialDeposit.Currency())
		if err != nil {
			return err
		}
		if !cur.Active {
			return fmt.Errorf("%w: currency %s is not active", domain.ErrValidation, cur.Code)
		}
		return uow.AccountRequests().Create(ctx, req)
	})
	if err != nil {
		return nil, err
	}
	return req, nil
}

// ApproveAccountRequest approves a pending request and opens the account
// seeded with the requested initial deposit, in one atomic unit.
func (s *Service) ApproveAccountRequest(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	var acc *account.Account
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		req, err := uow.AccountRequests().Get(ctx, id)
		if err != nil {
			return err
		}
		if err := req.Approve(); err != nil {
			return err
		}
		cur, err := uow.Currencies().Get(ctx, req.InitialDeposit.Currency())
		if err != nil {
			return err
		}
		if !cur.Active {
			return fmt.Errorf("%w: currency %s is not active", domain.ErrValidation, cur.Code)
		}
		acc, err = account.New().
			WithUserID(req.UserID).
			WithBalance(req.InitialDeposit).
			Build()
		if err != nil {
			return err
		}
		if err := uow.Accounts().Create(ctx, acc); err != nil {
			return err
		}
		return uow.AccountRequests().Update(ctx, req)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("account request approved", "request", id, "account", acc.ID)
	return acc, nil
}

// RejectAccountRequest rejects a pending request with the banker's
// reason.
func (s *Service) RejectAccountRequest(ctx context.Context, id uuid.UUID, reason string) error {
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		req, err := uow.AccountRequests().Get(ctx, id)
		if err != nil {
			return err
		}
		if err := req.Reject(reason); err != nil {
			return err
		}
		return uow.AccountRequests().Update(ctx, req)
	})
}

// SubmitCardRequest files a pending card request against an account.
func (s *Service) SubmitCardRequest(
	ctx context.Context,
	accountID uuid.UUID,
	cardType card.Type,
	salary money.Money,
) (*request.CardRequest, error) {
	req, err := request.NewCardRequest(accountID, cardType, salary)
	if err != nil {
		return nil, err
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if _, err := uow.Accounts().Get(ctx, accountID); err != nil {
			return err
		}
		return uow.CardRequests().Create(ctx, req)
	})
	if err != nil {
		return nil, err
	}
	return req, nil
}

// ApproveCardRequest approves a pending card request and issues the card.
// The linked account must be active. If the applicant's salary, converted
// into the base currency, is below MinimumSalary, the request
// auto-transitions to REJECTED with the standard reason instead of
// erroring; in that case both return values are nil.
func (s *Service) ApproveCardRequest(ctx context.Context, id uuid.UUID) (*card.Card, error) {
	var issued *card.Card
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		req, err := uow.CardRequests().Get(ctx, id)
		if err != nil {
			return err
		}
		if req.Status != request.StatusPending {
			return fmt.Errorf("%w: card request %s is already %s",
				domain.ErrInvalidStateTransition, req.ID, req.Status)
		}
		acc, err := uow.Accounts().Get(ctx, req.AccountID)
		if err != nil {
			return err
		}
		if !acc.Active {
			return fmt.Errorf("%w: account %s is not active", domain.ErrValidation, acc.ID)
		}

		conv, err := s.converter.Convert(req.Salary, currency.BaseCurrency)
		if err != nil {
			return err
		}
		if conv.Converted.Amount().LessThan(MinimumSalary) {
			if err := req.RejectLowSalary(); err != nil {
				return err
			}
			s.logger.Info("card request auto-rejected on income threshold",
				"request", req.ID, "converted_salary", conv.Converted)
			return uow.CardRequests().Update(ctx, req)
		}

		if err := req.Approve(); err != nil {
			return err
		}
		issued, err = card.Issue(req.AccountID, req.CardType)
		if err != nil {
			return err
		}
		if err := uow.Cards().Create(ctx, issued); err != nil {
			return err
		}
		return uow.CardRequests().Update(ctx, req)
	})
	if err != nil {
		return nil, err
	}
	if issued != nil {
		s.logger.Info("card request approved", "request", id, "card_type", issued.Type)
	}
	return issued, nil
}

// RejectCardRequest rejects a pending card request with the banker's
// reason.
func (s *Service) RejectCardRequest(ctx context.Context, id uuid.UUID, reason string) error {
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		req, err := uow.CardRequests().Get(ctx, id)
		if err != nil {
			return err
		}
		if err := req.Reject(reason); err != nil {
			return err
		}
		return uow.CardRequests().Update(ctx, req)
	})
}

// AccountRequest returns a request by identifier.
func (s *Service) AccountRequest(ctx context.Context, id uuid.UUID) (*request.AccountRequest, error) {
	var req *request.AccountRequest
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		var err error
		req, err = uow.AccountRequests().Get(ctx, id)
		return err
	})
	return req, err
}

// CardRequest returns a card request by identifier.
func (s *Service) CardRequest(ctx context.Context, id uuid.UUID) (*request.CardRequest, error) {
	var req *request.CardRequest
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		var err error
		req, err = uow.CardRequests().Get(ctx, id)
		return err
	})
	return req, err
}
