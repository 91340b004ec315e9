// Package request defines the account-opening and card-issuance requests
// customers file and bankers resolve. Both follow the same terminal state
// machine: PENDING -> APPROVED or PENDING -> REJECTED, exactly once.
package request

import (
	"fmt"
	"time"

	"github.com/altinbank/core/pkg/domain"
	"github.com/altinbank/core/pkg/domain/card"
	"github.com/altinbank/core/pkg/money"
	"github.com/google/uuid"
)

// Status is the resolution state of a request.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// AccountRequest is a customer's application to open an account with an
// initial deposit.
type AccountRequest struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	AccountType    string
	InitialDeposit money.Money
	Status         Status
	Description    string
	CreatedAt      time.Time
}

// NewAccountRequest files a pending account request.
func NewAccountRequest(userID uuid.UUID, accountType string, initialDeposit money.Money) (*AccountRequest, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: requester is required", domain.ErrValidation)
	}
	if initialDeposit.IsNegative() {
		return nil, fmt.Errorf("%w: initial deposit cannot be negative", domain.ErrValidation)
	}
	return &AccountRequest{
		ID:             uuid.New(),
		UserID:         userID,
		AccountType:    accountType,
		InitialDeposit: initialDeposit,
		Status:         StatusPending,
		CreatedAt:      time.Now(),
	}, nil
}

// Approve transitions the request to APPROVED. The caller is responsible
// for creating the account in the same atomic unit.
func (r *AccountRequest) Approve() error {
	if err := r.ensurePending(); err != nil {
		return err
	}
	if r.InitialDeposit.IsNegative() {
		return fmt.Errorf("%w: initial deposit cannot be negative", domain.ErrValidation)
	}
	r.Status = StatusApproved
	return nil
}

// Reject transitions the request to REJECTED, recording the banker's
// reason.
func (r *AccountRequest) Reject(reason string) error {
	if err := r.ensurePending(); err != nil {
		return err
	}
	r.Status = StatusRejected
	r.Description = reason
	return nil
}

func (r *AccountRequest) ensurePending() error {
	if r.Status != StatusPending {
		return fmt.Errorf("%w: account request %s is already %s",
			domain.ErrInvalidStateTransition, r.ID, r.Status)
	}
	return nil
}

// RejectionReasonLowSalary is recorded when a card request fails the
// income threshold check.
const RejectionReasonLowSalary = "converted salary below required minimum"

// CardRequest is a customer's application for a card against one of their
// accounts. The applicant's salary is checked against a minimum threshold
// in the base currency at approval time.
type CardRequest struct {
	ID          uuid.UUID
	AccountID   uuid.UUID
	CardType    card.Type
	Salary      money.Money
	Status      Status
	Description string
	CreatedAt   time.Time
}

// NewCardRequest files a pending card request.
func NewCardRequest(accountID uuid.UUID, cardType card.Type, salary money.Money) (*CardRequest, error) {
	if accountID == uuid.Nil {
		return nil, fmt.Errorf("%w: account is required", domain.ErrValidation)
	}
	if _, err := card.ParseType(string(cardType)); err != nil {
		return nil, err
	}
	if salary.IsNegative() {
		return nil, fmt.Errorf("%w: salary cannot be negative", domain.ErrValidation)
	}
	return &CardRequest{
		ID:        uuid.New(),
		AccountID: accountID,
		CardType:  cardType,
		Salary:    salary,
		Status:    StatusPending,
		CreatedAt: time.Now(),
	}, nil
}

// Approve transitions the request to APPROVED. The income threshold check
// happens in the service layer, which has access to the converter; a
// failed check moves the request to REJECTED via RejectLowSalary instead
// of erroring.
func (r *CardRequest) Approve() error {
	if err := r.ensurePending(); err != nil {
		return err
	}
	r.Status = StatusApproved
	return nil
}

// Reject transitions the request to REJECTED with a banker-supplied
// reason.
func (r *CardRequest) Reject(reason string) error {
	if err := r.ensurePending(); err != nil {
		return err
	}
	r.Status = StatusRejected
	r.Description = reason
	return nil
}

// RejectLowSalary records the standard below-threshold rejection.
func (r *CardRequest) RejectLowSalary() error {
	return r.Reject(RejectionReasonLowSalary)
}

func (r *CardRequest) ensurePending() error {
	if r.Status != StatusPending {
		return fmt.Errorf("%w: card request %s is already %s",
			domain.ErrInvalidStateTransition, r.ID, r.Status)
	}
	return nil
}
