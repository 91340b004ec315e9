// Package transaction defines the immutable ledger entry and the intent
// callers submit to the engine. Structural rules (which account references
// each type requires, credit limits) live here; the engine orchestrates
// conversion and mutation around them.
package transaction

import (
	"fmt"
	"time"

	"github.com/altinbank/core/pkg/domain"
	"github.com/altinbank/core/pkg/money"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Type discriminates the three supported money movements.
type Type string

const (
	TypeDebit    Type = "DEBIT"
	TypeCredit   Type = "CREDIT"
	TypeTransfer Type = "TRANSFER"
)

// Credit limits apply to the transaction's stated amount, evaluated
// before any currency conversion.
var (
	MinCreditAmount = decimal.NewFromInt(20)
	MaxCreditAmount = decimal.NewFromInt(10000)
)

// ParseType validates a raw transaction type string.
func ParseType(s string) (Type, error) {
	switch Type(s) {
	case TypeDebit, TypeCredit, TypeTransfer:
		return Type(s), nil
	default:
		return "", fmt.Errorf("%w: unknown transaction type %q", domain.ErrValidation, s)
	}
}

// Transaction is an append-only ledger entry. It is created exactly once,
// atomically with the balance mutations it records, and never modified.
type Transaction struct {
	ID            uuid.UUID
	Type          Type
	Amount        money.Money
	FromAccountID *uuid.UUID
	ToAccountID   *uuid.UUID
	CreatedAt     time.Time
}

// Intent is the caller-supplied description of a desired movement, prior
// to validation.
type Intent struct {
	Type          Type
	Amount        money.Money
	FromAccountID *uuid.UUID
	ToAccountID   *uuid.UUID
}

// Validate checks the structural rules for the intent's type: DEBIT needs
// a source account, CREDIT a destination, TRANSFER both; the amount must
// be positive; credits must fall inside the configured limits.
func (i Intent) Validate() error {
	if _, err := ParseType(string(i.Type)); err != nil {
		return err
	}
	if !i.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", domain.ErrValidation)
	}
	switch i.Type {
	case TypeDebit:
		if i.FromAccountID == nil {
			return fmt.Errorf("%w: debit requires a source account", domain.ErrValidation)
		}
	case TypeCredit:
		if i.ToAccountID == nil {
			return fmt.Errorf("%w: credit requires a destination account", domain.ErrValidation)
		}
	case TypeTransfer:
		if i.FromAccountID == nil || i.ToAccountID == nil {
			return fmt.Errorf("%w: transfer requires both accounts", domain.ErrValidation)
		}
		if *i.FromAccountID == *i.ToAccountID {
			return fmt.Errorf("%w: cannot transfer to the same account", domain.ErrValidation)
		}
	}
	if i.Type == TypeCredit || i.Type == TypeTransfer {
		if err := i.validateCreditBounds(); err != nil {
			return err
		}
	}
	return nil
}

// validateCreditBounds enforces the credit limits on the stated amount.
func (i Intent) validateCreditBounds() error {
	if i.Amount.Amount().LessThanOrEqual(MinCreditAmount) {
		return fmt.Errorf("%w: credit amount must exceed %s", domain.ErrAmountTooSmall, MinCreditAmount)
	}
	if i.Amount.Amount().GreaterThan(MaxCreditAmount) {
		return fmt.Errorf("%w: credit amount must not exceed %s", domain.ErrAmountTooLarge, MaxCreditAmount)
	}
	return nil
}

// NewFromIntent builds the ledger entry for a validated, committed intent.
func NewFromIntent(i Intent) *Transaction {
	return &Transaction{
		ID:            uuid.New(),
		Type:          i.Type,
		Amount:        i.Amount,
		FromAccountID: i.FromAccountID,
		ToAccountID:   i.ToAccountID,
		CreatedAt:     time.Now(),
	}
}
