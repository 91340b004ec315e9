// Package account defines the Account aggregate. An account holds a
// balance in exactly one currency and belongs to exactly one user. The
// balance can never go negative, and balance mutation is reserved for the
// transaction engine's commit path.
package account

import (
	"fmt"
	"time"

	"github.com/altinbank/core/pkg/currency"
	"github.com/altinbank/core/pkg/domain"
	"github.com/altinbank/core/pkg/money"
	"github.com/google/uuid"
)

// Account is a user's financial account.
//
// Invariants:
//   - Balance >= 0 after every successful operation.
//   - The account's currency is active whenever the account is active.
//   - The identifier is immutable once assigned.
//   - Deactivation is terminal; accounts are never deleted.
type Account struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Balance   money.Money
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Builder constructs Account instances, validating invariants in Build.
type Builder struct {
	id        uuid.UUID
	userID    uuid.UUID
	balance   money.Money
	active    bool
	createdAt time.Time
	updatedAt time.Time
}

// New returns a Builder seeded with a fresh identifier, a zero balance in
// the base currency and an active status.
func New() *Builder {
	return &Builder{
		id:        uuid.New(),
		balance:   money.Zero(currency.BaseCurrency),
		active:    true,
		createdAt: time.Now(),
	}
}

// WithID overrides the generated identifier. Used when hydrating from
// storage.
func (b *Builder) WithID(id uuid.UUID) *Builder {
	b.id = id
	return b
}

// WithUserID sets the owning user. Mandatory.
func (b *Builder) WithUserID(userID uuid.UUID) *Builder {
	b.userID = userID
	return b
}

// WithBalance sets the opening balance, which also fixes the account's
// currency.
func (b *Builder) WithBalance(balance money.Money) *Builder {
	b.balance = balance
	return b
}

// WithActive sets the active flag. Accounts default to active.
func (b *Builder) WithActive(active bool) *Builder {
	b.active = active
	return b
}

// WithCreatedAt sets the creation timestamp when hydrating from storage.
func (b *Builder) WithCreatedAt(t time.Time) *Builder {
	b.createdAt = t
	return b
}

// WithUpdatedAt sets the last-updated timestamp when hydrating from
// storage.
func (b *Builder) WithUpdatedAt(t time.Time) *Builder {
	b.updatedAt = t
	return b
}

// Build validates the invariants and returns the Account.
func (b *Builder) Build() (*Account, error) {
	if b.userID == uuid.Nil {
		return nil, fmt.Errorf("%w: account owner is required", domain.ErrValidation)
	}
	if b.balance.IsNegative() {
		return nil, fmt.Errorf("%w: balance cannot be negative", domain.ErrValidation)
	}
	return &Account{
		ID:        b.id,
		UserID:    b.userID,
		Balance:   b.balance,
		Active:    b.active,
		CreatedAt: b.createdAt,
		UpdatedAt: b.updatedAt,
	}, nil
}

// Currency returns the currency the account is denominated in.
func (a *Account) Currency() currency.Code {
	return a.Balance.Currency()
}

// ApplyDelta mutates the balance by a signed amount in the account's
// currency. It is the only balance-mutation path and must be called from
// inside an atomic commit; callers outside the engine and the currency
// re-denomination batch must not use it.
func (a *Account) ApplyDelta(delta money.Money) error {
	if !a.Active {
		return fmt.Errorf("%w: account %s is not active", domain.ErrValidation, a.ID)
	}
	newBalance, err := a.Balance.Add(delta)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if newBalance.IsNegative() {
		return fmt.Errorf("%w: balance cannot go negative", domain.ErrValidation)
	}
	a.Balance = newBalance
	a.UpdatedAt = time.Now()
	return nil
}

// Redenominate replaces the balance with an equivalent amount in another
// currency. Used only by the currency re-denomination batch.
func (a *Account) Redenominate(newBalance money.Money) error {
	if newBalance.IsNegative() {
		return fmt.Errorf("%w: balance cannot be negative", domain.ErrValidation)
	}
	a.Balance = newBalance
	a.UpdatedAt = time.Now()
	return nil
}

// Deactivate marks the account inactive. Terminal.
func (a *Account) Deactivate() {
	a.Active = false
	a.UpdatedAt = time.Now()
}
