// Package card defines the payment card entity issued against an account.
// Cards are created either directly by a privileged actor or by approving
// a card request.
package card

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/altinbank/core/pkg/domain"
	"github.com/google/uuid"
)

// Type discriminates the supported card kinds.
type Type string

const (
	TypeDebit   Type = "DEBIT"
	TypeCredit  Type = "CREDIT"
	TypePrepaid Type = "PREPAID"
)

// ParseType validates a raw card type string.
func ParseType(s string) (Type, error) {
	switch Type(s) {
	case TypeDebit, TypeCredit, TypePrepaid:
		return Type(s), nil
	default:
		return "", fmt.Errorf("%w: unknown card type %q", domain.ErrValidation, s)
	}
}

// Validity is how long a newly issued card remains valid.
const Validity = 4 * 365 * 24 * time.Hour

// Card is a payment card linked to one account.
type Card struct {
	Number         string
	Type           Type
	CVV            string
	ExpirationDate time.Time
	AccountID      uuid.UUID
	Active         bool
	CreatedAt      time.Time
}

// Issue creates a new card of the given type for an account, with a
// random 16-digit number, a random CVV and the standard validity window.
func Issue(accountID uuid.UUID, cardType Type) (*Card, error) {
	if _, err := ParseType(string(cardType)); err != nil {
		return nil, err
	}
	number, err := randomDigits(16)
	if err != nil {
		return nil, err
	}
	cvv, err := randomDigits(3)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	return &Card{
		Number:         number,
		Type:           cardType,
		CVV:            cvv,
		ExpirationDate: now.Add(Validity),
		AccountID:      accountID,
		Active:         true,
		CreatedAt:      now,
	}, nil
}

func randomDigits(n int) (string, error) {
	digits := make([]byte, n)
	for i := range digits {
		d, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("generating card number: %w", err)
		}
		digits[i] = byte('0' + d.Int64())
	}
	return string(digits), nil
}
