// Package currency defines currency codes and the currency entity used
// across the accounting core. A single base currency always exists, is
// always active, and can never be removed; every other currency can be
// activated, deactivated or deleted by an administrator.
package currency

import (
	"errors"
	"time"
)

// Code is an ISO 4217 style currency code (3 uppercase letters).
type Code string

// BaseCurrency is the reference currency. It always exists and is always
// active; deactivating or deleting it is an invariant violation.
const BaseCurrency Code = "EUR"

// ErrInvalidCurrencyCode is returned when a currency code is not three
// uppercase ASCII letters.
var ErrInvalidCurrencyCode = errors.New("invalid currency code")

// String returns the code as a plain string.
func (c Code) String() string {
	return string(c)
}

// IsBase reports whether the code is the base currency.
func (c Code) IsBase() bool {
	return c == BaseCurrency
}

// IsValidFormat reports whether s looks like a valid currency code:
// exactly three uppercase ASCII letters.
func IsValidFormat(s string) bool {
	if len(s) != 3 {
		return false
	}
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

// ParseCode validates and converts a raw string into a Code.
func ParseCode(s string) (Code, error) {
	if !IsValidFormat(s) {
		return "", ErrInvalidCurrencyCode
	}
	return Code(s), nil
}

// Currency is a registered currency. Accounts may only be denominated in
// active currencies.
type Currency struct {
	Code      Code
	Name      string
	Active    bool
	CreatedAt time.Time
}

// IsBase reports whether this is the base currency record.
func (c *Currency) IsBase() bool {
	return c.Code.IsBase()
}
