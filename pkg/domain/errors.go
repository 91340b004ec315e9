// Package domain holds the error taxonomy shared by the accounting core.
// Every error raised by the core wraps one of these sentinels so callers
// can classify failures with errors.Is and map them to responses.
package domain

import "errors"

var (
	// ErrValidation is returned for malformed or out-of-range input.
	// Not retryable without correcting the request.
	ErrValidation = errors.New("validation error")

	// ErrInsufficientFunds is returned when a debit would overdraw the
	// source account. Terminal; no transaction is recorded.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrAmountTooSmall is returned when a credit's stated amount is at
	// or below the minimum credit limit.
	ErrAmountTooSmall = errors.New("amount too small")

	// ErrAmountTooLarge is returned when a credit's stated amount
	// exceeds the maximum credit limit.
	ErrAmountTooLarge = errors.New("amount too large")

	// ErrInvariantViolation is returned for attempted illegal state
	// changes, such as deactivating the base currency.
	ErrInvariantViolation = errors.New("invariant violation")

	// ErrInvalidStateTransition is returned when a request that has
	// already been resolved is approved or rejected again.
	ErrInvalidStateTransition = errors.New("invalid state transition")

	// ErrNotFound is returned for unknown account, currency, card or
	// request identifiers.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists is returned when creating an entity whose
	// identifier is already taken.
	ErrAlreadyExists = errors.New("already exists")

	// ErrConcurrencyConflict is returned when two concurrent commits
	// touched the same rows. Transient; the whole submission may be
	// retried.
	ErrConcurrencyConflict = errors.New("concurrency conflict")
)
