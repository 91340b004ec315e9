package repository

import "context"

// UnitOfWork is the transaction boundary of the core. Do runs fn inside
// one atomic unit; every repository obtained from the UnitOfWork passed
// to fn is bound to that unit's session, so all reads, writes and the
// ledger insert commit or roll back together.
//
// Returning an error from fn rolls the unit back. Implementations
// translate storage-level conflicts into domain.ErrConcurrencyConflict,
// which is the only error callers may retry.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	Accounts() AccountRepository
	Transactions() TransactionRepository
	Currencies() CurrencyRepository
	Cards() CardRepository
	AccountRequests() AccountRequestRepository
	CardRequests() CardRequestRepository
	Users() UserRepository
}
