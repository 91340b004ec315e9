// Package fixtures provides an in-memory UnitOfWork used by engine and
// service tests. Reads hand out copies and writes are buffered through
// Update/Create, so a failed unit of work observes the same all-or-nothing
// behavior as the real gorm-backed implementation.
package fixtures

import (
	"context"
	"fmt"
	"sync"

	"github.com/altinbank/core/pkg/currency"
	"github.com/altinbank/core/pkg/domain"
	"github.com/altinbank/core/pkg/domain/account"
	"github.com/altinbank/core/pkg/domain/card"
	"github.com/altinbank/core/pkg/domain/request"
	"github.com/altinbank/core/pkg/domain/transaction"
	"github.com/altinbank/core/pkg/domain/user"
	"github.com/altinbank/core/pkg/repository"
	"github.com/google/uuid"
)

var _ repository.UnitOfWork = (*Store)(nil)

// Store is an in-memory repository.UnitOfWork. The zero value is not
// usable; create one with NewStore.
type Store struct {
	mu sync.Mutex

	accounts        map[uuid.UUID]*account.Account
	transactions    map[uuid.UUID]*transaction.Transaction
	currencies      map[currency.Code]*currency.Currency
	cards           map[string]*card.Card
	accountRequests map[uuid.UUID]*request.AccountRequest
	cardRequests    map[uuid.UUID]*request.CardRequest
	users           map[uuid.UUID]*user.User
}

// NewStore returns a Store seeded with the active base currency.
func NewStore() *Store {
	s := &Store{
		accounts:        make(map[uuid.UUID]*account.Account),
		transactions:    make(map[uuid.UUID]*transaction.Transaction),
		currencies:      make(map[currency.Code]*currency.Currency),
		cards:           make(map[string]*card.Card),
		accountRequests: make(map[uuid.UUID]*request.AccountRequest),
		cardRequests:    make(map[uuid.UUID]*request.CardRequest),
		users:           make(map[uuid.UUID]*user.User),
	}
	s.currencies[currency.BaseCurrency] = &currency.Currency{
		Code: currency.BaseCurrency, Name: "Euro", Active: true,
	}
	return s
}

// Do runs fn under the store lock. On error every map is restored to its
// pre-fn state.
func (s *Store) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshot()
	if err := fn(s); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

type storeSnapshot struct {
	accounts        map[uuid.UUID]*account.Account
	transactions    map[uuid.UUID]*transaction.Transaction
	currencies      map[currency.Code]*currency.Currency
	cards           map[string]*card.Card
	accountRequests map[uuid.UUID]*request.AccountRequest
	cardRequests    map[uuid.UUID]*request.CardRequest
	users           map[uuid.UUID]*user.User
}

func (s *Store) snapshot() storeSnapshot {
	return storeSnapshot{
		accounts:        copyMap(s.accounts),
		transactions:    copyMap(s.transactions),
		currencies:      copyMap(s.currencies),
		cards:           copyMap(s.cards),
		accountRequests: copyMap(s.accountRequests),
		cardRequests:    copyMap(s.cardRequests),
		users:           copyMap(s.users),
	}
}

func (s *Store) restore(snap storeSnapshot) {
	s.accounts = snap.accounts
	s.transactions = snap.transactions
	s.currencies = snap.currencies
	s.cards = snap.cards
	s.accountRequests = snap.accountRequests
	s.cardRequests = snap.cardRequests
	s.users = snap.users
}

func copyMap[K comparable, V any](m map[K]*V) map[K]*V {
	out := make(map[K]*V, len(m))
	for k, v := range m {
		c := *v
		out[k] = &c
	}
	return out
}

// Seed helpers, callable outside a unit of work.

// SeedCurrency registers a currency directly.
func (s *Store) SeedCurrency(c *currency.Currency) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cc := *c
	s.currencies[c.Code] = &cc
}

// SeedAccount stores an account directly.
func (s *Store) SeedAccount(a *account.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ac := *a
	s.accounts[a.ID] = &ac
}

// SeedUser stores a user directly.
func (s *Store) SeedUser(u *user.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	uc := *u
	s.users[u.ID] = &uc
}

// SeedAccountRequest stores an account request directly.
func (s *Store) SeedAccountRequest(r *request.AccountRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rc := *r
	s.accountRequests[r.ID] = &rc
}

// SeedCardRequest stores a card request directly.
func (s *Store) SeedCardRequest(r *request.CardRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rc := *r
	s.cardRequests[r.ID] = &rc
}

// Account returns a copy of a stored account for assertions.
func (s *Store) Account(id uuid.UUID) *account.Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a, ok := s.accounts[id]; ok {
		c := *a
		return &c
	}
	return nil
}

// TransactionCount reports the number of ledger entries.
func (s *Store) TransactionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.transactions)
}

// CardCount reports the number of issued cards.
func (s *Store) CardCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.cards)
}

// Repository accessors. The store itself acts as the bound session.

func (s *Store) Accounts() repository.AccountRepository               { return accountRepo{s} }
func (s *Store) Transactions() repository.TransactionRepository       { return transactionRepo{s} }
func (s *Store) Currencies() repository.CurrencyRepository            { return currencyRepo{s} }
func (s *Store) Cards() repository.CardRepository                     { return cardRepo{s} }
func (s *Store) AccountRequests() repository.AccountRequestRepository { return accountRequestRepo{s} }
func (s *Store) CardRequests() repository.CardRequestRepository       { return cardRequestRepo{s} }
func (s *Store) Users() repository.UserRepository                     { return userRepo{s} }

type accountRepo struct{ s *Store }

func (r accountRepo) Get(_ context.Context, id uuid.UUID) (*account.Account, error) {
	a, ok := r.s.accounts[id]
	if !ok {
		return nil, fmt.Errorf("account %s: %w", id, domain.ErrNotFound)
	}
	c := *a
	return &c, nil
}

func (r accountRepo) GetForUpdate(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	return r.Get(ctx, id)
}

func (r accountRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]*account.Account, error) {
	var out []*account.Account
	for _, a := range r.s.accounts {
		if a.UserID == userID {
			c := *a
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r accountRepo) ListByCurrency(_ context.Context, code currency.Code) ([]*account.Account, error) {
	var out []*account.Account
	for _, a := range r.s.accounts {
		if a.Currency() == code {
			c := *a
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r accountRepo) Create(_ context.Context, a *account.Account) error {
	if _, ok := r.s.accounts[a.ID]; ok {
		return fmt.Errorf("account %s: %w", a.ID, domain.ErrAlreadyExists)
	}
	c := *a
	r.s.accounts[a.ID] = &c
	return nil
}

func (r accountRepo) Update(_ context.Context, a *account.Account) error {
	if _, ok := r.s.accounts[a.ID]; !ok {
		return fmt.Errorf("account %s: %w", a.ID, domain.ErrNotFound)
	}
	c := *a
	r.s.accounts[a.ID] = &c
	return nil
}

type transactionRepo struct{ s *Store }

func (r transactionRepo) Get(_ context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	tx, ok := r.s.transactions[id]
	if !ok {
		return nil, fmt.Errorf("transaction %s: %w", id, domain.ErrNotFound)
	}
	c := *tx
	return &c, nil
}

func (r transactionRepo) ListByAccount(_ context.Context, accountID uuid.UUID) ([]*transaction.Transaction, error) {
	var out []*transaction.Transaction
	for _, tx := range r.s.transactions {
		if (tx.FromAccountID != nil && *tx.FromAccountID == accountID) ||
			(tx.ToAccountID != nil && *tx.ToAccountID == accountID) {
			c := *tx
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r transactionRepo) Create(_ context.Context, tx *transaction.Transaction) error {
	if _, ok := r.s.transactions[tx.ID]; ok {
		return fmt.Errorf("transaction %s: %w", tx.ID, domain.ErrAlreadyExists)
	}
	c := *tx
	r.s.transactions[tx.ID] = &c
	return nil
}

type currencyRepo struct{ s *Store }

func (r currencyRepo) Get(_ context.Context, code currency.Code) (*currency.Currency, error) {
	c, ok := r.s.currencies[code]
	if !ok {
		return nil, fmt.Errorf("currency %s: %w", code, domain.ErrNotFound)
	}
	cc := *c
	return &cc, nil
}

func (r currencyRepo) List(_ context.Context) ([]*currency.Currency, error) {
	out := make([]*currency.Currency, 0, len(r.s.currencies))
	for _, c := range r.s.currencies {
		cc := *c
		out = append(out, &cc)
	}
	return out, nil
}

func (r currencyRepo) Create(_ context.Context, c *currency.Currency) error {
	if _, ok := r.s.currencies[c.Code]; ok {
		return fmt.Errorf("currency %s: %w", c.Code, domain.ErrAlreadyExists)
	}
	cc := *c
	r.s.currencies[c.Code] = &cc
	return nil
}

func (r currencyRepo) Update(_ context.Context, c *currency.Currency) error {
	if _, ok := r.s.currencies[c.Code]; !ok {
		return fmt.Errorf("currency %s: %w", c.Code, domain.ErrNotFound)
	}
	cc := *c
	r.s.currencies[c.Code] = &cc
	return nil
}

func (r currencyRepo) Delete(_ context.Context, code currency.Code) error {
	if _, ok := r.s.currencies[code]; !ok {
		return fmt.Errorf("currency %s: %w", code, domain.ErrNotFound)
	}
	delete(r.s.currencies, code)
	return nil
}

type cardRepo struct{ s *Store }

func (r cardRepo) Get(_ context.Context, number string) (*card.Card, error) {
	c, ok := r.s.cards[number]
	if !ok {
		return nil, fmt.Errorf("card: %w", domain.ErrNotFound)
	}
	cc := *c
	return &cc, nil
}

func (r cardRepo) ListByAccount(_ context.Context, accountID uuid.UUID) ([]*card.Card, error) {
	var out []*card.Card
	for _, c := range r.s.cards {
		if c.AccountID == accountID {
			cc := *c
			out = append(out, &cc)
		}
	}
	return out, nil
}

func (r cardRepo) Create(_ context.Context, c *card.Card) error {
	if _, ok := r.s.cards[c.Number]; ok {
		return fmt.Errorf("card: %w", domain.ErrAlreadyExists)
	}
	cc := *c
	r.s.cards[c.Number] = &cc
	return nil
}

type accountRequestRepo struct{ s *Store }

func (r accountRequestRepo) Get(_ context.Context, id uuid.UUID) (*request.AccountRequest, error) {
	req, ok := r.s.accountRequests[id]
	if !ok {
		return nil, fmt.Errorf("account request %s: %w", id, domain.ErrNotFound)
	}
	c := *req
	return &c, nil
}

func (r accountRequestRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]*request.AccountRequest, error) {
	var out []*request.AccountRequest
	for _, req := range r.s.accountRequests {
		if req.UserID == userID {
			c := *req
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r accountRequestRepo) Create(_ context.Context, req *request.AccountRequest) error {
	if _, ok := r.s.accountRequests[req.ID]; ok {
		return fmt.Errorf("account request %s: %w", req.ID, domain.ErrAlreadyExists)
	}
	c := *req
	r.s.accountRequests[req.ID] = &c
	return nil
}

func (r accountRequestRepo) Update(_ context.Context, req *request.AccountRequest) error {
	if _, ok := r.s.accountRequests[req.ID]; !ok {
		return fmt.Errorf("account request %s: %w", req.ID, domain.ErrNotFound)
	}
	c := *req
	r.s.accountRequests[req.ID] = &c
	return nil
}

type cardRequestRepo struct{ s *Store }

func (r cardRequestRepo) Get(_ context.Context, id uuid.UUID) (*request.CardRequest, error) {
	req, ok := r.s.cardRequests[id]
	if !ok {
		return nil, fmt.Errorf("card request %s: %w", id, domain.ErrNotFound)
	}
	c := *req
	return &c, nil
}

func (r cardRequestRepo) ListByAccount(_ context.Context, accountID uuid.UUID) ([]*request.CardRequest, error) {
	var out []*request.CardRequest
	for _, req := range r.s.cardRequests {
		if req.AccountID == accountID {
			c := *req
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r cardRequestRepo) Create(_ context.Context, req *request.CardRequest) error {
	if _, ok := r.s.cardRequests[req.ID]; ok {
		return fmt.Errorf("card request %s: %w", req.ID, domain.ErrAlreadyExists)
	}
	c := *req
	r.s.cardRequests[req.ID] = &c
	return nil
}

func (r cardRequestRepo) Update(_ context.Context, req *request.CardRequest) error {
	if _, ok := r.s.cardRequests[req.ID]; !ok {
		return fmt.Errorf("card request %s: %w", req.ID, domain.ErrNotFound)
	}
	c := *req
	r.s.cardRequests[req.ID] = &c
	return nil
}

type userRepo struct{ s *Store }

func (r userRepo) Get(_ context.Context, id uuid.UUID) (*user.User, error) {
	u, ok := r.s.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}
	c := *u
	return &c, nil
}

func (r userRepo) GetByUsername(_ context.Context, username string) (*user.User, error) {
	for _, u := range r.s.users {
		if u.Username == username {
			c := *u
			return &c, nil
		}
	}
	return nil, fmt.Errorf("user %q: %w", username, domain.ErrNotFound)
}

func (r userRepo) Create(_ context.Context, u *user.User) error {
	if _, ok := r.s.users[u.ID]; ok {
		return fmt.Errorf("user %s: %w", u.ID, domain.ErrAlreadyExists)
	}
	c := *u
	r.s.users[u.ID] = &c
	return nil
}
