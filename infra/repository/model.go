package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/altinbank/core/pkg/currency"
	"github.com/altinbank/core/pkg/domain/account"
	"github.com/altinbank/core/pkg/domain/card"
	"github.com/altinbank/core/pkg/domain/request"
	"github.com/altinbank/core/pkg/domain/transaction"
	"github.com/altinbank/core/pkg/domain/user"
	"github.com/altinbank/core/pkg/money"
)

// Currency is the persistence model for a registry entry.
type Currency struct {
	Code      string `gorm:"type:varchar(3);primaryKey"`
	Name      string `gorm:"type:varchar(64);not null"`
	Active    bool   `gorm:"not null;default:true"`
	CreatedAt time.Time
}

func (Currency) TableName() string { return "currencies" }

func (m Currency) toDomain() currency.Currency {
	return currency.Currency{
		Code:      currency.Code(m.Code),
		Name:      m.Name,
		Active:    m.Active,
		CreatedAt: m.CreatedAt,
	}
}

func currencyModel(c currency.Currency) Currency {
	return Currency{
		Code:      string(c.Code),
		Name:      c.Name,
		Active:    c.Active,
		CreatedAt: c.CreatedAt,
	}
}

// User is the persistence model for an account holder.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username  string    `gorm:"type:varchar(50);uniqueIndex;not null"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Password  string    `gorm:"type:varchar(255);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (User) TableName() string { return "users" }

func (m User) toDomain() user.User {
	return user.User{
		ID:        m.ID,
		Username:  m.Username,
		Email:     m.Email,
		Password:  m.Password,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func userModel(u user.User) User {
	return User{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Password:  u.Password,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// Account is the persistence model for an account aggregate.
// Balance and Currency together form the money value object.
type Account struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID       `gorm:"type:uuid;index;not null"`
	Balance   decimal.Decimal `gorm:"type:numeric(20,2);not null"`
	Currency  string          `gorm:"type:varchar(3);index;not null"`
	Active    bool            `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Account) TableName() string { return "accounts" }

func (m Account) toDomain() (*account.Account, error) {
	balance, err := money.New(m.Balance, currency.Code(m.Currency))
	if err != nil {
		return nil, err
	}
	return account.New().
		WithID(m.ID).
		WithUserID(m.UserID).
		WithBalance(balance).
		WithActive(m.Active).
		WithCreatedAt(m.CreatedAt).
		WithUpdatedAt(m.UpdatedAt).
		Build()
}

func accountModel(a *account.Account) Account {
	return Account{
		ID:        a.ID,
		UserID:    a.UserID,
		Balance:   a.Balance.Amount(),
		Currency:  string(a.Balance.Currency()),
		Active:    a.Active,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// Transaction is the persistence model for a ledger entry. Rows are
// append-only; there is no update or delete path.
type Transaction struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Type          string          `gorm:"type:varchar(10);not null"`
	Amount        decimal.Decimal `gorm:"type:numeric(20,2);not null"`
	Currency      string          `gorm:"type:varchar(3);not null"`
	FromAccountID *uuid.UUID      `gorm:"type:uuid;index"`
	ToAccountID   *uuid.UUID      `gorm:"type:uuid;index"`
	CreatedAt     time.Time
}

func (Transaction) TableName() string { return "transactions" }

func (m Transaction) toDomain() (*transaction.Transaction, error) {
	amount, err := money.New(m.Amount, currency.Code(m.Currency))
	if err != nil {
		return nil, err
	}
	txType, err := transaction.ParseType(m.Type)
	if err != nil {
		return nil, err
	}
	return &transaction.Transaction{
		ID:            m.ID,
		Type:          txType,
		Amount:        amount,
		FromAccountID: m.FromAccountID,
		ToAccountID:   m.ToAccountID,
		CreatedAt:     m.CreatedAt,
	}, nil
}

func transactionModel(t *transaction.Transaction) Transaction {
	return Transaction{
		ID:            t.ID,
		Type:          string(t.Type),
		Amount:        t.Amount.Amount(),
		Currency:      string(t.Amount.Currency()),
		FromAccountID: t.FromAccountID,
		ToAccountID:   t.ToAccountID,
		CreatedAt:     t.CreatedAt,
	}
}

// Card is the persistence model for an issued card.
type Card struct {
	Number         string    `gorm:"type:varchar(16);primaryKey"`
	AccountID      uuid.UUID `gorm:"type:uuid;index;not null"`
	Type           string    `gorm:"type:varchar(10);not null"`
	CVV            string    `gorm:"type:varchar(3);not null"`
	ExpirationDate time.Time `gorm:"not null"`
	Active         bool      `gorm:"not null;default:true"`
	CreatedAt      time.Time
}

func (Card) TableName() string { return "cards" }

func (m Card) toDomain() (*card.Card, error) {
	cardType, err := card.ParseType(m.Type)
	if err != nil {
		return nil, err
	}
	return &card.Card{
		Number:         m.Number,
		AccountID:      m.AccountID,
		Type:           cardType,
		CVV:            m.CVV,
		ExpirationDate: m.ExpirationDate,
		Active:         m.Active,
		CreatedAt:      m.CreatedAt,
	}, nil
}

func cardModel(c *card.Card) Card {
	return Card{
		Number:         c.Number,
		AccountID:      c.AccountID,
		Type:           string(c.Type),
		CVV:            c.CVV,
		ExpirationDate: c.ExpirationDate,
		Active:         c.Active,
		CreatedAt:      c.CreatedAt,
	}
}

// AccountRequest is the persistence model for an account-opening request.
type AccountRequest struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID          uuid.UUID       `gorm:"type:uuid;index;not null"`
	AccountType     string          `gorm:"type:varchar(20);not null"`
	InitialDeposit  decimal.Decimal `gorm:"type:numeric(20,2);not null"`
	DepositCurrency string          `gorm:"type:varchar(3);not null"`
	Status          string          `gorm:"type:varchar(10);index;not null"`
	Description     string          `gorm:"type:varchar(255)"`
	CreatedAt       time.Time
}

func (AccountRequest) TableName() string { return "account_requests" }

func (m AccountRequest) toDomain() (*request.AccountRequest, error) {
	deposit, err := money.New(m.InitialDeposit, currency.Code(m.DepositCurrency))
	if err != nil {
		return nil, err
	}
	return &request.AccountRequest{
		ID:             m.ID,
		UserID:         m.UserID,
		AccountType:    m.AccountType,
		InitialDeposit: deposit,
		Status:         request.Status(m.Status),
		Description:    m.Description,
		CreatedAt:      m.CreatedAt,
	}, nil
}

func accountRequestModel(r *request.AccountRequest) AccountRequest {
	return AccountRequest{
		ID:              r.ID,
		UserID:          r.UserID,
		AccountType:     r.AccountType,
		InitialDeposit:  r.InitialDeposit.Amount(),
		DepositCurrency: string(r.InitialDeposit.Currency()),
		Status:          string(r.Status),
		Description:     r.Description,
		CreatedAt:       r.CreatedAt,
	}
}

// CardRequest is the persistence model for a card-issuance request.
type CardRequest struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	AccountID      uuid.UUID       `gorm:"type:uuid;index;not null"`
	CardType       string          `gorm:"type:varchar(10);not null"`
	Salary         decimal.Decimal `gorm:"type:numeric(20,2);not null"`
	SalaryCurrency string          `gorm:"type:varchar(3);not null"`
	Status         string          `gorm:"type:varchar(10);index;not null"`
	Description    string          `gorm:"type:varchar(255)"`
	CreatedAt      time.Time
}

func (CardRequest) TableName() string { return "card_requests" }

func (m CardRequest) toDomain() (*request.CardRequest, error) {
	salary, err := money.New(m.Salary, currency.Code(m.SalaryCurrency))
	if err != nil {
		return nil, err
	}
	cardType, err := card.ParseType(m.CardType)
	if err != nil {
		return nil, err
	}
	return &request.CardRequest{
		ID:          m.ID,
		AccountID:   m.AccountID,
		CardType:    cardType,
		Salary:      salary,
		Status:      request.Status(m.Status),
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
	}, nil
}

func cardRequestModel(r *request.CardRequest) CardRequest {
	return CardRequest{
		ID:             r.ID,
		AccountID:      r.AccountID,
		CardType:       string(r.CardType),
		Salary:         r.Salary.Amount(),
		SalaryCurrency: string(r.Salary.Currency()),
		Status:         string(r.Status),
		Description:    r.Description,
		CreatedAt:      r.CreatedAt,
	}
}
