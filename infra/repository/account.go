package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/altinbank/core/pkg/currency"
	"github.com/altinbank/core/pkg/domain/account"
)

type accountRepository struct {
	db *gorm.DB
}

func (r *accountRepository) Get(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	var m Account
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, mapError(err)
	}
	return m.toDomain()
}

func (r *accountRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	var m Account
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&m, "id = ?", id).Error
	if err != nil {
		return nil, mapError(err)
	}
	return m.toDomain()
}

func (r *accountRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*account.Account, error) {
	var models []Account
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at").
		Find(&models).Error
	if err != nil {
		return nil, mapError(err)
	}
	return toAccounts(models)
}

func (r *accountRepository) ListByCurrency(ctx context.Context, code currency.Code) ([]*account.Account, error) {
	var models []Account
	err := r.db.WithContext(ctx).
		Where("currency = ?", string(code)).
		Order("created_at").
		Find(&models).Error
	if err != nil {
		return nil, mapError(err)
	}
	return toAccounts(models)
}

func (r *accountRepository) Create(ctx context.Context, a *account.Account) error {
	m := accountModel(a)
	return mapError(r.db.WithContext(ctx).Create(&m).Error)
}

func (r *accountRepository) Update(ctx context.Context, a *account.Account) error {
	m := accountModel(a)
	res := r.db.WithContext(ctx).Model(&Account{}).
		Where("id = ?", m.ID).
		Updates(map[string]any{
			"balance":    m.Balance,
			"currency":   m.Currency,
			"active":     m.Active,
			"updated_at": m.UpdatedAt,
		})
	if res.Error != nil {
		return mapError(res.Error)
	}
	if res.RowsAffected == 0 {
		return mapError(gorm.ErrRecordNotFound)
	}
	return nil
}

func toAccounts(models []Account) ([]*account.Account, error) {
	accounts := make([]*account.Account, 0, len(models))
	for _, m := range models {
		a, err := m.toDomain()
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, nil
}
