package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/altinbank/core/pkg/domain/transaction"
)

type transactionRepository struct {
	db *gorm.DB
}

func (r *transactionRepository) Get(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	var m Transaction
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, mapError(err)
	}
	return m.toDomain()
}

func (r *transactionRepository) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*transaction.Transaction, error) {
	var models []Transaction
	err := r.db.WithContext(ctx).
		Where("from_account_id = ? OR to_account_id = ?", accountID, accountID).
		Order("created_at").
		Find(&models).Error
	if err != nil {
		return nil, mapError(err)
	}
	entries := make([]*transaction.Transaction, 0, len(models))
	for _, m := range models {
		tx, err := m.toDomain()
		if err != nil {
			return nil, err
		}
		entries = append(entries, tx)
	}
	return entries, nil
}

func (r *transactionRepository) Create(ctx context.Context, tx *transaction.Transaction) error {
	m := transactionModel(tx)
	return mapError(r.db.WithContext(ctx).Create(&m).Error)
}
