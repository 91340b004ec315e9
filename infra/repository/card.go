package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/altinbank/core/pkg/domain/card"
)

type cardRepository struct {
	db *gorm.DB
}

func (r *cardRepository) Get(ctx context.Context, number string) (*card.Card, error) {
	var m Card
	if err := r.db.WithContext(ctx).First(&m, "number = ?", number).Error; err != nil {
		return nil, mapError(err)
	}
	return m.toDomain()
}

func (r *cardRepository) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*card.Card, error) {
	var models []Card
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at").
		Find(&models).Error
	if err != nil {
		return nil, mapError(err)
	}
	cards := make([]*card.Card, 0, len(models))
	for _, m := range models {
		c, err := m.toDomain()
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

func (r *cardRepository) Create(ctx context.Context, c *card.Card) error {
	m := cardModel(c)
	return mapError(r.db.WithContext(ctx).Create(&m).Error)
}
