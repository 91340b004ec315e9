package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/altinbank/core/pkg/currency"
)

type currencyRepository struct {
	db *gorm.DB
}

func (r *currencyRepository) Get(ctx context.Context, code currency.Code) (*currency.Currency, error) {
	var m Currency
	if err := r.db.WithContext(ctx).First(&m, "code = ?", string(code)).Error; err != nil {
		return nil, mapError(err)
	}
	c := m.toDomain()
	return &c, nil
}

func (r *currencyRepository) List(ctx context.Context) ([]*currency.Currency, error) {
	var models []Currency
	if err := r.db.WithContext(ctx).Order("code").Find(&models).Error; err != nil {
		return nil, mapError(err)
	}
	out := make([]*currency.Currency, 0, len(models))
	for _, m := range models {
		c := m.toDomain()
		out = append(out, &c)
	}
	return out, nil
}

func (r *currencyRepository) Create(ctx context.Context, c *currency.Currency) error {
	m := currencyModel(*c)
	return mapError(r.db.WithContext(ctx).Create(&m).Error)
}

func (r *currencyRepository) Update(ctx context.Context, c *currency.Currency) error {
	m := currencyModel(*c)
	res := r.db.WithContext(ctx).Model(&Currency{}).
		Where("code = ?", m.Code).
		Updates(map[string]any{
			"name":   m.Name,
			"active": m.Active,
		})
	if res.Error != nil {
		return mapError(res.Error)
	}
	if res.RowsAffected == 0 {
		return mapError(gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *currencyRepository) Delete(ctx context.Context, code currency.Code) error {
	res := r.db.WithContext(ctx).Delete(&Currency{}, "code = ?", string(code))
	if res.Error != nil {
		return mapError(res.Error)
	}
	if res.RowsAffected == 0 {
		return mapError(gorm.ErrRecordNotFound)
	}
	return nil
}
