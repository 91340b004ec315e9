package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/altinbank/core/pkg/domain/request"
)

type accountRequestRepository struct {
	db *gorm.DB
}

func (r *accountRequestRepository) Get(ctx context.Context, id uuid.UUID) (*request.AccountRequest, error) {
	var m AccountRequest
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, mapError(err)
	}
	return m.toDomain()
}

func (r *accountRequestRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*request.AccountRequest, error) {
	var models []AccountRequest
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at").
		Find(&models).Error
	if err != nil {
		return nil, mapError(err)
	}
	out := make([]*request.AccountRequest, 0, len(models))
	for _, m := range models {
		req, err := m.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	return out, nil
}

func (r *accountRequestRepository) Create(ctx context.Context, req *request.AccountRequest) error {
	m := accountRequestModel(req)
	return mapError(r.db.WithContext(ctx).Create(&m).Error)
}

func (r *accountRequestRepository) Update(ctx context.Context, req *request.AccountRequest) error {
	m := accountRequestModel(req)
	res := r.db.WithContext(ctx).Model(&AccountRequest{}).
		Where("id = ?", m.ID).
		Updates(map[string]any{
			"status":      m.Status,
			"description": m.Description,
		})
	if res.Error != nil {
		return mapError(res.Error)
	}
	if res.RowsAffected == 0 {
		return mapError(gorm.ErrRecordNotFound)
	}
	return nil
}

type cardRequestRepository struct {
	db *gorm.DB
}

func (r *cardRequestRepository) Get(ctx context.Context, id uuid.UUID) (*request.CardRequest, error) {
	var m CardRequest
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, mapError(err)
	}
	return m.toDomain()
}

func (r *cardRequestRepository) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*request.CardRequest, error) {
	var models []CardRequest
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at").
		Find(&models).Error
	if err != nil {
		return nil, mapError(err)
	}
	out := make([]*request.CardRequest, 0, len(models))
	for _, m := range models {
		req, err := m.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	return out, nil
}

func (r *cardRequestRepository) Create(ctx context.Context, req *request.CardRequest) error {
	m := cardRequestModel(req)
	return mapError(r.db.WithContext(ctx).Create(&m).Error)
}

func (r *cardRequestRepository) Update(ctx context.Context, req *request.CardRequest) error {
	m := cardRequestModel(req)
	res := r.db.WithContext(ctx).Model(&CardRequest{}).
		Where("id = ?", m.ID).
		Updates(map[string]any{
			"status":      m.Status,
			"description": m.Description,
		})
	if res.Error != nil {
		return mapError(res.Error)
	}
	if res.RowsAffected == 0 {
		return mapError(gorm.ErrRecordNotFound)
	}
	return nil
}
