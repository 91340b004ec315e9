package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/altinbank/core/pkg/domain/user"
)

type userRepository struct {
	db *gorm.DB
}

func (r *userRepository) Get(ctx context.Context, id uuid.UUID) (*user.User, error) {
	var m User
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, mapError(err)
	}
	u := m.toDomain()
	return &u, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	var m User
	if err := r.db.WithContext(ctx).First(&m, "username = ?", username).Error; err != nil {
		return nil, mapError(err)
	}
	u := m.toDomain()
	return &u, nil
}

func (r *userRepository) Create(ctx context.Context, u *user.User) error {
	m := userModel(*u)
	return mapError(r.db.WithContext(ctx).Create(&m).Error)
}
