// Package user provides user registration and lookup for the surrounding
// layers. Authentication and authorization stay outside the core.
package user

import (
	"context"
	"log/slog"

	"github.com/altinbank/core/pkg/domain/user"
	"github.com/altinbank/core/pkg/repository"
	"github.com/google/uuid"
)

// Service manages users.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a user Service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{uow: uow, logger: logger.With("service", "user")}
}

// Register creates a user with a hashed password.
func (s *Service) Register(ctx context.Context, username, email, password string) (*user.User, error) {
	u, err := user.New(username, email, password)
	if err != nil {
		return nil, err
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		return uow.Users().Create(ctx, u)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("user registered", "id", u.ID, "username", username)
	return u, nil
}

// Get returns a user by identifier.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*user.User, error) {
	var u *user.User
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		var err error
		u, err = uow.Users().Get(ctx, id)
		return err
	})
	return u, err
}

// GetByUsername returns a user by username.
func (s *Service) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	var u *user.User
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		var err error
		u, err = uow.Users().GetByUsername(ctx, username)
		return err
	})
	return u, err
}
