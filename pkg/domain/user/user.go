// Package user defines the account owner. Roles and authorization live in
// the surrounding service layer, not here.
package user

import (
	"fmt"
	"time"

	"github.com/altinbank/core/pkg/domain"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// User owns accounts and files requests.
type User struct {
	ID        uuid.UUID
	Username  string
	Email     string
	Password  string // bcrypt hash
	CreatedAt time.Time
	UpdatedAt time.Time
}

// New creates a User with a hashed password.
func New(username, email, password string) (*User, error) {
	if username == "" {
		return nil, fmt.Errorf("%w: username cannot be empty", domain.ErrValidation)
	}
	if email == "" {
		return nil, fmt.Errorf("%w: email cannot be empty", domain.ErrValidation)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}
	now := time.Now().UTC()
	return &User{
		ID:        uuid.New(),
		Username:  username,
		Email:     email,
		Password:  string(hash),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// CheckPassword reports whether the plaintext password matches the stored
// hash.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) == nil
}
