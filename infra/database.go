package infra

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	infrarepo "github.com/altinbank/core/infra/repository"
)

// NewDBConnection opens a postgres connection pool for the given DSN.
// SkipDefaultTransaction is on: all multi-statement work goes through the
// unit of work, which opens its own transaction.
func NewDBConnection(url string, env string) (*gorm.DB, error) {
	logMode := logger.Silent
	if env == "development" {
		logMode = logger.Info
	}
	db, err := gorm.Open(postgres.Open(url), &gorm.Config{
		Logger:                 logger.Default.LogMode(logMode),
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	if err != nil {
		return nil, fmt.Errorf("infra: open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("infra: database handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

// Migrate creates or updates the schema for every persisted entity.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&infrarepo.Currency{},
		&infrarepo.User{},
		&infrarepo.Account{},
		&infrarepo.Transaction{},
		&infrarepo.Card{},
		&infrarepo.AccountRequest{},
		&infrarepo.CardRequest{},
	)
}
