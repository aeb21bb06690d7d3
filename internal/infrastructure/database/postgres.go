package database

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/sangkips/receiptbook-api/internal/config"
	"github.com/sangkips/receiptbook-api/internal/domain/entity"
	"github.com/sangkips/receiptbook-api/internal/domain/enum"
	"github.com/sangkips/receiptbook-api/internal/infrastructure/repository"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Warn
	if cfg.Debug {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for the ledger tables
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	models := append(repository.Models(), &entity.IdempotencyKey{})
	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData grants the admin role to the configured admin identity.
// An existing role for that identity is left alone.
func SeedDefaultData(db *gorm.DB, adminID uuid.UUID) error {
	if adminID == uuid.Nil {
		log.Println("ADMIN_USER_ID not set, skipping admin seed")
		return nil
	}

	result := db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&repository.UserRoleRecord{UserID: adminID, Role: enum.UserRoleAdmin})
	if result.Error != nil {
		return fmt.Errorf("failed to seed admin role: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		log.Printf("Admin role granted to %s", adminID)
	} else {
		log.Printf("Admin identity %s already has a role", adminID)
	}
	return nil
}
