package database

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"gymbuddy-api/models"
)

func Initialize(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(databaseURL), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Warn),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Exercise{},
		&models.DailyLog{},
		&models.ConnectionRequest{},
		&models.Friendship{},
		&models.ChatRoom{},
		&models.Message{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	if err := addDatabaseConstraints(db); err != nil {
		return fmt.Errorf("failed to add database constraints: %w", err)
	}

	return nil
}

func addDatabaseConstraints(db *gorm.DB) error {
	// Prevent duplicate pending requests per direction
	if err := db.Exec("ALTER TABLE connection_requests ADD CONSTRAINT uk_connection_requests_pair UNIQUE (sender_id, receiver_id)").Error; err != nil {
		// Ignore error if constraint already exists
		fmt.Printf("Warning: Could not add unique constraint for connection_requests: %v\n", err)
	}

	// Prevent self-requests at the storage level too
	if err := db.Exec("ALTER TABLE connection_requests ADD CONSTRAINT ck_connection_requests_no_self CHECK (sender_id != receiver_id)").Error; err != nil {
		fmt.Printf("Warning: Could not add check constraint for connection_requests: %v\n", err)
	}

	return nil
}
