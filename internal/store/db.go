package store

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"scout-data-service/internal/domain"
)

// Open connects to Postgres and migrates the schema.
func Open(databaseURL string) (*gorm.DB, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("store: database url not configured")
	}

	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("store: open: %w", err)
	}

	if err := db.AutoMigrate(&domain.Team{}, &domain.Player{}, &domain.Game{}); err != nil {
		return nil, fmt.Errorf("store: migrate: %w", err)
	}
	return db, nil
}
