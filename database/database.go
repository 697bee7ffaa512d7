package database

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"rallycommand-api/models"
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
	// Auto migrate all models. Foreign keys are deliberately not enforced at
	// the store level; all referential rules live in the integrity service.
	err := db.AutoMigrate(
		&models.User{},
		&models.Vehicle{},
		&models.InventoryItem{},
		&models.UsageLog{},
		&models.Setup{},
		&models.SetupGroup{},
		&models.RepairLog{},
		&models.Stocktake{},
		&models.Feedback{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	return nil
}
