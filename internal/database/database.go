package database

import (
	"workmode-api/internal/config"
	"workmode-api/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// InitDB opens the database and runs migrations.
// Using glebarez/sqlite which is a pure Go implementation (no CGO required)
func InitDB(cfg *config.Config) error {
	var err error

	DB, err = gorm.Open(sqlite.Open(cfg.DatabaseDSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return err
	}

	// Auto-migrate the schema (creates tables if they don't exist)
	err = DB.AutoMigrate(
		&models.User{},
		&models.SearchSpace{},
		&models.Document{},
		&models.Chat{},
		&models.Task{},
	)
	if err != nil {
		return err
	}

	logrus.WithField("dsn", cfg.DatabaseDSN).Info("database connected and migrated")
	return nil
}

// GetDB returns the database connection
func GetDB() *gorm.DB {
	return DB
}
