package db

import (
	"fmt"

	"github.com/werewolves/lupus/internal/models"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Open connects to a sqlite file or a mysql/mariadb DSN
func Open(dbType, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch dbType {
	case "sqlite":
		dialector = sqlite.Open(dsn)
	case "mysql", "mariadb":
		dialector = mysql.Open(dsn) // dsn is user:pass@tcp(host)/name?parseTime=true
	default:
		return nil, fmt.Errorf("unsupported database type: %s", dbType)
	}

	database, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return database, nil
}

// Migrate creates or updates the tables for all models
func Migrate(database *gorm.DB) error {
	if err := database.AutoMigrate(
		&models.User{},
		&models.Site{},
		&models.SiteUser{},
		&models.Page{},
		&models.Block{},
	); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// InitDB opens and migrates the database and makes it the global connection
func InitDB(dbType, dsn string) error {
	database, err := Open(dbType, dsn)
	if err != nil {
		return err
	}
	if err := Migrate(database); err != nil {
		return err
	}
	DB = database
	return nil
}

// GetDB returns the database connection
func GetDB() *gorm.DB {
	return DB
}

// SetDB sets the database connection (used for testing)
func SetDB(database *gorm.DB) {
	DB = database
}
