package database

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"resuminator/internal/config"
)

// InitDatabase opens the PostgreSQL connection from config and returns a GORM instance.
func InitDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("unwrap db: %w", err)
	}

	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return db, nil
}

// AutoMigrate creates the user table and one table per résumé section kind.
// Every section table shares the SectionRow shape.
func AutoMigrate(db *gorm.DB, sectionTables []string) error {
	if err := db.AutoMigrate(&User{}); err != nil {
		return fmt.Errorf("migrate users: %w", err)
	}
	for _, table := range sectionTables {
		if err := db.Table(table).AutoMigrate(&SectionRow{}); err != nil {
			return fmt.Errorf("migrate %s: %w", table, err)
		}
	}
	return nil
}
