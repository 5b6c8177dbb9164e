package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	gormlib "gorm.io/gorm"

	gormmodels "skyfare/farescope/internal/models/gorm"
)

var PgDB *gormlib.DB

// InitPostgresORM opens the GORM connection used for migration and batch
// loading. Analytical reads go through the sqlx connection instead.
func InitPostgresORM(dsn string) (*gormlib.DB, error) {
	db, err := gormlib.Open(postgres.Open(dsn), &gormlib.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	PgDB = db
	return db, nil
}

// MigrateBase creates or updates the airlines base relation.
func MigrateBase(db *gormlib.DB) error {
	if err := db.AutoMigrate(&gormmodels.Flight{}); err != nil {
		return fmt.Errorf("migrate airlines table: %w", err)
	}
	return nil
}
