package repositories

import (
	"context"

	gormlib "gorm.io/gorm"

	gormmodels "skyfare/farescope/internal/models/gorm"
)

// FlightLoaderRepository handles the write side of the airlines relation:
// migration and the one-shot bulk load performed by the external
// collaborator that owns ingestion. Nothing else mutates the table.
type FlightLoaderRepository struct {
	db *gormlib.DB
}

func NewFlightLoaderRepository(db *gormlib.DB) *FlightLoaderRepository {
	return &FlightLoaderRepository{db: db}
}

// Migrate creates or updates the airlines table.
func (r *FlightLoaderRepository) Migrate(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(&gormmodels.Flight{})
}

// BatchInsert inserts flight records in batches of 500.
func (r *FlightLoaderRepository) BatchInsert(ctx context.Context, flights []gormmodels.Flight) error {
	return r.db.WithContext(ctx).
		CreateInBatches(flights, 500).Error
}

// DeleteAll clears the base relation (useful for re-importing).
func (r *FlightLoaderRepository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Where("1 = 1").
		Delete(&gormmodels.Flight{}).Error
}

// Count returns total rows in the base relation.
func (r *FlightLoaderRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&gormmodels.Flight{}).Count(&count).Error
	return count, err
}
