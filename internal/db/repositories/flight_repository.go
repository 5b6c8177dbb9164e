package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"

	"skyfare/farescope/internal/models/entities"
)

// FlightRepository reads the airlines base relation via sqlx. The
// relation is loaded once and immutable; this repository exposes no
// update or delete surface.
type FlightRepository struct {
	db *sqlx.DB
}

func NewFlightRepository(db *sqlx.DB) *FlightRepository {
	return &FlightRepository{db: db}
}

// Count returns the number of rows in the base relation.
func (r *FlightRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM airlines`)
	return count, err
}

// List returns every flight record ordered by index.
func (r *FlightRepository) List(ctx context.Context) ([]entities.FlightRecord, error) {
	records := make([]entities.FlightRecord, 0)
	err := r.db.SelectContext(ctx, &records, `SELECT * FROM airlines ORDER BY "index" ASC`)
	return records, err
}

// ListByRoute returns the flight records of one (source, destination)
// pair ordered by index.
func (r *FlightRepository) ListByRoute(ctx context.Context, sourceCity, destinationCity string) ([]entities.FlightRecord, error) {
	query := r.db.Rebind(`SELECT * FROM airlines WHERE source_city = ? AND destination_city = ? ORDER BY "index" ASC`)
	records := make([]entities.FlightRecord, 0)
	err := r.db.SelectContext(ctx, &records, query, sourceCity, destinationCity)
	return records, err
}

// ListByAirline returns one carrier's flight records ordered by index.
func (r *FlightRepository) ListByAirline(ctx context.Context, airline string) ([]entities.FlightRecord, error) {
	query := r.db.Rebind(`SELECT * FROM airlines WHERE airline = ? ORDER BY "index" ASC`)
	records := make([]entities.FlightRecord, 0)
	err := r.db.SelectContext(ctx, &records, query, airline)
	return records, err
}

// Airlines returns the distinct carrier names.
func (r *FlightRepository) Airlines(ctx context.Context) ([]string, error) {
	airlines := make([]string, 0)
	err := r.db.SelectContext(ctx, &airlines, `SELECT DISTINCT airline FROM airlines ORDER BY airline ASC`)
	return airlines, err
}
