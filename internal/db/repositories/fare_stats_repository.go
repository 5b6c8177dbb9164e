package repositories

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"skyfare/farescope/internal/constants"
	"skyfare/farescope/internal/models/entities"
)

// FareStatsRepository owns the fare_stats analytical view: creating and
// refreshing it, selecting its rows, and running cataloged report queries
// against it and the base relation.
type FareStatsRepository struct {
	db *sqlx.DB
}

func NewFareStatsRepository(db *sqlx.DB) *FareStatsRepository {
	return &FareStatsRepository{db: db}
}

// EnsureSchema creates the base relation and its indexes if missing.
func (r *FareStatsRepository) EnsureSchema(ctx context.Context) error {
	for _, stmt := range []string{
		constants.CreateAirlinesTable,
		constants.CreateAirlinesAirlineIndex,
		constants.CreateAirlinesRouteIndex,
	} {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure airlines schema: %w", err)
		}
	}
	return nil
}

// CreateMaterializedView creates fare_stats as a Postgres materialized
// view.
func (r *FareStatsRepository) CreateMaterializedView(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, constants.CreateFareStatsMaterializedView); err != nil {
		return fmt.Errorf("create fare_stats materialized view: %w", err)
	}
	return nil
}

// CreatePlainView creates fare_stats as a plain view for engines without
// materialized views (the SQLite test harness).
func (r *FareStatsRepository) CreatePlainView(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, constants.CreateFareStatsPlainView); err != nil {
		return fmt.Errorf("create fare_stats view: %w", err)
	}
	return nil
}

// Refresh recomputes the materialized view against the current base
// relation. The base data is immutable, so refreshing is idempotent.
func (r *FareStatsRepository) Refresh(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, constants.RefreshFareStatsView); err != nil {
		return fmt.Errorf("refresh fare_stats: %w", err)
	}
	return nil
}

// Drop removes the materialized view.
func (r *FareStatsRepository) Drop(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, constants.DropFareStatsMaterializedView); err != nil {
		return fmt.Errorf("drop fare_stats: %w", err)
	}
	return nil
}

// SelectAll returns every fare_stats row ordered by index.
func (r *FareStatsRepository) SelectAll(ctx context.Context) ([]entities.FareStatsRow, error) {
	rows := make([]entities.FareStatsRow, 0)
	err := r.db.SelectContext(ctx, &rows, constants.QFareStatsAll)
	return rows, err
}

// SelectByAirline returns one carrier's fare_stats rows ordered by index.
func (r *FareStatsRepository) SelectByAirline(ctx context.Context, airline string) ([]entities.FareStatsRow, error) {
	query := r.db.Rebind(`SELECT * FROM fare_stats WHERE airline = ? ORDER BY "index" ASC`)
	rows := make([]entities.FareStatsRow, 0)
	err := r.db.SelectContext(ctx, &rows, query, airline)
	return rows, err
}

// RunCatalogQuery executes a cataloged report by name and returns its
// rows as column→value maps, since every report has its own shape.
func (r *FareStatsRepository) RunCatalogQuery(ctx context.Context, name string) ([]map[string]interface{}, error) {
	query, ok := constants.Catalog[name]
	if !ok {
		return nil, fmt.Errorf("unknown catalog query %q", name)
	}

	rows, err := r.db.QueryxContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("run catalog query %q: %w", name, err)
	}
	defer rows.Close()

	results := make([]map[string]interface{}, 0)
	for rows.Next() {
		row := map[string]interface{}{}
		if err := rows.MapScan(row); err != nil {
			return nil, fmt.Errorf("scan catalog query %q: %w", name, err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
