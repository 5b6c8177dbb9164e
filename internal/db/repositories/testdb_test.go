package repositories

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	gormlib "gorm.io/gorm"
	"gorm.io/gorm/logger"

	"skyfare/farescope/internal/models/entities"
	gormmodels "skyfare/farescope/internal/models/gorm"
)

// setupTestDB opens an in-memory SQLite database, migrates the airlines
// table and returns both handles. A single connection keeps the memory
// database alive across the sqlx and GORM paths.
func setupTestDB(t *testing.T) (*sqlx.DB, *gormlib.DB) {
	t.Helper()

	gdb, err := gormlib.Open(sqlite.Open(":memory:"), &gormlib.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, gdb.AutoMigrate(&gormmodels.Flight{}))

	return sqlx.NewDb(sqlDB, "sqlite3"), gdb
}

func f64(v float64) *float64 { return &v }

// seedRecords is a small but uneven dataset: four carriers, three
// routes, duplicate prices for tie coverage, one carrier with only two
// rows so the 3rd-smallest statistic goes null, and one carrier with a
// null price and a null duration so the null paths run through the view.
func seedRecords() []entities.FlightRecord {
	mk := func(index int64, airline, src, dst string, daysLeft int64, duration, price *float64) entities.FlightRecord {
		return entities.FlightRecord{
			Index:           index,
			Airline:         airline,
			Flight:          "FS-200",
			SourceCity:      src,
			DepartureTime:   "Morning",
			Stops:           "zero",
			ArrivalTime:     "Evening",
			DestinationCity: dst,
			Class:           "Economy",
			Duration:        duration,
			DaysLeft:        daysLeft,
			Price:           price,
		}
	}
	return []entities.FlightRecord{
		mk(1, "AirX", "Delhi", "Mumbai", 30, f64(2.0), f64(4500)),
		mk(2, "AirX", "Delhi", "Mumbai", 24, f64(2.2), f64(4500)),
		mk(3, "AirX", "Mumbai", "Delhi", 18, f64(2.1), f64(5200)),
		mk(4, "AirX", "Delhi", "Kolkata", 12, f64(2.6), f64(6100)),
		mk(5, "AirX", "Delhi", "Kolkata", 6, f64(2.4), f64(7300)),
		mk(6, "AirY", "Delhi", "Mumbai", 28, f64(2.3), f64(3900)),
		mk(7, "AirY", "Delhi", "Mumbai", 21, f64(2.0), f64(4100)),
		mk(8, "AirY", "Mumbai", "Delhi", 14, f64(2.2), f64(4700)),
		mk(9, "AirY", "Mumbai", "Delhi", 7, f64(2.5), f64(5600)),
		mk(10, "AirY", "Delhi", "Kolkata", 3, f64(2.7), f64(8200)),
		mk(11, "AirZ", "Delhi", "Mumbai", 26, f64(1.9), f64(6800)),
		mk(12, "AirZ", "Mumbai", "Delhi", 9, f64(2.8), f64(6800)),
		mk(13, "AirW", "Delhi", "Mumbai", 20, f64(2.3), nil),
		mk(14, "AirW", "Mumbai", "Delhi", 5, nil, f64(7100)),
	}
}

func seedTestDB(t *testing.T, gdb *gormlib.DB) []entities.FlightRecord {
	t.Helper()

	records := seedRecords()
	flights := make([]gormmodels.Flight, 0, len(records))
	for _, r := range records {
		flights = append(flights, gormmodels.Flight{
			Index:           r.Index,
			Airline:         r.Airline,
			Flight:          r.Flight,
			SourceCity:      r.SourceCity,
			DepartureTime:   r.DepartureTime,
			Stops:           r.Stops,
			ArrivalTime:     r.ArrivalTime,
			DestinationCity: r.DestinationCity,
			Class:           r.Class,
			Duration:        r.Duration,
			DaysLeft:        r.DaysLeft,
			Price:           r.Price,
		})
	}

	loader := NewFlightLoaderRepository(gdb)
	require.NoError(t, loader.BatchInsert(context.Background(), flights))
	return records
}
