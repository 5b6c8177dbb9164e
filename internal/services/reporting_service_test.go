package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	gormlib "gorm.io/gorm"
	"gorm.io/gorm/logger"

	"skyfare/farescope/internal/common"
	"skyfare/farescope/internal/constants"
	"skyfare/farescope/internal/db/repositories"
	"skyfare/farescope/internal/metrics"
	gormmodels "skyfare/farescope/internal/models/gorm"
)

// countingCache wraps the in-process cache and records traffic.
type countingCache struct {
	inner common.CacheInterface
	gets  int
	hits  int
	sets  int
}

func (c *countingCache) Set(key string, value interface{}, duration time.Duration) {
	c.sets++
	c.inner.Set(key, value, duration)
}

func (c *countingCache) Get(key string) (interface{}, bool) {
	c.gets++
	val, found := c.inner.Get(key)
	if found {
		c.hits++
	}
	return val, found
}

func (c *countingCache) Delete(key string) { c.inner.Delete(key) }

func (c *countingCache) GetOrSet(key string, duration time.Duration, loader func() (any, error)) (interface{}, error) {
	return c.inner.GetOrSet(key, duration, loader)
}

func (c *countingCache) Close() error { return c.inner.Close() }

// jsonCache stores values the way the shared Redis backend does: encoded
// to JSON on write, decoded into generic values on read.
type jsonCache struct {
	data map[string][]byte
}

func newJSONCache() *jsonCache { return &jsonCache{data: map[string][]byte{}} }

func (c *jsonCache) Set(key string, value interface{}, _ time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	c.data[key] = data
}

func (c *jsonCache) Get(key string) (interface{}, bool) {
	data, ok := c.data[key]
	if !ok {
		return nil, false
	}
	var result interface{}
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, false
	}
	return result, true
}

func (c *jsonCache) Delete(key string) { delete(c.data, key) }

func (c *jsonCache) GetOrSet(key string, duration time.Duration, loader func() (any, error)) (interface{}, error) {
	if val, found := c.Get(key); found {
		return val, nil
	}
	val, err := loader()
	if err != nil {
		return nil, err
	}
	c.Set(key, val, duration)
	return val, nil
}

func (c *jsonCache) Close() error { return nil }

func setupService(t *testing.T) (*ReportingService, *countingCache) {
	return setupServiceWithCache(t, common.NewCacheService(60, 120))
}

func setupServiceWithCache(t *testing.T, inner common.CacheInterface) (*ReportingService, *countingCache) {
	t.Helper()

	gdb, err := gormlib.Open(sqlite.Open(":memory:"), &gormlib.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, gdb.AutoMigrate(&gormmodels.Flight{}))

	price := func(v float64) *float64 { return &v }
	duration := func(v float64) *float64 { return &v }
	flights := []gormmodels.Flight{
		{Index: 1, Airline: "AirX", Flight: "FS-1", SourceCity: "Delhi", DepartureTime: "Morning", Stops: "zero", ArrivalTime: "Evening", DestinationCity: "Mumbai", Class: "Economy", Duration: duration(2.1), DaysLeft: 12, Price: price(4200)},
		{Index: 2, Airline: "AirX", Flight: "FS-2", SourceCity: "Delhi", DepartureTime: "Evening", Stops: "one", ArrivalTime: "Night", DestinationCity: "Mumbai", Class: "Business", Duration: duration(2.4), DaysLeft: 6, Price: price(9100)},
		{Index: 3, Airline: "AirY", Flight: "FS-3", SourceCity: "Delhi", DepartureTime: "Morning", Stops: "zero", ArrivalTime: "Evening", DestinationCity: "Mumbai", Class: "Economy", Duration: duration(2.0), DaysLeft: 3, Price: price(5400)},
	}
	loader := repositories.NewFlightLoaderRepository(gdb)
	require.NoError(t, loader.BatchInsert(context.Background(), flights))

	db := sqlx.NewDb(sqlDB, "sqlite3")
	statsRepo := repositories.NewFareStatsRepository(db)
	require.NoError(t, statsRepo.CreatePlainView(context.Background()))

	cache := &countingCache{inner: inner}
	metricsReg := metrics.NewMetricsRegistry(prometheus.NewRegistry())

	svc := NewReportingService(
		statsRepo,
		repositories.NewFlightRepository(db),
		cache,
		metricsReg,
		time.Minute,
	)
	return svc, cache
}

func TestRunReport_CachesResults(t *testing.T) {
	svc, cache := setupService(t)
	ctx := context.Background()

	first, err := svc.RunReport(ctx, "avg_price_by_airline")
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Equal(t, 1, cache.sets)
	assert.Equal(t, 0, cache.hits)

	second, err := svc.RunReport(ctx, "avg_price_by_airline")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, cache.sets)
	assert.Equal(t, 1, cache.hits)
}

// A backend that JSON-serializes values hands back []interface{}; the
// service must still recognize that as a hit instead of re-running and
// re-storing the report forever.
func TestRunReport_CacheHitAfterJSONRoundTrip(t *testing.T) {
	svc, cache := setupServiceWithCache(t, newJSONCache())
	ctx := context.Background()

	first, err := svc.RunReport(ctx, "avg_price_by_airline")
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Equal(t, 1, cache.sets)

	second, err := svc.RunReport(ctx, "avg_price_by_airline")
	require.NoError(t, err)
	require.Len(t, second, 2)
	assert.Equal(t, 1, cache.hits)
	assert.Equal(t, 1, cache.sets, "a decoded hit must not be stored again")
}

func TestRunReport_UnknownName(t *testing.T) {
	svc, cache := setupService(t)

	_, err := svc.RunReport(context.Background(), "no_such_report")
	require.Error(t, err)

	var reportErr *ReportError
	require.True(t, errors.As(err, &reportErr))
	assert.Equal(t, constants.ErrCodeUnknownQuery, reportErr.Code)
	assert.Zero(t, cache.gets, "unknown reports must not touch the cache")
}

func TestDashboardSnapshot_DefaultSet(t *testing.T) {
	svc, _ := setupService(t)

	snapshot, err := svc.DashboardSnapshot(context.Background(), nil)
	require.NoError(t, err)

	assert.NotEmpty(t, snapshot.ID)
	assert.False(t, snapshot.GeneratedAt.IsZero())
	assert.Empty(t, snapshot.Errors)
	assert.Len(t, snapshot.Reports, len(constants.DefaultDashboardQueries))
	for _, name := range constants.DefaultDashboardQueries {
		assert.Contains(t, snapshot.Reports, name)
	}
}

func TestDashboardSnapshot_CollectsPerReportErrors(t *testing.T) {
	svc, _ := setupService(t)

	snapshot, err := svc.DashboardSnapshot(context.Background(), []string{
		"total_flights",
		"no_such_report",
	})
	require.NoError(t, err)

	assert.Contains(t, snapshot.Reports, "total_flights")
	assert.Contains(t, snapshot.Errors, "no_such_report")
}

func TestDashboardSnapshot_UniqueIDs(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	a, err := svc.DashboardSnapshot(ctx, []string{"total_flights"})
	require.NoError(t, err)
	b, err := svc.DashboardSnapshot(ctx, []string{"total_flights"})
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestRefreshView_FailureCode(t *testing.T) {
	svc, _ := setupService(t)

	// The test engine has no materialized views, so the refresh statement
	// fails at execution.
	err := svc.RefreshView(context.Background())
	require.Error(t, err)

	var reportErr *ReportError
	require.True(t, errors.As(err, &reportErr))
	assert.Equal(t, constants.ErrCodeRefreshFailed, reportErr.Code)
}

func TestCatalogNames(t *testing.T) {
	names := CatalogNames()
	assert.Len(t, names, len(constants.Catalog))
	assert.IsNonDecreasing(t, names)
}
