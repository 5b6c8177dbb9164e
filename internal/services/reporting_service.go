package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"skyfare/farescope/internal/common"
	"skyfare/farescope/internal/constants"
	"skyfare/farescope/internal/db/repositories"
	"skyfare/farescope/internal/logging"
	"skyfare/farescope/internal/metrics"
)

// snapshotConcurrency bounds how many reports one snapshot runs at once.
const snapshotConcurrency = 4

// ReportError carries a stable error code alongside the message so
// dashboard consumers can branch without string matching.
type ReportError struct {
	Code    string
	Message string
	Err     error
}

func (e *ReportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ReportError) Unwrap() error {
	return e.Err
}

// DashboardSnapshot is one full dashboard evaluation: every requested
// report's rows, keyed by report name, plus per-report failures. A
// failed report never fails the snapshot.
type DashboardSnapshot struct {
	ID          string                              `json:"id"`
	GeneratedAt time.Time                           `json:"generated_at"`
	Reports     map[string][]map[string]interface{} `json:"reports"`
	Errors      map[string]string                   `json:"errors,omitempty"`
}

// ReportingService executes cataloged reports with a read-through cache
// and instrumentation. The underlying relations are immutable between
// refreshes, so cached results stay correct for the configured TTL.
type ReportingService struct {
	statsRepo  *repositories.FareStatsRepository
	flightRepo *repositories.FlightRepository
	cache      common.CacheInterface
	metrics    *metrics.MetricsRegistry
	cacheTTL   time.Duration
}

func NewReportingService(
	statsRepo *repositories.FareStatsRepository,
	flightRepo *repositories.FlightRepository,
	cache common.CacheInterface,
	metricsReg *metrics.MetricsRegistry,
	cacheTTL time.Duration,
) *ReportingService {
	return &ReportingService{
		statsRepo:  statsRepo,
		flightRepo: flightRepo,
		cache:      cache,
		metrics:    metricsReg,
		cacheTTL:   cacheTTL,
	}
}

// RunReport executes one cataloged report by name, serving from cache
// when possible.
func (s *ReportingService) RunReport(ctx context.Context, name string) ([]map[string]interface{}, error) {
	if _, ok := constants.Catalog[name]; !ok {
		return nil, &ReportError{
			Code:    constants.ErrCodeUnknownQuery,
			Message: constants.GetErrorMessage(constants.ErrCodeUnknownQuery),
		}
	}

	cacheKey := "report:" + name
	if cached, found := s.cache.Get(cacheKey); found {
		if rows, ok := reportRows(cached); ok {
			s.metrics.CacheHitsTotal.WithLabelValues(name).Inc()
			return rows, nil
		}
	}
	s.metrics.CacheMissesTotal.WithLabelValues(name).Inc()

	start := time.Now()
	rows, err := s.statsRepo.RunCatalogQuery(ctx, name)
	duration := time.Since(start)

	s.metrics.ReportQueriesTotal.WithLabelValues(name).Inc()
	s.metrics.ReportQueryDuration.WithLabelValues(name).Observe(duration.Seconds())

	if err != nil {
		s.metrics.ReportQueryErrors.WithLabelValues(name).Inc()
		return nil, &ReportError{
			Code:    constants.ErrCodeQueryFailed,
			Message: constants.GetErrorMessage(constants.ErrCodeQueryFailed),
			Err:     err,
		}
	}

	logging.Debug("Report executed",
		"report", name,
		"rows", len(rows),
		"duration_ms", duration.Milliseconds(),
	)

	s.cache.Set(cacheKey, rows, s.cacheTTL)
	return rows, nil
}

// reportRows normalizes a cached value back into report rows. The Redis
// backend round-trips values through JSON, which decodes the slice as
// []interface{}; both shapes are accepted.
func reportRows(v interface{}) ([]map[string]interface{}, bool) {
	switch rows := v.(type) {
	case []map[string]interface{}:
		return rows, true
	case []interface{}:
		out := make([]map[string]interface{}, 0, len(rows))
		for _, r := range rows {
			m, ok := r.(map[string]interface{})
			if !ok {
				return nil, false
			}
			out = append(out, m)
		}
		return out, true
	}
	return nil, false
}

// DashboardSnapshot runs the given report set in parallel and collects
// the results. An empty set falls back to the default dashboard. Report
// failures are recorded per report, not propagated, per the no-fatal
// error policy of this layer.
func (s *ReportingService) DashboardSnapshot(ctx context.Context, reportNames []string) (*DashboardSnapshot, error) {
	if len(reportNames) == 0 {
		reportNames = constants.DefaultDashboardQueries
	}

	snapshot := &DashboardSnapshot{
		ID:          uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Reports:     make(map[string][]map[string]interface{}, len(reportNames)),
		Errors:      make(map[string]string),
	}

	log := logging.WithSnapshot(snapshot.ID)
	log.Infow("Dashboard snapshot starting", "reports", len(reportNames))
	start := time.Now()

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(snapshotConcurrency)

	for _, name := range reportNames {
		name := name
		g.Go(func() error {
			rows, err := s.RunReport(gctx, name)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				snapshot.Errors[name] = err.Error()
				return nil
			}
			snapshot.Reports[name] = rows
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.metrics.SnapshotDuration.Observe(time.Since(start).Seconds())
	log.Infow("Dashboard snapshot complete",
		"reports", len(snapshot.Reports),
		"failed", len(snapshot.Errors),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return snapshot, nil
}

// RefreshView recomputes the fare_stats materialized view and evicts
// every cached report so the next reads see the fresh statistics.
func (s *ReportingService) RefreshView(ctx context.Context) error {
	start := time.Now()
	if err := s.statsRepo.Refresh(ctx); err != nil {
		return &ReportError{
			Code:    constants.ErrCodeRefreshFailed,
			Message: constants.GetErrorMessage(constants.ErrCodeRefreshFailed),
			Err:     err,
		}
	}
	s.metrics.ViewRefreshDuration.Observe(time.Since(start).Seconds())

	for _, name := range CatalogNames() {
		s.cache.Delete("report:" + name)
	}

	if count, err := s.flightRepo.Count(ctx); err == nil {
		s.metrics.BaseRelationRows.Set(float64(count))
	}

	logging.Info("fare_stats view refreshed", "duration_ms", time.Since(start).Milliseconds())
	return nil
}

// CatalogNames returns every cataloged report name, sorted.
func CatalogNames() []string {
	names := make([]string, 0, len(constants.Catalog))
	for name := range constants.Catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
