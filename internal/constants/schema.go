package constants

// Schema DDL for the airlines base relation. "index" is the row identity
// and the stable ordering surrogate inside every window; price and
// duration stay nullable so loader gaps surface as NULL statistics
// instead of load failures.
const (
	CreateAirlinesTable = `
	CREATE TABLE IF NOT EXISTS airlines (
		"index"          BIGINT PRIMARY KEY,
		airline          TEXT NOT NULL,
		flight           TEXT NOT NULL,
		source_city      TEXT NOT NULL,
		departure_time   TEXT NOT NULL,
		stops            TEXT NOT NULL,
		arrival_time     TEXT NOT NULL,
		destination_city TEXT NOT NULL,
		class            TEXT NOT NULL,
		duration         NUMERIC,
		days_left        BIGINT NOT NULL CHECK (days_left >= 0),
		price            NUMERIC CHECK (price IS NULL OR price >= 0)
	)
	`

	CreateAirlinesAirlineIndex = `
	CREATE INDEX IF NOT EXISTS idx_airlines_airline ON airlines (airline)
	`

	CreateAirlinesRouteIndex = `
	CREATE INDEX IF NOT EXISTS idx_airlines_route ON airlines (source_city, destination_city)
	`
)

// FareStatsSelect is the single SELECT behind the fare_stats view.
// Positional windows (NTILE, NTH_VALUE, LAG/LEAD, FIRST/LAST_VALUE) break
// ties on "index" so recomputation is byte-identical; the rank windows
// deliberately omit the tiebreak so equal values share a rank.
//
// Policy decisions baked in:
//   - ranks are NULL when price/duration is NULL (NULLS LAST keeps the
//     numbering of non-null rows unaffected);
//   - the quartile is joined in from a subquery over priced rows only, so
//     null prices neither get a bucket nor inflate bucket sizes;
//   - the 3-row trailing moving average is NULL for the first two rows of
//     a partition, except a single-row partition where it is that price;
//   - "last" price spans current row to partition end;
//   - NTH_VALUE over a partition smaller than 3 is NULL.
const FareStatsSelect = `
	SELECT
		f."index",
		f.airline,
		f.flight,
		f.source_city,
		f.departure_time,
		f.stops,
		f.arrival_time,
		f.destination_city,
		f.class,
		f.duration,
		f.days_left,
		f.price,

		CASE WHEN f.price IS NULL THEN NULL ELSE
			RANK() OVER (PARTITION BY f.source_city, f.destination_city
				ORDER BY f.price ASC NULLS LAST)
		END AS price_rank_route,
		CASE WHEN f.price IS NULL THEN NULL ELSE
			DENSE_RANK() OVER (PARTITION BY f.source_city, f.destination_city
				ORDER BY f.price ASC NULLS LAST)
		END AS price_dense_rank_route,
		CASE WHEN f.price IS NULL THEN NULL ELSE
			RANK() OVER (PARTITION BY f.airline
				ORDER BY f.price ASC NULLS LAST)
		END AS price_rank_airline,
		CASE WHEN f.price IS NULL THEN NULL ELSE
			DENSE_RANK() OVER (PARTITION BY f.airline
				ORDER BY f.price ASC NULLS LAST)
		END AS price_dense_rank_airline,
		CASE WHEN f.duration IS NULL THEN NULL ELSE
			RANK() OVER (PARTITION BY f.source_city, f.destination_city
				ORDER BY f.duration ASC NULLS LAST)
		END AS duration_rank_route,
		CASE WHEN f.duration IS NULL THEN NULL ELSE
			DENSE_RANK() OVER (PARTITION BY f.source_city, f.destination_city
				ORDER BY f.duration ASC NULLS LAST)
		END AS duration_dense_rank_route,
		CASE WHEN f.duration IS NULL THEN NULL ELSE
			RANK() OVER (PARTITION BY f.airline
				ORDER BY f.duration ASC NULLS LAST)
		END AS duration_rank_airline,
		CASE WHEN f.duration IS NULL THEN NULL ELSE
			DENSE_RANK() OVER (PARTITION BY f.airline
				ORDER BY f.duration ASC NULLS LAST)
		END AS duration_dense_rank_airline,

		SUM(f.price) OVER (PARTITION BY f.airline
			ORDER BY f."index" ASC
			ROWS UNBOUNDED PRECEDING) AS running_price_airline,

		CASE
			WHEN COUNT(*) OVER (PARTITION BY f.airline) = 1 THEN f.price
			WHEN ROW_NUMBER() OVER (PARTITION BY f.airline ORDER BY f."index" ASC) < 3 THEN NULL
			ELSE AVG(f.price) OVER (PARTITION BY f.airline
				ORDER BY f."index" ASC
				ROWS BETWEEN 2 PRECEDING AND CURRENT ROW)
		END AS price_moving_avg3,

		f.price - LAG(f.price) OVER (PARTITION BY f.source_city, f.destination_city
			ORDER BY f.days_left DESC, f."index" ASC) AS price_diff_prev,
		f.price - LEAD(f.price) OVER (PARTITION BY f.source_city, f.destination_city
			ORDER BY f.days_left DESC, f."index" ASC) AS price_diff_next,

		q.price_quartile,

		FIRST_VALUE(f.price) OVER (PARTITION BY f.source_city, f.destination_city
			ORDER BY f.days_left DESC, f."index" ASC) AS first_route_price,
		LAST_VALUE(f.price) OVER (PARTITION BY f.source_city, f.destination_city
			ORDER BY f.days_left DESC, f."index" ASC
			ROWS BETWEEN CURRENT ROW AND UNBOUNDED FOLLOWING) AS last_route_price,

		NTH_VALUE(f.price, 3) OVER (PARTITION BY f.airline
			ORDER BY f.price ASC NULLS LAST, f."index" ASC
			ROWS BETWEEN UNBOUNDED PRECEDING AND UNBOUNDED FOLLOWING) AS third_lowest_airline_price,

		COUNT(*) OVER (PARTITION BY f.source_city, f.destination_city) AS route_flights,
		AVG(f.price) OVER (PARTITION BY f.source_city, f.destination_city) AS route_avg_price,
		f.price - AVG(f.price) OVER (PARTITION BY f.source_city, f.destination_city) AS price_vs_route_avg
	FROM airlines f
	LEFT JOIN (
		SELECT "index",
			NTILE(4) OVER (ORDER BY price ASC, "index" ASC) AS price_quartile
		FROM airlines
		WHERE price IS NOT NULL
	) q ON q."index" = f."index"
`

// fare_stats view DDL. Postgres gets a materialized view; engines without
// materialized views (the SQLite test harness) wrap the same SELECT as a
// plain view, so the statistics are defined exactly once.
const (
	CreateFareStatsMaterializedView = `CREATE MATERIALIZED VIEW IF NOT EXISTS fare_stats AS ` + FareStatsSelect

	CreateFareStatsPlainView = `CREATE VIEW IF NOT EXISTS fare_stats AS ` + FareStatsSelect

	RefreshFareStatsView = `REFRESH MATERIALIZED VIEW fare_stats`

	DropFareStatsMaterializedView = `DROP MATERIALIZED VIEW IF EXISTS fare_stats`
)
