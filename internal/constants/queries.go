package constants

// Cataloged BI queries for the airlines relation and the fare_stats view.
// All of them are read-only and parameter-free so a dashboard can run any
// subset verbatim. The SQL sticks to portable constructs (CAST, FILTER,
// window functions) and runs unchanged on Postgres and SQLite.

// Dataset shape.
const (
	QTotalFlights = `
	SELECT COUNT(*) AS total_flights FROM airlines
	`

	QDistinctAirlines = `
	SELECT COUNT(DISTINCT airline) AS airlines FROM airlines
	`

	QDistinctRoutes = `
	SELECT COUNT(DISTINCT source_city || ' -> ' || destination_city) AS routes FROM airlines
	`

	QDistinctSourceCities = `
	SELECT COUNT(DISTINCT source_city) AS source_cities FROM airlines
	`

	QDistinctDestinationCities = `
	SELECT COUNT(DISTINCT destination_city) AS destination_cities FROM airlines
	`

	QNullPriceRows = `
	SELECT COUNT(*) AS null_price_rows FROM airlines WHERE price IS NULL
	`
)

// Carrier breakdowns.
const (
	QFlightsPerAirline = `
	SELECT airline, COUNT(*) AS flights
	FROM airlines
	GROUP BY airline
	ORDER BY flights DESC, airline ASC
	`

	QAvgPriceByAirline = `
	SELECT airline, AVG(price) AS avg_price
	FROM airlines
	GROUP BY airline
	ORDER BY avg_price DESC, airline ASC
	`

	QPriceRangeByAirline = `
	SELECT airline, MIN(price) AS min_price, MAX(price) AS max_price,
		MAX(price) - MIN(price) AS price_spread
	FROM airlines
	GROUP BY airline
	ORDER BY price_spread DESC, airline ASC
	`

	QPriceVarianceByAirline = `
	SELECT airline,
		AVG(price * price) - AVG(price) * AVG(price) AS price_variance
	FROM airlines
	GROUP BY airline
	ORDER BY price_variance DESC, airline ASC
	`

	QAvgDurationByAirline = `
	SELECT airline, AVG(duration) AS avg_duration
	FROM airlines
	GROUP BY airline
	ORDER BY avg_duration ASC, airline ASC
	`

	QAvgDaysLeftByAirline = `
	SELECT airline, AVG(CAST(days_left AS REAL)) AS avg_days_left
	FROM airlines
	GROUP BY airline
	ORDER BY avg_days_left ASC, airline ASC
	`

	QAirlineMarketShare = `
	SELECT airline,
		COUNT(*) AS flights,
		COUNT(*) * 100.0 / SUM(COUNT(*)) OVER () AS share_pct
	FROM airlines
	GROUP BY airline
	ORDER BY share_pct DESC, airline ASC
	`

	QAirlineRouteCoverage = `
	SELECT airline,
		COUNT(DISTINCT source_city || ' -> ' || destination_city) AS routes_served
	FROM airlines
	GROUP BY airline
	ORDER BY routes_served DESC, airline ASC
	`

	QPricePerHourByAirline = `
	SELECT airline, AVG(price / duration) AS avg_price_per_hour
	FROM airlines
	WHERE duration IS NOT NULL AND duration > 0
	GROUP BY airline
	ORDER BY avg_price_per_hour ASC, airline ASC
	`

	QZeroStopShareByAirline = `
	SELECT airline,
		COUNT(*) FILTER (WHERE stops = 'zero') * 1.0 / COUNT(*) AS zero_stop_share
	FROM airlines
	GROUP BY airline
	ORDER BY zero_stop_share DESC, airline ASC
	`

	QNightFlightsByAirline = `
	SELECT airline, COUNT(*) AS night_flights
	FROM airlines
	WHERE departure_time IN ('Night', 'Late_Night')
	GROUP BY airline
	ORDER BY night_flights DESC, airline ASC
	`
)

// Route breakdowns.
const (
	QFlightsPerRoute = `
	SELECT source_city, destination_city, COUNT(*) AS flights
	FROM airlines
	GROUP BY source_city, destination_city
	ORDER BY flights DESC, source_city ASC, destination_city ASC
	`

	QBusiestRoutes = `
	SELECT source_city, destination_city, COUNT(*) AS flights
	FROM airlines
	GROUP BY source_city, destination_city
	ORDER BY flights DESC, source_city ASC, destination_city ASC
	LIMIT 10
	`

	QAvgPriceByRoute = `
	SELECT source_city, destination_city, AVG(price) AS avg_price
	FROM airlines
	GROUP BY source_city, destination_city
	ORDER BY avg_price DESC, source_city ASC, destination_city ASC
	`

	QPriceSpreadByRoute = `
	SELECT source_city, destination_city,
		MAX(price) - MIN(price) AS price_spread
	FROM airlines
	GROUP BY source_city, destination_city
	ORDER BY price_spread DESC, source_city ASC, destination_city ASC
	`

	QAvgDurationByRoute = `
	SELECT source_city, destination_city, AVG(duration) AS avg_duration
	FROM airlines
	GROUP BY source_city, destination_city
	ORDER BY avg_duration DESC, source_city ASC, destination_city ASC
	`

	QCheapestAirlinePerRoute = `
	SELECT source_city, destination_city, airline, avg_price
	FROM (
		SELECT source_city, destination_city, airline,
			AVG(price) AS avg_price,
			RANK() OVER (PARTITION BY source_city, destination_city
				ORDER BY AVG(price) ASC, airline ASC) AS price_pos
		FROM airlines
		GROUP BY source_city, destination_city, airline
	) ranked
	WHERE price_pos = 1
	ORDER BY source_city ASC, destination_city ASC
	`

	QPriciestAirlinePerRoute = `
	SELECT source_city, destination_city, airline, avg_price
	FROM (
		SELECT source_city, destination_city, airline,
			AVG(price) AS avg_price,
			RANK() OVER (PARTITION BY source_city, destination_city
				ORDER BY AVG(price) DESC, airline ASC) AS price_pos
		FROM airlines
		GROUP BY source_city, destination_city, airline
	) ranked
	WHERE price_pos = 1
	ORDER BY source_city ASC, destination_city ASC
	`

	QFlightsFromCity = `
	SELECT source_city, COUNT(*) AS departures
	FROM airlines
	GROUP BY source_city
	ORDER BY departures DESC, source_city ASC
	`

	QFlightsToCity = `
	SELECT destination_city, COUNT(*) AS arrivals
	FROM airlines
	GROUP BY destination_city
	ORDER BY arrivals DESC, destination_city ASC
	`

	QRouteClassMatrix = `
	SELECT source_city, destination_city, class,
		COUNT(*) AS flights, AVG(price) AS avg_price
	FROM airlines
	GROUP BY source_city, destination_city, class
	ORDER BY source_city ASC, destination_city ASC, class ASC
	`
)

// Cabin class and stops.
const (
	QAvgPriceByClass = `
	SELECT class, COUNT(*) AS flights, AVG(price) AS avg_price
	FROM airlines
	GROUP BY class
	ORDER BY avg_price DESC
	`

	QBusinessPremiumByAirline = `
	SELECT airline,
		AVG(price) FILTER (WHERE class = 'Business') AS avg_business,
		AVG(price) FILTER (WHERE class = 'Economy') AS avg_economy,
		AVG(price) FILTER (WHERE class = 'Business')
			- AVG(price) FILTER (WHERE class = 'Economy') AS premium
	FROM airlines
	GROUP BY airline
	ORDER BY premium DESC, airline ASC
	`

	QBusinessPremiumByRoute = `
	SELECT source_city, destination_city,
		AVG(price) FILTER (WHERE class = 'Business')
			- AVG(price) FILTER (WHERE class = 'Economy') AS premium
	FROM airlines
	GROUP BY source_city, destination_city
	ORDER BY premium DESC, source_city ASC, destination_city ASC
	`

	QFlightsByStops = `
	SELECT stops, COUNT(*) AS flights
	FROM airlines
	GROUP BY stops
	ORDER BY flights DESC, stops ASC
	`

	QAvgPriceByStops = `
	SELECT stops, AVG(price) AS avg_price
	FROM airlines
	GROUP BY stops
	ORDER BY avg_price ASC, stops ASC
	`

	QAvgDurationByStops = `
	SELECT stops, AVG(duration) AS avg_duration
	FROM airlines
	GROUP BY stops
	ORDER BY avg_duration ASC, stops ASC
	`

	QAvgPriceByClassAndStops = `
	SELECT class, stops, COUNT(*) AS flights, AVG(price) AS avg_price
	FROM airlines
	GROUP BY class, stops
	ORDER BY class ASC, stops ASC
	`
)

// Time-of-day buckets.
const (
	QFlightsByDepartureTime = `
	SELECT departure_time, COUNT(*) AS flights
	FROM airlines
	GROUP BY departure_time
	ORDER BY flights DESC, departure_time ASC
	`

	QAvgPriceByDepartureTime = `
	SELECT departure_time, AVG(price) AS avg_price
	FROM airlines
	GROUP BY departure_time
	ORDER BY avg_price DESC, departure_time ASC
	`

	QAvgPriceByArrivalTime = `
	SELECT arrival_time, AVG(price) AS avg_price
	FROM airlines
	GROUP BY arrival_time
	ORDER BY avg_price DESC, arrival_time ASC
	`

	QEarlyMorningCheapSeats = `
	SELECT airline, flight, source_city, destination_city, price
	FROM airlines
	WHERE departure_time = 'Early_Morning' AND price IS NOT NULL
	ORDER BY price ASC, "index" ASC
	LIMIT 10
	`
)

// Booking lead time.
const (
	QAvgPriceByDaysLeft = `
	SELECT days_left, COUNT(*) AS flights, AVG(price) AS avg_price
	FROM airlines
	GROUP BY days_left
	ORDER BY days_left DESC
	`

	QPriceByLeadTimeBucket = `
	SELECT
		CASE
			WHEN days_left <= 3  THEN 'last_minute'
			WHEN days_left <= 7  THEN 'within_week'
			WHEN days_left <= 30 THEN 'within_month'
			ELSE 'early_bird'
		END AS lead_bucket,
		COUNT(*) AS flights,
		AVG(price) AS avg_price
	FROM airlines
	GROUP BY 1
	ORDER BY avg_price DESC
	`

	QLastMinuteMarkupByAirline = `
	SELECT airline,
		AVG(price) FILTER (WHERE days_left <= 3) AS last_minute_avg,
		AVG(price) FILTER (WHERE days_left > 3) AS regular_avg,
		AVG(price) FILTER (WHERE days_left <= 3)
			- AVG(price) FILTER (WHERE days_left > 3) AS markup
	FROM airlines
	GROUP BY airline
	ORDER BY markup DESC, airline ASC
	`
)

// Outliers.
const (
	QMostExpensiveFlights = `
	SELECT "index", airline, flight, source_city, destination_city, class, price
	FROM airlines
	WHERE price IS NOT NULL
	ORDER BY price DESC, "index" ASC
	LIMIT 10
	`

	QCheapestFlights = `
	SELECT "index", airline, flight, source_city, destination_city, class, price
	FROM airlines
	WHERE price IS NOT NULL
	ORDER BY price ASC, "index" ASC
	LIMIT 10
	`

	QLongestFlights = `
	SELECT "index", airline, flight, source_city, destination_city, duration
	FROM airlines
	WHERE duration IS NOT NULL
	ORDER BY duration DESC, "index" ASC
	LIMIT 10
	`

	QShortestFlights = `
	SELECT "index", airline, flight, source_city, destination_city, duration
	FROM airlines
	WHERE duration IS NOT NULL
	ORDER BY duration ASC, "index" ASC
	LIMIT 10
	`

	QWorstPricePerHour = `
	SELECT "index", airline, flight, source_city, destination_city,
		price / duration AS price_per_hour
	FROM airlines
	WHERE price IS NOT NULL AND duration IS NOT NULL AND duration > 0
	ORDER BY price_per_hour DESC, "index" ASC
	LIMIT 10
	`

	QMostFrequentFlightCodes = `
	SELECT airline, flight, COUNT(*) AS occurrences
	FROM airlines
	GROUP BY airline, flight
	ORDER BY occurrences DESC, airline ASC, flight ASC
	LIMIT 10
	`
)

// Queries over the fare_stats analytical view.
const (
	QFareStatsAll = `
	SELECT * FROM fare_stats ORDER BY "index" ASC
	`

	QQuartileSummary = `
	SELECT price_quartile, COUNT(*) AS flights,
		MIN(price) AS min_price, MAX(price) AS max_price, AVG(price) AS avg_price
	FROM fare_stats
	WHERE price_quartile IS NOT NULL
	GROUP BY price_quartile
	ORDER BY price_quartile ASC
	`

	QRunningTotalByAirline = `
	SELECT airline, MAX(running_price_airline) AS total_price
	FROM fare_stats
	GROUP BY airline
	ORDER BY total_price DESC, airline ASC
	`

	QBestFarePerAirline = `
	SELECT airline, flight, source_city, destination_city, price
	FROM fare_stats
	WHERE price_rank_airline = 1
	ORDER BY airline ASC, "index" ASC
	`

	QBestFarePerRoute = `
	SELECT source_city, destination_city, airline, flight, price
	FROM fare_stats
	WHERE price_rank_route = 1
	ORDER BY source_city ASC, destination_city ASC, "index" ASC
	`

	QMostVolatileRoutes = `
	SELECT source_city, destination_city,
		AVG(ABS(price_diff_prev)) AS avg_step
	FROM fare_stats
	WHERE price_diff_prev IS NOT NULL
	GROUP BY source_city, destination_city
	ORDER BY avg_step DESC, source_city ASC, destination_city ASC
	LIMIT 10
	`

	QMovingAverageSample = `
	SELECT airline, "index", price, price_moving_avg3
	FROM fare_stats
	WHERE price_moving_avg3 IS NOT NULL
	ORDER BY airline ASC, "index" ASC
	LIMIT 50
	`

	QAboveRouteAverageShare = `
	SELECT source_city, destination_city,
		COUNT(*) FILTER (WHERE price_vs_route_avg > 0) * 1.0 / COUNT(*) AS above_avg_share
	FROM fare_stats
	GROUP BY source_city, destination_city
	ORDER BY above_avg_share DESC, source_city ASC, destination_city ASC
	`

	QFirstLastSpreadByRoute = `
	SELECT source_city, destination_city,
		MAX(first_route_price) AS earliest_window_price,
		MAX(last_route_price) AS latest_window_price,
		MAX(first_route_price) - MAX(last_route_price) AS booking_window_spread
	FROM fare_stats
	GROUP BY source_city, destination_city
	ORDER BY booking_window_spread DESC, source_city ASC, destination_city ASC
	`

	QThirdLowestFareByAirline = `
	SELECT DISTINCT airline, third_lowest_airline_price
	FROM fare_stats
	ORDER BY third_lowest_airline_price ASC, airline ASC
	`

	QTopQuartileAirlineMix = `
	SELECT airline, COUNT(*) AS premium_fares
	FROM fare_stats
	WHERE price_quartile = 4
	GROUP BY airline
	ORDER BY premium_fares DESC, airline ASC
	`

	QDurationLeadersByRoute = `
	SELECT source_city, destination_city, airline, flight, duration
	FROM fare_stats
	WHERE duration_rank_route = 1
	ORDER BY source_city ASC, destination_city ASC, "index" ASC
	`
)

// Catalog maps a stable report name to its SQL. Services resolve dashboard
// query sets against this map; tests run every entry.
var Catalog = map[string]string{
	"total_flights":                QTotalFlights,
	"distinct_airlines":            QDistinctAirlines,
	"distinct_routes":              QDistinctRoutes,
	"distinct_source_cities":       QDistinctSourceCities,
	"distinct_destination_cities":  QDistinctDestinationCities,
	"null_price_rows":              QNullPriceRows,
	"flights_per_airline":          QFlightsPerAirline,
	"avg_price_by_airline":         QAvgPriceByAirline,
	"price_range_by_airline":       QPriceRangeByAirline,
	"price_variance_by_airline":    QPriceVarianceByAirline,
	"avg_duration_by_airline":      QAvgDurationByAirline,
	"avg_days_left_by_airline":     QAvgDaysLeftByAirline,
	"airline_market_share":         QAirlineMarketShare,
	"airline_route_coverage":       QAirlineRouteCoverage,
	"price_per_hour_by_airline":    QPricePerHourByAirline,
	"zero_stop_share_by_airline":   QZeroStopShareByAirline,
	"night_flights_by_airline":     QNightFlightsByAirline,
	"flights_per_route":            QFlightsPerRoute,
	"busiest_routes":               QBusiestRoutes,
	"avg_price_by_route":           QAvgPriceByRoute,
	"price_spread_by_route":        QPriceSpreadByRoute,
	"avg_duration_by_route":        QAvgDurationByRoute,
	"cheapest_airline_per_route":   QCheapestAirlinePerRoute,
	"priciest_airline_per_route":   QPriciestAirlinePerRoute,
	"flights_from_city":            QFlightsFromCity,
	"flights_to_city":              QFlightsToCity,
	"route_class_matrix":           QRouteClassMatrix,
	"avg_price_by_class":           QAvgPriceByClass,
	"business_premium_by_airline":  QBusinessPremiumByAirline,
	"business_premium_by_route":    QBusinessPremiumByRoute,
	"flights_by_stops":             QFlightsByStops,
	"avg_price_by_stops":           QAvgPriceByStops,
	"avg_duration_by_stops":        QAvgDurationByStops,
	"avg_price_by_class_and_stops": QAvgPriceByClassAndStops,
	"flights_by_departure_time":    QFlightsByDepartureTime,
	"avg_price_by_departure_time":  QAvgPriceByDepartureTime,
	"avg_price_by_arrival_time":    QAvgPriceByArrivalTime,
	"early_morning_cheap_seats":    QEarlyMorningCheapSeats,
	"avg_price_by_days_left":       QAvgPriceByDaysLeft,
	"price_by_lead_time_bucket":    QPriceByLeadTimeBucket,
	"last_minute_markup":           QLastMinuteMarkupByAirline,
	"most_expensive_flights":       QMostExpensiveFlights,
	"cheapest_flights":             QCheapestFlights,
	"longest_flights":              QLongestFlights,
	"shortest_flights":             QShortestFlights,
	"worst_price_per_hour":         QWorstPricePerHour,
	"most_frequent_flight_codes":   QMostFrequentFlightCodes,
	"fare_stats_all":               QFareStatsAll,
	"quartile_summary":             QQuartileSummary,
	"running_total_by_airline":     QRunningTotalByAirline,
	"best_fare_per_airline":        QBestFarePerAirline,
	"best_fare_per_route":          QBestFarePerRoute,
	"most_volatile_routes":         QMostVolatileRoutes,
	"moving_average_sample":        QMovingAverageSample,
	"above_route_average_share":    QAboveRouteAverageShare,
	"first_last_spread_by_route":   QFirstLastSpreadByRoute,
	"third_lowest_fare_by_airline": QThirdLowestFareByAirline,
	"top_quartile_airline_mix":     QTopQuartileAirlineMix,
	"duration_leaders_by_route":    QDurationLeadersByRoute,
}

// DefaultDashboardQueries is the report set a snapshot runs when the
// config does not name one.
var DefaultDashboardQueries = []string{
	"total_flights",
	"flights_per_airline",
	"avg_price_by_airline",
	"busiest_routes",
	"avg_price_by_class",
	"price_by_lead_time_bucket",
	"quartile_summary",
	"running_total_by_airline",
	"best_fare_per_route",
	"most_volatile_routes",
}
