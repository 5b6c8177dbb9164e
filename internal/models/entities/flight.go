package entities

// FlightRecord is one row of the airlines base relation. Records are
// bulk-loaded once and treated as immutable; Index is the stable ordering
// surrogate within a partition. Price and Duration are nullable so that
// data-quality gaps propagate through derived statistics instead of
// failing the computation.
type FlightRecord struct {
	Index           int64    `db:"index"`
	Airline         string   `db:"airline"`
	Flight          string   `db:"flight"`
	SourceCity      string   `db:"source_city"`
	DepartureTime   string   `db:"departure_time"`
	Stops           string   `db:"stops"`
	ArrivalTime     string   `db:"arrival_time"`
	DestinationCity string   `db:"destination_city"`
	Class           string   `db:"class"`
	Duration        *float64 `db:"duration"`
	DaysLeft        int64    `db:"days_left"`
	Price           *float64 `db:"price"`
}

// Route returns the ordered (source_city, destination_city) pair as a key.
func (f FlightRecord) Route() string {
	return f.SourceCity + " -> " + f.DestinationCity
}

// FareStatsRow is one row of the fare_stats analytical view: the base
// record extended with partition-scoped window statistics. Any statistic
// that needs a neighbor or a minimum partition size is a pointer and nil
// at partition boundaries.
type FareStatsRow struct {
	FlightRecord

	PriceRankRoute           *int64 `db:"price_rank_route"`
	PriceDenseRankRoute      *int64 `db:"price_dense_rank_route"`
	PriceRankAirline         *int64 `db:"price_rank_airline"`
	PriceDenseRankAirline    *int64 `db:"price_dense_rank_airline"`
	DurationRankRoute        *int64 `db:"duration_rank_route"`
	DurationDenseRankRoute   *int64 `db:"duration_dense_rank_route"`
	DurationRankAirline      *int64 `db:"duration_rank_airline"`
	DurationDenseRankAirline *int64 `db:"duration_dense_rank_airline"`

	RunningPriceAirline *float64 `db:"running_price_airline"`
	PriceMovingAvg3     *float64 `db:"price_moving_avg3"`

	PriceDiffPrev *float64 `db:"price_diff_prev"`
	PriceDiffNext *float64 `db:"price_diff_next"`

	PriceQuartile *int64 `db:"price_quartile"`

	FirstRoutePrice *float64 `db:"first_route_price"`
	LastRoutePrice  *float64 `db:"last_route_price"`

	ThirdLowestAirlinePrice *float64 `db:"third_lowest_airline_price"`

	RouteFlights    int64    `db:"route_flights"`
	RouteAvgPrice   *float64 `db:"route_avg_price"`
	PriceVsRouteAvg *float64 `db:"price_vs_route_avg"`
}
