// Package analytics derives the fare_stats statistics directly from a
// slice of flight records, without a database. It is the reference
// implementation of the analytical view: a pure function of the base
// relation that preserves row count and is idempotent.
package analytics

import (
	"sort"

	"skyfare/farescope/internal/models/entities"
)

// BuildFareStats annotates every flight record with the partition-scoped
// statistics of the fare_stats view. Output rows are ordered by index and
// there is exactly one per input record. Statistics that would need a
// missing neighbor or an undersized partition are nil, never an error;
// nil prices and durations propagate as nil the way SQL aggregates skip
// NULL inputs.
func BuildFareStats(records []entities.FlightRecord) []entities.FareStatsRow {
	rows := make([]entities.FareStatsRow, len(records))
	for i, r := range records {
		rows[i].FlightRecord = r
	}
	sort.SliceStable(rows, func(a, b int) bool { return rows[a].Index < rows[b].Index })

	price := func(r *entities.FareStatsRow) *float64 { return r.Price }
	duration := func(r *entities.FareStatsRow) *float64 { return r.Duration }

	for _, part := range partitionBy(rows, func(r *entities.FareStatsRow) string { return r.Airline }) {
		buildAirlineStats(rows, part, price, duration)
	}
	for _, part := range partitionBy(rows, func(r *entities.FareStatsRow) string { return r.Route() }) {
		buildRouteStats(rows, part, price, duration)
	}
	assignGlobalQuartiles(rows)

	return rows
}

// buildAirlineStats fills the {airline}-partitioned statistics: price and
// duration ranks, the running price sum by index, the 3-row trailing
// moving average and the 3rd smallest price.
func buildAirlineStats(rows []entities.FareStatsRow, part []int, price, duration func(*entities.FareStatsRow) *float64) {
	pRank, pDense := rankMetric(rows, part, price)
	dRank, dDense := rankMetric(rows, part, duration)
	for _, pos := range part {
		if r, ok := pRank[pos]; ok {
			rows[pos].PriceRankAirline = iptr(r)
			rows[pos].PriceDenseRankAirline = iptr(pDense[pos])
		}
		if r, ok := dRank[pos]; ok {
			rows[pos].DurationRankAirline = iptr(r)
			rows[pos].DurationDenseRankAirline = iptr(dDense[pos])
		}
	}

	// Running prefix sum by index. NULL prices contribute nothing; until
	// the first non-null price the sum itself is null, like SQL SUM.
	var sum float64
	seen := false
	for _, pos := range part {
		if p := rows[pos].Price; p != nil {
			sum += *p
			seen = true
		}
		if seen {
			rows[pos].RunningPriceAirline = fptr(sum)
		}
	}

	// Trailing 3-row moving average. Partial windows are not backfilled:
	// the first two rows of a partition stay null. The one fixed edge
	// case is a single-row partition, whose average is that row's price.
	if len(part) == 1 {
		if p := rows[part[0]].Price; p != nil {
			rows[part[0]].PriceMovingAvg3 = fptr(*p)
		}
	} else {
		for k := 2; k < len(part); k++ {
			window := []*float64{
				rows[part[k-2]].Price,
				rows[part[k-1]].Price,
				rows[part[k]].Price,
			}
			rows[part[k]].PriceMovingAvg3 = meanOf(window)
		}
	}

	// 3rd smallest price; null when fewer than three priced rows exist.
	prices := make([]float64, 0, len(part))
	for _, pos := range part {
		if p := rows[pos].Price; p != nil {
			prices = append(prices, *p)
		}
	}
	sort.Float64s(prices)
	if len(prices) >= 3 {
		third := prices[2]
		for _, pos := range part {
			rows[pos].ThirdLowestAirlinePrice = fptr(third)
		}
	}
}

// buildRouteStats fills the {route}-partitioned statistics: price and
// duration ranks, the LAG/LEAD price deltas and first/last prices under
// (days_left DESC, index ASC) ordering, and the broadcast count, mean and
// per-row deviation.
func buildRouteStats(rows []entities.FareStatsRow, part []int, price, duration func(*entities.FareStatsRow) *float64) {
	pRank, pDense := rankMetric(rows, part, price)
	dRank, dDense := rankMetric(rows, part, duration)
	for _, pos := range part {
		if r, ok := pRank[pos]; ok {
			rows[pos].PriceRankRoute = iptr(r)
			rows[pos].PriceDenseRankRoute = iptr(pDense[pos])
		}
		if r, ok := dRank[pos]; ok {
			rows[pos].DurationRankRoute = iptr(r)
			rows[pos].DurationDenseRankRoute = iptr(dDense[pos])
		}
	}

	// Window ordering for neighbor statistics: longest booking lead time
	// first, index as the stable tiebreak.
	ordered := make([]int, len(part))
	copy(ordered, part)
	sort.SliceStable(ordered, func(a, b int) bool {
		ra, rb := &rows[ordered[a]], &rows[ordered[b]]
		if ra.DaysLeft != rb.DaysLeft {
			return ra.DaysLeft > rb.DaysLeft
		}
		return ra.Index < rb.Index
	})

	for i, pos := range ordered {
		cur := rows[pos].Price
		if cur != nil && i > 0 {
			if prev := rows[ordered[i-1]].Price; prev != nil {
				rows[pos].PriceDiffPrev = fptr(*cur - *prev)
			}
		}
		if cur != nil && i < len(ordered)-1 {
			if next := rows[ordered[i+1]].Price; next != nil {
				rows[pos].PriceDiffNext = fptr(*cur - *next)
			}
		}
	}

	// FIRST_VALUE over the whole ordering; LAST_VALUE over a frame from
	// the current row to the partition end, which is the partition's
	// final row for every row.
	first := rows[ordered[0]].Price
	last := rows[ordered[len(ordered)-1]].Price
	for _, pos := range part {
		if first != nil {
			rows[pos].FirstRoutePrice = fptr(*first)
		}
		if last != nil {
			rows[pos].LastRoutePrice = fptr(*last)
		}
	}

	// Broadcast aggregates: row count over all rows, mean over priced
	// rows, and each priced row's deviation from that mean.
	priced := make([]*float64, 0, len(part))
	for _, pos := range part {
		priced = append(priced, rows[pos].Price)
	}
	mean := meanOf(priced)
	for _, pos := range part {
		rows[pos].RouteFlights = int64(len(part))
		if mean != nil {
			rows[pos].RouteAvgPrice = fptr(*mean)
			if p := rows[pos].Price; p != nil {
				rows[pos].PriceVsRouteAvg = fptr(*p - *mean)
			}
		}
	}
}

// assignGlobalQuartiles buckets all priced rows into four equal-count
// groups by ascending price, index as tiebreak. Bucket boundaries follow
// equal row counts, so duplicate prices at a boundary may split across
// buckets. Unpriced rows get no bucket.
func assignGlobalQuartiles(rows []entities.FareStatsRow) {
	priced := make([]int, 0, len(rows))
	for i := range rows {
		if rows[i].Price != nil {
			priced = append(priced, i)
		}
	}
	sort.SliceStable(priced, func(a, b int) bool {
		return *rows[priced[a]].Price < *rows[priced[b]].Price
	})

	for pos, bucket := range ntile(priced, 4) {
		rows[pos].PriceQuartile = iptr(bucket)
	}
}
