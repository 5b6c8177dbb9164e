package analytics

import (
	"sort"

	"skyfare/farescope/internal/models/entities"
)

// partitionBy groups row positions by key, partitions in first-seen order
// and positions in ascending index order, so every downstream computation
// is deterministic.
func partitionBy(rows []entities.FareStatsRow, key func(*entities.FareStatsRow) string) [][]int {
	grouped := make(map[string][]int)
	order := make([]string, 0)

	for i := range rows {
		k := key(&rows[i])
		if _, ok := grouped[k]; !ok {
			order = append(order, k)
		}
		grouped[k] = append(grouped[k], i)
	}

	parts := make([][]int, 0, len(order))
	for _, k := range order {
		parts = append(parts, grouped[k])
	}
	return parts
}

// rankMetric computes RANK and DENSE_RANK of a metric over one partition,
// ascending. Rows with a nil metric get no rank. Ties share a rank value;
// rank numbering leaves gaps after ties, dense rank does not. The stable
// sort keeps the partition's index order as the secondary key.
func rankMetric(rows []entities.FareStatsRow, part []int, metric func(*entities.FareStatsRow) *float64) (rank, dense map[int]int64) {
	ranked := make([]int, 0, len(part))
	for _, pos := range part {
		if metric(&rows[pos]) != nil {
			ranked = append(ranked, pos)
		}
	}
	sort.SliceStable(ranked, func(a, b int) bool {
		return *metric(&rows[ranked[a]]) < *metric(&rows[ranked[b]])
	})

	rank = make(map[int]int64, len(ranked))
	dense = make(map[int]int64, len(ranked))

	var prev float64
	var curRank, curDense int64
	for i, pos := range ranked {
		v := *metric(&rows[pos])
		if i == 0 || v != prev {
			curRank = int64(i + 1)
			curDense++
			prev = v
		}
		rank[pos] = curRank
		dense[pos] = curDense
	}
	return rank, dense
}

// ntile splits the given positions into n equal-count buckets in their
// current order, the first (len mod n) buckets one row larger, matching
// SQL NTILE.
func ntile(positions []int, n int) map[int]int64 {
	out := make(map[int]int64, len(positions))
	if n <= 0 || len(positions) == 0 {
		return out
	}

	base := len(positions) / n
	rem := len(positions) % n

	at := 0
	for bucket := 1; bucket <= n && at < len(positions); bucket++ {
		size := base
		if bucket <= rem {
			size++
		}
		for i := 0; i < size; i++ {
			out[positions[at]] = int64(bucket)
			at++
		}
	}
	return out
}

// meanOf averages the non-nil values, nil when there are none.
func meanOf(vals []*float64) *float64 {
	var sum float64
	var n int
	for _, v := range vals {
		if v != nil {
			sum += *v
			n++
		}
	}
	if n == 0 {
		return nil
	}
	return fptr(sum / float64(n))
}

func fptr(v float64) *float64 { return &v }

func iptr(v int64) *int64 { return &v }
