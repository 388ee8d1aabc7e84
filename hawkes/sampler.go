package hawkes

import (
	"math/rand"
	"sort"
)

// SimulateUniformGaps draws, for each sequence independently, n simulated
// event times uniformly on [0, totalTimes[b]], sorts them ascending, converts
// them to successive gaps (gap[0] = first sample, gap[i] = sample[i] -
// sample[i-1]), and shuffles the gaps within the row.
//
// The gaps feed the Monte-Carlo estimate of the non-event integral: only the
// set of underlying uniform times matters to the sum, so the shuffle is
// statistically inert, but it keeps the output consumable by the same
// machinery that handles observed inter-arrival times.
//
// Each row uses its own horizon totalTimes[b]. A zero horizon degenerates to
// an all-zero row; callers must reject negative horizons upstream (a
// non-positive horizon here also yields zeros rather than an error).
func SimulateUniformGaps(rng *rand.Rand, totalTimes []float64, n int) [][]float64 {
	out := make([][]float64, len(totalTimes))
	times := make([]float64, n)
	for b, total := range totalTimes {
		gaps := make([]float64, n)
		out[b] = gaps
		if total <= 0 || n == 0 {
			continue
		}

		for i := range times {
			times[i] = rng.Float64() * total
		}
		sort.Float64s(times)

		prev := 0.0
		for i, t := range times {
			gaps[i] = t - prev
			prev = t
		}
		rng.Shuffle(n, func(i, j int) {
			gaps[i], gaps[j] = gaps[j], gaps[i]
		})
	}
	return out
}
