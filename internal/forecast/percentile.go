package forecast

import "sort"

// Percentiles holds the completion-period percentiles of a simulation run.
// P85 is the period count at or below which 85% of trials complete.
type Percentiles struct {
	P50 int `json:"p50"`
	P85 int `json:"p85"`
	P95 int `json:"p95"`
}

// PercentileInt extracts the p-quantile (0 < p < 1) from trial outcomes.
//
// Rule: sort ascending, take the value at index int(n*p), clamped to the last
// element. This nearest-rank variant is applied consistently everywhere a
// percentile is reported; because it indexes a sorted slice it is monotone in
// p, so P50 <= P85 <= P95 always holds.
func PercentileInt(trials []int, p float64) int {
	if len(trials) == 0 {
		return 0
	}
	sorted := make([]int, len(trials))
	copy(sorted, trials)
	sort.Ints(sorted)
	return percentileSorted(sorted, p)
}

func percentileSorted(sorted []int, p float64) int {
	idx := int(float64(len(sorted)) * p)
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	if idx < 0 {
		idx = 0
	}
	return sorted[idx]
}

// ExtractPercentiles computes the standard P50/P85/P95 triple with a single
// sort pass.
func ExtractPercentiles(trials []int) Percentiles {
	if len(trials) == 0 {
		return Percentiles{}
	}
	sorted := make([]int, len(trials))
	copy(sorted, trials)
	sort.Ints(sorted)
	return Percentiles{
		P50: percentileSorted(sorted, 0.50),
		P85: percentileSorted(sorted, 0.85),
		P95: percentileSorted(sorted, 0.95),
	}
}
