package forecast

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// Statistical floors for the throughput series. Simulation is considered
// valid from MinSamples on; the trend model needs TrendMinSamples.
const (
	MinSamples      = 1
	StableSamples   = 5
	TrendMinSamples = 8
)

// ParseHistory parses a comma-separated throughput series, e.g. "6,8,5,9".
// Whitespace around values is tolerated; anything non-numeric or negative is
// rejected before any simulation runs.
func ParseHistory(raw string) ([]int, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, validationErr("throughput history", "no samples provided")
	}

	parts := strings.Split(trimmed, ",")
	history := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			return nil, validationErr("throughput history", "empty sample (check delimiters)")
		}
		v, err := strconv.Atoi(p)
		if err != nil {
			return nil, validationErr("throughput history", "sample %q is not an integer", p)
		}
		if v < 0 {
			return nil, validationErr("throughput history", "sample %d is negative", v)
		}
		history = append(history, v)
	}
	return history, nil
}

// ValidateHistory checks the invariants every forecast relies on: at least
// one sample, none negative, and at least one positive sample. An all-zero
// series can never complete a backlog and is rejected as degenerate rather
// than looping forever.
func ValidateHistory(history []int) error {
	if len(history) < MinSamples {
		return validationErr("throughput history", "at least %d sample required", MinSamples)
	}
	hasPositive := false
	for _, v := range history {
		if v < 0 {
			return validationErr("throughput history", "sample %d is negative", v)
		}
		if v > 0 {
			hasPositive = true
		}
	}
	if !hasPositive {
		return ErrDegenerateThroughput
	}
	return nil
}

// SampleStats characterizes the throughput series the way the forecaster's
// data-shape probe reports it: central tendency, spread, and tail behavior.
type SampleStats struct {
	Samples     int     `json:"samples"`
	Mean        float64 `json:"mean"`
	Median      float64 `json:"median"`
	StdDev      float64 `json:"std_dev"`
	CV          float64 `json:"coefficient_of_variation"`
	ZeroShare   float64 `json:"zero_share"`
	FatTailFreq float64 `json:"fat_tail_ratio"` // P98/P50 of the samples
}

// AnalyzeHistory computes SampleStats for a validated series.
func AnalyzeHistory(history []int) SampleStats {
	n := len(history)
	if n == 0 {
		return SampleStats{}
	}

	sum := 0
	zeros := 0
	for _, v := range history {
		sum += v
		if v == 0 {
			zeros++
		}
	}
	mean := float64(sum) / float64(n)

	variance := 0.0
	for _, v := range history {
		d := float64(v) - mean
		variance += d * d
	}
	variance /= float64(n)
	stddev := math.Sqrt(variance)

	cv := 0.0
	if mean > 0 {
		cv = stddev / mean
	}

	return SampleStats{
		Samples:     n,
		Mean:        mean,
		Median:      medianInt(history),
		StdDev:      stddev,
		CV:          cv,
		ZeroShare:   float64(zeros) / float64(n),
		FatTailFreq: fatTailRatio(history),
	}
}

func medianInt(values []int) float64 {
	temp := make([]int, len(values))
	copy(temp, values)
	sort.Ints(temp)

	n := len(temp)
	if n%2 == 1 {
		return float64(temp[n/2])
	}
	return float64(temp[n/2-1]+temp[n/2]) / 2.0
}

// fatTailRatio computes the P98/P50 ratio of the samples. A high ratio marks
// a bursty delivery process whose forecasts carry wider uncertainty.
func fatTailRatio(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	temp := make([]int, len(values))
	copy(temp, values)
	sort.Ints(temp)

	p50 := float64(temp[int(float64(len(temp))*0.50)])
	p98 := float64(temp[min(int(float64(len(temp))*0.98), len(temp)-1)])

	if p50 == 0 {
		if p98 > 0 {
			return 10.0 // symbolic high value for sparse processes
		}
		return 1.0
	}
	return p98 / p50
}
