package forecast

import (
	"math"
)

// TrendDivergenceThreshold is the relative gap between the trend estimate
// and the Monte Carlo P50 beyond which the two models are flagged as
// disagreeing. Divergence is reported, never reconciled automatically.
const TrendDivergenceThreshold = 0.20

// TrendEstimate is the regression-based cross-check of the simulation: a
// least-squares line through the throughput series, projected forward until
// the backlog is covered.
type TrendEstimate struct {
	Periods        int     `json:"periods"`
	Optimistic     int     `json:"optimistic_periods"`
	Conservative   int     `json:"conservative_periods"`
	Slope          float64 `json:"slope"`
	Intercept      float64 `json:"intercept"`
	ResidualStdDev float64 `json:"residual_std_dev"`
	Method         string  `json:"method"`
}

// trendHorizonCap bounds the forward projection when the fitted line decays
// toward zero throughput.
const trendHorizonCap = 100000

// EstimateTrend fits an ordinary least-squares line y = intercept + slope*t
// over the throughput series (t = 1..n) and projects it forward to estimate
// periods-to-completion. Requires TrendMinSamples history; shorter series
// return ErrInsufficientHistory so callers can withhold the estimate without
// failing the simulation.
func EstimateTrend(history []int, backlog int) (*TrendEstimate, error) {
	if len(history) < TrendMinSamples {
		return nil, ErrInsufficientHistory
	}
	if err := ValidateHistory(history); err != nil {
		return nil, err
	}
	if backlog < 0 {
		return nil, validationErr("backlog", "must be non-negative, got %d", backlog)
	}

	slope, intercept := fitLine(history)
	residual := residualStdDev(history, slope, intercept)

	point := projectPeriods(history, backlog, slope, intercept, 0)
	optimistic := projectPeriods(history, backlog, slope, intercept, residual)
	conservative := projectPeriods(history, backlog, slope, intercept, -residual)

	return &TrendEstimate{
		Periods:        point,
		Optimistic:     optimistic,
		Conservative:   conservative,
		Slope:          slope,
		Intercept:      intercept,
		ResidualStdDev: residual,
		Method:         "ols-linear",
	}, nil
}

// fitLine computes least-squares slope and intercept over (t, y) pairs with
// t = 1..n.
func fitLine(history []int) (slope, intercept float64) {
	n := float64(len(history))
	var sumT, sumY, sumTT, sumTY float64
	for i, y := range history {
		t := float64(i + 1)
		sumT += t
		sumY += float64(y)
		sumTT += t * t
		sumTY += t * float64(y)
	}

	den := n*sumTT - sumT*sumT
	if den == 0 {
		return 0, sumY / n
	}
	slope = (n*sumTY - sumT*sumY) / den
	intercept = (sumY - slope*sumT) / n
	return slope, intercept
}

func residualStdDev(history []int, slope, intercept float64) float64 {
	var sumSq float64
	for i, y := range history {
		t := float64(i + 1)
		r := float64(y) - (intercept + slope*t)
		sumSq += r * r
	}
	return math.Sqrt(sumSq / float64(len(history)))
}

// projectPeriods walks the fitted line forward from the period after the
// last sample, accumulating predicted throughput (shifted by `shift`,
// floored at zero) until the backlog is covered. Returns trendHorizonCap if
// the projected rate decays to zero before completion.
func projectPeriods(history []int, backlog int, slope, intercept, shift float64) int {
	if backlog == 0 {
		return 0
	}

	remaining := float64(backlog)
	periods := 0
	for t := len(history) + 1; periods < trendHorizonCap; t++ {
		periods++
		rate := intercept + slope*float64(t) + shift
		if rate < 0 {
			rate = 0
		}
		remaining -= rate

		if remaining <= 0 {
			return periods
		}

		// A non-positive rate on a flat or falling line never recovers.
		if rate == 0 && slope <= 0 {
			return trendHorizonCap
		}
	}
	return trendHorizonCap
}

// Diverges reports whether the trend estimate and the Monte Carlo P50 differ
// by more than the threshold, along with the relative gap.
func Diverges(trend *TrendEstimate, p50 int) (bool, float64) {
	if trend == nil || p50 <= 0 {
		return false, 0
	}
	gap := math.Abs(float64(trend.Periods)-float64(p50)) / float64(p50)
	return gap > TrendDivergenceThreshold, gap
}
