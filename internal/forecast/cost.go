package forecast

// Cost converts a period count into money: periods * team size * cost per
// person per period. Pure and linear in every argument; because the model is
// linear and team size is constant across a run, applying it to the period
// percentiles is equivalent to re-deriving percentiles from per-trial costs.
func Cost(periods int, teamSize int, ratePerPersonPerPeriod float64) float64 {
	return float64(periods) * float64(teamSize) * ratePerPersonPerPeriod
}

// CostPercentiles is the money view of a period-percentile triple.
type CostPercentiles struct {
	P50 float64 `json:"p50"`
	P85 float64 `json:"p85"`
	P95 float64 `json:"p95"`
}

// ProjectCost maps period percentiles to cost percentiles.
func ProjectCost(p Percentiles, teamSize int, rate float64) CostPercentiles {
	return CostPercentiles{
		P50: Cost(p.P50, teamSize, rate),
		P85: Cost(p.P85, teamSize, rate),
		P95: Cost(p.P95, teamSize, rate),
	}
}
