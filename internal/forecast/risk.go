package forecast

import (
	"math"
	"math/rand"
)

// RiskEvent models a probabilistic scope addition: with Probability, an
// impact drawn from the triangular distribution (Optimistic, MostLikely,
// Pessimistic) is added to the trial's backlog. Impacts are whole work items.
//
// Risks are applied additively at the start of each trial, before any
// throughput is drawn. Injecting the full impact up front is the conservative
// reading of "risks add extra backlog items" and keeps the per-trial loop a
// pure drawdown.
type RiskEvent struct {
	Name        string  `json:"name,omitempty" yaml:"name,omitempty"`
	Probability float64 `json:"probability" yaml:"probability"`
	Optimistic  int     `json:"optimistic" yaml:"optimistic"`
	MostLikely  int     `json:"most_likely" yaml:"most_likely"`
	Pessimistic int     `json:"pessimistic" yaml:"pessimistic"`
}

// Validate checks the probability range and the triangular ordering.
func (r RiskEvent) Validate() error {
	if r.Probability < 0 || r.Probability > 1 {
		return validationErr("risk probability", "%.3f outside [0,1]", r.Probability)
	}
	if r.Optimistic <= 0 || r.MostLikely <= 0 || r.Pessimistic <= 0 {
		return validationErr("risk impact", "impact values must be positive item counts")
	}
	if r.Optimistic > r.MostLikely || r.MostLikely > r.Pessimistic {
		return validationErr("risk impact", "expected optimistic <= most likely <= pessimistic, got %d/%d/%d",
			r.Optimistic, r.MostLikely, r.Pessimistic)
	}
	return nil
}

// Sample draws one Bernoulli trial at Probability and, if triggered, one
// impact from the triangular distribution, rounded to whole items. Returns 0
// when the risk does not fire.
func (r RiskEvent) Sample(rng *rand.Rand) int {
	if rng.Float64() >= r.Probability {
		return 0
	}
	impact := sampleTriangular(rng, float64(r.Optimistic), float64(r.MostLikely), float64(r.Pessimistic))
	items := int(math.Round(impact))
	if items < 1 {
		items = 1 // a triggered risk always costs at least one item
	}
	return items
}

// sampleTriangular draws from Triangular(a, c, b) via the inverse CDF.
func sampleTriangular(rng *rand.Rand, a, c, b float64) float64 {
	if b <= a {
		return a
	}
	u := rng.Float64()
	fc := (c - a) / (b - a)
	if u < fc {
		return a + math.Sqrt(u*(b-a)*(c-a))
	}
	return b - math.Sqrt((1-u)*(b-a)*(b-c))
}

// ValidateRisks validates a full risk set.
func ValidateRisks(risks []RiskEvent) error {
	for _, r := range risks {
		if err := r.Validate(); err != nil {
			return err
		}
	}
	return nil
}
