package forecast

import (
	"math"
	"time"
)

// Feasibility classifies how a P85 completion forecast relates to a deadline.
type Feasibility string

const (
	Feasible   Feasibility = "feasible"
	Partial    Feasibility = "partial"
	Infeasible Feasibility = "infeasible"
)

// DefaultDeadlineTolerance is the slack band separating "partial" from
// "infeasible": a P85 within tolerance*D past the deadline counts as partial.
// The boundary is deliberately a parameter, not a constant of nature.
const DefaultDeadlineTolerance = 0.2

// DeadlineAssessment is the feasibility view of a forecast against a date.
type DeadlineAssessment struct {
	PeriodsToDeadline int         `json:"periods_to_deadline"`
	P85Periods        int         `json:"p85_periods"`
	Classification    Feasibility `json:"classification"`
	Tolerance         float64     `json:"tolerance"`
	// CompletableItems is the backlog count completable by the deadline
	// with 85% confidence (the conservative 15th percentile of per-trial
	// completed counts).
	CompletableItems int     `json:"completable_items"`
	CompletablePct   float64 `json:"completable_pct"`
}

// PeriodsBetween converts a calendar span into whole periods of periodDays
// each, flooring partial periods. The deadline must not precede the start.
func PeriodsBetween(start, deadline time.Time, periodDays int) (int, error) {
	if periodDays <= 0 {
		return 0, validationErr("period length", "must be positive, got %d days", periodDays)
	}
	if deadline.Before(start) {
		return 0, validationErr("deadline", "precedes start date")
	}
	span := deadline.Sub(start)
	return int(span.Hours() / 24 / float64(periodDays)), nil
}

// Classify applies the feasibility policy: feasible iff P85 <= D (the exact
// boundary is feasible), partial while P85 <= D*(1+tolerance), infeasible
// beyond that.
func Classify(p85, periodsToDeadline int, tolerance float64) Feasibility {
	switch {
	case p85 <= periodsToDeadline:
		return Feasible
	case float64(p85) <= float64(periodsToDeadline)*(1+tolerance):
		return Partial
	default:
		return Infeasible
	}
}

// AssessDeadline builds a DeadlineAssessment from trial outcomes produced
// with horizon = periodsToDeadline.
func AssessDeadline(trials []Trial, backlog, periodsToDeadline int, tolerance float64) DeadlineAssessment {
	p85 := PercentileInt(PeriodCounts(trials), 0.85)

	// "Completable at 85% confidence" reads from the low end of the
	// completed distribution: 85% of trials complete at least this much.
	completable := PercentileInt(CompletedCounts(trials), 0.15)

	pct := 100.0
	if backlog > 0 {
		pct = math.Round(float64(completable)/float64(backlog)*1000) / 10
	}

	return DeadlineAssessment{
		PeriodsToDeadline: periodsToDeadline,
		P85Periods:        p85,
		Classification:    Classify(p85, periodsToDeadline, tolerance),
		Tolerance:         tolerance,
		CompletableItems:  completable,
		CompletablePct:    pct,
	}
}
