package forecast

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// Request carries every input of a forecast. Construction is cheap and the
// whole request lifecycle is stateless: nothing survives a Forecast call.
type Request struct {
	ProjectName string
	Backlog     int
	History     []int
	Risks       []RiskEvent
	TeamSize    int
	CostRate    float64 // cost per person per period; 0 disables costing
	PeriodDays  int     // calendar days per period; defaults to 7
	StartDate   *time.Time
	Deadline    *time.Time
	// Tolerance is the partial-feasibility band. nil means
	// DefaultDeadlineTolerance; an explicit 0 is a strict policy and is
	// honored, never replaced by the default.
	Tolerance *float64
	Ramp        RampFunc
	Sim         SimulationConfig
}

// Validate rejects malformed input before any simulation runs. A rejected
// request produces no partial results.
func (r *Request) Validate() error {
	if r.Backlog < 0 {
		return validationErr("backlog", "must be non-negative, got %d", r.Backlog)
	}
	if err := ValidateHistory(r.History); err != nil {
		return err
	}
	if err := ValidateRisks(r.Risks); err != nil {
		return err
	}
	if r.TeamSize < 0 {
		return validationErr("team size", "must be positive, got %d", r.TeamSize)
	}
	if r.CostRate < 0 {
		return validationErr("cost rate", "must be non-negative, got %.2f", r.CostRate)
	}
	if r.Tolerance != nil && *r.Tolerance < 0 {
		return validationErr("deadline tolerance", "must be non-negative, got %.2f", *r.Tolerance)
	}
	if (r.StartDate == nil) != (r.Deadline == nil) {
		return validationErr("deadline", "start date and deadline must be provided together")
	}
	return nil
}

func (r *Request) normalize() {
	if r.TeamSize == 0 {
		r.TeamSize = 1
	}
	if r.PeriodDays <= 0 {
		r.PeriodDays = 7
	}
	if r.Tolerance == nil {
		t := DefaultDeadlineTolerance
		r.Tolerance = &t
	}
	if r.Ramp == nil {
		r.Ramp = FlatRamp
	}
}

// Forecast runs the full pipeline: validation, Monte Carlo simulation,
// percentile extraction, cost projection, deadline assessment, and the
// trend-model cross-check.
func Forecast(req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	req.normalize()

	horizon := 0
	deadlineRequested := req.StartDate != nil && req.Deadline != nil
	if deadlineRequested {
		var err error
		horizon, err = PeriodsBetween(*req.StartDate, *req.Deadline, req.PeriodDays)
		if err != nil {
			return nil, err
		}
	}

	engine, err := NewEngine(req.History, req.Risks, req.Ramp, req.Sim)
	if err != nil {
		return nil, err
	}

	started := time.Now()
	trials, err := engine.Run(req.Backlog, horizon)
	if err != nil {
		return nil, err
	}

	periods := PeriodCounts(trials)
	res := &Result{
		ProjectName:  req.ProjectName,
		Backlog:      req.Backlog,
		TeamSize:     req.TeamSize,
		Trials:       engine.Trials(),
		Seed:         engine.Seed(),
		Degraded:     req.Sim.Degraded,
		Periods:      ExtractPercentiles(periods),
		Stats:        AnalyzeHistory(req.History),
		Distribution: distribution(periods),
	}

	if req.CostRate > 0 {
		cost := ProjectCost(res.Periods, req.TeamSize, req.CostRate)
		res.Cost = &cost
	}

	if deadlineRequested {
		assessment := AssessDeadline(trials, req.Backlog, horizon, *req.Tolerance)
		res.Deadline = &assessment
	}

	trend, err := EstimateTrend(req.History, req.Backlog)
	switch {
	case err == nil:
		res.Trend = trend
		if diverges, gap := Diverges(trend, res.Periods.P50); diverges {
			res.Warnings = append(res.Warnings, fmt.Sprintf(
				"Trend estimate (%d periods) and simulation P50 (%d periods) diverge by %.0f%%. Review the input data before trusting either model.",
				trend.Periods, res.Periods.P50, gap*100))
		}
	case errors.Is(err, ErrInsufficientHistory):
		res.Warnings = append(res.Warnings, fmt.Sprintf(
			"Trend estimate withheld: %d samples provided, %d required.", len(req.History), TrendMinSamples))
	default:
		return nil, err
	}

	if len(req.History) < StableSamples {
		res.Warnings = append(res.Warnings, fmt.Sprintf(
			"Only %d throughput samples; forecasts stabilize from %d samples on.", len(req.History), StableSamples))
	}
	if req.Sim.Degraded {
		res.Warnings = append(res.Warnings, fmt.Sprintf(
			"Degraded mode: trial count reduced to %d to bound latency. Percentile resolution is coarser.", res.Trials))
	}
	if engine.CappedTrials > 0 {
		res.Warnings = append(res.Warnings, fmt.Sprintf(
			"%d trials hit the period safety cap; results are skewed optimistic for those trials.", engine.CappedTrials))
	}
	if res.Stats.FatTailFreq >= 3 {
		res.Insights = append(res.Insights, "Throughput is fat-tailed (P98/P50 >= 3): the percentile spread is wide on purpose.")
	}
	if len(req.Risks) > 0 {
		res.Insights = append(res.Insights, fmt.Sprintf(
			"Risk model: %d risk event(s) injected at trial start, additive to the backlog.", len(req.Risks)))
	}

	log.Debug().
		Int("backlog", req.Backlog).
		Int("trials", res.Trials).
		Int64("seed", res.Seed).
		Dur("elapsed", time.Since(started)).
		Int("p50", res.Periods.P50).
		Int("p85", res.Periods.P85).
		Int("p95", res.Periods.P95).
		Msg("Forecast complete")

	return res, nil
}
