package forecast

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func workshopRequest() Request {
	return Request{
		ProjectName: "workshop",
		Backlog:     80,
		History:     workshopHistory,
		Sim:         SimulationConfig{Trials: 2000, Seed: 42},
	}
}

func TestForecast_Workshop(t *testing.T) {
	res, err := Forecast(workshopRequest())
	require.NoError(t, err)

	assert.Equal(t, "workshop", res.ProjectName)
	assert.Equal(t, 80, res.Backlog)
	assert.Equal(t, 2000, res.Trials)
	assert.Equal(t, int64(42), res.Seed)
	assert.GreaterOrEqual(t, res.Periods.P85, 8)
	assert.LessOrEqual(t, res.Periods.P85, 20)

	assert.Nil(t, res.Cost, "no cost block without a rate")
	assert.Nil(t, res.Deadline, "no deadline block without dates")
	require.NotNil(t, res.Trend, "10 samples are enough for a trend estimate")
	assert.NotEmpty(t, res.Distribution)

	// Distribution buckets must cover every trial exactly once.
	total := 0
	for _, b := range res.Distribution {
		total += b.Count
	}
	assert.Equal(t, res.Trials, total)
}

func TestForecast_RejectsBeforeSimulating(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"negative backlog", func(r *Request) { r.Backlog = -5 }},
		{"empty history", func(r *Request) { r.History = nil }},
		{"negative sample", func(r *Request) { r.History = []int{6, -1, 8} }},
		{"negative team size", func(r *Request) { r.TeamSize = -2 }},
		{"negative cost rate", func(r *Request) { r.CostRate = -100 }},
		{"negative tolerance", func(r *Request) { tol := -0.1; r.Tolerance = &tol }},
		{"risk probability out of range", func(r *Request) {
			r.Risks = []RiskEvent{{Name: "x", Probability: 1.5, Optimistic: 1, MostLikely: 2, Pessimistic: 3}}
		}},
		{"deadline without start", func(r *Request) {
			d := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
			r.Deadline = &d
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := workshopRequest()
			tc.mutate(&req)
			res, err := Forecast(req)
			assert.Nil(t, res, "a rejected request must produce no partial result")
			assert.True(t, IsValidation(err), "expected a validation error, got %v", err)
		})
	}
}

func TestForecast_CostOnlyWithRate(t *testing.T) {
	req := workshopRequest()
	req.TeamSize = 5
	req.CostRate = 1500

	res, err := Forecast(req)
	require.NoError(t, err)
	require.NotNil(t, res.Cost)
	assert.Equal(t, Cost(res.Periods.P50, 5, 1500), res.Cost.P50)
	assert.Equal(t, Cost(res.Periods.P85, 5, 1500), res.Cost.P85)
	assert.Equal(t, Cost(res.Periods.P95, 5, 1500), res.Cost.P95)
}

func TestForecast_DeadlineAssessment(t *testing.T) {
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	deadline := start.AddDate(0, 0, 84) // 12 weekly periods

	req := workshopRequest()
	req.StartDate = &start
	req.Deadline = &deadline

	res, err := Forecast(req)
	require.NoError(t, err)
	require.NotNil(t, res.Deadline)

	assert.Equal(t, 12, res.Deadline.PeriodsToDeadline)
	assert.Equal(t, res.Periods.P85, res.Deadline.P85Periods)
	assert.Equal(t, Classify(res.Periods.P85, 12, DefaultDeadlineTolerance), res.Deadline.Classification)
	assert.Greater(t, res.Deadline.CompletableItems, 0)
	assert.LessOrEqual(t, res.Deadline.CompletableItems, 80)
}

func TestForecast_ZeroToleranceIsStrict(t *testing.T) {
	// Constant throughput of 10 makes every trial take exactly 8 periods,
	// so P85 is deterministically 8 against a 7-period deadline.
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	deadline := start.AddDate(0, 0, 49) // 7 weekly periods

	req := Request{
		Backlog:   80,
		History:   []int{10},
		StartDate: &start,
		Deadline:  &deadline,
		Sim:       SimulationConfig{Trials: 200, Seed: 7},
	}

	zero := 0.0
	req.Tolerance = &zero
	res, err := Forecast(req)
	require.NoError(t, err)
	require.NotNil(t, res.Deadline)
	assert.Equal(t, 8, res.Deadline.P85Periods)
	assert.Equal(t, Infeasible, res.Deadline.Classification,
		"an explicit tolerance of 0 forbids the partial band")
	assert.Equal(t, 0.0, res.Deadline.Tolerance, "the result must report the tolerance the caller set")

	// The same forecast with no tolerance set falls back to the default
	// band, where 8 <= 7*1.2 classifies as partial.
	req.Tolerance = nil
	res, err = Forecast(req)
	require.NoError(t, err)
	assert.Equal(t, Partial, res.Deadline.Classification)
	assert.Equal(t, DefaultDeadlineTolerance, res.Deadline.Tolerance)
}

func TestForecast_TrendWithheldOnShortHistory(t *testing.T) {
	req := workshopRequest()
	req.History = []int{6, 8, 5, 9, 7} // enough to simulate, too short to fit

	res, err := Forecast(req)
	require.NoError(t, err, "short history must not fail the simulation")
	assert.Nil(t, res.Trend)

	found := false
	for _, w := range res.Warnings {
		if strings.Contains(w, "Trend estimate withheld") {
			found = true
		}
	}
	assert.True(t, found, "warnings: %v", res.Warnings)
}

func TestForecast_DegradedModeWarns(t *testing.T) {
	req := workshopRequest()
	req.Sim = SimulationConfig{Seed: 42, Degraded: true}

	res, err := Forecast(req)
	require.NoError(t, err)
	assert.Equal(t, DegradedTrials, res.Trials)
	assert.True(t, res.Degraded)

	found := false
	for _, w := range res.Warnings {
		if strings.Contains(w, "Degraded mode") {
			found = true
		}
	}
	assert.True(t, found, "warnings: %v", res.Warnings)
}

func TestForecast_DegradedTrialsConfigurable(t *testing.T) {
	req := workshopRequest()
	req.Sim = SimulationConfig{Seed: 42, Degraded: true, DegradedTrials: 500}

	res, err := Forecast(req)
	require.NoError(t, err)
	assert.Equal(t, 500, res.Trials, "the configured degraded count takes effect")

	found := false
	for _, w := range res.Warnings {
		if strings.Contains(w, "reduced to 500") {
			found = true
		}
	}
	assert.True(t, found, "the warning must report the effective count, warnings: %v", res.Warnings)
}

func TestForecast_RiskInsight(t *testing.T) {
	req := workshopRequest()
	req.Risks = []RiskEvent{
		{Name: "vendor delay", Probability: 0.3, Optimistic: 2, MostLikely: 5, Pessimistic: 10},
	}

	res, err := Forecast(req)
	require.NoError(t, err)

	found := false
	for _, in := range res.Insights {
		if strings.Contains(in, "Risk model") {
			found = true
		}
	}
	assert.True(t, found, "insights: %v", res.Insights)
}

func TestForecast_DefaultsApplied(t *testing.T) {
	req := workshopRequest()
	req.Sim.Trials = 0
	req.Sim.Seed = 0

	res, err := Forecast(req)
	require.NoError(t, err)
	assert.Equal(t, DefaultTrials, res.Trials)
	assert.NotZero(t, res.Seed, "an unseeded run still reports the seed it used")
	assert.Equal(t, 1, res.TeamSize, "team size defaults to one")
}
