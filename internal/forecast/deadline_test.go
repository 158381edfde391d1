package forecast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeriodsBetween(t *testing.T) {
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		deadline   time.Time
		periodDays int
		want       int
	}{
		{"twelve weeks", start.AddDate(0, 0, 84), 7, 12},
		{"partial week floors", start.AddDate(0, 0, 86), 7, 12},
		{"same day", start, 7, 0},
		{"daily periods", start.AddDate(0, 0, 10), 1, 10},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := PeriodsBetween(start, tc.deadline, tc.periodDays)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestPeriodsBetween_Rejections(t *testing.T) {
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	_, err := PeriodsBetween(start, start.AddDate(0, 0, -1), 7)
	assert.True(t, IsValidation(err), "deadline before start must be rejected")

	_, err = PeriodsBetween(start, start.AddDate(0, 0, 7), 0)
	assert.True(t, IsValidation(err), "non-positive period length must be rejected")
}

func TestClassify_Boundaries(t *testing.T) {
	const tolerance = 0.2

	tests := []struct {
		name string
		p85  int
		d    int
		want Feasibility
	}{
		{"well inside", 8, 12, Feasible},
		{"exact boundary is feasible", 12, 12, Feasible},
		{"slightly over within tolerance", 14, 12, Partial},
		{"tolerance boundary is partial", 12, 10, Partial}, // 10*1.2 = 12
		{"beyond tolerance", 15, 12, Infeasible},
		{"zero periods available, nonzero forecast", 1, 0, Infeasible},
		{"zero periods available, zero forecast", 0, 0, Feasible},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(tc.p85, tc.d, tolerance))
		})
	}
}

func TestAssessDeadline_FullCompletion(t *testing.T) {
	// Every trial finishes in 5 periods and completes all 40 items by the
	// 10-period deadline.
	trials := make([]Trial, 100)
	for i := range trials {
		trials[i] = Trial{Periods: 5, CompletedByHorizon: 40}
	}

	a := AssessDeadline(trials, 40, 10, 0.2)
	assert.Equal(t, Feasible, a.Classification)
	assert.Equal(t, 5, a.P85Periods)
	assert.Equal(t, 40, a.CompletableItems)
	assert.Equal(t, 100.0, a.CompletablePct)
}

func TestAssessDeadline_ConservativeCompletable(t *testing.T) {
	// Completed counts spread 10..100: the 85%-confidence value reads from
	// the low end of the distribution.
	trials := make([]Trial, 100)
	for i := range trials {
		trials[i] = Trial{Periods: 20, CompletedByHorizon: (i + 1)}
	}

	a := AssessDeadline(trials, 100, 10, 0.2)
	assert.Equal(t, 16, a.CompletableItems, "15th percentile of 1..100 under the index rule")
	assert.InDelta(t, 16.0, a.CompletablePct, 0.01)
	assert.Equal(t, Infeasible, a.Classification)
}

func TestAssessDeadline_ZeroBacklog(t *testing.T) {
	trials := []Trial{{Periods: 0, CompletedByHorizon: 0}}
	a := AssessDeadline(trials, 0, 4, 0.2)
	assert.Equal(t, Feasible, a.Classification)
	assert.Equal(t, 100.0, a.CompletablePct, "an empty backlog is trivially completable")
}
