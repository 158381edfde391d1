package commands

import (
	"math/rand"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flowcast/internal/config"
	"flowcast/internal/forecast"
)

func newFlagsCommand(t *testing.T, args ...string) (*forecastFlags, *cobra.Command) {
	t.Helper()
	var flags forecastFlags
	cmd := &cobra.Command{Use: "test"}
	flags.register(cmd)
	require.NoError(t, cmd.ParseFlags(args))
	return &flags, cmd
}

func TestBuildRequest_ToleranceLayering(t *testing.T) {
	cfg = &config.AppConfig{Trials: 2000, DegradedTrials: 500, PeriodDays: 7, DeadlineTolerance: 0.2}

	// An explicit --tolerance 0 is a strict policy and must survive the
	// config backfill.
	flags, cmd := newFlagsCommand(t, "--backlog", "80", "--history", "10", "--tolerance", "0")
	req, err := flags.buildRequest(cmd)
	require.NoError(t, err)
	require.NotNil(t, req.Tolerance)
	assert.Equal(t, 0.0, *req.Tolerance)

	// Without the flag, the configured default applies.
	flags, cmd = newFlagsCommand(t, "--backlog", "80", "--history", "10")
	req, err = flags.buildRequest(cmd)
	require.NoError(t, err)
	require.NotNil(t, req.Tolerance)
	assert.Equal(t, 0.2, *req.Tolerance)
	assert.Equal(t, 500, req.Sim.DegradedTrials, "the configured degraded count rides along")
}

func TestParseRisk(t *testing.T) {
	tests := []struct {
		name string
		spec string
		want forecast.RiskEvent
	}{
		{
			"named with percent sign",
			"vendor=30%:2,5,10",
			forecast.RiskEvent{Name: "vendor", Probability: 0.3, Optimistic: 2, MostLikely: 5, Pessimistic: 10},
		},
		{
			"bare percentage",
			"50:1,3,8",
			forecast.RiskEvent{Probability: 0.5, Optimistic: 1, MostLikely: 3, Pessimistic: 8},
		},
		{
			"spaces tolerated",
			"scope creep=25: 4, 6, 12",
			forecast.RiskEvent{Name: "scope creep", Probability: 0.25, Optimistic: 4, MostLikely: 6, Pessimistic: 12},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseRisk(tc.spec)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseRisk_Rejections(t *testing.T) {
	for _, spec := range []string{
		"",
		"30",
		"thirty:2,5,10",
		"30:2,5",
		"30:a,b,c",
	} {
		t.Run(spec, func(t *testing.T) {
			_, err := parseRisk(spec)
			assert.Error(t, err, "spec %q should be rejected", spec)
		})
	}
}

func TestGenerateHistory_Profiles(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	steady, err := generateHistory("steady", 12, rng)
	require.NoError(t, err)
	require.Len(t, steady, 12)
	for _, v := range steady {
		assert.GreaterOrEqual(t, v, 6)
		assert.LessOrEqual(t, v, 10)
	}

	drift, err := generateHistory("drift", 12, rng)
	require.NoError(t, err)
	assert.Greater(t, drift[0], drift[len(drift)-1], "drift profile degrades over time")

	_, err = generateHistory("volatile", 12, rng)
	assert.Error(t, err)

	_, err = generateHistory("steady", 0, rng)
	assert.Error(t, err)
}
