package testutil

import (
	"time"

	"flowcast/internal/forecast"
	"flowcast/internal/scenario"
)

// ScenarioOption mutates a test scenario.
type ScenarioOption func(*scenario.Scenario)

// NewTestScenario builds a valid scenario with sensible defaults, adjusted by
// the given options.
func NewTestScenario(name string, opts ...ScenarioOption) *scenario.Scenario {
	s := &scenario.Scenario{
		Name:    name,
		Backlog: 80,
		History: []int{6, 8, 5, 9, 7, 6, 10, 7, 8, 6},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithDeadline sets a start date and deadline on the scenario.
func WithDeadline(start, deadline time.Time) ScenarioOption {
	return func(s *scenario.Scenario) {
		s.StartDate = &start
		s.Deadline = &deadline
	}
}

// WithRisk appends a risk event to the scenario.
func WithRisk(r forecast.RiskEvent) ScenarioOption {
	return func(s *scenario.Scenario) {
		s.Risks = append(s.Risks, r)
	}
}

// WithCost sets team size and cost rate.
func WithCost(teamSize int, rate float64) ScenarioOption {
	return func(s *scenario.Scenario) {
		s.TeamSize = teamSize
		s.CostRate = rate
	}
}
