// Package scenario defines the persistable forecast scenario: a named,
// reusable bundle of forecast inputs.
package scenario

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"flowcast/internal/forecast"
)

// Scenario is a saved set of forecast inputs. Results are never persisted;
// a scenario is re-simulated on demand so it always reflects the current
// engine behavior.
type Scenario struct {
	ID         string               `json:"id" yaml:"id,omitempty"`
	Name       string               `json:"name" yaml:"name"`
	Backlog    int                  `json:"backlog" yaml:"backlog"`
	History    []int                `json:"history" yaml:"history"`
	Risks      []forecast.RiskEvent `json:"risks,omitempty" yaml:"risks,omitempty"`
	TeamSize   int                  `json:"team_size,omitempty" yaml:"team_size,omitempty"`
	CostRate   float64              `json:"cost_rate,omitempty" yaml:"cost_rate,omitempty"`
	PeriodDays int                  `json:"period_days,omitempty" yaml:"period_days,omitempty"`
	StartDate  *time.Time           `json:"start_date,omitempty" yaml:"start_date,omitempty"`
	Deadline   *time.Time           `json:"deadline,omitempty" yaml:"deadline,omitempty"`
	Tolerance  *float64             `json:"tolerance,omitempty" yaml:"tolerance,omitempty"`
	Notes      string               `json:"notes,omitempty" yaml:"notes,omitempty"`
	CreatedAt  time.Time            `json:"created_at" yaml:"-"`
	UpdatedAt  time.Time            `json:"updated_at" yaml:"-"`
}

// Validate checks the scenario's own fields plus the embedded forecast
// inputs, so a scenario that saves will also simulate.
func (s *Scenario) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("scenario name is required")
	}
	req := s.Request()
	return req.Validate()
}

// Request converts the scenario into a forecast request. Simulation
// parameters (trials, seed) are deliberately not part of a scenario; the
// caller supplies them per run.
func (s *Scenario) Request() forecast.Request {
	return forecast.Request{
		ProjectName: s.Name,
		Backlog:     s.Backlog,
		History:     s.History,
		Risks:       s.Risks,
		TeamSize:    s.TeamSize,
		CostRate:    s.CostRate,
		PeriodDays:  s.PeriodDays,
		StartDate:   s.StartDate,
		Deadline:    s.Deadline,
		Tolerance:   s.Tolerance,
	}
}

// LoadFile reads a scenario from a YAML file.
func LoadFile(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario file: %w", err)
	}
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing scenario file: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}
