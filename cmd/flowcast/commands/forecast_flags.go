package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"flowcast/internal/forecast"
	"flowcast/internal/scenario"
)

// forecastFlags collects the forecast inputs shared by run, deadline, and
// report. Inputs can come from flags, a YAML file, or a saved scenario;
// explicit flags always win.
type forecastFlags struct {
	name       string
	backlog    int
	history    string
	risks      []string
	teamSize   int
	costRate   float64
	periodDays int
	start      string
	deadline   string
	tolerance  float64
	file       string
	scenario   string
	trials     int
	seed       int64
	degraded   bool
	jsonOut    bool
}

func (f *forecastFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "project name for the report")
	cmd.Flags().IntVar(&f.backlog, "backlog", 0, "number of work items remaining")
	cmd.Flags().StringVar(&f.history, "history", "", "comma-separated throughput samples, e.g. \"6,8,5,9\"")
	cmd.Flags().StringArrayVar(&f.risks, "risk", nil, "risk event as \"[name=]prob%:opt,likely,pess\", e.g. \"vendor=30:2,5,10\" (repeatable)")
	cmd.Flags().IntVar(&f.teamSize, "team", 0, "team size for cost projection (default 1)")
	cmd.Flags().Float64Var(&f.costRate, "cost-rate", 0, "cost per person per period (0 disables costing)")
	cmd.Flags().IntVar(&f.periodDays, "period-days", 0, "calendar days per period (default 7)")
	cmd.Flags().StringVar(&f.start, "start", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.deadline, "deadline", "", "deadline date (YYYY-MM-DD)")
	cmd.Flags().Float64Var(&f.tolerance, "tolerance", 0, "partial-feasibility band past the deadline (default 0.2)")
	cmd.Flags().StringVarP(&f.file, "file", "f", "", "load inputs from a scenario YAML file")
	cmd.Flags().StringVar(&f.scenario, "scenario", "", "load inputs from a saved scenario by name")
	cmd.Flags().IntVar(&f.trials, "trials", 0, "Monte-Carlo trial count (default 10000)")
	cmd.Flags().Int64Var(&f.seed, "seed", 0, "RNG seed for reproducible runs (0 = time-based)")
	cmd.Flags().BoolVar(&f.degraded, "degraded", false, "run with a reduced trial count to bound latency")
	cmd.Flags().BoolVar(&f.jsonOut, "json", false, "emit the raw result as JSON")
}

// buildRequest resolves the layered inputs into a forecast request.
func (f *forecastFlags) buildRequest(cmd *cobra.Command) (forecast.Request, error) {
	var req forecast.Request

	if f.file != "" && f.scenario != "" {
		return req, fmt.Errorf("--file and --scenario are mutually exclusive")
	}

	switch {
	case f.file != "":
		sc, err := scenario.LoadFile(f.file)
		if err != nil {
			return req, err
		}
		req = sc.Request()
	case f.scenario != "":
		repo, database, err := openScenarioRepo()
		if err != nil {
			return req, err
		}
		defer database.Close()
		sc, err := repo.GetByName(context.Background(), f.scenario)
		if err != nil {
			return req, err
		}
		req = sc.Request()
	}

	if f.name != "" {
		req.ProjectName = f.name
	}
	if cmd.Flags().Changed("backlog") {
		req.Backlog = f.backlog
	}
	if f.history != "" {
		history, err := forecast.ParseHistory(f.history)
		if err != nil {
			return req, err
		}
		req.History = history
	}
	if len(f.risks) > 0 {
		risks, err := parseRisks(f.risks)
		if err != nil {
			return req, err
		}
		req.Risks = risks
	}
	if cmd.Flags().Changed("team") {
		req.TeamSize = f.teamSize
	}
	if cmd.Flags().Changed("cost-rate") {
		req.CostRate = f.costRate
	}
	if cmd.Flags().Changed("period-days") {
		req.PeriodDays = f.periodDays
	}
	if cmd.Flags().Changed("tolerance") {
		t := f.tolerance
		req.Tolerance = &t
	}
	if f.start != "" {
		t, err := parseDate(f.start, "start")
		if err != nil {
			return req, err
		}
		req.StartDate = t
	}
	if f.deadline != "" {
		t, err := parseDate(f.deadline, "deadline")
		if err != nil {
			return req, err
		}
		req.Deadline = t
	}

	if req.PeriodDays == 0 {
		req.PeriodDays = cfg.PeriodDays
	}
	// An explicit --tolerance 0 is a strict policy and must survive; only a
	// tolerance nobody set falls back to the configured default.
	if req.Tolerance == nil {
		t := cfg.DeadlineTolerance
		req.Tolerance = &t
	}

	req.Sim = forecast.SimulationConfig{
		Trials:         f.trials,
		Seed:           f.seed,
		Degraded:       f.degraded,
		DegradedTrials: cfg.DegradedTrials,
	}
	if req.Sim.Trials == 0 {
		req.Sim.Trials = cfg.Trials
	}

	return req, nil
}

func parseDate(s, field string) (*time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, fmt.Errorf("invalid %s date %q: expected YYYY-MM-DD", field, s)
	}
	return &t, nil
}

// parseRisks parses repeatable --risk flags of the form
// "[name=]prob%:opt,likely,pess". Probability is a percentage.
func parseRisks(specs []string) ([]forecast.RiskEvent, error) {
	risks := make([]forecast.RiskEvent, 0, len(specs))
	for _, spec := range specs {
		r, err := parseRisk(spec)
		if err != nil {
			return nil, err
		}
		risks = append(risks, r)
	}
	return risks, nil
}

func parseRisk(spec string) (forecast.RiskEvent, error) {
	var r forecast.RiskEvent

	rest := spec
	if idx := strings.Index(rest, "="); idx != -1 {
		r.Name = strings.TrimSpace(rest[:idx])
		rest = rest[idx+1:]
	}

	parts := strings.SplitN(rest, ":", 2)
	if len(parts) != 2 {
		return r, fmt.Errorf("invalid risk %q: expected \"[name=]prob%%:opt,likely,pess\"", spec)
	}

	probStr := strings.TrimSuffix(strings.TrimSpace(parts[0]), "%")
	prob, err := strconv.ParseFloat(probStr, 64)
	if err != nil {
		return r, fmt.Errorf("invalid risk probability %q in %q", parts[0], spec)
	}
	r.Probability = prob / 100

	impacts := strings.Split(parts[1], ",")
	if len(impacts) != 3 {
		return r, fmt.Errorf("invalid risk %q: expected three impact values opt,likely,pess", spec)
	}
	vals := make([]int, 3)
	for i, s := range impacts {
		v, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return r, fmt.Errorf("invalid risk impact %q in %q", s, spec)
		}
		vals[i] = v
	}
	r.Optimistic, r.MostLikely, r.Pessimistic = vals[0], vals[1], vals[2]

	return r, nil
}
