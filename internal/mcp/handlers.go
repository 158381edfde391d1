package mcp

import (
	"context"
	"fmt"

	"flowcast/internal/forecast"
	"flowcast/internal/scenario"
)

func (s *Server) handleRunForecast(args map[string]interface{}) (interface{}, error) {
	req, err := s.buildRequest(args)
	if err != nil {
		return nil, err
	}
	return forecast.Forecast(req)
}

func (s *Server) handleAssessDeadline(args map[string]interface{}) (interface{}, error) {
	req, err := s.buildRequest(args)
	if err != nil {
		return nil, err
	}
	if req.StartDate == nil || req.Deadline == nil {
		return nil, fmt.Errorf("assess_deadline requires both start_date and deadline")
	}

	res, err := forecast.Forecast(req)
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"assessment": res.Deadline,
		"periods":    res.Periods,
		"trials":     res.Trials,
		"seed":       res.Seed,
		"warnings":   res.Warnings,
	}, nil
}

func (s *Server) handleGetTrendEstimate(args map[string]interface{}) (interface{}, error) {
	history, err := asIntSlice(args["history"])
	if err != nil {
		return nil, err
	}
	backlog, err := asInt(args["backlog"], "backlog")
	if err != nil {
		return nil, err
	}
	return forecast.EstimateTrend(history, backlog)
}

func (s *Server) handleSaveScenario(args map[string]interface{}) (interface{}, error) {
	if s.repo == nil {
		return nil, fmt.Errorf("scenario persistence is not configured")
	}

	history, err := asIntSlice(args["history"])
	if err != nil {
		return nil, err
	}
	risks, err := asRisks(args["risks"])
	if err != nil {
		return nil, err
	}
	start, err := asDate(args["start_date"], "start_date")
	if err != nil {
		return nil, err
	}
	deadline, err := asDate(args["deadline"], "deadline")
	if err != nil {
		return nil, err
	}
	backlog, err := asInt(args["backlog"], "backlog")
	if err != nil {
		return nil, err
	}
	teamSize, err := asInt(args["team_size"], "team_size")
	if err != nil {
		return nil, err
	}
	costRate, err := asFloat(args["cost_rate"], "cost_rate")
	if err != nil {
		return nil, err
	}
	periodDays, err := asInt(args["period_days"], "period_days")
	if err != nil {
		return nil, err
	}

	sc := &scenario.Scenario{
		Name:       asString(args["name"]),
		Backlog:    backlog,
		History:    history,
		Risks:      risks,
		TeamSize:   teamSize,
		CostRate:   costRate,
		PeriodDays: periodDays,
		StartDate:  start,
		Deadline:   deadline,
		Notes:      asString(args["notes"]),
	}
	if _, ok := args["tolerance"]; ok {
		t, err := asFloat(args["tolerance"], "tolerance")
		if err != nil {
			return nil, err
		}
		sc.Tolerance = &t
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Create(context.Background(), sc); err != nil {
		return nil, err
	}
	return sc, nil
}

func (s *Server) handleListScenarios() (interface{}, error) {
	if s.repo == nil {
		return nil, fmt.Errorf("scenario persistence is not configured")
	}
	scenarios, err := s.repo.List(context.Background())
	if err != nil {
		return nil, err
	}
	if scenarios == nil {
		scenarios = []*scenario.Scenario{}
	}
	return map[string]interface{}{"scenarios": scenarios}, nil
}

// buildRequest assembles a forecast request from tool arguments. When a
// saved scenario is named, its inputs form the base and explicitly provided
// arguments override field by field.
func (s *Server) buildRequest(args map[string]interface{}) (forecast.Request, error) {
	var req forecast.Request

	if name := asString(args["scenario"]); name != "" {
		if s.repo == nil {
			return req, fmt.Errorf("scenario persistence is not configured")
		}
		sc, err := s.repo.GetByName(context.Background(), name)
		if err != nil {
			return req, err
		}
		req = sc.Request()
	}

	if _, ok := args["backlog"]; ok {
		backlog, err := asInt(args["backlog"], "backlog")
		if err != nil {
			return req, err
		}
		req.Backlog = backlog
	}
	if _, ok := args["history"]; ok {
		history, err := asIntSlice(args["history"])
		if err != nil {
			return req, err
		}
		req.History = history
	}
	if _, ok := args["risks"]; ok {
		risks, err := asRisks(args["risks"])
		if err != nil {
			return req, err
		}
		req.Risks = risks
	}
	if _, ok := args["team_size"]; ok {
		teamSize, err := asInt(args["team_size"], "team_size")
		if err != nil {
			return req, err
		}
		req.TeamSize = teamSize
	}
	if _, ok := args["cost_rate"]; ok {
		costRate, err := asFloat(args["cost_rate"], "cost_rate")
		if err != nil {
			return req, err
		}
		req.CostRate = costRate
	}
	if _, ok := args["period_days"]; ok {
		periodDays, err := asInt(args["period_days"], "period_days")
		if err != nil {
			return req, err
		}
		req.PeriodDays = periodDays
	}
	if _, ok := args["tolerance"]; ok {
		t, err := asFloat(args["tolerance"], "tolerance")
		if err != nil {
			return req, err
		}
		req.Tolerance = &t
	}
	if _, ok := args["start_date"]; ok {
		start, err := asDate(args["start_date"], "start_date")
		if err != nil {
			return req, err
		}
		req.StartDate = start
	}
	if _, ok := args["deadline"]; ok {
		deadline, err := asDate(args["deadline"], "deadline")
		if err != nil {
			return req, err
		}
		req.Deadline = deadline
	}

	trials, err := asInt(args["trials"], "trials")
	if err != nil {
		return req, err
	}
	seed, err := asInt(args["seed"], "seed")
	if err != nil {
		return req, err
	}
	req.Sim = forecast.SimulationConfig{
		Trials:   trials,
		Seed:     int64(seed),
		Degraded: asBool(args["degraded"]),
	}
	if s.cfg != nil {
		req.Sim.DegradedTrials = s.cfg.DegradedTrials
		if req.Sim.Trials == 0 {
			req.Sim.Trials = s.cfg.Trials
		}
		if req.PeriodDays == 0 {
			req.PeriodDays = s.cfg.PeriodDays
		}
		// A tolerance of 0 sent by the caller is a strict policy; only an
		// absent tolerance falls back to the configured default.
		if req.Tolerance == nil {
			t := s.cfg.DeadlineTolerance
			req.Tolerance = &t
		}
	}

	return req, nil
}
