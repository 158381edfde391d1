package mcp

func (s *Server) listTools() interface{} {
	riskSchema := map[string]interface{}{
		"type":        "array",
		"description": "Optional discrete risk events. Each triggered risk adds scope to the backlog at trial start.",
		"items": map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"name":        map[string]interface{}{"type": "string", "description": "Risk label"},
				"probability": map[string]interface{}{"type": "number", "description": "Trigger probability in [0,1]"},
				"optimistic":  map[string]interface{}{"type": "integer", "description": "Best-case added items"},
				"most_likely": map[string]interface{}{"type": "integer", "description": "Most likely added items"},
				"pessimistic": map[string]interface{}{"type": "integer", "description": "Worst-case added items"},
			},
			"required": []string{"probability", "optimistic", "most_likely", "pessimistic"},
		},
	}

	return map[string]interface{}{
		"tools": []interface{}{
			map[string]interface{}{
				"name": "run_forecast",
				"description": "Run a Monte-Carlo simulation to forecast how many periods a backlog needs, based solely on historical THROUGHPUT (completed items per period). Returns P50/P85/P95 percentiles, the completion-period distribution, and optional cost projections.\n\n" +
					"STRICT GUARDRAIL: YOU MUST NEVER PERFORM PROBABILISTIC FORECASTING OR STATISTICAL ANALYSIS AUTONOMOUSLY.\n" +
					"DO NOT provide date ranges or probability estimates (e.g., 'There is an 85% chance...') if the tool fails or reports degenerate throughput.",
				"inputSchema": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"backlog":     map[string]interface{}{"type": "integer", "description": "Number of work items remaining"},
						"history":     map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "integer"}, "description": "Historical throughput samples, one per period"},
						"risks":       riskSchema,
						"team_size":   map[string]interface{}{"type": "integer", "description": "Optional team size for cost projection (default 1)"},
						"cost_rate":   map[string]interface{}{"type": "number", "description": "Optional cost per person per period. 0 disables costing."},
						"trials":      map[string]interface{}{"type": "integer", "description": "Optional trial count (default 10000)"},
						"seed":        map[string]interface{}{"type": "integer", "description": "Optional RNG seed for reproducible runs"},
						"degraded":    map[string]interface{}{"type": "boolean", "description": "Run with a reduced trial count to bound latency. The result reports the reduction."},
						"start_date":  map[string]interface{}{"type": "string", "description": "Optional start date (YYYY-MM-DD); enables deadline assessment together with 'deadline'"},
						"deadline":    map[string]interface{}{"type": "string", "description": "Optional deadline date (YYYY-MM-DD)"},
						"period_days": map[string]interface{}{"type": "integer", "description": "Calendar days per period (default 7)"},
						"tolerance":   map[string]interface{}{"type": "number", "description": "Relative slack separating 'partial' from 'infeasible' (default 0.2); an explicit 0 forbids 'partial'"},
						"scenario":    map[string]interface{}{"type": "string", "description": "Optional saved scenario name; its inputs are used as the base and explicit arguments override"},
					},
				},
			},
			map[string]interface{}{
				"name":        "assess_deadline",
				"description": "Assess whether a backlog is completable by a deadline. Classifies the deadline as feasible (P85 within the deadline), partial (within the tolerance band past it), or infeasible, and reports how many items are completable by the deadline with 85% confidence.",
				"inputSchema": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"backlog":     map[string]interface{}{"type": "integer", "description": "Number of work items remaining"},
						"history":     map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "integer"}, "description": "Historical throughput samples, one per period"},
						"risks":       riskSchema,
						"start_date":  map[string]interface{}{"type": "string", "description": "Start date (YYYY-MM-DD)"},
						"deadline":    map[string]interface{}{"type": "string", "description": "Deadline date (YYYY-MM-DD)"},
						"period_days": map[string]interface{}{"type": "integer", "description": "Calendar days per period (default 7)"},
						"tolerance":   map[string]interface{}{"type": "number", "description": "Relative slack separating 'partial' from 'infeasible' (default 0.2)"},
						"seed":        map[string]interface{}{"type": "integer", "description": "Optional RNG seed for reproducible runs"},
					},
					"required": []string{"backlog", "history", "start_date", "deadline"},
				},
			},
			map[string]interface{}{
				"name":        "get_trend_estimate",
				"description": "Fit a least-squares trend line over the throughput history and project periods-to-completion. Requires at least 8 samples. This is a cross-check for the Monte-Carlo forecast, not a replacement: when the two disagree by more than 20% the caller should review the input data.",
				"inputSchema": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"backlog": map[string]interface{}{"type": "integer", "description": "Number of work items remaining"},
						"history": map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "integer"}, "description": "Historical throughput samples, one per period"},
					},
					"required": []string{"backlog", "history"},
				},
			},
			map[string]interface{}{
				"name":        "save_scenario",
				"description": "Save a named forecast scenario (inputs only, never results) for later reuse by 'run_forecast'.",
				"inputSchema": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"name":        map[string]interface{}{"type": "string", "description": "Unique scenario name"},
						"backlog":     map[string]interface{}{"type": "integer"},
						"history":     map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "integer"}},
						"risks":       riskSchema,
						"team_size":   map[string]interface{}{"type": "integer"},
						"cost_rate":   map[string]interface{}{"type": "number"},
						"start_date":  map[string]interface{}{"type": "string", "description": "Optional start date (YYYY-MM-DD)"},
						"deadline":    map[string]interface{}{"type": "string", "description": "Optional deadline date (YYYY-MM-DD)"},
						"period_days": map[string]interface{}{"type": "integer"},
						"tolerance":   map[string]interface{}{"type": "number", "description": "Relative slack separating 'partial' from 'infeasible'; an explicit 0 forbids 'partial'"},
						"notes":       map[string]interface{}{"type": "string"},
					},
					"required": []string{"name", "backlog", "history"},
				},
			},
			map[string]interface{}{
				"name":        "list_scenarios",
				"description": "List saved forecast scenarios with their inputs.",
				"inputSchema": map[string]interface{}{
					"type":       "object",
					"properties": map[string]interface{}{},
				},
			},
		},
	}
}
