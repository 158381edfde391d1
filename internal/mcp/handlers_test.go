package mcp

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"flowcast/internal/config"
	"flowcast/internal/repository"
	"flowcast/internal/testutil"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	db := testutil.NewTestDB(t)
	cfg := &config.AppConfig{Trials: 2000, DegradedTrials: 500, PeriodDays: 7, DeadlineTolerance: 0.2}
	return NewServer(cfg, repository.NewSQLiteScenarioRepo(db))
}

func callToolParams(t *testing.T, name string, args map[string]interface{}) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(map[string]interface{}{"name": name, "arguments": args})
	if err != nil {
		t.Fatal(err)
	}
	return raw
}

func TestCallTool_RunForecast(t *testing.T) {
	s := newTestServer(t)

	result, errRes := s.callTool(callToolParams(t, "run_forecast", map[string]interface{}{
		"backlog": float64(80),
		"history": []interface{}{float64(6), float64(8), float64(5), float64(9), float64(7), float64(6), float64(10), float64(7), float64(8), float64(6)},
		"seed":    float64(42),
	}))
	if errRes != nil {
		t.Fatalf("Expected success, got error: %v", errRes)
	}

	text := extractText(t, result)
	if !strings.Contains(text, `"p85"`) {
		t.Errorf("Expected percentiles in result, got: %s", text)
	}
	if !strings.Contains(text, `"distribution"`) {
		t.Errorf("Expected distribution in result, got: %s", text)
	}
}

func TestCallTool_ValidationErrorCode(t *testing.T) {
	s := newTestServer(t)

	_, errRes := s.callTool(callToolParams(t, "run_forecast", map[string]interface{}{
		"backlog": float64(-5),
		"history": []interface{}{float64(6), float64(8)},
	}))
	if errRes == nil {
		t.Fatal("Expected a validation error")
	}
	errMap := errRes.(map[string]interface{})
	if errMap["code"] != -32602 {
		t.Errorf("Expected code -32602 for validation errors, got %v", errMap["code"])
	}
}

func TestCallTool_MalformedArgumentRejected(t *testing.T) {
	s := newTestServer(t)

	_, errRes := s.callTool(callToolParams(t, "run_forecast", map[string]interface{}{
		"backlog": "abc",
		"history": []interface{}{float64(6), float64(8)},
	}))
	if errRes == nil {
		t.Fatal("Expected an error for a non-numeric backlog")
	}
	errMap := errRes.(map[string]interface{})
	if errMap["code"] != -32602 {
		t.Errorf("Expected code -32602 for a malformed argument, got %v", errMap["code"])
	}
	if !strings.Contains(errMap["message"].(string), "backlog") {
		t.Errorf("Expected the message to name the bad field, got %v", errMap["message"])
	}
}

func TestCallTool_ZeroToleranceIsStrict(t *testing.T) {
	s := newTestServer(t)

	// Constant throughput of 10 needs exactly 8 periods for 80 items; the
	// deadline allows 7. With tolerance 0 there is no partial band.
	result, errRes := s.callTool(callToolParams(t, "assess_deadline", map[string]interface{}{
		"backlog":    float64(80),
		"history":    []interface{}{float64(10)},
		"start_date": "2026-03-02",
		"deadline":   "2026-04-20",
		"tolerance":  float64(0),
		"seed":       float64(7),
	}))
	if errRes != nil {
		t.Fatalf("assess_deadline failed: %v", errRes)
	}
	text := extractText(t, result)
	if !strings.Contains(text, `"classification": "infeasible"`) {
		t.Errorf("Expected infeasible under tolerance 0, got: %s", text)
	}
	if !strings.Contains(text, `"tolerance": 0`) {
		t.Errorf("Expected the caller's tolerance 0 in the result, got: %s", text)
	}
}

func TestCallTool_DegradedUsesConfiguredTrials(t *testing.T) {
	s := newTestServer(t)

	result, errRes := s.callTool(callToolParams(t, "run_forecast", map[string]interface{}{
		"backlog":  float64(80),
		"history":  []interface{}{float64(6), float64(8), float64(5)},
		"degraded": true,
		"seed":     float64(42),
	}))
	if errRes != nil {
		t.Fatalf("run_forecast failed: %v", errRes)
	}
	text := extractText(t, result)
	if !strings.Contains(text, `"trials": 500`) {
		t.Errorf("Expected the configured degraded trial count 500, got: %s", text)
	}
}

func TestCallTool_DegenerateThroughput(t *testing.T) {
	s := newTestServer(t)

	_, errRes := s.callTool(callToolParams(t, "run_forecast", map[string]interface{}{
		"backlog": float64(10),
		"history": []interface{}{float64(0), float64(0), float64(0)},
	}))
	if errRes == nil {
		t.Fatal("Expected an error for all-zero throughput")
	}
	errMap := errRes.(map[string]interface{})
	if !strings.Contains(errMap["message"].(string), "zero") {
		t.Errorf("Expected a degenerate-throughput message, got %v", errMap["message"])
	}
}

func TestCallTool_UnknownTool(t *testing.T) {
	s := newTestServer(t)

	_, errRes := s.callTool(callToolParams(t, "divine_the_future", nil))
	if errRes == nil {
		t.Fatal("Expected an error for unknown tool")
	}
	errMap := errRes.(map[string]interface{})
	if errMap["code"] != -32601 {
		t.Errorf("Expected code -32601, got %v", errMap["code"])
	}
}

func TestCallTool_SaveAndRunScenario(t *testing.T) {
	s := newTestServer(t)

	_, errRes := s.callTool(callToolParams(t, "save_scenario", map[string]interface{}{
		"name":    "Q3",
		"backlog": float64(80),
		"history": []interface{}{float64(6), float64(8), float64(5), float64(9), float64(7), float64(6), float64(10), float64(7), float64(8), float64(6)},
	}))
	if errRes != nil {
		t.Fatalf("save_scenario failed: %v", errRes)
	}

	// Run the saved scenario with an overridden backlog.
	result, errRes := s.callTool(callToolParams(t, "run_forecast", map[string]interface{}{
		"scenario": "Q3",
		"backlog":  float64(40),
		"seed":     float64(7),
	}))
	if errRes != nil {
		t.Fatalf("run_forecast from scenario failed: %v", errRes)
	}
	text := extractText(t, result)
	if !strings.Contains(text, `"backlog": 40`) {
		t.Errorf("Expected the override backlog 40, got: %s", text)
	}

	// And list it back.
	result, errRes = s.callTool(callToolParams(t, "list_scenarios", nil))
	if errRes != nil {
		t.Fatalf("list_scenarios failed: %v", errRes)
	}
	if !strings.Contains(extractText(t, result), `"Q3"`) {
		t.Errorf("Expected scenario Q3 in listing")
	}
}

func TestCallTool_AssessDeadline(t *testing.T) {
	s := newTestServer(t)

	result, errRes := s.callTool(callToolParams(t, "assess_deadline", map[string]interface{}{
		"backlog":    float64(80),
		"history":    []interface{}{float64(6), float64(8), float64(5), float64(9), float64(7), float64(6), float64(10), float64(7), float64(8), float64(6)},
		"start_date": "2026-03-02",
		"deadline":   "2026-05-25",
		"seed":       float64(42),
	}))
	if errRes != nil {
		t.Fatalf("assess_deadline failed: %v", errRes)
	}
	text := extractText(t, result)
	if !strings.Contains(text, `"classification"`) {
		t.Errorf("Expected a classification in result, got: %s", text)
	}
	if !strings.Contains(text, `"completable_pct"`) {
		t.Errorf("Expected completable percentage in result, got: %s", text)
	}
}

func TestCallTool_AssessDeadline_RequiresDates(t *testing.T) {
	s := newTestServer(t)

	_, errRes := s.callTool(callToolParams(t, "assess_deadline", map[string]interface{}{
		"backlog": float64(80),
		"history": []interface{}{float64(6), float64(8), float64(5)},
	}))
	if errRes == nil {
		t.Fatal("Expected an error when dates are missing")
	}
}

func TestCallTool_TrendEstimate_InsufficientHistory(t *testing.T) {
	s := newTestServer(t)

	_, errRes := s.callTool(callToolParams(t, "get_trend_estimate", map[string]interface{}{
		"backlog": float64(80),
		"history": []interface{}{float64(6), float64(8), float64(5)},
	}))
	if errRes == nil {
		t.Fatal("Expected an error for insufficient history")
	}
	errMap := errRes.(map[string]interface{})
	if !strings.Contains(errMap["message"].(string), "insufficient history") {
		t.Errorf("Expected an insufficient-history message, got %v", errMap["message"])
	}
}

func TestHandleRequest_Initialize(t *testing.T) {
	s := newTestServer(t)
	var buf bytes.Buffer
	s.out = &buf

	s.handleRequest(JSONRPCRequest{JSONRPC: "2.0", ID: 1, Method: "initialize"})

	var resp JSONRPCResponse
	if err := json.Unmarshal(buf.Bytes(), &resp); err != nil {
		t.Fatalf("Response is not valid JSON: %v", err)
	}
	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}
	info := resp.Result.(map[string]interface{})["serverInfo"].(map[string]interface{})
	if info["name"] != "flowcast" {
		t.Errorf("Expected server name flowcast, got %v", info["name"])
	}
}

func TestHandleRequest_MethodNotFound(t *testing.T) {
	s := newTestServer(t)
	var buf bytes.Buffer
	s.out = &buf

	s.handleRequest(JSONRPCRequest{JSONRPC: "2.0", ID: 2, Method: "resources/list"})

	var resp JSONRPCResponse
	if err := json.Unmarshal(buf.Bytes(), &resp); err != nil {
		t.Fatalf("Response is not valid JSON: %v", err)
	}
	if resp.Error == nil {
		t.Fatal("Expected a method-not-found error")
	}
}

func extractText(t *testing.T, result interface{}) string {
	t.Helper()
	content := result.(map[string]interface{})["content"].([]interface{})
	if len(content) == 0 {
		t.Fatal("Empty content")
	}
	return content[0].(map[string]interface{})["text"].(string)
}
