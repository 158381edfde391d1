package mcp

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"

	"flowcast/internal/config"
	"flowcast/internal/forecast"
	"flowcast/internal/repository"
)

// JSONRPCRequest represents a standard MCP/JSON-RPC request.
type JSONRPCRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// JSONRPCResponse represents a standard MCP/JSON-RPC response.
type JSONRPCResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   interface{} `json:"error,omitempty"`
}

// Server holds the state for the MCP server. The scenario repo may be nil
// when no database is configured; persistence tools then report an error
// instead of failing at startup.
type Server struct {
	cfg   *config.AppConfig
	repo  repository.ScenarioRepo
	stdin io.Reader
	out   io.Writer
}

// NewServer creates a new MCP server.
func NewServer(cfg *config.AppConfig, repo repository.ScenarioRepo) *Server {
	return &Server{
		cfg:   cfg,
		repo:  repo,
		stdin: os.Stdin,
		out:   os.Stdout,
	}
}

// Serve starts the JSON-RPC loop over Stdio. Logging stays on stderr; stdout
// carries protocol frames only.
func (s *Server) Serve() error {
	reader := bufio.NewReader(s.stdin)
	for {
		line, err := reader.ReadBytes('\n')
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}

		var req JSONRPCRequest
		if err := json.Unmarshal(line, &req); err != nil {
			log.Error().Err(err).Msg("Failed to unmarshal request")
			continue
		}

		s.handleRequest(req)
	}
}

func (s *Server) handleRequest(req JSONRPCRequest) {
	var result interface{}
	var errRes interface{}

	switch req.Method {
	case "initialize":
		result = map[string]interface{}{
			"protocolVersion": "2024-11-05",
			"capabilities":    map[string]interface{}{},
			"serverInfo": map[string]interface{}{
				"name":    "flowcast",
				"version": "0.1.0",
			},
		}
	case "tools/list":
		result = s.listTools()
	case "tools/call":
		result, errRes = s.callTool(req.Params)
	default:
		errRes = map[string]interface{}{
			"code":    -32601,
			"message": fmt.Sprintf("Method %s not found", req.Method),
		}
	}

	resp := JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result:  result,
		Error:   errRes,
	}

	out, _ := json.Marshal(resp)
	fmt.Fprintf(s.out, "%s\n", out)
}

func (s *Server) callTool(params json.RawMessage) (interface{}, interface{}) {
	var call struct {
		Name      string                 `json:"name"`
		Arguments map[string]interface{} `json:"arguments"`
	}
	if err := json.Unmarshal(params, &call); err != nil {
		return nil, map[string]interface{}{"code": -32602, "message": "Invalid params"}
	}

	var data interface{}
	var err error

	switch call.Name {
	case "run_forecast":
		data, err = s.handleRunForecast(call.Arguments)
	case "assess_deadline":
		data, err = s.handleAssessDeadline(call.Arguments)
	case "get_trend_estimate":
		data, err = s.handleGetTrendEstimate(call.Arguments)
	case "save_scenario":
		data, err = s.handleSaveScenario(call.Arguments)
	case "list_scenarios":
		data, err = s.handleListScenarios()
	default:
		return nil, map[string]interface{}{"code": -32601, "message": "Tool not found"}
	}

	if err != nil {
		code := -32000
		if forecast.IsValidation(err) {
			code = -32602
		}
		return nil, map[string]interface{}{"code": code, "message": err.Error()}
	}

	return map[string]interface{}{
		"content": []interface{}{
			map[string]interface{}{
				"type": "text",
				"text": s.formatResult(data),
			},
		},
	}, nil
}

func (s *Server) formatResult(data interface{}) string {
	out, _ := json.MarshalIndent(data, "", "  ")
	return string(out)
}
