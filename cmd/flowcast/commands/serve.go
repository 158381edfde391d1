package commands

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"flowcast/internal/mcp"
	"flowcast/internal/repository"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve forecasting tools over MCP (JSON-RPC on stdio)",
		Long: `Starts an MCP server exposing run_forecast, assess_deadline,
get_trend_estimate, save_scenario, and list_scenarios. Protocol frames go to
stdout; all logging stays on stderr.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var repo repository.ScenarioRepo
			if r, database, err := openScenarioRepo(); err != nil {
				log.Warn().Err(err).Msg("Scenario database unavailable, persistence tools disabled")
			} else {
				defer database.Close()
				repo = r
			}

			log.Info().Msg("MCP Server starting Stdio loop")
			server := mcp.NewServer(cfg, repo)
			return server.Serve()
		},
	}
	return cmd
}
