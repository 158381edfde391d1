package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"flowcast/internal/forecast"
	"flowcast/internal/format"
	"flowcast/internal/visuals"
)

func newTrendCmd() *cobra.Command {
	var flags forecastFlags
	var showChart bool

	cmd := &cobra.Command{
		Use:   "trend",
		Short: "Fit a least-squares trend line over the throughput history",
		Long: `Fits an ordinary least-squares line over the throughput samples and
projects it forward to estimate periods-to-completion. This is a cross-check
for the Monte-Carlo forecast: it needs at least 8 samples and is reported
side by side with the simulation, never merged into it.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := flags.buildRequest(cmd)
			if err != nil {
				return err
			}

			trend, err := forecast.EstimateTrend(req.History, req.Backlog)
			if err != nil {
				return err
			}

			if flags.jsonOut {
				out, err := json.MarshalIndent(trend, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(out))
				return nil
			}

			fmt.Println(format.RenderBox("Trend Estimate", format.FormatTrend(trend)))
			if showChart && cfg.EnableMermaidCharts {
				fmt.Println(visuals.GenerateTrendChart(req.History, trend))
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&showChart, "chart", false, "emit a Mermaid chart of the fitted line")
	return cmd
}
