package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"flowcast/internal/forecast"
	"flowcast/internal/format"
	"flowcast/internal/visuals"
)

func newRunCmd() *cobra.Command {
	var flags forecastFlags
	var showDistribution bool
	var showChart bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a Monte-Carlo forecast over a throughput history",
		Example: `  flowcast run --backlog 80 --history "6,8,5,9,7,6,10,7,8,6"
  flowcast run --backlog 80 --history "6,8,5,9,7" --team 5 --cost-rate 1500
  flowcast run -f scenario.yaml --risk "vendor=30:2,5,10" --seed 42`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := flags.buildRequest(cmd)
			if err != nil {
				return err
			}

			res, err := forecast.Forecast(req)
			if err != nil {
				return err
			}

			if flags.jsonOut {
				out, err := json.MarshalIndent(res, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(out))
				return nil
			}

			fmt.Println(format.FormatResult(res))
			if showDistribution {
				fmt.Println(format.FormatDistribution(res))
			}
			if showChart && cfg.EnableMermaidCharts {
				fmt.Println(visuals.GenerateDistributionChart(res))
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&showDistribution, "distribution", false, "show the completion-period histogram")
	cmd.Flags().BoolVar(&showChart, "chart", false, "emit a Mermaid chart of the distribution")
	return cmd
}
