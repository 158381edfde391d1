package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"flowcast/internal/forecast"
	"flowcast/internal/report"
)

func newReportCmd() *cobra.Command {
	var flags forecastFlags
	var outPath string
	var open bool

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Run a forecast and write a self-contained HTML report",
		Example: `  flowcast report --backlog 80 --history "6,8,5,9,7,6,10,7,8,6" --out forecast.html
  flowcast report --scenario Q3 --open`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := flags.buildRequest(cmd)
			if err != nil {
				return err
			}

			res, err := forecast.Forecast(req)
			if err != nil {
				return err
			}

			if err := report.Write(outPath, res, req.History); err != nil {
				return err
			}
			fmt.Printf("Report written to %s\n", outPath)

			if open {
				return report.Open(outPath)
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&outPath, "out", "forecast-report.html", "output file path")
	cmd.Flags().BoolVar(&open, "open", false, "open the report in the default browser")
	return cmd
}
