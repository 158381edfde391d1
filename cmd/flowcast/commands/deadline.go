package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"flowcast/internal/forecast"
	"flowcast/internal/format"
)

func newDeadlineCmd() *cobra.Command {
	var flags forecastFlags

	cmd := &cobra.Command{
		Use:   "deadline",
		Short: "Assess whether a backlog is completable by a deadline",
		Example: `  flowcast deadline --backlog 80 --history "6,8,5,9,7" --start 2026-03-02 --deadline 2026-05-25
  flowcast deadline --scenario Q3 --deadline 2026-06-30 --start 2026-03-02`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := flags.buildRequest(cmd)
			if err != nil {
				return err
			}
			if req.StartDate == nil || req.Deadline == nil {
				return fmt.Errorf("deadline assessment requires both --start and --deadline")
			}

			res, err := forecast.Forecast(req)
			if err != nil {
				return err
			}

			if flags.jsonOut {
				out, err := json.MarshalIndent(res.Deadline, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(out))
				return nil
			}

			fmt.Println(format.RenderBox("Deadline Assessment", format.FormatDeadline(res.Deadline)))
			for _, w := range res.Warnings {
				fmt.Println(format.StyleYellow.Render("⚠ ") + w)
			}
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}
