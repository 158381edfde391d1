package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"flowcast/internal/format"
	"flowcast/internal/scenario"
)

func newScenarioCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scenario",
		Short: "Manage saved forecast scenarios",
	}

	cmd.AddCommand(
		newScenarioSaveCmd(),
		newScenarioListCmd(),
		newScenarioShowCmd(),
		newScenarioDeleteCmd(),
	)
	return cmd
}

func newScenarioSaveCmd() *cobra.Command {
	var flags forecastFlags
	var notes string

	cmd := &cobra.Command{
		Use:   "save <name>",
		Short: "Save forecast inputs as a named scenario",
		Args:  cobra.ExactArgs(1),
		Example: `  flowcast scenario save Q3 --backlog 80 --history "6,8,5,9,7,6,10,7,8,6"
  flowcast scenario save Q3 -f scenario.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := flags.buildRequest(cmd)
			if err != nil {
				return err
			}

			sc := &scenario.Scenario{
				Name:       args[0],
				Backlog:    req.Backlog,
				History:    req.History,
				Risks:      req.Risks,
				TeamSize:   req.TeamSize,
				CostRate:   req.CostRate,
				PeriodDays: req.PeriodDays,
				StartDate:  req.StartDate,
				Deadline:   req.Deadline,
				Tolerance:  req.Tolerance,
				Notes:      notes,
			}
			if err := sc.Validate(); err != nil {
				return err
			}

			repo, database, err := openScenarioRepo()
			if err != nil {
				return err
			}
			defer database.Close()

			if err := repo.Create(context.Background(), sc); err != nil {
				return err
			}
			fmt.Printf("Saved scenario %q (%s)\n", sc.Name, sc.ID)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&notes, "notes", "", "free-form notes stored with the scenario")
	return cmd
}

func newScenarioListCmd() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved scenarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, database, err := openScenarioRepo()
			if err != nil {
				return err
			}
			defer database.Close()

			scenarios, err := repo.List(context.Background())
			if err != nil {
				return err
			}

			if jsonOut {
				out, err := json.MarshalIndent(scenarios, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(out))
				return nil
			}

			fmt.Println(format.FormatScenarioList(scenarios))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "emit the raw list as JSON")
	return cmd
}

func newScenarioShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Show a saved scenario as YAML-compatible JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, database, err := openScenarioRepo()
			if err != nil {
				return err
			}
			defer database.Close()

			sc, err := repo.GetByName(context.Background(), args[0])
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(sc, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		},
	}
	return cmd
}

func newScenarioDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a saved scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, database, err := openScenarioRepo()
			if err != nil {
				return err
			}
			defer database.Close()

			ctx := context.Background()
			sc, err := repo.GetByName(ctx, args[0])
			if err != nil {
				return err
			}
			if err := repo.Delete(ctx, sc.ID); err != nil {
				return err
			}
			fmt.Printf("Deleted scenario %q\n", sc.Name)
			return nil
		},
	}
	return cmd
}
