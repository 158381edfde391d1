package commands

import (
	"database/sql"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"flowcast/internal/config"
	"flowcast/internal/db"
	"flowcast/internal/logging"
	"flowcast/internal/repository"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose bool
	cfg     *config.AppConfig
)

var rootCmd = &cobra.Command{
	Use:   "flowcast",
	Short: "Flowcast is a Monte-Carlo flow forecaster for delivery teams",
	Long: `Flowcast answers "when will this backlog be done, and with what confidence?"
using Monte-Carlo simulation over historical throughput samples. It reports
P50/P85/P95 completion percentiles, cost projections, deadline feasibility,
and a regression-based cross-check of the simulation.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(verbose)

		var err error
		cfg, err = config.Load()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}

		log.Debug().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Msg("Flowcast starting")
	},
}

func Execute() error {
	return rootCmd.Execute()
}

// openScenarioRepo opens the scenario database at the configured path. The
// caller owns the returned handle.
func openScenarioRepo() (repository.ScenarioRepo, *sql.DB, error) {
	database, err := db.OpenDB(cfg.DatabasePath)
	if err != nil {
		return nil, nil, err
	}
	return repository.NewSQLiteScenarioRepo(database), database, nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	rootCmd.AddCommand(
		newRunCmd(),
		newDeadlineCmd(),
		newTrendCmd(),
		newWizardCmd(),
		newScenarioCmd(),
		newReportCmd(),
		newSampleCmd(),
		newServeCmd(),
	)
}
