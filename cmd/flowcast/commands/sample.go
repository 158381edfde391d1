package commands

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"flowcast/internal/forecast"
	"flowcast/internal/scenario"
)

func newSampleCmd() *cobra.Command {
	var (
		profile string
		samples int
		seed    int64
		outPath string
	)

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Generate a synthetic scenario file for experimentation",
		Long: `Generates a scenario YAML with synthetic throughput history. Profiles:
  steady  - stable flow with mild variation
  chaos   - high-variance flow with zero periods and spikes
  drift   - throughput that degrades over time`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if seed == 0 {
				seed = time.Now().UnixNano()
			}
			rng := rand.New(rand.NewSource(seed))

			history, err := generateHistory(profile, samples, rng)
			if err != nil {
				return err
			}

			sc := scenario.Scenario{
				Name:    fmt.Sprintf("sample-%s", profile),
				Backlog: 80,
				History: history,
				Risks: []forecast.RiskEvent{
					{Name: "vendor delay", Probability: 0.3, Optimistic: 2, MostLikely: 5, Pessimistic: 10},
				},
				TeamSize: 5,
				CostRate: 1500,
				Notes:    fmt.Sprintf("Synthetic %s profile, seed %d", profile, seed),
			}

			out, err := yaml.Marshal(&sc)
			if err != nil {
				return err
			}
			if err := os.WriteFile(outPath, out, 0644); err != nil {
				return err
			}
			fmt.Printf("Wrote %s scenario (%d samples, seed %d) to %s\n", profile, samples, seed, outPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&profile, "profile", "steady", "throughput profile: steady, chaos, drift")
	cmd.Flags().IntVar(&samples, "samples", 12, "number of throughput samples to generate")
	cmd.Flags().Int64Var(&seed, "seed", 0, "RNG seed (0 = time-based)")
	cmd.Flags().StringVar(&outPath, "out", "sample-scenario.yaml", "output file path")
	return cmd
}

func generateHistory(profile string, samples int, rng *rand.Rand) ([]int, error) {
	if samples < 1 {
		return nil, fmt.Errorf("samples must be positive, got %d", samples)
	}

	history := make([]int, samples)
	switch profile {
	case "steady":
		for i := range history {
			history[i] = 6 + rng.Intn(5)
		}
	case "chaos":
		for i := range history {
			switch rng.Intn(5) {
			case 0:
				history[i] = 0
			case 4:
				history[i] = 15 + rng.Intn(20)
			default:
				history[i] = 2 + rng.Intn(8)
			}
		}
	case "drift":
		for i := range history {
			base := 12 - (i*8)/samples
			history[i] = base + rng.Intn(3) - 1
			if history[i] < 1 {
				history[i] = 1
			}
		}
	default:
		return nil, fmt.Errorf("unknown profile %q: expected steady, chaos, or drift", profile)
	}
	return history, nil
}
