package forecast

import (
	"math"
	"math/rand"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
)

// DefaultTrials is the standard simulation depth. DegradedTrials is the
// documented fallback under latency pressure; switching to it is always a
// caller-visible choice, never silent.
const (
	DefaultTrials  = 10000
	DegradedTrials = 1000
)

// periodsCap bounds a single trial. It is only reachable when a ramp function
// suppresses throughput to zero indefinitely; capped trials are counted and
// surfaced as a warning.
const periodsCap = 100000

// Distinct RNG stream salts so that risk draws never perturb throughput
// draws. Adding a risk to a request therefore can only extend trials, which
// keeps percentile output monotone in the risk set for a fixed seed.
const (
	streamThroughput int64 = 0x5DEECE66D
	streamRisk       int64 = 0x2545F4914F6CDD1D
)

// SimulationConfig controls trial count and reproducibility.
type SimulationConfig struct {
	Trials   int   // defaults to DefaultTrials
	Seed     int64 // 0 picks a time-based seed (nondeterministic)
	Workers  int   // defaults to GOMAXPROCS
	Degraded bool  // run the reduced trial count, with a warning
	// DegradedTrials is the trial count used when Degraded is set;
	// 0 falls back to the DegradedTrials constant.
	DegradedTrials int
}

// Trial is the outcome of one simulated run.
type Trial struct {
	// Periods is the number of periods until the (risk-adjusted) backlog
	// reached zero.
	Periods int
	// CompletedByHorizon is the number of original backlog items finished
	// within the horizon passed to Run. Zero when no horizon was requested.
	CompletedByHorizon int
}

// Engine runs the Monte Carlo simulation: each trial draws per-period
// throughput uniformly with replacement from the historical series until the
// backlog is exhausted.
type Engine struct {
	history []int
	risks   []RiskEvent
	ramp    RampFunc
	seed    int64
	trials  int
	workers int

	// CappedTrials counts trials stopped at periodsCap during the last Run.
	CappedTrials int
}

// NewEngine validates inputs and builds an engine. An all-zero history is
// rejected here with ErrDegenerateThroughput so no trial can ever hang.
func NewEngine(history []int, risks []RiskEvent, ramp RampFunc, cfg SimulationConfig) (*Engine, error) {
	if err := ValidateHistory(history); err != nil {
		return nil, err
	}
	if err := ValidateRisks(risks); err != nil {
		return nil, err
	}

	trials := cfg.Trials
	if trials <= 0 {
		trials = DefaultTrials
	}
	if cfg.Degraded {
		trials = cfg.DegradedTrials
		if trials <= 0 {
			trials = DegradedTrials
		}
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	if ramp == nil {
		ramp = FlatRamp
	}

	return &Engine{
		history: history,
		risks:   risks,
		ramp:    ramp,
		seed:    seed,
		trials:  trials,
		workers: workers,
	}, nil
}

// Trials returns the effective trial count the engine will run.
func (e *Engine) Trials() int { return e.trials }

// Seed returns the seed in effect, useful for reproducing a run.
func (e *Engine) Seed() int64 { return e.seed }

// Run simulates the configured number of independent trials for the given
// backlog. When horizon > 0, each trial additionally records how many of the
// original backlog items were completed within that many periods.
//
// Trials are independent and identically distributed; each one derives its
// own RNG from (seed, trial index), so results are bit-identical whether
// trials run sequentially or across workers.
func (e *Engine) Run(backlog, horizon int) ([]Trial, error) {
	if backlog < 0 {
		return nil, validationErr("backlog", "must be non-negative, got %d", backlog)
	}

	results := make([]Trial, e.trials)
	capped := make([]int, e.workers)

	var g errgroup.Group
	chunk := (e.trials + e.workers - 1) / e.workers
	for w := 0; w < e.workers; w++ {
		start := w * chunk
		end := min(start+chunk, e.trials)
		if start >= end {
			break
		}
		g.Go(func() error {
			for i := start; i < end; i++ {
				var hitCap bool
				results[i], hitCap = e.simulateTrial(i, backlog, horizon)
				if hitCap {
					capped[w]++
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	e.CappedTrials = 0
	for _, c := range capped {
		e.CappedTrials += c
	}
	return results, nil
}

func (e *Engine) simulateTrial(trial, backlog, horizon int) (Trial, bool) {
	riskRNG := trialRand(e.seed, trial, streamRisk)

	// Risk injection happens at the start of the trial: every triggered
	// risk adds its sampled impact to this trial's effective backlog.
	effective := backlog
	for _, r := range e.risks {
		effective += r.Sample(riskRNG)
	}

	if effective == 0 {
		return Trial{}, false
	}

	throughputRNG := trialRand(e.seed, trial, streamThroughput)

	remaining := effective
	periods := 0
	completedByHorizon := 0
	hitCap := false

	for remaining > 0 {
		periods++
		draw := e.history[throughputRNG.Intn(len(e.history))]
		if scale := e.ramp(periods); scale != 1.0 {
			draw = int(math.Round(float64(draw) * scale))
			if draw < 0 {
				draw = 0
			}
		}
		remaining -= draw

		if horizon > 0 && periods == horizon {
			completedByHorizon = clampCompleted(effective-remaining, backlog)
		}
		if periods >= periodsCap {
			hitCap = true
			break
		}
	}

	// Finished before the horizon: the whole backlog was completed in time.
	if horizon > 0 && periods < horizon {
		completedByHorizon = backlog
	}

	return Trial{Periods: periods, CompletedByHorizon: completedByHorizon}, hitCap
}

func clampCompleted(completed, backlog int) int {
	if completed < 0 {
		return 0
	}
	if completed > backlog {
		return backlog
	}
	return completed
}

// trialRand derives a deterministic RNG for one trial and stream. The mix
// keeps streams independent of each other and of neighboring trials.
func trialRand(seed int64, trial int, stream int64) *rand.Rand {
	mixed := seed + int64(trial+1)*0x5851F42D4C957F2D + stream
	return rand.New(rand.NewSource(mixed))
}

// PeriodCounts flattens trial outcomes into the raw period distribution.
func PeriodCounts(trials []Trial) []int {
	out := make([]int, len(trials))
	for i, t := range trials {
		out[i] = t.Periods
	}
	return out
}

// CompletedCounts flattens trial outcomes into the completed-by-horizon
// distribution.
func CompletedCounts(trials []Trial) []int {
	out := make([]int, len(trials))
	for i, t := range trials {
		out[i] = t.CompletedByHorizon
	}
	return out
}
