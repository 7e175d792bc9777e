package bench

import (
	"fmt"
	"slices"
	"time"

	"github.com/ChristianF88/runsort/config"
	"github.com/ChristianF88/runsort/datagen"
	"github.com/ChristianF88/runsort/output"
	"github.com/ChristianF88/runsort/timsort"
	"github.com/sirupsen/logrus"
)

// Runner executes a benchmark configuration. Scenarios and algorithms run
// one after another; nothing is timed concurrently.
type Runner struct {
	cfg   *config.Config
	cache *datagen.Cache
	log   logrus.FieldLogger
}

// NewRunner creates a runner. A nil cache gets a private one.
func NewRunner(cfg *config.Config, cache *datagen.Cache, logger logrus.FieldLogger) *Runner {
	if cache == nil {
		cache = datagen.NewCache()
	}
	return &Runner{cfg: cfg, cache: cache, log: logger}
}

// Run measures every configured algorithm on every configured scenario.
// Problems with a single scenario are recorded in the report; only an
// unusable configuration is returned as an error.
func (r *Runner) Run() (*output.JSONOutput, error) {
	start := time.Now()
	bench := r.cfg.Bench

	algos, err := Lookup(bench.Algorithms)
	if err != nil {
		return nil, err
	}

	result := output.NewJSONOutput("benchmark", start)
	result.Settings = output.Settings{
		Iterations: bench.Iterations,
		Seed:       bench.Seed,
		MaxValue:   bench.MaxValue,
		Algorithms: slices.Clone(bench.Algorithms),
	}

	for _, sc := range r.cfg.Scenarios {
		scenarioResult, err := r.runScenario(sc, algos, result)
		if err != nil {
			r.log.WithError(err).WithField("scenario", sc.Name).Error("Scenario failed")
			result.AddError("scenario", fmt.Sprintf("%s: %v", sc.Name, err), 0)
			continue
		}
		result.Scenarios = append(result.Scenarios, scenarioResult)
	}

	result.UpdateDuration(start)
	return result, nil
}

func (r *Runner) runScenario(sc *config.ScenarioConfig, algos []Algorithm, result *output.JSONOutput) (output.ScenarioResult, error) {
	bench := r.cfg.Bench
	logger := r.log.WithFields(logrus.Fields{"scenario": sc.Name, "kind": sc.Kind, "size": sc.Size})

	genStart := time.Now()
	input, err := r.cache.Get(sc.DataSpec(bench))
	if err != nil {
		return output.ScenarioResult{}, fmt.Errorf("generating input: %w", err)
	}
	genDuration := time.Since(genStart)
	logger.WithField("took", genDuration).Debug("Generated input")

	reference := slices.Clone(input)
	slices.Sort(reference)

	scenarioResult := output.ScenarioResult{
		Name:         sc.Name,
		Kind:         sc.Kind,
		Size:         len(input),
		GenerateUS:   genDuration.Microseconds(),
		RunStats:     runStats(input),
		Measurements: make([]output.AlgorithmResult, 0, len(algos)),
	}

	for _, algo := range algos {
		if reason := r.skipReason(algo, len(input)); reason != "" {
			logger.WithField("algorithm", algo.Name).Warn("Skipping algorithm: " + reason)
			result.AddWarning("skipped", fmt.Sprintf("%s on %s: %s", algo.Name, sc.Name, reason), 0)
			scenarioResult.Measurements = append(scenarioResult.Measurements, output.AlgorithmResult{
				Algorithm:  algo.Name,
				Skipped:    true,
				SkipReason: reason,
			})
			continue
		}

		m := measure(algo, input, reference, bench.Iterations)
		logger.WithFields(logrus.Fields{
			"algorithm": algo.Name,
			"avg":       m.Avg,
			"min":       m.Min,
			"max":       m.Max,
		}).Info("Measured")

		if !m.Verified {
			result.AddError("verification", fmt.Sprintf("%s produced unsorted output on %s", algo.Name, sc.Name), 0)
		}
		scenarioResult.Measurements = append(scenarioResult.Measurements, m.Result())
	}

	return scenarioResult, nil
}

// skipReason returns why algo must not run on an input of size n, or "".
func (r *Runner) skipReason(algo Algorithm, n int) string {
	limit := r.cfg.Bench.QuicksortLimit
	if algo.Name == "quicksort" && limit > 0 && n > limit {
		return fmt.Sprintf("input size %d exceeds quicksortLimit %d", n, limit)
	}
	return ""
}

// runStats sorts a copy of input with timsort to record its run structure.
func runStats(input []int) *output.RunStats {
	stats := timsort.SortWithStats(slices.Clone(input), intLess)
	return &output.RunStats{
		MinRun:       stats.MinRun,
		Runs:         stats.Runs,
		ReversedRuns: stats.ReversedRuns,
		ForcedRuns:   stats.ForcedRuns,
		Merges:       stats.Merges,
		MaxStack:     stats.MaxStack,
		BufferCap:    stats.BufferCap,
	}
}
