package cli

import (
	"fmt"
	"time"

	"github.com/ChristianF88/runsort/bench"
	"github.com/ChristianF88/runsort/config"
	"github.com/ChristianF88/runsort/datagen"
	"github.com/ChristianF88/runsort/version"
	"github.com/sirupsen/logrus"
	cli "github.com/urfave/cli/v2"
)

// parseDate attempts to parse the build date
func parseDate(d string) time.Time {
	t, err := time.Parse(time.RFC3339, d)
	if err != nil {
		return time.Now()
	}
	return t
}

// Shared flag definitions to eliminate duplication
var (
	// Configuration flags
	configFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "Path to configuration file (mutually exclusive with tuning flags)",
	}
	verboseFlag = &cli.BoolFlag{
		Name:  "verbose",
		Usage: "Log debug information to stderr",
		Value: false,
	}

	// Benchmark tuning flags
	iterationsFlag = &cli.IntFlag{
		Name:  "iterations",
		Usage: "Timed runs per algorithm and scenario",
		Value: config.DefaultIterations,
	}
	seedFlag = &cli.Int64Flag{
		Name:  "seed",
		Usage: "Seed for the input generators",
		Value: config.DefaultSeed,
	}
	sizeFlag = &cli.IntFlag{
		Name:  "size",
		Usage: "Override the element count of every scenario",
	}
	scenarioFlag = &cli.StringSliceFlag{
		Name:  "scenario",
		Usage: "Input kind to benchmark, repeatable (random, nearly-sorted, many-small-runs, reversed)",
	}
	algorithmsFlag = &cli.StringSliceFlag{
		Name:  "algorithm",
		Usage: "Algorithm to measure, repeatable (std, stable, timsort, quicksort, radix)",
	}

	// Output flags
	jsonPathFlag = &cli.StringFlag{
		Name:  "jsonPath",
		Usage: "Path where to save the JSON report (e.g., '/path/to/report.json')",
	}
	plotPathFlag = &cli.StringFlag{
		Name:  "plotPath",
		Usage: "Path where to save the timing chart (e.g., '/path/to/timings.html'). If not provided, no plot will be generated.",
	}
	compactFlag = &cli.BoolFlag{
		Name:  "compact",
		Usage: "Output compact JSON (no pretty printing)",
		Value: false,
	}
	plainFlag = &cli.BoolFlag{
		Name:  "plain",
		Usage: "Output plain text format for easy readability",
		Value: false,
	}
	tuiFlag = &cli.BoolFlag{
		Name:  "tui",
		Usage: "Launch TUI (Terminal User Interface) mode",
		Value: false,
	}

	// Sort-specific flags
	inputFlag = &cli.StringFlag{
		Name:  "input",
		Usage: "File with one integer per line ('-' or empty reads stdin)",
	}
	outputFlag = &cli.StringFlag{
		Name:  "output",
		Usage: "Destination file (empty writes stdout)",
	}
	sortAlgorithmFlag = &cli.StringFlag{
		Name:  "algorithm",
		Usage: "Algorithm used to sort (timsort, quicksort, std, stable, radix)",
		Value: "timsort",
	}
	reverseFlag = &cli.BoolFlag{
		Name:  "reverse",
		Usage: "Sort in descending order",
		Value: false,
	}
	statsFlag = &cli.BoolFlag{
		Name:  "stats",
		Usage: "Log timsort run and merge statistics (timsort only)",
		Value: false,
	}

	// Collect-specific flags
	portFlag = &cli.StringFlag{
		Name:  "port",
		Usage: "Port to listen on for lumberjack v2 shippers",
		Value: config.DefaultCollectPort,
	}
	countFlag = &cli.IntFlag{
		Name:  "count",
		Usage: "Stop after this many events",
		Value: config.DefaultCollectCount,
	}
	timeoutFlag = &cli.DurationFlag{
		Name:  "timeout",
		Usage: "Stop after this long even if fewer events arrived",
		Value: config.DefaultCollectTimeout,
	}
)

// benchTuningFlags are the bench flags that a config file replaces.
var benchTuningFlags = []string{
	"iterations", "seed", "size", "scenario", "algorithm", "jsonPath", "plotPath",
	"tui", "compact", "plain",
}

// collectTuningFlags are the collect flags that a config file replaces.
var collectTuningFlags = []string{"port", "count", "timeout", "output"}

// Shared validation functions
func validateConfigModeFlags(c *cli.Context, flagsToCheck, allowedFlags []string) error {
	// Create a map for quick lookup of allowed flags
	allowed := make(map[string]bool)
	for _, flag := range allowedFlags {
		allowed[flag] = true
	}

	for _, flag := range flagsToCheck {
		if c.IsSet(flag) && !allowed[flag] {
			return fmt.Errorf("when using --config, only %v flags are allowed", allowedFlags)
		}
	}
	return nil
}

// scenariosFromKinds builds one default-sized scenario per requested kind.
func scenariosFromKinds(kinds []string, size int) ([]*config.ScenarioConfig, error) {
	scenarios := make([]*config.ScenarioConfig, 0, len(kinds))
	seen := make(map[datagen.Kind]bool)
	for _, k := range kinds {
		kind, err := datagen.ParseKind(k)
		if err != nil {
			return nil, err
		}
		if seen[kind] {
			continue
		}
		seen[kind] = true

		sc := &config.ScenarioConfig{Name: string(kind), Kind: string(kind), Size: config.DefaultSpecialSize}
		switch kind {
		case datagen.KindRandom:
			sc.Size = config.DefaultRandomSize
		case datagen.KindNearlySorted:
			sc.SwapFraction = datagen.DefaultSwapFraction
		case datagen.KindManySmallRuns:
			sc.RunSize = datagen.DefaultRunSize
		}
		if size > 0 {
			sc.Size = size
		}
		scenarios = append(scenarios, sc)
	}
	return scenarios, nil
}

// Command handler functions to reduce deep nesting

// handleBenchCommand processes the bench command
func handleBenchCommand(c *cli.Context) error {
	outputConfig := OutputConfig{
		Compact: c.Bool("compact"),
		Plain:   c.Bool("plain"),
		TUI:     c.Bool("tui"),
	}

	configPath := c.String("config")
	if configPath != "" {
		return handleBenchConfigMode(c, configPath, outputConfig)
	}
	return handleBenchFlagsMode(c, outputConfig)
}

// handleBenchConfigMode handles the bench command when using a config file
func handleBenchConfigMode(c *cli.Context, configPath string, outputConfig OutputConfig) error {
	if err := validateConfigModeFlags(c, benchTuningFlags, []string{"tui", "compact", "plain"}); err != nil {
		return err
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.ValidateBench(); err != nil {
		return fmt.Errorf("invalid bench configuration: %w", err)
	}

	return Bench(c.App.Writer, cfg, outputConfig)
}

// handleBenchFlagsMode handles the bench command when using CLI flags only
func handleBenchFlagsMode(c *cli.Context, outputConfig OutputConfig) error {
	cfg := config.Default()
	cfg.Bench.Iterations = c.Int("iterations")
	cfg.Bench.Seed = c.Int64("seed")
	cfg.Bench.JSONPath = c.String("jsonPath")
	cfg.Bench.PlotPath = c.String("plotPath")

	if algos := c.StringSlice("algorithm"); len(algos) > 0 {
		if _, err := bench.Lookup(algos); err != nil {
			return err
		}
		cfg.Bench.Algorithms = algos
	}

	size := c.Int("size")
	if c.IsSet("size") && size <= 0 {
		return fmt.Errorf("size must be positive, got %d", size)
	}
	if kinds := c.StringSlice("scenario"); len(kinds) > 0 {
		scenarios, err := scenariosFromKinds(kinds, size)
		if err != nil {
			return err
		}
		cfg.Scenarios = scenarios
	} else if size > 0 {
		for _, sc := range cfg.Scenarios {
			sc.Size = size
		}
	}

	if err := cfg.ValidateBench(); err != nil {
		return err
	}

	return Bench(c.App.Writer, cfg, outputConfig)
}

// handleSortCommand processes the sort command
func handleSortCommand(c *cli.Context) error {
	opts := SortOptions{
		Input:     c.String("input"),
		Output:    c.String("output"),
		Algorithm: c.String("algorithm"),
		Reverse:   c.Bool("reverse"),
		Stats:     c.Bool("stats"),
	}
	return SortNumbers(c.App.Reader, c.App.Writer, opts)
}

// handleCollectCommand processes the collect command
func handleCollectCommand(c *cli.Context) error {
	var cfg *config.Config

	if configPath := c.String("config"); configPath != "" {
		if err := validateConfigModeFlags(c, collectTuningFlags, nil); err != nil {
			return err
		}
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	} else {
		cfg = config.Default()
		cfg.Collect.Port = c.String("port")
		cfg.Collect.Count = c.Int("count")
		cfg.Collect.Timeout = c.Duration("timeout")
		cfg.Collect.OutputPath = c.String("output")
	}

	if err := cfg.ValidateCollect(); err != nil {
		return fmt.Errorf("invalid collect configuration: %w", err)
	}
	return Collect(c.Context, c.App.Writer, cfg.Collect)
}

// configureLogging applies the global logging flags before any command runs.
func configureLogging(c *cli.Context) error {
	logger.SetOutput(c.App.ErrWriter)
	logger.SetLevel(logrus.InfoLevel)
	if c.Bool("verbose") {
		logger.SetLevel(logrus.DebugLevel)
	}
	return nil
}

var App = &cli.App{
	Name:     "runsort",
	Usage:    "Adaptive run-merging sort with a benchmark harness",
	Version:  version.Version,
	Compiled: parseDate(version.Date),
	Flags: []cli.Flag{
		verboseFlag,
	},
	Before: configureLogging,
	Commands: []*cli.Command{
		{
			Name:  "bench",
			Usage: "Compare timsort against the baseline sorts on generated inputs",
			Flags: []cli.Flag{
				// Configuration
				configFlag,
				// Benchmark tuning
				iterationsFlag,
				seedFlag,
				sizeFlag,
				scenarioFlag,
				algorithmsFlag,
				// Output flags
				jsonPathFlag,
				plotPathFlag,
				compactFlag,
				plainFlag,
				tuiFlag,
			},
			Action: handleBenchCommand,
		},
		{
			Name:  "sort",
			Usage: "Sort integers read one per line",
			Flags: []cli.Flag{
				inputFlag,
				outputFlag,
				sortAlgorithmFlag,
				reverseFlag,
				statsFlag,
			},
			Action: handleSortCommand,
		},
		{
			Name:  "collect",
			Usage: "Receive log events over lumberjack and emit them ordered by timestamp",
			Flags: []cli.Flag{
				configFlag,
				portFlag,
				countFlag,
				timeoutFlag,
				outputFlag,
			},
			Action: handleCollectCommand,
		},
	},
}
