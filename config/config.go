package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/ChristianF88/runsort/datagen"
)

// Defaults reproduce the reference benchmark: one large random input, three
// small structured inputs, five timed iterations per algorithm.
const (
	DefaultIterations     = 5
	DefaultSeed           = 42
	DefaultRandomSize     = 50000
	DefaultSpecialSize    = 1000
	DefaultQuicksortLimit = 200000
	DefaultCollectPort    = "5044"
	DefaultCollectCount   = 1000
	DefaultCollectTimeout = 30 * time.Second
)

// DefaultAlgorithms is the comparison set used when none is configured.
var DefaultAlgorithms = []string{"std", "stable", "timsort", "quicksort"}

// KnownAlgorithms lists every name the bench registry resolves, in registry
// order.
var KnownAlgorithms = []string{"std", "stable", "timsort", "quicksort", "radix"}

type BenchConfig struct {
	Iterations     int      `toml:"iterations"`
	Seed           int64    `toml:"seed"`
	MaxValue       int      `toml:"maxValue"`
	Algorithms     []string `toml:"algorithms"`
	QuicksortLimit int      `toml:"quicksortLimit"`
	JSONPath       string   `toml:"jsonPath"`
	PlotPath       string   `toml:"plotPath"`
}

// ScenarioConfig describes one generated input. Name is the TOML table name.
type ScenarioConfig struct {
	Name         string
	Kind         string  `toml:"kind"`
	Size         int     `toml:"size"`
	SwapFraction float64 `toml:"swapFraction"`
	RunSize      int     `toml:"runSize"`
}

type CollectConfig struct {
	Port       string        `toml:"port"`
	Count      int           `toml:"count"`
	Timeout    time.Duration `toml:"timeout"`
	OutputPath string        `toml:"outputPath"`
}

type Config struct {
	Bench     *BenchConfig
	Scenarios []*ScenarioConfig // in file order
	Collect   *CollectConfig
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Bench:   defaultBenchConfig(),
		Collect: defaultCollectConfig(),
		Scenarios: []*ScenarioConfig{
			{Name: "random", Kind: string(datagen.KindRandom), Size: DefaultRandomSize},
			{Name: "nearly_sorted", Kind: string(datagen.KindNearlySorted), Size: DefaultSpecialSize, SwapFraction: datagen.DefaultSwapFraction},
			{Name: "many_small_runs", Kind: string(datagen.KindManySmallRuns), Size: DefaultSpecialSize, RunSize: datagen.DefaultRunSize},
			{Name: "reversed", Kind: string(datagen.KindReversed), Size: DefaultSpecialSize},
		},
	}
}

func defaultBenchConfig() *BenchConfig {
	return &BenchConfig{
		Iterations:     DefaultIterations,
		Seed:           DefaultSeed,
		MaxValue:       datagen.DefaultMaxValue,
		Algorithms:     slices.Clone(DefaultAlgorithms),
		QuicksortLimit: DefaultQuicksortLimit,
	}
}

func defaultCollectConfig() *CollectConfig {
	return &CollectConfig{
		Port:    DefaultCollectPort,
		Count:   DefaultCollectCount,
		Timeout: DefaultCollectTimeout,
	}
}

func LoadConfig(configPath string) (*Config, error) {
	configData, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return ParseConfig(string(configData))
}

// ParseConfig decodes TOML configuration text. Sections that are missing get
// their defaults; scenarios keep the order in which they appear in the file.
func ParseConfig(data string) (*Config, error) {
	var rawConfig map[string]any
	md, err := toml.Decode(data, &rawConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config := &Config{}
	for key, value := range rawConfig {
		switch key {
		case "bench":
			benchMap, ok := value.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("bench must be a table")
			}
			if config.Bench, err = parseBenchConfig(benchMap); err != nil {
				return nil, err
			}
		case "collect":
			collectMap, ok := value.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("collect must be a table")
			}
			if config.Collect, err = parseCollectConfig(collectMap); err != nil {
				return nil, err
			}
		case "scenarios":
			scenariosMap, ok := value.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("scenarios must be a table")
			}
			for _, name := range scenarioOrder(md) {
				scenarioMap, ok := scenariosMap[name].(map[string]any)
				if !ok {
					return nil, fmt.Errorf("scenario %q must be a table", name)
				}
				config.Scenarios = append(config.Scenarios, parseScenarioConfig(name, scenarioMap))
			}
		default:
			return nil, fmt.Errorf("unknown config section %q", key)
		}
	}

	if config.Bench == nil {
		config.Bench = defaultBenchConfig()
	}
	if config.Collect == nil {
		config.Collect = defaultCollectConfig()
	}
	if len(config.Scenarios) == 0 {
		config.Scenarios = Default().Scenarios
	}

	return config, nil
}

// scenarioOrder lists the [scenarios.<name>] tables in file order.
func scenarioOrder(md toml.MetaData) []string {
	var names []string
	for _, key := range md.Keys() {
		if len(key) == 2 && key[0] == "scenarios" {
			names = append(names, key[1])
		}
	}
	return names
}

func parseBenchConfig(m map[string]any) (*BenchConfig, error) {
	config := defaultBenchConfig()
	if v, ok := m["iterations"].(int64); ok {
		config.Iterations = int(v)
	}
	if v, ok := m["seed"].(int64); ok {
		config.Seed = v
	}
	if v, ok := m["maxValue"].(int64); ok {
		config.MaxValue = int(v)
	}
	if v, ok := m["quicksortLimit"].(int64); ok {
		config.QuicksortLimit = int(v)
	}
	if v, ok := m["jsonPath"].(string); ok {
		config.JSONPath = v
	}
	if v, ok := m["plotPath"].(string); ok {
		config.PlotPath = v
	}
	if v, ok := m["algorithms"].([]any); ok {
		config.Algorithms = config.Algorithms[:0]
		for _, item := range v {
			name, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("algorithms must be strings, got %T", item)
			}
			config.Algorithms = append(config.Algorithms, name)
		}
	}
	return config, nil
}

func parseScenarioConfig(name string, m map[string]any) *ScenarioConfig {
	config := &ScenarioConfig{Name: name}
	if v, ok := m["kind"].(string); ok {
		config.Kind = v
	}
	if v, ok := m["size"].(int64); ok {
		config.Size = int(v)
	}
	switch v := m["swapFraction"].(type) {
	case float64:
		config.SwapFraction = v
	case int64:
		config.SwapFraction = float64(v)
	case nil:
		if config.Kind == string(datagen.KindNearlySorted) {
			config.SwapFraction = datagen.DefaultSwapFraction
		}
	}
	if v, ok := m["runSize"].(int64); ok {
		config.RunSize = int(v)
	}
	return config
}

func parseCollectConfig(m map[string]any) (*CollectConfig, error) {
	config := defaultCollectConfig()
	if v, ok := m["port"].(string); ok {
		config.Port = v
	} else if v, ok := m["port"].(int64); ok {
		config.Port = fmt.Sprint(v)
	}
	if v, ok := m["count"].(int64); ok {
		config.Count = int(v)
	}
	if v, ok := m["timeout"].(string); ok {
		duration, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid timeout %q: %w", v, err)
		}
		config.Timeout = duration
	}
	if v, ok := m["outputPath"].(string); ok {
		config.OutputPath = v
	}
	return config, nil
}

// DataSpec converts the scenario into a generator spec.
func (s *ScenarioConfig) DataSpec(bench *BenchConfig) datagen.Spec {
	return datagen.Spec{
		Kind:         datagen.Kind(s.Kind),
		Size:         s.Size,
		Seed:         bench.Seed,
		MaxValue:     bench.MaxValue,
		SwapFraction: s.SwapFraction,
		RunSize:      s.RunSize,
	}
}

// ValidateBench checks the settings needed by the bench command.
func (c *Config) ValidateBench() error {
	if c.Bench == nil {
		return fmt.Errorf("bench configuration section missing")
	}
	if c.Bench.Iterations <= 0 {
		return fmt.Errorf("iterations must be positive, got %d", c.Bench.Iterations)
	}
	if c.Bench.MaxValue < 0 {
		return fmt.Errorf("maxValue must not be negative, got %d", c.Bench.MaxValue)
	}
	if len(c.Bench.Algorithms) == 0 {
		return fmt.Errorf("at least one algorithm is required")
	}
	for _, name := range c.Bench.Algorithms {
		if !slices.Contains(KnownAlgorithms, name) {
			return fmt.Errorf("unknown algorithm %q (valid: %v)", name, KnownAlgorithms)
		}
	}
	if len(c.Scenarios) == 0 {
		return fmt.Errorf("at least one scenario is required")
	}

	for _, sc := range c.Scenarios {
		if _, err := datagen.ParseKind(sc.Kind); err != nil {
			return fmt.Errorf("scenario %q: %w", sc.Name, err)
		}
		if sc.Size <= 0 {
			return fmt.Errorf("scenario %q: size must be positive, got %d", sc.Name, sc.Size)
		}
		if sc.SwapFraction < 0 || sc.SwapFraction > 1 {
			return fmt.Errorf("scenario %q: swapFraction %g outside [0, 1]", sc.Name, sc.SwapFraction)
		}
		if sc.RunSize < 0 {
			return fmt.Errorf("scenario %q: runSize must not be negative, got %d", sc.Name, sc.RunSize)
		}
	}

	if err := validateOutputPath(c.Bench.JSONPath); err != nil {
		return err
	}
	return validateOutputPath(c.Bench.PlotPath)
}

// ValidateCollect checks the settings needed by the collect command.
func (c *Config) ValidateCollect() error {
	if c.Collect == nil {
		return fmt.Errorf("collect configuration section missing")
	}
	if c.Collect.Port == "" {
		return fmt.Errorf("collect port is required")
	}
	if c.Collect.Count <= 0 {
		return fmt.Errorf("collect count must be positive, got %d", c.Collect.Count)
	}
	if c.Collect.Timeout <= 0 {
		return fmt.Errorf("collect timeout must be positive, got %v", c.Collect.Timeout)
	}
	return validateOutputPath(c.Collect.OutputPath)
}

// validateOutputPath checks that the directory of an optional output file exists.
func validateOutputPath(path string) error {
	if path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return fmt.Errorf("output directory does not exist: %s", dir)
	}
	return nil
}
