package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/ChristianF88/runsort/datagen"
)

func TestLoadConfig(t *testing.T) {
	testConfigContent := `
[bench]
iterations = 3
seed = 7
maxValue = 500
algorithms = ["timsort", "radix"]
quicksortLimit = 10000

[scenarios.big_random]
kind = "random"
size = 20000

[scenarios.almost]
kind = "nearly-sorted"
size = 1000
swapFraction = 0.05

[scenarios.blocks]
kind = "many-small-runs"
size = 1000
runSize = 50

[collect]
port = "6000"
count = 10
timeout = "5s"
`
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "bench.toml")
	if err := os.WriteFile(configPath, []byte(testConfigContent), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Bench.Iterations != 3 {
		t.Errorf("Expected iterations 3, got %d", cfg.Bench.Iterations)
	}
	if cfg.Bench.Seed != 7 {
		t.Errorf("Expected seed 7, got %d", cfg.Bench.Seed)
	}
	if cfg.Bench.MaxValue != 500 {
		t.Errorf("Expected maxValue 500, got %d", cfg.Bench.MaxValue)
	}
	if !slices.Equal(cfg.Bench.Algorithms, []string{"timsort", "radix"}) {
		t.Errorf("Unexpected algorithms %v", cfg.Bench.Algorithms)
	}
	if cfg.Bench.QuicksortLimit != 10000 {
		t.Errorf("Expected quicksortLimit 10000, got %d", cfg.Bench.QuicksortLimit)
	}

	var names []string
	for _, sc := range cfg.Scenarios {
		names = append(names, sc.Name)
	}
	if !slices.Equal(names, []string{"big_random", "almost", "blocks"}) {
		t.Errorf("Expected scenarios in file order, got %v", names)
	}
	if cfg.Scenarios[1].SwapFraction != 0.05 {
		t.Errorf("Expected swapFraction 0.05, got %g", cfg.Scenarios[1].SwapFraction)
	}
	if cfg.Scenarios[2].RunSize != 50 {
		t.Errorf("Expected runSize 50, got %d", cfg.Scenarios[2].RunSize)
	}

	if cfg.Collect.Port != "6000" || cfg.Collect.Count != 10 || cfg.Collect.Timeout != 5*time.Second {
		t.Errorf("Unexpected collect config %+v", cfg.Collect)
	}

	if err := cfg.ValidateBench(); err != nil {
		t.Errorf("Expected valid bench config, got %v", err)
	}
	if err := cfg.ValidateCollect(); err != nil {
		t.Errorf("Expected valid collect config, got %v", err)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestParseConfig_Defaults(t *testing.T) {
	cfg, err := ParseConfig("")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	def := Default()
	if cfg.Bench.Iterations != def.Bench.Iterations || cfg.Bench.Seed != def.Bench.Seed {
		t.Errorf("Expected default bench config, got %+v", cfg.Bench)
	}
	if len(cfg.Scenarios) != 4 {
		t.Fatalf("Expected 4 default scenarios, got %d", len(cfg.Scenarios))
	}
	if cfg.Scenarios[0].Kind != string(datagen.KindRandom) || cfg.Scenarios[0].Size != DefaultRandomSize {
		t.Errorf("Unexpected first default scenario %+v", cfg.Scenarios[0])
	}
	if cfg.Collect.Timeout != DefaultCollectTimeout {
		t.Errorf("Expected default collect timeout, got %v", cfg.Collect.Timeout)
	}
	if err := cfg.ValidateBench(); err != nil {
		t.Errorf("Default config should validate, got %v", err)
	}
}

func TestParseConfig_PartialBenchKeepsDefaults(t *testing.T) {
	cfg, err := ParseConfig("[bench]\niterations = 9\n")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.Bench.Iterations != 9 {
		t.Errorf("Expected iterations 9, got %d", cfg.Bench.Iterations)
	}
	if !slices.Equal(cfg.Bench.Algorithms, DefaultAlgorithms) {
		t.Errorf("Expected default algorithms, got %v", cfg.Bench.Algorithms)
	}
	// Defaults must not be shared between configs.
	cfg.Bench.Algorithms[0] = "changed"
	if DefaultAlgorithms[0] == "changed" {
		t.Error("default algorithm list was mutated")
	}
}

func TestParseConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"invalid_toml", "[bench\niterations = 1"},
		{"unknown_section", "[global]\nlogFile = \"x\""},
		{"bench_not_table", "bench = 5"},
		{"scenario_not_table", "[scenarios]\nrandom = 5"},
		{"bad_algorithm_type", "[bench]\nalgorithms = [1, 2]"},
		{"bad_timeout", "[collect]\ntimeout = \"soon\""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseConfig(tt.content); err == nil {
				t.Errorf("Expected error for %s", tt.name)
			}
		})
	}
}

func TestValidateBench(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero_iterations", func(c *Config) { c.Bench.Iterations = 0 }},
		{"negative_max_value", func(c *Config) { c.Bench.MaxValue = -1 }},
		{"no_algorithms", func(c *Config) { c.Bench.Algorithms = nil }},
		{"unknown_algorithm", func(c *Config) { c.Bench.Algorithms = []string{"timsort", "bogus"} }},
		{"no_scenarios", func(c *Config) { c.Scenarios = nil }},
		{"bad_kind", func(c *Config) { c.Scenarios[0].Kind = "sorted" }},
		{"zero_size", func(c *Config) { c.Scenarios[0].Size = 0 }},
		{"bad_swap_fraction", func(c *Config) { c.Scenarios[1].SwapFraction = 2 }},
		{"negative_run_size", func(c *Config) { c.Scenarios[2].RunSize = -5 }},
		{"missing_json_dir", func(c *Config) { c.Bench.JSONPath = "/nonexistent/dir/out.json" }},
		{"missing_plot_dir", func(c *Config) { c.Bench.PlotPath = "/nonexistent/dir/plot.html" }},
		{"nil_bench", func(c *Config) { c.Bench = nil }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.ValidateBench(); err == nil {
				t.Errorf("Expected validation error for %s", tt.name)
			}
		})
	}
}

func TestParseConfig_SwapFraction(t *testing.T) {
	cfg, err := ParseConfig(`
[scenarios.sorted]
kind = "nearly-sorted"
size = 100
swapFraction = 0

[scenarios.defaulted]
kind = "nearly-sorted"
size = 100

[scenarios.whole]
kind = "nearly-sorted"
size = 100
swapFraction = 1

[scenarios.plain]
kind = "random"
size = 100
`)
	if err != nil {
		t.Fatalf("ParseConfig failed: %v", err)
	}

	want := []float64{0, datagen.DefaultSwapFraction, 1, 0}
	for i, sc := range cfg.Scenarios {
		if sc.SwapFraction != want[i] {
			t.Errorf("scenario %s: swapFraction = %g, want %g", sc.Name, sc.SwapFraction, want[i])
		}
	}
	if err := cfg.ValidateBench(); err != nil {
		t.Errorf("Expected valid config, got %v", err)
	}

	data, err := datagen.Generate(cfg.Scenarios[0].DataSpec(cfg.Bench))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !slices.IsSorted(data) {
		t.Error("explicit swapFraction = 0 should produce sorted input")
	}
}

func TestValidateBench_AlgorithmNames(t *testing.T) {
	cfg, err := ParseConfig("[bench]\nalgorithms = [\"timsort\", \"bogus\"]\n")
	if err != nil {
		t.Fatalf("ParseConfig failed: %v", err)
	}
	err = cfg.ValidateBench()
	if err == nil {
		t.Fatal("Expected unknown algorithm to be rejected at validation")
	}
	if want := `unknown algorithm "bogus"`; !strings.Contains(err.Error(), want) {
		t.Errorf("error = %q, want it to contain %q", err, want)
	}

	cfg = Default()
	cfg.Bench.Algorithms = slices.Clone(KnownAlgorithms)
	if err := cfg.ValidateBench(); err != nil {
		t.Errorf("Every known algorithm should validate, got %v", err)
	}
}

func TestValidateCollect(t *testing.T) {
	cfg := Default()
	if err := cfg.ValidateCollect(); err != nil {
		t.Fatalf("Default collect config should validate, got %v", err)
	}

	cfg.Collect.Count = 0
	if err := cfg.ValidateCollect(); err == nil {
		t.Error("Expected error for zero count")
	}

	cfg = Default()
	cfg.Collect.Port = ""
	if err := cfg.ValidateCollect(); err == nil {
		t.Error("Expected error for empty port")
	}

	cfg = Default()
	cfg.Collect.Timeout = 0
	if err := cfg.ValidateCollect(); err == nil {
		t.Error("Expected error for zero timeout")
	}
}

func TestScenarioDataSpec(t *testing.T) {
	sc := &ScenarioConfig{Name: "x", Kind: "nearly-sorted", Size: 10, SwapFraction: 0.2}
	spec := sc.DataSpec(&BenchConfig{Seed: 3, MaxValue: 99})
	want := datagen.Spec{Kind: datagen.KindNearlySorted, Size: 10, Seed: 3, MaxValue: 99, SwapFraction: 0.2}
	if spec != want {
		t.Errorf("DataSpec() = %+v, want %+v", spec, want)
	}
}
