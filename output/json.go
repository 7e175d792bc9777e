package output

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/ChristianF88/runsort/version"
)

// JSONOutput represents the complete benchmark report
type JSONOutput struct {
	Metadata  Metadata         `json:"metadata"`
	Settings  Settings         `json:"settings"`
	Scenarios []ScenarioResult `json:"scenarios"`
	Warnings  []Warning        `json:"warnings"`
	Errors    []Error          `json:"errors"`

	// Mutex for thread-safe warning/error appending
	mu sync.Mutex `json:"-"`
}

// Metadata contains information about the benchmark run
type Metadata struct {
	GeneratedAt  time.Time `json:"generated_at"`
	AnalysisType string    `json:"analysis_type"`
	Version      string    `json:"version"`
	DurationMS   int64     `json:"duration_ms"`
}

// Settings echoes the parameters the run was made with
type Settings struct {
	Iterations int      `json:"iterations"`
	Seed       int64    `json:"seed"`
	MaxValue   int      `json:"max_value"`
	Algorithms []string `json:"algorithms"`
}

// ScenarioResult holds all measurements for one generated input
type ScenarioResult struct {
	Name         string            `json:"name"`
	Kind         string            `json:"kind"`
	Size         int               `json:"size"`
	GenerateUS   int64             `json:"generate_us"`
	RunStats     *RunStats         `json:"run_stats,omitempty"`
	Measurements []AlgorithmResult `json:"measurements"`
}

// RunStats describes how timsort decomposed the input
type RunStats struct {
	MinRun       int `json:"min_run"`
	Runs         int `json:"runs"`
	ReversedRuns int `json:"reversed_runs"`
	ForcedRuns   int `json:"forced_runs"`
	Merges       int `json:"merges"`
	MaxStack     int `json:"max_stack"`
	BufferCap    int `json:"buffer_cap"`
}

// AlgorithmResult is the timing of one algorithm on one input
type AlgorithmResult struct {
	Algorithm  string  `json:"algorithm"`
	Iterations int     `json:"iterations"`
	AvgUS      float64 `json:"avg_us"`
	MinUS      float64 `json:"min_us"`
	MaxUS      float64 `json:"max_us"`
	Verified   bool    `json:"verified"`
	Skipped    bool    `json:"skipped,omitempty"`
	SkipReason string  `json:"skip_reason,omitempty"`
}

// Warning represents a warning message
type Warning struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Count   int    `json:"count,omitempty"`
}

// Error represents an error message
type Error struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Count   int    `json:"count,omitempty"`
}

// NewJSONOutput creates a new JSONOutput with default metadata
func NewJSONOutput(analysisType string, startTime time.Time) *JSONOutput {
	return &JSONOutput{
		Metadata: Metadata{
			GeneratedAt:  time.Now().UTC(),
			AnalysisType: analysisType,
			Version:      version.Version,
			DurationMS:   time.Since(startTime).Milliseconds(),
		},
		Scenarios: []ScenarioResult{},
		Warnings:  []Warning{},
		Errors:    []Error{},
	}
}

// ToJSON converts the output to pretty-printed JSON
func (j *JSONOutput) ToJSON() ([]byte, error) {
	return json.MarshalIndent(j, "", "  ")
}

// ToCompactJSON converts the output to compact JSON
func (j *JSONOutput) ToCompactJSON() ([]byte, error) {
	return json.Marshal(j)
}

// AddWarning adds a warning to the output (thread-safe)
func (j *JSONOutput) AddWarning(warningType, message string, count int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Warnings = append(j.Warnings, Warning{
		Type:    warningType,
		Message: message,
		Count:   count,
	})
}

// AddError adds an error to the output (thread-safe)
func (j *JSONOutput) AddError(errorType, message string, count int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Errors = append(j.Errors, Error{
		Type:    errorType,
		Message: message,
		Count:   count,
	})
}

// HasErrors reports whether any error was recorded
func (j *JSONOutput) HasErrors() bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	return len(j.Errors) > 0
}

// UpdateDuration updates the duration in metadata
func (j *JSONOutput) UpdateDuration(startTime time.Time) {
	j.Metadata.DurationMS = time.Since(startTime).Milliseconds()
}

// AlgorithmNames returns every algorithm that appears in the report, in
// first-seen order.
func (j *JSONOutput) AlgorithmNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, sc := range j.Scenarios {
		for _, m := range sc.Measurements {
			if !seen[m.Algorithm] {
				seen[m.Algorithm] = true
				names = append(names, m.Algorithm)
			}
		}
	}
	return names
}

// Measurement returns the result for algorithm in this scenario.
func (s *ScenarioResult) Measurement(algorithm string) (AlgorithmResult, bool) {
	for _, m := range s.Measurements {
		if m.Algorithm == algorithm {
			return m, true
		}
	}
	return AlgorithmResult{}, false
}
