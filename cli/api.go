package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"slices"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/ChristianF88/runsort/bench"
	"github.com/ChristianF88/runsort/config"
	"github.com/ChristianF88/runsort/datagen"
	"github.com/ChristianF88/runsort/ingestor"
	"github.com/ChristianF88/runsort/output"
	"github.com/ChristianF88/runsort/timsort"
	"github.com/ChristianF88/runsort/tui"
	"github.com/sirupsen/logrus"
)

// logger carries diagnostics to stderr; results go to the command's writer.
var logger = logrus.New()

// ============================================================================
// CONFIGURATION STRUCTS
// ============================================================================

// OutputConfig contains output formatting options
type OutputConfig struct {
	Compact bool
	Plain   bool
	TUI     bool
}

// SortOptions configures the sort command.
type SortOptions struct {
	Input     string
	Output    string
	Algorithm string
	Reverse   bool
	Stats     bool
}

// ============================================================================
// MAIN ENTRY POINTS
// ============================================================================

// Bench runs a benchmark configuration and writes the report to w.
func Bench(w io.Writer, cfg *config.Config, outputConfig OutputConfig) error {
	if outputConfig.TUI {
		return executeTUI(cfg)
	}

	result, err := bench.NewRunner(cfg, datagen.NewCache(), logger).Run()
	if err != nil {
		return fmt.Errorf("benchmark failed: %w", err)
	}

	writeArtifacts(result, cfg.Bench, logger)
	if err := outputResult(w, result, outputConfig); err != nil {
		return err
	}

	if result.HasErrors() {
		return fmt.Errorf("benchmark finished with %d errors", len(result.Errors))
	}
	return nil
}

// SortNumbers reads integers from opts.Input (or stdin), sorts them and
// writes them one per line to opts.Output (or stdout).
func SortNumbers(stdin io.Reader, stdout io.Writer, opts SortOptions) error {
	if opts.Stats && opts.Algorithm != "timsort" {
		return fmt.Errorf("--stats requires --algorithm timsort, got %s", opts.Algorithm)
	}
	algos, err := bench.Lookup([]string{opts.Algorithm})
	if err != nil {
		return err
	}
	algo := algos[0]

	in := stdin
	if opts.Input != "" && opts.Input != "-" {
		f, err := os.Open(opts.Input)
		if err != nil {
			return fmt.Errorf("failed to open input: %w", err)
		}
		defer f.Close()
		in = f
	}

	values, err := readInts(in)
	if err != nil {
		return err
	}

	start := time.Now()
	if opts.Stats {
		less := func(a, b int) bool { return a < b }
		if opts.Reverse {
			less = func(a, b int) bool { return b < a }
		}
		stats := timsort.SortWithStats(values, less)
		logger.WithFields(logrus.Fields{
			"n":             stats.Len,
			"min_run":       stats.MinRun,
			"runs":          stats.Runs,
			"reversed_runs": stats.ReversedRuns,
			"forced_runs":   stats.ForcedRuns,
			"merges":        stats.Merges,
			"max_stack":     stats.MaxStack,
			"buffer_cap":    stats.BufferCap,
			"took":          time.Since(start),
		}).Info("timsort statistics")
	} else {
		algo.Sort(values)
		if opts.Reverse {
			slices.Reverse(values)
		}
		logger.WithFields(logrus.Fields{
			"algorithm": algo.Name,
			"n":         len(values),
			"took":      time.Since(start),
		}).Debug("Sorted input")
	}

	if opts.Output != "" {
		return writeOutputFile(opts.Output, func(w io.Writer) error { return writeInts(w, values) })
	}
	return writeInts(stdout, values)
}

// Collect receives events until cfg.Count arrived, cfg.Timeout elapsed, the
// shipper disconnected or ctx was cancelled, then writes them sorted by
// timestamp as JSON lines.
func Collect(ctx context.Context, w io.Writer, cfg *config.CollectConfig) error {
	if ctx == nil {
		ctx = context.Background()
	}

	ing, err := ingestor.NewTCPIngestor(
		":"+cfg.Port,
		5*time.Second, // read timeout: avoid client disconnects
	)
	if err != nil {
		return fmt.Errorf("error creating ingestor: %w", err)
	}
	defer ing.Close()

	if err := ing.Accept(); err != nil {
		return fmt.Errorf("error accepting connection: %w", err)
	}
	logger.WithField("addr", ing.Addr().String()).Info("Waiting for shipper to send events...")

	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	events, err := collectEvents(ctx, ing, cfg.Count, stop)
	if err != nil {
		return err
	}

	sortStart := time.Now()
	ingestor.SortEvents(events)
	logger.WithFields(logrus.Fields{
		"events":  len(events),
		"skipped": ing.Skipped(),
		"took":    time.Since(sortStart),
	}).Info("Sorted events")

	if cfg.OutputPath != "" {
		return writeOutputFile(cfg.OutputPath, func(w io.Writer) error { return writeEvents(w, events) })
	}
	return writeEvents(w, events)
}

// ============================================================================
// CORE EXECUTION LOGIC
// ============================================================================

// batchSource is the part of the ingestor the collect loop needs.
type batchSource interface {
	ReadBatch() ([]ingestor.Event, error)
	IsClosed() bool
}

func collectEvents(ctx context.Context, src batchSource, limit int, stop <-chan os.Signal) ([]ingestor.Event, error) {
	var events []ingestor.Event
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for len(events) < limit {
		// A shipper that never pauses must not outlive the deadline.
		if stopRequested(ctx, stop, len(events)) {
			return events, nil
		}

		batch, err := src.ReadBatch()
		if err != nil {
			return events, fmt.Errorf("read error: %w", err)
		}
		events = append(events, batch...)
		if len(batch) > 0 {
			logger.WithField("total", len(events)).Debug("Received batch")
			continue
		}
		if src.IsClosed() {
			logger.Info("Ingestor closed, sorting what arrived")
			break
		}

		select {
		case <-ctx.Done():
			logDone(ctx, len(events))
			return events, nil
		case <-stop:
			logger.Info("Received shutdown signal...")
			return events, nil
		case <-ticker.C:
		}
	}

	if len(events) > limit {
		events = events[:limit]
	}
	return events, nil
}

// stopRequested polls ctx and stop without blocking.
func stopRequested(ctx context.Context, stop <-chan os.Signal, received int) bool {
	select {
	case <-ctx.Done():
		logDone(ctx, received)
		return true
	case <-stop:
		logger.Info("Received shutdown signal...")
		return true
	default:
		return false
	}
}

func logDone(ctx context.Context, received int) {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		logger.WithField("events", received).Warn("Timeout reached before count")
	}
}

// executeTUI runs the benchmark in the background and shows the results in
// the terminal UI once they are ready.
func executeTUI(cfg *config.Config) error {
	app := tui.NewApp()

	// Log lines would corrupt the screen.
	quiet := logrus.New()
	quiet.SetOutput(io.Discard)

	go func() {
		result, err := bench.NewRunner(cfg, datagen.NewCache(), quiet).Run()
		if err != nil {
			app.ShowError(fmt.Sprintf("Benchmark failed: %v", err))
			return
		}
		if result == nil {
			app.ShowError("Benchmark completed but returned no results")
			return
		}
		writeArtifacts(result, cfg.Bench, quiet)
		app.SetResults(result)
	}()

	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// writeArtifacts saves the optional JSON report and timing chart. Failures
// are recorded in the report rather than aborting the run.
func writeArtifacts(result *output.JSONOutput, cfg *config.BenchConfig, log logrus.FieldLogger) {
	if cfg.PlotPath != "" {
		plotStart := time.Now()
		if err := output.PlotTimings(result, cfg.PlotPath); err != nil {
			result.AddError("plot", fmt.Sprintf("failed to write timing chart: %v", err), 1)
		} else {
			result.AddWarning("info", fmt.Sprintf("Timing chart generated in %v at %s", time.Since(plotStart), cfg.PlotPath), 0)
		}
	}

	if cfg.JSONPath != "" {
		data, err := result.ToJSON()
		if err == nil {
			err = os.WriteFile(cfg.JSONPath, data, 0o644)
		}
		if err != nil {
			result.AddError("json_write", fmt.Sprintf("failed to write JSON report: %v", err), 1)
		} else {
			log.WithField("path", cfg.JSONPath).Info("Wrote JSON report")
		}
	}
}

// ============================================================================
// HELPER FUNCTIONS
// ============================================================================

// readInts parses one integer per line. Blank lines are skipped.
func readInts(r io.Reader) ([]int, error) {
	var values []int
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		v, err := strconv.Atoi(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid integer %q: %w", lineNo, line, err)
		}
		values = append(values, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return values, nil
}

// writeOutputFile creates path, hands it to write and reports the first of
// the write and close errors.
func writeOutputFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close output: %w", cerr)
		}
	}()
	return write(f)
}

func writeInts(w io.Writer, values []int) error {
	bw := bufio.NewWriter(w)
	buf := make([]byte, 0, 24)
	for _, v := range values {
		buf = strconv.AppendInt(buf[:0], int64(v), 10)
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return bw.Flush()
}

func writeEvents(w io.Writer, events []ingestor.Event) error {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	for i := range events {
		if err := enc.Encode(&events[i]); err != nil {
			return fmt.Errorf("failed to encode event: %w", err)
		}
	}
	return bw.Flush()
}

// ============================================================================
// OUTPUT FUNCTIONS - Unified output handling
// ============================================================================

// outputResult is the unified output function that handles all output formats
func outputResult(w io.Writer, jsonOutput *output.JSONOutput, outputConfig OutputConfig) error {
	if outputConfig.Plain {
		return output.WritePlain(w, jsonOutput)
	}

	var jsonBytes []byte
	var err error

	if outputConfig.Compact {
		jsonBytes, err = jsonOutput.ToCompactJSON()
	} else {
		jsonBytes, err = jsonOutput.ToJSON()
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(jsonBytes))
	return err
}
