package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
)

// WritePlain writes a human readable rendering of the report.
func WritePlain(w io.Writer, out *JSONOutput) error {
	var b strings.Builder

	fmt.Fprintf(&b, "runsort %s benchmark (%d iterations, seed %d)\n",
		out.Metadata.Version, out.Settings.Iterations, out.Settings.Seed)

	for _, sc := range out.Scenarios {
		fmt.Fprintf(&b, "\n--- %s: %s, %s elements ---\n", sc.Name, sc.Kind, humanize.Comma(int64(sc.Size)))
		if sc.RunStats != nil {
			rs := sc.RunStats
			fmt.Fprintf(&b, "timsort runs: %d (minRun %d, %d reversed, %d extended), merges: %d, max stack: %d\n",
				rs.Runs, rs.MinRun, rs.ReversedRuns, rs.ForcedRuns, rs.Merges, rs.MaxStack)
		}
		for _, m := range sc.Measurements {
			b.WriteString(FormatMeasurement(m))
			b.WriteByte('\n')
		}
	}

	if len(out.Warnings) > 0 {
		b.WriteString("\nWarnings:\n")
		for _, w := range out.Warnings {
			fmt.Fprintf(&b, "  [%s] %s\n", w.Type, w.Message)
		}
	}
	if len(out.Errors) > 0 {
		b.WriteString("\nErrors:\n")
		for _, e := range out.Errors {
			fmt.Fprintf(&b, "  [%s] %s\n", e.Type, e.Message)
		}
	}

	fmt.Fprintf(&b, "\nCompleted in %s ms\n", humanize.Comma(out.Metadata.DurationMS))

	_, err := io.WriteString(w, b.String())
	return err
}

// FormatMeasurement renders one timing line.
func FormatMeasurement(m AlgorithmResult) string {
	if m.Skipped {
		return fmt.Sprintf("%s: skipped (%s)", m.Algorithm, m.SkipReason)
	}
	line := fmt.Sprintf("%s: Average time over %d runs: %s microseconds (min %s, max %s)",
		m.Algorithm, m.Iterations,
		humanize.CommafWithDigits(m.AvgUS, 1),
		humanize.CommafWithDigits(m.MinUS, 1),
		humanize.CommafWithDigits(m.MaxUS, 1))
	if !m.Verified {
		line += " [UNSORTED OUTPUT]"
	}
	return line
}
