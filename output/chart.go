package output

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

// NewTimingChart builds a grouped bar chart of average sort time, one series
// per algorithm and one category per scenario. Skipped measurements leave a
// gap.
func NewTimingChart(out *JSONOutput) *charts.Bar {
	scenarios := make([]string, len(out.Scenarios))
	for i, sc := range out.Scenarios {
		scenarios[i] = fmt.Sprintf("%s (n=%d)", sc.Name, sc.Size)
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle:       "Sort timings",
			Width:           "180vh",
			Height:          "90vh",
			Theme:           types.ThemeVintage,
			BackgroundColor: "transparent",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Average sort time per scenario",
			Subtitle: fmt.Sprintf("%d iterations, seed %d", out.Settings.Iterations, out.Settings.Seed),
			Left:     "center",
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(true),
			Top:  "bottom",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "microseconds",
			Type: "value",
		}),
	)
	bar.SetXAxis(scenarios)

	for _, algo := range out.AlgorithmNames() {
		data := make([]opts.BarData, len(out.Scenarios))
		for i := range out.Scenarios {
			m, ok := out.Scenarios[i].Measurement(algo)
			if !ok || m.Skipped {
				data[i] = opts.BarData{Value: "-"}
				continue
			}
			data[i] = opts.BarData{Name: algo, Value: m.AvgUS}
		}
		bar.AddSeries(algo, data)
	}
	return bar
}

// PlotTimings renders the timing chart to an HTML file
func PlotTimings(out *JSONOutput, filename string) error {
	page := components.NewPage()
	page.SetLayout(components.PageFlexLayout)
	page.AddCharts(NewTimingChart(out))

	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("could not create chart file %s: %w", filename, err)
	}
	defer f.Close()

	if err := page.Render(f); err != nil {
		return fmt.Errorf("rendering chart: %w", err)
	}
	return nil
}
