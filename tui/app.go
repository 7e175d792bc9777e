package tui

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/ChristianF88/runsort/output"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// App is the terminal browser for benchmark results
type App struct {
	app          *tview.Application
	pages        *tview.Pages
	progressView *tview.TextView
	scenarios    *tview.List
	table        *tview.Table
	details      *tview.TextView
	statusBar    *tview.TextView

	// Shared mutable state protected by mu (accessed from background goroutines)
	mu      sync.Mutex
	result  *output.JSONOutput
	current int

	complete atomic.Bool
}

// NewApp creates the TUI. Results are supplied later with SetResults.
func NewApp() *App {
	a := &App{
		app:   tview.NewApplication(),
		pages: tview.NewPages(),
	}
	a.setupUI()
	return a
}

func (a *App) setupUI() {
	a.progressView = tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false).
		SetText("[yellow]▶[white] Running benchmark...")
	a.progressView.SetBorder(true).SetTitle(" runsort Benchmark ").SetTitleAlign(tview.AlignCenter)

	a.scenarios = tview.NewList().ShowSecondaryText(true)
	a.scenarios.SetBorder(true).SetTitle(" Scenarios ").SetTitleAlign(tview.AlignLeft)
	a.scenarios.SetChangedFunc(func(index int, _ string, _ string, _ rune) {
		a.selectScenario(index)
	})

	a.table = tview.NewTable().SetBorders(false).SetFixed(1, 1)
	a.table.SetBorder(true).SetTitle(" Timings ").SetTitleAlign(tview.AlignLeft)

	a.details = tview.NewTextView().SetDynamicColors(true).SetWrap(true)
	a.details.SetBorder(true).SetTitle(" Run Structure ").SetTitleAlign(tview.AlignLeft)

	a.statusBar = tview.NewTextView().
		SetDynamicColors(true).
		SetText("[yellow]Benchmark running...[white] | Press 'q' to quit")

	progress := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(a.progressView, 0, 1, true).
		AddItem(a.statusBar, 1, 0, false)

	right := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(a.table, 0, 2, false).
		AddItem(a.details, 0, 1, false)
	body := tview.NewFlex().SetDirection(tview.FlexColumn).
		AddItem(a.scenarios, 32, 0, true).
		AddItem(right, 0, 1, false)
	results := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(body, 0, 1, true).
		AddItem(a.statusBar, 1, 0, false)

	a.pages.AddPage("progress", progress, true, true)
	a.pages.AddPage("results", results, true, false)

	a.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEscape {
			a.app.Stop()
			return nil
		}
		switch event.Rune() {
		case 'q', 'Q':
			a.app.Stop()
			return nil
		case 'r', 'R':
			if a.complete.Load() {
				a.pages.SwitchToPage("results")
				a.app.SetFocus(a.scenarios)
			}
			return nil
		case 'p', 'P':
			a.pages.SwitchToPage("progress")
			return nil
		}
		return event
	})
	a.app.SetRoot(a.pages, true)
}

// SetResults hands finished results to the UI (safe from any goroutine)
func (a *App) SetResults(result *output.JSONOutput) {
	a.app.QueueUpdateDraw(func() {
		a.showResults(result)
	})
}

// ShowError displays an error on the progress page (safe from any goroutine)
func (a *App) ShowError(message string) {
	a.app.QueueUpdateDraw(func() {
		a.progressView.SetText(fmt.Sprintf("[red]Error:[white] %s", tview.Escape(message)))
		a.statusBar.SetText("[red]Benchmark failed[white] | Press 'q' to quit")
	})
}

// Run blocks until the user quits.
func (a *App) Run() error {
	return a.app.Run()
}

func (a *App) showResults(result *output.JSONOutput) {
	a.mu.Lock()
	a.result = result
	a.current = 0
	a.mu.Unlock()

	a.scenarios.Clear()
	for _, sc := range result.Scenarios {
		a.scenarios.AddItem(sc.Name, fmt.Sprintf("%s, n=%d", sc.Kind, sc.Size), 0, nil)
	}
	a.selectScenario(0)

	a.complete.Store(true)
	a.statusBar.SetText(fmt.Sprintf("[green]Done[white] in %d ms | %d warnings, %d errors | ↑/↓ scenario, 'p' progress, 'q' quit",
		result.Metadata.DurationMS, len(result.Warnings), len(result.Errors)))
	a.progressView.SetText(summaryText(result))
	a.pages.SwitchToPage("results")
	a.app.SetFocus(a.scenarios)
}

func (a *App) selectScenario(index int) {
	a.mu.Lock()
	result := a.result
	if result == nil || index < 0 || index >= len(result.Scenarios) {
		a.mu.Unlock()
		return
	}
	a.current = index
	sc := result.Scenarios[index]
	a.mu.Unlock()

	a.renderTable(sc)
	a.details.SetText(detailsText(sc))
}

var tableHeaders = []string{"Algorithm", "Avg µs", "Min µs", "Max µs", "Relative", "Verified"}

func (a *App) renderTable(sc output.ScenarioResult) {
	a.table.Clear()
	for col, h := range tableHeaders {
		a.table.SetCell(0, col, tview.NewTableCell(h).
			SetTextColor(tcell.ColorYellow).
			SetSelectable(false).
			SetExpansion(1))
	}

	fastest := fastestIndex(sc.Measurements)
	for i, m := range sc.Measurements {
		row := i + 1
		color := tcell.ColorWhite
		if i == fastest {
			color = tcell.ColorGreen
		}
		if m.Skipped {
			a.table.SetCell(row, 0, tview.NewTableCell(m.Algorithm).SetTextColor(tcell.ColorGray))
			a.table.SetCell(row, 1, tview.NewTableCell("skipped").SetTextColor(tcell.ColorGray))
			continue
		}

		relative := "-"
		if fastest >= 0 && sc.Measurements[fastest].AvgUS > 0 {
			relative = fmt.Sprintf("%.2fx", m.AvgUS/sc.Measurements[fastest].AvgUS)
		}
		verified := "yes"
		if !m.Verified {
			verified = "NO"
			color = tcell.ColorRed
		}

		cells := []string{
			m.Algorithm,
			fmt.Sprintf("%.1f", m.AvgUS),
			fmt.Sprintf("%.1f", m.MinUS),
			fmt.Sprintf("%.1f", m.MaxUS),
			relative,
			verified,
		}
		for col, text := range cells {
			a.table.SetCell(row, col, tview.NewTableCell(text).SetTextColor(color))
		}
	}
}

// fastestIndex returns the index of the fastest verified measurement, or -1.
func fastestIndex(ms []output.AlgorithmResult) int {
	best := -1
	for i, m := range ms {
		if m.Skipped || !m.Verified {
			continue
		}
		if best < 0 || m.AvgUS < ms[best].AvgUS {
			best = i
		}
	}
	return best
}

func detailsText(sc output.ScenarioResult) string {
	if sc.RunStats == nil {
		return "[gray]No run statistics recorded"
	}
	rs := sc.RunStats
	var b strings.Builder
	fmt.Fprintf(&b, "[yellow]minRun:[white] %d\n", rs.MinRun)
	fmt.Fprintf(&b, "[yellow]runs:[white] %d (%d reversed, %d extended by insertion sort)\n", rs.Runs, rs.ReversedRuns, rs.ForcedRuns)
	fmt.Fprintf(&b, "[yellow]merges:[white] %d\n", rs.Merges)
	fmt.Fprintf(&b, "[yellow]max stack depth:[white] %d\n", rs.MaxStack)
	fmt.Fprintf(&b, "[yellow]scratch buffer:[white] %d elements\n", rs.BufferCap)
	return b.String()
}

func summaryText(result *output.JSONOutput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[green]Benchmark complete[white] - %d scenarios, %d iterations each\n\n",
		len(result.Scenarios), result.Settings.Iterations)
	for _, w := range result.Warnings {
		fmt.Fprintf(&b, "[yellow]warning[white] %s\n", tview.Escape(w.Message))
	}
	for _, e := range result.Errors {
		fmt.Fprintf(&b, "[red]error[white] %s\n", tview.Escape(e.Message))
	}
	b.WriteString("\nPress 'r' for results")
	return b.String()
}
