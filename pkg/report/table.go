// Package report presents benchmark series as terminal tables and charts.
package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/willbeason/mandelbench/pkg/bench"
	"github.com/willbeason/mandelbench/pkg/fractal"
	"github.com/willbeason/mandelbench/pkg/session"
	"github.com/willbeason/mandelbench/pkg/store"
)

var (
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Right)
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFF")).
			Background(lipgloss.Color("#7D56F4")).Padding(0, 1)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...)
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}

// SeriesTable renders one row per thread count.
func SeriesTable(series *bench.Series) string {
	t := newTable("THREADS", "SPEEDUP", "EFFICIENCY")
	for _, e := range series.Entries() {
		t.Row(strconv.Itoa(e.Threads), formatValue(e.Speedup), formatValue(e.Efficiency))
	}
	return t.String()
}

// Summary describes a finished render: parameters, timings and the series.
func Summary(res *session.Result) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Benchmark"))
	sb.WriteString("\n")

	line := func(label, value string) {
		sb.WriteString(labelStyle.Render(fmt.Sprintf("%-12s", label)))
		sb.WriteString(value)
		sb.WriteString("\n")
	}

	cfg := res.Config
	line("image", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height))
	line("iterations", strconv.Itoa(cfg.MaxIterations))
	line("power", strconv.Itoa(cfg.Power))
	line("viewport", res.Viewport.String())
	line("sequential", formatSeconds(res.Baseline))
	if n := res.Series.Len(); n > 0 {
		last := res.Series.At(n - 1)
		line("parallel", fmt.Sprintf("%s (%d threads)", formatSeconds(res.Parallel), last.Threads))
	}
	if peak, ok := res.Series.Peak(); ok {
		line("peak", fmt.Sprintf("%sx at %d threads", formatValue(peak.Speedup), peak.Threads))
	}

	sb.WriteString(SeriesTable(res.Series))
	return sb.String()
}

func formatSeconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', 4, 64) + " s"
}

// RecordsTable lays stored runs side by side, one column per run and one row
// per thread count. Runs shorter than the longest are padded with "-".
func RecordsTable(records []store.Record, values func(store.Record) []float64) string {
	headers := []string{"THREADS"}
	rows := 0
	for i, rec := range records {
		headers = append(headers, RunName(i, rec))
		rows = max(rows, len(values(rec)))
	}

	t := newTable(headers...)
	for r := 0; r < rows; r++ {
		row := []string{strconv.Itoa(r + 1)}
		for _, rec := range records {
			v := values(rec)
			if r < len(v) {
				row = append(row, formatValue(v[r]))
			} else {
				row = append(row, "-")
			}
		}
		t.Row(row...)
	}
	return t.String()
}

// Speedups and Efficiencies select the columns for RecordsTable.
func Speedups(r store.Record) []float64 { return r.Speedup }
func Efficiencies(r store.Record) []float64 { return r.Efficiency }

// RunName labels the i-th stored run.
func RunName(i int, rec store.Record) string {
	if rec.ID != 0 {
		return fmt.Sprintf("Run %d", rec.ID)
	}
	return fmt.Sprintf("Data %d", i+1)
}

// PresetsTable lists named presets with their render parameters.
func PresetsTable(presets []fractal.Preset) string {
	t := newTable("NAME", "SIZE", "ITERATIONS", "POWER", "VIEWPORT")
	t.StyleFunc(func(row, col int) lipgloss.Style {
		switch {
		case row == table.HeaderRow:
			return headerStyle
		case col == 0 || col == 4:
			return cellStyle.Align(lipgloss.Left)
		default:
			return cellStyle
		}
	})
	for _, p := range presets {
		t.Row(
			p.Name,
			fmt.Sprintf("%dx%d", p.Config.Width, p.Config.Height),
			strconv.Itoa(p.Config.MaxIterations),
			strconv.Itoa(p.Config.Power),
			p.Viewport.String(),
		)
	}
	return t.String()
}
