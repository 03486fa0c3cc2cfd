package report

import (
	"fmt"
	"image/color"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/willbeason/mandelbench/pkg/bench"
	"github.com/willbeason/mandelbench/pkg/store"
)

// A Line is one named curve on a chart, indexed by thread count.
type Line struct {
	Name    string
	Threads []int
	Values  []float64
}

func (l Line) points() plotter.XYs {
	pts := make(plotter.XYs, len(l.Values))
	for i, v := range l.Values {
		x := i + 1
		if i < len(l.Threads) {
			x = l.Threads[i]
		}
		pts[i].X = float64(x)
		pts[i].Y = v
	}
	return pts
}

func maxThreads(lines []Line) int {
	n := 1
	for _, l := range lines {
		for i := range l.Values {
			x := i + 1
			if i < len(l.Threads) {
				x = l.Threads[i]
			}
			n = max(n, x)
		}
	}
	return n
}

// threadTicks labels every whole thread count.
func threadTicks(n int) plot.ConstantTicks {
	ticks := make([]plot.Tick, 0, n+1)
	for i := 0; i <= n; i++ {
		ticks = append(ticks, plot.Tick{Value: float64(i), Label: fmt.Sprint(i)})
	}
	return ticks
}

func newPanel(title, yLabel string, lines []Line, ideal func(float64) float64) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Number of Threads"
	p.Y.Label.Text = yLabel

	n := maxThreads(lines)
	p.X.Min = 0
	p.X.Max = float64(n)
	p.Y.Min = 0
	p.X.Tick.Marker = threadTicks(n)
	p.Legend.Top = true
	p.Legend.Left = true
	p.Add(plotter.NewGrid())

	if ideal != nil {
		f := plotter.NewFunction(ideal)
		f.Color = color.Gray{Y: 160}
		f.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
		p.Add(f)
		p.Legend.Add("ideal", f)
	}

	for i, l := range lines {
		line, points, err := plotter.NewLinePoints(l.points())
		if err != nil {
			return nil, fmt.Errorf("%s: %w", l.Name, err)
		}
		line.Color = plotutil.Color(i)
		points.Color = plotutil.Color(i)
		points.Shape = plotutil.Shape(i)
		p.Add(line, points)
		if len(lines) > 1 {
			p.Legend.Add(l.Name, line, points)
		}
	}

	return p, nil
}

// writePanels lays plots out side by side and writes them as one PNG.
func writePanels(path string, plots ...*plot.Plot) error {
	width := vg.Length(len(plots)) * 8 * vg.Inch
	img := vgimg.New(width, 6*vg.Inch)
	dc := draw.New(img)

	tiles := draw.Tiles{
		Rows: 1,
		Cols: len(plots),
		PadX: vg.Millimeter * 4,
		PadY: vg.Millimeter * 4,
	}
	canvases := plot.Align([][]*plot.Plot{plots}, tiles, dc)
	for i, p := range plots {
		p.Draw(canvases[0][i])
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode chart: %w", err)
	}
	return f.Close()
}

// WriteLines draws speedup and efficiency panels for any number of lines.
func WriteLines(path string, speedups, efficiencies []Line) error {
	sp, err := newPanel("Speedup", "Speedup", speedups, func(x float64) float64 { return x })
	if err != nil {
		return err
	}
	ep, err := newPanel("Efficiency", "Efficiency", efficiencies, func(float64) float64 { return 1 })
	if err != nil {
		return err
	}
	return writePanels(path, sp, ep)
}

// WriteSeriesChart charts the series of the current run.
func WriteSeriesChart(path string, series *bench.Series) error {
	var threads []int
	for _, e := range series.Entries() {
		threads = append(threads, e.Threads)
	}
	return WriteLines(path,
		[]Line{{Name: "speedup", Threads: threads, Values: series.Speedups()}},
		[]Line{{Name: "efficiency", Threads: threads, Values: series.Efficiencies()}},
	)
}

// WriteComparisonChart charts every stored run, one line per run.
func WriteComparisonChart(path string, records []store.Record) error {
	if len(records) == 0 {
		return fmt.Errorf("no stored runs to chart")
	}

	var speedups, efficiencies []Line
	for i, rec := range records {
		name := RunName(i, rec)
		series, err := rec.Series()
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}

		var threads []int
		for _, e := range series.Entries() {
			threads = append(threads, e.Threads)
		}
		speedups = append(speedups, Line{Name: name, Threads: threads, Values: series.Speedups()})
		efficiencies = append(efficiencies, Line{Name: name, Threads: threads, Values: series.Efficiencies()})
	}
	return WriteLines(path, speedups, efficiencies)
}
