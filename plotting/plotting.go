// Package plotting renders time series figures with gonum/plot.
package plotting

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/gfalmagn/r-place-emergence/config"
	"github.com/gfalmagn/r-place-emergence/timeseries"
)

// Figure dimensions used for every saved plot.
const (
	figWidth  = 6 * vg.Inch
	figHeight = 4 * vg.Inch
)

// Plotter draws line charts of sampled series and saves them as PNG files
// under a figures root directory. It implements timeseries.Renderer.
type Plotter struct {
	// Root is the directory figure paths are resolved under.
	Root string
}

// New creates a Plotter rooted at the configured figures directory.
func New() *Plotter {
	return &Plotter{Root: config.FiguresDir()}
}

// FigurePath resolves the save location <root>/<id>/<name>.png. The path is
// purely computed; directories are created when the figure is saved.
func (p *Plotter) FigurePath(id, name string) string {
	return filepath.Join(p.Root, id, name+".png")
}

// Render1D draws y against x as a single line and saves the figure when
// opts.SavePath is set. Non-finite samples are dropped from both the line
// and the axis ranging, as are non-positive samples on a log axis, which
// gonum/plot cannot place.
func (p *Plotter) Render1D(x, y []float64, opts timeseries.RenderOptions) error {
	if len(x) == 0 || len(x) != len(y) {
		return errors.New("x and y must be non-empty and of equal length")
	}

	pts := make(plotter.XYs, 0, len(x))
	for i := range x {
		if !isFinite(x[i]) || !isFinite(y[i]) {
			continue
		}
		if (opts.XLog && x[i] <= 0) || (opts.YLog && y[i] <= 0) {
			continue
		}
		pts = append(pts, plotter.XY{X: x[i], Y: y[i]})
	}
	if len(pts) == 0 {
		return errors.New("no plottable samples")
	}

	pl := plot.New()
	pl.X.Label.Text = opts.XLabel
	pl.Y.Label.Text = opts.YLabel

	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("build line: %w", err)
	}
	pl.Add(line)

	lim := axisLimits(x, y, opts)

	if !math.IsNaN(opts.HLine) && !(opts.YLog && opts.HLine <= 0) {
		if err := addGuide(pl, lim.XData, opts.HLine, lim.XHi, opts.HLine); err != nil {
			return err
		}
	}
	if !math.IsNaN(opts.VLine) && !(opts.XLog && opts.VLine <= 0) {
		if err := addGuide(pl, opts.VLine, lim.YLo, opts.VLine, lim.YHi); err != nil {
			return err
		}
	}

	// Bounds go last: Add extends the axis ranges from the plotted data, and
	// a guide line must not widen the fixed limits.
	pl.X.Min, pl.X.Max = lim.XLo, lim.XHi
	pl.Y.Min, pl.Y.Max = lim.YLo, lim.YHi

	if opts.XLog {
		pl.X.Scale = plot.LogScale{}
		pl.X.Tick.Marker = plot.LogTicks{Prec: -1}
	}
	if opts.YLog {
		pl.Y.Scale = plot.LogScale{}
		pl.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	}

	if opts.SavePath == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(opts.SavePath), 0o755); err != nil {
		return fmt.Errorf("create figure directory: %w", err)
	}
	if err := pl.Save(figWidth, figHeight, opts.SavePath); err != nil {
		return fmt.Errorf("save figure: %w", err)
	}
	return nil
}

// limits holds the resolved axis ranges of a figure. XData is the adjusted
// data minimum, which anchors horizontal guide lines even when the plotted
// x-range starts elsewhere.
type limits struct {
	XLo, XHi float64
	YLo, YHi float64
	XData    float64
}

// axisLimits resolves axis ranges from the data and any explicit bounds.
// The y-range pads the data maximum so the line does not touch the frame,
// non-positive minimums are nudged off log axes, and a degenerate range is
// widened. Non-finite samples are ignored.
func axisLimits(x, y []float64, opts timeseries.RenderOptions) limits {
	var lim limits

	lim.XData = finiteMin(x)
	if opts.XLog && lim.XData <= 0 {
		lim.XData = 1e-3
	}
	lim.XHi = finiteMax(x)
	lim.XLo = opts.XMin
	if math.IsNaN(lim.XLo) {
		lim.XLo = lim.XData
	}
	if opts.XLog && lim.XLo <= 0 {
		lim.XLo = lim.XData
	}

	lim.YLo = opts.YMin
	if math.IsNaN(lim.YLo) {
		lim.YLo = finiteMin(y)
	}
	if opts.YLog && lim.YLo <= 0 {
		lim.YLo = 1e-5
	}

	lim.YHi = opts.YMax
	if math.IsNaN(lim.YHi) {
		factor := 1.1
		if opts.YLog {
			factor = 1.6
		}
		lim.YHi = factor * finiteMax(y)
	}
	if lim.YHi <= lim.YLo {
		lim.YHi = lim.YLo + 0.01
	}

	return lim
}

// addGuide draws a dashed black segment between two points.
func addGuide(pl *plot.Plot, x0, y0, x1, y1 float64) error {
	g, err := plotter.NewLine(plotter.XYs{{X: x0, Y: y0}, {X: x1, Y: y1}})
	if err != nil {
		return fmt.Errorf("build guide line: %w", err)
	}
	g.LineStyle.Color = color.Black
	g.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
	pl.Add(g)
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func finiteMin(v []float64) float64 {
	m := math.Inf(1)
	for _, f := range v {
		if isFinite(f) && f < m {
			m = f
		}
	}
	return m
}

func finiteMax(v []float64) float64 {
	m := math.Inf(-1)
	for _, f := range v {
		if isFinite(f) && f > m {
			m = f
		}
	}
	return m
}
