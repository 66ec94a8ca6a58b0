// Package timeseries provides the rolling statistics engine for time-dependent variables.
package timeseries

import (
	"errors"
	"math"
	"strings"

	"github.com/gfalmagn/r-place-emergence/stats"
)

// Series records the values of a time-dependent variable sampled at uniform
// intervals, together with its sliding-window statistics. Each derived
// sequence is nil until the corresponding Set method runs, and always matches
// the value array in length once computed.
type Series struct {
	// Values holds the variable at each time step. A nil or empty slice is a
	// valid state in which every derived computation is skipped.
	Values []float64

	// TMin is the time of the first sample and TInterval the spacing between
	// consecutive samples, in seconds.
	TMin      float64
	TInterval float64

	// MeanWidth is the sliding-window width used for the ratio-to-mean, and
	// EWSWidth the width used for variance, skewness, autocorrelation and
	// Kendall tau, both as a number of time intervals.
	MeanWidth int
	EWSWidth  int

	Name      string // generic variable name
	DescLong  string // long description of the variable's meaning
	DescShort string // short description, used as the y-axis label
	Label     string // compact label; an "autoco" prefix switches the ratio to a difference
	SaveName  string // file name fragment for saved figures, empty disables saving
	ID        string // figure subdirectory, typically the parent composition id

	// Derived sequences, nil until computed.
	Timestamps      []float64
	RatioToMean     []float64
	Variance        []float64
	Skewness        []float64
	Autocorrelation []float64
	KendallTau      []float64

	renderer Renderer
}

// Options configures a Series. Zero-valued numeric fields fall back to the
// DefaultOptions values.
type Options struct {
	TMin      float64
	TInterval float64
	MeanWidth int
	EWSWidth  int

	Name      string
	DescLong  string
	DescShort string
	Label     string
	SaveName  string
	ID        string

	// Renderer handles Plot1D calls. A Series without one computes
	// statistics normally but cannot plot.
	Renderer Renderer

	// ComputeAll derives every sequence eagerly at construction.
	ComputeAll bool
}

// DefaultOptions returns the standard configuration: five-minute sampling
// from t=0, a 40-interval window for the sliding mean and a 10-interval
// window for the early-warning statistics.
func DefaultOptions() Options {
	return Options{
		TInterval: 300,
		MeanWidth: 40,
		EWSWidth:  10,
	}
}

// New creates a Series over values. A nil values slice constructs an empty
// instance whose derived computations are no-ops.
func New(values []float64, opts Options) *Series {
	def := DefaultOptions()
	if opts.TInterval == 0 {
		opts.TInterval = def.TInterval
	}
	if opts.MeanWidth == 0 {
		opts.MeanWidth = def.MeanWidth
	}
	if opts.EWSWidth == 0 {
		opts.EWSWidth = def.EWSWidth
	}

	s := &Series{
		Values:    values,
		TMin:      opts.TMin,
		TInterval: opts.TInterval,
		MeanWidth: opts.MeanWidth,
		EWSWidth:  opts.EWSWidth,
		Name:      opts.Name,
		DescLong:  opts.DescLong,
		DescShort: opts.DescShort,
		Label:     opts.Label,
		SaveName:  opts.SaveName,
		ID:        opts.ID,
		renderer:  opts.Renderer,
	}

	if opts.ComputeAll {
		s.ComputeAll(false)
	}

	return s
}

// Exists reports whether the series holds any values.
func (s *Series) Exists() bool {
	return len(s.Values) > 0
}

// Len returns the number of samples.
func (s *Series) Len() int {
	return len(s.Values)
}

// Copy creates a deep copy of the series, including any cached sequences.
// Uncomputed sequences stay absent in the copy.
func (s *Series) Copy() *Series {
	c := *s
	c.Values = copyVals(s.Values)
	c.Timestamps = copyVals(s.Timestamps)
	c.RatioToMean = copyVals(s.RatioToMean)
	c.Variance = copyVals(s.Variance)
	c.Skewness = copyVals(s.Skewness)
	c.Autocorrelation = copyVals(s.Autocorrelation)
	c.KendallTau = copyVals(s.KendallTau)
	return &c
}

func copyVals(v []float64) []float64 {
	if v == nil {
		return nil
	}
	out := make([]float64, len(v))
	copy(out, v)
	return out
}

// ComputeAll computes every derived sequence. Cached sequences are kept
// unless rerun is true. Safe to call on an empty series.
func (s *Series) ComputeAll(rerun bool) {
	s.SetTimestamps(rerun)
	s.SetRatioToMean(rerun)
	s.SetVariance(rerun)
	s.SetAutocorrelation(rerun)
	s.SetSkewness(rerun)
	s.SetKendallTau(rerun)
}

// SetTimestamps fills the time axis tmin, tmin+Δ, tmin+2Δ, ... with exactly
// one point per sample.
func (s *Series) SetTimestamps(rerun bool) {
	if !s.Exists() || (s.Timestamps != nil && !rerun) {
		return
	}

	t := make([]float64, len(s.Values))
	for i := range t {
		t[i] = s.TMin + float64(i)*s.TInterval
	}
	s.Timestamps = t
}

// SetRatioToMean fills, at each index, the ratio of the value to its mean
// over the preceding MeanWidth samples, the current sample excluded. The
// average of all earlier samples is used below index MeanWidth. A zero mean
// goes through the divide policy and yields 1. Variables labeled autoco*
// store the difference to the mean instead of the ratio.
func (s *Series) SetRatioToMean(rerun bool) {
	if !s.Exists() || (s.RatioToMean != nil && !rerun) {
		return
	}

	mean := stats.SlidingMean(s.Values, s.MeanWidth)
	if mean == nil {
		return
	}

	if strings.HasPrefix(s.Label, "autoco") {
		diff := make([]float64, len(s.Values))
		for i, v := range s.Values {
			diff[i] = v - mean[i]
		}
		s.RatioToMean = diff
		return
	}
	s.RatioToMean = stats.DivideTreatZero(s.Values, mean, 1, 1)
}

// SetVariance fills the unbiased variance of the trailing EWSWidth window at
// each index, the current sample included. The single-sample window at index
// 0 yields NaN.
func (s *Series) SetVariance(rerun bool) {
	if !s.Exists() || (s.Variance != nil && !rerun) {
		return
	}
	s.Variance = stats.RollingVariance(s.Values, s.EWSWidth)
}

// SetSkewness fills the skewness of the value series over the trailing
// EWSWidth window at each index. Windows with fewer than 3 samples yield NaN.
func (s *Series) SetSkewness(rerun bool) {
	if !s.Exists() || (s.Skewness != nil && !rerun) {
		return
	}
	s.Skewness = stats.RollingSkewness(s.Values, s.EWSWidth)
}

// SetAutocorrelation fills the lag-1 autocorrelation of the trailing EWSWidth
// window at each index. Windows too short or too flat to correlate yield NaN.
func (s *Series) SetAutocorrelation(rerun bool) {
	if !s.Exists() || (s.Autocorrelation != nil && !rerun) {
		return
	}
	s.Autocorrelation = stats.RollingAutocorrelation(s.Values, s.EWSWidth)
}

// SetKendallTau fills Kendall's tau-c between window position and value over
// the trailing EWSWidth window at each index, a monotonic-trend signal in
// [-1, 1]. Undefined windows yield 0.
func (s *Series) SetKendallTau(rerun bool) {
	if !s.Exists() || (s.KendallTau != nil && !rerun) {
		return
	}
	s.KendallTau = stats.RollingKendallTau(s.Values, s.EWSWidth)
}

// PlotOptions controls Plot1D. Float fields set to NaN are treated as not
// provided; DefaultPlotOptions returns them all unset with saving enabled.
type PlotOptions struct {
	XLog bool
	YLog bool

	// Fixed y-axis bounds. NaN lets the renderer pick from the data.
	YMin float64
	YMax float64

	// Dashed guide lines. NaN draws none.
	HLine float64
	VLine float64

	// Save persists the figure when the series carries a SaveName.
	Save bool

	// TrimStart and TrimEnd drop that many samples from the start and end of
	// the plotted range, e.g. the warmup of a rolling indicator.
	TrimStart int
	TrimEnd   int
}

// DefaultPlotOptions returns plot options with no fixed bounds or guide
// lines and saving enabled.
func DefaultPlotOptions() PlotOptions {
	return PlotOptions{
		YMin:  math.NaN(),
		YMax:  math.NaN(),
		HLine: math.NaN(),
		VLine: math.NaN(),
		Save:  true,
	}
}

// RenderOptions carries everything a Renderer needs for one line chart.
// Float fields set to NaN are treated as not provided.
type RenderOptions struct {
	XLabel string
	YLabel string
	XLog   bool
	YLog   bool
	XMin   float64
	YMin   float64
	YMax   float64
	HLine  float64
	VLine  float64

	// SavePath persists the figure when non-empty.
	SavePath string
}

// Renderer is the plotting capability used by Plot1D. Implementations decide
// how figures are drawn and where they live on disk; the engine itself never
// touches the filesystem.
type Renderer interface {
	// FigurePath resolves the save location of the figure named name for the
	// series identified by id.
	FigurePath(id, name string) string

	// Render1D draws y against x and optionally persists the figure.
	Render1D(x, y []float64, opts RenderOptions) error
}

// Plot1D renders the value series against its time axis through the
// configured Renderer. With opts.Save and a non-empty SaveName the figure is
// persisted under <figures root>/<ID>/<SaveName>.png.
func (s *Series) Plot1D(opts PlotOptions) error {
	if !s.Exists() {
		return errors.New("cannot plot an empty series")
	}
	if s.renderer == nil {
		return errors.New("no renderer configured")
	}

	s.SetTimestamps(false)

	ibeg := opts.TrimStart
	iend := s.Len() - opts.TrimEnd
	if ibeg < 0 || iend > s.Len() || ibeg >= iend {
		return errors.New("invalid trim bounds")
	}

	savePath := ""
	if opts.Save && s.SaveName != "" {
		savePath = s.renderer.FigurePath(s.ID, s.SaveName)
	}

	return s.renderer.Render1D(s.Timestamps[ibeg:iend], s.Values[ibeg:iend], RenderOptions{
		XLabel:   "Time [s]",
		YLabel:   s.DescShort,
		XLog:     opts.XLog,
		YLog:     opts.YLog,
		XMin:     s.TMin,
		YMin:     opts.YMin,
		YMax:     opts.YMax,
		HLine:    opts.HLine,
		VLine:    opts.VLine,
		SavePath: savePath,
	})
}
