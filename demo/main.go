// Package main computes rolling early-warning statistics for a sampled time
// series and renders the standard figure set.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/gfalmagn/r-place-emergence/config"
	"github.com/gfalmagn/r-place-emergence/plotting"
	"github.com/gfalmagn/r-place-emergence/timeseries"
)

// options collects the command line configuration.
type options struct {
	Input     string
	Name      string
	ID        string
	Out       string
	TMin      float64
	TInterval float64
	MeanWidth int
	EWSWidth  int
	NoFigs    bool
}

// seriesJSON is the export shape of a fully computed series. Derived entries
// use pointers so undefined warmup samples become null instead of breaking
// the encoder.
type seriesJSON struct {
	Name            string     `json:"name"`
	NObs            int        `json:"n_obs"`
	TMin            float64    `json:"t_min"`
	TInterval       float64    `json:"t_interval"`
	MeanWidth       int        `json:"mean_width"`
	EWSWidth        int        `json:"ews_width"`
	Timestamps      []float64  `json:"timestamps"`
	Values          []float64  `json:"values"`
	RatioToMean     []*float64 `json:"ratio_to_mean"`
	Variance        []*float64 `json:"variance"`
	Skewness        []*float64 `json:"skewness"`
	Autocorrelation []*float64 `json:"autocorrelation"`
	KendallTau      []*float64 `json:"kendall_tau"`
}

func main() {
	var opts options
	flag.StringVar(&opts.Input, "input", "", "input CSV file (t,value); synthetic data when empty")
	flag.StringVar(&opts.Name, "name", "entropy", "name of the plotted variable")
	flag.StringVar(&opts.ID, "id", "demo", "identifier grouping the output figures")
	flag.StringVar(&opts.Out, "out", "ews_results.json", "output JSON file")
	flag.Float64Var(&opts.TMin, "tmin", 0, "timestamp of the first sample [s]")
	flag.Float64Var(&opts.TInterval, "tint", 300, "sampling interval [s]")
	flag.IntVar(&opts.MeanWidth, "mean-width", 40, "window width of the sliding mean [samples]")
	flag.IntVar(&opts.EWSWidth, "ews-width", 10, "window width of the rolling indicators [samples]")
	flag.BoolVar(&opts.NoFigs, "no-figs", false, "skip figure rendering")
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	if err := run(logger, opts); err != nil {
		logger.Fatal().Err(err).Msg("analysis failed")
	}
}

func run(logger zerolog.Logger, opts options) error {
	var rend *plotting.Plotter
	if !opts.NoFigs {
		rend = plotting.New()
	}

	sopts := timeseries.DefaultOptions()
	sopts.TMin = opts.TMin
	sopts.TInterval = opts.TInterval
	sopts.MeanWidth = opts.MeanWidth
	sopts.EWSWidth = opts.EWSWidth
	sopts.Name = opts.Name
	sopts.DescShort = opts.Name
	sopts.SaveName = opts.Name
	sopts.ID = opts.ID
	if rend != nil {
		sopts.Renderer = rend
	}
	sopts.ComputeAll = true

	s, jumpTime, err := loadSeries(opts, sopts)
	if err != nil {
		return err
	}
	logger.Info().
		Str("name", s.Name).
		Int("n_obs", s.Len()).
		Float64("t_min", s.TMin).
		Float64("t_interval", s.TInterval).
		Msg("series loaded, indicators computed")

	if err := exportJSON(s, opts.Out); err != nil {
		return err
	}
	logger.Info().Str("file", opts.Out).Msg("results exported")

	if rend == nil {
		return nil
	}
	if err := renderFigures(logger, s, rend, jumpTime); err != nil {
		return err
	}
	logger.Info().Str("dir", filepath.Join(rend.Root, s.ID)).Msg("figures saved")
	return nil
}

// loadSeries builds the input series from the configured CSV file, or from a
// synthetic transition signal when no file is given. The second return value
// is the time of the synthetic jump, NaN for file input.
func loadSeries(opts options, sopts timeseries.Options) (*timeseries.Series, float64, error) {
	if opts.Input != "" {
		path := opts.Input
		if _, err := os.Stat(path); err != nil {
			// Inputs given by bare name live in the data directory.
			if alt := filepath.Join(config.DataDir(), opts.Input); fileExists(alt) {
				path = alt
			}
		}
		s, err := timeseries.LoadCSV(path, timeseries.DefaultCSVOptions(), sopts)
		if err != nil {
			return nil, 0, err
		}
		return s, math.NaN(), nil
	}

	const n = 256
	vals, jump := syntheticSignal(n)
	s := timeseries.New(vals, sopts)
	return s, s.TMin + float64(jump)*s.TInterval, nil
}

// syntheticSignal builds a slowly drifting signal with an abrupt jump two
// thirds of the way in, mimicking a variable approaching a transition. The
// perturbation is deterministic so repeated runs produce identical output.
func syntheticSignal(n int) (vals []float64, jump int) {
	vals = make([]float64, n)
	jump = 2 * n / 3
	for i := range vals {
		v := 1.0 + 0.002*float64(i)
		if i >= jump {
			v += 1.5
		}
		vals[i] = v + 0.05*math.Sin(1.7*float64(i)) + 0.02*math.Sin(0.23*float64(i))
	}
	return vals, jump
}

func exportJSON(s *timeseries.Series, path string) error {
	out := seriesJSON{
		Name:            s.Name,
		NObs:            s.Len(),
		TMin:            s.TMin,
		TInterval:       s.TInterval,
		MeanWidth:       s.MeanWidth,
		EWSWidth:        s.EWSWidth,
		Timestamps:      s.Timestamps,
		Values:          s.Values,
		RatioToMean:     nullable(s.RatioToMean),
		Variance:        nullable(s.Variance),
		Skewness:        nullable(s.Skewness),
		Autocorrelation: nullable(s.Autocorrelation),
		KendallTau:      nullable(s.KendallTau),
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	return nil
}

// nullable converts a sequence to pointers, mapping non-finite entries to nil
// so they encode as JSON null.
func nullable(v []float64) []*float64 {
	out := make([]*float64, len(v))
	for i := range v {
		if !math.IsNaN(v[i]) && !math.IsInf(v[i], 0) {
			f := v[i]
			out[i] = &f
		}
	}
	return out
}

// renderFigures saves the base series plot plus one figure per indicator,
// and the shift of the autocorrelation from its own sliding mean.
func renderFigures(logger zerolog.Logger, s *timeseries.Series, rend *plotting.Plotter, jumpTime float64) error {
	nan := math.NaN()

	po := timeseries.DefaultPlotOptions()
	po.VLine = jumpTime
	if err := saveFigure(logger, s, po); err != nil {
		return err
	}

	figures := []struct {
		name   string
		values []float64
		hline  float64
	}{
		{"ratio_to_mean", s.RatioToMean, 1},
		{"variance", s.Variance, nan},
		{"skewness", s.Skewness, 0},
		{"autocorrelation", s.Autocorrelation, 0},
		{"kendall_tau", s.KendallTau, 0},
	}
	for _, f := range figures {
		sub := wrapDerived(s, rend, f.name, "", f.values)
		po := timeseries.DefaultPlotOptions()
		po.HLine = f.hline
		if err := saveFigure(logger, sub, po); err != nil {
			return err
		}
	}

	// The autocorrelation carries the "autoco" label so its ratio to the
	// sliding mean becomes a difference. The undefined warmup samples are
	// dropped first, as a leading NaN would poison the cumulative mean.
	trimmed, skipped := trimLeadingNaN(s.Autocorrelation)
	if len(trimmed) == 0 {
		logger.Warn().Msg("autocorrelation is undefined everywhere, skipping shift figure")
		return nil
	}
	autoco := wrapDerived(s, rend, "autocorrelation", "autocorrelation", trimmed)
	autoco.TMin = s.TMin + float64(skipped)*s.TInterval
	autoco.SetRatioToMean(false)

	shift := wrapDerived(s, rend, "autocorrelation_shift", "", autoco.RatioToMean)
	shift.TMin = autoco.TMin
	po = timeseries.DefaultPlotOptions()
	po.HLine = 0
	return saveFigure(logger, shift, po)
}

// wrapDerived lifts a derived sequence into its own series, inheriting the
// timing, widths, figure group and renderer of the parent.
func wrapDerived(parent *timeseries.Series, rend *plotting.Plotter, name, label string, values []float64) *timeseries.Series {
	opts := timeseries.DefaultOptions()
	opts.TMin = parent.TMin
	opts.TInterval = parent.TInterval
	opts.MeanWidth = parent.MeanWidth
	opts.EWSWidth = parent.EWSWidth
	opts.Name = name
	opts.DescShort = name
	opts.Label = label
	opts.SaveName = name
	opts.ID = parent.ID
	opts.Renderer = rend
	return timeseries.New(values, opts)
}

func saveFigure(logger zerolog.Logger, s *timeseries.Series, po timeseries.PlotOptions) error {
	if err := s.Plot1D(po); err != nil {
		return fmt.Errorf("plot %s: %w", s.Name, err)
	}
	logger.Info().Str("figure", s.SaveName).Msg("figure saved")
	return nil
}

// trimLeadingNaN drops the undefined warmup samples at the start of a derived
// sequence and reports how many were removed.
func trimLeadingNaN(values []float64) ([]float64, int) {
	i := 0
	for i < len(values) && math.IsNaN(values[i]) {
		i++
	}
	return values[i:], i
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
