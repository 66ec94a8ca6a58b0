// Package timeseries provides the rolling statistics engine for time-dependent variables.
//
// This package includes the Series type, which records a uniformly sampled
// variable together with its sliding-window statistics: ratio to the sliding
// mean, variance, skewness, lag-1 autocorrelation and Kendall's tau trend
// coefficient. These indicators are commonly read as early-warning signals of
// abrupt transitions in the underlying system.
//
// # Creating a Series
//
// Create a series from a slice with the default windows (five-minute
// sampling, 40-interval mean window, 10-interval statistics window):
//
//	values := []float64{0.12, 0.15, 0.11, 0.35, 0.80}
//	s := timeseries.New(values, timeseries.DefaultOptions())
//
// Or configure it explicitly and compute everything eagerly:
//
//	s := timeseries.New(values, timeseries.Options{
//	    TInterval:  300,
//	    MeanWidth:  40,
//	    EWSWidth:   10,
//	    Name:       "frac_pixdiff",
//	    DescShort:  "fraction of changed pixels",
//	    ComputeAll: true,
//	})
//
// # Derived Sequences
//
// Each derived sequence is cached on first computation; pass rerun=true to
// force a recomputation:
//
//	s.SetRatioToMean(false)
//	s.SetVariance(false)
//	s.SetSkewness(false)
//	s.SetAutocorrelation(false)
//	s.SetKendallTau(false)
//	s.SetTimestamps(false)
//
//	// Or all of the above at once:
//	s.ComputeAll(false)
//
// Sequences are nil until computed and always match the value array in
// length. Windows with too few samples yield NaN, except Kendall tau, which
// normalizes undefined windows to 0.
//
// # Plotting
//
// Plot1D delegates to a Renderer injected at construction:
//
//	s := timeseries.New(values, timeseries.Options{
//	    SaveName: "frac_pixdiff",
//	    ID:       "comp7",
//	    Renderer: plotting.New(),
//	})
//
//	opts := timeseries.DefaultPlotOptions()
//	opts.TrimStart = 10 // drop the rolling warmup
//	err := s.Plot1D(opts)
//
// # Loading from CSV
//
// Load series values from CSV files; a time column sets TMin and TInterval:
//
//	opts := &timeseries.CSVOptions{
//	    TimeColumn:  "t",
//	    ValueColumn: "value",
//	    HasHeader:   true,
//	}
//	s, err := timeseries.LoadCSV("series.csv", opts, timeseries.DefaultOptions())
package timeseries
