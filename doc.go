// Package rplacem provides rolling statistics and early-warning indicators
// for time series of collective behavior.
//
// The library grew out of the analysis of r/place compositions, where
// variables such as entropy or pixel stability are sampled at fixed time
// intervals and screened for signs of an approaching transition. It computes
// the classical early-warning signals of critical slowing down over sliding
// windows and renders the standard diagnostic figures.
//
// # Features
//
//   - Sliding-window mean and the ratio of a variable to it
//   - Rolling variance, skewness and lag-one autocorrelation
//   - Rolling Kendall tau-c as a trend indicator
//   - CSV ingestion with automatic sampling-interval detection
//   - Figure rendering through gonum/plot
//
// # Quick Start
//
// Compute every indicator of a sampled variable:
//
//	opts := timeseries.DefaultOptions()
//	opts.Name = "entropy"
//	opts.ComputeAll = true
//	s := timeseries.New(values, opts)
//	fmt.Println(s.KendallTau)
//
// Render the series with its figures saved under the configured root:
//
//	opts.Renderer = plotting.New()
//	s = timeseries.New(values, opts)
//	s.Plot1D(timeseries.DefaultPlotOptions())
//
// # Packages
//
// The library is organized into the following packages:
//
//   - timeseries: Series type, derived sequences and plotting entry points
//   - stats: Sliding-window statistic kernels
//   - plotting: gonum/plot renderer for saved figures
//   - config: Environment-based process configuration
//
// # References
//
//   - Scheffer, M., et al. (2009). Early-warning signals for critical transitions
//   - Dakos, V., et al. (2012). Methods for detecting early warnings of critical transitions
package rplacem
