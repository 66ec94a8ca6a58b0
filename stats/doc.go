// Package stats provides sliding-window statistics over sampled series values.
//
// This package contains the windowed kernels behind the time series
// indicators: a cumulative-sum sliding mean, rolling variance, skewness,
// lag-1 autocorrelation, and Kendall's tau-c trend coefficient. All kernels
// operate on a fully materialized []float64 and return a slice aligned
// index-for-index with the input.
//
// # Window Conventions
//
// The sliding mean at index i covers [max(0, i-width), i), excluding the
// current sample; index 0 stands in for its own mean:
//
//	mean := stats.SlidingMean(values, 40)
//	ratio := stats.DivideTreatZero(values, mean, 1, 1)
//
// The rolling statistics cover the inclusive window [max(0, i-width), i] and
// use however many samples exist near the start. Insufficient samples yield
// NaN rather than an error:
//
//	variance := stats.RollingVariance(values, 10)        // NaN at index 0
//	skewness := stats.RollingSkewness(values, 10)        // NaN below 3 samples
//	autocorr := stats.RollingAutocorrelation(values, 10) // lag-1 coefficient
//
// # Trend Detection
//
// Kendall's tau-c between window position and value measures monotonic trend
// in [-1, 1]. Undefined windows are normalized to 0:
//
//	tau := stats.RollingKendallTau(values, 10)
//
//	// Or between two arbitrary variables:
//	tc := stats.KendallTauC(x, y)
//
// # Zero Handling
//
// DivideTreatZero substitutes fixed constants for divisions by zero instead
// of producing Inf or NaN:
//
//	// 0/0 -> 1, x/0 -> 1
//	ratio := stats.DivideTreatZero(num, den, 1, 1)
package stats
