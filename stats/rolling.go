// Package stats provides sliding-window statistics over sampled series values.
package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// SlidingMean calculates, for each index i, the mean of the trailing window
// [max(0, i-width), i), excluding i itself. The first element has no preceding
// samples and stands in for its own mean; below index width the mean covers
// all samples seen so far. Runs in O(n) total using a cumulative sum.
func SlidingMean(values []float64, width int) []float64 {
	n := len(values)
	if n == 0 || width < 1 {
		return nil
	}

	cumsum := make([]float64, n)
	cumsum[0] = values[0]
	for i := 1; i < n; i++ {
		cumsum[i] = cumsum[i-1] + values[i]
	}

	mean := make([]float64, n)
	mean[0] = values[0]
	for i := 1; i < n; i++ {
		if i <= width {
			mean[i] = cumsum[i-1] / float64(i)
		} else {
			mean[i] = (cumsum[i-1] - cumsum[i-width-1]) / float64(width)
		}
	}

	return mean
}

// DivideTreatZero divides num by den element-wise with an explicit policy for
// zero denominators: 0/0 yields zeroOverZero and x/0 (x nonzero) yields
// anyOverZero. Returns nil if the slices differ in length.
func DivideTreatZero(num, den []float64, zeroOverZero, anyOverZero float64) []float64 {
	if len(num) != len(den) {
		return nil
	}

	out := make([]float64, len(num))
	for i, d := range den {
		switch {
		case d != 0:
			out[i] = num[i] / d
		case num[i] == 0:
			out[i] = zeroOverZero
		default:
			out[i] = anyOverZero
		}
	}

	return out
}

// RollingVariance calculates the unbiased sample variance of the trailing
// window [max(0, i-width), i] at each index, i included. Shorter windows near
// the start are used as-is; a single-sample window yields NaN.
func RollingVariance(values []float64, width int) []float64 {
	n := len(values)
	if n == 0 || width < 1 {
		return nil
	}

	out := make([]float64, n)
	for i := range values {
		lo := i - width
		if lo < 0 {
			lo = 0
		}
		out[i] = stat.Variance(values[lo:i+1], nil)
	}

	return out
}

// RollingSkewness calculates the adjusted Fisher-Pearson skewness coefficient
// of the trailing window [max(0, i-width), i] at each index. Windows with
// fewer than 3 samples, or with a vanishing second moment, yield NaN.
func RollingSkewness(values []float64, width int) []float64 {
	n := len(values)
	if n == 0 || width < 1 {
		return nil
	}

	out := make([]float64, n)
	for i := range values {
		lo := i - width
		if lo < 0 {
			lo = 0
		}
		out[i] = skewness(values[lo : i+1])
	}

	return out
}

// skewness is the G1 estimator sqrt(k(k-1))/(k-2) * m3/m2^(3/2), with m2 and
// m3 the biased central moments. Windows with m2 below 1e-14 count as flat.
func skewness(window []float64) float64 {
	k := len(window)
	if k < 3 {
		return math.NaN()
	}

	mean := stat.Mean(window, nil)
	var m2, m3 float64
	for _, v := range window {
		d := v - mean
		m2 += d * d
		m3 += d * d * d
	}

	kf := float64(k)
	m2 /= kf
	m3 /= kf
	if m2 <= 1e-14 {
		return math.NaN()
	}

	return math.Sqrt(kf*(kf-1)) / (kf - 2) * m3 / math.Pow(m2, 1.5)
}

// RollingAutocorrelation calculates the lag-1 autocorrelation of the trailing
// window [max(0, i-width), i] at each index: the Pearson correlation between
// the window and itself shifted by one sample. Windows with fewer than 2
// samples, or without enough variation to correlate, yield NaN.
func RollingAutocorrelation(values []float64, width int) []float64 {
	n := len(values)
	if n == 0 || width < 1 {
		return nil
	}

	out := make([]float64, n)
	for i := range values {
		lo := i - width
		if lo < 0 {
			lo = 0
		}
		w := values[lo : i+1]
		if len(w) < 2 {
			out[i] = math.NaN()
			continue
		}
		out[i] = stat.Correlation(w[:len(w)-1], w[1:], nil)
	}

	return out
}
