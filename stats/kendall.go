package stats

import "math"

// KendallTauC calculates Stuart's tau-c rank correlation between x and y.
// Tau-c counts concordant versus discordant pairs and normalizes by
// 2m/(n^2(m-1)) where m is the smaller number of distinct values in either
// input, which keeps the coefficient in [-1, 1] for non-square rank tables.
// Returns NaN for mismatched or empty inputs, inputs containing NaN, or when
// either input has fewer than 2 distinct values.
func KendallTauC(x, y []float64) float64 {
	n := len(x)
	if n != len(y) || n == 0 {
		return math.NaN()
	}

	for i := range x {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			return math.NaN()
		}
	}

	m := float64(min(distinct(x), distinct(y)))
	if m < 2 {
		return math.NaN()
	}

	// P - Q: ties in either coordinate count for neither side.
	net := 0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			prod := (x[j] - x[i]) * (y[j] - y[i])
			switch {
			case prod > 0:
				net++
			case prod < 0:
				net--
			}
		}
	}

	nf := float64(n)
	return 2 * m * float64(net) / (nf * nf * (m - 1))
}

// RollingKendallTau calculates, at each index, Kendall's tau-c between window
// position and value over the trailing window [max(0, i-width), i]. With the
// positions 0..k-1 as the first variable this measures monotonic trend over
// time. Undefined windows (a single sample, or all values tied) yield 0.
func RollingKendallTau(values []float64, width int) []float64 {
	n := len(values)
	if n == 0 || width < 1 {
		return nil
	}

	positions := make([]float64, min(width+1, n))
	for i := range positions {
		positions[i] = float64(i)
	}

	out := make([]float64, n)
	for i := range values {
		lo := i - width
		if lo < 0 {
			lo = 0
		}
		k := i + 1 - lo
		tau := KendallTauC(positions[:k], values[lo:i+1])
		if math.IsNaN(tau) {
			tau = 0
		}
		out[i] = tau
	}

	return out
}

// distinct counts the distinct values in v.
func distinct(v []float64) int {
	seen := make(map[float64]struct{}, len(v))
	for _, x := range v {
		seen[x] = struct{}{}
	}
	return len(seen)
}
