package timeseries

import (
	"math"
	"testing"
)

// equalSeq compares two sequences treating NaN as equal to NaN.
func equalSeq(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.IsNaN(a[i]) != math.IsNaN(b[i]) {
			return false
		}
		if !math.IsNaN(a[i]) && math.Abs(a[i]-b[i]) > 1e-12 {
			return false
		}
	}
	return true
}

func TestNewDefaults(t *testing.T) {
	s := New([]float64{1, 2, 3}, Options{})

	if s.Len() != 3 {
		t.Errorf("Expected length 3, got %d", s.Len())
	}
	if !s.Exists() {
		t.Error("Expected series to exist")
	}
	if s.TInterval != 300 {
		t.Errorf("Expected default TInterval 300, got %f", s.TInterval)
	}
	if s.MeanWidth != 40 {
		t.Errorf("Expected default MeanWidth 40, got %d", s.MeanWidth)
	}
	if s.EWSWidth != 10 {
		t.Errorf("Expected default EWSWidth 10, got %d", s.EWSWidth)
	}
}

func TestNewEmpty(t *testing.T) {
	// An empty series is a valid state: eager computation must not panic and
	// every derived sequence stays absent.
	s := New(nil, Options{ComputeAll: true})

	if s.Exists() {
		t.Error("Expected empty series to not exist")
	}
	if s.Timestamps != nil || s.RatioToMean != nil || s.Variance != nil ||
		s.Skewness != nil || s.Autocorrelation != nil || s.KendallTau != nil {
		t.Error("Expected all derived sequences to stay nil for an empty series")
	}

	s.ComputeAll(true)
	if s.Variance != nil {
		t.Error("Expected rerun on an empty series to stay a no-op")
	}
}

func TestSetTimestamps(t *testing.T) {
	s := New([]float64{1, 1, 1, 1, 1}, Options{TMin: 0, TInterval: 300})
	s.SetTimestamps(false)

	expected := []float64{0, 300, 600, 900, 1200}
	if len(s.Timestamps) != len(expected) {
		t.Fatalf("Expected exactly %d points, got %d", len(expected), len(s.Timestamps))
	}
	for i, v := range s.Timestamps {
		if math.Abs(v-expected[i]) > 1e-10 {
			t.Errorf("Expected %f at index %d, got %f", expected[i], i, v)
		}
	}
}

func TestSetTimestampsOffset(t *testing.T) {
	s := New([]float64{1, 2, 3}, Options{TMin: 100, TInterval: 0.5})
	s.SetTimestamps(false)

	expected := []float64{100, 100.5, 101}
	for i, v := range s.Timestamps {
		if math.Abs(v-expected[i]) > 1e-10 {
			t.Errorf("Expected %f at index %d, got %f", expected[i], i, v)
		}
	}
}

func TestComputeAllLengths(t *testing.T) {
	n := 25
	values := make([]float64, n)
	for i := range values {
		values[i] = math.Sin(float64(i)/3) + 0.1*float64(i)
	}

	s := New(values, Options{EWSWidth: 5, MeanWidth: 8})
	s.ComputeAll(false)

	for name, seq := range map[string][]float64{
		"Timestamps":      s.Timestamps,
		"RatioToMean":     s.RatioToMean,
		"Variance":        s.Variance,
		"Skewness":        s.Skewness,
		"Autocorrelation": s.Autocorrelation,
		"KendallTau":      s.KendallTau,
	} {
		if len(seq) != n {
			t.Errorf("%s: expected length %d, got %d", name, n, len(seq))
		}
	}
}

func TestRatioToMeanConstant(t *testing.T) {
	s := New([]float64{3, 3, 3, 3, 3}, Options{MeanWidth: 2})
	s.SetRatioToMean(false)

	for i, v := range s.RatioToMean {
		if math.Abs(v-1) > 1e-10 {
			t.Errorf("Expected ratio 1 at index %d, got %f", i, v)
		}
	}
}

func TestRatioToMean(t *testing.T) {
	// Sliding means are [2, 2, 3], so the ratios are [1, 2, 8/3].
	s := New([]float64{2, 4, 8}, Options{})
	s.SetRatioToMean(false)

	expected := []float64{1, 2, 8.0 / 3.0}
	for i, v := range s.RatioToMean {
		if math.Abs(v-expected[i]) > 1e-10 {
			t.Errorf("Expected %f at index %d, got %f", expected[i], i, v)
		}
	}
}

func TestRatioToMeanAutocoLabel(t *testing.T) {
	// Autocorrelation-type variables take the difference to the mean.
	s := New([]float64{2, 4, 8}, Options{Label: "autocorr"})
	s.SetRatioToMean(false)

	expected := []float64{0, 2, 5}
	for i, v := range s.RatioToMean {
		if math.Abs(v-expected[i]) > 1e-10 {
			t.Errorf("Expected difference %f at index %d, got %f", expected[i], i, v)
		}
	}
}

func TestRatioToMeanZeroPolicy(t *testing.T) {
	// Zero means never produce Inf or NaN; the policy substitutes 1.
	s := New([]float64{0, 0, 5}, Options{})
	s.SetRatioToMean(false)

	for i, v := range s.RatioToMean {
		if math.Abs(v-1) > 1e-10 {
			t.Errorf("Expected substituted ratio 1 at index %d, got %f", i, v)
		}
	}
}

func TestDerivedValues(t *testing.T) {
	s := New([]float64{1, 2, 4}, Options{EWSWidth: 2})
	s.ComputeAll(false)

	// Variance: single sample is undefined, then 0.5 and 7/3.
	if !math.IsNaN(s.Variance[0]) {
		t.Errorf("Expected NaN variance at index 0, got %f", s.Variance[0])
	}
	if math.Abs(s.Variance[1]-0.5) > 1e-10 {
		t.Errorf("Expected variance 0.5 at index 1, got %f", s.Variance[1])
	}
	if math.Abs(s.Variance[2]-7.0/3.0) > 1e-10 {
		t.Errorf("Expected variance %f at index 2, got %f", 7.0/3.0, s.Variance[2])
	}

	// Autocorrelation needs at least 3 samples for a defined coefficient.
	if !math.IsNaN(s.Autocorrelation[0]) || !math.IsNaN(s.Autocorrelation[1]) {
		t.Error("Expected NaN autocorrelation for the first two indices")
	}
	if math.Abs(s.Autocorrelation[2]-1) > 1e-10 {
		t.Errorf("Expected autocorrelation 1 at index 2, got %f", s.Autocorrelation[2])
	}

	// Skewness of [1, 2, 4] is (10/7)*sqrt(3/7).
	expectedSkew := 10.0 / 7.0 * math.Sqrt(3.0/7.0)
	if math.Abs(s.Skewness[2]-expectedSkew) > 1e-9 {
		t.Errorf("Expected skewness %f at index 2, got %f", expectedSkew, s.Skewness[2])
	}

	// Kendall tau: undefined single-sample window becomes 0, then a strictly
	// increasing window gives 1.
	expected := []float64{0, 1, 1}
	for i, v := range s.KendallTau {
		if math.Abs(v-expected[i]) > 1e-10 {
			t.Errorf("Expected tau %f at index %d, got %f", expected[i], i, v)
		}
	}
}

func TestLazyCache(t *testing.T) {
	values := []float64{1, 2, 4, 8, 16, 25, 30, 31}
	s := New(values, Options{EWSWidth: 3})

	s.SetVariance(false)
	fresh := New(values, Options{EWSWidth: 3})
	fresh.SetVariance(false)

	// Without rerun the cached sequence is kept untouched.
	s.Variance[4] = -123
	s.SetVariance(false)
	if s.Variance[4] != -123 {
		t.Error("Expected cached variance to be kept without rerun")
	}

	// With rerun the cache is overwritten and matches a fresh computation.
	s.SetVariance(true)
	if !equalSeq(s.Variance, fresh.Variance) {
		t.Error("Expected rerun to reproduce the fresh computation")
	}
}

func TestRerunAllSetters(t *testing.T) {
	values := []float64{3, 1, 4, 1, 5, 9, 2, 6, 5, 3}
	s := New(values, Options{EWSWidth: 4, MeanWidth: 3})
	s.ComputeAll(false)

	fresh := New(values, Options{EWSWidth: 4, MeanWidth: 3})
	fresh.ComputeAll(false)

	s.ComputeAll(true)

	if !equalSeq(s.RatioToMean, fresh.RatioToMean) {
		t.Error("RatioToMean rerun mismatch")
	}
	if !equalSeq(s.Variance, fresh.Variance) {
		t.Error("Variance rerun mismatch")
	}
	if !equalSeq(s.Skewness, fresh.Skewness) {
		t.Error("Skewness rerun mismatch")
	}
	if !equalSeq(s.Autocorrelation, fresh.Autocorrelation) {
		t.Error("Autocorrelation rerun mismatch")
	}
	if !equalSeq(s.KendallTau, fresh.KendallTau) {
		t.Error("KendallTau rerun mismatch")
	}
	if !equalSeq(s.Timestamps, fresh.Timestamps) {
		t.Error("Timestamps rerun mismatch")
	}
}

func TestCopy(t *testing.T) {
	s := New([]float64{1, 2, 3}, Options{})
	s.SetVariance(false)

	c := s.Copy()
	s.Values[0] = 100
	s.Variance[1] = 100

	if c.Values[0] != 1 {
		t.Error("Copy values were modified when original changed")
	}
	if c.Variance[1] == 100 {
		t.Error("Copy variance was modified when original changed")
	}
	if c.KendallTau != nil {
		t.Error("Expected uncomputed sequence to stay absent in the copy")
	}
}

// mockRenderer captures Plot1D delegation without drawing anything.
type mockRenderer struct {
	renderFunc func(x, y []float64, opts RenderOptions) error
	pathFunc   func(id, name string) string
}

func (m *mockRenderer) FigurePath(id, name string) string {
	if m.pathFunc != nil {
		return m.pathFunc(id, name)
	}
	return id + "/" + name + ".png"
}

func (m *mockRenderer) Render1D(x, y []float64, opts RenderOptions) error {
	if m.renderFunc != nil {
		return m.renderFunc(x, y, opts)
	}
	return nil
}

func TestPlot1D(t *testing.T) {
	var gotX, gotY []float64
	var gotOpts RenderOptions
	mock := &mockRenderer{
		renderFunc: func(x, y []float64, opts RenderOptions) error {
			gotX, gotY, gotOpts = x, y, opts
			return nil
		},
	}

	s := New([]float64{1, 2, 3, 4, 5}, Options{
		TMin:      0,
		TInterval: 300,
		DescShort: "pixel change fraction",
		SaveName:  "signal",
		ID:        "comp7",
		Renderer:  mock,
	})

	opts := DefaultPlotOptions()
	opts.TrimStart = 1
	opts.TrimEnd = 1
	if err := s.Plot1D(opts); err != nil {
		t.Fatalf("Plot1D failed: %v", err)
	}

	if !equalSeq(gotX, []float64{300, 600, 900}) {
		t.Errorf("Expected trimmed time axis [300 600 900], got %v", gotX)
	}
	if !equalSeq(gotY, []float64{2, 3, 4}) {
		t.Errorf("Expected trimmed values [2 3 4], got %v", gotY)
	}
	if gotOpts.XLabel != "Time [s]" {
		t.Errorf("Expected x label 'Time [s]', got %q", gotOpts.XLabel)
	}
	if gotOpts.YLabel != "pixel change fraction" {
		t.Errorf("Expected y label from DescShort, got %q", gotOpts.YLabel)
	}
	if gotOpts.XMin != 0 {
		t.Errorf("Expected XMin 0, got %f", gotOpts.XMin)
	}
	if gotOpts.SavePath != "comp7/signal.png" {
		t.Errorf("Expected save path comp7/signal.png, got %q", gotOpts.SavePath)
	}
	if s.Timestamps == nil {
		t.Error("Expected Plot1D to fill the time axis")
	}
}

func TestPlot1DNoSave(t *testing.T) {
	var gotPath string
	mock := &mockRenderer{
		renderFunc: func(x, y []float64, opts RenderOptions) error {
			gotPath = opts.SavePath
			return nil
		},
	}

	s := New([]float64{1, 2}, Options{SaveName: "signal", ID: "comp7", Renderer: mock})

	opts := DefaultPlotOptions()
	opts.Save = false
	if err := s.Plot1D(opts); err != nil {
		t.Fatalf("Plot1D failed: %v", err)
	}
	if gotPath != "" {
		t.Errorf("Expected empty save path with Save disabled, got %q", gotPath)
	}

	// Without a SaveName there is nothing to save either.
	s2 := New([]float64{1, 2}, Options{Renderer: mock})
	if err := s2.Plot1D(DefaultPlotOptions()); err != nil {
		t.Fatalf("Plot1D failed: %v", err)
	}
	if gotPath != "" {
		t.Errorf("Expected empty save path without SaveName, got %q", gotPath)
	}
}

func TestPlot1DErrors(t *testing.T) {
	mock := &mockRenderer{}

	empty := New(nil, Options{Renderer: mock})
	if err := empty.Plot1D(DefaultPlotOptions()); err == nil {
		t.Error("Expected error plotting an empty series")
	}

	noRenderer := New([]float64{1, 2}, Options{})
	if err := noRenderer.Plot1D(DefaultPlotOptions()); err == nil {
		t.Error("Expected error without a renderer")
	}

	s := New([]float64{1, 2, 3}, Options{Renderer: mock})
	opts := DefaultPlotOptions()
	opts.TrimStart = 2
	opts.TrimEnd = 2
	if err := s.Plot1D(opts); err == nil {
		t.Error("Expected error when trimming removes all samples")
	}

	opts = DefaultPlotOptions()
	opts.TrimEnd = -1
	if err := s.Plot1D(opts); err == nil {
		t.Error("Expected error for negative trim")
	}
}
