package ppform

import (
	"errors"
	"math"
	"testing"
)

// lineSpline returns y = 2x + 1 over [0, 2] split at x = 1.
func lineSpline(t *testing.T) *Spline {
	t.Helper()

	// Two segments, local form: c0 = value at left break, c1 = slope.
	coeffs := []float64{
		1, 2, 0, 0, // [0,1)
		3, 2, 0, 0, // [1,2]
	}
	s, err := New([]float64{0, 1, 2}, coeffs, 1)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	return s
}

func TestNewValidation(t *testing.T) {
	coeffs := make([]float64, 4)

	tests := []struct {
		name   string
		breaks []float64
		coeffs []float64
		dims   int
		want   error
	}{
		{"too few breaks", []float64{1}, nil, 1, ErrBreaksLength},
		{"non-increasing", []float64{0, 1, 0.5}, make([]float64, 8), 1, ErrBreaksOrder},
		{"duplicate break", []float64{0, 0, 1}, make([]float64, 8), 1, ErrBreaksOrder},
		{"nan break", []float64{0, math.NaN()}, coeffs, 1, ErrBreaksOrder},
		{"bad coeff length", []float64{0, 1}, make([]float64, 3), 1, ErrCoeffsShape},
		{"bad dims", []float64{0, 1}, coeffs, 0, ErrDims},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := New(tc.breaks, tc.coeffs, tc.dims); !errors.Is(err, tc.want) {
				t.Fatalf("New err = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestSplineIsImmutable(t *testing.T) {
	breaks := []float64{0, 1, 2}
	coeffs := []float64{1, 2, 0, 0, 3, 2, 0, 0}

	s, err := New(breaks, coeffs, 1)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	breaks[0] = 99
	coeffs[0] = 99

	got, err := s.Evaluate([]float64{0})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if got[0] != 1 {
		t.Fatalf("Evaluate(0) = %v after caller mutation, want 1", got[0])
	}

	s.Breaks()[0] = 99
	s.Coeffs()[0] = 99
	got, _ = s.Evaluate([]float64{0})
	if got[0] != 1 {
		t.Fatalf("Evaluate(0) = %v after accessor mutation, want 1", got[0])
	}
}

func TestEvaluateLine(t *testing.T) {
	s := lineSpline(t)

	xs := []float64{0, 0.5, 1, 1.5, 2}
	got, err := s.Evaluate(xs)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}

	for i, x := range xs {
		want := 2*x + 1
		if math.Abs(got[i]-want) > 1e-14 {
			t.Fatalf("y(%v) = %v, want %v", x, got[i], want)
		}
	}
}

func TestSegmentSelectionDeterministic(t *testing.T) {
	s := lineSpline(t)

	// A query exactly at the interior break must always resolve to the
	// right-hand segment, for sorted and unsorted batches alike.
	for range 10 {
		if got := s.segment(1); got != 1 {
			t.Fatalf("segment(1) = %d, want 1", got)
		}
	}

	sorted, err := s.Evaluate([]float64{0.5, 1, 1.5})
	if err != nil {
		t.Fatalf("Evaluate sorted: %v", err)
	}
	unsorted, err := s.Evaluate([]float64{1.5, 1, 0.5})
	if err != nil {
		t.Fatalf("Evaluate unsorted: %v", err)
	}
	if sorted[1] != unsorted[1] {
		t.Fatalf("knot value differs by query order: %v vs %v", sorted[1], unsorted[1])
	}
}

func TestEvaluateDerivatives(t *testing.T) {
	// Single segment y = t^3 + 2t^2 + 3t + 4 on [0, 1].
	s, err := New([]float64{0, 1}, []float64{4, 3, 2, 1}, 1)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	x := []float64{0.5}
	tests := []struct {
		nu   int
		want float64
	}{
		{0, 0.125 + 0.5 + 1.5 + 4},
		{1, 3*0.25 + 2*2*0.5 + 3},
		{2, 6*0.5 + 4},
		{3, 6},
		{4, 0},
		{7, 0},
	}

	for _, tc := range tests {
		got, err := s.Evaluate(x, WithDerivative(tc.nu))
		if err != nil {
			t.Fatalf("nu=%d: %v", tc.nu, err)
		}
		if math.Abs(got[0]-tc.want) > 1e-14 {
			t.Fatalf("nu=%d: got %v, want %v", tc.nu, got[0], tc.want)
		}
	}

	if _, err := s.Evaluate(x, WithDerivative(-1)); !errors.Is(err, ErrDerivativeOrder) {
		t.Fatalf("negative order err = %v, want ErrDerivativeOrder", err)
	}
}

func TestExtrapolation(t *testing.T) {
	s := lineSpline(t)

	// Default: boundary cubics extended as-is.
	got, err := s.Evaluate([]float64{-1, 3})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if math.Abs(got[0]-(-1)) > 1e-14 || math.Abs(got[1]-7) > 1e-14 {
		t.Fatalf("extrapolated = %v, want [-1 7]", got)
	}

	// Disabled: out-of-span queries fail.
	if _, err := s.Evaluate([]float64{-1}, WithExtrapolate(false)); !errors.Is(err, ErrOutOfDomain) {
		t.Fatalf("err = %v, want ErrOutOfDomain", err)
	}

	// Span edges remain in-domain without extrapolation.
	if _, err := s.Evaluate([]float64{0, 2}, WithExtrapolate(false)); err != nil {
		t.Fatalf("edge queries: %v", err)
	}

	// Fill value: out-of-span queries produce the fill, in-span are unchanged.
	got, err = s.Evaluate([]float64{-1, 0.5, 3}, WithFillValue(math.NaN()))
	if err != nil {
		t.Fatalf("fill Evaluate: %v", err)
	}
	if !math.IsNaN(got[0]) || !math.IsNaN(got[2]) {
		t.Fatalf("fill = %v, want NaN at both ends", got)
	}
	if math.Abs(got[1]-2) > 1e-14 {
		t.Fatalf("in-span with fill = %v, want 2", got[1])
	}
}

func TestEvaluateMultiDim(t *testing.T) {
	// One segment, two slices: slice 0 is y = t, slice 1 is y = 1 - t^3.
	coeffs := []float64{
		0, 1, // c0
		1, 0, // c1
		0, 0, // c2
		0, -1, // c3
	}
	s, err := New([]float64{0, 1}, coeffs, 2)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	got, err := s.Evaluate([]float64{0, 0.5, 1})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}

	want := []float64{0, 1, 0.5, 0.875, 1, 0}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-14 {
			t.Fatalf("out[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestEvaluateEmptyQueries(t *testing.T) {
	s := lineSpline(t)

	got, err := s.Evaluate(nil)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("len = %d, want 0", len(got))
	}
}
