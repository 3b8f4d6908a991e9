package smooth

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-spline/spline/ppform"
)

var (
	// ErrGridLength indicates fewer than two sample positions.
	ErrGridLength = errors.New("smooth: grid must contain at least 2 points")
	// ErrGridOrder indicates a grid that is not finite and strictly increasing.
	ErrGridOrder = errors.New("smooth: grid must be finite and strictly increasing")
	// ErrShapeMismatch indicates sample or weight lengths inconsistent with the grid.
	ErrShapeMismatch = errors.New("smooth: array shape mismatch")
	// ErrNegativeWeight indicates a negative or non-finite weight.
	ErrNegativeWeight = errors.New("smooth: weights must be finite and non-negative")
	// ErrZeroWeights indicates a weight vector without any positive entry.
	ErrZeroWeights = errors.New("smooth: weights must contain at least one positive entry")
	// ErrSmoothRange indicates a smoothing parameter outside [0, 1].
	// Out-of-range values are rejected, never clamped.
	ErrSmoothRange = errors.New("smooth: smoothing parameter must be in [0, 1]")
)

type config struct {
	weights    []float64
	smooth     float64
	hasSmooth  bool
	normalized bool
	wantDOF    bool
}

// Option configures a fit.
type Option func(*config)

// WithWeights sets per-point fidelity weights. Weights must be finite and
// non-negative; a zero weight effectively excludes the point from the
// fidelity term while keeping its grid spacing.
func WithWeights(w []float64) Option {
	return func(cfg *config) {
		cfg.weights = w
	}
}

// WithSmooth sets the smoothing parameter p explicitly. Values outside
// [0, 1] cause the fit to fail with [ErrSmoothRange].
func WithSmooth(p float64) Option {
	return func(cfg *config) {
		cfg.smooth = p
		cfg.hasSmooth = true
	}
}

// WithNormalizedSmooth rescales the smoothing parameter so results are
// invariant to the grid span and less sensitive to non-uniform spacing
// and weight clumping. Without an explicit parameter the normalized
// midpoint 0.5 is used.
func WithNormalizedSmooth() Option {
	return func(cfg *config) {
		cfg.normalized = true
	}
}

// WithDegreesOfFreedom requests the effective degrees of freedom of the
// smoother, the trace of the influence matrix mapping samples to fitted
// values. It costs an extra O(m^2) pass and enables [GCV] scoring.
func WithDegreesOfFreedom() Option {
	return func(cfg *config) {
		cfg.wantDOF = true
	}
}

// Result is the outcome of a fit.
type Result struct {
	// Spline is the fitted piecewise cubic.
	Spline *ppform.Spline
	// Smooth is the smoothing parameter actually used, whether given,
	// normalized, or chosen automatically.
	Smooth float64
	// DOF is the effective degrees of freedom when requested via
	// [WithDegreesOfFreedom], NaN otherwise.
	DOF float64
}

// Fit fits a cubic smoothing spline to scalar samples y over grid x.
func Fit(x, y []float64, opts ...Option) (*Result, error) {
	return FitMulti(x, y, 1, opts...)
}

// FitMulti fits vector-valued samples sharing one grid. y is laid out
// slice-major: y[d*len(x)+i] is the d-th slice's sample at x[i]. All
// slices are fitted with the same weights and smoothing parameter and
// reuse a single factorization of the penalized system.
func FitMulti(x, y []float64, dims int, opts ...Option) (*Result, error) {
	cfg := config{smooth: math.NaN()}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	m := len(x)
	if m < 2 {
		return nil, ErrGridLength
	}
	if dims < 1 {
		return nil, fmt.Errorf("%w: dims must be >= 1, got %d", ErrShapeMismatch, dims)
	}
	if len(y) != dims*m {
		return nil, fmt.Errorf("%w: got %d samples, want %d", ErrShapeMismatch, len(y), dims*m)
	}

	for i, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, ErrGridOrder
		}
		if i > 0 && v <= x[i-1] {
			return nil, ErrGridOrder
		}
	}

	w, err := checkWeights(cfg.weights, m)
	if err != nil {
		return nil, err
	}

	if cfg.hasSmooth && (math.IsNaN(cfg.smooth) || cfg.smooth < 0 || cfg.smooth > 1) {
		return nil, fmt.Errorf("%w: got %v", ErrSmoothRange, cfg.smooth)
	}

	if m == 2 {
		return fitLinear(x, y, dims, cfg.wantDOF)
	}

	return fitCubic(x, y, dims, w, cfg)
}

// checkWeights validates weights and defaults them to all-ones.
func checkWeights(w []float64, m int) ([]float64, error) {
	if w == nil {
		w = make([]float64, m)
		for i := range w {
			w[i] = 1
		}

		return w, nil
	}

	if len(w) != m {
		return nil, fmt.Errorf("%w: got %d weights, want %d", ErrShapeMismatch, len(w), m)
	}

	positive := false
	for _, v := range w {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return nil, ErrNegativeWeight
		}
		if v > 0 {
			positive = true
		}
	}
	if !positive {
		return nil, ErrZeroWeights
	}

	return w, nil
}

// fitLinear handles the two-point degenerate case: a single exact linear
// segment, independent of the smoothing parameter.
func fitLinear(x, y []float64, dims int, wantDOF bool) (*Result, error) {
	dx := x[1] - x[0]

	coeffs := make([]float64, ppform.Order*dims)
	for d := 0; d < dims; d++ {
		y0 := y[d*2]
		y1 := y[d*2+1]
		coeffs[d] = y0
		coeffs[dims+d] = (y1 - y0) / dx
	}

	s, err := ppform.New(x, coeffs, dims)
	if err != nil {
		return nil, fmt.Errorf("smooth: building spline: %w", err)
	}

	dof := math.NaN()
	if wantDOF {
		dof = 2
	}

	return &Result{Spline: s, Smooth: 1, DOF: dof}, nil
}
