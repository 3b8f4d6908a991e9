package ppform

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
)

type evalConfig struct {
	derivative  int
	extrapolate bool
	fill        float64
	hasFill     bool
}

// EvalOption configures a single Evaluate call.
type EvalOption func(*evalConfig)

// WithDerivative selects the derivative order to evaluate.
// Order 0 (the default) evaluates the cubic itself. Orders above 3
// yield zeros, since every higher derivative of a cubic vanishes.
func WithDerivative(order int) EvalOption {
	return func(cfg *evalConfig) {
		cfg.derivative = order
	}
}

// WithExtrapolate enables or disables out-of-span evaluation.
// Extrapolation is enabled by default and evaluates the nearest boundary
// segment's polynomial unchanged. When disabled, out-of-span queries fail
// with [ErrOutOfDomain].
func WithExtrapolate(enabled bool) EvalOption {
	return func(cfg *evalConfig) {
		cfg.extrapolate = enabled
	}
}

// WithFillValue disables extrapolation and substitutes v for every
// out-of-span query instead of returning an error.
func WithFillValue(v float64) EvalOption {
	return func(cfg *evalConfig) {
		cfg.extrapolate = false
		cfg.fill = v
		cfg.hasFill = true
	}
}

// Evaluate computes the spline (or one of its derivatives) at each query
// point. The result is laid out query-major: element j*Dims()+d holds the
// value of slice d at xs[j].
//
// Sorted query batches locate segments with an advancing cursor; unsorted
// queries fall back to binary search per point.
func (s *Spline) Evaluate(xs []float64, opts ...EvalOption) ([]float64, error) {
	cfg := evalConfig{extrapolate: true}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if cfg.derivative < 0 {
		return nil, ErrDerivativeOrder
	}

	out := make([]float64, len(xs)*s.dims)
	if len(xs) == 0 {
		return out, nil
	}

	lo, hi := s.Span()

	var scratch, scratch2 []float64
	if s.dims > 1 && cfg.derivative == 0 {
		scratch = make([]float64, s.dims)
		scratch2 = make([]float64, s.dims)
	}

	cur := 0
	prev := math.Inf(-1)

	for j, x := range xs {
		dst := out[j*s.dims : (j+1)*s.dims]

		if x < lo || x > hi {
			if !cfg.extrapolate {
				if !cfg.hasFill {
					return nil, ErrOutOfDomain
				}
				for d := range dst {
					dst[d] = cfg.fill
				}
				prev = x
				continue
			}
		}

		if x >= prev && x >= s.breaks[cur] {
			for cur < s.Pieces()-1 && x >= s.breaks[cur+1] {
				cur++
			}
		} else {
			cur = s.segment(x)
		}
		prev = x

		t := x - s.breaks[cur]
		s.evalSegment(dst, cur, t, cfg.derivative, scratch, scratch2)
	}

	return out, nil
}

// evalSegment writes the requested derivative of segment i at local
// coordinate t into dst (length dims) via Horner's rule.
func (s *Spline) evalSegment(dst []float64, i int, t float64, nu int, scratch, scratch2 []float64) {
	base := i * Order * s.dims
	c0 := s.coeffs[base : base+s.dims]
	c1 := s.coeffs[base+s.dims : base+2*s.dims]
	c2 := s.coeffs[base+2*s.dims : base+3*s.dims]
	c3 := s.coeffs[base+3*s.dims : base+4*s.dims]

	switch {
	case nu == 0 && s.dims > 1:
		// ((c3*t + c2)*t + c1)*t + c0 across the whole slice block.
		vecmath.ScaleBlock(scratch, c3, t)
		vecmath.AddBlockInPlace(scratch, c2)
		vecmath.ScaleBlock(scratch2, scratch, t)
		vecmath.AddBlockInPlace(scratch2, c1)
		vecmath.ScaleBlock(scratch, scratch2, t)
		vecmath.AddBlockInPlace(scratch, c0)
		copy(dst, scratch)
	case nu == 0:
		dst[0] = ((c3[0]*t+c2[0])*t+c1[0])*t + c0[0]
	case nu == 1:
		for d := range dst {
			dst[d] = (3*c3[d]*t+2*c2[d])*t + c1[d]
		}
	case nu == 2:
		for d := range dst {
			dst[d] = 6*c3[d]*t + 2*c2[d]
		}
	case nu == 3:
		for d := range dst {
			dst[d] = 6 * c3[d]
		}
	default:
		for d := range dst {
			dst[d] = 0
		}
	}
}
