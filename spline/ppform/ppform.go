package ppform

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrBreaksLength indicates fewer than two breakpoints.
	ErrBreaksLength = errors.New("ppform: need at least 2 breakpoints")
	// ErrBreaksOrder indicates breakpoints that are not strictly increasing or not finite.
	ErrBreaksOrder = errors.New("ppform: breakpoints must be finite and strictly increasing")
	// ErrCoeffsShape indicates a coefficient slice whose length does not match 4 * pieces * dims.
	ErrCoeffsShape = errors.New("ppform: coefficient length must equal 4*pieces*dims")
	// ErrDims indicates a non-positive trailing dimension count.
	ErrDims = errors.New("ppform: dims must be >= 1")
	// ErrOutOfDomain indicates an out-of-span query while extrapolation is disabled.
	ErrOutOfDomain = errors.New("ppform: query outside spline domain")
	// ErrDerivativeOrder indicates a negative derivative order.
	ErrDerivativeOrder = errors.New("ppform: derivative order must be >= 0")
)

// Order is the number of polynomial coefficients per segment.
const Order = 4

// Spline is an immutable piecewise cubic in local power form.
//
// Coefficients are stored flat as [pieces][4][dims]: the value of slice d
// on segment i at local coordinate t is evaluated from the four blocks
// coeffs[(i*4+k)*dims+d] for k = 0 (constant) through 3 (cubic).
type Spline struct {
	breaks []float64
	coeffs []float64
	dims   int
}

// New constructs a Spline from breakpoints and a flat coefficient tensor.
// Both slices are copied; the Spline does not alias caller memory.
func New(breaks []float64, coeffs []float64, dims int) (*Spline, error) {
	if len(breaks) < 2 {
		return nil, ErrBreaksLength
	}
	if dims < 1 {
		return nil, ErrDims
	}

	for i, v := range breaks {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, ErrBreaksOrder
		}
		if i > 0 && v <= breaks[i-1] {
			return nil, ErrBreaksOrder
		}
	}

	pieces := len(breaks) - 1
	if len(coeffs) != Order*pieces*dims {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrCoeffsShape, len(coeffs), Order*pieces*dims)
	}

	s := &Spline{
		breaks: append([]float64(nil), breaks...),
		coeffs: append([]float64(nil), coeffs...),
		dims:   dims,
	}

	return s, nil
}

// Breaks returns a copy of the breakpoints.
func (s *Spline) Breaks() []float64 {
	return append([]float64(nil), s.breaks...)
}

// Coeffs returns a copy of the flat coefficient tensor.
func (s *Spline) Coeffs() []float64 {
	return append([]float64(nil), s.coeffs...)
}

// Pieces returns the number of polynomial segments.
func (s *Spline) Pieces() int { return len(s.breaks) - 1 }

// Dims returns the number of trailing data slices per query point.
func (s *Spline) Dims() int { return s.dims }

// Span returns the domain covered by the breakpoints.
func (s *Spline) Span() (lo, hi float64) {
	return s.breaks[0], s.breaks[len(s.breaks)-1]
}

// segment returns the index of the segment whose cubic evaluates x.
// Queries exactly at an interior breakpoint select the right-hand
// segment (half-open convention); out-of-span queries clamp to the
// nearest boundary segment.
func (s *Spline) segment(x float64) int {
	n := len(s.breaks)
	if x <= s.breaks[0] {
		return 0
	}
	if x >= s.breaks[n-1] {
		return n - 2
	}

	lo, hi := 0, n-1
	for hi-lo > 1 {
		mid := int(uint(lo+hi) >> 1)
		if s.breaks[mid] <= x {
			lo = mid
		} else {
			hi = mid
		}
	}

	return lo
}
