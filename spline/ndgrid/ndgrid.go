package ndgrid

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-spline/spline/ppform"
	"github.com/cwbudde/algo-spline/spline/smooth"
)

var (
	// ErrNoAxes indicates an empty grid list.
	ErrNoAxes = errors.New("ndgrid: need at least one axis")
	// ErrShapeMismatch indicates values or queries inconsistent with the grids.
	ErrShapeMismatch = errors.New("ndgrid: array shape mismatch")
	// ErrOptionCount indicates per-axis options whose count does not match the axes.
	ErrOptionCount = errors.New("ndgrid: per-axis option count must match axis count")
)

type config struct {
	smooths    []float64
	weights    [][]float64
	hasSmooth  bool
	normalized bool
}

// Option configures an N-dimensional fit.
type Option func(*config)

// WithSmooth sets the smoothing parameter, either one shared value or
// one per axis. Omit it to select each axis's parameter automatically.
func WithSmooth(ps ...float64) Option {
	return func(cfg *config) {
		cfg.smooths = ps
		cfg.hasSmooth = true
	}
}

// WithWeights sets per-axis fidelity weights, one vector per axis.
// A nil entry keeps the default all-ones weights for that axis.
func WithWeights(ws ...[]float64) Option {
	return func(cfg *config) {
		cfg.weights = ws
	}
}

// WithNormalizedSmooth applies span-normalized smoothing on every axis.
func WithNormalizedSmooth() Option {
	return func(cfg *config) {
		cfg.normalized = true
	}
}

// Spline is an immutable tensor-product smoothing spline over an
// N-dimensional grid.
type Spline struct {
	grids   [][]float64
	shape   []int
	tshape  []int
	coeffs  []float64
	smooths []float64
}

// Fit fits a tensor-product cubic smoothing spline to values sampled on
// the outer product of the given per-axis grids. values is row-major
// with shape (len(grids[0]), ..., len(grids[N-1])).
func Fit(grids [][]float64, values []float64, opts ...Option) (*Spline, error) {
	var cfg config
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	n := len(grids)
	if n == 0 {
		return nil, ErrNoAxes
	}

	shape := make([]int, n)
	total := 1
	for k, g := range grids {
		shape[k] = len(g)
		total *= len(g)
	}
	if len(values) != total {
		return nil, fmt.Errorf("%w: got %d values, want %d", ErrShapeMismatch, len(values), total)
	}

	if cfg.hasSmooth && len(cfg.smooths) != 1 && len(cfg.smooths) != n {
		return nil, fmt.Errorf("%w: got %d smoothing parameters for %d axes", ErrOptionCount, len(cfg.smooths), n)
	}
	if cfg.weights != nil && len(cfg.weights) != n {
		return nil, fmt.Errorf("%w: got %d weight vectors for %d axes", ErrOptionCount, len(cfg.weights), n)
	}

	s := &Spline{
		grids:   make([][]float64, n),
		shape:   shape,
		tshape:  make([]int, n),
		smooths: make([]float64, n),
	}
	for k, g := range grids {
		s.grids[k] = append([]float64(nil), g...)
	}

	// Each pass fits the current last axis and leaves its folded
	// coefficients as the tensor's new first axis, so after n passes
	// every axis is fitted and the axis order is restored.
	tensor := values
	cur := append([]int(nil), shape...)

	for it := 0; it < n; it++ {
		axis := n - 1 - it
		m := cur[n-1]
		rows := total / m

		axisOpts := make([]smooth.Option, 0, 3)
		if cfg.weights != nil && cfg.weights[axis] != nil {
			axisOpts = append(axisOpts, smooth.WithWeights(cfg.weights[axis]))
		}
		if cfg.hasSmooth {
			p := cfg.smooths[0]
			if len(cfg.smooths) == n {
				p = cfg.smooths[axis]
			}
			axisOpts = append(axisOpts, smooth.WithSmooth(p))
		}
		if cfg.normalized {
			axisOpts = append(axisOpts, smooth.WithNormalizedSmooth())
		}

		res, err := smooth.FitMulti(grids[axis], tensor, rows, axisOpts...)
		if err != nil {
			return nil, fmt.Errorf("ndgrid: axis %d: %w", axis, err)
		}

		s.smooths[axis] = res.Smooth

		// Coefficient layout [pieces][4][rows] read as a matrix is
		// (4*pieces, rows): the fitted axis rotated to the front.
		folded := ppform.Order * res.Spline.Pieces()
		tensor = res.Spline.Coeffs()
		total = total / m * folded

		copy(cur[1:], cur[:n-1])
		cur[0] = folded
	}

	s.tshape = cur
	s.coeffs = tensor

	return s, nil
}

// Shape returns the sample counts per axis of the fitted data.
func (s *Spline) Shape() []int {
	return append([]int(nil), s.shape...)
}

// CoeffShape returns the fused coefficient tensor's per-axis lengths,
// 4*(m_k-1) for axis k.
func (s *Spline) CoeffShape() []int {
	return append([]int(nil), s.tshape...)
}

// Smooths returns the smoothing parameter used on each axis.
func (s *Spline) Smooths() []float64 {
	return append([]float64(nil), s.smooths...)
}

type evalConfig struct {
	extrapolate bool
	fill        float64
	hasFill     bool
}

// EvalOption configures an Evaluate call.
type EvalOption func(*evalConfig)

// WithExtrapolate enables or disables out-of-span evaluation on every
// axis. Enabled by default.
func WithExtrapolate(enabled bool) EvalOption {
	return func(cfg *evalConfig) {
		cfg.extrapolate = enabled
	}
}

// WithFillValue disables extrapolation and substitutes v wherever any
// axis query falls outside its grid span.
func WithFillValue(v float64) EvalOption {
	return func(cfg *evalConfig) {
		cfg.extrapolate = false
		cfg.fill = v
		cfg.hasFill = true
	}
}

// Evaluate computes fitted values on the outer product of the per-axis
// query vectors. The result is row-major with shape
// (len(queries[0]), ..., len(queries[N-1])).
func (s *Spline) Evaluate(queries [][]float64, opts ...EvalOption) ([]float64, error) {
	cfg := evalConfig{extrapolate: true}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	n := len(s.grids)
	if len(queries) != n {
		return nil, fmt.Errorf("%w: got %d query axes, want %d", ErrShapeMismatch, len(queries), n)
	}
	for k, q := range queries {
		if len(q) == 0 {
			return nil, fmt.Errorf("%w: axis %d query vector is empty", ErrShapeMismatch, k)
		}
	}

	masks, err := s.outOfSpan(queries, cfg)
	if err != nil {
		return nil, err
	}

	tensor := s.coeffs
	total := 1
	for _, l := range s.tshape {
		total *= l
	}

	// Each pass contracts the tensor's leading coefficient axis against
	// that axis's queries, then moves the evaluated axis to the back, so
	// after n passes the result is in query-axis order.
	for axis := 0; axis < n; axis++ {
		l := s.tshape[axis]
		rows := total / l

		sp, err := ppform.New(s.grids[axis], tensor, rows)
		if err != nil {
			return nil, fmt.Errorf("ndgrid: axis %d: %w", axis, err)
		}

		out, err := sp.Evaluate(queries[axis])
		if err != nil {
			return nil, fmt.Errorf("ndgrid: axis %d: %w", axis, err)
		}

		nq := len(queries[axis])
		tensor = make([]float64, rows*nq)
		for j := 0; j < nq; j++ {
			for r := 0; r < rows; r++ {
				tensor[r*nq+j] = out[j*rows+r]
			}
		}

		total = rows * nq
	}

	if masks != nil {
		applyFill(tensor, queries, masks, cfg.fill)
	}

	return tensor, nil
}

// outOfSpan enforces the extrapolation policy up front. With
// extrapolation disabled it fails on the first out-of-span query unless
// a fill value substitutes for them, in which case the per-axis masks of
// offending queries are returned.
func (s *Spline) outOfSpan(queries [][]float64, cfg evalConfig) ([][]bool, error) {
	if cfg.extrapolate {
		return nil, nil
	}

	var masks [][]bool
	for k, q := range queries {
		g := s.grids[k]
		lo, hi := g[0], g[len(g)-1]

		for j, v := range q {
			if v >= lo && v <= hi {
				continue
			}
			if !cfg.hasFill {
				return nil, fmt.Errorf("ndgrid: axis %d: %w", k, ppform.ErrOutOfDomain)
			}
			if masks == nil {
				masks = make([][]bool, len(queries))
			}
			if masks[k] == nil {
				masks[k] = make([]bool, len(q))
			}
			masks[k][j] = true
		}
	}

	return masks, nil
}

// applyFill overwrites every output element whose query point has an
// out-of-span coordinate on any axis.
func applyFill(out []float64, queries [][]float64, masks [][]bool, fill float64) {
	n := len(queries)

	for idx := range out {
		rem := idx
		for k := n - 1; k >= 0; k-- {
			j := rem % len(queries[k])
			rem /= len(queries[k])

			if masks[k] != nil && masks[k][j] {
				out[idx] = fill
				break
			}
		}
	}
}
