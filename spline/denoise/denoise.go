// Package denoise smooths uniformly sampled signals with cubic
// smoothing splines.
//
// The smoothing strength is picked automatically from the signal itself:
// a periodogram-based noise floor estimate sets a target residual power,
// and the smoothing parameter is found by bisection so the fit's mean
// squared residual matches that target (discrepancy principle). An
// explicit smoothing parameter bypasses the estimator.
package denoise

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-spline/spline/ppform"
	"github.com/cwbudde/algo-spline/spline/smooth"
)

var (
	// ErrSignalLength indicates a signal with fewer than two samples.
	ErrSignalLength = errors.New("denoise: signal must contain at least 2 samples")
	// ErrShortSignal indicates a signal too short for spectral noise estimation.
	ErrShortSignal = errors.New("denoise: signal too short for noise estimation")
	// ErrInvalidSampleRate indicates a non-positive sample rate.
	ErrInvalidSampleRate = errors.New("denoise: sample rate must be positive")
)

// bisectIters bounds the smoothing-parameter search; 40 halvings pin p
// to about 1e-12.
const bisectIters = 40

type config struct {
	sampleRate float64
	smooth     float64
	hasSmooth  bool
}

// Option configures a denoising fit.
type Option func(*config)

// WithSampleRate sets the sample rate used to place the implicit time
// grid (sample i sits at i/rate). Defaults to 1.
func WithSampleRate(rate float64) Option {
	return func(cfg *config) {
		cfg.sampleRate = rate
	}
}

// WithSmooth fixes the smoothing parameter instead of estimating it
// from the noise floor.
func WithSmooth(p float64) Option {
	return func(cfg *config) {
		cfg.smooth = p
		cfg.hasSmooth = true
	}
}

// Result is the outcome of a denoising fit.
type Result struct {
	// Spline is the fitted piecewise cubic over the implicit time grid.
	Spline *ppform.Spline
	// Smooth is the smoothing parameter used.
	Smooth float64
	// Sigma is the estimated noise floor (standard deviation), zero when
	// the smoothing parameter was given explicitly or estimation was not
	// possible.
	Sigma float64
	// X is the implicit time grid the signal was fitted over.
	X []float64
}

// Fit fits a smoothing spline to a uniformly sampled signal.
func Fit(samples []float64, opts ...Option) (*Result, error) {
	cfg := config{sampleRate: 1}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if len(samples) < 2 {
		return nil, ErrSignalLength
	}
	if cfg.sampleRate <= 0 {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidSampleRate, cfg.sampleRate)
	}

	x := make([]float64, len(samples))
	for i := range x {
		x[i] = float64(i) / cfg.sampleRate
	}

	if cfg.hasSmooth {
		res, err := smooth.Fit(x, samples, smooth.WithSmooth(cfg.smooth))
		if err != nil {
			return nil, err
		}

		return &Result{Spline: res.Spline, Smooth: res.Smooth, X: x}, nil
	}

	sigma, err := NoiseFloor(samples)
	if errors.Is(err, ErrShortSignal) {
		// Not enough spectrum to estimate from; fall back to the trace
		// balancing default.
		res, ferr := smooth.Fit(x, samples)
		if ferr != nil {
			return nil, ferr
		}

		return &Result{Spline: res.Spline, Smooth: res.Smooth, X: x}, nil
	}
	if err != nil {
		return nil, err
	}

	res, p, err := bisectSmooth(x, samples, sigma*sigma)
	if err != nil {
		return nil, err
	}

	return &Result{Spline: res.Spline, Smooth: p, Sigma: sigma, X: x}, nil
}

// Denoise returns the smoothed signal sampled on the original grid.
func Denoise(samples []float64, opts ...Option) ([]float64, error) {
	res, err := Fit(samples, opts...)
	if err != nil {
		return nil, err
	}

	return res.Spline.Evaluate(res.X)
}

// bisectSmooth searches the smoothing parameter whose fit leaves a mean
// squared residual equal to the target noise power. The residual shrinks
// monotonically as p grows, so plain bisection converges; with target 0
// it drives p to the interpolating end.
func bisectSmooth(x, y []float64, targetPower float64) (*smooth.Result, float64, error) {
	lo, hi := 0.0, 1.0

	for range bisectIters {
		mid := 0.5 * (lo + hi)

		res, err := smooth.Fit(x, y, smooth.WithSmooth(mid))
		if err != nil {
			return nil, 0, err
		}

		if residualPower(y, res.Spline) > targetPower {
			lo = mid
		} else {
			hi = mid
		}
	}

	p := 0.5 * (lo + hi)
	res, err := smooth.Fit(x, y, smooth.WithSmooth(p))
	if err != nil {
		return nil, 0, err
	}

	return res, p, nil
}

// residualPower computes the mean squared residual at the knots.
func residualPower(y []float64, s *ppform.Spline) float64 {
	coeffs := s.Coeffs()

	sum := 0.0
	for i := 0; i < len(y)-1; i++ {
		r := y[i] - coeffs[i*ppform.Order]
		sum += r * r
	}

	// The last knot value comes from the closing segment's cubic.
	breaks := s.Breaks()
	last := len(breaks) - 1
	dx := breaks[last] - breaks[last-1]
	base := (last - 1) * ppform.Order
	end := ((coeffs[base+3]*dx+coeffs[base+2])*dx+coeffs[base+1])*dx + coeffs[base]

	r := y[last] - end
	sum += r * r

	return sum / float64(len(y))
}
