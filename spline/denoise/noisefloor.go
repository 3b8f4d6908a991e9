package denoise

import (
	"fmt"
	"math"
	"sort"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// minNoiseFloorLen is the shortest signal the periodogram estimator
// accepts; below it the upper-quarter band has too few bins.
const minNoiseFloorLen = 16

// NoiseFloor estimates the standard deviation of broadband noise in a
// uniformly sampled signal from the median periodogram ordinate of the
// upper quarter of the spectrum, where smooth signal content has decayed.
// For white noise the ordinates are exponentially distributed with mean
// n*sigma^2, so the median divided by n*ln(2) estimates the variance
// robustly against narrowband signal leakage.
func NoiseFloor(samples []float64) (float64, error) {
	n := len(samples)
	if n < minNoiseFloorLen {
		return 0, ErrShortSignal
	}

	mean := 0.0
	for _, v := range samples {
		mean += v
	}
	mean /= float64(n)

	fftSize := nextPowerOf2(n)

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return 0, fmt.Errorf("denoise: creating FFT plan: %w", err)
	}

	in := make([]complex128, fftSize)
	for i, v := range samples {
		in[i] = complex(v-mean, 0)
	}

	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return 0, fmt.Errorf("denoise: forward FFT: %w", err)
	}

	lo := fftSize / 4
	hi := fftSize / 2
	bins := hi - lo

	re := make([]float64, bins)
	im := make([]float64, bins)
	for k := 0; k < bins; k++ {
		re[k] = real(out[lo+k])
		im[k] = imag(out[lo+k])
	}

	power := make([]float64, bins)
	vecmath.Power(power, re, im)

	sort.Float64s(power)
	median := power[bins/2]
	if bins%2 == 0 {
		median = 0.5 * (power[bins/2-1] + power[bins/2])
	}

	return math.Sqrt(median / (math.Ln2 * float64(n))), nil
}

func nextPowerOf2(n int) int {
	size := 1
	for size < n {
		size <<= 1
	}

	return size
}
