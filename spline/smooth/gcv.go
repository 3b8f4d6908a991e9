package smooth

import (
	"fmt"

	"github.com/cwbudde/algo-spline/internal/band"
)

// degreesOfFreedom computes the trace of the influence matrix
// S = I - 6(1-p) W^-1 Q^T A^-1 Q by solving one banded system per grid
// point against the sparse columns of Q. O(m^2) total.
func degreesOfFreedom(sys *system, factor *band.Factor, p float64) (float64, error) {
	m := sys.m
	n := m - 2
	sp := 6 * (1 - p)
	if sp == 0 {
		return float64(m), nil
	}

	col := make([]float64, n)
	rhs := make([]float64, n)

	sum := 0.0
	for j := 0; j < m; j++ {
		for i := range col {
			col[i] = 0
		}

		// Non-zero rows of Q column j: rows j-2, j-1, j clipped to [0, n).
		if j <= n-1 {
			col[j] += 1 / sys.dx[j]
		}
		if j >= 1 && j-1 <= n-1 {
			col[j-1] -= 1/sys.dx[j-1] + 1/sys.dx[j]
		}
		if j >= 2 {
			col[j-2] += 1 / sys.dx[j-1]
		}

		copy(rhs, col)
		if err := factor.Solve(rhs); err != nil {
			return 0, err
		}

		dot := 0.0
		for i := range col {
			dot += col[i] * rhs[i]
		}

		sum += dot * sys.wrecip[j]
	}

	return float64(m) - sp*sum, nil
}

// GCV computes the generalized cross-validation criterion for a fit with
// known degrees of freedom: ||y - fitted||^2 / (n - dof)^2. Lower is
// better; minimizing it over the smoothing parameter penalizes
// overfitting. dof comes from a fit made with [WithDegreesOfFreedom].
func GCV(y, fitted []float64, dof float64) (float64, error) {
	if len(y) != len(fitted) {
		return 0, fmt.Errorf("%w: got %d fitted values, want %d", ErrShapeMismatch, len(fitted), len(y))
	}

	rss := 0.0
	for i := range y {
		r := y[i] - fitted[i]
		rss += r * r
	}

	denom := float64(len(y)) - dof
	return rss / (denom * denom), nil
}
