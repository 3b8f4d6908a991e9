package smooth

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-spline/internal/band"
)

// zeroWeightBoost scales the largest finite weight reciprocal to stand in
// for 1/0 when a point carries exactly zero weight. The point's residual
// then costs (almost) nothing, excluding it from the fidelity term while
// keeping the system finite.
const zeroWeightBoost = 1e10

// system holds the banded operators of the penalized least-squares
// problem for one grid: the curvature penalty R (tridiagonal), the
// weighted residual operator Q^T W^-1 Q (pentadiagonal), and the grid
// spacings they were built from.
type system struct {
	m      int
	dx     []float64
	wrecip []float64
	r      *band.Matrix
	qwq    *band.Matrix
}

// buildSystem constructs R and Q^T W^-1 Q from the grid and weights.
// Requires m >= 3 (interior knots exist).
func buildSystem(x, w []float64) *system {
	m := len(x)
	n := m - 2

	dx := make([]float64, m-1)
	for i := range dx {
		dx[i] = x[i+1] - x[i]
	}

	wrecip := weightReciprocals(w)

	// R[i][i] = 2(dx[i] + dx[i+1]), R[i+1][i] = dx[i+1].
	r := band.New(n, 1)
	rd0 := r.Diag(0)
	rd1 := r.Diag(1)
	for i := 0; i < n; i++ {
		rd0[i] = 2 * (dx[i] + dx[i+1])
	}
	for i := 0; i < n-1; i++ {
		rd1[i] = dx[i+1]
	}

	// Q row i has entries 1/dx[i], -(1/dx[i] + 1/dx[i+1]), 1/dx[i+1]
	// at columns i, i+1, i+2. QWQ = Q W^-1 Q^T is pentadiagonal.
	qwq := band.New(n, 2)
	qd0 := qwq.Diag(0)
	qd1 := qwq.Diag(1)
	qd2 := qwq.Diag(2)

	q := func(row, col int) float64 {
		switch col - row {
		case 0:
			return 1 / dx[row]
		case 1:
			return -(1/dx[row] + 1/dx[row+1])
		case 2:
			return 1 / dx[row+1]
		}

		return 0
	}

	for i := 0; i < n; i++ {
		qd0[i] = q(i, i)*q(i, i)*wrecip[i] +
			q(i, i+1)*q(i, i+1)*wrecip[i+1] +
			q(i, i+2)*q(i, i+2)*wrecip[i+2]
	}
	for i := 0; i < n-1; i++ {
		qd1[i] = q(i, i+1)*q(i+1, i+1)*wrecip[i+1] +
			q(i, i+2)*q(i+1, i+2)*wrecip[i+2]
	}
	for i := 0; i < n-2; i++ {
		qd2[i] = q(i, i+2) * q(i+2, i+2) * wrecip[i+2]
	}

	return &system{m: m, dx: dx, wrecip: wrecip, r: r, qwq: qwq}
}

// weightReciprocals returns 1/w with zero weights replaced by a large
// finite reciprocal (see zeroWeightBoost).
func weightReciprocals(w []float64) []float64 {
	maxRecip := 0.0
	for _, v := range w {
		if v > 0 && 1/v > maxRecip {
			maxRecip = 1 / v
		}
	}

	out := make([]float64, len(w))
	for i, v := range w {
		if v > 0 {
			out[i] = 1 / v
		} else {
			out[i] = maxRecip * zeroWeightBoost
		}
	}

	return out
}

// combined assembles A = 6(1-p)*QWQ + p*R.
func (sys *system) combined(p float64) *band.Matrix {
	n := sys.m - 2
	sp := 6 * (1 - p)

	a := band.New(n, 2)
	ad0 := a.Diag(0)
	ad1 := a.Diag(1)
	ad2 := a.Diag(2)

	qd0 := sys.qwq.Diag(0)
	qd1 := sys.qwq.Diag(1)
	qd2 := sys.qwq.Diag(2)
	rd0 := sys.r.Diag(0)
	rd1 := sys.r.Diag(1)

	for i := 0; i < n; i++ {
		ad0[i] = sp*qd0[i] + p*rd0[i]
	}
	for i := 0; i < n-1; i++ {
		ad1[i] = sp*qd1[i] + p*rd1[i]
	}
	for i := 0; i < n-2; i++ {
		ad2[i] = sp * qd2[i]
	}

	return a
}

// autoSmooth picks the default smoothing parameter by balancing the
// traces of the two operators: p*trace(R) equals 6*(1-p)*trace(QWQ).
func (sys *system) autoSmooth() float64 {
	return 1 / (1 + sys.r.Trace()/(6*sys.qwq.Trace()))
}

// normalizeSmooth rescales a nominal smoothing parameter s (0.5 when
// unset) so the fit is invariant to the grid span and less sensitive to
// spacing and weight non-uniformity.
func normalizeSmooth(x, w []float64, s float64, hasSmooth bool) float64 {
	m := float64(len(x))
	span := x[len(x)-1] - x[0]

	sumDx2 := 0.0
	for i := 1; i < len(x); i++ {
		d := x[i] - x[i-1]
		sumDx2 += d * d
	}

	sumW, sumW2 := 0.0, 0.0
	for _, v := range w {
		sumW += v
		sumW2 += v * v
	}

	effX := 1 + span*span/sumDx2
	effW := sumW * sumW / sumW2
	k := 80 * math.Pow(span, 3) * math.Pow(m, -2) / math.Sqrt(effX) / math.Sqrt(effW)

	if !hasSmooth {
		s = 0.5
	}

	return s / (s + (1-s)*k)
}

// fitCubic runs the full pipeline for m >= 3: build the penalized
// system, solve for interior second derivatives per slice, and assemble
// segment coefficients.
func fitCubic(x, y []float64, dims int, w []float64, cfg config) (*Result, error) {
	m := len(x)
	n := m - 2

	sys := buildSystem(x, w)

	var p float64
	switch {
	case cfg.normalized:
		p = normalizeSmooth(x, w, cfg.smooth, cfg.hasSmooth)
	case cfg.hasSmooth:
		p = cfg.smooth
	default:
		p = sys.autoSmooth()
	}

	factor, err := sys.combined(p).Cholesky()
	if err != nil {
		return nil, fmt.Errorf("smooth: factoring penalized system: %w", err)
	}

	// Second derivative estimates at interior knots, slice-major.
	u := make([]float64, dims*n)
	rhs := make([]float64, n)

	for d := 0; d < dims; d++ {
		row := y[d*m : (d+1)*m]
		for i := 0; i < n; i++ {
			left := (row[i+1] - row[i]) / sys.dx[i]
			right := (row[i+2] - row[i+1]) / sys.dx[i+1]
			rhs[i] = right - left
		}

		if err := factor.Solve(rhs); err != nil {
			return nil, fmt.Errorf("smooth: solving penalized system: %w", err)
		}

		copy(u[d*n:(d+1)*n], rhs)
	}

	res, err := assemble(x, y, dims, sys, p, u)
	if err != nil {
		return nil, err
	}

	res.DOF = math.NaN()
	if cfg.wantDOF {
		dof, err := degreesOfFreedom(sys, factor, p)
		if err != nil {
			return nil, fmt.Errorf("smooth: computing degrees of freedom: %w", err)
		}
		res.DOF = dof
	}

	return res, nil
}
