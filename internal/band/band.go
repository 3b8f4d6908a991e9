// Package band implements symmetric banded matrices stored as parallel
// diagonal slices, with an LDL^T factorization for positive definite
// systems. Factor and solve run in O(n * bandwidth^2) time and O(n)
// extra space.
package band

import (
	"errors"
	"math"
)

var (
	// ErrSingular indicates a zero or negative pivot during factorization.
	ErrSingular = errors.New("band: system is singular or not positive definite")
	// ErrNonFinite indicates a NaN or Inf encountered during factor or solve.
	ErrNonFinite = errors.New("band: non-finite value in system")
	// ErrShape indicates mismatched matrix and vector sizes.
	ErrShape = errors.New("band: size mismatch")
)

// Matrix is a symmetric banded n-by-n matrix. Only the lower band is
// stored: diag(d)[i] holds A[i+d][i] for offsets d = 0..bandwidth.
type Matrix struct {
	n     int
	diags [][]float64
}

// New creates a zero matrix of size n with the given bandwidth.
// Diagonal d has max(n-d, 0) entries: a bandwidth at or above n just
// leaves the outer diagonals empty, so small systems accept the same
// bandwidth as large ones.
func New(n, bandwidth int) *Matrix {
	if bandwidth < 0 {
		bandwidth = 0
	}

	diags := make([][]float64, bandwidth+1)
	for d := range diags {
		diags[d] = make([]float64, max(n-d, 0))
	}

	return &Matrix{n: n, diags: diags}
}

// N returns the matrix size.
func (m *Matrix) N() int { return m.n }

// Bandwidth returns the number of sub-diagonals.
func (m *Matrix) Bandwidth() int { return len(m.diags) - 1 }

// Diag returns the backing slice of sub-diagonal d (0 = main diagonal).
// Writing through it mutates the matrix.
func (m *Matrix) Diag(d int) []float64 { return m.diags[d] }

// At returns A[i][j]. Entries outside the band are zero.
func (m *Matrix) At(i, j int) float64 {
	if j > i {
		i, j = j, i
	}

	d := i - j
	if d >= len(m.diags) {
		return 0
	}

	return m.diags[d][j]
}

// Trace returns the sum of the main diagonal.
func (m *Matrix) Trace() float64 {
	sum := 0.0
	for _, v := range m.diags[0] {
		sum += v
	}

	return sum
}

// Factor holds the LDL^T decomposition of a symmetric banded matrix.
// L is unit lower triangular with the same bandwidth, D is diagonal.
type Factor struct {
	n    int
	low  [][]float64 // low[d][j] = L[j+d][j], d = 1..bandwidth
	d    []float64
	dinv []float64
}

// Cholesky computes the LDL^T factorization. It fails with ErrSingular
// when a pivot is not strictly positive and with ErrNonFinite when the
// matrix contains NaN or Inf.
func (m *Matrix) Cholesky() (*Factor, error) {
	n := m.n
	bw := m.Bandwidth()

	f := &Factor{
		n:    n,
		low:  make([][]float64, bw+1),
		d:    make([]float64, n),
		dinv: make([]float64, n),
	}
	for d := 1; d <= bw; d++ {
		f.low[d] = make([]float64, max(n-d, 0))
	}

	for j := 0; j < n; j++ {
		dj := m.diags[0][j]

		lo := j - bw
		if lo < 0 {
			lo = 0
		}
		for k := lo; k < j; k++ {
			l := f.low[j-k][k]
			dj -= l * l * f.d[k]
		}

		if math.IsNaN(dj) || math.IsInf(dj, 0) {
			return nil, ErrNonFinite
		}
		if dj <= 0 {
			return nil, ErrSingular
		}

		f.d[j] = dj
		f.dinv[j] = 1 / dj

		hi := j + bw
		if hi > n-1 {
			hi = n - 1
		}
		for i := j + 1; i <= hi; i++ {
			v := 0.0
			if i-j <= bw {
				v = m.diags[i-j][j]
			}

			lo2 := i - bw
			if lo2 < 0 {
				lo2 = 0
			}
			for k := lo2; k < j; k++ {
				v -= f.low[i-k][k] * f.low[j-k][k] * f.d[k]
			}

			f.low[i-j][j] = v * f.dinv[j]
		}
	}

	return f, nil
}

// Solve solves A x = b in place, overwriting b with the solution.
// It fails with ErrNonFinite when the result contains NaN or Inf.
func (f *Factor) Solve(b []float64) error {
	if len(b) != f.n {
		return ErrShape
	}

	n := f.n
	bw := len(f.low) - 1

	// Forward substitution: L z = b.
	for j := 0; j < n; j++ {
		hi := j + bw
		if hi > n-1 {
			hi = n - 1
		}
		for i := j + 1; i <= hi; i++ {
			b[i] -= f.low[i-j][j] * b[j]
		}
	}

	// Diagonal scaling: D y = z.
	for j := 0; j < n; j++ {
		b[j] *= f.dinv[j]
	}

	// Back substitution: L^T x = y.
	for j := n - 1; j >= 0; j-- {
		hi := j + bw
		if hi > n-1 {
			hi = n - 1
		}
		for i := j + 1; i <= hi; i++ {
			b[j] -= f.low[i-j][j] * b[i]
		}
	}

	for _, v := range b {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ErrNonFinite
		}
	}

	return nil
}
