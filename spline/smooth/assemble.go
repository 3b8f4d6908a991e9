package smooth

import (
	"fmt"

	"github.com/cwbudde/algo-spline/spline/ppform"
	"github.com/cwbudde/algo-vecmath"
)

// assemble converts the solved second derivatives into per-segment cubic
// coefficients in local power form.
//
// With u the interior second-derivative vector padded by the natural
// boundary zeros, the fitted knot values are yi = y - 6(1-p) W^-1 d2,
// where d2 is the second difference of the padded first differences of
// u. Segment i then carries
//
//	c3 = (pu[i+1] - pu[i]) / dx[i]
//	c2 = 3 pu[i]
//	c1 = (yi[i+1] - yi[i]) / dx[i] - dx[i] (2 pu[i] + pu[i+1])
//	c0 = yi[i]
//
// with pu = p*u padded the same way.
func assemble(x, y []float64, dims int, sys *system, p float64, u []float64) (*Result, error) {
	m := sys.m
	n := m - 2
	pieces := m - 1

	// -6(1-p)/w per point, folded into one multiplier block so the knot
	// correction is two vecmath passes per slice.
	negCorr := make([]float64, m)
	for i := range negCorr {
		negCorr[i] = -6 * (1 - p) * sys.wrecip[i]
	}

	upad := make([]float64, m)
	d1pad := make([]float64, m+1)
	d2 := make([]float64, m)
	yi := make([]float64, m)
	corr := make([]float64, m)

	coeffs := make([]float64, ppform.Order*pieces*dims)

	for d := 0; d < dims; d++ {
		row := y[d*m : (d+1)*m]
		ud := u[d*n : (d+1)*n]

		upad[0], upad[m-1] = 0, 0
		copy(upad[1:m-1], ud)

		d1pad[0], d1pad[m] = 0, 0
		for i := 0; i < m-1; i++ {
			d1pad[i+1] = (upad[i+1] - upad[i]) / sys.dx[i]
		}
		for i := 0; i < m; i++ {
			d2[i] = d1pad[i+1] - d1pad[i]
		}

		// yi = y - 6(1-p) W^-1 d2
		vecmath.MulBlock(corr, d2, negCorr)
		copy(yi, row)
		vecmath.AddBlockInPlace(yi, corr)

		for i := 0; i < pieces; i++ {
			pu0 := p * upad[i]
			pu1 := p * upad[i+1]
			dx := sys.dx[i]

			base := i * ppform.Order * dims
			coeffs[base+d] = yi[i]
			coeffs[base+dims+d] = (yi[i+1]-yi[i])/dx - dx*(2*pu0+pu1)
			coeffs[base+2*dims+d] = 3 * pu0
			coeffs[base+3*dims+d] = (pu1 - pu0) / dx
		}
	}

	s, err := ppform.New(x, coeffs, dims)
	if err != nil {
		return nil, fmt.Errorf("smooth: building spline: %w", err)
	}

	return &Result{Spline: s, Smooth: p}, nil
}
