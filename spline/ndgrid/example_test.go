package ndgrid_test

import (
	"fmt"

	"github.com/cwbudde/algo-spline/spline/ndgrid"
)

func ExampleFit() {
	xs := []float64{0, 1, 2, 3}
	ys := []float64{0, 1, 2}

	// f(x, y) = x + 2y sampled on the grid product.
	values := make([]float64, len(xs)*len(ys))
	for i, x := range xs {
		for j, y := range ys {
			values[i*len(ys)+j] = x + 2*y
		}
	}

	s, _ := ndgrid.Fit([][]float64{xs, ys}, values, ndgrid.WithSmooth(1))
	out, _ := s.Evaluate([][]float64{{0.5, 2.5}, {1.5}})

	fmt.Printf("%.1f %.1f\n", out[0], out[1])

	// Output:
	// 3.5 5.5
}
