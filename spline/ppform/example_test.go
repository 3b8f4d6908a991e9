package ppform_test

import (
	"fmt"

	"github.com/cwbudde/algo-spline/spline/ppform"
)

func ExampleSpline_Evaluate() {
	// y = x^2 written piecewise over [0,1] and [1,2] in local form.
	coeffs := []float64{
		0, 0, 1, 0, // t^2 on [0,1)
		1, 2, 1, 0, // (t+1)^2 = t^2 + 2t + 1 on [1,2]
	}

	s, _ := ppform.New([]float64{0, 1, 2}, coeffs, 1)
	y, _ := s.Evaluate([]float64{0, 0.5, 1, 1.5, 2})
	fmt.Printf("%.2f %.2f %.2f %.2f %.2f\n", y[0], y[1], y[2], y[3], y[4])

	// Output:
	// 0.00 0.25 1.00 2.25 4.00
}

func ExampleWithDerivative() {
	coeffs := []float64{0, 0, 1, 0} // t^2 on [0,1]

	s, _ := ppform.New([]float64{0, 1}, coeffs, 1)
	dy, _ := s.Evaluate([]float64{0.25, 0.75}, ppform.WithDerivative(1))
	fmt.Printf("%.1f %.1f\n", dy[0], dy[1])

	// Output:
	// 0.5 1.5
}
