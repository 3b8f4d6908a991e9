package smooth_test

import (
	"fmt"

	"github.com/cwbudde/algo-spline/spline/smooth"
)

func ExampleFit() {
	x := []float64{0, 1, 2, 3}
	y := []float64{0, 1, 0, 1}

	res, _ := smooth.Fit(x, y, smooth.WithSmooth(0.5))
	mid, _ := res.Spline.Evaluate([]float64{1.5})

	fmt.Printf("pieces=%d inside=%v\n", res.Spline.Pieces(), mid[0] > 0 && mid[0] < 1)

	// Output:
	// pieces=3 inside=true
}

func ExampleFit_interpolation() {
	x := []float64{0, 1, 2, 3, 4}
	y := []float64{1, 2, 5, 10, 17}

	res, _ := smooth.Fit(x, y, smooth.WithSmooth(1))
	got, _ := res.Spline.Evaluate(x)

	fmt.Printf("%.0f %.0f %.0f %.0f %.0f\n", got[0], got[1], got[2], got[3], got[4])

	// Output:
	// 1 2 5 10 17
}
