package denoise_test

import (
	"fmt"
	"log"

	"github.com/cwbudde/algo-spline/spline/denoise"
)

func ExampleDenoise() {
	// With smoothing 0 the fit collapses to the least-squares line,
	// which reproduces linear data exactly.
	samples := []float64{1, 3, 5, 7}

	smoothed, err := denoise.Denoise(samples, denoise.WithSmooth(0))
	if err != nil {
		log.Fatal(err)
	}

	for _, v := range smoothed {
		fmt.Printf("%.1f ", v)
	}
	fmt.Println()
	// Output:
	// 1.0 3.0 5.0 7.0
}
