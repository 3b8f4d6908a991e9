package smooth

import (
	"strconv"
	"testing"

	"github.com/cwbudde/algo-spline/internal/testutil"
)

func BenchmarkFit(b *testing.B) {
	for _, m := range []int{64, 1024, 16384} {
		b.Run("m_"+strconv.Itoa(m), func(b *testing.B) {
			x := testutil.Linspace(0, 100, m)
			y := testutil.NoisySine(3, 1, 0.2, m, 1)

			b.ReportAllocs()
			b.ResetTimer()

			for range b.N {
				if _, err := Fit(x, y, WithSmooth(0.9)); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkFitAutoSmooth(b *testing.B) {
	x := testutil.Linspace(0, 100, 1024)
	y := testutil.NoisySine(3, 1, 0.2, 1024, 1)

	b.ReportAllocs()
	b.ResetTimer()

	for range b.N {
		if _, err := Fit(x, y); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkFitMulti(b *testing.B) {
	for _, dims := range []int{4, 64} {
		b.Run("dims_"+strconv.Itoa(dims), func(b *testing.B) {
			m := 512
			x := testutil.Linspace(0, 10, m)

			y := make([]float64, dims*m)
			for d := 0; d < dims; d++ {
				copy(y[d*m:(d+1)*m], testutil.NoisySine(2, 1, 0.3, m, int64(d+1)))
			}

			b.ReportAllocs()
			b.ResetTimer()

			for range b.N {
				if _, err := FitMulti(x, y, dims, WithSmooth(0.8)); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
