package ppform

import (
	"math/rand"
	"strconv"
	"testing"
)

func benchSpline(b *testing.B, pieces, dims int) *Spline {
	b.Helper()

	breaks := make([]float64, pieces+1)
	for i := range breaks {
		breaks[i] = float64(i)
	}

	rng := rand.New(rand.NewSource(1))
	coeffs := make([]float64, Order*pieces*dims)
	for i := range coeffs {
		coeffs[i] = rng.Float64()
	}

	s, err := New(breaks, coeffs, dims)
	if err != nil {
		b.Fatalf("New: %v", err)
	}

	return s
}

func BenchmarkEvaluateSorted(b *testing.B) {
	for _, n := range []int{256, 4096} {
		b.Run("queries_"+strconv.Itoa(n), func(b *testing.B) {
			s := benchSpline(b, 128, 1)

			xs := make([]float64, n)
			for i := range xs {
				xs[i] = 128 * float64(i) / float64(n)
			}

			b.ReportAllocs()
			b.ResetTimer()

			for range b.N {
				if _, err := s.Evaluate(xs); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkEvaluateMultiDim(b *testing.B) {
	for _, dims := range []int{8, 64} {
		b.Run("dims_"+strconv.Itoa(dims), func(b *testing.B) {
			s := benchSpline(b, 64, dims)

			xs := make([]float64, 512)
			for i := range xs {
				xs[i] = 64 * float64(i) / 512
			}

			b.ReportAllocs()
			b.ResetTimer()

			for range b.N {
				if _, err := s.Evaluate(xs); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
