// Command splinefit fits a cubic smoothing spline to column data and
// prints fit statistics.
//
// Usage:
//
//	splinefit [flags] [file]
//
// The input holds one sample per line: either "x y" pairs or a single
// y column (fitted over an implicit uniform grid). Without a file it
// reads standard input.
//
// Examples:
//
//	splinefit samples.txt
//	splinefit -smooth 0.9 samples.txt
//	splinefit -denoise -rate 48000 recording.txt
//	splinefit -eval 50 samples.txt
package main

import (
	"bufio"
	"flag"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-spline/spline/denoise"
	"github.com/cwbudde/algo-spline/spline/ppform"
	"github.com/cwbudde/algo-spline/spline/smooth"
)

func main() {
	smoothFlag := flag.Float64("smooth", math.NaN(), "smoothing parameter in [0, 1] (default: automatic)")
	normalized := flag.Bool("normalized", false, "treat -smooth as a scale-invariant ratio")
	useDenoise := flag.Bool("denoise", false, "pick smoothing from the signal's spectral noise floor (y-only input)")
	rate := flag.Float64("rate", 1, "sample rate for y-only input")
	evalN := flag.Int("eval", 0, "print the fit evaluated at this many evenly spaced points")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: splinefit [flags] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Fits a cubic smoothing spline to column data and prints fit statistics.\n")
		fmt.Fprintf(os.Stderr, "Input lines hold \"x y\" pairs or a single y column; stdin is read when\n")
		fmt.Fprintf(os.Stderr, "no file is given.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  splinefit samples.txt\n")
		fmt.Fprintf(os.Stderr, "  splinefit -smooth 0.9 samples.txt\n")
		fmt.Fprintf(os.Stderr, "  splinefit -denoise -rate 48000 recording.txt\n")
	}
	flag.Parse()

	in := os.Stdin
	if flag.NArg() > 0 {
		f, err := os.Open(flag.Arg(0))
		if err != nil {
			fail("%v", err)
		}
		defer f.Close()
		in = f
	}

	x, y, err := readColumns(in)
	if err != nil {
		fail("%v", err)
	}

	if *useDenoise {
		if x != nil {
			fail("-denoise needs y-only input on a uniform grid")
		}
		runDenoise(y, *rate, *smoothFlag, *evalN)
		return
	}

	if x == nil {
		x = make([]float64, len(y))
		for i := range x {
			x[i] = float64(i) / *rate
		}
	}

	runSmooth(x, y, *smoothFlag, *normalized, *evalN)
}

func runSmooth(x, y []float64, p float64, normalized bool, evalN int) {
	opts := []smooth.Option{smooth.WithDegreesOfFreedom()}
	if normalized {
		opts = append(opts, smooth.WithNormalizedSmooth())
	}
	if !math.IsNaN(p) {
		opts = append(opts, smooth.WithSmooth(p))
	}

	res, err := smooth.Fit(x, y, opts...)
	if err != nil {
		fail("%v", err)
	}

	fitted, err := res.Spline.Evaluate(x)
	if err != nil {
		fail("%v", err)
	}
	gcv, err := smooth.GCV(y, fitted, res.DOF)
	if err != nil {
		fail("%v", err)
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Samples\t%d\n", len(y))
	fmt.Fprintf(tw, "Span\t[%g, %g]\n", x[0], x[len(x)-1])
	fmt.Fprintf(tw, "Pieces\t%d\n", res.Spline.Pieces())
	fmt.Fprintf(tw, "Smooth\t%.9f\n", res.Smooth)
	fmt.Fprintf(tw, "DOF\t%.4f\n", res.DOF)
	fmt.Fprintf(tw, "GCV\t%.6g\n", gcv)
	if err := tw.Flush(); err != nil {
		fail("failed to flush output: %v", err)
	}

	if evalN > 0 {
		printEval(res.Spline, x[0], x[len(x)-1], evalN)
	}
}

func runDenoise(y []float64, rate, p float64, evalN int) {
	var opts []denoise.Option
	if rate != 1 {
		opts = append(opts, denoise.WithSampleRate(rate))
	}
	if !math.IsNaN(p) {
		opts = append(opts, denoise.WithSmooth(p))
	}

	res, err := denoise.Fit(y, opts...)
	if err != nil {
		fail("%v", err)
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Samples\t%d\n", len(y))
	fmt.Fprintf(tw, "Span\t[%g, %g]\n", res.X[0], res.X[len(res.X)-1])
	fmt.Fprintf(tw, "Smooth\t%.9f\n", res.Smooth)
	fmt.Fprintf(tw, "Noise sigma\t%.6g\n", res.Sigma)
	if err := tw.Flush(); err != nil {
		fail("failed to flush output: %v", err)
	}

	if evalN > 0 {
		printEval(res.Spline, res.X[0], res.X[len(res.X)-1], evalN)
	}
}

func printEval(sp *ppform.Spline, lo, hi float64, n int) {
	xs := make([]float64, n)
	if n == 1 {
		xs[0] = lo
	} else {
		step := (hi - lo) / float64(n-1)
		for i := range xs {
			xs[i] = lo + step*float64(i)
		}
	}

	ys, err := sp.Evaluate(xs)
	if err != nil {
		fail("%v", err)
	}

	fmt.Println()
	for i := range xs {
		fmt.Printf("%g\t%g\n", xs[i], ys[i])
	}
}

// readColumns parses one sample per line. A consistent two-column file
// yields x and y; a one-column file yields y with x == nil. Blank lines
// and lines starting with '#' are skipped.
func readColumns(f *os.File) (x, y []float64, err error) {
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	cols := 0
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		fields := strings.Fields(text)
		if cols == 0 {
			cols = len(fields)
		}
		if cols > 2 {
			return nil, nil, fmt.Errorf("line %d: expected 1 or 2 columns, got %d", line, len(fields))
		}
		if len(fields) != cols {
			return nil, nil, fmt.Errorf("line %d: expected %d columns, got %d", line, cols, len(fields))
		}

		vals := make([]float64, len(fields))
		for i, field := range fields {
			vals[i], err = strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, nil, fmt.Errorf("line %d: %v", line, err)
			}
		}

		if cols == 2 {
			x = append(x, vals[0])
			y = append(y, vals[1])
		} else {
			y = append(y, vals[0])
		}
	}
	if err := sc.Err(); err != nil {
		return nil, nil, err
	}
	if len(y) == 0 {
		return nil, nil, fmt.Errorf("no samples in input")
	}

	return x, y, nil
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
	os.Exit(1)
}
