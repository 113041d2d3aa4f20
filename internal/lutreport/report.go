// Package lutreport measures how far the table-backed functions of fxmath
// drift from float64 references and writes the result as CSV.
package lutreport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"slices"

	"github.com/gocarina/gocsv"
	"github.com/zeusync/fxnet/pkg/concurrent"
	"github.com/zeusync/fxnet/pkg/fx"
	"github.com/zeusync/fxnet/pkg/fxmath"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var ErrTooFewSamples = errors.New("lutreport: at least 2 samples are required")

// Row holds absolute error statistics for one function.
type Row struct {
	Function   string  `csv:"function"`
	Samples    int     `csv:"samples"`
	Mean       float64 `csv:"mean_abs_error"`
	StdDev     float64 `csv:"stddev_abs_error"`
	P99        float64 `csv:"p99_abs_error"`
	Max        float64 `csv:"max_abs_error"`
	WorstInput string  `csv:"worst_input"`
}

// probe evaluates one function at sample i of n.
type probe struct {
	name string
	eval func(i, n int) (input string, got, want float64)
}

var probes = []probe{
	{"sqrt", linear(fx.Zero, fx.FromInt(10000), func(v fx.Num) (fx.Num, float64) {
		return fxmath.Sqrt(v), math.Sqrt(v.Float64())
	})},
	{"sin", linear(fxmath.TwoPi.Neg(), fxmath.TwoPi, func(v fx.Num) (fx.Num, float64) {
		return fxmath.Sin(v), math.Sin(v.Float64())
	})},
	{"cos", linear(fxmath.TwoPi.Neg(), fxmath.TwoPi, func(v fx.Num) (fx.Num, float64) {
		return fxmath.Cos(v), math.Cos(v.Float64())
	})},
	{"asin", linear(fx.FromInt(-1), fx.One, func(v fx.Num) (fx.Num, float64) {
		return fxmath.Asin(v), math.Asin(v.Float64())
	})},
	{"acos", linear(fx.FromInt(-1), fx.One, func(v fx.Num) (fx.Num, float64) {
		return fxmath.Acos(v), math.Acos(v.Float64())
	})},
	{"atan2", atan2Probe},
}

// Functions lists the measured function names in report order.
func Functions() []string {
	names := make([]string, len(probes))
	for i, p := range probes {
		names[i] = p.name
	}
	return names
}

// linear samples [lo, hi] at n evenly spaced points.
func linear(lo, hi fx.Num, fn func(fx.Num) (fx.Num, float64)) func(i, n int) (string, float64, float64) {
	return func(i, n int) (string, float64, float64) {
		v := lo.Add(hi.Sub(lo).MulInt(int64(i)).DivInt(int64(n - 1)))
		got, want := fn(v)
		return v.String(), got.Float64(), want
	}
}

// atan2Probe walks a circle of radius 5 around the origin.
func atan2Probe(i, n int) (string, float64, float64) {
	theta := -math.Pi + 2*math.Pi*float64(i)/float64(n)
	y, x := fx.FromFloat(5*math.Sin(theta)), fx.FromFloat(5*math.Cos(theta))

	got := fxmath.Atan2(y, x).Float64()
	want := math.Atan2(y.Float64(), x.Float64())
	// -pi and pi name the same direction.
	if math.Abs(got-want) > math.Pi {
		want = -want
	}
	return fxmath.V2(x, y).String(), got, want
}

// Measure evaluates every function at samples points using the active
// fxmath tables. Each function is split into batches run on at most workers
// goroutines.
func Measure(ctx context.Context, samples, workers int) ([]Row, error) {
	if samples < 2 {
		return nil, ErrTooFewSamples
	}

	rows := make([]Row, 0, len(probes))
	for _, p := range probes {
		row, err := measure(ctx, p, samples, workers)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func measure(ctx context.Context, p probe, samples, workers int) (Row, error) {
	errs := make([]float64, samples)
	inputs := make([]string, samples)

	indices := make([]int, samples)
	for i := range indices {
		indices[i] = i
	}
	batchSize := samples
	if workers > 0 {
		batchSize = (samples + workers - 1) / workers
	}

	err := concurrent.ForEach(ctx, concurrent.Batch(indices, batchSize), workers, func(ctx context.Context, _ int, batch []int) error {
		for _, i := range batch {
			in, got, want := p.eval(i, samples)
			errs[i] = math.Abs(got - want)
			inputs[i] = in
		}
		return ctx.Err()
	})
	if err != nil {
		return Row{}, fmt.Errorf("measuring %s: %w", p.name, err)
	}

	worst := floats.MaxIdx(errs)
	row := Row{
		Function:   p.name,
		Samples:    samples,
		Max:        errs[worst],
		WorstInput: inputs[worst],
	}
	row.Mean, row.StdDev = stat.MeanStdDev(errs, nil)

	slices.Sort(errs)
	row.P99 = stat.Quantile(0.99, stat.Empirical, errs, nil)
	return row, nil
}

// WriteCSV writes rows with a header line.
func WriteCSV(w io.Writer, rows []Row) error {
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("writing accuracy report: %w", err)
	}
	return nil
}

// ReadCSV parses a report written by WriteCSV.
func ReadCSV(r io.Reader) ([]Row, error) {
	var rows []Row
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("reading accuracy report: %w", err)
	}
	return rows, nil
}
