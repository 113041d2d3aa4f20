// Package lut holds the interpolation tables behind the transcendental
// functions in fxmath.
//
// A table samples a function over [0, range] at a power-of-two step, so a
// lookup is a shift, two reads and one linear interpolation in fixed point.
// Tables are built once and never mutated; concurrent reads are safe.
package lut

import (
	"math"

	"github.com/zeusync/fxnet/pkg/fx"
)

// Table is a piecewise-linear approximation of one function.
type Table struct {
	name     string
	shift    uint
	rangeRaw int64
	stepMask int64
	invStep  int64
	samples  []int64
}

// Build samples fn over [0, rng] with roughly size segments.
//
// The step is the power of two nearest to rng/size. The table holds
// floor(rng/step)+2 samples; the last two share the same input so the final
// partial segment interpolates without extrapolating.
func Build(name string, rng fx.Num, size int, fn func(float64) float64) *Table {
	shift := uint(math.Round(math.Log2(float64(rng.Raw() / int64(size)))))
	step := int64(1) << shift
	size = int(rng.Raw()/step) + 2

	samples := make([]int64, size)
	for i := range samples {
		input := fx.FromRaw(int64(min(i, size-2)) << shift)
		samples[i] = int64(math.Round(fn(input.Float64()) * float64(fx.OneRaw)))
	}

	return newTable(name, shift, rng.Raw(), samples)
}

func newTable(name string, shift uint, rangeRaw int64, samples []int64) *Table {
	step := int64(1) << shift
	return &Table{
		name:     name,
		shift:    shift,
		rangeRaw: rangeRaw,
		stepMask: step - 1,
		invStep:  (fx.OneRaw << fx.Precision) >> shift,
		samples:  samples,
	}
}

// Eval interpolates the table at raw, which must already be reduced into
// [0, Range]. Inputs outside the domain index past the table and panic.
func (t *Table) Eval(raw int64) fx.Num {
	index := raw >> t.shift
	bot := fx.FromRaw(t.samples[index])
	top := fx.FromRaw(t.samples[index+1])
	factor := fx.FromRaw(raw & t.stepMask).Mul(fx.FromRaw(t.invStep))
	return bot.Add(factor.Mul(top.Sub(bot)))
}

func (t *Table) Name() string       { return t.name }
func (t *Table) Shift() uint        { return t.shift }
func (t *Table) Step() fx.Num       { return fx.FromRaw(int64(1) << t.shift) }
func (t *Table) Range() fx.Num      { return fx.FromRaw(t.rangeRaw) }
func (t *Table) Len() int           { return len(t.samples) }
func (t *Table) Sample(i int) int64 { return t.samples[i] }

// expectedLen is the structural length contract for a table over rangeRaw.
func expectedLen(rangeRaw int64, shift uint) int {
	return int(rangeRaw>>shift) + 2
}
