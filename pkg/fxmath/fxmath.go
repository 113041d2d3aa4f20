// Package fxmath provides deterministic math on fx.Num: rounding and
// clamping helpers, square root and trigonometry backed by lookup tables,
// and a 2D vector type.
package fxmath

import (
	"github.com/zeusync/fxnet/pkg/fx"
	"github.com/zeusync/fxnet/pkg/fx/lut"
)

// Raw angle constants
const (
	PiRaw            = lut.PiRaw
	TwoPiRaw         = PiRaw * 2
	HalfPiRaw        = PiRaw / 2
	ThreePiDivTwoRaw = PiRaw * 3 / 2

	fourRaw = fx.OneRaw * 4
)

var (
	Pi      = fx.FromRaw(PiRaw)
	TwoPi   = fx.FromRaw(TwoPiRaw)
	HalfPi  = fx.FromRaw(HalfPiRaw)
	Deg2Rad = fx.FromRaw(lut.DegToRadRaw)
	Rad2Deg = fx.FromRaw(lut.RadToDegRaw)
)

var tables = lut.Default()

// Install replaces the tables used by Sqrt and the trigonometric functions.
// It is not synchronised: call it during startup, before any goroutine
// evaluates math from this package.
func Install(ts *lut.Tables) { tables = ts }

// Tables returns the active table set.
func Tables() *lut.Tables { return tables }

// --- Rounding and clamping ---

func Floor(v fx.Num) fx.Num { return fx.FromInt(v.Int()) }
func Ceil(v fx.Num) fx.Num  { return Floor(v.Add(fx.FromRaw(fx.OneRaw - 1))) }
func Round(v fx.Num) fx.Num { return Floor(v.Add(fx.Half)) }

func Abs(v fx.Num) fx.Num {
	if v.Raw() < 0 {
		return v.Neg()
	}
	return v
}

// Sign returns -1, 0 or 1 as a fixed-point value.
func Sign(v fx.Num) fx.Num { return fx.FromInt(int64(v.Sign())) }

func Min(a, b fx.Num) fx.Num {
	if a.Less(b) {
		return a
	}
	return b
}

func Max(a, b fx.Num) fx.Num {
	if a.Greater(b) {
		return a
	}
	return b
}

func Clamp(v, lo, hi fx.Num) fx.Num {
	if v.Less(lo) {
		return lo
	}
	if v.Greater(hi) {
		return hi
	}
	return v
}

func Clamp01(v fx.Num) fx.Num { return Clamp(v, fx.Zero, fx.One) }

// --- Table-backed functions ---

// Sqrt returns the square root of v, or zero for v <= 0.
//
// The input is divided by 4 until it fits the table domain [0, 4], the table
// result is scaled back by the matching power of two and refined with two
// Newton-Raphson steps.
func Sqrt(v fx.Num) fx.Num {
	if v.Raw() <= 0 {
		return fx.Zero
	}

	raw := v.Raw()
	var fours uint
	for raw > fourRaw {
		raw >>= 2
		fours++
	}

	root := tables.Sqrt.Eval(raw).Shl(fours)
	if root.IsZero() {
		return root
	}

	root = root.Add(v.Div(root)).Shr(1)
	root = root.Add(v.Div(root)).Shr(1)
	return root
}

func Sin(v fx.Num) fx.Num { return Cos(HalfPi.Sub(v)) }

// Cos folds |v| mod 2pi into [0, pi/2] by quadrant and restores the sign.
func Cos(v fx.Num) fx.Num {
	abs := uint64(v.Raw())
	if v.Raw() < 0 {
		abs = -abs
	}
	raw := int64(abs % TwoPiRaw)

	switch {
	case raw > ThreePiDivTwoRaw:
		return tables.Cos.Eval(TwoPiRaw - raw)
	case raw > PiRaw:
		return tables.Cos.Eval(raw - PiRaw).Neg()
	case raw > HalfPiRaw:
		return tables.Cos.Eval(PiRaw - raw).Neg()
	}
	return tables.Cos.Eval(raw)
}

// Asin clamps v to [-1, 1].
func Asin(v fx.Num) fx.Num {
	raw := Clamp(v, fx.FromInt(-1), fx.One).Raw()
	if raw > 0 {
		return tables.Asin.Eval(raw)
	}
	return tables.Asin.Eval(-raw).Neg()
}

func Acos(v fx.Num) fx.Num { return HalfPi.Sub(Asin(v)) }

// Atan2 returns the angle of (x, y) in [-pi, pi]. The table argument is
// always the smaller of |y/x| and |x/y|.
func Atan2(y, x fx.Num) fx.Num {
	if x.IsZero() {
		switch {
		case y.Raw() > 0:
			return HalfPi
		case y.Raw() < 0:
			return HalfPi.Neg()
		}
		return fx.Zero
	}

	if Abs(x).Greater(Abs(y)) {
		angle := atan(y.Div(x))
		if x.Raw() > 0 {
			return angle
		}
		if y.Raw() >= 0 {
			return angle.Add(Pi)
		}
		return angle.Sub(Pi)
	}

	angle := atan(x.Div(y)).Neg()
	if y.Raw() > 0 {
		return angle.Add(HalfPi)
	}
	return angle.Sub(HalfPi)
}

// atan evaluates the table for a ratio in [-1, 1] using odd symmetry.
func atan(ratio fx.Num) fx.Num {
	if ratio.Raw() < 0 {
		return tables.Atan.Eval(-ratio.Raw()).Neg()
	}
	return tables.Atan.Eval(ratio.Raw())
}
