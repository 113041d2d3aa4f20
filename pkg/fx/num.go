// Package fx implements a deterministic signed fixed-point number.
//
// A Num stores value * 2^Precision in an int64. Every operation is integer
// arithmetic, so results are bit-identical on every platform. Overflow wraps
// silently; callers are expected to keep magnitudes within range.
package fx

import (
	"math/bits"
)

// Q45.18 layout
const (
	Precision     = 18
	OneRaw        = int64(1) << Precision
	HalfRaw       = OneRaw / 2
	AlmostHalfRaw = HalfRaw - 1
	FracMask      = OneRaw - 1
)

// Num is an immutable fixed-point value. Two values are equal iff their raw
// representations are equal, so == is value equality.
type Num struct {
	raw int64
}

var (
	Zero = Num{}
	One  = Num{OneRaw}
	Half = Num{HalfRaw}
)

func FromRaw(raw int64) Num { return Num{raw} }
func FromInt(v int64) Num   { return Num{v << Precision} }

// FromRatio returns num/den. It is exact when den divides the scale,
// otherwise the raw result is truncated by integer division.
func FromRatio(num, den int64) Num {
	if den == 0 {
		panic(ErrDivideByZero)
	}
	return Num{(num << Precision) / den}
}

func FromCents(cents int64) Num   { return FromInt(cents).DivInt(100) }
func FromMillis(millis int64) Num { return FromInt(millis).DivInt(1000) }

// FromFloat truncates v to the nearest representable value toward zero.
// Only meant for test data and table generation; results depend on the FPU.
func FromFloat(v float64) Num { return Num{int64(v * float64(OneRaw))} }

func (n Num) Raw() int64 { return n.raw }

// Int returns the integer part rounded toward negative infinity.
func (n Num) Int() int64 { return n.raw >> Precision }

func (n Num) Float64() float64 { return float64(n.raw) / float64(OneRaw) }
func (n Num) Float32() float32 { return float32(n.raw) / float32(OneRaw) }

// --- Arithmetic ---

func (n Num) Add(m Num) Num { return Num{n.raw + m.raw} }
func (n Num) Sub(m Num) Num { return Num{n.raw - m.raw} }
func (n Num) Neg() Num      { return Num{-n.raw} }

// Mul returns (n*m) >> Precision computed on a 128-bit intermediate.
// The shift rounds toward negative infinity.
func (n Num) Mul(m Num) Num {
	hi, lo := mul128(n.raw, m.raw)
	return Num{shr128(hi, lo)}
}

// MulRounding is Mul with round-half-down to nearest instead of floor.
func (n Num) MulRounding(m Num) Num {
	hi, lo := mul128(n.raw, m.raw)
	lo, carry := bits.Add64(lo, uint64(AlmostHalfRaw), 0)
	return Num{shr128(hi+int64(carry), lo)}
}

func (n Num) MulInt(v int64) Num { return Num{n.raw * v} }

// MulBig multiplies by the integer and fractional parts of m separately, so
// no intermediate wider than the operands is formed. The result equals Mul.
func (n Num) MulBig(m Num) Num {
	ip := m.Int()
	return n.MulInt(ip).Add(n.Mul(m.Sub(FromInt(ip))))
}

// Div returns (n << Precision) / m truncated toward zero. It panics with
// ErrDivideByZero when m is zero, the same way integer division does.
func (n Num) Div(m Num) Num {
	if m.raw == 0 {
		panic(ErrDivideByZero)
	}
	return Num{div128(n.raw, m.raw)}
}

// CheckedDiv is Div reporting a zero divisor as ErrDivideByZero.
func (n Num) CheckedDiv(m Num) (Num, error) {
	if m.raw == 0 {
		return Zero, ErrDivideByZero
	}
	return Num{div128(n.raw, m.raw)}, nil
}

// DivBig returns the integer quotient of n and m as a Num, dropping the
// fraction. It works for operands whose shifted dividend would overflow.
func (n Num) DivBig(m Num) Num {
	if m.raw == 0 {
		panic(ErrDivideByZero)
	}
	return Num{(n.raw / m.raw) << Precision}
}

func (n Num) DivInt(v int64) Num {
	if v == 0 {
		panic(ErrDivideByZero)
	}
	return Num{n.raw / v}
}

// Shl and Shr shift the raw value, i.e. multiply or divide by a power of two.
func (n Num) Shl(k uint) Num { return Num{n.raw << k} }
func (n Num) Shr(k uint) Num { return Num{n.raw >> k} }

// --- Comparison ---

func (n Num) Cmp(m Num) int {
	switch {
	case n.raw < m.raw:
		return -1
	case n.raw > m.raw:
		return 1
	}
	return 0
}

func (n Num) Less(m Num) bool      { return n.raw < m.raw }
func (n Num) LessEq(m Num) bool    { return n.raw <= m.raw }
func (n Num) Greater(m Num) bool   { return n.raw > m.raw }
func (n Num) GreaterEq(m Num) bool { return n.raw >= m.raw }
func (n Num) IsZero() bool         { return n.raw == 0 }

// Sign returns -1, 0 or 1.
func (n Num) Sign() int {
	switch {
	case n.raw < 0:
		return -1
	case n.raw > 0:
		return 1
	}
	return 0
}

// --- 128-bit helpers ---

func mul128(a, b int64) (hi int64, lo uint64) {
	uh, ul := bits.Mul64(uint64(a), uint64(b))
	hi = int64(uh)
	if a < 0 {
		hi -= b
	}
	if b < 0 {
		hi -= a
	}
	return hi, ul
}

// shr128 returns the low 64 bits of (hi:lo) >> Precision.
func shr128(hi int64, lo uint64) int64 {
	return int64(uint64(hi)<<(64-Precision) | lo>>Precision)
}

// div128 divides a << Precision by b on magnitudes, truncating toward zero.
// A quotient wider than 64 bits keeps its low word.
func div128(a, b int64) int64 {
	negative := (a < 0) != (b < 0)
	ua, ub := uint64(a), uint64(b)
	if a < 0 {
		ua = uint64(-a)
	}
	if b < 0 {
		ub = uint64(-b)
	}

	hi := ua >> (64 - Precision)
	lo := ua << Precision
	if hi >= ub {
		hi %= ub
	}
	quo, _ := bits.Div64(hi, lo, ub)

	if negative {
		return -int64(quo)
	}
	return int64(quo)
}
