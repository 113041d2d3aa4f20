package fxmath

import (
	"github.com/zeusync/fxnet/pkg/encoding"
	"github.com/zeusync/fxnet/pkg/fx"
)

// Vec2 is a 2D point or direction. All methods return new values.
type Vec2 struct {
	X, Y fx.Num
}

var (
	Zero2  = Vec2{}
	One2   = Vec2{fx.One, fx.One}
	Up2    = Vec2{fx.Zero, fx.One}
	Down2  = Vec2{fx.Zero, fx.FromInt(-1)}
	Left2  = Vec2{fx.FromInt(-1), fx.Zero}
	Right2 = Vec2{fx.One, fx.Zero}
)

var _ encoding.Serializable[Vec2] = (*Vec2)(nil)

func V2(x, y fx.Num) Vec2          { return Vec2{x, y} }
func V2Int(x, y int64) Vec2        { return Vec2{fx.FromInt(x), fx.FromInt(y)} }
func (v Vec2) Add(o Vec2) Vec2     { return Vec2{v.X.Add(o.X), v.Y.Add(o.Y)} }
func (v Vec2) Sub(o Vec2) Vec2     { return Vec2{v.X.Sub(o.X), v.Y.Sub(o.Y)} }
func (v Vec2) Neg() Vec2           { return Vec2{v.X.Neg(), v.Y.Neg()} }
func (v Vec2) Scale(n fx.Num) Vec2 { return Vec2{v.X.Mul(n), v.Y.Mul(n)} }
func (v Vec2) MulInt(n int64) Vec2 { return Vec2{v.X.MulInt(n), v.Y.MulInt(n)} }
func (v Vec2) Div(n fx.Num) Vec2   { return Vec2{v.X.Div(n), v.Y.Div(n)} }
func (v Vec2) DivInt(n int64) Vec2 { return Vec2{v.X.DivInt(n), v.Y.DivInt(n)} }
func (v Vec2) Shl(k uint) Vec2     { return Vec2{v.X.Shl(k), v.Y.Shl(k)} }
func (v Vec2) Shr(k uint) Vec2     { return Vec2{v.X.Shr(k), v.Y.Shr(k)} }
func (v Vec2) IsZero() bool        { return v == Zero2 }

// Perpendicular returns v rotated 90° clockwise.
func (v Vec2) Perpendicular() Vec2 { return Vec2{v.Y, v.X.Neg()} }

func Dot(a, b Vec2) fx.Num { return a.X.Mul(b.X).Add(a.Y.Mul(b.Y)) }

// Cross returns the z component of the 3D cross product of a and b.
func Cross(a, b Vec2) fx.Num { return a.X.Mul(b.Y).Sub(a.Y.Mul(b.X)) }

func MinVec(a, b Vec2) Vec2 { return Vec2{Min(a.X, b.X), Min(a.Y, b.Y)} }
func MaxVec(a, b Vec2) Vec2 { return Vec2{Max(a.X, b.X), Max(a.Y, b.Y)} }

func (v Vec2) SqrMagnitude() fx.Num { return Dot(v, v) }
func (v Vec2) Magnitude() fx.Num    { return Sqrt(v.SqrMagnitude()) }

// Normalized returns the unit vector along v, or the zero vector when the
// magnitude is exactly zero.
func (v Vec2) Normalized() Vec2 {
	m := v.Magnitude()
	if m.IsZero() {
		return Zero2
	}
	return v.Div(m)
}

// ClampMagnitude limits v to maxMag while preserving direction.
func (v Vec2) ClampMagnitude(maxMag fx.Num) Vec2 {
	sqrMag := v.SqrMagnitude()
	if sqrMag.LessEq(maxMag.Mul(maxMag)) {
		return v
	}
	return v.Div(Sqrt(sqrMag)).Scale(maxMag)
}

func (v Vec2) String() string {
	var buf [64]byte
	b := append(buf[:0], '(')
	b = v.X.AppendFormat(b)
	b = append(b, ", "...)
	b = v.Y.AppendFormat(b)
	return string(append(b, ')'))
}

func (v Vec2) Serialize() ([]byte, error) {
	return encoding.Append[fx.Num](make([]byte, 0, 2*fx.RawSize), &v.X, &v.Y)
}

func (v *Vec2) Deserialize(data []byte) error {
	if len(data) < 2*fx.RawSize {
		return fx.ErrShortBuffer
	}
	if err := v.X.Deserialize(data[:fx.RawSize]); err != nil {
		return err
	}
	return v.Y.Deserialize(data[fx.RawSize:])
}
