// Package collision2d detects overlap between convex 2D shapes with the GJK
// algorithm on fixed-point vectors. Results are bit-identical on every
// platform.
package collision2d

import (
	"math"
	"strings"

	"github.com/zeusync/fxnet/pkg/fx"
	"github.com/zeusync/fxnet/pkg/fxmath"
)

// Kind identifies a shape variant.
type Kind uint8

const (
	KindCircle Kind = iota + 1
	KindCapsule
	KindPoly3
	KindPoly4
)

func (k Kind) String() string {
	switch k {
	case KindCircle:
		return "circle"
	case KindCapsule:
		return "capsule"
	case KindPoly3:
		return "poly3"
	case KindPoly4:
		return "poly4"
	}
	return "unknown"
}

// Shape is a convex shape described by its support mapping: the point of the
// shape farthest along a direction. The set of shapes is closed; callers with
// their own geometry use CheckSupport.
type Shape interface {
	MaxInDirection(dir fxmath.Vec2) fxmath.Vec2
	Kind() Kind

	shape()
}

var (
	_ Shape = Circle{}
	_ Shape = Capsule{}
	_ Shape = Poly3{}
	_ Shape = Poly4{}
)

type Circle struct {
	Center fxmath.Vec2
	Radius fx.Num
}

func NewCircle(center fxmath.Vec2, radius fx.Num) Circle {
	return Circle{Center: center, Radius: radius}
}

func (c Circle) MaxInDirection(dir fxmath.Vec2) fxmath.Vec2 {
	return c.Center.Add(dir.Normalized().Scale(c.Radius))
}

func (Circle) Kind() Kind { return KindCircle }
func (Circle) shape()     {}

func (c Circle) String() string {
	return "circle{" + c.Center.String() + " r=" + c.Radius.String() + "}"
}

// Capsule is a segment swept by a radius.
type Capsule struct {
	Start, End fxmath.Vec2
	Radius     fx.Num
}

func NewCapsule(start, end fxmath.Vec2, radius fx.Num) Capsule {
	return Capsule{Start: start, End: end, Radius: radius}
}

// MaxInDirection offsets both end caps along the direction and returns the
// one that projects farther. Equal projections return the end cap.
func (c Capsule) MaxInDirection(dir fxmath.Vec2) fxmath.Vec2 {
	norm := dir.Normalized()
	offset := norm.Scale(c.Radius)

	a := c.Start.Add(offset)
	b := c.End.Add(offset)
	if fxmath.Dot(a, norm).Greater(fxmath.Dot(b, norm)) {
		return a
	}
	return b
}

func (Capsule) Kind() Kind { return KindCapsule }
func (Capsule) shape()     {}

func (c Capsule) String() string {
	return "capsule{" + c.Start.String() + " " + c.End.String() + " r=" + c.Radius.String() + "}"
}

// Poly3 is a triangle.
type Poly3 struct {
	Points [3]fxmath.Vec2
}

func NewPoly3(a, b, c fxmath.Vec2) Poly3 {
	return Poly3{Points: [3]fxmath.Vec2{a, b, c}}
}

func (p Poly3) MaxInDirection(dir fxmath.Vec2) fxmath.Vec2 {
	return polygonMax(p.Points[:], dir)
}

func (Poly3) Kind() Kind       { return KindPoly3 }
func (Poly3) shape()           {}
func (p Poly3) String() string { return polygonString(p.Points[:]) }

// Poly4 is a convex quad.
type Poly4 struct {
	Points [4]fxmath.Vec2
}

func NewPoly4(a, b, c, d fxmath.Vec2) Poly4 {
	return Poly4{Points: [4]fxmath.Vec2{a, b, c, d}}
}

func (p Poly4) MaxInDirection(dir fxmath.Vec2) fxmath.Vec2 {
	return polygonMax(p.Points[:], dir)
}

func (Poly4) Kind() Kind       { return KindPoly4 }
func (Poly4) shape()           {}
func (p Poly4) String() string { return polygonString(p.Points[:]) }

// polygonMax scans the vertices in order and keeps the first one with the
// strictly greatest projection on dir.
func polygonMax(points []fxmath.Vec2, dir fxmath.Vec2) fxmath.Vec2 {
	index := 0
	maxDot := fx.FromRaw(math.MinInt64)

	for i, p := range points {
		dot := fxmath.Dot(dir, p)
		if dot.LessEq(maxDot) {
			continue
		}
		maxDot = dot
		index = i
	}

	return points[index]
}

func polygonString(points []fxmath.Vec2) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, p := range points {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.String())
	}
	sb.WriteByte(']')
	return sb.String()
}
