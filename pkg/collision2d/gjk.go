package collision2d

import (
	"github.com/zeusync/fxnet/pkg/fxmath"
)

// Iteration caps. A search that reaches its cap reports no overlap.
const (
	IterationLimit        = 16
	SupportIterationLimit = 100
)

// Support maps a caller-defined shape type to its farthest point along a
// direction.
type Support[S any] interface {
	MaxInDirection(shape S, dir fxmath.Vec2) fxmath.Vec2
}

// SupportFunc adapts a plain function to Support.
type SupportFunc[S any] func(shape S, dir fxmath.Vec2) fxmath.Vec2

func (f SupportFunc[S]) MaxInDirection(shape S, dir fxmath.Vec2) fxmath.Vec2 { return f(shape, dir) }

// Outcome describes how a search ended.
type Outcome struct {
	Colliding  bool
	Iterations int
	// Exhausted is set when the iteration cap was reached before the search
	// settled. Colliding is false in that case.
	Exhausted bool
}

// Check reports whether a and b overlap, seeding the search with dir.
// Touching shapes are not overlapping.
func Check(a, b Shape, dir fxmath.Vec2) bool {
	return search(a, b, dir, IterationLimit).Colliding
}

// CheckLimit is Check with a caller-chosen iteration cap.
func CheckLimit(a, b Shape, dir fxmath.Vec2, limit int) bool {
	return search(a, b, dir, limit).Colliding
}

// Query runs the search and returns its outcome.
func Query(a, b Shape, dir fxmath.Vec2, limit int) Outcome {
	return search(a, b, dir, limit)
}

// CheckSupport runs the search over caller-defined shapes.
func CheckSupport[S any](sup Support[S], a, b S, dir fxmath.Vec2) bool {
	return search(bound[S]{sup, a}, bound[S]{sup, b}, dir, SupportIterationLimit).Colliding
}

// Penetration approximates how deep a reaches into b along dir. The result
// points along the normalized dir; its length is the projection of the
// configuration-space support point on that direction. It is meaningful only
// for overlapping pairs.
func Penetration(a, b Shape, dir fxmath.Vec2) fxmath.Vec2 {
	norm := dir.Normalized()
	cso := a.MaxInDirection(norm).Sub(b.MaxInDirection(norm.Neg()))
	return norm.Scale(fxmath.Dot(cso, norm))
}

type supporter interface {
	MaxInDirection(dir fxmath.Vec2) fxmath.Vec2
}

type bound[S any] struct {
	sup   Support[S]
	shape S
}

func (b bound[S]) MaxInDirection(dir fxmath.Vec2) fxmath.Vec2 {
	return b.sup.MaxInDirection(b.shape, dir)
}

func search[A, B supporter](a A, b B, dir fxmath.Vec2, limit int) Outcome {
	var s simplex

	for i := 1; i <= limit; i++ {
		cso := a.MaxInDirection(dir).Sub(b.MaxInDirection(dir.Neg()))
		s.push(cso)

		// The new point did not pass the origin: no overlap.
		if fxmath.Dot(cso, dir).Sign() <= 0 {
			return Outcome{Iterations: i}
		}

		if !s.full() {
			dir = s.directionToOrigin()
			continue
		}

		next, index, inside := s.containsOrigin()
		if inside {
			return Outcome{Colliding: true, Iterations: i}
		}
		s.remove(index)
		dir = next
	}

	return Outcome{Iterations: max(limit, 0), Exhausted: true}
}
