package collision2d

import (
	"github.com/zeusync/fxnet/pkg/fxmath"
)

const simplexCapacity = 3

// simplex holds up to three configuration-space points, oldest first.
type simplex struct {
	points [simplexCapacity]fxmath.Vec2
	count  int
}

func (s *simplex) full() bool { return s.count >= simplexCapacity }

func (s *simplex) push(p fxmath.Vec2) {
	s.points[s.count] = p
	s.count++
}

// remove drops the point at index 0 or 1, keeping the remaining order.
func (s *simplex) remove(index int) {
	s.count--

	switch index {
	case 0:
		s.points[0] = s.points[1]
		s.points[1] = s.points[2]
	case 1:
		s.points[1] = s.points[2]
	}
}

// directionToOrigin returns the next search direction for a point or a
// segment. For a segment it is the edge normal facing the origin, or a
// perpendicular of the edge when the origin lies on its line.
func (s *simplex) directionToOrigin() fxmath.Vec2 {
	if s.count == 1 {
		return s.points[0].Neg()
	}

	a := s.points[1]
	b := s.points[0]

	ab := b.Sub(a)
	ao := a.Neg()

	dir := tripleProduct(ab, ao, ab)
	if dir.IsZero() {
		dir = ab.Perpendicular()
	}
	return dir
}

// containsOrigin tests the full triangle A (newest), B, C. When the origin
// is outside edge AC it returns the AC normal and index 1 (B); when outside
// edge AB it returns the AB normal and index 0 (C).
func (s *simplex) containsOrigin() (next fxmath.Vec2, remove int, inside bool) {
	a := s.points[2]
	b := s.points[1]
	c := s.points[0]

	ao := a.Neg()
	ab := b.Sub(a)
	ac := c.Sub(a)

	next = tripleProduct(ab, ac, ac)
	if fxmath.Dot(next, ao).Sign() >= 0 {
		return next, 1, false
	}

	next = tripleProduct(ac, ab, ab)
	if fxmath.Dot(next, ao).Sign() < 0 {
		return next, 0, true
	}
	return next, 0, false
}

// tripleProduct computes (a x b) x c with all z components zero.
func tripleProduct(a, b, c fxmath.Vec2) fxmath.Vec2 {
	z := fxmath.Cross(a, b)
	return fxmath.V2(z.Mul(c.Y).Neg(), z.Mul(c.X))
}
