package collision2d

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zeusync/fxnet/pkg/fx"
	"github.com/zeusync/fxnet/pkg/fxmath"
)

func TestCircle_MaxInDirection(t *testing.T) {
	c := NewCircle(v(1, 1), fx.FromInt(2))

	require.Equal(t, v(1, 3), c.MaxInDirection(v(0, 5)))
	require.Equal(t, v(-1, 1), c.MaxInDirection(fxmath.Left2))
	// A zero direction yields the center.
	require.Equal(t, v(1, 1), c.MaxInDirection(fxmath.Zero2))
}

func TestCapsule_MaxInDirection(t *testing.T) {
	c := NewCapsule(v(0, 0), v(2, 0), fx.One)

	require.Equal(t, v(3, 0), c.MaxInDirection(fxmath.Right2))
	require.Equal(t, v(-1, 0), c.MaxInDirection(fxmath.Left2))
	// Equal projections pick the end cap.
	require.Equal(t, v(2, 1), c.MaxInDirection(fxmath.Up2))
}

func TestPolygon_MaxInDirection(t *testing.T) {
	sq := NewPoly4(v(-1, -1), v(1, -1), v(1, 1), v(-1, 1))

	require.Equal(t, v(1, 1), sq.MaxInDirection(v(2, 1)))
	require.Equal(t, v(-1, -1), sq.MaxInDirection(v(-1, -3)))

	t.Run("TiesKeepFirst", func(t *testing.T) {
		require.Equal(t, v(1, 1), sq.MaxInDirection(fxmath.Up2))
		require.Equal(t, v(1, -1), sq.MaxInDirection(fxmath.Right2))
		require.Equal(t, v(-1, -1), sq.MaxInDirection(fxmath.Zero2))
	})

	t.Run("Triangle", func(t *testing.T) {
		tri := NewPoly3(v(0, 0), v(4, 0), v(0, 4))
		require.Equal(t, v(4, 0), tri.MaxInDirection(fxmath.Right2))
		require.Equal(t, v(0, 4), tri.MaxInDirection(fxmath.Up2))
		require.Equal(t, v(0, 0), tri.MaxInDirection(v(-1, -1)))
	})
}

func TestShape_Kind(t *testing.T) {
	cases := []struct {
		shape Shape
		kind  Kind
		name  string
	}{
		{Circle{}, KindCircle, "circle"},
		{Capsule{}, KindCapsule, "capsule"},
		{Poly3{}, KindPoly3, "poly3"},
		{Poly4{}, KindPoly4, "poly4"},
	}
	for _, c := range cases {
		require.Equal(t, c.kind, c.shape.Kind())
		require.Equal(t, c.name, c.kind.String())
	}
	require.Equal(t, "unknown", Kind(0).String())
}

func TestShape_String(t *testing.T) {
	require.Equal(t, "circle{(1, 2) r=0.5}", NewCircle(v(1, 2), fx.Half).String())
	require.Equal(t, "[(0, 0), (4, 0), (0, 4)]", NewPoly3(v(0, 0), v(4, 0), v(0, 4)).String())
}
