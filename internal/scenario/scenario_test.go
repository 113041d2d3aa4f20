package scenario

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zeusync/fxnet/internal/observability/log"
	"github.com/zeusync/fxnet/pkg/collision2d"
	"github.com/zeusync/fxnet/pkg/fx"
	"github.com/zeusync/fxnet/pkg/fxmath"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gopkg.in/yaml.v3"
)

func loadBasic(t *testing.T) *Suite {
	t.Helper()
	suite, err := LoadFile("testdata/basic.yaml")
	require.NoError(t, err)
	return suite
}

func TestLoadFile(t *testing.T) {
	suite := loadBasic(t)

	require.Equal(t, "basic", suite.Name)
	require.Len(t, suite.Cases, 6)

	c := suite.Cases[3]
	require.Equal(t, "circle-above-slanted-quad", c.Name)
	require.Equal(t, fx.FromRaw(247726), c.A.Center.X)
	require.Equal(t, fx.FromRaw(-247726), c.A.Center.Y)
	require.Equal(t, fx.Half, c.A.Radius)
	require.Equal(t, fxmath.Up2, c.Dir.Vec2())

	shape, err := c.B.Build()
	require.NoError(t, err)
	require.Equal(t, collision2d.NewPoly4(
		fxmath.V2Int(-35, -20), fxmath.V2Int(-5, -10), fxmath.V2Int(35, -10), fxmath.V2Int(35, -20),
	), shape)

	last := suite.Cases[5]
	require.NotNil(t, last.Penetration)
	require.Equal(t, fxmath.Right2, last.Penetration.Vec2())
	require.Equal(t, fx.MustParse("0.0001"), last.tolerance())
	require.Equal(t, DefaultTolerance, c.tolerance())
}

func TestLoadYAML_Invalid(t *testing.T) {
	cases := []struct {
		name string
		yaml string
		err  error
	}{
		{"NoCases", "name: empty\ncases: []\n", ErrInvalidSuite},
		{"UnknownShape", `
cases:
  - name: x
    a: {type: hexagon}
    b: {type: circle, radius: 1}
`, ErrUnknownShape},
		{"ShortPoly", `
cases:
  - name: x
    a: {type: poly3, points: [[0, 0], [1, 0]]}
    b: {type: circle, radius: 1}
`, ErrInvalidSuite},
		{"Duplicate", `
cases:
  - {name: x, a: {type: circle, radius: 1}, b: {type: circle, radius: 1}}
  - {name: x, a: {type: circle, radius: 1}, b: {type: circle, radius: 1}}
`, ErrInvalidSuite},
		{"UnknownKey", `
cases:
  - {name: x, a: {type: circle, radius: 1}, b: {type: circle, radius: 1}, speed: 3}
`, ErrInvalidSuite},
		{"BadNumber", `
cases:
  - {name: x, a: {type: circle, radius: 1.2.3}, b: {type: circle, radius: 1}}
`, ErrInvalidSuite},
		{"NegativeRadius", `
cases:
  - {name: x, a: {type: circle, radius: -1}, b: {type: circle, radius: 1}}
`, ErrInvalidSuite},
		{"ThreeComponents", `
cases:
  - {name: x, a: {type: circle, center: [1, 2, 3], radius: 1}, b: {type: circle, radius: 1}}
`, ErrInvalidSuite},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := LoadYAML(strings.NewReader(c.yaml))
			require.ErrorIs(t, err, c.err)
		})
	}
}

func TestVec_MarshalYAML(t *testing.T) {
	out, err := yaml.Marshal(Vec(fxmath.V2(fx.FromRatio(3, 2), fx.FromInt(-2))))
	require.NoError(t, err)
	require.Equal(t, "[1.5, -2]\n", string(out))

	var v Vec
	require.NoError(t, yaml.Unmarshal(out, &v))
	require.Equal(t, fxmath.V2(fx.FromRatio(3, 2), fx.FromInt(-2)), v.Vec2())
}

func TestRunner_Run(t *testing.T) {
	suite := loadBasic(t)
	core, logs := observer.New(zapcore.DebugLevel)
	runner := NewRunner(log.NewFromCore(core, log.LevelDebug), 4, collision2d.IterationLimit)

	report, err := runner.Run(context.Background(), suite)
	require.NoError(t, err)

	require.True(t, report.Passed(), "failures: %+v", report.Results)
	require.Equal(t, "basic", report.Suite)
	require.Len(t, report.Results, len(suite.Cases))
	for i, res := range report.Results {
		require.Equal(t, suite.Cases[i].Name, res.Name)
		require.Equal(t, suite.Cases[i].Expect, res.Colliding)
		require.False(t, res.Exhausted)
	}

	finished := logs.FilterMessage("suite finished").All()
	require.Len(t, finished, 1)
	require.Equal(t, report.RunID.String(), finished[0].ContextMap()["run_id"])
	require.Equal(t, 6, logs.FilterMessage("case passed").Len())
}

func TestRunner_DigestIsDeterministic(t *testing.T) {
	suite := loadBasic(t)

	serial, err := NewRunner(log.Nop(), 1, collision2d.IterationLimit).Run(context.Background(), suite)
	require.NoError(t, err)
	parallel, err := NewRunner(log.Nop(), 8, collision2d.IterationLimit).Run(context.Background(), suite)
	require.NoError(t, err)

	require.NotEqual(t, serial.RunID, parallel.RunID)
	require.Equal(t, serial.Digest, parallel.Digest)

	// A different cap changes iteration bookkeeping only where it binds.
	capped, err := NewRunner(log.Nop(), 2, 1).Run(context.Background(), suite)
	require.NoError(t, err)
	require.NotEqual(t, serial.Digest, capped.Digest)
}

func TestRunner_Failures(t *testing.T) {
	suite := loadBasic(t)
	suite.Cases[1].Expect = true
	pen := Vec(fxmath.V2Int(2, 0))
	suite.Cases[5].Penetration = &pen

	core, logs := observer.New(zapcore.DebugLevel)
	report, err := NewRunner(log.NewFromCore(core, log.LevelInfo), 2, collision2d.IterationLimit).Run(context.Background(), suite)
	require.NoError(t, err)

	require.False(t, report.Passed())
	require.Equal(t, 2, report.Failed)
	require.Contains(t, report.Results[1].Failure, "expected colliding=true")
	require.Contains(t, report.Results[5].Failure, "penetration")
	require.Equal(t, 2, logs.FilterMessage("case failed").Len())
	require.Zero(t, logs.FilterMessage("case passed").Len())
}

func TestRunner_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRunner(log.Nop(), 2, collision2d.IterationLimit).Run(ctx, loadBasic(t))
	require.ErrorIs(t, err, context.Canceled)
}
