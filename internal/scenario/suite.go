// Package scenario loads collision scenario suites from YAML and runs them
// against the GJK detector.
package scenario

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/zeusync/fxnet/pkg/collision2d"
	"github.com/zeusync/fxnet/pkg/fx"
	"github.com/zeusync/fxnet/pkg/fxmath"
	"gopkg.in/yaml.v3"
)

// Suite errors
var (
	ErrInvalidSuite = errors.New("scenario: invalid suite")
	ErrUnknownShape = errors.New("scenario: unknown shape type")
)

// DefaultTolerance bounds the penetration comparison when a case sets none.
var DefaultTolerance = fx.FromRatio(1, 1000)

// Suite is a named list of collision cases. All numbers are decimal
// fixed-point literals, never floats.
type Suite struct {
	Name  string `yaml:"name"`
	Cases []Case `yaml:"cases"`
}

type Case struct {
	Name   string    `yaml:"name"`
	A      ShapeSpec `yaml:"a"`
	B      ShapeSpec `yaml:"b"`
	Dir    Vec       `yaml:"dir"`
	Expect bool      `yaml:"expect"`
	// Penetration, if set, is compared with collision2d.Penetration
	// componentwise within Tolerance.
	Penetration *Vec    `yaml:"penetration,omitempty"`
	Tolerance   *fx.Num `yaml:"tolerance,omitempty"`
}

// ShapeSpec describes one shape. Which fields apply depends on Type.
type ShapeSpec struct {
	Type   string `yaml:"type"`
	Center Vec    `yaml:"center,omitempty"`
	Start  Vec    `yaml:"start,omitempty"`
	End    Vec    `yaml:"end,omitempty"`
	Radius fx.Num `yaml:"radius,omitempty"`
	Points []Vec  `yaml:"points,omitempty"`
}

// Vec is a fixed-point vector written as a two element sequence.
type Vec fxmath.Vec2

func (v Vec) Vec2() fxmath.Vec2 { return fxmath.Vec2(v) }

func (v *Vec) UnmarshalYAML(node *yaml.Node) error {
	var parts []fx.Num
	if err := node.Decode(&parts); err != nil {
		return err
	}
	if len(parts) != 2 {
		return fmt.Errorf("line %d: vector needs 2 components, got %d", node.Line, len(parts))
	}
	*v = Vec{X: parts[0], Y: parts[1]}
	return nil
}

func (v Vec) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, n := range []fx.Num{v.X, v.Y} {
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: n.String()})
	}
	return node, nil
}

// LoadYAML decodes and validates a suite. Unknown keys are rejected.
func LoadYAML(r io.Reader) (*Suite, error) {
	var s Suite
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSuite, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func LoadFile(path string) (*Suite, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening suite: %w", err)
	}
	defer f.Close()

	return LoadYAML(f)
}

func (s *Suite) Validate() error {
	if len(s.Cases) == 0 {
		return fmt.Errorf("%w: no cases", ErrInvalidSuite)
	}

	seen := make(map[string]struct{}, len(s.Cases))
	for i, c := range s.Cases {
		if c.Name == "" {
			return fmt.Errorf("%w: case %d has no name", ErrInvalidSuite, i)
		}
		if _, dup := seen[c.Name]; dup {
			return fmt.Errorf("%w: duplicate case %q", ErrInvalidSuite, c.Name)
		}
		seen[c.Name] = struct{}{}

		if _, err := c.A.Build(); err != nil {
			return fmt.Errorf("case %q shape a: %w", c.Name, err)
		}
		if _, err := c.B.Build(); err != nil {
			return fmt.Errorf("case %q shape b: %w", c.Name, err)
		}
		if c.Tolerance != nil && c.Tolerance.Sign() < 0 {
			return fmt.Errorf("%w: case %q has a negative tolerance", ErrInvalidSuite, c.Name)
		}
	}
	return nil
}

// Build converts the description into a shape.
func (s ShapeSpec) Build() (collision2d.Shape, error) {
	if s.Radius.Sign() < 0 {
		return nil, fmt.Errorf("%w: negative radius %s", ErrInvalidSuite, s.Radius)
	}

	switch s.Type {
	case collision2d.KindCircle.String():
		return collision2d.NewCircle(s.Center.Vec2(), s.Radius), nil
	case collision2d.KindCapsule.String():
		return collision2d.NewCapsule(s.Start.Vec2(), s.End.Vec2(), s.Radius), nil
	case collision2d.KindPoly3.String():
		if len(s.Points) != 3 {
			return nil, fmt.Errorf("%w: poly3 needs 3 points, got %d", ErrInvalidSuite, len(s.Points))
		}
		p := s.Points
		return collision2d.NewPoly3(p[0].Vec2(), p[1].Vec2(), p[2].Vec2()), nil
	case collision2d.KindPoly4.String():
		if len(s.Points) != 4 {
			return nil, fmt.Errorf("%w: poly4 needs 4 points, got %d", ErrInvalidSuite, len(s.Points))
		}
		p := s.Points
		return collision2d.NewPoly4(p[0].Vec2(), p[1].Vec2(), p[2].Vec2(), p[3].Vec2()), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownShape, s.Type)
}

func (c Case) tolerance() fx.Num {
	if c.Tolerance != nil {
		return *c.Tolerance
	}
	return DefaultTolerance
}
