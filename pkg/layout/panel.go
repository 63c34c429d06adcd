package layout

import (
	"fmt"

	"github.com/panelkit/panelkit/pkg/rule"
)

// Axis is the direction along which a panel stacks its children.
type Axis int

const (
	Vertical Axis = iota
	Horizontal
)

// String returns "vertical" or "horizontal".
func (a Axis) String() string {
	if a == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// Panel describes one rectangular layout unit: a sizing rule per
// dimension, margins insetting its interior, and how its children are
// stacked. Panel is a plain value; the tree relationships and resolved
// geometry live in the owning [Layout].
//
// The zero value is usable: an auto-generated id, both dimensions
// inherited from the parent, zero margins and padding, vertical
// child layout.
type Panel struct {
	// ID uniquely identifies the panel within its tree. When empty, a
	// fresh id is generated at insert time.
	ID string

	// Width and Height are the sizing rules per dimension. A nil rule
	// defaults to rule.FromParent for inserted panels; the root
	// defaults its layout-axis dimension to rule.FromChildren.
	Width  rule.Rule
	Height rule.Rule

	// Margins inset the panel's interior, where children are placed.
	// All must be >= 0.
	MarginLeft   float64
	MarginRight  float64
	MarginTop    float64
	MarginBottom float64

	// Direction is the child-layout axis.
	Direction Axis

	// Padding is inserted between consecutive children only.
	Padding float64
}

// validate checks margins, padding, and rule parameters. Structural
// rule placement (root rules, cross-axis FromChildren) is checked
// separately because it depends on where the panel sits.
func (p Panel) validate() error {
	for _, m := range []struct {
		name  string
		value float64
	}{
		{"marginLeft", p.MarginLeft},
		{"marginRight", p.MarginRight},
		{"marginTop", p.MarginTop},
		{"marginBottom", p.MarginBottom},
		{"childPadding", p.Padding},
	} {
		if m.value < 0 {
			return fmt.Errorf("%w: %s must be >= 0, got %g", ErrInappropriateConstraint, m.name, m.value)
		}
	}
	if p.Width != nil {
		if err := rule.Validate(p.Width); err != nil {
			return fmt.Errorf("width: %w", err)
		}
	}
	if p.Height != nil {
		if err := rule.Validate(p.Height); err != nil {
			return fmt.Errorf("height: %w", err)
		}
	}
	return nil
}

// checkAxisRules rejects FromChildren on the dimension perpendicular to
// the panel's child-layout axis. Children never stack along that
// dimension, so the rule would leave the variable unconstrained.
func (p Panel) checkAxisRules() error {
	if _, ok := p.Width.(rule.FromChildren); ok && p.Direction != Horizontal {
		return fmt.Errorf("%w: width fromChildren requires horizontal child layout", ErrInappropriateConstraint)
	}
	if _, ok := p.Height.(rule.FromChildren); ok && p.Direction != Vertical {
		return fmt.Errorf("%w: height fromChildren requires vertical child layout", ErrInappropriateConstraint)
	}
	return nil
}

// marginsOn returns the panel's two margins on the given axis:
// left+right for horizontal, top+bottom for vertical.
func (p Panel) marginsOn(a Axis) float64 {
	if a == Horizontal {
		return p.MarginLeft + p.MarginRight
	}
	return p.MarginTop + p.MarginBottom
}

// Geometry is a panel's resolved placement after a successful solve.
// Width and Height are the panel's full extent; the four edges bound
// the region consumers should draw into (for the root, its interior
// box). The y-axis grows upward, so Top > Bottom.
type Geometry struct {
	Width  float64
	Height float64
	Left   float64
	Right  float64
	Top    float64
	Bottom float64
}

// CenterX returns the horizontal center of the panel's box.
func (g Geometry) CenterX() float64 { return (g.Left + g.Right) / 2 }

// CenterY returns the vertical center of the panel's box.
func (g Geometry) CenterY() float64 { return (g.Bottom + g.Top) / 2 }

// element is a panel plus its tree relationships and solved state.
// Elements live only inside a Layout's arena; parent and children are
// id back-references resolved through the arena, never pointers.
type element struct {
	Panel

	parentID string
	children []string
	geom     Geometry
}
