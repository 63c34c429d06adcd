package document

import (
	"fmt"

	"github.com/panelkit/panelkit/pkg/layout"
	"github.com/panelkit/panelkit/pkg/rule"
)

// Namespace is the reserved top-level marker every layout document must
// carry. Documents with a different marker are rejected before any panel
// is decoded.
const Namespace = "panelkit/layout"

type treeDocument struct {
	Namespace    string                `json:"namespace"`
	Solved       bool                  `json:"solved"`
	PlotElements map[string]plotEntry  `json:"plotElements"`
}

type plotEntry struct {
	WidthConstraint      *constraintEntry `json:"widthConstraint"`
	HeightConstraint     *constraintEntry `json:"heightConstraint"`
	MarginLeft           float64          `json:"marginLeft"`
	MarginRight          float64          `json:"marginRight"`
	MarginTop            float64          `json:"marginTop"`
	MarginBottom         float64          `json:"marginBottom"`
	ChildLayoutDirection string           `json:"childLayoutDirection"`
	ChildPadding         float64          `json:"childPadding"`
	Label                string           `json:"label"`
	ParentID             string           `json:"parentId"`
	ChildLabels          []string         `json:"childLabels"`
}

// constraintEntry is the tagged-union wire form of a sizing rule. Only
// the field matching the tag is populated.
type constraintEntry struct {
	Constraint string   `json:"constraint"`
	Size       *float64 `json:"size,omitempty"`
	Aspect     *float64 `json:"aspect,omitempty"`
	ID         string   `json:"id,omitempty"`
}

func encodeRule(r rule.Rule) *constraintEntry {
	switch v := r.(type) {
	case rule.Fixed:
		size := v.Size
		return &constraintEntry{Constraint: "fixed", Size: &size}
	case rule.FixedAspect:
		aspect := v.Ratio
		return &constraintEntry{Constraint: "fixedAspect", Aspect: &aspect}
	case rule.FromChildren:
		return &constraintEntry{Constraint: "fromChildren"}
	case rule.FromParent:
		return &constraintEntry{Constraint: "fromParent"}
	case rule.Fill:
		return &constraintEntry{Constraint: "fill"}
	case rule.Named:
		return &constraintEntry{Constraint: "named", ID: v.Target}
	default:
		return nil
	}
}

func decodeRule(label, dim string, c *constraintEntry) (rule.Rule, error) {
	if c == nil {
		return nil, fmt.Errorf("panel %s: %w: %sConstraint", label, ErrMissingField, dim)
	}
	switch c.Constraint {
	case "fixed":
		if c.Size == nil {
			return nil, fmt.Errorf("panel %s: %sConstraint: %w: size", label, dim, ErrMissingField)
		}
		return rule.Fixed{Size: *c.Size}, nil
	case "fixedAspect":
		if c.Aspect == nil {
			return nil, fmt.Errorf("panel %s: %sConstraint: %w: aspect", label, dim, ErrMissingField)
		}
		return rule.FixedAspect{Ratio: *c.Aspect}, nil
	case "fromChildren":
		return rule.FromChildren{}, nil
	case "fromParent":
		return rule.FromParent{}, nil
	case "fill":
		return rule.Fill{}, nil
	case "named":
		if c.ID == "" {
			return nil, fmt.Errorf("panel %s: %sConstraint: %w: id", label, dim, ErrMissingField)
		}
		return rule.Named{Target: c.ID}, nil
	default:
		return nil, fmt.Errorf("panel %s: %sConstraint: %w: %q", label, dim, ErrUnknownConstraint, c.Constraint)
	}
}

func decodeDirection(label, s string) (layout.Axis, error) {
	switch s {
	case "vertical", "":
		return layout.Vertical, nil
	case "horizontal":
		return layout.Horizontal, nil
	default:
		return 0, fmt.Errorf("panel %s: %w: childLayoutDirection %q", label, ErrInvalidDocument, s)
	}
}

func decodePanel(label string, e plotEntry) (layout.Panel, error) {
	width, err := decodeRule(label, "width", e.WidthConstraint)
	if err != nil {
		return layout.Panel{}, err
	}
	height, err := decodeRule(label, "height", e.HeightConstraint)
	if err != nil {
		return layout.Panel{}, err
	}
	dir, err := decodeDirection(label, e.ChildLayoutDirection)
	if err != nil {
		return layout.Panel{}, err
	}
	return layout.Panel{
		ID:           label,
		Width:        width,
		Height:       height,
		MarginLeft:   e.MarginLeft,
		MarginRight:  e.MarginRight,
		MarginTop:    e.MarginTop,
		MarginBottom: e.MarginBottom,
		Direction:    dir,
		Padding:      e.ChildPadding,
	}, nil
}
