// Package factory builds and solves common figure layouts: vertical
// stacks, subplot grids, and corner ("triangle") arrangements. Each
// factory is a config struct whose Build method returns a solved
// [layout.Layout]; panels carry predictable ids so callers can query
// geometry directly.
package factory

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/panelkit/panelkit/pkg/layout"
	"github.com/panelkit/panelkit/pkg/rule"
)

// ErrInvalidConfig reports a factory configuration that cannot produce
// a layout: empty panel lists, mismatched label counts, or dimensions
// that leave no room for the panels.
var ErrInvalidConfig = errors.New("invalid factory configuration")

// Margins groups the four outer margins of the figure.
type Margins struct {
	Left, Right, Top, Bottom float64
}

func rootPanel(m Margins, padding float64) layout.Panel {
	return layout.Panel{
		MarginLeft:   m.Left,
		MarginRight:  m.Right,
		MarginTop:    m.Top,
		MarginBottom: m.Bottom,
		Padding:      padding,
	}
}

// Stack describes a vertical stack of full-width panels. The figure
// height follows from the panel heights.
type Stack struct {
	// Width is the fixed figure width.
	Width float64

	// Heights lists the panel heights top to bottom.
	Heights []float64

	// Labels optionally names each panel. When nil, panels are labeled
	// by their index ("0", "1", ...). When set, it must match Heights
	// in length.
	Labels []string

	Margins Margins
	Padding float64
}

// Build constructs and solves the stack.
func (s Stack) Build() (*layout.Layout, error) {
	if len(s.Heights) == 0 {
		return nil, fmt.Errorf("%w: stack needs at least one height", ErrInvalidConfig)
	}
	if s.Labels != nil && len(s.Labels) != len(s.Heights) {
		return nil, fmt.Errorf("%w: %d labels for %d heights", ErrInvalidConfig, len(s.Labels), len(s.Heights))
	}

	root := rootPanel(s.Margins, s.Padding)
	root.Width = rule.Fixed{Size: s.Width}
	l, err := layout.New(root)
	if err != nil {
		return nil, err
	}
	for i, h := range s.Heights {
		id := strconv.Itoa(i)
		if s.Labels != nil {
			id = s.Labels[i]
		}
		if _, err := l.Insert(layout.RootID, layout.Panel{ID: id, Height: rule.Fixed{Size: h}}); err != nil {
			return nil, err
		}
	}
	if err := l.Layout(); err != nil {
		return nil, err
	}
	return l, nil
}

// Grid describes a subplot grid of Rows x Columns panels. Exactly one
// of FixedHeight or Aspect must be set: with FixedHeight the figure
// height is pinned and rows share it evenly; with Aspect each cell
// keeps the given width:height ratio and the figure height follows.
type Grid struct {
	Rows    int
	Columns int

	// Width is the fixed figure width.
	Width float64

	// FixedHeight pins the figure height; rows fill it evenly.
	FixedHeight float64

	// Aspect is the width:height ratio of each cell.
	Aspect float64

	// LabelFormat names each cell from its 1-based row and column,
	// "r%02dc%02d" by default. Row containers are named "r%02d".
	LabelFormat string

	Margins Margins
	Padding float64
}

// Build constructs and solves the grid.
func (g Grid) Build() (*layout.Layout, error) {
	if g.Rows < 1 || g.Columns < 1 {
		return nil, fmt.Errorf("%w: grid needs at least one row and one column", ErrInvalidConfig)
	}
	if (g.FixedHeight > 0) == (g.Aspect > 0) {
		return nil, fmt.Errorf("%w: set exactly one of FixedHeight and Aspect", ErrInvalidConfig)
	}
	labelFmt := g.LabelFormat
	if labelFmt == "" {
		labelFmt = "r%02dc%02d"
	}

	root := rootPanel(g.Margins, g.Padding)
	root.Width = rule.Fixed{Size: g.Width}
	if g.FixedHeight > 0 {
		root.Height = rule.Fixed{Size: g.FixedHeight}
	}
	l, err := layout.New(root)
	if err != nil {
		return nil, err
	}

	for r := 1; r <= g.Rows; r++ {
		row := layout.Panel{
			ID:        fmt.Sprintf("r%02d", r),
			Direction: layout.Horizontal,
			Padding:   g.Padding,
		}
		if g.FixedHeight > 0 {
			row.Height = rule.Fill{}
		} else {
			// Every cell has the same derived height, so any one of
			// them can anchor the row.
			row.Height = rule.Named{Target: fmt.Sprintf(labelFmt, 1, 1)}
		}
		if _, err := l.Insert(layout.RootID, row); err != nil {
			return nil, err
		}
		for c := 1; c <= g.Columns; c++ {
			cell := layout.Panel{
				ID:    fmt.Sprintf(labelFmt, r, c),
				Width: rule.Fill{},
			}
			if g.Aspect > 0 {
				cell.Height = rule.FixedAspect{Ratio: g.Aspect}
			}
			if _, err := l.Insert(row.ID, cell); err != nil {
				return nil, err
			}
		}
	}
	if err := l.Layout(); err != nil {
		return nil, err
	}
	return l, nil
}

// Triangle describes a corner plot: an n x n lower triangle of 2D
// panels with a 1D marginal at the top of each column and down the
// left-hand side. Panels are named after the variables they show:
// "<a>-<b>-2d" for the 2D panel of a against b, "<v>-1d-h" and
// "<v>-1d-v" for the top and side marginals.
//
// With Width zero, every 2D panel is a fixed Dim2D square and the
// figure width follows from the columns. With Width set, the columns
// share the fixed figure width and the 2D panels become squares of
// whatever size that leaves.
type Triangle struct {
	// Vars lists the variables, at least two.
	Vars []string

	// Dim2D is the edge length of each 2D panel. Ignored when Width is
	// set.
	Dim2D float64

	// Dim1D is the thickness of the 1D marginal panels.
	Dim1D float64

	// Width optionally fixes the figure width.
	Width float64

	// FramePadding separates the columns; PanelPadding separates the
	// panels within a column.
	FramePadding float64
	PanelPadding float64

	Margins Margins
}

// Build constructs and solves the triangle.
func (tr Triangle) Build() (*layout.Layout, error) {
	n := len(tr.Vars)
	if n < 2 {
		return nil, fmt.Errorf("%w: triangle needs at least two variables", ErrInvalidConfig)
	}
	if tr.Dim1D <= 0 {
		return nil, fmt.Errorf("%w: Dim1D must be positive", ErrInvalidConfig)
	}

	// Every column holds n panels summing to the same height, so the
	// figure height is known up front.
	square := tr.Dim2D
	if tr.Width > 0 {
		square = (tr.Width - tr.Margins.Left - tr.Margins.Right -
			tr.Dim1D - float64(n-1)*tr.FramePadding) / float64(n-1)
		if square <= 0 {
			return nil, fmt.Errorf("%w: width %g leaves no room for the columns", ErrInvalidConfig, tr.Width)
		}
	} else if tr.Dim2D <= 0 {
		return nil, fmt.Errorf("%w: Dim2D must be positive", ErrInvalidConfig)
	}
	height := tr.Margins.Top + tr.Margins.Bottom +
		tr.Dim1D + float64(n-1)*(square+tr.PanelPadding)

	root := rootPanel(tr.Margins, tr.FramePadding)
	root.Direction = layout.Horizontal
	root.Height = rule.Fixed{Size: height}
	if tr.Width > 0 {
		root.Width = rule.Fixed{Size: tr.Width}
	} else {
		root.Width = rule.FromChildren{}
	}
	l, err := layout.New(root)
	if err != nil {
		return nil, err
	}

	frame := func(id string, width rule.Rule) layout.Panel {
		return layout.Panel{
			ID:      id,
			Width:   width,
			Height:  rule.FromChildren{},
			Padding: tr.PanelPadding,
		}
	}
	panel2D := func(id string) layout.Panel {
		p := layout.Panel{ID: id}
		if tr.Width > 0 {
			p.Height = rule.FixedAspect{Ratio: 1}
		} else {
			p.Height = rule.Fixed{Size: tr.Dim2D}
		}
		return p
	}

	// Left-hand frame: a spacer aligned with the top marginals, then
	// the side marginal for each row.
	if _, err := l.Insert(layout.RootID, frame("tleft-frame", rule.Fixed{Size: tr.Dim1D})); err != nil {
		return nil, err
	}
	for i := 1; i < n; i++ {
		colWidth := rule.Rule(rule.Fixed{Size: tr.Dim2D})
		if tr.Width > 0 {
			colWidth = rule.Fill{}
		}
		if _, err := l.Insert(layout.RootID, frame(fmt.Sprintf("t%d-frame", i), colWidth)); err != nil {
			return nil, err
		}
	}

	if _, err := l.Insert("tleft-frame", layout.Panel{ID: "tleft-spacer", Height: rule.Fixed{Size: tr.Dim1D}}); err != nil {
		return nil, err
	}
	// The side marginals are thin, so in the shared-width variant they
	// take their height from a 2D panel by name instead of by aspect.
	sideHeight := rule.Rule(rule.Fixed{Size: tr.Dim2D})
	if tr.Width > 0 {
		sideHeight = rule.Named{Target: fmt.Sprintf("%s-%s-2d", tr.Vars[0], tr.Vars[1])}
	}
	for i := n - 1; i >= 1; i-- {
		side := layout.Panel{ID: tr.Vars[i] + "-1d-v", Height: sideHeight}
		if _, err := l.Insert("tleft-frame", side); err != nil {
			return nil, err
		}
	}

	// Column frames: spacers for alignment, the top marginal, then the
	// 2D panels walking down the triangle.
	varIndex := make([]int, n-1)
	for i := 1; i < n-1; i++ {
		varIndex[i] = n - i
	}
	for i := 0; i < n-1; i++ {
		frameID := fmt.Sprintf("t%d-frame", i+1)
		k := varIndex[i]

		for j := 0; j < i; j++ {
			spacer := panel2D(fmt.Sprintf("t%d-spacer%d", i+1, j+1))
			if _, err := l.Insert(frameID, spacer); err != nil {
				return nil, err
			}
		}
		top := layout.Panel{ID: tr.Vars[k] + "-1d-h", Height: rule.Fixed{Size: tr.Dim1D}}
		if _, err := l.Insert(frameID, top); err != nil {
			return nil, err
		}
		for j := n - 1 - i; j >= 1; j-- {
			hist := panel2D(fmt.Sprintf("%s-%s-2d", tr.Vars[k], tr.Vars[j]))
			if _, err := l.Insert(frameID, hist); err != nil {
				return nil, err
			}
		}
	}

	if err := l.Layout(); err != nil {
		return nil, err
	}
	return l, nil
}
