package layout

import (
	"fmt"

	"github.com/panelkit/panelkit/pkg/rule"
	"github.com/panelkit/panelkit/pkg/solver"
)

// Solver variable names, one pair per panel.
func widthVar(id string) string  { return id + "-w" }
func heightVar(id string) string { return id + "-h" }

func dimVar(id string, a Axis) string {
	if a == Horizontal {
		return widthVar(id)
	}
	return heightVar(id)
}

// generateConstraints is phase 1: a pure top-down walk that turns the
// rule tree into an equation set. It mutates nothing; the solver sees
// the equations only after the walk has fully succeeded.
//
// All equations are emitted at required priority. The emission order is
// deterministic (child insertion order, width before height, parents
// before descendants) so diagnostics are reproducible, but the solver
// resolves the set as a whole and does not depend on it.
func generateConstraints(l *Layout) ([]solver.Equation, error) {
	var eqs []solver.Equation

	root := l.elements[RootID]
	emitRootRule(&eqs, root.Panel, Horizontal)
	emitRootRule(&eqs, root.Panel, Vertical)

	if err := emitSubtree(l, root, &eqs); err != nil {
		return nil, err
	}
	return eqs, nil
}

// emitRootRule handles the root's own rules. FromChildren is covered
// by the subtree walk like any other panel's.
func emitRootRule(eqs *[]solver.Equation, root Panel, dim Axis) {
	v := solver.Var(dimVar(root.ID, dim))
	var r rule.Rule
	if dim == Horizontal {
		r = root.Width
	} else {
		r = root.Height
	}
	switch r := r.(type) {
	case rule.Fixed:
		*eqs = append(*eqs, solver.Eq(v, solver.Constant(r.Size), solver.Required))
	case rule.FixedAspect:
		other := solver.Var(dimVar(root.ID, dim.perpendicular()))
		if dim == Horizontal {
			// width = ratio * height
			*eqs = append(*eqs, solver.Eq(v, other.Scale(r.Ratio), solver.Required))
		} else {
			// height = width / ratio
			*eqs = append(*eqs, solver.Eq(v, other.Scale(1/r.Ratio), solver.Required))
		}
	}
}

// emitSubtree emits the equations for p's children, then recurses into
// every child before moving to the next sibling subtree.
func emitSubtree(l *Layout, p *element, eqs *[]solver.Equation) error {
	n := len(p.children)
	axis := p.Direction

	// Running sum of the children stacked along the axis: padding
	// between consecutive children plus p's own margins, then each
	// child whose axis rule contributes a determinate extent.
	axisSum := solver.Constant(p.marginsOn(axis))
	if n > 1 {
		axisSum = axisSum.Plus(solver.Constant(float64(n-1) * p.Padding))
	}

	var fillSet []string
	for _, cid := range p.children {
		c := l.elements[cid]
		for _, dim := range []Axis{Horizontal, Vertical} {
			var r rule.Rule
			if dim == Horizontal {
				r = c.Width
			} else {
				r = c.Height
			}
			cv := solver.Var(dimVar(cid, dim))
			switch r := r.(type) {
			case rule.Fixed:
				*eqs = append(*eqs, solver.Eq(cv, solver.Constant(r.Size), solver.Required))
			case rule.FixedAspect:
				other := solver.Var(dimVar(cid, dim.perpendicular()))
				if dim == Horizontal {
					*eqs = append(*eqs, solver.Eq(cv, other.Scale(r.Ratio), solver.Required))
				} else {
					*eqs = append(*eqs, solver.Eq(cv, other.Scale(1/r.Ratio), solver.Required))
				}
			case rule.FromParent:
				pv := solver.Var(dimVar(p.ID, dim))
				*eqs = append(*eqs, solver.Eq(cv, pv.Minus(solver.Constant(p.marginsOn(dim))), solver.Required))
			case rule.Named:
				if _, ok := l.elements[r.Target]; !ok {
					return fmt.Errorf("panel %q: named target %q: %w", cid, r.Target, ErrUnknownElement)
				}
				*eqs = append(*eqs, solver.Eq(cv, solver.Var(dimVar(r.Target, dim)), solver.Required))
			case rule.Fill:
				if dim == axis {
					fillSet = append(fillSet, cid)
				} else {
					// Children overlap on the perpendicular axis, so a
					// cross-axis fill takes the whole interior.
					pv := solver.Var(dimVar(p.ID, dim))
					*eqs = append(*eqs, solver.Eq(cv, pv.Minus(solver.Constant(p.marginsOn(dim))), solver.Required))
				}
			case rule.FromChildren:
				// The child's own subtree walk emits its sum.
			}

			if dim == axis && contributesToSum(r) {
				axisSum = axisSum.Plus(cv)
			}
		}
	}

	// The panel's own FromChildren rule on the layout axis. The
	// cross-axis combination is rejected at insert time.
	if _, ok := ownAxisRule(p.Panel).(rule.FromChildren); ok {
		pv := solver.Var(dimVar(p.ID, axis))
		*eqs = append(*eqs, solver.Eq(pv, axisSum, solver.Required))
	}

	// Fill children split the remaining axis space evenly. A single
	// fill child takes the whole remainder; an empty set emits nothing.
	if k := len(fillSet); k > 0 {
		pv := solver.Var(dimVar(p.ID, axis))
		share := pv.Minus(axisSum).Scale(1 / float64(k))
		for _, cid := range fillSet {
			cv := solver.Var(dimVar(cid, axis))
			*eqs = append(*eqs, solver.Eq(cv, share, solver.Required))
		}
	}

	for _, cid := range p.children {
		if err := emitSubtree(l, l.elements[cid], eqs); err != nil {
			return err
		}
	}
	return nil
}

// contributesToSum reports whether a child's rule on the layout axis
// adds a determinate extent to the parent's FromChildren/Fill sum.
// FromParent and Fill children derive from the parent and must not
// feed back into it.
func contributesToSum(r rule.Rule) bool {
	switch r.(type) {
	case rule.Fixed, rule.FixedAspect, rule.FromChildren, rule.Named:
		return true
	}
	return false
}

// ownAxisRule returns the panel's rule on its child-layout axis.
func ownAxisRule(p Panel) rule.Rule {
	if p.Direction == Horizontal {
		return p.Width
	}
	return p.Height
}

func (a Axis) perpendicular() Axis {
	if a == Horizontal {
		return Vertical
	}
	return Horizontal
}

// computeCoordinates is phase 2: a pure evaluation over the resolved
// widths and heights, converting them to absolute edges. The y-axis
// grows upward; widths advance rightward from the left edge and
// heights hang downward from the top edge.
func computeCoordinates(l *Layout) {
	root := l.elements[RootID]

	// The root's published edges are its interior box: the full extent
	// minus its own margins, offset from the origin by those margins.
	root.geom.Left = root.MarginLeft
	root.geom.Right = root.MarginLeft + root.geom.Width - root.marginsOn(Horizontal)
	root.geom.Bottom = root.MarginBottom
	root.geom.Top = root.MarginBottom + root.geom.Height - root.marginsOn(Vertical)

	placeChildren(l, root)
}

func placeChildren(l *Layout, p *element) {
	// The interior origin: the root's margins are already folded into
	// its edges, every other panel insets its outer box here.
	ox, oy := p.geom.Left, p.geom.Top
	if p.ID != RootID {
		ox += p.MarginLeft
		oy -= p.MarginTop
	}

	var dx, dy float64
	for _, cid := range p.children {
		c := l.elements[cid]
		c.geom.Left = ox + dx
		c.geom.Right = c.geom.Left + c.geom.Width
		c.geom.Top = oy - dy
		c.geom.Bottom = c.geom.Top - c.geom.Height

		// Descend fully before advancing the sibling offset.
		placeChildren(l, c)

		if p.Direction == Horizontal {
			dx += c.geom.Width + p.Padding
		} else {
			dy += c.geom.Height + p.Padding
		}
	}
}
