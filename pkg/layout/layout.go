package layout

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/panelkit/panelkit/pkg/observability"
	"github.com/panelkit/panelkit/pkg/rule"
	"github.com/panelkit/panelkit/pkg/solver"
)

// RootID is the reserved id of the root panel.
const RootID = "base"

// Layout owns the panel tree and the solver backend. Create one with
// [New], grow it with [Layout.Insert], then call [Layout.Layout] before
// reading geometry.
type Layout struct {
	elements map[string]*element
	order    []string // insertion order, root first
	sys      solver.System
	solved   bool
}

// Option configures a Layout at construction time.
type Option func(*Layout)

// WithSolver swaps in a different constraint backend. The default is
// [solver.NewLeastSquares].
func WithSolver(sys solver.System) Option {
	return func(l *Layout) {
		if sys != nil {
			l.sys = sys
		}
	}
}

// New creates a layout whose root is described by root. The root's id
// is forced to [RootID]; passing any other non-empty id is an error.
//
// Root sizing rules must come from {Fixed, FixedAspect, FromChildren}:
// the root has no parent to inherit from, no siblings to share fill
// space with, and nothing above it a named reference could simplify. A
// nil rule on the dimension matching the root's child-layout axis
// defaults to FromChildren; a nil rule on the other dimension is an
// error since nothing else can determine it.
func New(root Panel, opts ...Option) (*Layout, error) {
	if root.ID != "" && root.ID != RootID {
		return nil, fmt.Errorf("%w: root must use id %q, got %q", ErrInvalidID, RootID, root.ID)
	}
	root.ID = RootID

	if err := root.validate(); err != nil {
		return nil, fmt.Errorf("root: %w", err)
	}
	var err error
	if root.Width, err = defaultRootRule(root.Width, Horizontal, root.Direction); err != nil {
		return nil, fmt.Errorf("root width: %w", err)
	}
	if root.Height, err = defaultRootRule(root.Height, Vertical, root.Direction); err != nil {
		return nil, fmt.Errorf("root height: %w", err)
	}
	if err := checkRootRule(root.Width, "width"); err != nil {
		return nil, err
	}
	if err := checkRootRule(root.Height, "height"); err != nil {
		return nil, err
	}
	if err := root.checkAxisRules(); err != nil {
		return nil, fmt.Errorf("root: %w", err)
	}

	l := &Layout{
		elements: map[string]*element{RootID: {Panel: root}},
		order:    []string{RootID},
		sys:      solver.NewLeastSquares(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

func defaultRootRule(r rule.Rule, dim Axis, direction Axis) (rule.Rule, error) {
	if r != nil {
		return r, nil
	}
	if dim == direction {
		return rule.FromChildren{}, nil
	}
	return nil, fmt.Errorf("%w: a rule is required on the dimension perpendicular to the root's child layout", ErrInappropriateConstraint)
}

func checkRootRule(r rule.Rule, dim string) error {
	switch r.(type) {
	case rule.Fixed, rule.FixedAspect, rule.FromChildren:
		return nil
	default:
		return fmt.Errorf("%w: root %s cannot use %s; only fixed, fixedAspect or fromChildren apply to the root",
			ErrInappropriateConstraint, dim, rule.String(r))
	}
}

// Insert adds p as the last child of parentID and returns the id the
// panel was stored under. When p.ID is empty a fresh id is generated.
// Insert rejects duplicate ids and clears the solved state.
//
// Named rule targets are not required to exist yet; forward references
// are checked when the layout is solved.
func (l *Layout) Insert(parentID string, p Panel) (string, error) {
	parent, ok := l.elements[parentID]
	if !ok {
		return "", fmt.Errorf("parent %q: %w", parentID, ErrUnknownElement)
	}

	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.ID == RootID {
		return "", fmt.Errorf("%w: %q is reserved for the root", ErrInvalidID, RootID)
	}
	if _, exists := l.elements[p.ID]; exists {
		return "", fmt.Errorf("%w: %q", ErrDuplicateElement, p.ID)
	}

	if p.Width == nil {
		p.Width = rule.FromParent{}
	}
	if p.Height == nil {
		p.Height = rule.FromParent{}
	}
	if err := p.validate(); err != nil {
		return "", fmt.Errorf("panel %q: %w", p.ID, err)
	}
	if err := p.checkAxisRules(); err != nil {
		return "", fmt.Errorf("panel %q: %w", p.ID, err)
	}

	l.elements[p.ID] = &element{Panel: p, parentID: parentID}
	l.order = append(l.order, p.ID)
	parent.children = append(parent.children, p.ID)
	l.solved = false
	return p.ID, nil
}

// Rename changes a panel's id, rewriting the parent's child list, the
// children's back-references, any Named rule targeting the old id, and
// the solver variable bindings on the next solve. The root cannot be
// renamed. Rename clears the solved state.
func (l *Layout) Rename(oldID, newID string) error {
	if oldID == RootID {
		return fmt.Errorf("%w: the root cannot be renamed", ErrInvalidID)
	}
	if newID == "" {
		return fmt.Errorf("%w: new id is empty", ErrInvalidID)
	}
	if newID == RootID {
		return fmt.Errorf("%w: %q is reserved for the root", ErrInvalidID, RootID)
	}
	el, ok := l.elements[oldID]
	if !ok {
		return fmt.Errorf("%q: %w", oldID, ErrUnknownElement)
	}
	if _, exists := l.elements[newID]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateElement, newID)
	}

	delete(l.elements, oldID)
	el.ID = newID
	l.elements[newID] = el

	for i, id := range l.order {
		if id == oldID {
			l.order[i] = newID
		}
	}
	parent := l.elements[el.parentID]
	for i, id := range parent.children {
		if id == oldID {
			parent.children[i] = newID
		}
	}
	for _, other := range l.elements {
		if other.parentID == oldID {
			other.parentID = newID
		}
		if n, ok := other.Width.(rule.Named); ok && n.Target == oldID {
			other.Width = rule.Named{Target: newID}
		}
		if n, ok := other.Height.(rule.Named); ok && n.Target == oldID {
			other.Height = rule.Named{Target: newID}
		}
	}

	l.solved = false
	return nil
}

// Panel returns a copy of the panel definition for id.
func (l *Layout) Panel(id string) (Panel, error) {
	el, ok := l.elements[id]
	if !ok {
		return Panel{}, fmt.Errorf("%q: %w", id, ErrUnknownElement)
	}
	return el.Panel, nil
}

// Parent returns the parent id of the given panel; the root's parent
// is the empty string.
func (l *Layout) Parent(id string) (string, error) {
	el, ok := l.elements[id]
	if !ok {
		return "", fmt.Errorf("%q: %w", id, ErrUnknownElement)
	}
	return el.parentID, nil
}

// Children returns the ordered child ids of the given panel.
func (l *Layout) Children(id string) ([]string, error) {
	el, ok := l.elements[id]
	if !ok {
		return nil, fmt.Errorf("%q: %w", id, ErrUnknownElement)
	}
	out := make([]string, len(el.children))
	copy(out, el.children)
	return out, nil
}

// IDs returns every panel id in insertion order, root first.
func (l *Layout) IDs() []string {
	out := make([]string, len(l.order))
	copy(out, l.order)
	return out
}

// Len returns the number of panels in the tree, including the root.
func (l *Layout) Len() int { return len(l.elements) }

// Solved reports whether the current tree state has been successfully
// solved.
func (l *Layout) Solved() bool { return l.solved }

// Walk visits every panel depth-first in child insertion order,
// starting at the root. depth is 0 for the root. Walk stops and
// returns the first error fn reports.
func (l *Layout) Walk(fn func(p Panel, depth int) error) error {
	var visit func(id string, depth int) error
	visit = func(id string, depth int) error {
		el := l.elements[id]
		if err := fn(el.Panel, depth); err != nil {
			return err
		}
		for _, cid := range el.children {
			if err := visit(cid, depth+1); err != nil {
				return err
			}
		}
		return nil
	}
	return visit(RootID, 0)
}

// Geometry returns the resolved geometry for id. It fails with
// [ErrNoSolution] until the tree has been solved.
func (l *Layout) Geometry(id string) (Geometry, error) {
	el, ok := l.elements[id]
	if !ok {
		return Geometry{}, fmt.Errorf("%q: %w", id, ErrUnknownElement)
	}
	if !l.solved {
		return Geometry{}, fmt.Errorf("%q: %w", id, ErrNoSolution)
	}
	return el.geom, nil
}

// Width returns the resolved width of id.
func (l *Layout) Width(id string) (float64, error) {
	g, err := l.Geometry(id)
	return g.Width, err
}

// Height returns the resolved height of id.
func (l *Layout) Height(id string) (float64, error) {
	g, err := l.Geometry(id)
	return g.Height, err
}

// FigureWidth returns the full figure width: the root panel's extent
// including its margins.
func (l *Layout) FigureWidth() (float64, error) {
	return l.Width(RootID)
}

// FigureHeight returns the full figure height including root margins.
func (l *Layout) FigureHeight() (float64, error) {
	return l.Height(RootID)
}

// Layout solves the tree: it resets the backend, emits every
// constraint, resolves the system, and computes absolute coordinates.
// On any failure the tree stays unsolved and prior geometry remains
// unavailable. There are no partial results.
func (l *Layout) Layout() error {
	start := time.Now()
	observability.Hooks().OnLayoutStart(l.Len())
	l.solved = false

	l.sys.Reset()
	for _, id := range l.order {
		if err := l.sys.AddVariable(widthVar(id)); err != nil {
			return fmt.Errorf("register %q: %w", id, err)
		}
		if err := l.sys.AddVariable(heightVar(id)); err != nil {
			return fmt.Errorf("register %q: %w", id, err)
		}
	}

	eqs, err := generateConstraints(l)
	if err == nil {
		for _, eq := range eqs {
			if err = l.sys.AddEquation(eq); err != nil {
				break
			}
		}
	}
	if err == nil {
		err = l.sys.Resolve()
	}
	if err == nil {
		err = l.readDimensions()
	}
	observability.Hooks().OnLayoutComplete(l.Len(), len(eqs), time.Since(start), err)
	if err != nil {
		return err
	}

	computeCoordinates(l)
	l.solved = true
	return nil
}

// readDimensions copies resolved widths and heights out of the solver.
func (l *Layout) readDimensions() error {
	for _, id := range l.order {
		el := l.elements[id]
		w, ok := l.sys.Value(widthVar(id))
		if !ok {
			return fmt.Errorf("panel %q: width unresolved", id)
		}
		h, ok := l.sys.Value(heightVar(id))
		if !ok {
			return fmt.Errorf("panel %q: height unresolved", id)
		}
		el.geom = Geometry{Width: w, Height: h}
	}
	return nil
}
