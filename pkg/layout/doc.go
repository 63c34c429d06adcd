// Package layout computes concrete geometry for a tree of rectangular
// panels from per-panel sizing rules.
//
// A [Layout] owns an arena of panels indexed by id. Each panel carries
// one sizing rule per dimension (see the rule package), four margins, a
// child-layout axis, and inter-child padding. Children are ordered;
// insertion order determines their placement along the axis.
//
// # Solving
//
// [Layout.Layout] turns the rule tree into absolute geometry in two
// phases. Phase 1 walks the tree top-down and emits one linear
// equation per rule into a pluggable solver backend (see the solver
// package); the backend then resolves every panel's width and height in
// a single batch. Phase 2 walks the tree a second time and converts the
// resolved dimensions into absolute edge coordinates, placing children
// from each parent's interior origin. Phase 2 performs no solving.
//
// A full constraint solve (rather than value propagation) is required
// because aspect-ratio and named rules couple dimensions across the
// tree: a panel's height may depend on its own width, which depends on
// an ancestor whose height sums over that very panel.
//
// # Conventions
//
// Widths and heights denote a panel's full extent; a panel's own
// margins inset the interior where its children are placed. The
// y-axis grows upward with the figure's bottom-left as the conceptual
// origin; the root's published edges are its interior box, offset from
// the origin by its own margins.
//
// Any mutation (insert, rename) invalidates the solve: geometry
// accessors return [ErrNoSolution] until the next successful call to
// [Layout.Layout]. There is no incremental re-layout; every call
// resets the backend and re-emits all constraints.
//
// Layout instances are not safe for concurrent use.
package layout
