package layout

import "errors"

var (
	// ErrUnknownElement is returned when an id referenced as a parent,
	// as a Named rule target, or in a query does not exist in the tree.
	ErrUnknownElement = errors.New("unknown element")

	// ErrDuplicateElement is returned by [Layout.Insert] and
	// [Layout.Rename] when the id already exists in the tree.
	ErrDuplicateElement = errors.New("duplicate element id")

	// ErrInappropriateConstraint is returned when a sizing rule is used
	// in a context it is not valid for: a root rule outside
	// {Fixed, FixedAspect, FromChildren}, a FromChildren rule on the
	// axis perpendicular to the panel's child-layout axis, or a
	// negative margin or padding.
	ErrInappropriateConstraint = errors.New("inappropriate constraint")

	// ErrNoSolution is returned by geometry accessors when the tree has
	// been mutated since the last successful [Layout.Layout] call (or
	// was never solved). Prior geometry is considered stale.
	ErrNoSolution = errors.New("layout not solved")

	// ErrInvalidID is returned for empty ids and for attempts to use or
	// rename the reserved root id.
	ErrInvalidID = errors.New("invalid element id")
)
