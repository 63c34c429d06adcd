// Package rule defines the closed set of sizing rules a panel dimension
// can carry.
//
// Every panel has exactly one rule per dimension. The six kinds are:
//
//   - Fixed: the dimension is an absolute size.
//   - FixedAspect: the dimension is derived from the panel's other
//     dimension via width = ratio * height.
//   - FromChildren: the dimension is the sum of the children stacked
//     along the panel's child-layout axis, plus padding and margins.
//   - FromParent: the dimension is the parent's dimension minus the
//     parent's margins on that axis.
//   - Fill: the dimension consumes the parent's remaining space along
//     the layout axis, split evenly among sibling Fill panels.
//   - Named: the dimension copies another panel's resolved dimension.
//
// Rule is a sealed interface; the set of implementations cannot grow
// outside this package, so switches over [Rule.Kind] can be exhaustive.
package rule

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidRule is returned by [Validate] when a rule carries an
// implausible parameter (non-positive size or ratio, NaN, infinity,
// or an empty Named target).
var ErrInvalidRule = errors.New("invalid sizing rule")

// Kind identifies a sizing-rule variant.
type Kind int

const (
	KindFixed Kind = iota
	KindFixedAspect
	KindFromChildren
	KindFromParent
	KindFill
	KindNamed
)

// String returns the kind's name as used in diagnostics.
func (k Kind) String() string {
	switch k {
	case KindFixed:
		return "fixed"
	case KindFixedAspect:
		return "fixedAspect"
	case KindFromChildren:
		return "fromChildren"
	case KindFromParent:
		return "fromParent"
	case KindFill:
		return "fill"
	case KindNamed:
		return "named"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Rule is one sizing rule for one panel dimension. It is a closed sum:
// only the types in this package implement it.
type Rule interface {
	Kind() Kind
	sealed()
}

// Fixed pins the dimension to an absolute size in layout units.
type Fixed struct {
	Size float64
}

// FixedAspect derives the dimension from the panel's other dimension.
// Applied to width it means width = Ratio * height; applied to height
// it means height = width / Ratio. Both directions yield the same
// linear relation.
type FixedAspect struct {
	Ratio float64
}

// FromChildren sums the panel's children along its child-layout axis.
// It is only valid on the dimension matching that axis.
type FromChildren struct{}

// FromParent copies the parent's dimension minus the parent's margins
// on the same axis.
type FromParent struct{}

// Fill consumes an even share of the parent's remaining space along
// the parent's child-layout axis.
type Fill struct{}

// Named copies the resolved dimension of the panel identified by
// Target. Forward references are permitted; cyclic references are
// undefined behavior.
type Named struct {
	Target string
}

func (Fixed) Kind() Kind        { return KindFixed }
func (FixedAspect) Kind() Kind  { return KindFixedAspect }
func (FromChildren) Kind() Kind { return KindFromChildren }
func (FromParent) Kind() Kind   { return KindFromParent }
func (Fill) Kind() Kind         { return KindFill }
func (Named) Kind() Kind        { return KindNamed }

func (Fixed) sealed()        {}
func (FixedAspect) sealed()  {}
func (FromChildren) sealed() {}
func (FromParent) sealed()   {}
func (Fill) sealed()         {}
func (Named) sealed()        {}

// String renders the rule for diagnostics, e.g. "fixed(4.5)" or
// "named(colorbar)".
func String(r Rule) string {
	switch v := r.(type) {
	case Fixed:
		return fmt.Sprintf("fixed(%g)", v.Size)
	case FixedAspect:
		return fmt.Sprintf("fixedAspect(%g)", v.Ratio)
	case Named:
		return fmt.Sprintf("named(%s)", v.Target)
	default:
		return r.Kind().String()
	}
}

// Validate checks the rule's parameters for plausibility. Sizes and
// aspect ratios must be finite and strictly positive; Named targets
// must be non-empty. Structural validity (where a rule may appear in
// the tree) is the layout package's concern, not Validate's.
func Validate(r Rule) error {
	switch v := r.(type) {
	case Fixed:
		if !finitePositive(v.Size) {
			return fmt.Errorf("%w: fixed size %g must be a positive finite number", ErrInvalidRule, v.Size)
		}
	case FixedAspect:
		if !finitePositive(v.Ratio) {
			return fmt.Errorf("%w: aspect ratio %g must be a positive finite number", ErrInvalidRule, v.Ratio)
		}
	case Named:
		if v.Target == "" {
			return fmt.Errorf("%w: named rule requires a target id", ErrInvalidRule)
		}
	case FromChildren, FromParent, Fill:
		// no parameters
	default:
		return fmt.Errorf("%w: unrecognized rule %T", ErrInvalidRule, r)
	}
	return nil
}

func finitePositive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1) && !math.IsNaN(v)
}
