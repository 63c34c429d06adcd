// Package solver defines the linear-constraint backend contract used by
// the layout engine, plus a default backend built on gonum.
//
// A backend manages named real-valued variables and linear equality
// constraints tagged with a priority. Constraints are added
// incrementally; Resolve assigns every variable its final value in one
// batch, or fails if the required constraints are inconsistent. Reset
// discards all variables and constraints.
//
// The layout engine only ever talks to the [System] interface, so a
// different solver (e.g. a cassowary implementation) can be swapped in
// without touching the engine.
package solver

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors reported by backends.
var (
	// ErrInfeasible is returned by [System.Resolve] when the required
	// constraints admit no consistent assignment.
	ErrInfeasible = errors.New("constraint system is infeasible")

	// ErrUnknownVariable is returned by [System.AddEquation] when an
	// equation references a variable that was never added.
	ErrUnknownVariable = errors.New("unknown solver variable")

	// ErrDuplicateVariable is returned by [System.AddVariable] when the
	// name is already registered.
	ErrDuplicateVariable = errors.New("duplicate solver variable")
)

// Priority is the precedence tier of an equation. Required equations
// must hold exactly or Resolve fails; strong beats weak when the two
// compete for the same degrees of freedom.
type Priority int

const (
	Weak Priority = iota
	Strong
	Required
)

// String returns the priority name.
func (p Priority) String() string {
	switch p {
	case Weak:
		return "weak"
	case Strong:
		return "strong"
	case Required:
		return "required"
	}
	return fmt.Sprintf("Priority(%d)", int(p))
}

// Expr is a linear expression: a sum of coefficient*variable terms plus
// a constant. Expressions are values; the arithmetic methods return new
// expressions and never mutate their receiver.
type Expr struct {
	Terms map[string]float64
	Const float64
}

// Var returns the expression consisting of the single variable name.
func Var(name string) Expr {
	return Expr{Terms: map[string]float64{name: 1}}
}

// Constant returns the constant expression v.
func Constant(v float64) Expr {
	return Expr{Const: v}
}

func (e Expr) clone() Expr {
	out := Expr{Terms: make(map[string]float64, len(e.Terms)), Const: e.Const}
	for n, c := range e.Terms {
		out.Terms[n] = c
	}
	return out
}

// Plus returns e + o.
func (e Expr) Plus(o Expr) Expr {
	out := e.clone()
	out.Const += o.Const
	for n, c := range o.Terms {
		out.Terms[n] += c
	}
	return out
}

// Minus returns e - o.
func (e Expr) Minus(o Expr) Expr {
	return e.Plus(o.Scale(-1))
}

// Scale returns e with every coefficient and the constant multiplied
// by k.
func (e Expr) Scale(k float64) Expr {
	out := e.clone()
	out.Const *= k
	for n := range out.Terms {
		out.Terms[n] *= k
	}
	return out
}

// String renders the expression with variables in sorted order, for
// deterministic diagnostics.
func (e Expr) String() string {
	names := make([]string, 0, len(e.Terms))
	for n := range e.Terms {
		names = append(names, n)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, n := range names {
		c := e.Terms[n]
		if c == 0 {
			continue
		}
		if b.Len() > 0 {
			b.WriteString(" + ")
		}
		if c == 1 {
			b.WriteString(n)
		} else {
			fmt.Fprintf(&b, "%g*%s", c, n)
		}
	}
	if e.Const != 0 || b.Len() == 0 {
		if b.Len() > 0 {
			b.WriteString(" + ")
		}
		fmt.Fprintf(&b, "%g", e.Const)
	}
	return b.String()
}

// Equation asserts LHS == RHS at the given priority.
type Equation struct {
	LHS, RHS Expr
	Priority Priority
}

// Eq builds an equation lhs == rhs with priority p.
func Eq(lhs, rhs Expr, p Priority) Equation {
	return Equation{LHS: lhs, RHS: rhs, Priority: p}
}

// String renders the equation, e.g. "a-h + b-h = base-h [required]".
func (q Equation) String() string {
	return fmt.Sprintf("%s = %s [%s]", q.LHS, q.RHS, q.Priority)
}

// normalize folds the equation into sum(coef*var) = rhs form.
func (q Equation) normalize() (coefs map[string]float64, rhs float64) {
	d := q.LHS.Minus(q.RHS)
	coefs = make(map[string]float64, len(d.Terms))
	for n, c := range d.Terms {
		if c != 0 {
			coefs[n] = c
		}
	}
	return coefs, -d.Const
}

// System is the pluggable solver backend contract.
//
// The expected call sequence per solve cycle is: Reset, AddVariable for
// every unknown, AddEquation for every constraint (incrementally, in
// any order), then one Resolve. Value is only meaningful after a
// successful Resolve and before the next Reset.
type System interface {
	// AddVariable registers a named real-valued variable.
	AddVariable(name string) error

	// AddEquation adds one equality constraint. Every variable the
	// equation references must already be registered.
	AddEquation(eq Equation) error

	// Reset discards all variables, constraints, and resolved values.
	Reset()

	// Resolve assigns every variable its final value, or fails with
	// ErrInfeasible (wrapped with the offending constraint) when the
	// required constraints conflict.
	Resolve() error

	// Value reports the resolved value of a variable. The boolean is
	// false if the variable is unknown or the system is unresolved.
	Value(name string) (float64, bool)
}
