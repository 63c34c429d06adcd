package solver

import (
	"errors"
	"math"
	"testing"
)

const eps = 1e-6

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= eps*(1+math.Abs(b))
}

func mustValue(t *testing.T, s System, name string) float64 {
	t.Helper()
	v, ok := s.Value(name)
	if !ok {
		t.Fatalf("Value(%q) not available", name)
	}
	return v
}

func TestExprArithmetic(t *testing.T) {
	e := Var("x").Plus(Var("y").Scale(2)).Minus(Constant(3))
	if e.Terms["x"] != 1 || e.Terms["y"] != 2 || e.Const != -3 {
		t.Errorf("unexpected expression %v", e)
	}

	// Scale must not mutate the original.
	orig := Var("x")
	_ = orig.Scale(5)
	if orig.Terms["x"] != 1 {
		t.Error("Scale mutated its receiver")
	}
}

func TestExprString(t *testing.T) {
	tests := []struct {
		expr Expr
		want string
	}{
		{Var("a"), "a"},
		{Constant(2.5), "2.5"},
		{Var("b").Scale(3).Plus(Constant(1)), "3*b + 1"},
		{Var("b").Plus(Var("a")), "a + b"},
		{Expr{}, "0"},
	}
	for _, tt := range tests {
		if got := tt.expr.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestResolveSimple(t *testing.T) {
	s := NewLeastSquares()
	for _, name := range []string{"w", "h"} {
		if err := s.AddVariable(name); err != nil {
			t.Fatalf("AddVariable(%q): %v", name, err)
		}
	}
	// w = 10, h = w / 4
	if err := s.AddEquation(Eq(Var("w"), Constant(10), Required)); err != nil {
		t.Fatal(err)
	}
	if err := s.AddEquation(Eq(Var("h"), Var("w").Scale(0.25), Required)); err != nil {
		t.Fatal(err)
	}
	if err := s.Resolve(); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got := mustValue(t, s, "w"); !almostEqual(got, 10) {
		t.Errorf("w = %g, want 10", got)
	}
	if got := mustValue(t, s, "h"); !almostEqual(got, 2.5) {
		t.Errorf("h = %g, want 2.5", got)
	}
}

func TestResolveCoupledSystem(t *testing.T) {
	// A coupled system a one-pass propagator cannot solve:
	//   h = w / 2
	//   w = t - 1
	//   t = h + 4
	s := NewLeastSquares()
	for _, name := range []string{"w", "h", "t"} {
		if err := s.AddVariable(name); err != nil {
			t.Fatal(err)
		}
	}
	eqs := []Equation{
		Eq(Var("h"), Var("w").Scale(0.5), Required),
		Eq(Var("w"), Var("t").Minus(Constant(1)), Required),
		Eq(Var("t"), Var("h").Plus(Constant(4)), Required),
	}
	for _, eq := range eqs {
		if err := s.AddEquation(eq); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.Resolve(); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	// w = 6, h = 3, t = 7
	if got := mustValue(t, s, "w"); !almostEqual(got, 6) {
		t.Errorf("w = %g, want 6", got)
	}
	if got := mustValue(t, s, "h"); !almostEqual(got, 3) {
		t.Errorf("h = %g, want 3", got)
	}
	if got := mustValue(t, s, "t"); !almostEqual(got, 7) {
		t.Errorf("t = %g, want 7", got)
	}
}

func TestResolveInfeasible(t *testing.T) {
	s := NewLeastSquares()
	if err := s.AddVariable("x"); err != nil {
		t.Fatal(err)
	}
	if err := s.AddEquation(Eq(Var("x"), Constant(1), Required)); err != nil {
		t.Fatal(err)
	}
	if err := s.AddEquation(Eq(Var("x"), Constant(2), Required)); err != nil {
		t.Fatal(err)
	}
	err := s.Resolve()
	if !errors.Is(err, ErrInfeasible) {
		t.Fatalf("Resolve error = %v, want ErrInfeasible", err)
	}
}

func TestPriorityTiers(t *testing.T) {
	// A required constraint must win over a conflicting strong one, and
	// strong over weak, without tripping the feasibility check.
	s := NewLeastSquares()
	if err := s.AddVariable("x"); err != nil {
		t.Fatal(err)
	}
	if err := s.AddVariable("y"); err != nil {
		t.Fatal(err)
	}
	if err := s.AddEquation(Eq(Var("x"), Constant(5), Required)); err != nil {
		t.Fatal(err)
	}
	if err := s.AddEquation(Eq(Var("x"), Constant(100), Strong)); err != nil {
		t.Fatal(err)
	}
	if err := s.AddEquation(Eq(Var("y"), Constant(7), Strong)); err != nil {
		t.Fatal(err)
	}
	if err := s.AddEquation(Eq(Var("y"), Constant(-100), Weak)); err != nil {
		t.Fatal(err)
	}
	if err := s.Resolve(); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got := mustValue(t, s, "x"); math.Abs(got-5) > 0.2 {
		t.Errorf("x = %g, want ~5 (required beats strong)", got)
	}
	if got := mustValue(t, s, "y"); math.Abs(got-7) > 0.2 {
		t.Errorf("y = %g, want ~7 (strong beats weak)", got)
	}
}

func TestRequiredOverridesConflict(t *testing.T) {
	// A lower-tier equation directly contradicting a required one loses;
	// it must not be mistaken for an infeasible system.
	s := NewLeastSquares()
	for _, name := range []string{"x", "y"} {
		if err := s.AddVariable(name); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.AddEquation(Eq(Var("x"), Constant(5), Required)); err != nil {
		t.Fatal(err)
	}
	if err := s.AddEquation(Eq(Var("x"), Constant(100), Strong)); err != nil {
		t.Fatal(err)
	}
	if err := s.AddEquation(Eq(Var("y"), Constant(2), Required)); err != nil {
		t.Fatal(err)
	}
	if err := s.AddEquation(Eq(Var("y"), Constant(-50), Weak)); err != nil {
		t.Fatal(err)
	}
	if err := s.Resolve(); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got := mustValue(t, s, "x"); math.Abs(got-5) > 1e-3 {
		t.Errorf("x = %g, want 5", got)
	}
	if got := mustValue(t, s, "y"); math.Abs(got-2) > 1e-3 {
		t.Errorf("y = %g, want 2", got)
	}
}

func TestResolveIllConditioned(t *testing.T) {
	// Stacking many copies of one required equation inflates the normal
	// matrix until its condition number trips gonum's advisory error;
	// the solve must keep the (perfectly good) solution anyway.
	s := NewLeastSquares()
	if err := s.AddVariable("free"); err != nil {
		t.Fatal(err)
	}
	if err := s.AddVariable("pinned"); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 200; i++ {
		if err := s.AddEquation(Eq(Var("pinned"), Constant(3), Required)); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.Resolve(); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got := mustValue(t, s, "pinned"); !almostEqual(got, 3) {
		t.Errorf("pinned = %g, want 3", got)
	}
	if got := mustValue(t, s, "free"); math.Abs(got) > eps {
		t.Errorf("free = %g, want 0", got)
	}
}

func TestUnderDetermined(t *testing.T) {
	// A variable no equation touches resolves (to zero) rather than
	// failing.
	s := NewLeastSquares()
	if err := s.AddVariable("free"); err != nil {
		t.Fatal(err)
	}
	if err := s.AddVariable("pinned"); err != nil {
		t.Fatal(err)
	}
	if err := s.AddEquation(Eq(Var("pinned"), Constant(3), Required)); err != nil {
		t.Fatal(err)
	}
	if err := s.Resolve(); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got := mustValue(t, s, "pinned"); !almostEqual(got, 3) {
		t.Errorf("pinned = %g, want 3", got)
	}
	if got := mustValue(t, s, "free"); math.Abs(got) > eps {
		t.Errorf("free = %g, want 0", got)
	}
}

func TestAddEquationUnknownVariable(t *testing.T) {
	s := NewLeastSquares()
	err := s.AddEquation(Eq(Var("ghost"), Constant(1), Required))
	if !errors.Is(err, ErrUnknownVariable) {
		t.Fatalf("AddEquation error = %v, want ErrUnknownVariable", err)
	}
}

func TestAddVariableDuplicate(t *testing.T) {
	s := NewLeastSquares()
	if err := s.AddVariable("x"); err != nil {
		t.Fatal(err)
	}
	err := s.AddVariable("x")
	if !errors.Is(err, ErrDuplicateVariable) {
		t.Fatalf("AddVariable error = %v, want ErrDuplicateVariable", err)
	}
}

func TestReset(t *testing.T) {
	s := NewLeastSquares()
	if err := s.AddVariable("x"); err != nil {
		t.Fatal(err)
	}
	if err := s.AddEquation(Eq(Var("x"), Constant(1), Required)); err != nil {
		t.Fatal(err)
	}
	if err := s.Resolve(); err != nil {
		t.Fatal(err)
	}
	s.Reset()
	if _, ok := s.Value("x"); ok {
		t.Error("Value available after Reset")
	}
	// The variable can be re-registered after a reset.
	if err := s.AddVariable("x"); err != nil {
		t.Errorf("AddVariable after Reset: %v", err)
	}
}

func TestValueBeforeResolve(t *testing.T) {
	s := NewLeastSquares()
	if err := s.AddVariable("x"); err != nil {
		t.Fatal(err)
	}
	if _, ok := s.Value("x"); ok {
		t.Error("Value available before Resolve")
	}
}

func TestResolveEmpty(t *testing.T) {
	s := NewLeastSquares()
	if err := s.Resolve(); err != nil {
		t.Fatalf("Resolve with no variables: %v", err)
	}
}
