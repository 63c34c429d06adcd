package solver

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Priority weights for the weighted least-squares objective. The
// required tier sits six orders of magnitude above strong, so a
// conflicting strong equation pulls a required value off by at most
// ~1e-6 of the disagreement.
const (
	weightRequired = 1e6
	weightStrong   = 1
	weightWeak     = 1e-4

	// ridge regularizes the normal matrix so under-determined systems
	// resolve to their minimum-norm solution instead of failing. The
	// spread between weightRequired and ridge stays below gonum's
	// condition cutoff for a variable touched only by the ridge.
	ridge = 1e-8

	// residualTol is the per-equation tolerance beyond which a required
	// constraint counts as violated. Feasibility is judged on a solve of
	// the required tier alone, so the tolerance is independent of how
	// far any lower tier disagrees.
	residualTol = 1e-6
)

// LeastSquares is the default [System] backend. It solves the weighted
// least-squares problem over all equations via the normal equations
// (Cholesky factorization), then verifies every required equation is
// satisfied within tolerance.
//
// Solving a general linear system rather than propagating values
// through the tree is what lets aspect-ratio and named constraints
// couple a panel's width and height across the tree.
//
// The zero value is ready to use. LeastSquares is not safe for
// concurrent use.
type LeastSquares struct {
	names  []string
	index  map[string]int
	eqs    []Equation
	values []float64
	solved bool
}

var _ System = (*LeastSquares)(nil)

// NewLeastSquares returns an empty backend.
func NewLeastSquares() *LeastSquares {
	return &LeastSquares{index: make(map[string]int)}
}

// AddVariable registers a variable name. Names must be unique and
// non-empty.
func (s *LeastSquares) AddVariable(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrUnknownVariable)
	}
	if s.index == nil {
		s.index = make(map[string]int)
	}
	if _, ok := s.index[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateVariable, name)
	}
	s.index[name] = len(s.names)
	s.names = append(s.names, name)
	s.solved = false
	return nil
}

// AddEquation appends one constraint. All referenced variables must be
// registered.
func (s *LeastSquares) AddEquation(eq Equation) error {
	coefs, _ := eq.normalize()
	for name := range coefs {
		if _, ok := s.index[name]; !ok {
			return fmt.Errorf("%w: %s in %s", ErrUnknownVariable, name, eq)
		}
	}
	s.eqs = append(s.eqs, eq)
	s.solved = false
	return nil
}

// Reset discards all state.
func (s *LeastSquares) Reset() {
	s.names = nil
	s.index = make(map[string]int)
	s.eqs = nil
	s.values = nil
	s.solved = false
}

// Resolve computes the assignment. Variables untouched by any equation
// settle at zero (the minimum-norm choice). Feasibility is decided by
// the required tier alone: a strong or weak equation contradicting a
// required one loses, it does not make the system infeasible.
func (s *LeastSquares) Resolve() error {
	n := len(s.names)
	if n == 0 {
		s.solved = true
		return nil
	}

	var required, lower []Equation
	for _, eq := range s.eqs {
		if eq.Priority == Required {
			required = append(required, eq)
		} else {
			lower = append(lower, eq)
		}
	}

	// Pass 1: the required tier on its own. This is the solution the
	// feasibility check runs against, so only a genuine conflict among
	// required equations can trip it.
	values, err := s.solveWeighted(required)
	if err != nil {
		return err
	}
	for _, eq := range required {
		coefs, k := eq.normalize()
		got := 0.0
		for name, c := range coefs {
			got += c * values[s.index[name]]
		}
		if math.Abs(got-k) > residualTol*(1+math.Abs(k)) {
			return fmt.Errorf("%w: %s (off by %g)", ErrInfeasible, eq, got-k)
		}
	}

	// Pass 2: fold the lower tiers back in. Their weights sit far
	// enough below the required tier that they only move what pass 1
	// left free.
	if len(lower) > 0 {
		values, err = s.solveWeighted(s.eqs)
		if err != nil {
			return err
		}
	}

	s.values = values
	s.solved = true
	return nil
}

// solveWeighted minimizes the weighted residual over eqs by
// accumulating the normal equations N x = r with a ridge on the
// diagonal and factorizing with Cholesky.
func (s *LeastSquares) solveWeighted(eqs []Equation) ([]float64, error) {
	n := len(s.names)
	normal := make([]float64, n*n)
	rhs := make([]float64, n)
	for _, eq := range eqs {
		coefs, k := eq.normalize()
		w := weight(eq.Priority)
		for ni, ci := range coefs {
			i := s.index[ni]
			rhs[i] += w * ci * k
			for nj, cj := range coefs {
				normal[i*n+s.index[nj]] += w * ci * cj
			}
		}
	}
	for i := 0; i < n; i++ {
		normal[i*n+i] += ridge
	}

	var chol mat.Cholesky
	if !chol.Factorize(mat.NewSymDense(n, normal)) {
		return nil, fmt.Errorf("%w: normal matrix is not positive definite", ErrInfeasible)
	}
	var x mat.VecDense
	if err := chol.SolveVecTo(&x, mat.NewVecDense(n, rhs)); err != nil {
		// Stacked required equations can push the condition number past
		// gonum's advisory cutoff; the solution is still computed, and
		// the residual check decides whether it holds up.
		var cond mat.Condition
		if !errors.As(err, &cond) {
			return nil, fmt.Errorf("solve normal equations: %w", err)
		}
	}

	values := make([]float64, n)
	for i := range values {
		values[i] = x.AtVec(i)
	}
	return values, nil
}

// Value reports a resolved variable value.
func (s *LeastSquares) Value(name string) (float64, bool) {
	if !s.solved {
		return 0, false
	}
	i, ok := s.index[name]
	if !ok {
		return 0, false
	}
	if s.values == nil {
		// Resolved with zero variables registered since.
		return 0, false
	}
	return s.values[i], true
}

func weight(p Priority) float64 {
	switch p {
	case Required:
		return weightRequired
	case Strong:
		return weightStrong
	default:
		return weightWeak
	}
}
