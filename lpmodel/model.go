package lpmodel

import (
	"fmt"
	"math"
)

// Option configures a Model at construction time.
type Option func(*Model)

// WithSense sets the optimization direction (Maximize by default).
func WithSense(s Sense) Option {
	return func(m *Model) { m.sense = s }
}

// Model accumulates variables, equations and objective terms.
// It is not safe for concurrent use; a single builder owns it for the
// duration of one build.
type Model struct {
	name  string
	sense Sense

	vars  map[Var]*VarInfo
	order []Var // declaration order

	eqIndex map[string]int
	eqs     []Equation

	obj      map[Var]float64
	objOrder []Var // first-insertion order

	sealed bool
}

// New returns an empty model. name is informational and written as a
// comment line by WriteLP.
func New(name string, opts ...Option) *Model {
	m := &Model{
		name:    name,
		sense:   Maximize,
		vars:    make(map[Var]*VarInfo),
		eqIndex: make(map[string]int),
		obj:     make(map[Var]float64),
	}
	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Name returns the informational model name.
func (m *Model) Name() string { return m.name }

// Sense returns the optimization direction.
func (m *Model) Sense() Sense { return m.sense }

// Sealed reports whether the model has been written and is now immutable.
func (m *Model) Sealed() bool { return m.sealed }

// Declare registers v with type t and the type's default bounds:
// Binary [0,1], General and Continuous [0,+Inf).
// Re-declaring with the same type is a no-op; a different type yields
// ErrTypeConflict.
func (m *Model) Declare(v Var, t VarType) error {
	if m.sealed {
		return ErrSealed
	}
	if info, ok := m.vars[v]; ok {
		if info.Type != t {
			return fmt.Errorf("declare %s as %s (already %s): %w", v.Name(), t, info.Type, ErrTypeConflict)
		}

		return nil
	}

	upper := math.Inf(1)
	if t == Binary {
		upper = 1
	}
	m.vars[v] = &VarInfo{Var: v, Type: t, Lower: 0, Upper: upper}
	m.order = append(m.order, v)

	return nil
}

// DeclareBounded declares v with type t and immediately sets explicit bounds.
func (m *Model) DeclareBounded(v Var, t VarType, lower, upper float64) error {
	if err := m.Declare(v, t); err != nil {
		return err
	}

	return m.SetBounds(v, lower, upper)
}

// SetBounds sets explicit bounds on a declared variable. Use math.Inf for an
// open side.
func (m *Model) SetBounds(v Var, lower, upper float64) error {
	if m.sealed {
		return ErrSealed
	}
	info, ok := m.vars[v]
	if !ok {
		return fmt.Errorf("bounds on %s: %w", v.Name(), ErrUndeclaredVariable)
	}
	if math.IsNaN(lower) || math.IsNaN(upper) || lower > upper {
		return fmt.Errorf("bounds on %s [%v,%v]: %w", v.Name(), lower, upper, ErrInvalidBounds)
	}
	info.Lower, info.Upper, info.Bounded = lower, upper, true

	return nil
}

// AddEquation appends the constraint sum(terms) op rhs under a unique name.
// Repeated variables are merged and zero coefficients dropped; an equation
// left without terms is rejected with ErrEmptyEquation.
func (m *Model) AddEquation(name string, terms []Term, op Op, rhs float64) error {
	if m.sealed {
		return ErrSealed
	}
	if _, dup := m.eqIndex[name]; dup {
		return fmt.Errorf("equation %q: %w", name, ErrDuplicateEquation)
	}
	if math.IsNaN(rhs) || math.IsInf(rhs, 0) {
		return fmt.Errorf("equation %q rhs: %w", name, ErrInvalidCoefficient)
	}

	merged, err := m.mergeTerms(name, terms)
	if err != nil {
		return err
	}
	if len(merged) == 0 {
		return fmt.Errorf("equation %q: %w", name, ErrEmptyEquation)
	}

	m.eqIndex[name] = len(m.eqs)
	m.eqs = append(m.eqs, Equation{Name: name, Terms: merged, Op: op, RHS: rhs})

	return nil
}

// mergeTerms validates terms and folds duplicates, keeping first-seen order.
func (m *Model) mergeTerms(name string, terms []Term) ([]Term, error) {
	pos := make(map[Var]int, len(terms))
	out := make([]Term, 0, len(terms))
	for _, t := range terms {
		if _, ok := m.vars[t.Var]; !ok {
			return nil, fmt.Errorf("equation %q references %s: %w", name, t.Var.Name(), ErrUndeclaredVariable)
		}
		if math.IsNaN(t.Coef) || math.IsInf(t.Coef, 0) {
			return nil, fmt.Errorf("equation %q term %s: %w", name, t.Var.Name(), ErrInvalidCoefficient)
		}
		if i, seen := pos[t.Var]; seen {
			out[i].Coef += t.Coef
			continue
		}
		pos[t.Var] = len(out)
		out = append(out, t)
	}

	// Drop zeros after merging so that cancelling terms disappear too.
	kept := out[:0]
	for _, t := range out {
		if t.Coef != 0 {
			kept = append(kept, t)
		}
	}

	return kept, nil
}

// AddObjective adds coef·v to the objective. Coefficients for the same
// variable accumulate.
func (m *Model) AddObjective(v Var, coef float64) error {
	if m.sealed {
		return ErrSealed
	}
	if _, ok := m.vars[v]; !ok {
		return fmt.Errorf("objective term %s: %w", v.Name(), ErrUndeclaredVariable)
	}
	if math.IsNaN(coef) || math.IsInf(coef, 0) {
		return fmt.Errorf("objective term %s: %w", v.Name(), ErrInvalidCoefficient)
	}
	if _, seen := m.obj[v]; !seen {
		m.objOrder = append(m.objOrder, v)
	}
	m.obj[v] += coef

	return nil
}

// Declared reports whether v is in the registry.
func (m *Model) Declared(v Var) bool {
	_, ok := m.vars[v]

	return ok
}

// Variable returns a copy of the registry entry for v.
func (m *Model) Variable(v Var) (VarInfo, bool) {
	info, ok := m.vars[v]
	if !ok {
		return VarInfo{}, false
	}

	return *info, true
}

// Variables returns all declared variables in declaration order.
func (m *Model) Variables() []Var {
	return append([]Var(nil), m.order...)
}

// Equation returns a copy of the named equation.
func (m *Model) Equation(name string) (Equation, bool) {
	i, ok := m.eqIndex[name]
	if !ok {
		return Equation{}, false
	}

	return cloneEquation(m.eqs[i]), true
}

// Equations returns copies of all equations in insertion order.
func (m *Model) Equations() []Equation {
	out := make([]Equation, len(m.eqs))
	for i, eq := range m.eqs {
		out[i] = cloneEquation(eq)
	}

	return out
}

// ObjectiveCoef returns the accumulated objective weight of v.
func (m *Model) ObjectiveCoef(v Var) (float64, bool) {
	c, ok := m.obj[v]

	return c, ok
}

// Stats reports model size.
func (m *Model) Stats() Stats {
	s := Stats{
		Variables:      len(m.order),
		Equations:      len(m.eqs),
		ObjectiveTerms: len(m.objOrder),
	}
	for _, v := range m.order {
		switch m.vars[v].Type {
		case Binary:
			s.Binary++
		case General:
			s.General++
		default:
			s.Continuous++
		}
	}

	return s
}

func cloneEquation(eq Equation) Equation {
	eq.Terms = append([]Term(nil), eq.Terms...)

	return eq
}
