package lpmodel

import (
	"fmt"
	"strconv"
)

// Kind tags the family a decision variable belongs to.
type Kind uint8

const (
	KindMatch       Kind = iota // x{paper}_{reviewer}
	KindCS                      // cs_{paper}
	KindCoReview                // coreview{i}_{j}
	KindRegion                  // region{paper}
	KindRegionGroup             // region{paper}_{k}
	KindSeniorSlack             // sen_slack_{paper}
	KindCycle                   // cycle{i}_{j}
	KindDistSlack               // paper_dist{reviewer}_{breakpoint}
)

var kindNames = [...]string{
	KindMatch:       "match",
	KindCS:          "cs",
	KindCoReview:    "coreview",
	KindRegion:      "region",
	KindRegionGroup: "region-group",
	KindSeniorSlack: "senior-slack",
	KindCycle:       "cycle",
	KindDistSlack:   "dist-slack",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}

	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Var identifies a decision variable by its family and constituent ids.
// It is comparable and used directly as a map key; the solver-facing name
// is derived by Name.
type Var struct {
	Kind Kind
	A, B int
}

// Match is 1 iff reviewer is assigned to paper.
func Match(paper, reviewer int) Var { return Var{Kind: KindMatch, A: paper, B: reviewer} }

// CS indicates that paper has at least one computer scientist assigned.
func CS(paper int) Var { return Var{Kind: KindCS, A: paper} }

// CoReview indicates that reviewers i and j share some paper.
func CoReview(i, j int) Var { return Var{Kind: KindCoReview, A: i, B: j} }

// Region counts the distinct reviewer regions covered on paper.
func Region(paper int) Var { return Var{Kind: KindRegion, A: paper} }

// RegionGroup indicates that the k-th region of the build's sorted region
// list is represented on paper. Regions are free text, so the name carries
// the index rather than the label.
func RegionGroup(paper, k int) Var {
	return Var{Kind: KindRegionGroup, A: paper, B: k}
}

// SeniorSlack is the rewarded seniority level reached on paper.
func SeniorSlack(paper int) Var { return Var{Kind: KindSeniorSlack, A: paper} }

// Cycle indicates that a reciprocal bidding cycle between i and j is realised.
func Cycle(i, j int) Var { return Var{Kind: KindCycle, A: i, B: j} }

// DistSlack absorbs the load of reviewer above breakpoint papers.
func DistSlack(reviewer, breakpoint int) Var {
	return Var{Kind: KindDistSlack, A: reviewer, B: breakpoint}
}

// Name renders the canonical solver-facing name of v.
func (v Var) Name() string {
	a, b := strconv.Itoa(v.A), strconv.Itoa(v.B)
	switch v.Kind {
	case KindMatch:
		return "x" + a + "_" + b
	case KindCS:
		return "cs_" + a
	case KindCoReview:
		return "coreview" + a + "_" + b
	case KindRegion:
		return "region" + a
	case KindRegionGroup:
		return "region" + a + "_" + b
	case KindSeniorSlack:
		return "sen_slack_" + a
	case KindCycle:
		return "cycle" + a + "_" + b
	case KindDistSlack:
		return "paper_dist" + a + "_" + b
	}

	return fmt.Sprintf("v%d_%s_%s", v.Kind, a, b)
}

func (v Var) String() string { return v.Name() }

// VarType is the integrality class of a variable.
type VarType uint8

const (
	Continuous VarType = iota
	General
	Binary
)

func (t VarType) String() string {
	switch t {
	case Continuous:
		return "continuous"
	case General:
		return "general"
	case Binary:
		return "binary"
	}

	return "vartype(" + strconv.Itoa(int(t)) + ")"
}

// Op is the comparison operator of an equation.
type Op uint8

const (
	LE Op = iota // <=
	EQ           // =
	GE           // >=
)

func (o Op) String() string {
	switch o {
	case LE:
		return "<="
	case EQ:
		return "="
	case GE:
		return ">="
	}

	return "op(" + strconv.Itoa(int(o)) + ")"
}

// Sense is the optimization direction of the objective.
type Sense uint8

const (
	Maximize Sense = iota
	Minimize
)

func (s Sense) String() string {
	if s == Minimize {
		return "Minimize"
	}

	return "Maximize"
}

// Term is one coefficient·variable product.
type Term struct {
	Var  Var
	Coef float64
}

// T is shorthand for Term{Var: v, Coef: coef}.
func T(v Var, coef float64) Term { return Term{Var: v, Coef: coef} }

// Equation is a named linear constraint: sum(Terms) Op RHS.
type Equation struct {
	Name  string
	Terms []Term
	Op    Op
	RHS   float64
}

// VarInfo is the registry entry of a declared variable.
type VarInfo struct {
	Var   Var
	Type  VarType
	Lower float64
	Upper float64
	// Bounded reports whether bounds were set explicitly and must be
	// written to the Bounds section.
	Bounded bool
}

// Stats summarises the size of a model.
type Stats struct {
	Variables      int
	Binary         int
	General        int
	Continuous     int
	Equations      int
	ObjectiveTerms int
}
