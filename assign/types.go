package assign

import "math"

// Role is a reviewer's committee role.
type Role string

const (
	RolePC  Role = "PC"
	RoleSPC Role = "SPC"
	RoleAC  Role = "AC"
)

// Roles lists the valid roles in canonical order.
var Roles = []Role{RolePC, RoleSPC, RoleAC}

// Valid reports whether r is one of PC, SPC or AC.
func (r Role) Valid() bool {
	return r == RolePC || r == RoleSPC || r == RoleAC
}

func roleRank(r Role) int {
	switch r {
	case RolePC:
		return 0
	case RoleSPC:
		return 1
	case RoleAC:
		return 2
	}

	return 3
}

// Reviewer is a committee member.
type Reviewer struct {
	ID                int
	Role              Role
	Seniority         int // 0..3
	Region            string
	ComputerScientist bool
	Authored          []int // ids of submitted papers this reviewer authored
}

// AuthoredAny reports whether the reviewer authored at least one paper.
func (r Reviewer) AuthoredAny() bool { return len(r.Authored) > 0 }

// Pair is a (paper, reviewer) combination.
type Pair struct {
	Paper    int
	Reviewer int
}

// Candidate is a scored (paper, reviewer) pair eligible for assignment.
type Candidate struct {
	Paper    int
	Reviewer int
	// Role is the reviewer's role for this paper. Empty means the role from
	// the reviewers table (PC for unknown reviewers).
	Role Role
	// Score in [0,1]; NaN marks an unscored pair.
	Score float64
	// Bid is the preference strength; NaN takes Config.DefaultBid.
	Bid        float64
	TopicScore int
}

// Pair returns the (paper, reviewer) key of c.
func (c Candidate) Pair() Pair { return Pair{Paper: c.Paper, Reviewer: c.Reviewer} }

// Scored reports whether c carries a score.
func (c Candidate) Scored() bool { return !math.IsNaN(c.Score) }

// Distance is the co-authorship distance between two reviewers
// (0 = co-authors, 1 = near). The pair is unordered.
type Distance struct {
	A, B     int
	Distance int
}

// CoReview names a reviewer pair (I < J after normalization) that may share
// Paper.
type CoReview struct {
	I, J  int
	Paper int
}

// BiddingCycle is a reciprocal high-bid relationship: R1 bid on P1, which R2
// authored, and R2 bid on P2, which R1 authored. R1 < R2.
type BiddingCycle struct {
	R1, R2 int
	P1, P2 int
}

// Tables holds the normalized input of one build. Nil optional slices mean
// "not supplied": the dependent block is skipped with a log entry.
type Tables struct {
	// Papers optionally lists every submission; papers here without
	// candidates fail the PC coverage check.
	Papers     []int
	Reviewers  []Reviewer
	Candidates []Candidate
	Conflicts  []Pair

	// Optional.
	Distances []Distance
	CoReviews []CoReview
	Rejected  []int
	Fixed     []Pair
}
