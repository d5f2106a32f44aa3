package ttc

import (
	"cmp"
	"fmt"
)

// Pair is a (paper, reviewer) node of the trading graph.
type Pair struct {
	Paper    int
	Reviewer int
}

func (p Pair) String() string { return fmt.Sprintf("(%d,%d)", p.Paper, p.Reviewer) }

func comparePairs(a, b Pair) int {
	return cmp.Or(cmp.Compare(a.Paper, b.Paper), cmp.Compare(a.Reviewer, b.Reviewer))
}

// Holding is one row of the current assignment.
type Holding struct {
	Paper      int
	Reviewer   int
	ReviewType string
}

// Pair returns the (paper, reviewer) key of h.
func (h Holding) Pair() Pair { return Pair{Paper: h.Paper, Reviewer: h.Reviewer} }

// Preference is a reviewer's stated interest in a paper.
type Preference struct {
	Paper      int
	Reviewer   int
	Bid        float64
	TopicScore int
	Conflict   bool
}

// Action is the kind of change a Record applies.
type Action uint8

const (
	// ActionClear removes a reviewer from a paper.
	ActionClear Action = iota
	// ActionAssign adds a reviewer to a paper.
	ActionAssign
)

func (a Action) String() string {
	if a == ActionClear {
		return "clear"
	}

	return "assign"
}

// Record is one step of a trade. NewBid is the reviewer's bid on Paper;
// OldBid is the bid on the paper they held before the trade.
type Record struct {
	Paper      int
	Action     Action
	Reviewer   int
	ReviewType string
	Round      string
	NewBid     float64
	OldBid     float64
}

// Result is the outcome of Reallocate.
type Result struct {
	// Cycles lists the trades, each rotated to start at its smallest node.
	Cycles [][]Pair
	// Records holds a clear followed by an assign for every move.
	Records []Record
	// Assignment is the new snapshot, sorted by (paper, reviewer).
	Assignment []Holding
}
