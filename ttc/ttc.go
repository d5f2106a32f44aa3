package ttc

import (
	"fmt"
	"slices"

	"github.com/samber/lo"
)

// trader holds the indexed state of one reallocation.
type trader struct {
	opts Options

	original  map[Pair]bool
	bids      map[Pair]float64 // conflict-free bids
	conflicts map[Pair]bool
	topics    map[Pair]int

	nodes  []Pair // active nodes, sorted
	alive  map[Pair]bool
	ranked map[int][]Pair // reviewer -> eligible targets, best first
	cursor map[int]int    // reviewer -> first possibly alive entry of ranked
}

// Reallocate runs top trading cycles over the holdings of the configured
// review type and returns the trades, their records and the new assignment.
// When no reviewer strictly prefers an available pair to their own, the
// result has no cycles and the assignment is unchanged.
func Reallocate(holdings []Holding, prefs []Preference, opts ...Option) (Result, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.validate(); err != nil {
		return Result{}, err
	}

	t := newTrader(holdings, prefs, o)
	o.Logger.Info("trading", "review_type", o.ReviewType, "active", len(t.nodes), "threshold", o.BidThreshold)

	cycles := t.cycles()
	o.Logger.Info("found trading cycles", "count", len(cycles))

	records, assignment, err := t.trade(holdings, cycles)
	if err != nil {
		return Result{}, err
	}

	return Result{Cycles: cycles, Records: records, Assignment: assignment}, nil
}

func newTrader(holdings []Holding, prefs []Preference, o Options) *trader {
	t := &trader{
		opts:      o,
		original:  make(map[Pair]bool, len(holdings)),
		bids:      make(map[Pair]float64, len(prefs)),
		conflicts: make(map[Pair]bool),
		topics:    make(map[Pair]int, len(prefs)),
		alive:     make(map[Pair]bool),
		ranked:    make(map[int][]Pair),
		cursor:    make(map[int]int),
	}

	// 1) Preferences.
	for _, p := range prefs {
		key := Pair{Paper: p.Paper, Reviewer: p.Reviewer}
		t.topics[key] = p.TopicScore
		if p.Conflict {
			t.conflicts[key] = true
			continue
		}
		t.bids[key] = p.Bid
	}

	// 2) Active nodes.
	for _, h := range holdings {
		key := h.Pair()
		t.original[key] = true
		if h.ReviewType == o.ReviewType && t.bid(key) <= o.BidThreshold && !t.alive[key] {
			t.alive[key] = true
			t.nodes = append(t.nodes, key)
		}
	}
	slices.SortFunc(t.nodes, comparePairs)

	// 3) Ranked targets per trading reviewer.
	for _, r := range lo.Uniq(lo.Map(t.nodes, func(n Pair, _ int) int { return n.Reviewer })) {
		targets := lo.Filter(t.nodes, func(n Pair, _ int) bool { return t.eligible(n.Paper, r) })
		slices.SortStableFunc(targets, func(a, b Pair) int {
			ba, bb := t.bid(Pair{a.Paper, r}), t.bid(Pair{b.Paper, r})
			switch {
			case ba > bb:
				return -1
			case ba < bb:
				return 1
			}

			return comparePairs(a, b)
		})
		t.ranked[r] = targets
	}

	return t
}

// bid returns the conflict-free bid of p, 0 when absent or conflicted.
func (t *trader) bid(p Pair) float64 { return t.bids[p] }

// eligible reports whether reviewer may receive paper in a trade.
func (t *trader) eligible(paper, reviewer int) bool {
	key := Pair{Paper: paper, Reviewer: reviewer}
	if t.original[key] || t.conflicts[key] {
		return false
	}

	return !t.opts.TopicGate || t.topics[key] >= t.opts.MinTopicScore
}

// favorite returns the best alive target of reviewer. The cursor only moves
// forward because the active set only shrinks.
func (t *trader) favorite(reviewer int) (Pair, bool) {
	ranked := t.ranked[reviewer]
	i := t.cursor[reviewer]
	for i < len(ranked) && !t.alive[ranked[i]] {
		i++
	}
	t.cursor[reviewer] = i
	if i == len(ranked) {
		return Pair{}, false
	}

	return ranked[i], true
}

// next is the trading edge of n: its reviewer's favorite when that paper is
// strictly better than n's own, n itself otherwise.
func (t *trader) next(n Pair) Pair {
	fav, ok := t.favorite(n.Reviewer)
	if ok && t.bid(Pair{fav.Paper, n.Reviewer}) > t.bid(n) {
		return fav
	}

	return n
}

// cycles repeatedly walks from the smallest alive node and removes the cycle
// the walk closes until no node is left. Self-loops are dropped.
func (t *trader) cycles() [][]Pair {
	var out [][]Pair
	start := 0
	for {
		for start < len(t.nodes) && !t.alive[t.nodes[start]] {
			start++
		}
		if start == len(t.nodes) {
			return out
		}

		cycle := follow(t.nodes[start], t.next)
		for _, n := range cycle {
			delete(t.alive, n)
		}
		if len(cycle) > 1 {
			c := canonical(cycle)
			t.opts.Logger.Debug("trading cycle", "length", len(c), "nodes", c)
			out = append(out, c)
		}
	}
}

// trade turns cycles into records and the new assignment. Along a cycle the
// reviewer of each node receives the paper of the node it points at.
func (t *trader) trade(holdings []Holding, cycles [][]Pair) ([]Record, []Holding, error) {
	produced := make(map[Pair]bool)
	cleared := make(map[Pair]bool)
	var records []Record

	for _, c := range cycles {
		for i, give := range c {
			take := c[(i-1+len(c))%len(c)]
			got := Pair{Paper: give.Paper, Reviewer: take.Reviewer}
			if t.original[got] || produced[got] {
				return nil, nil, fmt.Errorf("pair %s: %w", got, ErrDuplicateAssignment)
			}
			produced[got] = true
			cleared[give] = true

			records = append(records,
				Record{
					Paper:      give.Paper,
					Action:     ActionClear,
					Reviewer:   give.Reviewer,
					ReviewType: t.opts.ReviewType,
					Round:      clearRound,
					NewBid:     t.bid(give),
					OldBid:     t.bid(give),
				},
				Record{
					Paper:      give.Paper,
					Action:     ActionAssign,
					Reviewer:   take.Reviewer,
					ReviewType: t.opts.ReviewType,
					Round:      t.opts.Round,
					NewBid:     t.bid(got),
					OldBid:     t.bid(take),
				},
			)
		}
	}

	// Original minus cleared plus produced.
	seen := make(map[Pair]bool, len(holdings))
	assignment := make([]Holding, 0, len(holdings))
	for _, h := range holdings {
		key := h.Pair()
		if seen[key] || (cleared[key] && h.ReviewType == t.opts.ReviewType) {
			continue
		}
		seen[key] = true
		assignment = append(assignment, h)
	}
	for p := range produced {
		assignment = append(assignment, Holding{Paper: p.Paper, Reviewer: p.Reviewer, ReviewType: t.opts.ReviewType})
	}
	slices.SortFunc(assignment, func(a, b Holding) int { return comparePairs(a.Pair(), b.Pair()) })

	return records, assignment, nil
}
