package assign

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/samber/lo"

	"github.com/katalvlaran/revmatch/lpmodel"
)

// DetectBiddingCycles finds reciprocal high-bid relationships through
// authorship. A cycle {R1, R2, P1, P2} means R1 bid at least threshold on
// P1, which R2 authored, and R2 bid at least threshold on P2, which R1
// authored. Only non-AC candidate pairs count, R1 must have authored a paper
// and R1 < R2, so every unordered reviewer pair is reported once per paper
// combination. The result is sorted by (R1, R2, P1, P2).
//
// Candidates with an empty Role take the role of their reviewer; a NaN bid
// never passes the threshold.
func DetectBiddingCycles(reviewers []Reviewer, candidates []Candidate, threshold float64) []BiddingCycle {
	byID := lo.SliceToMap(reviewers, func(r Reviewer) (int, Reviewer) { return r.ID, r })

	// 1) Authors per paper.
	authors := make(map[int][]int)
	for _, r := range reviewers {
		for _, p := range lo.Uniq(r.Authored) {
			authors[p] = append(authors[p], r.ID)
		}
	}

	// 2) High non-AC bids, grouped by reviewer.
	high := make(map[Pair]bool)
	highByReviewer := make(map[int][]int)
	for _, c := range candidates {
		role := c.Role
		if role == "" {
			role = byID[c.Reviewer].Role
		}
		if role == RoleAC || !(c.Bid >= threshold) {
			continue
		}
		if high[c.Pair()] {
			continue
		}
		high[c.Pair()] = true
		highByReviewer[c.Reviewer] = append(highByReviewer[c.Reviewer], c.Paper)
	}

	// 3) Walk r1 -> p1 -> r2 -> p2 and keep reciprocal quadruples.
	seen := make(map[BiddingCycle]bool)
	for r1, papers := range highByReviewer {
		me, ok := byID[r1]
		if !ok || me.Role == RoleAC || !me.AuthoredAny() {
			continue
		}
		for _, p1 := range papers {
			for _, r2 := range authors[p1] {
				if r1 >= r2 {
					continue
				}
				for _, p2 := range me.Authored {
					if high[Pair{Paper: p2, Reviewer: r2}] {
						seen[BiddingCycle{R1: r1, R2: r2, P1: p1, P2: p2}] = true
					}
				}
			}
		}
	}

	out := lo.Keys(seen)
	slices.SortFunc(out, compareCycles)

	return out
}

func compareCycles(x, y BiddingCycle) int {
	return cmp.Or(
		cmp.Compare(x.R1, y.R1),
		cmp.Compare(x.R2, y.R2),
		cmp.Compare(x.P1, y.P1),
		cmp.Compare(x.P2, y.P2),
	)
}

// addBiddingCycles penalizes realised bidding cycles:
//
//	cycle_{r1,r2} >= x_{p1,r1} + x_{p2,r2} - 1,   0 <= cycle_{r1,r2} <= 1
//
// Each detected quadruple adds Config.CyclePenalty to the penalty of its
// reviewer pair.
func (b *Builder) addBiddingCycles(m *lpmodel.Model) error {
	b.cycles = DetectBiddingCycles(lo.Values(b.reviewers), b.candidates, b.cfg.PositiveBidThreshold)
	if len(b.cycles) == 0 {
		b.log.Info("no bidding cycles to add")
		return nil
	}
	b.log.Info("found bidding cycles", "count", len(b.cycles))

	for _, c := range b.cycles {
		cycle := lpmodel.Cycle(c.R1, c.R2)
		if err := m.DeclareBounded(cycle, lpmodel.General, 0, 1); err != nil {
			return err
		}
		terms := []lpmodel.Term{
			lpmodel.T(cycle, 1),
			lpmodel.T(lpmodel.Match(c.P1, c.R1), -1),
			lpmodel.T(lpmodel.Match(c.P2, c.R2), -1),
		}
		name := fmt.Sprintf("cycle_ip%d_jp%d_i%d_j%d", c.P2, c.R2, c.P1, c.R1)
		if err := m.AddEquation(name, terms, lpmodel.GE, -1); err != nil {
			return err
		}
		if err := m.AddObjective(cycle, -b.cfg.CyclePenalty); err != nil {
			return err
		}
	}

	return nil
}
