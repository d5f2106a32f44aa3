package assign

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/samber/lo"

	"github.com/katalvlaran/revmatch/lpmodel"
)

type paperRole struct {
	paper int
	role  Role
}

// addPaperCapacity caps the number of reviewers of each role on each paper.
//
// Groups are the (paper, role) combinations of the candidate table plus
// those implied by fixed pairs, where a fixed reviewer counts in the group
// of their committee role (PC for reviewers outside the committee). Rejected
// papers get a right-hand side of 0, then every group's right-hand side is
// raised to at least its number of fixed pairs.
func (b *Builder) addPaperCapacity(m *lpmodel.Model) error {
	groups := make(map[paperRole][]int)
	for _, c := range b.candidates {
		k := paperRole{c.Paper, c.Role}
		groups[k] = append(groups[k], c.Reviewer)
	}
	fixedByGroup := make(map[paperRole][]int)
	for _, f := range b.fixed {
		k := paperRole{f.Paper, b.memberRole(f.Reviewer)}
		fixedByGroup[k] = append(fixedByGroup[k], f.Reviewer)
		if _, ok := groups[k]; !ok {
			groups[k] = nil
		}
	}

	keys := lo.Keys(groups)
	slices.SortFunc(keys, func(x, y paperRole) int {
		return cmp.Or(cmp.Compare(x.paper, y.paper), cmp.Compare(roleRank(x.role), roleRank(y.role)))
	})

	op := lpmodel.EQ
	if b.cfg.RelaxPaperCapacity {
		op = lpmodel.LE
	}

	rejectedGroups := 0
	for _, k := range keys {
		rhs, ok := b.cfg.MaxReviewsPerPaper[k.role]
		if !ok {
			return fmt.Errorf("max_reviews_per_paper[%s]: %w", k.role, ErrMissingCapacity)
		}
		rejected := b.rejected[k.paper]
		if rejected {
			rhs = 0
			rejectedGroups++
		}

		reviewers := groups[k]
		fixed := fixedByGroup[k]
		missing := lo.Without(fixed, reviewers...)

		if len(fixed) > rhs {
			if rejected {
				b.log.Debug("rejected paper keeps its fixed reviewers", "paper", k.paper, "role", k.role, "fixed", len(fixed))
			} else {
				b.log.Info("paper matched to more reviewers than allowed, increasing capacity",
					"paper", k.paper, "role", k.role, "fixed", len(fixed), "capacity", rhs)
			}
			rhs = len(fixed)
		}
		if len(missing) > 0 {
			b.log.Info("adding missing fixed reviewers to paper", "paper", k.paper, "role", k.role, "reviewers", missing)
		}

		terms := make([]lpmodel.Term, 0, len(reviewers)+len(missing))
		for _, r := range append(slices.Clone(reviewers), missing...) {
			x := lpmodel.Match(k.paper, r)
			if err := m.Declare(x, lpmodel.Binary); err != nil {
				return err
			}
			terms = append(terms, lpmodel.T(x, 1))
		}

		name := fmt.Sprintf("paper_capacity_%s_%d", k.role, k.paper)
		if err := m.AddEquation(name, terms, op, float64(rhs)); err != nil {
			return err
		}
	}
	if rejectedGroups > 0 {
		b.log.Info("closed (paper, role) groups of rejected papers", "groups", rejectedGroups)
	}

	return nil
}

// addReviewerCapacity bounds every committee member's load by the maximum
// (and optional minimum) configured for their role. Fixed papers missing
// from the candidate table are added and the maximum is raised to the number
// of fixed papers when needed.
func (b *Builder) addReviewerCapacity(m *lpmodel.Model) error {
	fixedByReviewer := lo.GroupBy(b.fixed, func(p Pair) int { return p.Reviewer })

	for _, rid := range b.reviewerIDs {
		role := b.reviewers[rid].Role
		rhsMax, ok := b.cfg.MaxPapersPerReviewer[role]
		if !ok {
			return fmt.Errorf("max_papers_per_reviewer[%s]: %w", role, ErrMissingCapacity)
		}

		papers := lo.Map(b.byReviewer[rid], func(c Candidate, _ int) int { return c.Paper })
		fixed := lo.Map(fixedByReviewer[rid], func(p Pair, _ int) int { return p.Paper })
		missing := lo.Without(fixed, papers...)

		if len(fixed) > rhsMax {
			b.log.Info("reviewer matched to more papers than allowed, increasing capacity",
				"reviewer", rid, "role", role, "fixed", len(fixed), "capacity", rhsMax)
			rhsMax = len(fixed)
		}
		if len(missing) > 0 {
			b.log.Info("adding missing fixed papers to reviewer", "reviewer", rid, "papers", missing)
		}
		papers = append(papers, missing...)

		rhsMin := b.cfg.MinPapersPerReviewer[role]
		if len(papers) == 0 {
			if rhsMin > 0 {
				b.log.Warn("reviewer has no candidate papers; minimum load cannot be enforced", "reviewer", rid, "min", rhsMin)
			} else {
				b.log.Debug("reviewer has no candidate papers", "reviewer", rid)
			}
			continue
		}

		terms := make([]lpmodel.Term, 0, len(papers))
		for _, p := range papers {
			x := lpmodel.Match(p, rid)
			if err := m.Declare(x, lpmodel.Binary); err != nil {
				return err
			}
			terms = append(terms, lpmodel.T(x, 1))
		}

		name := fmt.Sprintf("reviewer_capacity_%d_%s", rid, role)
		if err := m.AddEquation(name, terms, lpmodel.LE, float64(rhsMax)); err != nil {
			return err
		}
		if rhsMin > 0 {
			name = fmt.Sprintf("reviewer_minimum_%d_%s", rid, role)
			if err := m.AddEquation(name, terms, lpmodel.GE, float64(rhsMin)); err != nil {
				return err
			}
		}
	}

	return nil
}
