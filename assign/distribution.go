package assign

import (
	"fmt"
	"math"
	"slices"

	"github.com/samber/lo"

	"github.com/katalvlaran/revmatch/lpmodel"
)

// addPaperDistribution adds a piecewise load penalty. For every role with
// configured breakpoints, every reviewer of that role and every breakpoint k:
//
//	sum_p x_pr - paper_dist_{r,k} <= k,   paper_dist_{r,k} >= 0
//
// and the slack is penalized with the breakpoint's weight.
func (b *Builder) addPaperDistribution(m *lpmodel.Model) error {
	if len(b.cfg.PaperDistributionPenalties) == 0 {
		b.log.Info("no paper distribution penalties configured")
		return nil
	}

	for _, role := range Roles {
		pens, ok := b.cfg.PaperDistributionPenalties[role]
		if !ok || len(pens) == 0 {
			continue
		}
		breakpoints := lo.Keys(pens)
		slices.Sort(breakpoints)

		members := 0
		for _, rid := range b.reviewerIDs {
			if b.reviewers[rid].Role != role {
				continue
			}
			members++

			load := lo.Map(b.byReviewer[rid], func(c Candidate, _ int) lpmodel.Term {
				return lpmodel.T(lpmodel.Match(c.Paper, rid), 1)
			})
			for _, k := range breakpoints {
				slack := lpmodel.DistSlack(rid, k)
				if err := m.DeclareBounded(slack, lpmodel.Continuous, 0, math.Inf(1)); err != nil {
					return err
				}
				terms := append(slices.Clone(load), lpmodel.T(slack, -1))
				if err := m.AddEquation(fmt.Sprintf("paper_dist%d_%d", rid, k), terms, lpmodel.LE, float64(k)); err != nil {
					return err
				}
				if err := m.AddObjective(slack, -pens[k]); err != nil {
					return err
				}
			}
		}
		b.log.Info("added paper distribution penalties", "role", role, "reviewers", members, "breakpoints", breakpoints)
	}

	return nil
}
