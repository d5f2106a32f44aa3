package assign

import (
	"fmt"

	"github.com/katalvlaran/revmatch/lpmodel"
)

// addComputerScience rewards papers that get at least one computer
// scientist without making it a hard requirement:
//
//	cs_p <= sum_{r computer scientist} x_pr
//	cs_p <= 1
//
// and cs_p enters the objective with Config.CSReward.
func (b *Builder) addComputerScience(m *lpmodel.Model) error {
	for _, p := range b.papers {
		cs := lpmodel.CS(p)
		if err := m.Declare(cs, lpmodel.Continuous); err != nil {
			return err
		}

		var terms []lpmodel.Term
		for _, c := range b.byPaper[p] {
			if b.reviewers[c.Reviewer].ComputerScientist {
				terms = append(terms, lpmodel.T(lpmodel.Match(p, c.Reviewer), 1))
			}
		}
		terms = append(terms, lpmodel.T(cs, -1))
		if err := m.AddEquation(fmt.Sprintf("cs_sum_over_cs_%d", p), terms, lpmodel.GE, 0); err != nil {
			return err
		}
		if err := m.AddEquation(fmt.Sprintf("cs_expertise_%d", p), []lpmodel.Term{lpmodel.T(cs, 1)}, lpmodel.LE, 1); err != nil {
			return err
		}
		if err := m.AddObjective(cs, b.cfg.CSReward); err != nil {
			return err
		}
	}

	return nil
}
