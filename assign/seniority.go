package assign

import (
	"fmt"

	"github.com/katalvlaran/revmatch/lpmodel"
)

// addSeniority rewards the seniority reached on each paper by its PC
// reviewers. The slack is bounded in [MinSeniority, TargetSeniority] and must
// not exceed the achieved seniority sum:
//
//	sum_{r in PC} -seniority(r)*x_pr + sen_slack_p <= 0
//
// A positive MinSeniority therefore acts as a hard floor.
func (b *Builder) addSeniority(m *lpmodel.Model) error {
	for _, p := range b.papers {
		slack := lpmodel.SeniorSlack(p)
		if err := m.DeclareBounded(slack, lpmodel.General, b.cfg.MinSeniority, b.cfg.TargetSeniority); err != nil {
			return err
		}

		terms := []lpmodel.Term{}
		for _, c := range b.byPaper[p] {
			if c.Role != RolePC {
				continue
			}
			sen := b.reviewers[c.Reviewer].Seniority
			terms = append(terms, lpmodel.T(lpmodel.Match(p, c.Reviewer), -float64(sen)))
		}
		if len(terms) == 0 {
			return fmt.Errorf("paper %d: %w", p, ErrNoPCReviewers)
		}
		terms = append(terms, lpmodel.T(slack, 1))

		if err := m.AddEquation(fmt.Sprintf("sen_slack_%d", p), terms, lpmodel.LE, 0); err != nil {
			return err
		}
		if err := m.AddObjective(slack, b.cfg.SeniorityReward); err != nil {
			return err
		}
	}

	return nil
}
