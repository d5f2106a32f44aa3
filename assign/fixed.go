package assign

import (
	"fmt"

	"github.com/katalvlaran/revmatch/lpmodel"
)

// addFixed pins every fixed pair with x_pr = 1. Capacity rows were already
// widened for these pairs, so the pins never make them infeasible.
func (b *Builder) addFixed(m *lpmodel.Model) error {
	if b.fixed == nil {
		b.log.Info("no fixed assignments supplied")
		return nil
	}

	for _, f := range b.fixed {
		x := lpmodel.Match(f.Paper, f.Reviewer)
		if err := m.Declare(x, lpmodel.Binary); err != nil {
			return err
		}
		name := fmt.Sprintf("fix_assigned_x%d_%d", f.Paper, f.Reviewer)
		if err := m.AddEquation(name, []lpmodel.Term{lpmodel.T(x, 1)}, lpmodel.EQ, 1); err != nil {
			return err
		}
	}
	b.log.Info("fixed previous assignments", "count", len(b.fixed))

	return nil
}
