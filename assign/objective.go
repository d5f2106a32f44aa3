package assign

import "github.com/katalvlaran/revmatch/lpmodel"

// addMatchingObjective declares one binary match variable per candidate and
// rewards it with the candidate's score. Unscored pairs are declared but add
// nothing to the objective.
func (b *Builder) addMatchingObjective(m *lpmodel.Model) error {
	for _, c := range b.candidates {
		x := lpmodel.Match(c.Paper, c.Reviewer)
		if err := m.Declare(x, lpmodel.Binary); err != nil {
			return err
		}
		if !c.Scored() {
			continue
		}
		if err := m.AddObjective(x, c.Score); err != nil {
			return err
		}
	}

	return nil
}
