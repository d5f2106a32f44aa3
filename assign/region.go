package assign

import (
	"fmt"
	"slices"

	"github.com/samber/lo"

	"github.com/katalvlaran/revmatch/lpmodel"
)

// memberRegions returns the sorted distinct regions of non-AC committee
// members. Regions are free text; the model refers to them by index.
func (b *Builder) memberRegions() []string {
	var out []string
	for _, id := range b.reviewerIDs {
		if r := b.reviewers[id]; r.Role != RoleAC {
			out = append(out, r.Region)
		}
	}
	out = lo.Uniq(out)
	slices.Sort(out)

	return out
}

// addRegions rewards regional diversity on every paper:
//
//	region_p   <= sum_k region_pk
//	region_pk  <= sum_{r non-AC, region(r)=regions[k]} x_pr,   0 <= region_pk <= 1
//
// and region_p enters the objective with Config.RegionReward. The index k
// of every region is logged so that solutions can be read back.
func (b *Builder) addRegions(m *lpmodel.Model) error {
	regions := b.regions
	if len(regions) == 0 {
		b.log.Warn("no non-AC reviewers with a region; skipping region constraints")
		return nil
	}
	for k, region := range regions {
		b.log.Info("region group", "index", k, "region", region)
	}

	for _, p := range b.papers {
		count := lpmodel.Region(p)
		if err := m.Declare(count, lpmodel.Continuous); err != nil {
			return err
		}

		members := lo.GroupBy(
			lo.Filter(b.byPaper[p], func(c Candidate, _ int) bool {
				r, ok := b.reviewers[c.Reviewer]
				return ok && r.Role != RoleAC
			}),
			func(c Candidate) string { return b.reviewers[c.Reviewer].Region },
		)

		total := []lpmodel.Term{lpmodel.T(count, 1)}
		for k, region := range regions {
			group := lpmodel.RegionGroup(p, k)
			if err := m.DeclareBounded(group, lpmodel.Continuous, 0, 1); err != nil {
				return err
			}
			total = append(total, lpmodel.T(group, -1))

			terms := []lpmodel.Term{lpmodel.T(group, 1)}
			for _, c := range members[region] {
				terms = append(terms, lpmodel.T(lpmodel.Match(p, c.Reviewer), -1))
			}
			name := fmt.Sprintf("region_%d_%d", p, k)
			if err := m.AddEquation(name, terms, lpmodel.LE, 0); err != nil {
				return err
			}
		}

		if err := m.AddEquation(fmt.Sprintf("region_%d", p), total, lpmodel.LE, 0); err != nil {
			return err
		}
		if err := m.AddObjective(count, b.cfg.RegionReward); err != nil {
			return err
		}
	}

	return nil
}
