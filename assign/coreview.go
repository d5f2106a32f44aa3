package assign

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/samber/lo"

	"github.com/katalvlaran/revmatch/lpmodel"
)

type reviewerPair struct{ i, j int }

func orderedPair(a, b int) reviewerPair {
	if a > b {
		a, b = b, a
	}

	return reviewerPair{a, b}
}

// normalizeCoReviews orders each pair (I < J), drops self pairs and
// duplicates, and sorts by (Paper, I, J).
func normalizeCoReviews(in []CoReview) []CoReview {
	out := make([]CoReview, 0, len(in))
	for _, c := range in {
		if c.I == c.J {
			continue
		}
		p := orderedPair(c.I, c.J)
		out = append(out, CoReview{I: p.i, J: p.j, Paper: c.Paper})
	}
	out = lo.Uniq(out)
	slices.SortFunc(out, func(x, y CoReview) int {
		return cmp.Or(cmp.Compare(x.Paper, y.Paper), cmp.Compare(x.I, y.I), cmp.Compare(x.J, y.J))
	})

	return out
}

// DeriveCoReviews enumerates the co-review indicator set: for every paper,
// each unordered pair of non-AC candidate reviewers that sit at co-author
// distance 0 or 1. It returns nil when t carries no distance table.
func DeriveCoReviews(t Tables) []CoReview {
	if t.Distances == nil {
		return nil
	}

	near := make(map[reviewerPair]bool, len(t.Distances))
	for _, d := range t.Distances {
		if d.Distance == 0 || d.Distance == 1 {
			near[orderedPair(d.A, d.B)] = true
		}
	}
	ac := make(map[int]bool)
	for _, r := range t.Reviewers {
		if r.Role == RoleAC {
			ac[r.ID] = true
		}
	}
	conflicts := lo.SliceToMap(t.Conflicts, func(p Pair) (Pair, bool) { return p, true })

	byPaper := make(map[int][]int)
	for _, c := range t.Candidates {
		if ac[c.Reviewer] || c.Role == RoleAC || conflicts[c.Pair()] {
			continue
		}
		byPaper[c.Paper] = append(byPaper[c.Paper], c.Reviewer)
	}

	out := make([]CoReview, 0)
	for p, rs := range byPaper {
		rs = lo.Uniq(rs)
		slices.Sort(rs)
		for a := 0; a < len(rs); a++ {
			for z := a + 1; z < len(rs); z++ {
				if near[reviewerPair{rs[a], rs[z]}] {
					out = append(out, CoReview{I: rs[a], J: rs[z], Paper: p})
				}
			}
		}
	}

	return normalizeCoReviews(out)
}

// addCoReviews forces coreview_ij >= x_pi + x_pj - 1 for every supplied
// (i, j, p), so the indicator is 1 whenever i and j share paper p.
func (b *Builder) addCoReviews(m *lpmodel.Model) error {
	if b.coreviews == nil {
		b.log.Warn("co-review variable set not supplied; skipping co-review constraints")
		return nil
	}

	skipped := 0
	for _, c := range b.coreviews {
		xi, xj := lpmodel.Match(c.Paper, c.I), lpmodel.Match(c.Paper, c.J)
		if !m.Declared(xi) || !m.Declared(xj) {
			skipped++
			continue
		}

		cr := lpmodel.CoReview(c.I, c.J)
		if err := m.DeclareBounded(cr, lpmodel.General, 0, 1); err != nil {
			return err
		}
		terms := []lpmodel.Term{lpmodel.T(cr, 1), lpmodel.T(xi, -1), lpmodel.T(xj, -1)}
		name := fmt.Sprintf("coreview_%d_%d_%d", c.Paper, c.I, c.J)
		if err := m.AddEquation(name, terms, lpmodel.GE, -1); err != nil {
			return err
		}
	}
	if skipped > 0 {
		b.log.Warn("skipped co-review entries without candidate pairs", "count", skipped)
	}

	return nil
}

// addCoReviewDistance penalizes co-reviews between non-AC reviewers at
// co-author distance 0 or 1 with the distance-specific penalty.
func (b *Builder) addCoReviewDistance(m *lpmodel.Model) error {
	if b.coreviews == nil {
		b.log.Warn("co-review variable set not supplied; cannot construct co-author distance penalties")
		return nil
	}
	if b.distances == nil {
		b.log.Warn("distance table not supplied; skipping co-author distance penalties")
		return nil
	}

	within := map[int]map[reviewerPair]bool{0: {}, 1: {}}
	for _, d := range b.distances {
		if b.isAC(d.A) || b.isAC(d.B) {
			continue
		}
		if set, ok := within[d.Distance]; ok {
			set[orderedPair(d.A, d.B)] = true
		}
	}

	pairs := lo.Uniq(lo.Map(b.coreviews, func(c CoReview, _ int) reviewerPair { return reviewerPair{c.I, c.J} }))
	penalties := []struct {
		distance int
		weight   float64
	}{
		{0, b.cfg.CoReviewPenalties.Distance0},
		{1, b.cfg.CoReviewPenalties.Distance1},
	}
	for _, pen := range penalties {
		added := 0
		for _, p := range pairs {
			cr := lpmodel.CoReview(p.i, p.j)
			if !within[pen.distance][p] || !m.Declared(cr) {
				continue
			}
			if err := m.AddObjective(cr, -pen.weight); err != nil {
				return err
			}
			added++
		}
		b.log.Info("added distance penalties", "distance", pen.distance, "count", added, "penalty", pen.weight)
	}

	return nil
}
