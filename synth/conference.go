package synth

import (
	"github.com/katalvlaran/revmatch/assign"
)

// MinConferenceSize is the smallest paper or reviewer count Conference
// accepts.
const MinConferenceSize = 1

// Conference generates a conference with papers submissions (ids 1..papers)
// and reviewers committee members (ids 1..reviewers).
//
// Every non-conflicting (paper, reviewer) pair is a candidate with a score
// in [0,1), a whole-number bid and a topic score in [-2,2]. A reviewer
// authors at most one paper and is conflicted with it. Each non-AC member
// draws one co-author distance to another member; the co-review set is
// derived from those distances.
//
// Complexity: O(papers·reviewers) time and space.
func Conference(papers, reviewers int, opts ...Option) (assign.Tables, error) {
	if papers < MinConferenceSize || reviewers < MinConferenceSize {
		return assign.Tables{}, synthErrorf(MethodConference, ErrTooSmall,
			"papers and reviewers must be >= %d, got %d and %d", MinConferenceSize, papers, reviewers)
	}
	cfg := newConfig(opts...)

	t := assign.Tables{
		Papers:    make([]int, 0, papers),
		Reviewers: make([]assign.Reviewer, 0, reviewers),
		Conflicts: []assign.Pair{},
		Distances: []assign.Distance{},
	}
	for p := 1; p <= papers; p++ {
		t.Papers = append(t.Papers, p)
	}

	// 1) Committee.
	conflicts := make(map[assign.Pair]bool)
	for id := 1; id <= reviewers; id++ {
		r := assign.Reviewer{
			ID:                id,
			Role:              roleOf(id),
			Seniority:         cfg.rng.Intn(maxSeniority + 1),
			Region:            cfg.regions[cfg.rng.Intn(len(cfg.regions))],
			ComputerScientist: cfg.rng.Intn(2) == 0,
		}
		if id > 1 && cfg.rng.Float64() < cfg.authorshipRate {
			p := 1 + cfg.rng.Intn(papers)
			r.Authored = []int{p}
			pair := assign.Pair{Paper: p, Reviewer: id}
			conflicts[pair] = true
			t.Conflicts = append(t.Conflicts, pair)
		}
		t.Reviewers = append(t.Reviewers, r)
	}

	// 2) Candidates.
	t.Candidates = make([]assign.Candidate, 0, papers*reviewers)
	for p := 1; p <= papers; p++ {
		for _, r := range t.Reviewers {
			if conflicts[assign.Pair{Paper: p, Reviewer: r.ID}] {
				continue
			}
			t.Candidates = append(t.Candidates, assign.Candidate{
				Paper:      p,
				Reviewer:   r.ID,
				Role:       r.Role,
				Score:      cfg.rng.Float64(),
				Bid:        cfg.bid(),
				TopicScore: cfg.rng.Intn(topicScoreSpan) - topicScoreSpan/2,
			})
		}
	}

	// 3) Co-author distances among non-AC members.
	for _, r := range t.Reviewers {
		other := 1 + cfg.rng.Intn(reviewers)
		d := cfg.rng.Intn(maxDistance)
		if r.Role == assign.RoleAC || other == r.ID || roleOf(other) == assign.RoleAC {
			continue
		}
		t.Distances = append(t.Distances, assign.Distance{A: r.ID, B: other, Distance: d})
	}
	t.CoReviews = assign.DeriveCoReviews(t)

	return t, nil
}

// roleOf maps a member id onto the committee tiers.
func roleOf(id int) assign.Role {
	switch {
	case id%acEvery == 0:
		return assign.RoleAC
	case id%spcEvery == 0:
		return assign.RoleSPC
	}

	return assign.RolePC
}
