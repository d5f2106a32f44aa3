package tables

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/katalvlaran/revmatch/assign"
	"github.com/katalvlaran/revmatch/ttc"
)

// ReadReviewers decodes the committee table.
func ReadReviewers(r io.Reader) ([]assign.Reviewer, error) {
	out := []assign.Reviewer{}
	err := readRows(r, []string{"id", "role"}, func(rw row) error {
		id, err := rw.int("id")
		if err != nil {
			return err
		}
		sen, err := rw.intOr("seniority", 0)
		if err != nil {
			return err
		}
		cs, err := rw.bool("is_cs")
		if err != nil {
			return err
		}
		authored, err := rw.ints("authored")
		if err != nil {
			return err
		}
		role := assign.Role(strings.ToUpper(rw.str("role")))
		if !role.Valid() {
			return rw.malformed("role", fmt.Errorf("unknown role %q", rw.str("role")))
		}
		out = append(out, assign.Reviewer{
			ID:                id,
			Role:              role,
			Seniority:         sen,
			Region:            rw.str("region"),
			ComputerScientist: cs,
			Authored:          authored,
		})

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("reviewers: %w", err)
	}

	return out, nil
}

// ReadCandidates decodes the scored candidate pairs. Absent score or bid
// columns read as NaN; an absent role column leaves Role empty.
func ReadCandidates(r io.Reader) ([]assign.Candidate, error) {
	out := []assign.Candidate{}
	err := readRows(r, []string{"paper", "reviewer"}, func(rw row) error {
		p, err := pair(rw, "paper", "reviewer")
		if err != nil {
			return err
		}
		score, err := rw.float("score")
		if err != nil {
			return err
		}
		bid, err := rw.float("bid")
		if err != nil {
			return err
		}
		topic, err := rw.intOr("topic_score", 0)
		if err != nil {
			return err
		}
		role := assign.Role(strings.ToUpper(rw.str("role")))
		if role != "" && !role.Valid() {
			return rw.malformed("role", fmt.Errorf("unknown role %q", rw.str("role")))
		}
		out = append(out, assign.Candidate{
			Paper:      p.Paper,
			Reviewer:   p.Reviewer,
			Role:       role,
			Score:      score,
			Bid:        bid,
			TopicScore: topic,
		})

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("candidates: %w", err)
	}

	return out, nil
}

// ReadPairs decodes a (paper, reviewer) table such as conflicts or fixed
// assignments.
func ReadPairs(r io.Reader) ([]assign.Pair, error) {
	out := []assign.Pair{}
	err := readRows(r, []string{"paper", "reviewer"}, func(rw row) error {
		p, err := pair(rw, "paper", "reviewer")
		if err != nil {
			return err
		}
		out = append(out, p)

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("pairs: %w", err)
	}

	return out, nil
}

// ReadPapers decodes a one-column paper id table (papers, rejected).
func ReadPapers(r io.Reader) ([]int, error) {
	out := []int{}
	err := readRows(r, []string{"paper"}, func(rw row) error {
		p, err := rw.int("paper")
		if err != nil {
			return err
		}
		out = append(out, p)

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("papers: %w", err)
	}

	return out, nil
}

// ReadDistances decodes the co-author distance table.
func ReadDistances(r io.Reader) ([]assign.Distance, error) {
	out := []assign.Distance{}
	err := readRows(r, []string{"reviewer_1", "reviewer_2", "distance"}, func(rw row) error {
		a, err := rw.int("reviewer_1")
		if err != nil {
			return err
		}
		b, err := rw.int("reviewer_2")
		if err != nil {
			return err
		}
		d, err := rw.int("distance")
		if err != nil {
			return err
		}
		out = append(out, assign.Distance{A: a, B: b, Distance: d})

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("distances: %w", err)
	}

	return out, nil
}

// ReadCoReviews decodes a precomputed co-review variable set.
func ReadCoReviews(r io.Reader) ([]assign.CoReview, error) {
	out := []assign.CoReview{}
	err := readRows(r, []string{"reviewer_1", "reviewer_2", "paper"}, func(rw row) error {
		i, err := rw.int("reviewer_1")
		if err != nil {
			return err
		}
		j, err := rw.int("reviewer_2")
		if err != nil {
			return err
		}
		p, err := rw.int("paper")
		if err != nil {
			return err
		}
		out = append(out, assign.CoReview{I: i, J: j, Paper: p})

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("coreviews: %w", err)
	}

	return out, nil
}

// ReadHoldings decodes an assignment export. The review type is the action
// without its "review" suffix ("metareview" -> "meta"); a missing action
// column yields ttc.DefaultReviewType.
func ReadHoldings(r io.Reader) ([]ttc.Holding, error) {
	out := []ttc.Holding{}
	err := readRows(r, []string{"paper", "reviewer"}, func(rw row) error {
		p, err := pair(rw, "paper", "reviewer")
		if err != nil {
			return err
		}
		kind := ttc.DefaultReviewType
		if rw.has("action") {
			kind = strings.TrimSuffix(strings.ToLower(rw.str("action")), actionSuffix)
		}
		out = append(out, ttc.Holding{Paper: p.Paper, Reviewer: p.Reviewer, ReviewType: kind})

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("assignment: %w", err)
	}

	return out, nil
}

// ReadPreferences decodes a preference export. An empty preference reads
// as 0.
func ReadPreferences(r io.Reader) ([]ttc.Preference, error) {
	out := []ttc.Preference{}
	err := readRows(r, []string{"paper", "reviewer", "preference"}, func(rw row) error {
		p, err := pair(rw, "paper", "reviewer")
		if err != nil {
			return err
		}
		bid, err := rw.float("preference")
		if err != nil {
			return err
		}
		if math.IsNaN(bid) {
			bid = 0
		}
		topic, err := rw.intOr("topic_score", 0)
		if err != nil {
			return err
		}
		conflict := strings.EqualFold(rw.str("conflict"), "conflict")
		if !conflict {
			if conflict, err = rw.bool("conflict"); err != nil {
				return err
			}
		}
		out = append(out, ttc.Preference{
			Paper:      p.Paper,
			Reviewer:   p.Reviewer,
			Bid:        bid,
			TopicScore: topic,
			Conflict:   conflict,
		})

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("preferences: %w", err)
	}

	return out, nil
}

func pair(rw row, paperCol, reviewerCol string) (assign.Pair, error) {
	p, err := rw.int(paperCol)
	if err != nil {
		return assign.Pair{}, err
	}
	r, err := rw.int(reviewerCol)
	if err != nil {
		return assign.Pair{}, err
	}

	return assign.Pair{Paper: p, Reviewer: r}, nil
}
