package synth

import (
	"github.com/katalvlaran/revmatch/ttc"
)

// MinTradingSize is the smallest reviewer count Trading accepts.
const MinTradingSize = 2

// Trading generates an assignment where reviewer i holds paper i (review
// type ttc.DefaultReviewType) for i in 1..n, plus a preference row for every
// (paper, reviewer) pair. Pairs other than a reviewer's own are conflicted
// with the authorship rate.
//
// Complexity: O(n²) time and space.
func Trading(n int, opts ...Option) ([]ttc.Holding, []ttc.Preference, error) {
	if n < MinTradingSize {
		return nil, nil, synthErrorf(MethodTrading, ErrTooSmall, "n must be >= %d, got %d", MinTradingSize, n)
	}
	cfg := newConfig(opts...)

	holdings := make([]ttc.Holding, 0, n)
	for i := 1; i <= n; i++ {
		holdings = append(holdings, ttc.Holding{Paper: i, Reviewer: i, ReviewType: ttc.DefaultReviewType})
	}

	prefs := make([]ttc.Preference, 0, n*n)
	for p := 1; p <= n; p++ {
		for r := 1; r <= n; r++ {
			prefs = append(prefs, ttc.Preference{
				Paper:      p,
				Reviewer:   r,
				Bid:        cfg.bid(),
				TopicScore: cfg.rng.Intn(topicScoreSpan) - topicScoreSpan/2,
				Conflict:   p != r && cfg.rng.Float64() < cfg.authorshipRate,
			})
		}
	}

	return holdings, prefs, nil
}
