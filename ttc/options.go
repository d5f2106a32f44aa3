package ttc

import (
	"fmt"
	"math"

	"github.com/katalvlaran/revmatch/logging"
)

// Defaults for a meta-review trading round.
const (
	DefaultBidThreshold = 5
	DefaultReviewType   = "meta"
	DefaultRound        = "final"

	// clearRound is the round written on clear records.
	clearRound = "any"
)

// Options configures Reallocate.
type Options struct {
	// BidThreshold: only held pairs with bid <= BidThreshold trade.
	BidThreshold float64
	// ReviewType selects which holdings take part.
	ReviewType string
	// Round is written on assign records.
	Round string
	// TopicGate, when set, makes a paper ineligible for a reviewer whose
	// topic score on it is below MinTopicScore.
	TopicGate     bool
	MinTopicScore int

	Logger logging.Logger
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns the meta-review defaults with a no-op logger.
func DefaultOptions() Options {
	return Options{
		BidThreshold: DefaultBidThreshold,
		ReviewType:   DefaultReviewType,
		Round:        DefaultRound,
		Logger:       logging.NewNop(),
	}
}

// WithBidThreshold sets the maximum bid a held pair may have to trade.
func WithBidThreshold(th float64) Option {
	return func(o *Options) { o.BidThreshold = th }
}

// WithReviewType selects the holdings that trade.
func WithReviewType(t string) Option {
	return func(o *Options) { o.ReviewType = t }
}

// WithRound sets the round written on assign records.
func WithRound(r string) Option {
	return func(o *Options) { o.Round = r }
}

// WithTopicScoreGate excludes papers whose topic score for the receiving
// reviewer is below min.
func WithTopicScoreGate(min int) Option {
	return func(o *Options) {
		o.TopicGate = true
		o.MinTopicScore = min
	}
}

// WithLogger routes progress logs to l. Panics on nil.
func WithLogger(l logging.Logger) Option {
	if l == nil {
		panic("ttc: WithLogger(nil)")
	}

	return func(o *Options) { o.Logger = l }
}

func (o Options) validate() error {
	if math.IsNaN(o.BidThreshold) || math.IsInf(o.BidThreshold, 0) {
		return fmt.Errorf("%w: bid threshold %v", ErrInvalidOptions, o.BidThreshold)
	}
	if o.ReviewType == "" {
		return fmt.Errorf("%w: empty review type", ErrInvalidOptions)
	}
	if o.Round == "" {
		return fmt.Errorf("%w: empty round", ErrInvalidOptions)
	}

	return nil
}
