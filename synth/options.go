// SPDX-License-Identifier: MIT
// Package: revmatch/synth
//
// options.go - functional options for the synth constructors.
//
// Contract:
//   • Options are functional (type Option func(*config)).
//   • Option constructors validate and panic on meaningless inputs.
//     Constructors themselves never panic.
//   • Determinism is explicit: randomness comes only from the configured
//     *rand.Rand (WithSeed or WithRand).

package synth

import (
	"math/rand"

	"github.com/samber/lo"
)

// Option customizes a constructor by mutating a config before generation.
type Option func(*config)

// WithSeed seeds a fresh *rand.Rand; use it to lock fixtures in tests.
func WithSeed(seed int64) Option {
	return func(c *config) {
		c.rng = rand.New(rand.NewSource(seed))
	}
}

// WithRand provides an explicit RNG. Panics on nil.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic("synth: WithRand(nil)")
	}

	return func(c *config) { c.rng = r }
}

// WithRegions sets the region labels reviewers are drawn from. Panics when
// no region is given or a label repeats.
func WithRegions(regions ...string) Option {
	if len(regions) == 0 {
		panic("synth: WithRegions()")
	}
	if len(lo.Uniq(regions)) != len(regions) {
		panic("synth: WithRegions(duplicate)")
	}
	regions = append([]string(nil), regions...)

	return func(c *config) { c.regions = regions }
}

// WithAuthorshipRate sets the probability in [0,1] that a reviewer authored
// a submission (Conference) or is conflicted with a paper (Trading).
func WithAuthorshipRate(p float64) Option {
	if p < minProbability || p > maxProbability {
		panic("synth: WithAuthorshipRate(p outside [0,1])")
	}

	return func(c *config) { c.authorshipRate = p }
}

// WithBidScale sets the largest bid drawn (>0). Bids are whole numbers in
// [0, scale].
func WithBidScale(scale float64) Option {
	if scale <= 0 {
		panic("synth: WithBidScale(scale<=0)")
	}

	return func(c *config) { c.bidScale = scale }
}
