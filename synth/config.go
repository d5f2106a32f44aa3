// SPDX-License-Identifier: MIT
// Package: revmatch/synth
//
// config.go - internal configuration and deterministic defaults.
//
// Deterministic defaults:
//   • rng            = rand.New(rand.NewSource(defaultSeed))
//   • regions        = EU, NA, AS, SA
//   • authorshipRate = 0.3
//   • bidScale       = 9

package synth

import "math/rand"

// config aggregates the knobs of every constructor. It is built per call
// and never shared.
type config struct {
	rng            *rand.Rand
	regions        []string
	authorshipRate float64
	bidScale       float64
}

const (
	defaultSeed           = 42
	defaultAuthorshipRate = 0.3
	defaultBidScale       = 9

	minProbability = 0.0
	maxProbability = 1.0

	// Committee shape: every acEvery-th member is an AC, every spcEvery-th
	// an SPC, the rest PC.
	acEvery  = 10
	spcEvery = 4

	maxSeniority   = 3
	topicScoreSpan = 5 // topic scores in [-2, 2]
	maxDistance    = 3 // distances in [0, 2]
)

var defaultRegions = []string{"EU", "NA", "AS", "SA"}

// newConfig applies opts over the defaults; later options win.
func newConfig(opts ...Option) config {
	cfg := config{
		rng:            rand.New(rand.NewSource(defaultSeed)),
		regions:        defaultRegions,
		authorshipRate: defaultAuthorshipRate,
		bidScale:       defaultBidScale,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// bid draws a whole-number bid in [0, bidScale].
func (c config) bid() float64 {
	return float64(c.rng.Intn(int(c.bidScale) + 1))
}
