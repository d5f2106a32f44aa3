// SPDX-License-Identifier: MIT
// Package: revmatch/synth
//
// errors.go - sentinel errors for the synth package.
//
// Callers branch with errors.Is; constructors prefix the sentinel with
// their method name through synthErrorf.

package synth

import (
	"errors"
	"fmt"
)

// ErrTooSmall indicates that a size parameter (papers, reviewers) is below
// the constructor's minimum.
var ErrTooSmall = errors.New("synth: parameter too small")

// Method names used as error context.
const (
	MethodConference = "Conference"
	MethodTrading    = "Trading"
)

// synthErrorf returns "<method>: <message>: <sentinel>".
func synthErrorf(method string, sentinel error, format string, args ...any) error {
	return fmt.Errorf("%s: %s: %w", method, fmt.Sprintf(format, args...), sentinel)
}
