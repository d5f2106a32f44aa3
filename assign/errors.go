package assign

import "errors"

var (
	// ErrInvalidConfig is returned when a Config fails validation.
	ErrInvalidConfig = errors.New("assign: invalid configuration")

	// ErrNoCandidates is returned when the candidate table is empty.
	ErrNoCandidates = errors.New("assign: no candidate pairs")

	// ErrNoPCReviewers is returned when a paper has no PC candidate; the
	// model cannot be built.
	ErrNoPCReviewers = errors.New("assign: paper has no PC reviewers")

	// ErrMissingCapacity is returned when a role present in the data has no
	// configured capacity.
	ErrMissingCapacity = errors.New("assign: no capacity configured for role")

	// ErrFixedConflict is returned when a fixed assignment is also listed as
	// a conflict.
	ErrFixedConflict = errors.New("assign: fixed assignment is a conflict")

	// ErrUnknownRole is returned for roles outside {PC, SPC, AC}.
	ErrUnknownRole = errors.New("assign: unknown role")
)
