package ttc

import "errors"

var (
	// ErrInvalidOptions is returned when the resolved options cannot drive a
	// reallocation.
	ErrInvalidOptions = errors.New("ttc: invalid options")

	// ErrDuplicateAssignment is returned when trading produces a pair twice
	// or produces a pair that the original assignment already held.
	ErrDuplicateAssignment = errors.New("ttc: duplicate assignment")
)
