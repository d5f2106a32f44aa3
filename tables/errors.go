package tables

import "errors"

var (
	// ErrMissingColumn is returned when a required header column is absent.
	ErrMissingColumn = errors.New("tables: missing column")

	// ErrMalformedRow is returned when a cell cannot be parsed.
	ErrMalformedRow = errors.New("tables: malformed row")
)
