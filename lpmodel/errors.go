// SPDX-License-Identifier: MIT
// Package: revmatch/lpmodel
//
// errors.go - sentinel errors for the lpmodel package.
//
// Callers branch with errors.Is; implementations attach context with
// fmt.Errorf("...: %w", ErrX).

package lpmodel

import "errors"

var (
	// ErrUndeclaredVariable is returned when an equation or objective term
	// references a variable that was never declared.
	ErrUndeclaredVariable = errors.New("lpmodel: undeclared variable")

	// ErrDuplicateEquation is returned when an equation name is reused.
	ErrDuplicateEquation = errors.New("lpmodel: duplicate equation name")

	// ErrTypeConflict is returned when a variable is re-declared with a
	// different type.
	ErrTypeConflict = errors.New("lpmodel: variable type conflict")

	// ErrEmptyEquation is returned when an equation has no non-zero terms.
	ErrEmptyEquation = errors.New("lpmodel: equation has no terms")

	// ErrInvalidBounds is returned when lower > upper or a bound is NaN.
	ErrInvalidBounds = errors.New("lpmodel: invalid bounds")

	// ErrInvalidCoefficient is returned for NaN or infinite coefficients and
	// right-hand sides.
	ErrInvalidCoefficient = errors.New("lpmodel: coefficient is NaN or Inf")

	// ErrSealed is returned when the model is mutated after it was written.
	ErrSealed = errors.New("lpmodel: model is sealed")

	// ErrNameCollision is returned by WriteLP when two distinct variables
	// render to the same canonical name.
	ErrNameCollision = errors.New("lpmodel: canonical name collision")
)
