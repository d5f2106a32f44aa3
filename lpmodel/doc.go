// Package lpmodel is a typed container for mixed-integer linear programs.
//
// What:
//
//   - A variable registry keyed by Var, a small comparable value type that
//     carries the identifiers of the entity it models (Match, CoReview,
//     Region, SeniorSlack, Cycle, DistSlack, ...). Canonical solver names
//     such as "x12_7" are generated only when the model is written.
//   - Named linear equations: a list of (Var, coefficient) terms, a
//     comparison operator and a right-hand side.
//   - Explicit bounds, General/Binary integrality declarations and an
//     objective stored as a Var -> weight mapping.
//   - WriteLP renders the whole program in CPLEX LP format for an external
//     solver; WriteSnapshot echoes the configuration that produced it.
//
// Contracts:
//
//   - Appending is the only mutation. Once WriteLP succeeds the model is
//     sealed and every further mutation returns ErrSealed.
//   - Every variable referenced by an equation or the objective must have
//     been declared first (ErrUndeclaredVariable).
//   - Equation names are unique (ErrDuplicateEquation).
//   - Output is deterministic: variables, equations and objective terms are
//     written in insertion order.
//
// Complexity:
//
//   - Declare/SetBounds/AddObjective: O(1) amortized.
//   - AddEquation: O(k) for k terms.
//   - WriteLP: O(V + E·k).
package lpmodel
