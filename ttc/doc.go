// Package ttc improves an existing review assignment with top trading
// cycles.
//
// What:
//
//   - Every held (paper, reviewer) pair of the configured review type whose
//     bid is at most the trading threshold becomes an active node.
//   - Each node points at its reviewer's favorite active node: the one whose
//     paper the reviewer bids highest on, excluding papers the reviewer
//     already held and conflicted papers. A node whose favorite is not
//     strictly better than its own pair points at itself.
//   - Walks along these pointers find cycles; every cycle of length two or
//     more becomes a rotation in which each reviewer gives up their paper
//     and receives the paper of the node they point at.
//
// Determinism:
//
//   - Favorites break ties by the smaller (paper, reviewer).
//   - Walks start at the smallest remaining active node and reported cycles
//     begin at their smallest node, so identical input yields identical
//     records.
//
// The package never touches an lpmodel.Model or a solver; it works on the
// concrete assignment produced by one.
//
// Errors:
//
//   - ErrInvalidOptions       threshold, review type or round unusable
//   - ErrDuplicateAssignment  a trade produced a pair twice or a pair that
//     was already held (fatal consistency error)
package ttc
