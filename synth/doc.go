// Package synth generates deterministic synthetic inputs for the matching
// and trading packages. It is used by tests, benchmarks and examples that
// need realistic volume without shipping conference data.
//
// The package offers:
//
//   - Conference: an assign.Tables instance with a three-tier committee
//     (PC, SPC, AC), regions, seniority, authorship conflicts, a full
//     candidate table, co-author distances and the derived co-review set.
//   - Trading: a one-paper-per-reviewer ttc assignment with a dense
//     preference table.
//   - Functional options in the usual style: WithSeed, WithRand,
//     WithRegions, WithAuthorshipRate, WithBidScale.
//
// Guarantees:
//
//   - Same parameters and seed give identical output.
//   - Reviewer 1 is always a PC member without authored papers, so every
//     paper of a Conference has at least one PC candidate.
//   - Option constructors panic on meaningless values; constructors return
//     ErrTooSmall for sizes below the documented minimum.
package synth
