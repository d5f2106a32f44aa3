// Package assign turns normalized conference tables into an integer linear
// program that matches papers to reviewers.
//
// What:
//
//   - Builder populates an lpmodel.Model with hard constraints (paper and
//     reviewer capacities, fixed assignments) and soft blocks shaped through
//     the objective: computer-science coverage, co-review and co-author
//     distance penalties, seniority balance, region diversity, reciprocal
//     bidding-cycle penalties and a piecewise reviewer-load penalty.
//   - DetectBiddingCycles finds pairs of reviewers who bid highly on each
//     other's papers.
//   - DeriveCoReviews enumerates the co-review indicator set for reviewer
//     pairs that are close in the co-authorship network.
//
// Build order (the blocks are independent; the order only shapes logs and
// output layout):
//
//  1. match quality objective
//  2. paper capacity per (paper, role)
//  3. reviewer capacity (max and optional min)
//  4. computer-science coverage
//  5. co-review indicators              (soft)
//  6. co-author distance penalties      (soft)
//  7. seniority balance                 (soft)
//  8. region diversity                  (soft)
//  9. bidding-cycle penalties           (soft)
//  10. paper distribution penalties     (soft)
//  11. fixed-assignment pinning
//
// Fixed assignments override capacity bookkeeping: a fixed pair missing
// from the candidate table still gets a match variable and still counts
// toward its capacity rows, and a capacity smaller than the number of fixed
// pairs is raised (never lowered) with a log entry.
//
// Errors:
//
//   - ErrInvalidConfig    configuration failed validation
//   - ErrNoCandidates     the candidate table is empty
//   - ErrNoPCReviewers    some paper has no PC candidate (fatal)
//   - ErrMissingCapacity  a role appears in the data but has no capacity
//   - ErrFixedConflict    a fixed pair is also a conflict
//   - ErrUnknownRole      a role outside {PC, SPC, AC}
package assign
