package assign

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/samber/lo"

	"github.com/katalvlaran/revmatch/logging"
	"github.com/katalvlaran/revmatch/lpmodel"
)

const defaultModelName = "reviewer-matching"

// Builder owns the indexed input of one conference and produces the
// matching program. Each Build call fills a fresh lpmodel.Model that is
// handed explicitly to every step.
type Builder struct {
	cfg  Config
	log  logging.Logger
	soft bool
	name string

	reviewers   map[int]Reviewer
	reviewerIDs []int
	regions     []string // sorted regions of non-AC members; RegionGroup index k names regions[k]

	candidates []Candidate         // conflict-free, deduplicated, sorted by (paper, reviewer)
	byPaper    map[int][]Candidate // sorted by reviewer
	byReviewer map[int][]Candidate // sorted by paper
	papers     []int

	rejected map[int]bool
	fixed    []Pair // sorted, deduplicated; nil when not supplied

	coreviews []CoReview // normalized; nil when not supplied
	distances []Distance // nil when not supplied

	cycles []BiddingCycle
}

// step is one block of the program.
type step struct {
	title string
	add   func(m *lpmodel.Model) error
}

// NewBuilder validates cfg and indexes t.
func NewBuilder(cfg Config, t Tables, opts ...Option) (*Builder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	b := &Builder{
		cfg:  cfg,
		log:  logging.NewNop(),
		soft: cfg.SoftConstraints,
		name: defaultModelName,
	}
	for _, opt := range opts {
		opt(b)
	}

	if err := b.index(t); err != nil {
		return nil, err
	}

	return b, nil
}

// Config returns the configuration the builder was created with.
func (b *Builder) Config() Config { return b.cfg }

// BiddingCycles returns the cycles detected by the last Build.
func (b *Builder) BiddingCycles() []BiddingCycle {
	return append([]BiddingCycle(nil), b.cycles...)
}

// Regions returns the sorted regions of non-AC committee members. The k-th
// entry is the region behind the region{p}_{k} variables.
func (b *Builder) Regions() []string {
	return append([]string(nil), b.regions...)
}

// Build assembles the complete program. A paper without PC candidates
// aborts the build with ErrNoPCReviewers.
func (b *Builder) Build() (*lpmodel.Model, error) {
	if err := b.checkPCCoverage(); err != nil {
		return nil, err
	}

	m := lpmodel.New(b.name)

	steps := []step{
		{"Reviewer matching objective", b.addMatchingObjective},
		{"Paper capacity", b.addPaperCapacity},
		{"Reviewer capacity", b.addReviewerCapacity},
		{"CS expertise", b.addComputerScience},
	}
	if b.soft {
		steps = append(steps,
			step{"Coreview constraints", b.addCoReviews},
			step{"Co-author distance objective", b.addCoReviewDistance},
			step{"Seniority objective", b.addSeniority},
			step{"Region constraints and objective", b.addRegions},
			step{"Bidding cycle penalties", b.addBiddingCycles},
			step{"Paper distribution penalties", b.addPaperDistribution},
		)
	} else {
		b.log.Info("soft constraints disabled")
	}
	steps = append(steps, step{"Fixed assignments", b.addFixed})

	for _, s := range steps {
		b.log.Info(s.title)
		if err := s.add(m); err != nil {
			return nil, fmt.Errorf("assign: %s: %w", s.title, err)
		}
	}

	st := m.Stats()
	b.log.Info("model built",
		"variables", st.Variables,
		"binary", st.Binary,
		"general", st.General,
		"equations", st.Equations,
		"objective_terms", st.ObjectiveTerms,
	)

	return m, nil
}

// index normalizes t into lookup structures. Every collection is sorted so
// that identical input yields an identical model.
func (b *Builder) index(t Tables) error {
	// 1) Reviewers.
	b.reviewers = make(map[int]Reviewer, len(t.Reviewers))
	for _, r := range t.Reviewers {
		if !r.Role.Valid() {
			return fmt.Errorf("reviewer %d role %q: %w", r.ID, r.Role, ErrUnknownRole)
		}
		if _, dup := b.reviewers[r.ID]; dup {
			b.log.Warn("duplicate reviewer row ignored", "reviewer", r.ID)
			continue
		}
		r.Authored = lo.Uniq(r.Authored)
		slices.Sort(r.Authored)
		b.reviewers[r.ID] = r
	}
	b.reviewerIDs = lo.Keys(b.reviewers)
	slices.Sort(b.reviewerIDs)
	b.regions = b.memberRegions()

	// 2) Conflicts.
	conflicts := make(map[Pair]bool, len(t.Conflicts))
	for _, c := range t.Conflicts {
		conflicts[c] = true
	}

	// 3) Candidates: drop conflicts and duplicates, resolve role and bid.
	if len(t.Candidates) == 0 {
		return ErrNoCandidates
	}
	seen := make(map[Pair]bool, len(t.Candidates))
	var droppedConflicts, droppedDupes int
	for _, c := range t.Candidates {
		key := c.Pair()
		if conflicts[key] {
			droppedConflicts++
			continue
		}
		if seen[key] {
			droppedDupes++
			continue
		}
		seen[key] = true

		if c.Role == "" {
			c.Role = b.memberRole(c.Reviewer)
		}
		if !c.Role.Valid() {
			return fmt.Errorf("candidate (%d,%d) role %q: %w", c.Paper, c.Reviewer, c.Role, ErrUnknownRole)
		}
		if math.IsNaN(c.Bid) {
			c.Bid = b.cfg.DefaultBid
		}
		b.candidates = append(b.candidates, c)
	}
	if droppedConflicts > 0 {
		b.log.Info("dropped conflicting candidate pairs", "count", droppedConflicts)
	}
	if droppedDupes > 0 {
		b.log.Warn("dropped duplicate candidate pairs", "count", droppedDupes)
	}
	if len(b.candidates) == 0 {
		return ErrNoCandidates
	}
	slices.SortFunc(b.candidates, comparePairs)

	b.byPaper = lo.GroupBy(b.candidates, func(c Candidate) int { return c.Paper })
	b.byReviewer = lo.GroupBy(b.candidates, func(c Candidate) int { return c.Reviewer })

	papers := append(lo.Keys(b.byPaper), t.Papers...)
	b.papers = lo.Uniq(papers)
	slices.Sort(b.papers)

	// 4) Rejected papers.
	b.rejected = make(map[int]bool, len(t.Rejected))
	if t.Rejected == nil {
		b.log.Info("no rejected papers supplied")
	}
	for _, p := range t.Rejected {
		b.rejected[p] = true
	}
	if len(b.rejected) > 0 {
		b.log.Info("found rejected papers to which no new reviewers will be added", "count", len(b.rejected))
	}

	// 5) Fixed assignments.
	if t.Fixed != nil {
		b.fixed = lo.Uniq(t.Fixed)
		slices.SortFunc(b.fixed, compareKeys)
		for _, p := range b.fixed {
			if conflicts[p] {
				return fmt.Errorf("fixed pair (%d,%d): %w", p.Paper, p.Reviewer, ErrFixedConflict)
			}
		}
	}

	// 6) Optional relations.
	if t.CoReviews != nil {
		b.coreviews = normalizeCoReviews(t.CoReviews)
	}
	b.distances = t.Distances

	return nil
}

// memberRole returns the committee role of reviewer id; reviewers outside
// the committee (external reviewers) default to PC.
func (b *Builder) memberRole(id int) Role {
	if r, ok := b.reviewers[id]; ok {
		return r.Role
	}

	return RolePC
}

// isAC reports whether id is a known AC member.
func (b *Builder) isAC(id int) bool {
	r, ok := b.reviewers[id]

	return ok && r.Role == RoleAC
}

// checkPCCoverage enforces that every paper has at least one PC candidate.
func (b *Builder) checkPCCoverage() error {
	for _, p := range b.papers {
		if !lo.ContainsBy(b.byPaper[p], func(c Candidate) bool { return c.Role == RolePC }) {
			return fmt.Errorf("paper %d: %w", p, ErrNoPCReviewers)
		}
	}

	return nil
}

func compareKeys(x, y Pair) int {
	return cmp.Or(cmp.Compare(x.Paper, y.Paper), cmp.Compare(x.Reviewer, y.Reviewer))
}

func comparePairs(x, y Candidate) int { return compareKeys(x.Pair(), y.Pair()) }
