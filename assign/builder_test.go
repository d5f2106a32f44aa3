package assign_test

import (
	"bytes"
	"log/slog"
	"math"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/revmatch/assign"
	"github.com/katalvlaran/revmatch/logging"
	"github.com/katalvlaran/revmatch/lpmodel"
)

// conference returns a two-paper instance. Reviewers 1 and 2 authored each
// other's target paper and bid highly on it, forming one bidding cycle.
func conference() assign.Tables {
	return assign.Tables{
		Papers: []int{100, 101},
		Reviewers: []assign.Reviewer{
			{ID: 1, Role: assign.RolePC, Seniority: 1, Region: "EU", ComputerScientist: true, Authored: []int{101}},
			{ID: 2, Role: assign.RolePC, Seniority: 2, Region: "NA", Authored: []int{100}},
			{ID: 3, Role: assign.RolePC, Seniority: 0, Region: "EU"},
			{ID: 4, Role: assign.RoleSPC, Seniority: 3, Region: "AS"},
			{ID: 5, Role: assign.RoleAC, Seniority: 3, Region: "EU"},
		},
		Candidates: []assign.Candidate{
			{Paper: 100, Reviewer: 1, Role: assign.RolePC, Score: 0.9, Bid: 5},
			{Paper: 100, Reviewer: 3, Role: assign.RolePC, Score: 0.5, Bid: 1},
			{Paper: 100, Reviewer: 4, Role: assign.RoleSPC, Score: 0.7, Bid: 1},
			{Paper: 100, Reviewer: 5, Role: assign.RoleAC, Score: 0.8, Bid: 1},
			{Paper: 101, Reviewer: 2, Role: assign.RolePC, Score: 0.6, Bid: 5},
			{Paper: 101, Reviewer: 3, Role: assign.RolePC, Score: math.NaN(), Bid: math.NaN()},
			{Paper: 101, Reviewer: 4, Role: assign.RoleSPC, Score: 0.3, Bid: 1},
			{Paper: 101, Reviewer: 5, Role: assign.RoleAC, Score: 0.2, Bid: 1},
		},
		Conflicts: []assign.Pair{{Paper: 100, Reviewer: 2}, {Paper: 101, Reviewer: 1}},
	}
}

func bufferLogger() (*bytes.Buffer, logging.Logger) {
	var buf bytes.Buffer
	h := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})

	return &buf, logging.NewSlog(slog.New(h))
}

func build(t *testing.T, cfg assign.Config, tb assign.Tables, opts ...assign.Option) *lpmodel.Model {
	t.Helper()

	b, err := assign.NewBuilder(cfg, tb, opts...)
	require.NoError(t, err)
	m, err := b.Build()
	require.NoError(t, err)

	return m
}

// row returns the equation terms as a name -> coefficient map.
func row(t *testing.T, m *lpmodel.Model, name string) (map[string]float64, lpmodel.Equation) {
	t.Helper()

	eq, ok := m.Equation(name)
	require.True(t, ok, "equation %s missing", name)
	out := make(map[string]float64, len(eq.Terms))
	for _, term := range eq.Terms {
		out[term.Var.Name()] = term.Coef
	}

	return out, eq
}

func writeLP(t *testing.T, m *lpmodel.Model) []byte {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, m.WriteLP(&buf))

	return buf.Bytes()
}

func TestBuild_MatchObjective(t *testing.T) {
	m := build(t, assign.DefaultConfig(), conference())

	coef, ok := m.ObjectiveCoef(lpmodel.Match(100, 1))
	require.True(t, ok)
	assert.InDelta(t, 0.9, coef, 1e-12)

	// Unscored pairs are declared but carry no weight.
	assert.True(t, m.Declared(lpmodel.Match(101, 3)))
	_, ok = m.ObjectiveCoef(lpmodel.Match(101, 3))
	assert.False(t, ok)

	// Conflicts never get a variable.
	assert.False(t, m.Declared(lpmodel.Match(100, 2)))
	assert.False(t, m.Declared(lpmodel.Match(101, 1)))
}

func TestBuild_Capacities(t *testing.T) {
	m := build(t, assign.DefaultConfig(), conference())

	terms, eq := row(t, m, "paper_capacity_PC_100")
	assert.Equal(t, map[string]float64{"x100_1": 1, "x100_3": 1}, terms)
	assert.Equal(t, lpmodel.EQ, eq.Op)
	assert.Equal(t, 3.0, eq.RHS)

	_, eq = row(t, m, "paper_capacity_SPC_101")
	assert.Equal(t, 1.0, eq.RHS)

	terms, eq = row(t, m, "reviewer_capacity_3_PC")
	assert.Equal(t, map[string]float64{"x100_3": 1, "x101_3": 1}, terms)
	assert.Equal(t, lpmodel.LE, eq.Op)
	assert.Equal(t, 6.0, eq.RHS)

	_, eq = row(t, m, "reviewer_capacity_5_AC")
	assert.Equal(t, 15.0, eq.RHS)

	_, ok := m.Equation("reviewer_minimum_3_PC")
	assert.False(t, ok)
}

func TestBuild_RelaxedAndMinimum(t *testing.T) {
	cfg := assign.DefaultConfig()
	cfg.RelaxPaperCapacity = true
	cfg.MinPapersPerReviewer = map[assign.Role]int{assign.RolePC: 1}

	m := build(t, cfg, conference())

	_, eq := row(t, m, "paper_capacity_PC_100")
	assert.Equal(t, lpmodel.LE, eq.Op)

	terms, eq := row(t, m, "reviewer_minimum_3_PC")
	assert.Equal(t, lpmodel.GE, eq.Op)
	assert.Equal(t, 1.0, eq.RHS)
	assert.Len(t, terms, 2)
}

func TestBuild_FixedRaisesCapacity(t *testing.T) {
	cfg := assign.DefaultConfig()
	cfg.MaxReviewsPerPaper[assign.RolePC] = 1
	tb := conference()
	tb.Fixed = []assign.Pair{{Paper: 100, Reviewer: 1}, {Paper: 100, Reviewer: 3}}

	buf, log := bufferLogger()
	m := build(t, cfg, tb, assign.WithLogger(log))

	_, eq := row(t, m, "paper_capacity_PC_100")
	assert.Equal(t, 2.0, eq.RHS, "capacity is raised to the number of fixed pairs")
	assert.Contains(t, buf.String(), "increasing capacity")

	_, eq = row(t, m, "fix_assigned_x100_1")
	assert.Equal(t, lpmodel.EQ, eq.Op)
	assert.Equal(t, 1.0, eq.RHS)
}

func TestBuild_FixedOutsideCandidates(t *testing.T) {
	tb := conference()
	// Reviewer 9 is an external reviewer; 3 is a member whose pair exists.
	tb.Fixed = []assign.Pair{{Paper: 101, Reviewer: 9}, {Paper: 100, Reviewer: 4}}

	m := build(t, assign.DefaultConfig(), tb)

	info, ok := m.Variable(lpmodel.Match(101, 9))
	require.True(t, ok, "fixed pair must have a decision variable")
	assert.Equal(t, lpmodel.Binary, info.Type)

	terms, _ := row(t, m, "paper_capacity_PC_101")
	assert.Contains(t, terms, "x101_9", "external reviewers count as PC")

	_, ok = m.Equation("fix_assigned_x101_9")
	assert.True(t, ok)
	_, ok = m.Equation("fix_assigned_x100_4")
	assert.True(t, ok)

	// Pins come after every other row.
	eqs := m.Equations()
	assert.Equal(t, "fix_assigned_x100_4", eqs[len(eqs)-2].Name)
	assert.Equal(t, "fix_assigned_x101_9", eqs[len(eqs)-1].Name)
}

func TestBuild_FixedAddsReviewerLoad(t *testing.T) {
	cfg := assign.DefaultConfig()
	cfg.MaxPapersPerReviewer[assign.RoleSPC] = 1
	tb := conference()
	tb.Papers = append(tb.Papers, 102)
	tb.Candidates = append(tb.Candidates, assign.Candidate{Paper: 102, Reviewer: 3, Role: assign.RolePC, Score: 0.1, Bid: 1})
	tb.Fixed = []assign.Pair{{Paper: 100, Reviewer: 4}, {Paper: 102, Reviewer: 4}}

	m := build(t, cfg, tb)

	terms, eq := row(t, m, "reviewer_capacity_4_SPC")
	assert.Contains(t, terms, "x102_4")
	assert.Equal(t, 2.0, eq.RHS)
}

func TestBuild_FixedRaisesPCCapacity(t *testing.T) {
	cfg := assign.DefaultConfig()
	cfg.MaxPapersPerReviewer[assign.RolePC] = 4

	tb := assign.Tables{
		Reviewers: []assign.Reviewer{
			{ID: 1, Role: assign.RolePC},
			{ID: 2, Role: assign.RolePC},
		},
	}
	for p := 1; p <= 5; p++ {
		tb.Candidates = append(tb.Candidates,
			assign.Candidate{Paper: p, Reviewer: 1, Score: 0.5, Bid: 1},
			assign.Candidate{Paper: p, Reviewer: 2, Score: 0.5, Bid: 1},
		)
		tb.Fixed = append(tb.Fixed, assign.Pair{Paper: p, Reviewer: 1})
	}

	buf, log := bufferLogger()
	m := build(t, cfg, tb, assign.WithLogger(log), assign.WithSoftConstraints(false))

	terms, eq := row(t, m, "reviewer_capacity_1_PC")
	assert.Len(t, terms, 5)
	assert.Equal(t, lpmodel.LE, eq.Op)
	assert.Equal(t, 5.0, eq.RHS)

	_, eq = row(t, m, "reviewer_capacity_2_PC")
	assert.Equal(t, 4.0, eq.RHS, "reviewers without fixed pairs keep the configured maximum")

	out := buf.String()
	assert.Contains(t, out, "reviewer matched to more papers than allowed, increasing capacity")
	assert.Contains(t, out, "reviewer=1")
	assert.Contains(t, out, "fixed=5")
	assert.Contains(t, out, "capacity=4")
}

func TestBuild_RejectedPapers(t *testing.T) {
	tb := conference()
	tb.Rejected = []int{100}
	tb.Fixed = []assign.Pair{{Paper: 100, Reviewer: 1}}

	m := build(t, assign.DefaultConfig(), tb)

	_, eq := row(t, m, "paper_capacity_PC_100")
	assert.Equal(t, 1.0, eq.RHS, "rejected paper keeps only its fixed reviewer")
	_, eq = row(t, m, "paper_capacity_SPC_100")
	assert.Equal(t, 0.0, eq.RHS)
	_, eq = row(t, m, "paper_capacity_PC_101")
	assert.Equal(t, 3.0, eq.RHS)
}

func TestBuild_NoPCReviewers(t *testing.T) {
	tb := conference()
	tb.Candidates = append(tb.Candidates, assign.Candidate{Paper: 102, Reviewer: 4, Role: assign.RoleSPC, Score: 1, Bid: 1})

	b, err := assign.NewBuilder(assign.DefaultConfig(), tb)
	require.NoError(t, err)
	_, err = b.Build()
	require.ErrorIs(t, err, assign.ErrNoPCReviewers)
	assert.Contains(t, err.Error(), "paper 102")

	// A listed paper without any candidate fails the same way.
	tb = conference()
	tb.Papers = append(tb.Papers, 103)
	b, err = assign.NewBuilder(assign.DefaultConfig(), tb)
	require.NoError(t, err)
	_, err = b.Build()
	require.ErrorIs(t, err, assign.ErrNoPCReviewers)
}

func TestNewBuilder_Errors(t *testing.T) {
	tb := conference()
	tb.Fixed = []assign.Pair{{Paper: 100, Reviewer: 2}}
	_, err := assign.NewBuilder(assign.DefaultConfig(), tb)
	assert.ErrorIs(t, err, assign.ErrFixedConflict)

	tb = conference()
	tb.Candidates = nil
	_, err = assign.NewBuilder(assign.DefaultConfig(), tb)
	assert.ErrorIs(t, err, assign.ErrNoCandidates)

	tb = conference()
	tb.Reviewers[0].Role = "chair"
	_, err = assign.NewBuilder(assign.DefaultConfig(), tb)
	assert.ErrorIs(t, err, assign.ErrUnknownRole)

	cfg := assign.DefaultConfig()
	delete(cfg.MaxReviewsPerPaper, assign.RoleAC)
	b, err := assign.NewBuilder(cfg, conference())
	require.NoError(t, err)
	_, err = b.Build()
	assert.ErrorIs(t, err, assign.ErrMissingCapacity)

	cfg = assign.DefaultConfig()
	cfg.CSReward = -1
	_, err = assign.NewBuilder(cfg, conference())
	assert.ErrorIs(t, err, assign.ErrInvalidConfig)
}

func TestBuild_ComputerScience(t *testing.T) {
	m := build(t, assign.DefaultConfig(), conference())

	terms, eq := row(t, m, "cs_sum_over_cs_100")
	assert.Equal(t, map[string]float64{"x100_1": 1, "cs_100": -1}, terms)
	assert.Equal(t, lpmodel.GE, eq.Op)

	terms, _ = row(t, m, "cs_sum_over_cs_101")
	assert.Equal(t, map[string]float64{"cs_101": -1}, terms)

	_, eq = row(t, m, "cs_expertise_101")
	assert.Equal(t, lpmodel.LE, eq.Op)
	assert.Equal(t, 1.0, eq.RHS)

	coef, _ := m.ObjectiveCoef(lpmodel.CS(100))
	assert.Equal(t, 10.0, coef)
}

func TestBuild_Seniority(t *testing.T) {
	m := build(t, assign.DefaultConfig(), conference())

	// Reviewer 3 has seniority 0 and drops out of the row.
	terms, eq := row(t, m, "sen_slack_100")
	assert.Equal(t, map[string]float64{"x100_1": -1, "sen_slack_100": 1}, terms)
	assert.Equal(t, lpmodel.LE, eq.Op)
	assert.Equal(t, 0.0, eq.RHS)

	info, ok := m.Variable(lpmodel.SeniorSlack(100))
	require.True(t, ok)
	assert.Equal(t, lpmodel.General, info.Type)
	assert.Equal(t, 0.0, info.Lower)
	assert.Equal(t, 3.0, info.Upper)

	coef, _ := m.ObjectiveCoef(lpmodel.SeniorSlack(100))
	assert.Equal(t, 1.0, coef)
}

func TestBuild_Regions(t *testing.T) {
	b, err := assign.NewBuilder(assign.DefaultConfig(), conference())
	require.NoError(t, err)
	m, err := b.Build()
	require.NoError(t, err)

	require.Equal(t, []string{"AS", "EU", "NA"}, b.Regions())

	terms, _ := row(t, m, "region_100")
	assert.Equal(t, map[string]float64{
		"region100": 1, "region100_0": -1, "region100_1": -1, "region100_2": -1,
	}, terms)

	// The AC member from EU does not count.
	terms, _ = row(t, m, "region_100_1")
	assert.Equal(t, map[string]float64{"region100_1": 1, "x100_1": -1, "x100_3": -1}, terms)

	terms, _ = row(t, m, "region_100_2")
	assert.Equal(t, map[string]float64{"region100_2": 1}, terms)

	info, _ := m.Variable(lpmodel.RegionGroup(100, 1))
	assert.Equal(t, 1.0, info.Upper)

	coef, _ := m.ObjectiveCoef(lpmodel.Region(101))
	assert.Equal(t, 1.0, coef)
}

func TestBuild_RegionsAreFreeText(t *testing.T) {
	tb := conference()
	tb.Reviewers[0].Region = "日本"
	tb.Reviewers[1].Region = "中国"
	tb.Reviewers[2].Region = "N.A."
	tb.Reviewers[3].Region = "NA"

	buf, log := bufferLogger()
	b, err := assign.NewBuilder(assign.DefaultConfig(), tb, assign.WithLogger(log))
	require.NoError(t, err)
	m, err := b.Build()
	require.NoError(t, err)

	regions := b.Regions()
	require.Equal(t, []string{"N.A.", "NA", "中国", "日本"}, regions)

	// Every region gets its own variable on every paper.
	names := make(map[string]bool)
	for k := range regions {
		v := lpmodel.RegionGroup(100, k)
		require.True(t, m.Declared(v))
		names[v.Name()] = true
	}
	assert.Len(t, names, len(regions))

	// Reviewer 1 (日本, index 3) and reviewer 3 (N.A., index 0) stay apart.
	terms, _ := row(t, m, "region_100_3")
	assert.Equal(t, map[string]float64{"region100_3": 1, "x100_1": -1}, terms)
	terms, _ = row(t, m, "region_100_0")
	assert.Equal(t, map[string]float64{"region100_0": 1, "x100_3": -1}, terms)

	assert.Contains(t, buf.String(), "region=日本")
	require.NoError(t, m.WriteLP(&bytes.Buffer{}))
}

func TestBuild_BiddingCycles(t *testing.T) {
	b, err := assign.NewBuilder(assign.DefaultConfig(), conference())
	require.NoError(t, err)
	m, err := b.Build()
	require.NoError(t, err)

	want := []assign.BiddingCycle{{R1: 1, R2: 2, P1: 100, P2: 101}}
	if diff := cmp.Diff(want, b.BiddingCycles()); diff != "" {
		t.Fatalf("cycles mismatch (-want +got):\n%s", diff)
	}

	terms, eq := row(t, m, "cycle_ip101_jp2_i100_j1")
	assert.Equal(t, map[string]float64{"cycle1_2": 1, "x100_1": -1, "x101_2": -1}, terms)
	assert.Equal(t, lpmodel.GE, eq.Op)
	assert.Equal(t, -1.0, eq.RHS)

	coef, _ := m.ObjectiveCoef(lpmodel.Cycle(1, 2))
	assert.Equal(t, -5.0, coef)
}

func TestBuild_PaperDistribution(t *testing.T) {
	cfg := assign.DefaultConfig()
	cfg.PaperDistributionPenalties = map[assign.Role]map[int]float64{
		assign.RolePC: {2: 1, 1: 0.5},
	}
	m := build(t, cfg, conference())

	terms, eq := row(t, m, "paper_dist3_1")
	assert.Equal(t, map[string]float64{"x100_3": 1, "x101_3": 1, "paper_dist3_1": -1}, terms)
	assert.Equal(t, lpmodel.LE, eq.Op)
	assert.Equal(t, 1.0, eq.RHS)

	coef, _ := m.ObjectiveCoef(lpmodel.DistSlack(3, 1))
	assert.Equal(t, -0.5, coef)
	coef, _ = m.ObjectiveCoef(lpmodel.DistSlack(3, 2))
	assert.Equal(t, -1.0, coef)

	// Breakpoints are written in ascending order.
	names := make([]string, 0)
	for _, eq := range m.Equations() {
		if eq.Name == "paper_dist1_1" || eq.Name == "paper_dist1_2" {
			names = append(names, eq.Name)
		}
	}
	assert.Equal(t, []string{"paper_dist1_1", "paper_dist1_2"}, names)

	_, ok := m.Equation("paper_dist4_1")
	assert.False(t, ok, "SPC has no breakpoints configured")
}

func TestBuild_CoReviewsAndDistances(t *testing.T) {
	tb := conference()
	tb.Distances = []assign.Distance{{A: 1, B: 3, Distance: 0}, {A: 3, B: 2, Distance: 1}, {A: 4, B: 1, Distance: 0}, {A: 5, B: 1, Distance: 0}}
	tb.CoReviews = assign.DeriveCoReviews(tb)

	m := build(t, assign.DefaultConfig(), tb)

	terms, eq := row(t, m, "coreview_100_1_3")
	assert.Equal(t, map[string]float64{"coreview1_3": 1, "x100_1": -1, "x100_3": -1}, terms)
	assert.Equal(t, lpmodel.GE, eq.Op)
	assert.Equal(t, -1.0, eq.RHS)

	info, _ := m.Variable(lpmodel.CoReview(1, 3))
	assert.Equal(t, lpmodel.General, info.Type)
	assert.Equal(t, 1.0, info.Upper)

	coef, _ := m.ObjectiveCoef(lpmodel.CoReview(1, 3))
	assert.Equal(t, -1.0, coef)
	coef, _ = m.ObjectiveCoef(lpmodel.CoReview(2, 3))
	assert.Equal(t, -0.5, coef)
	assert.False(t, m.Declared(lpmodel.CoReview(1, 5)), "AC pairs are never co-review indicators")
}

func TestBuild_DegradedInputsAreLogged(t *testing.T) {
	buf, log := bufferLogger()
	m := build(t, assign.DefaultConfig(), conference(), assign.WithLogger(log))

	out := buf.String()
	assert.Contains(t, out, "skipping co-review constraints")
	assert.Contains(t, out, "cannot construct co-author distance penalties")
	assert.Contains(t, out, "no fixed assignments supplied")
	assert.Contains(t, out, "no rejected papers supplied")

	for _, eq := range m.Equations() {
		assert.NotContains(t, eq.Name, "coreview_")
		assert.NotContains(t, eq.Name, "fix_assigned_")
	}
}

func TestBuild_SoftConstraintsOff(t *testing.T) {
	tb := conference()
	tb.Fixed = []assign.Pair{{Paper: 100, Reviewer: 1}}

	m := build(t, assign.DefaultConfig(), tb, assign.WithSoftConstraints(false))

	_, ok := m.Equation("sen_slack_100")
	assert.False(t, ok)
	_, ok = m.Equation("region_100")
	assert.False(t, ok)
	_, ok = m.Equation("cs_expertise_100")
	assert.True(t, ok)
	_, ok = m.Equation("fix_assigned_x100_1")
	assert.True(t, ok)
}

func TestBuild_Deterministic(t *testing.T) {
	cfg := assign.DefaultConfig()
	cfg.PaperDistributionPenalties = map[assign.Role]map[int]float64{assign.RolePC: {1: 1, 2: 2}}

	tb := conference()
	tb.Distances = []assign.Distance{{A: 1, B: 3, Distance: 0}, {A: 2, B: 3, Distance: 1}}
	tb.CoReviews = assign.DeriveCoReviews(tb)
	tb.Fixed = []assign.Pair{{Paper: 101, Reviewer: 9}, {Paper: 100, Reviewer: 1}}
	first := writeLP(t, build(t, cfg, tb, assign.WithModelName("det")))

	// Same tables in reverse order.
	shuffled := conference()
	slices.Reverse(shuffled.Reviewers)
	slices.Reverse(shuffled.Candidates)
	slices.Reverse(shuffled.Conflicts)
	shuffled.Distances = []assign.Distance{{A: 3, B: 2, Distance: 1}, {A: 3, B: 1, Distance: 0}}
	shuffled.CoReviews = assign.DeriveCoReviews(shuffled)
	slices.Reverse(shuffled.CoReviews)
	shuffled.Fixed = []assign.Pair{{Paper: 100, Reviewer: 1}, {Paper: 101, Reviewer: 9}}

	for i := 0; i < 3; i++ {
		got := writeLP(t, build(t, cfg, shuffled, assign.WithModelName("det")))
		require.Equal(t, string(first), string(got))
	}
}

func TestWithLogger_PanicsOnNil(t *testing.T) {
	assert.Panics(t, func() { assign.WithLogger(nil) })
}
