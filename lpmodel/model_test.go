package lpmodel_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/revmatch/lpmodel"
)

func TestVarName_Canonical(t *testing.T) {
	cases := []struct {
		v    lpmodel.Var
		want string
	}{
		{lpmodel.Match(12, 7), "x12_7"},
		{lpmodel.CS(4), "cs_4"},
		{lpmodel.CoReview(3, 9), "coreview3_9"},
		{lpmodel.Region(5), "region5"},
		{lpmodel.RegionGroup(5, 0), "region5_0"},
		{lpmodel.RegionGroup(5, 12), "region5_12"},
		{lpmodel.SeniorSlack(8), "sen_slack_8"},
		{lpmodel.Cycle(1, 2), "cycle1_2"},
		{lpmodel.DistSlack(6, 4), "paper_dist6_4"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.v.Name(), "kind %s", tc.v.Kind)
	}
}

func TestDeclare_IdempotentAndConflict(t *testing.T) {
	m := lpmodel.New("t")
	x := lpmodel.Match(1, 2)

	require.NoError(t, m.Declare(x, lpmodel.Binary))
	require.NoError(t, m.Declare(x, lpmodel.Binary))
	assert.Equal(t, 1, m.Stats().Variables)

	err := m.Declare(x, lpmodel.General)
	assert.True(t, errors.Is(err, lpmodel.ErrTypeConflict))

	info, ok := m.Variable(x)
	require.True(t, ok)
	assert.Equal(t, lpmodel.Binary, info.Type)
	assert.Equal(t, 0.0, info.Lower)
	assert.Equal(t, 1.0, info.Upper)
	assert.False(t, info.Bounded)
}

func TestSetBounds(t *testing.T) {
	m := lpmodel.New("t")
	s := lpmodel.SeniorSlack(1)

	assert.ErrorIs(t, m.SetBounds(s, 0, 1), lpmodel.ErrUndeclaredVariable)
	require.NoError(t, m.Declare(s, lpmodel.General))
	assert.ErrorIs(t, m.SetBounds(s, 3, 1), lpmodel.ErrInvalidBounds)
	assert.ErrorIs(t, m.SetBounds(s, math.NaN(), 1), lpmodel.ErrInvalidBounds)
	require.NoError(t, m.SetBounds(s, 1, 3))

	info, _ := m.Variable(s)
	assert.True(t, info.Bounded)
	assert.Equal(t, 1.0, info.Lower)
	assert.Equal(t, 3.0, info.Upper)
}

func TestAddEquation_Validation(t *testing.T) {
	m := lpmodel.New("t")
	x, y := lpmodel.Match(1, 1), lpmodel.Match(1, 2)
	require.NoError(t, m.Declare(x, lpmodel.Binary))

	err := m.AddEquation("e", []lpmodel.Term{lpmodel.T(y, 1)}, lpmodel.LE, 1)
	assert.ErrorIs(t, err, lpmodel.ErrUndeclaredVariable)

	err = m.AddEquation("e", nil, lpmodel.LE, 1)
	assert.ErrorIs(t, err, lpmodel.ErrEmptyEquation)

	err = m.AddEquation("e", []lpmodel.Term{lpmodel.T(x, math.Inf(1))}, lpmodel.LE, 1)
	assert.ErrorIs(t, err, lpmodel.ErrInvalidCoefficient)

	err = m.AddEquation("e", []lpmodel.Term{lpmodel.T(x, 1)}, lpmodel.LE, math.NaN())
	assert.ErrorIs(t, err, lpmodel.ErrInvalidCoefficient)

	require.NoError(t, m.AddEquation("e", []lpmodel.Term{lpmodel.T(x, 1)}, lpmodel.LE, 1))
	err = m.AddEquation("e", []lpmodel.Term{lpmodel.T(x, 1)}, lpmodel.GE, 0)
	assert.ErrorIs(t, err, lpmodel.ErrDuplicateEquation)

	assert.Equal(t, 1, m.Stats().Equations)
}

func TestAddEquation_MergesTerms(t *testing.T) {
	m := lpmodel.New("t")
	x, y := lpmodel.Match(1, 1), lpmodel.Match(1, 2)
	require.NoError(t, m.Declare(x, lpmodel.Binary))
	require.NoError(t, m.Declare(y, lpmodel.Binary))

	terms := []lpmodel.Term{lpmodel.T(x, 1), lpmodel.T(y, 0), lpmodel.T(x, 2)}
	require.NoError(t, m.AddEquation("merge", terms, lpmodel.EQ, 3))

	eq, ok := m.Equation("merge")
	require.True(t, ok)
	assert.Equal(t, []lpmodel.Term{lpmodel.T(x, 3)}, eq.Terms)

	// Cancelling terms leave nothing behind.
	err := m.AddEquation("cancel", []lpmodel.Term{lpmodel.T(x, 1), lpmodel.T(x, -1)}, lpmodel.EQ, 0)
	assert.ErrorIs(t, err, lpmodel.ErrEmptyEquation)
}

func TestAddObjective_Accumulates(t *testing.T) {
	m := lpmodel.New("t")
	c := lpmodel.Cycle(1, 2)

	assert.ErrorIs(t, m.AddObjective(c, -1), lpmodel.ErrUndeclaredVariable)
	require.NoError(t, m.Declare(c, lpmodel.General))
	require.NoError(t, m.AddObjective(c, -1.5))
	require.NoError(t, m.AddObjective(c, -1.5))

	got, ok := m.ObjectiveCoef(c)
	require.True(t, ok)
	assert.Equal(t, -3.0, got)
	assert.Equal(t, 1, m.Stats().ObjectiveTerms)
}

func TestEquationsAreCopies(t *testing.T) {
	m := lpmodel.New("t")
	x := lpmodel.Match(1, 1)
	require.NoError(t, m.Declare(x, lpmodel.Binary))
	require.NoError(t, m.AddEquation("e", []lpmodel.Term{lpmodel.T(x, 1)}, lpmodel.LE, 1))

	eqs := m.Equations()
	eqs[0].Terms[0].Coef = 99

	eq, _ := m.Equation("e")
	assert.Equal(t, 1.0, eq.Terms[0].Coef)
}

func TestStats(t *testing.T) {
	m := lpmodel.New("t")
	require.NoError(t, m.Declare(lpmodel.Match(1, 1), lpmodel.Binary))
	require.NoError(t, m.Declare(lpmodel.SeniorSlack(1), lpmodel.General))
	require.NoError(t, m.Declare(lpmodel.Region(1), lpmodel.Continuous))
	require.NoError(t, m.AddObjective(lpmodel.Region(1), 1))

	assert.Equal(t, lpmodel.Stats{
		Variables:      3,
		Binary:         1,
		General:        1,
		Continuous:     1,
		ObjectiveTerms: 1,
	}, m.Stats())
}
