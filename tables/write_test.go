package tables_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/revmatch/logging"
	"github.com/katalvlaran/revmatch/tables"
	"github.com/katalvlaran/revmatch/ttc"
)

func TestWriteRecords(t *testing.T) {
	records := []ttc.Record{
		{Paper: 10, Action: ttc.ActionClear, Reviewer: 1, ReviewType: "meta", Round: "any", NewBid: 2, OldBid: 2},
		{Paper: 10, Action: ttc.ActionAssign, Reviewer: 3, ReviewType: "meta", Round: "final", NewBid: 9, OldBid: 2.5},
	}

	var buf bytes.Buffer
	require.NoError(t, tables.WriteRecords(&buf, records))
	assert.Equal(t,
		"paper,action,reviewer,round,bid,oldbid\n"+
			"10,clearreview,1,any,2,2\n"+
			"10,metareview,3,final,9,2.5\n",
		buf.String())
}

func TestWriteAssignment_RoundTrip(t *testing.T) {
	holdings := []ttc.Holding{
		{Paper: 10, Reviewer: 3, ReviewType: "meta"},
		{Paper: 20, Reviewer: 1, ReviewType: "primary"},
	}

	var buf bytes.Buffer
	require.NoError(t, tables.WriteAssignment(&buf, holdings))
	got, err := tables.ReadHoldings(&buf)
	require.NoError(t, err)
	assert.Equal(t, holdings, got)
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600))
	}
	write("reviewers.csv", "id,role,seniority,region,is_cs,authored\n1,PC,1,EU,1,\n2,AC,3,NA,0,\n")
	write("candidates.csv", "paper,reviewer,score,bid\n10,1,0.5,2\n10,2,0.4,1\n")
	write("conflicts.csv", "paper,reviewer\n11,1\n")
	write("rejected.csv", "paper\n")

	tb, err := tables.LoadDir(dir, tables.DefaultLayout(), logging.NewNop())
	require.NoError(t, err)

	assert.Len(t, tb.Reviewers, 2)
	assert.Len(t, tb.Candidates, 2)
	assert.Len(t, tb.Conflicts, 1)
	assert.NotNil(t, tb.Rejected)
	assert.Nil(t, tb.Fixed)
	assert.Nil(t, tb.Distances)
	assert.Nil(t, tb.CoReviews)
	assert.Nil(t, tb.Papers)
}

func TestLoadDir_Errors(t *testing.T) {
	dir := t.TempDir()
	_, err := tables.LoadDir(dir, tables.DefaultLayout(), nil)
	assert.ErrorIs(t, err, os.ErrNotExist, "reviewers are required")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "reviewers.csv"), []byte("id,role\n1,PC\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "candidates.csv"), []byte("paper,reviewer\n1,1\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fixed.csv"), []byte("paper\n1\n"), 0o600))

	_, err = tables.LoadDir(dir, tables.DefaultLayout(), nil)
	require.ErrorIs(t, err, tables.ErrMissingColumn)
	assert.Contains(t, err.Error(), "fixed.csv")
}
