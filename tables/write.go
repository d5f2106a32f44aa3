package tables

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/katalvlaran/revmatch/ttc"
)

// actionSuffix turns a review type into an assignment action ("meta" ->
// "metareview").
const actionSuffix = "review"

// clearAction is the action of a clear record.
const clearAction = "clear" + actionSuffix

// WriteRecords writes trade records in bulk-assignment form:
//
//	paper,action,reviewer,round,bid,oldbid
//
// Clear records use the action "clearreview"; assign records use
// "<review type>review".
func WriteRecords(w io.Writer, records []ttc.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"paper", "action", "reviewer", "round", "bid", "oldbid"}); err != nil {
		return fmt.Errorf("records: %w", err)
	}
	for _, r := range records {
		action := clearAction
		if r.Action == ttc.ActionAssign {
			action = r.ReviewType + actionSuffix
		}
		rec := []string{
			strconv.Itoa(r.Paper),
			action,
			strconv.Itoa(r.Reviewer),
			r.Round,
			formatFloat(r.NewBid),
			formatFloat(r.OldBid),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("records: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("records: %w", err)
	}

	return nil
}

// WriteAssignment writes holdings as paper,reviewer,action; ReadHoldings
// reads the result back.
func WriteAssignment(w io.Writer, holdings []ttc.Holding) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"paper", "reviewer", "action"}); err != nil {
		return fmt.Errorf("assignment: %w", err)
	}
	for _, h := range holdings {
		rec := []string{strconv.Itoa(h.Paper), strconv.Itoa(h.Reviewer), h.ReviewType + actionSuffix}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("assignment: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("assignment: %w", err)
	}

	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
