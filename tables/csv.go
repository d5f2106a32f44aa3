package tables

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// row is one data line addressed by header name.
type row struct {
	line   int
	cols   map[string]int
	fields []string
}

// str returns the trimmed cell of col, "" when the column is absent.
func (r row) str(col string) string {
	i, ok := r.cols[col]
	if !ok || i >= len(r.fields) {
		return ""
	}

	return strings.TrimSpace(r.fields[i])
}

func (r row) has(col string) bool {
	_, ok := r.cols[col]

	return ok
}

func (r row) int(col string) (int, error) {
	v, err := strconv.Atoi(r.str(col))
	if err != nil {
		return 0, r.malformed(col, err)
	}

	return v, nil
}

// intOr parses col, returning def for an empty or absent cell.
func (r row) intOr(col string, def int) (int, error) {
	if r.str(col) == "" {
		return def, nil
	}

	return r.int(col)
}

// float parses col; an empty or absent cell reads as NaN.
func (r row) float(col string) (float64, error) {
	s := r.str(col)
	if s == "" {
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, r.malformed(col, err)
	}

	return v, nil
}

func (r row) bool(col string) (bool, error) {
	switch strings.ToLower(r.str(col)) {
	case "", "0", "false", "no", "n":
		return false, nil
	case "1", "true", "yes", "y":
		return true, nil
	}

	return false, r.malformed(col, fmt.Errorf("not a boolean: %q", r.str(col)))
}

// ints parses a ';'-separated id list.
func (r row) ints(col string) ([]int, error) {
	s := r.str(col)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ";")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.Atoi(p)
		if err != nil {
			return nil, r.malformed(col, err)
		}
		out = append(out, v)
	}

	return out, nil
}

func (r row) malformed(col string, err error) error {
	return fmt.Errorf("line %d column %q: %v: %w", r.line, col, err, ErrMalformedRow)
}

// readRows decodes a headed CSV stream and calls fn for every data line.
// Columns listed in required must be present in the header.
func readRows(rd io.Reader, required []string, fn func(r row) error) error {
	cr := csv.NewReader(rd)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return fmt.Errorf("empty input, want columns %v: %w", required, ErrMissingColumn)
	}
	if err != nil {
		return fmt.Errorf("header: %v: %w", err, ErrMalformedRow)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	for _, c := range required {
		if _, ok := cols[c]; !ok {
			return fmt.Errorf("column %q: %w", c, ErrMissingColumn)
		}
	}

	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%v: %w", err, ErrMalformedRow)
		}
		line, _ := cr.FieldPos(0)
		if err := fn(row{line: line, cols: cols, fields: fields}); err != nil {
			return err
		}
	}
}
