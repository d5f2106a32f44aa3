package lpmodel

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
)

// termsPerLine wraps long rows; CPLEX readers limit line length.
const termsPerLine = 8

// WriteLP renders the model in CPLEX LP format and seals it.
//
// Layout:
//
//	\ <name>
//	Maximize
//	 obj: ...
//	Subject To
//	 <eq>: ... <= rhs
//	Bounds
//	 0 <= region3_0 <= 1
//	General
//	 sen_slack_3
//	Binary
//	 x3_7
//	End
//
// Bounds, General and Binary sections are omitted when empty. Two distinct
// variables rendering to the same name (possible only with hand-built Var
// values) yield ErrNameCollision and nothing is sealed.
func (m *Model) WriteLP(w io.Writer) error {
	if err := m.checkNames(); err != nil {
		return err
	}

	bw := bufio.NewWriter(w)

	// 1) Header and objective.
	if m.name != "" {
		fmt.Fprintf(bw, "\\ %s\n", m.name)
	}
	bw.WriteString(m.sense.String())
	bw.WriteString("\n obj:")
	objTerms := make([]Term, 0, len(m.objOrder))
	for _, v := range m.objOrder {
		if c := m.obj[v]; c != 0 {
			objTerms = append(objTerms, Term{Var: v, Coef: c})
		}
	}
	writeExpr(bw, objTerms)
	bw.WriteString("\n")

	// 2) Constraints.
	bw.WriteString("Subject To\n")
	for _, eq := range m.eqs {
		fmt.Fprintf(bw, " %s:", eq.Name)
		writeExpr(bw, eq.Terms)
		fmt.Fprintf(bw, " %s %s\n", eq.Op, formatNum(eq.RHS))
	}

	// 3) Explicit bounds.
	var general, binary []string
	headerDone := false
	for _, v := range m.order {
		info := m.vars[v]
		switch info.Type {
		case General:
			general = append(general, v.Name())
		case Binary:
			binary = append(binary, v.Name())
		}
		if !info.Bounded {
			continue
		}
		if !headerDone {
			bw.WriteString("Bounds\n")
			headerDone = true
		}
		writeBound(bw, v.Name(), info.Lower, info.Upper)
	}

	// 4) Integrality sections.
	writeSection(bw, "General", general)
	writeSection(bw, "Binary", binary)
	bw.WriteString("End\n")

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("lpmodel: write: %w", err)
	}
	m.sealed = true

	return nil
}

// checkNames verifies that canonical names are unique across the registry.
func (m *Model) checkNames() error {
	seen := make(map[string]Var, len(m.order))
	for _, v := range m.order {
		name := v.Name()
		if prev, ok := seen[name]; ok {
			return fmt.Errorf("%q used by %+v and %+v: %w", name, prev, v, ErrNameCollision)
		}
		seen[name] = v
	}

	return nil
}

func writeExpr(bw *bufio.Writer, terms []Term) {
	for i, t := range terms {
		if i > 0 && i%termsPerLine == 0 {
			bw.WriteString("\n  ")
		}
		switch {
		case t.Coef < 0:
			bw.WriteString(" -")
		case i > 0:
			bw.WriteString(" +")
		}
		if abs := math.Abs(t.Coef); abs != 1 {
			bw.WriteString(" ")
			bw.WriteString(formatNum(abs))
		}
		bw.WriteString(" ")
		bw.WriteString(t.Var.Name())
	}
}

func writeBound(bw *bufio.Writer, name string, lower, upper float64) {
	switch {
	case lower == upper:
		fmt.Fprintf(bw, " %s = %s\n", name, formatNum(lower))
	case math.IsInf(lower, -1) && math.IsInf(upper, 1):
		fmt.Fprintf(bw, " %s free\n", name)
	case math.IsInf(upper, 1):
		fmt.Fprintf(bw, " %s >= %s\n", name, formatNum(lower))
	case math.IsInf(lower, -1):
		fmt.Fprintf(bw, " -inf <= %s <= %s\n", name, formatNum(upper))
	default:
		fmt.Fprintf(bw, " %s <= %s <= %s\n", formatNum(lower), name, formatNum(upper))
	}
}

func writeSection(bw *bufio.Writer, header string, names []string) {
	if len(names) == 0 {
		return
	}
	bw.WriteString(header)
	bw.WriteString("\n")
	for _, n := range names {
		bw.WriteString(" ")
		bw.WriteString(n)
		bw.WriteString("\n")
	}
}

func formatNum(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
