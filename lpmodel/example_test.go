package lpmodel_test

import (
	"fmt"
	"os"

	"github.com/katalvlaran/revmatch/lpmodel"
)

// ExampleModel_WriteLP builds a two-reviewer capacity row and prints it in
// CPLEX LP format.
func ExampleModel_WriteLP() {
	m := lpmodel.New("example")
	x1, x2 := lpmodel.Match(10, 1), lpmodel.Match(10, 2)
	_ = m.Declare(x1, lpmodel.Binary)
	_ = m.Declare(x2, lpmodel.Binary)
	_ = m.AddObjective(x1, 0.9)
	_ = m.AddObjective(x2, 0.4)
	_ = m.AddEquation("paper_capacity_PC_10", []lpmodel.Term{lpmodel.T(x1, 1), lpmodel.T(x2, 1)}, lpmodel.EQ, 1)

	if err := m.WriteLP(os.Stdout); err != nil {
		fmt.Println("error:", err)
	}

	// Output:
	// \ example
	// Maximize
	//  obj: 0.9 x10_1 + 0.4 x10_2
	// Subject To
	//  paper_capacity_PC_10: x10_1 + x10_2 = 1
	// Binary
	//  x10_1
	//  x10_2
	// End
}
