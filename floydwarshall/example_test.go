package floydwarshall_test

import (
	"fmt"

	"github.com/katalvlaran/fwviz/core"
	"github.com/katalvlaran/fwviz/floydwarshall"
)

// ExampleRun records a run over a graph with a negative edge and prints the
// shortest A→C route, the trace size and every update the run performed.
func ExampleRun() {
	nodes := []core.Node{{ID: "A"}, {ID: "B"}, {ID: "C"}}
	edges := []core.Edge{
		{Source: "A", Target: "B", Weight: 6},
		{Source: "B", Target: "C", Weight: -3},
		{Source: "C", Target: "A", Weight: 2},
		{Source: "A", Target: "C", Weight: 4},
	}

	res, err := floydwarshall.Run(nodes, edges, floydwarshall.WithEndpoints("A", "C"))
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	d, _ := res.Distance("A", "C")
	fmt.Printf("A→C = %v via %v\n", d, res.Trace.Final().Path)
	_, updates := res.Trace.Counts()
	fmt.Printf("steps=%d updates=%d\n", res.Trace.Len(), updates)
	for _, s := range res.Trace.Steps() {
		if s.Kind == floydwarshall.StepUpdate {
			fmt.Println(floydwarshall.Describe(s, res.Index))
		}
	}
	// Output:
	// A→C = 3 via [A B C]
	// steps=32 updates=3
	// Found shorter path from C to B through A! New distance: 8
	// Found shorter path from A to C through B! New distance: 3
	// Found shorter path from B to A through C! New distance: -1
}
