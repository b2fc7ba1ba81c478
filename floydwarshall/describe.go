// Package floydwarshall: human-readable status lines for recorded steps.
package floydwarshall

import (
	"fmt"
	"strconv"

	"github.com/katalvlaran/fwviz/matrix"
)

// Describe renders the status line a viewer shows for step s. Vertex indices
// are translated through idx; an index idx does not know is printed as a number.
func Describe(s Step, idx *Index) string {
	switch s.Kind {
	case StepInit:
		return "Initializing distance matrix"
	case StepProcessing:
		i, k, j := label(idx, s.I), label(idx, s.K), label(idx, s.J)
		return fmt.Sprintf("Checking if path %s → %s → %s is shorter than direct path %s → %s", i, k, j, i, j)
	case StepUpdate:
		return fmt.Sprintf("Found shorter path from %s to %s through %s! New distance: %s",
			label(idx, s.I), label(idx, s.J), label(idx, s.K), matrix.FormatDistance(s.NewDistance))
	case StepFinal:
		return "Algorithm complete! All shortest paths found."
	default:
		return ""
	}
}

func label(idx *Index, i int) string {
	if idx != nil {
		if id := idx.ID(i); id != "" {
			return id
		}
	}

	return strconv.Itoa(i)
}
