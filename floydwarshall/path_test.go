package floydwarshall_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/fwviz/core"
	"github.com/katalvlaran/fwviz/floydwarshall"
	"github.com/katalvlaran/fwviz/matrix"
)

// twoByTwo returns an index over A,B with dist A→B = 1 and an empty next grid.
func twoByTwo(t *testing.T) (*floydwarshall.Index, *matrix.Dense, *matrix.NextHop) {
	t.Helper()
	idx, err := floydwarshall.NewIndex([]string{"A", "B"})
	require.NoError(t, err)
	dist, err := matrix.FromRows([][]float64{{0, 1}, {math.Inf(1), 0}})
	require.NoError(t, err)
	next, err := matrix.NewNextHop(2)
	require.NoError(t, err)

	return idx, dist, next
}

func TestReconstruct_UnknownEndpoints(t *testing.T) {
	idx, dist, next := twoByTwo(t)
	require.NoError(t, next.Set(0, 1, "B"))

	assert.Empty(t, floydwarshall.Reconstruct("A", "Z", idx, dist, next))
	assert.Empty(t, floydwarshall.Reconstruct("Z", "B", idx, dist, next))
	assert.Equal(t, []string{"A", "B"}, floydwarshall.Reconstruct("A", "B", idx, dist, next))
	assert.NotNil(t, floydwarshall.Reconstruct("", "", nil, nil, nil))
}

func TestReconstruct_NoNextHop(t *testing.T) {
	idx, dist, next := twoByTwo(t)
	assert.Empty(t, floydwarshall.Reconstruct("A", "B", idx, dist, next))
	assert.Empty(t, floydwarshall.Reconstruct("A", "A", idx, dist, next), "no hop on the diagonal means no path")
}

// TestReconstruct_CorruptedCycleTerminates: next[A][B] = A loops forever
// without the hop cap.
func TestReconstruct_CorruptedCycleTerminates(t *testing.T) {
	idx, dist, next := twoByTwo(t)
	require.NoError(t, next.Set(0, 1, "A"))

	assert.Empty(t, floydwarshall.Reconstruct("A", "B", idx, dist, next))
}

func TestReconstruct_DanglingHop(t *testing.T) {
	idx, dist, next := twoByTwo(t)
	require.NoError(t, next.Set(0, 1, "Z"))

	assert.Empty(t, floydwarshall.Reconstruct("A", "B", idx, dist, next))
}

func TestReconstruct_UnreachableDistanceWins(t *testing.T) {
	idx, dist, next := twoByTwo(t)
	require.NoError(t, next.Set(1, 0, "A")) // stale hop, distance still +Inf

	assert.Empty(t, floydwarshall.Reconstruct("B", "A", idx, dist, next))
}

func TestPathCost(t *testing.T) {
	edges := []core.Edge{
		{Source: "A", Target: "B", Weight: 6},
		{Source: "B", Target: "C", Weight: -3},
	}

	c, ok := floydwarshall.PathCost([]string{"A", "B", "C"}, edges)
	assert.True(t, ok)
	assert.Equal(t, 3.0, c)

	c, ok = floydwarshall.PathCost([]string{"A"}, edges)
	assert.True(t, ok)
	assert.Zero(t, c)

	_, ok = floydwarshall.PathCost([]string{"C", "A"}, edges)
	assert.False(t, ok)
}

func TestIndex(t *testing.T) {
	idx, err := floydwarshall.NewIndex([]string{"X", "Y"})
	require.NoError(t, err)

	i, ok := idx.Of("Y")
	assert.True(t, ok)
	assert.Equal(t, 1, i)
	assert.Equal(t, "X", idx.ID(0))
	assert.Equal(t, "", idx.ID(5))
	assert.Equal(t, 2, idx.Len())

	ids := idx.IDs()
	ids[0] = "mutated"
	assert.Equal(t, "X", idx.ID(0), "IDs returns a copy")
}

func TestDescribe(t *testing.T) {
	res, _ := presetRun(t, core.PresetNegative)
	idx := res.Index

	first, _ := res.Trace.At(0)
	assert.Equal(t, "Initializing distance matrix", floydwarshall.Describe(first, idx))
	assert.Equal(t, "Algorithm complete! All shortest paths found.", floydwarshall.Describe(res.Trace.Final(), idx))

	proc := floydwarshall.Step{Kind: floydwarshall.StepProcessing, K: 1, I: 0, J: 2}
	assert.Equal(t, "Checking if path A → B → C is shorter than direct path A → C", floydwarshall.Describe(proc, idx))

	upd := floydwarshall.Step{Kind: floydwarshall.StepUpdate, K: 1, I: 0, J: 2, NewDistance: 3}
	assert.Equal(t, "Found shorter path from A to C through B! New distance: 3", floydwarshall.Describe(upd, idx))

	assert.Equal(t, "Checking if path 0 → 7 → 2 is shorter than direct path 0 → 2",
		floydwarshall.Describe(floydwarshall.Step{Kind: floydwarshall.StepProcessing, K: 7, I: 0, J: 2}, nil))
}
