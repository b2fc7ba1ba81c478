// SPDX-License-Identifier: MIT
// Package core_test verifies the editing rules of core.Graph: silent no-ops for
// invalid edits, insertion order, cascade removal and versioning.

package core_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/fwviz/core"
)

func newTestGraph(t *testing.T, ids ...string) *core.Graph {
	t.Helper()
	g := core.NewGraph(core.WithSeed(7))
	for _, id := range ids {
		require.True(t, g.AddNode(id), "AddNode(%q)", id)
	}

	return g
}

func TestAddNode_RejectsBlankAndDuplicate(t *testing.T) {
	g := newTestGraph(t, "A")
	v := g.Version()

	assert.False(t, g.AddNode(""), "empty id")
	assert.False(t, g.AddNode("   "), "whitespace id")
	assert.False(t, g.AddNode("A"), "duplicate id")
	assert.Equal(t, 1, g.Order())
	assert.Equal(t, v, g.Version(), "rejected edits must not bump the version")
}

func TestAddNode_PlacesInsideCanvas(t *testing.T) {
	c := core.Canvas{Width: 200, Height: 120, Margin: 10}
	g := core.NewGraph(core.WithCanvas(c), core.WithSeed(42))

	for _, id := range []string{"A", "B", "C", "D", "E", "F", "G", "H"} {
		require.True(t, g.AddNode(id))
	}
	for _, n := range g.Nodes() {
		assert.GreaterOrEqual(t, n.X, 10.0)
		assert.Less(t, n.X, 190.0)
		assert.GreaterOrEqual(t, n.Y, 10.0)
		assert.Less(t, n.Y, 110.0)
	}
}

func TestWithCanvas_DegenerateFallsBack(t *testing.T) {
	g := core.NewGraph(core.WithCanvas(core.Canvas{Width: 20, Height: 20, Margin: 10}))
	assert.Equal(t, core.DefaultCanvas, g.Canvas())
}

func TestWithSeed_IsDeterministic(t *testing.T) {
	a := newTestGraph(t, "A", "B", "C")
	b := newTestGraph(t, "A", "B", "C")
	assert.Equal(t, a.Nodes(), b.Nodes())
}

func TestNodes_InsertionOrder(t *testing.T) {
	g := newTestGraph(t, "C", "A", "B")

	var ids []string
	for _, n := range g.Nodes() {
		ids = append(ids, n.ID)
	}
	assert.Equal(t, []string{"C", "A", "B"}, ids)
}

func TestAddEdge_Validation(t *testing.T) {
	g := newTestGraph(t, "A", "B")

	assert.False(t, g.AddEdge("", "B", 1), "blank source")
	assert.False(t, g.AddEdge("A", "", 1), "blank target")
	assert.False(t, g.AddEdge("A", "A", 1), "self-loop")
	assert.False(t, g.AddEdge("A", "Z", 1), "unknown target")
	assert.False(t, g.AddEdge("Z", "A", 1), "unknown source")
	assert.False(t, g.AddEdge("A", "B", math.NaN()), "NaN weight")
	assert.False(t, g.AddEdge("A", "B", math.Inf(1)), "Inf weight")
	assert.Equal(t, 0, g.Size())

	require.True(t, g.AddEdge("A", "B", -2))
	assert.False(t, g.AddEdge("A", "B", 9), "duplicate pair is a no-op")
	e, ok := g.Edge("A", "B")
	require.True(t, ok)
	assert.Equal(t, -2.0, e.Weight, "duplicate must not overwrite the weight")

	assert.True(t, g.AddEdge("B", "A", 0), "reverse pair is a different edge; zero weight allowed")
	assert.Equal(t, 2, g.Size())
}

func TestRemoveNode_CascadesEdges(t *testing.T) {
	g := newTestGraph(t, "A", "B", "C")
	require.True(t, g.AddEdge("A", "B", 1))
	require.True(t, g.AddEdge("B", "C", 1))
	require.True(t, g.AddEdge("C", "A", 1))
	require.True(t, g.AddEdge("A", "C", 1))

	require.True(t, g.RemoveNode("B"))
	assert.False(t, g.RemoveNode("B"), "second removal is a no-op")

	assert.Equal(t, []core.Edge{
		{Source: "C", Target: "A", Weight: 1},
		{Source: "A", Target: "C", Weight: 1},
	}, g.Edges())
	assert.False(t, g.HasEdge("A", "B"))
	assert.True(t, g.HasEdge("A", "C"), "index must be rebuilt after removal")

	// the freed pair can be re-added once B is back
	require.True(t, g.AddNode("B"))
	assert.True(t, g.AddEdge("A", "B", 3))
}

func TestRemoveEdge(t *testing.T) {
	g := newTestGraph(t, "A", "B", "C")
	require.True(t, g.AddEdge("A", "B", 1))
	require.True(t, g.AddEdge("B", "C", 2))

	assert.False(t, g.RemoveEdge("B", "A"))
	require.True(t, g.RemoveEdge("A", "B"))
	assert.Equal(t, []core.Edge{{Source: "B", Target: "C", Weight: 2}}, g.Edges())
	assert.True(t, g.HasEdge("B", "C"))
}

func TestMoveNode_KeepsVersion(t *testing.T) {
	g := newTestGraph(t, "A")
	v := g.Version()

	require.True(t, g.MoveNode("A", 12, 34))
	assert.False(t, g.MoveNode("Z", 1, 1))
	assert.False(t, g.MoveNode("A", math.NaN(), 1))

	n, ok := g.Node("A")
	require.True(t, ok)
	assert.Equal(t, 12.0, n.X)
	assert.Equal(t, 34.0, n.Y)
	assert.Equal(t, v, g.Version(), "moving a node is not a structural change")
}

func TestRemoveAll(t *testing.T) {
	g := newTestGraph(t, "A", "B")
	require.True(t, g.AddEdge("A", "B", 1))
	v := g.Version()

	g.RemoveAll()
	assert.Zero(t, g.Order())
	assert.Zero(t, g.Size())
	assert.Greater(t, g.Version(), v)
	assert.True(t, g.AddNode("A"), "graph is usable after RemoveAll")
}
