// SPDX-License-Identifier: MIT
// File: methods_nodes.go
// Role: Node lifecycle & queries.
//
// Determinism:
//   - Nodes() returns insertion order; this order defines matrix indices of a run.
//
// Concurrency:
//   - Mutations under mu write lock, queries under mu read lock.

package core

import (
	"math"
	"strings"
)

// blank reports whether an identifier is empty after trimming whitespace.
func blank(id string) bool { return strings.TrimSpace(id) == "" }

// AddNode inserts a node at a random position inside the canvas.
//
// Implementation:
//   - Stage 1: Reject blank IDs.
//   - Stage 2: Under the write lock reject duplicates, draw a position, append.
//
// Returns:
//   - bool: true if the node was added; false for a blank or existing ID.
//
// Complexity:
//   - Time O(1) amortized.
func (g *Graph) AddNode(id string) bool {
	if blank(id) {
		return false
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.nodes[id]; ok {
		return false
	}
	x, y := g.place()
	g.insertNode(Node{ID: id, X: x, Y: y})

	return true
}

// AddNodeAt inserts a node at an explicit position (presets, import).
// Same validation as AddNode; a non-finite coordinate is also rejected.
func (g *Graph) AddNodeAt(id string, x, y float64) bool {
	if blank(id) || !finite(x) || !finite(y) {
		return false
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.nodes[id]; ok {
		return false
	}
	g.insertNode(Node{ID: id, X: x, Y: y})

	return true
}

// insertNode registers n. Caller holds the write lock and has validated n.
func (g *Graph) insertNode(n Node) {
	node := n
	g.nodes[n.ID] = &node
	g.order = append(g.order, n.ID)
	g.version++
}

// RemoveNode deletes a node and every edge that starts or ends at it.
//
// Implementation:
//   - Stage 1: Under the write lock, drop the node from the catalog and order.
//   - Stage 2: Filter dependent edges out and rebuild the pair index.
//
// Returns:
//   - bool: false if the node did not exist.
//
// Complexity:
//   - Time O(V + E).
func (g *Graph) RemoveNode(id string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.nodes[id]; !ok {
		return false
	}
	delete(g.nodes, id)
	for i, nid := range g.order {
		if nid == id {
			g.order = append(g.order[:i], g.order[i+1:]...)
			break
		}
	}

	kept := g.edges[:0]
	for _, e := range g.edges {
		if e.Source != id && e.Target != id {
			kept = append(kept, e)
		}
	}
	// clear the tail so dropped edges do not linger in the backing array
	for i := len(kept); i < len(g.edges); i++ {
		g.edges[i] = Edge{}
	}
	g.edges = kept
	g.reindex()
	g.version++

	return true
}

// MoveNode updates a node's layout position. It does not bump Version.
// Returns false for an unknown node or a non-finite coordinate.
func (g *Graph) MoveNode(id string, x, y float64) bool {
	if !finite(x) || !finite(y) {
		return false
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	n, ok := g.nodes[id]
	if !ok {
		return false
	}
	n.X, n.Y = x, y

	return true
}

// HasNode reports whether id is present.
func (g *Graph) HasNode(id string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	_, ok := g.nodes[id]

	return ok
}

// Node returns a copy of the node with the given ID.
func (g *Graph) Node(id string) (Node, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	n, ok := g.nodes[id]
	if !ok {
		return Node{}, false
	}

	return *n, true
}

// Nodes returns copies of all nodes in insertion order.
// Complexity: O(V).
func (g *Graph) Nodes() []Node {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]Node, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, *g.nodes[id])
	}

	return out
}

// Order returns the number of nodes.
func (g *Graph) Order() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.order)
}

// RemoveAll clears nodes and edges.
func (g *Graph) RemoveAll() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.order = nil
	g.nodes = make(map[string]*Node)
	g.edges = nil
	g.index = make(map[edgeKey]int)
	g.version++
}

// Version returns the structural version counter.
func (g *Graph) Version() uint64 {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.version
}

// Canvas returns the placement bounds.
func (g *Graph) Canvas() Canvas {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.canvas
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
