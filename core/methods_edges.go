// SPDX-License-Identifier: MIT
// File: methods_edges.go
// Role: Edge lifecycle & queries.
//
// Determinism:
//   - Edges() returns insertion order.
//
// Invariants:
//   - Source != Target; both endpoints exist; at most one edge per ordered pair.

package core

// AddEdge inserts Source → Target with the given weight.
//
// Implementation:
//   - Stage 1: Reject blank endpoints, self-loops and non-finite weights.
//   - Stage 2: Under the write lock reject unknown endpoints and existing pairs.
//   - Stage 3: Append and index the edge.
//
// Returns:
//   - bool: true if the edge was added. A duplicate pair is a no-op (false),
//     the existing weight is kept.
//
// Complexity:
//   - Time O(1) amortized.
func (g *Graph) AddEdge(source, target string, weight float64) bool {
	if blank(source) || blank(target) || source == target || !finite(weight) {
		return false
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.nodes[source]; !ok {
		return false
	}
	if _, ok := g.nodes[target]; !ok {
		return false
	}
	key := edgeKey{source: source, target: target}
	if _, ok := g.index[key]; ok {
		return false
	}
	g.index[key] = len(g.edges)
	g.edges = append(g.edges, Edge{Source: source, Target: target, Weight: weight})
	g.version++

	return true
}

// RemoveEdge deletes Source → Target. Returns false if no such edge exists.
// Complexity: O(E) to keep insertion order.
func (g *Graph) RemoveEdge(source, target string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	pos, ok := g.index[edgeKey{source: source, target: target}]
	if !ok {
		return false
	}
	g.edges = append(g.edges[:pos], g.edges[pos+1:]...)
	g.reindex()
	g.version++

	return true
}

// HasEdge reports whether Source → Target exists.
func (g *Graph) HasEdge(source, target string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	_, ok := g.index[edgeKey{source: source, target: target}]

	return ok
}

// Edge returns the edge Source → Target if present.
func (g *Graph) Edge(source, target string) (Edge, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	pos, ok := g.index[edgeKey{source: source, target: target}]
	if !ok {
		return Edge{}, false
	}

	return g.edges[pos], true
}

// Edges returns a copy of all edges in insertion order.
// Complexity: O(E).
func (g *Graph) Edges() []Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]Edge, len(g.edges))
	copy(out, g.edges)

	return out
}

// Size returns the number of edges.
func (g *Graph) Size() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.edges)
}

// reindex rebuilds the pair index from g.edges. Caller holds the write lock.
func (g *Graph) reindex() {
	g.index = make(map[edgeKey]int, len(g.edges))
	for i, e := range g.edges {
		g.index[edgeKey{source: e.Source, target: e.Target}] = i
	}
}
