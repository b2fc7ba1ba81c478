// Package floydwarshall: path reconstruction from the next-hop grid.
package floydwarshall

import (
	"math"

	"github.com/katalvlaran/fwviz/core"
	"github.com/katalvlaran/fwviz/matrix"
)

// Reconstruct returns the vertex sequence of the shortest path source → target,
// both endpoints included.
//
// Behavior:
//
//   - Unknown source or target, an unreachable pair (+Inf distance) or an empty
//     next[source][target] all yield an empty, non-nil slice.
//   - The walk replaces the current vertex with next[current][target] until it
//     reaches target. It is capped at V hops: a simple path needs at most V-1,
//     so running past the cap means the grid holds a cycle (corrupted input or
//     a negative cycle) and the result is "no path" rather than a hang.
//   - source == target yields an empty path unless the run recorded a next hop
//     on the diagonal, which only a negative cycle through source can cause.
//
// Complexity: O(V) time, O(V) space.
func Reconstruct(source, target string, idx *Index, dist *matrix.Dense, next *matrix.NextHop) []string {
	none := []string{}
	if idx == nil || dist == nil || next == nil {
		return none
	}
	u, ok := idx.Of(source)
	if !ok {
		return none
	}
	v, ok := idx.Of(target)
	if !ok {
		return none
	}
	if d, err := dist.At(u, v); err != nil || isUnreachable(d) {
		return none
	}
	hop, err := next.At(u, v)
	if err != nil || hop == "" {
		return none
	}

	path := []string{source}
	cur := source
	limit := idx.Len()
	for hops := 0; cur != target; hops++ {
		if hops >= limit {
			return none
		}
		ci, ok := idx.Of(cur)
		if !ok {
			return none
		}
		nx, err := next.At(ci, v)
		if err != nil || nx == "" {
			return none
		}
		path = append(path, nx)
		cur = nx
	}

	return path
}

// PathCost sums the weights of consecutive edges along path.
// ok is false when a hop has no matching edge. A path of fewer than two
// vertices costs 0.
func PathCost(path []string, edges []core.Edge) (float64, bool) {
	w := make(map[[2]string]float64, len(edges))
	for _, e := range edges {
		w[[2]string{e.Source, e.Target}] = e.Weight
	}

	var total float64
	for i := 0; i+1 < len(path); i++ {
		c, ok := w[[2]string{path[i], path[i+1]}]
		if !ok {
			return math.Inf(1), false
		}
		total += c
	}

	return total, true
}
