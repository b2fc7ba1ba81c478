// Package floydwarshall runs the Floyd–Warshall all-pairs shortest-path
// algorithm over a core graph while recording a replayable trace of every
// comparison and every update it performs.
//
// Overview:
//
//   - Run assigns each node its position in the input list as matrix index
//     (Index), builds the starting distance matrix (0 on the diagonal, the edge
//     weight for a direct edge, +Inf otherwise) and the next-hop grid, then
//     relaxes over intermediate vertex k, row i and column j in that fixed
//     nested order.
//   - Every (k, i, j) emits a StepProcessing carrying a snapshot taken before
//     the check; every relaxation that fires emits a StepUpdate carrying the new
//     distance and a snapshot taken after the change. A single StepInit opens
//     the trace and a single StepFinal closes it.
//   - Reconstruct walks the next-hop grid to turn a (source, target) pair into
//     the vertex sequence of a shortest path.
//
// Trace length:
//
//	1 (init) + V³ (processing) + U (updates that fired) + 1 (final)
//
// Memory:
//
//	Every step holds a deep copy of the V×V matrix, so a trace costs O(V⁵)
//	bytes in the worst case (V³ + U steps × V² entries × 8 bytes). That is the
//	price of exact historical snapshots and is fine for the tens of nodes a
//	person can follow on screen. Trace.Footprint reports the actual figure.
//
// Numeric policy:
//
//	+Inf is the unreachable sentinel: ∞ + finite = ∞ and ∞ < ∞ is false, so the
//	relaxation needs no special case. The comparison is strict: ties keep the
//	earlier path. Negative weights are accepted. Negative cycles are neither
//	prevented nor handled during the run; Result.NegativeCycle reports the
//	vertices whose diagonal went negative afterwards.
//
// Determinism:
//
//	Identical nodes (same order) and edges always produce identical matrices and
//	an identical trace. Only the RunID differs between runs unless WithRunID is
//	given.
//
// Errors (sentinel):
//
//   - ErrEmptyGraph:      Run called with zero nodes (nothing to animate).
//   - ErrEmptyVertexID:   a node has a blank identifier.
//   - ErrDuplicateVertex: two nodes share an identifier.
//   - ErrUnknownVertex:   an edge references an identifier not in the node list.
//
// Edited graphs coming from core.Graph never trigger the last three; they guard
// callers that assemble node and edge lists by hand.
package floydwarshall
