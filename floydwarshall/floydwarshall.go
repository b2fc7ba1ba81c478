// Package floydwarshall implements the recording run.
//
// Notes on implementation choices:
//
//   - Loop order is fixed (k → i → j) and single-threaded; the order of the
//     recorded steps is the point of the trace.
//   - The numeric step itself (strict relaxation with +Inf propagation) lives
//     in matrix.Dense.Relax; this file only decides what to record.
//   - Snapshots are taken with Dense.Clone, so later mutation of the live
//     matrix never alters a recorded step.
package floydwarshall

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/katalvlaran/fwviz/core"
	"github.com/katalvlaran/fwviz/matrix"
)

// Result is everything a run produces. It is immutable once Run returns.
type Result struct {
	Index *Index
	Dist  *matrix.Dense
	Next  *matrix.NextHop
	Trace *Trace
}

// RunID identifies the run.
func (r *Result) RunID() uuid.UUID { return r.Trace.RunID() }

// Distance returns the shortest distance source → target. ok is false when
// either identifier is unknown; an unreachable pair yields +Inf with ok true.
func (r *Result) Distance(source, target string) (float64, bool) {
	u, ok := r.Index.Of(source)
	if !ok {
		return 0, false
	}
	v, ok := r.Index.Of(target)
	if !ok {
		return 0, false
	}
	d, _ := r.Dist.At(u, v) // indices come from the same run

	return d, true
}

// Path reconstructs the shortest path source → target; empty if none.
func (r *Result) Path(source, target string) []string {
	return Reconstruct(source, target, r.Index, r.Dist, r.Next)
}

// NegativeCycle returns, in index order, the vertices that lie on a negative
// cycle (dist[v][v] < 0 after the run). Distances that route through such a
// vertex are not meaningful.
func (r *Result) NegativeCycle() []string {
	var out []string
	for i := 0; i < r.Index.Len(); i++ {
		if d, _ := r.Dist.At(i, i); d < 0 {
			out = append(out, r.Index.ID(i))
		}
	}

	return out
}

// recorder owns the live matrices and the growing step list of one run.
type recorder struct {
	dist  *matrix.Dense
	next  *matrix.NextHop
	steps []Step
}

func (rec *recorder) emit(kind StepKind, k, i, j int, newDist float64) {
	rec.steps = append(rec.steps, Step{
		Kind:        kind,
		K:           k,
		I:           i,
		J:           j,
		NewDistance: newDist,
		Snapshot:    rec.dist.Clone(),
	})
}

// Run executes Floyd–Warshall over nodes and edges and records the trace.
//
// Preconditions and validation (in order):
//  1. At least one node (ErrEmptyGraph).
//  2. Node identifiers non-blank (ErrEmptyVertexID) and unique (ErrDuplicateVertex).
//  3. Every edge endpoint present in nodes (ErrUnknownVertex).
//
// Self-loop edges are skipped: the diagonal is always 0. If the same ordered
// pair appears twice, the later edge wins.
//
// Complexity:
//
//   - Time:  O(V³) relaxations plus O(V²) per recorded step for the snapshot.
//   - Space: O((V³ + U) · V²) for the trace; see the package doc.
func Run(nodes []core.Node, edges []core.Edge, opts ...Option) (*Result, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.RunID == uuid.Nil {
		cfg.RunID = uuid.New()
	}

	if len(nodes) == 0 {
		return nil, ErrEmptyGraph
	}

	// 1) Index assignment: position in the node list.
	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	idx, err := NewIndex(ids)
	if err != nil {
		return nil, err
	}
	n := idx.Len()

	// 2) Initial matrices: 0 / weight / +Inf, next = target for direct edges.
	dist, err := matrix.NewDistance(n)
	if err != nil {
		return nil, err
	}
	next, err := matrix.NewNextHop(n)
	if err != nil {
		return nil, err
	}
	for _, e := range edges {
		u, ok := idx.Of(e.Source)
		if !ok {
			return nil, fmt.Errorf("%w: edge %s→%s source", ErrUnknownVertex, e.Source, e.Target)
		}
		v, ok := idx.Of(e.Target)
		if !ok {
			return nil, fmt.Errorf("%w: edge %s→%s target", ErrUnknownVertex, e.Source, e.Target)
		}
		if u == v {
			continue
		}
		_ = dist.Set(u, v, e.Weight)  // in range by construction
		_ = next.Set(u, v, e.Target) // in range by construction
	}

	rec := &recorder{
		dist:  dist,
		next:  next,
		steps: make([]Step, 0, n*n*n+2),
	}

	// 3) init
	rec.emit(StepInit, -1, -1, -1, 0)

	// 4) k → i → j
	var (
		k, i, j int
		nd      float64
		changed bool
	)
	for k = 0; k < n; k++ {
		for i = 0; i < n; i++ {
			for j = 0; j < n; j++ {
				rec.emit(StepProcessing, k, i, j, 0)
				if nd, changed = dist.Relax(i, k, j); changed {
					next.Follow(i, k, j)
					rec.emit(StepUpdate, k, i, j, nd)
				}
			}
		}
	}

	// 5) final, with the selected path if any
	rec.emit(StepFinal, -1, -1, -1, 0)
	if cfg.Source != "" && cfg.Target != "" {
		rec.steps[len(rec.steps)-1].Path = Reconstruct(cfg.Source, cfg.Target, idx, dist, next)
	}

	return &Result{
		Index: idx,
		Dist:  dist,
		Next:  next,
		Trace: &Trace{runID: cfg.RunID, order: n, steps: rec.steps},
	}, nil
}

// isUnreachable reports whether d is the +Inf sentinel.
func isUnreachable(d float64) bool { return math.IsInf(d, 1) }
