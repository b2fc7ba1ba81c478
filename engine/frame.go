// SPDX-License-Identifier: MIT
// Package engine: the renderer-facing Frame.

package engine

import (
	"github.com/katalvlaran/fwviz/floydwarshall"
	"github.com/katalvlaran/fwviz/matrix"
	"github.com/katalvlaran/fwviz/playback"
)

// CauseSelect marks a frame produced by a selection change rather than by
// the playback controller.
const CauseSelect = "select"

// Frame is one renderer update.
//
// K, I and J are -1 unless the step is a processing or update step; KID, IID
// and JID are the matching node identifiers. Path and Distance describe the
// selected pair under the current run: Path is nil when no pair is selected
// or no run exists, empty when the pair is unreachable; Distance is nil when
// unreachable. Stale is true when the graph was edited after the run that
// produced the trace.
type Frame struct {
	Seq      uint64  `json:"seq"`
	RunID    string  `json:"run_id,omitempty"`
	Cause    string  `json:"cause"`
	State    string  `json:"state"`
	Index    int     `json:"index"`
	Total    int     `json:"total"`
	Progress float64 `json:"progress"`

	Kind        string   `json:"kind,omitempty"`
	K           int      `json:"k"`
	I           int      `json:"i"`
	J           int      `json:"j"`
	KID         string   `json:"k_id,omitempty"`
	IID         string   `json:"i_id,omitempty"`
	JID         string   `json:"j_id,omitempty"`
	Updating    bool     `json:"updating"`
	NewDistance *float64 `json:"new_distance,omitempty"`

	Nodes  []string      `json:"nodes,omitempty"`
	Matrix *matrix.Dense `json:"matrix,omitempty"`

	Source   string   `json:"source,omitempty"`
	Target   string   `json:"target,omitempty"`
	Path     []string `json:"path"`
	Distance *float64 `json:"distance,omitempty"`

	Status string `json:"status"`
	Stale  bool   `json:"stale"`
}

// Progress returns index/(total-1), or 0 when total ≤ 1.
func Progress(index, total int) float64 {
	if total <= 1 {
		return 0
	}

	return float64(index) / float64(total-1)
}

// view is the session state a frame is built from.
type view struct {
	result   *floydwarshall.Result
	source   string
	target   string
	path     []string
	distance *float64
	stale    bool
}

// buildFrame renders ev against v. ev.Trace must be nil or v.result.Trace.
func buildFrame(ev playback.Event, cause string, v view) Frame {
	f := Frame{
		Cause:    cause,
		State:    ev.State.String(),
		Index:    ev.Index,
		Total:    ev.Total,
		Progress: Progress(ev.Index, ev.Total),
		K:        -1,
		I:        -1,
		J:        -1,
		Source:   v.source,
		Target:   v.target,
	}
	if ev.Trace == nil || v.result == nil {
		return f
	}

	idx := v.result.Index
	step := ev.Step
	f.RunID = v.result.RunID().String()
	f.Kind = step.Kind.String()
	f.Nodes = idx.IDs()
	f.Matrix = step.Snapshot
	if v.path != nil {
		f.Path = append([]string{}, v.path...)
	}
	f.Distance = v.distance
	f.Status = floydwarshall.Describe(step, idx)
	f.Stale = v.stale
	if k, i, j, ok := step.Highlight(); ok {
		f.K, f.I, f.J = k, i, j
		f.KID, f.IID, f.JID = idx.ID(k), idx.ID(i), idx.ID(j)
	}
	if step.Kind == floydwarshall.StepUpdate {
		f.Updating = true
		nd := step.NewDistance
		f.NewDistance = &nd
	}

	return f
}
