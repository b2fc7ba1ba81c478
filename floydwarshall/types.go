// Package floydwarshall defines the step, trace, index and result types and
// the functional options of a run.
package floydwarshall

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/katalvlaran/fwviz/matrix"
)

// Sentinel errors returned by Run and NewIndex.
var (
	// ErrEmptyGraph indicates a run over zero nodes.
	ErrEmptyGraph = errors.New("floydwarshall: graph has no nodes")

	// ErrEmptyVertexID indicates a node with a blank identifier.
	ErrEmptyVertexID = errors.New("floydwarshall: vertex ID is empty")

	// ErrDuplicateVertex indicates two nodes with the same identifier.
	ErrDuplicateVertex = errors.New("floydwarshall: duplicate vertex ID")

	// ErrUnknownVertex indicates an edge endpoint missing from the node list.
	ErrUnknownVertex = errors.New("floydwarshall: unknown vertex ID")
)

// StepKind tags a Step.
type StepKind uint8

const (
	// StepInit carries the initialized matrix; exactly one, first.
	StepInit StepKind = iota

	// StepProcessing is emitted before each relaxation check (k, i, j).
	StepProcessing

	// StepUpdate is emitted when a relaxation improves dist[i][j].
	StepUpdate

	// StepFinal carries the final matrix and the selected path; exactly one, last.
	StepFinal
)

var stepKindNames = [...]string{"init", "processing", "update", "final"}

// String returns the lower-case kind name.
func (k StepKind) String() string {
	if int(k) < len(stepKindNames) {
		return stepKindNames[k]
	}

	return fmt.Sprintf("StepKind(%d)", k)
}

// MarshalText encodes the kind by name.
func (k StepKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText decodes a kind name.
func (k *StepKind) UnmarshalText(b []byte) error {
	for i, name := range stepKindNames {
		if strings.EqualFold(name, string(b)) {
			*k = StepKind(i)
			return nil
		}
	}

	return fmt.Errorf("floydwarshall: unknown step kind %q", b)
}

// Step is one recorded event of a run.
//
// K, I and J are matrix indices for processing and update steps and -1 for
// init and final. NewDistance is set on update steps only. Snapshot is an
// independent copy of the distance matrix at that instant and must be treated
// as read-only. Path is set on the final step only, and only when a source and
// target were given: nil means "no pair selected", an empty slice means
// "selected pair has no path".
type Step struct {
	Kind        StepKind      `json:"kind"`
	K           int           `json:"k"`
	I           int           `json:"i"`
	J           int           `json:"j"`
	NewDistance float64       `json:"newDistance,omitempty"`
	Snapshot    *matrix.Dense `json:"matrix"`
	Path        []string      `json:"path,omitempty"`
}

// Highlight returns the (k, i, j) indices a renderer should emphasize.
// ok is false for init and final steps.
func (s Step) Highlight() (k, i, j int, ok bool) {
	if s.Kind != StepProcessing && s.Kind != StepUpdate {
		return -1, -1, -1, false
	}

	return s.K, s.I, s.J, true
}

// Trace is the ordered, immutable step sequence of one run.
type Trace struct {
	runID uuid.UUID
	order int
	steps []Step
}

// RunID identifies the run that produced the trace.
func (t *Trace) RunID() uuid.UUID { return t.runID }

// Order returns the number of vertices the run was over.
func (t *Trace) Order() int { return t.order }

// Len returns the number of steps.
func (t *Trace) Len() int { return len(t.steps) }

// At returns step i; ok is false when i is out of range.
func (t *Trace) At(i int) (Step, bool) {
	if i < 0 || i >= len(t.steps) {
		return Step{}, false
	}

	return t.steps[i], true
}

// Final returns the last step.
func (t *Trace) Final() Step { return t.steps[len(t.steps)-1] }

// Steps returns a copy of the step slice. Snapshots are shared, not copied.
func (t *Trace) Steps() []Step {
	out := make([]Step, len(t.steps))
	copy(out, t.steps)

	return out
}

// Counts returns how many processing and update steps the trace holds.
func (t *Trace) Counts() (processing, updates int) {
	for _, s := range t.steps {
		switch s.Kind {
		case StepProcessing:
			processing++
		case StepUpdate:
			updates++
		}
	}

	return processing, updates
}

// Footprint returns the bytes held by all snapshots of the trace.
func (t *Trace) Footprint() uint64 {
	var total uint64
	for _, s := range t.steps {
		if s.Snapshot != nil {
			total += s.Snapshot.Bytes()
		}
	}

	return total
}

// FootprintString is Footprint in human units, e.g. "83 kB".
func (t *Trace) FootprintString() string { return humanize.Bytes(t.Footprint()) }

// SnapshotBound returns the worst-case snapshot memory of a run over n
// vertices: every (k, i, j) both processed and updated, plus init and final.
func SnapshotBound(n int) uint64 {
	v := uint64(n)
	steps := 2*v*v*v + 2

	return steps * v * v * 8
}

// Index is the immutable identifier ↔ matrix-index mapping of one run.
type Index struct {
	ids []string
	pos map[string]int
}

// NewIndex builds an Index; position in ids becomes the matrix index.
func NewIndex(ids []string) (*Index, error) {
	idx := &Index{ids: make([]string, len(ids)), pos: make(map[string]int, len(ids))}
	for i, id := range ids {
		if strings.TrimSpace(id) == "" {
			return nil, fmt.Errorf("%w: at position %d", ErrEmptyVertexID, i)
		}
		if _, dup := idx.pos[id]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateVertex, id)
		}
		idx.ids[i] = id
		idx.pos[id] = i
	}

	return idx, nil
}

// Of returns the matrix index of id.
func (x *Index) Of(id string) (int, bool) {
	i, ok := x.pos[id]

	return i, ok
}

// ID returns the identifier at matrix index i, "" when out of range.
func (x *Index) ID(i int) string {
	if i < 0 || i >= len(x.ids) {
		return ""
	}

	return x.ids[i]
}

// Len returns the number of vertices.
func (x *Index) Len() int { return len(x.ids) }

// IDs returns the identifiers in index order.
func (x *Index) IDs() []string { return append([]string(nil), x.ids...) }

// Options configures a run.
//
// Source, Target – optional endpoints; when both are set the final step
// carries their reconstructed path.
// RunID          – identifier stamped on the trace; a random UUID by default.
type Options struct {
	Source string
	Target string
	RunID  uuid.UUID
}

// Option is a functional option for Run.
type Option func(*Options)

// WithEndpoints selects the pair whose path is attached to the final step.
func WithEndpoints(source, target string) Option {
	return func(o *Options) {
		o.Source = source
		o.Target = target
	}
}

// WithRunID fixes the run identifier (reproducible traces in tests and replays).
func WithRunID(id uuid.UUID) Option {
	return func(o *Options) { o.RunID = id }
}

// DefaultOptions returns options with no endpoints and a nil RunID
// (Run generates one).
func DefaultOptions() Options { return Options{} }
