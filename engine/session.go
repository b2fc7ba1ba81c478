// SPDX-License-Identifier: MIT
// File: session.go
// Role: Session lifecycle, runs, selection and frame publication.
//
// Locking:
//   - runMu serializes Run, Clear and Import so the stored result and the
//     controller's trace always change together.
//   - mu guards the result and the selection. It is never held while calling
//     into the controller or a subscriber.

package engine

import (
	"errors"
	"log/slog"
	"math"
	"sync"

	"github.com/katalvlaran/fwviz/core"
	"github.com/katalvlaran/fwviz/floydwarshall"
	"github.com/katalvlaran/fwviz/playback"
)

// Session owns one graph, its latest run and the playback of that run.
// All methods are safe for concurrent use. Subscribers must not call Run,
// Clear, Import or LoadPreset from inside the callback.
type Session struct {
	log      *slog.Logger
	graph    *core.Graph
	ctrl     *playback.Controller
	autoplay bool
	frames   fanout
	unsub    func()

	runMu sync.Mutex

	mu       sync.Mutex
	source   string
	target   string
	result   *floydwarshall.Result
	version  uint64 // graph version the result was computed from
	path     []string
	distance *float64
}

// New creates a Session with an empty graph and an idle controller.
func New(opts ...Option) *Session {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	s := &Session{
		log:      cfg.Logger,
		graph:    core.NewGraph(cfg.Graph...),
		ctrl:     playback.New(playback.WithClock(cfg.Clock), playback.WithSpeed(cfg.Speed)),
		autoplay: cfg.Autoplay,
	}
	s.unsub = s.ctrl.Subscribe(s.onEvent)

	return s
}

// Graph returns the editable graph. Edits do not touch the current run;
// frames report Stale once the graph differs from what was run.
func (s *Session) Graph() *core.Graph { return s.graph }

// Controller returns the playback controller of the session.
func (s *Session) Controller() *playback.Controller { return s.ctrl }

// Subscribe registers fn for every frame and returns a function that removes it.
func (s *Session) Subscribe(fn func(Frame)) (unsubscribe func()) {
	return s.frames.subscribe(fn)
}

// SetSelection sets the source and target of the highlighted path. An empty
// identifier clears that end. With a run present, the path and distance are
// recomputed from the stored matrices and a frame is published.
func (s *Session) SetSelection(source, target string) {
	s.mu.Lock()
	s.source, s.target = source, target
	s.selectLocked()
	s.mu.Unlock()

	if f, ok := s.render(s.ctrl.Current(), CauseSelect); ok {
		s.frames.publish(f)
	}
}

// Selection returns the selected source and target.
func (s *Session) Selection() (source, target string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.source, s.target
}

// Run executes Floyd–Warshall over the current graph, stores the result and
// loads its trace into the controller, replacing any previous run. With
// autoplay on, playback starts immediately.
//
// An empty graph has nothing to animate: the previous run is discarded and
// Run returns nil.
func (s *Session) Run() *floydwarshall.Result {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	nodes, edges, version := s.graph.Snapshot()
	if len(nodes) == 0 {
		s.log.Debug("run skipped: empty graph")
		s.invalidate()
		return nil
	}

	source, target := s.Selection()
	res, err := floydwarshall.Run(nodes, edges, floydwarshall.WithEndpoints(source, target))
	if err != nil {
		// The graph never hands out dangling edges or duplicate ids.
		s.log.Error("run failed", "err", err)
		s.invalidate()
		return nil
	}

	_, updates := res.Trace.Counts()
	s.log.Info("run complete",
		"run_id", res.RunID(),
		"nodes", len(nodes),
		"edges", len(edges),
		"steps", res.Trace.Len(),
		"updates", updates,
		"snapshots", res.Trace.FootprintString(),
	)
	if cyc := res.NegativeCycle(); len(cyc) > 0 {
		s.log.Warn("negative cycle: distances through these vertices are not meaningful",
			"run_id", res.RunID(), "vertices", cyc)
	}

	s.mu.Lock()
	s.result = res
	s.version = version
	s.selectLocked()
	s.mu.Unlock()

	if err := s.ctrl.Load(res.Trace); err != nil {
		s.log.Error("load trace", "run_id", res.RunID(), "err", err)
		return res
	}
	if s.autoplay {
		if err := s.ctrl.Play(); err != nil && !errors.Is(err, playback.ErrIllegalTransition) {
			s.log.Warn("autoplay", "run_id", res.RunID(), "err", err)
		}
	}

	return res
}

// Result returns the latest run, or nil.
func (s *Session) Result() *floydwarshall.Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.result
}

// Path returns the selected shortest path under the latest run: nil without
// a run or a complete selection, empty when there is no path.
func (s *Session) Path() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == nil {
		return nil
	}

	return append([]string{}, s.path...)
}

// Distance returns the selected shortest distance; ok is false when there is
// no run, no complete selection, or the pair is unreachable.
func (s *Session) Distance() (d float64, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.distance == nil {
		return 0, false
	}

	return *s.distance, true
}

// Frame returns the frame describing the current state.
func (s *Session) Frame() Frame {
	ev := s.ctrl.Current()
	f, ok := s.render(ev, ev.Cause.String())
	if !ok {
		// A run is being swapped in; report the controller state only.
		f = buildFrame(playback.Event{State: ev.State}, ev.Cause.String(), view{})
	}
	f.Seq = s.frames.lastSeq()

	return f
}

// Clear removes every node and edge and discards the run.
func (s *Session) Clear() {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	s.graph.RemoveAll()
	s.invalidate()
}

// Import replaces the graph with doc and discards the run. Invalid entries
// are dropped; the counts of accepted nodes and edges are returned.
func (s *Session) Import(doc core.Document) (nodes, edges int) {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	nodes, edges = s.graph.Load(doc)
	if dropped := len(doc.Nodes) - nodes + len(doc.Edges) - edges; dropped > 0 {
		s.log.Warn("import dropped invalid entries", "dropped", dropped)
	}
	s.log.Info("graph imported", "nodes", nodes, "edges", edges)
	s.invalidate()

	return nodes, edges
}

// LoadPreset imports a built-in example graph.
func (s *Session) LoadPreset(name string) error {
	doc, err := core.Preset(name)
	if err != nil {
		return err
	}
	s.Import(doc)

	return nil
}

// Export returns the graph in its serialized form.
func (s *Session) Export() core.Document { return s.graph.Document() }

// Close stops playback and releases the controller.
func (s *Session) Close() {
	s.unsub()
	s.ctrl.Close()
}

// onEvent turns controller events into frames.
func (s *Session) onEvent(ev playback.Event) {
	if f, ok := s.render(ev, ev.Cause.String()); ok {
		s.frames.publish(f)
	}
}

// render builds the frame for ev; ok is false if ev belongs to a trace that
// is no longer the session's current one.
func (s *Session) render(ev playback.Event, cause string) (Frame, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ev.Trace != nil && (s.result == nil || ev.Trace != s.result.Trace) {
		return Frame{}, false
	}
	v := view{
		result:   s.result,
		source:   s.source,
		target:   s.target,
		path:     s.path,
		distance: s.distance,
	}
	if s.result != nil {
		v.stale = s.graph.Version() != s.version
	}

	return buildFrame(ev, cause, v), true
}

// invalidate drops the run and unloads the controller. Caller holds runMu.
func (s *Session) invalidate() {
	s.mu.Lock()
	s.result = nil
	s.version = 0
	s.selectLocked()
	s.mu.Unlock()

	if err := s.ctrl.Unload(); err != nil && !errors.Is(err, playback.ErrClosed) {
		s.log.Error("unload trace", "err", err)
	}
}

// selectLocked recomputes path and distance for the selection. Caller holds mu.
func (s *Session) selectLocked() {
	s.path, s.distance = nil, nil
	if s.result == nil || s.source == "" || s.target == "" {
		return
	}
	s.path = s.result.Path(s.source, s.target)
	if d, ok := s.result.Distance(s.source, s.target); ok && !math.IsInf(d, 1) {
		s.distance = &d
	}
}
