// SPDX-License-Identifier: MIT

package engine_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/fwviz/core"
	"github.com/katalvlaran/fwviz/engine"
	"github.com/katalvlaran/fwviz/floydwarshall"
	"github.com/katalvlaran/fwviz/playback"
	"github.com/katalvlaran/fwviz/playback/playbacktest"
)

type frames struct {
	mu  sync.Mutex
	all []engine.Frame
}

func (f *frames) add(fr engine.Frame) {
	f.mu.Lock()
	f.all = append(f.all, fr)
	f.mu.Unlock()
}

func (f *frames) list() []engine.Frame {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]engine.Frame(nil), f.all...)
}

func (f *frames) last() engine.Frame {
	l := f.list()
	return l[len(l)-1]
}

func newSession(t *testing.T, opts ...engine.Option) (*engine.Session, *playbacktest.Clock, *frames) {
	t.Helper()
	clk := playbacktest.NewClock()
	s := engine.New(append([]engine.Option{engine.WithClock(clk), engine.WithSpeed(100), engine.WithSeed(1)}, opts...)...)
	rec := &frames{}
	s.Subscribe(rec.add)
	t.Cleanup(s.Close)

	return s, clk, rec
}

func TestRunSimplePreset(t *testing.T) {
	s, _, rec := newSession(t)
	require.NoError(t, s.LoadPreset(core.PresetSimple))
	s.SetSelection("A", "D")

	res := s.Run()
	require.NotNil(t, res)
	assert.Same(t, res, s.Result())
	assert.Equal(t, []string{"A", "B", "C", "D"}, s.Path())
	d, ok := s.Distance()
	require.True(t, ok)
	assert.Equal(t, 12.0, d)

	f := rec.last()
	assert.Equal(t, "play", f.Cause)
	assert.Equal(t, "playing", f.State)
	assert.Equal(t, res.RunID().String(), f.RunID)
	assert.Equal(t, 0, f.Index)
	assert.Equal(t, res.Trace.Len(), f.Total)
	assert.Equal(t, "init", f.Kind)
	assert.Equal(t, "Initializing distance matrix", f.Status)
	assert.Equal(t, []string{"A", "B", "C", "D"}, f.Path)
	require.NotNil(t, f.Distance)
	assert.Equal(t, 12.0, *f.Distance)
	assert.Equal(t, []string{"A", "B", "C", "D"}, f.Nodes)
	assert.Equal(t, -1, f.K)
	assert.False(t, f.Stale)
}

func TestRunWithoutAutoplay(t *testing.T) {
	s, clk, rec := newSession(t, engine.WithAutoplay(false))
	require.NoError(t, s.LoadPreset(core.PresetNegative))
	require.NotNil(t, s.Run())

	assert.Equal(t, "ready", rec.last().State)
	assert.Zero(t, clk.Pending())
	assert.Nil(t, s.Path(), "no selection, no path")
}

func TestPlaybackToFinal(t *testing.T) {
	s, clk, rec := newSession(t)
	require.NoError(t, s.LoadPreset(core.PresetNegative))
	s.SetSelection("A", "C")
	res := s.Run()
	require.NotNil(t, res)

	clk.Advance(time.Hour)

	f := rec.last()
	assert.Equal(t, "finished", f.State)
	assert.Equal(t, "final", f.Kind)
	assert.Equal(t, res.Trace.Len()-1, f.Index)
	assert.Equal(t, 1.0, f.Progress)
	assert.Equal(t, "Algorithm complete! All shortest paths found.", f.Status)
	assert.Equal(t, []string{"A", "B", "C"}, f.Path)
	require.NotNil(t, f.Distance)
	assert.Equal(t, 3.0, *f.Distance)

	var advances int
	for _, fr := range rec.list() {
		if fr.Cause == "advance" {
			advances++
		}
	}
	assert.Equal(t, res.Trace.Len()-1, advances)
}

func TestFramesAreSequenced(t *testing.T) {
	s, clk, rec := newSession(t)
	require.NoError(t, s.LoadPreset(core.PresetSimple))
	s.Run()
	clk.Advance(time.Second)
	s.SetSelection("B", "A")

	for i, fr := range rec.list() {
		assert.Equal(t, uint64(i+1), fr.Seq)
	}
	assert.Equal(t, rec.last().Seq, s.Frame().Seq)
}

func TestHighlightAndUpdateFrames(t *testing.T) {
	s, _, rec := newSession(t, engine.WithAutoplay(false))
	require.NoError(t, s.LoadPreset(core.PresetNegative))
	res := s.Run()
	require.NotNil(t, res)

	require.NoError(t, s.Controller().Seek(1))
	f := rec.last()
	assert.Equal(t, "processing", f.Kind)
	assert.Equal(t, [3]int{0, 0, 0}, [3]int{f.K, f.I, f.J})
	assert.Equal(t, [3]string{"A", "A", "A"}, [3]string{f.KID, f.IID, f.JID})
	assert.False(t, f.Updating)
	assert.Equal(t, "Checking if path A → A → A is shorter than direct path A → A", f.Status)

	update := -1
	for i, st := range res.Trace.Steps() {
		if st.Kind == floydwarshall.StepUpdate {
			update = i
			break
		}
	}
	require.Positive(t, update)
	require.NoError(t, s.Controller().Seek(update))
	f = rec.last()
	assert.Equal(t, "update", f.Kind)
	assert.True(t, f.Updating)
	require.NotNil(t, f.NewDistance)
	step, _ := res.Trace.At(update)
	assert.Equal(t, step.NewDistance, *f.NewDistance)
	assert.Equal(t, "paused", f.State)
	assert.InDelta(t, float64(update)/float64(res.Trace.Len()-1), f.Progress, 1e-12)
}

func TestSetSelectionAfterRun(t *testing.T) {
	s, _, rec := newSession(t, engine.WithAutoplay(false))
	require.NoError(t, s.LoadPreset(core.PresetSimple))
	res := s.Run()

	s.SetSelection("A", "D")
	f := rec.last()
	assert.Equal(t, engine.CauseSelect, f.Cause)
	assert.Equal(t, res.RunID().String(), f.RunID, "no re-run")
	assert.Equal(t, []string{"A", "B", "C", "D"}, f.Path)

	s.SetSelection("A", "Z")
	f = rec.last()
	assert.Equal(t, []string{}, f.Path)
	assert.Nil(t, f.Distance)
	_, ok := s.Distance()
	assert.False(t, ok)

	s.SetSelection("", "D")
	assert.Nil(t, s.Path())
	src, dst := s.Selection()
	assert.Equal(t, "", src)
	assert.Equal(t, "D", dst)
}

func TestUnreachableSelection(t *testing.T) {
	s, _, _ := newSession(t, engine.WithAutoplay(false))
	s.Graph().AddNode("A")
	s.Graph().AddNode("B")
	s.SetSelection("A", "B")
	require.NotNil(t, s.Run())

	assert.Equal(t, []string{}, s.Path())
	_, ok := s.Distance()
	assert.False(t, ok)
}

func TestRunEmptyGraphClearsRun(t *testing.T) {
	s, _, rec := newSession(t)
	require.NoError(t, s.LoadPreset(core.PresetSimple))
	require.NotNil(t, s.Run())

	s.Graph().RemoveAll()
	assert.Nil(t, s.Run())
	assert.Nil(t, s.Result())
	assert.Equal(t, "idle", rec.last().State)
	assert.Equal(t, playback.StateIdle, s.Controller().State())
}

func TestRerunDropsStaleSteps(t *testing.T) {
	s, clk, rec := newSession(t)
	require.NoError(t, s.LoadPreset(core.PresetSimple))
	s.Run()
	stale := clk.Last()

	second := s.Run()
	mark := len(rec.list())
	stale.Invoke()
	clk.Advance(350 * time.Millisecond)

	after := rec.list()[mark:]
	require.NotEmpty(t, after)
	for i, fr := range after {
		assert.Equal(t, second.RunID().String(), fr.RunID)
		assert.Equal(t, i+1, fr.Index)
	}
}

func TestEditsMarkFramesStale(t *testing.T) {
	s, _, _ := newSession(t, engine.WithAutoplay(false))
	require.NoError(t, s.LoadPreset(core.PresetSimple))
	s.Run()
	assert.False(t, s.Frame().Stale)

	require.True(t, s.Graph().MoveNode("A", 10, 10))
	assert.False(t, s.Frame().Stale, "dragging keeps the trace current")

	require.True(t, s.Graph().AddEdge("D", "B", 1))
	assert.True(t, s.Frame().Stale)
	assert.Equal(t, "ready", s.Frame().State, "the trace is still playable")
}

func TestClear(t *testing.T) {
	s, _, rec := newSession(t)
	require.NoError(t, s.LoadPreset(core.PresetSimple))
	s.Run()

	s.Clear()
	assert.Zero(t, s.Graph().Order())
	assert.Nil(t, s.Result())
	f := rec.last()
	assert.Equal(t, "idle", f.State)
	assert.Empty(t, f.RunID)
	assert.Equal(t, "idle", s.Frame().State)
}

func TestLoadPresetUnknown(t *testing.T) {
	s, _, _ := newSession(t)
	require.ErrorIs(t, s.LoadPreset("nope"), core.ErrUnknownPreset)
}

func TestImportExport(t *testing.T) {
	s, _, _ := newSession(t)
	doc := core.Document{
		Nodes: []core.Node{{ID: "A", X: 1, Y: 2}, {ID: "B", X: 3, Y: 4}, {ID: "A"}},
		Edges: []core.Edge{
			{Source: "A", Target: "B", Weight: 2},
			{Source: "A", Target: "A", Weight: 1},
			{Source: "B", Target: "Q", Weight: 1},
		},
	}

	nodes, edges := s.Import(doc)
	assert.Equal(t, 2, nodes)
	assert.Equal(t, 1, edges)

	out := s.Export()
	assert.Equal(t, []core.Node{{ID: "A", X: 1, Y: 2}, {ID: "B", X: 3, Y: 4}}, out.Nodes)
	assert.Equal(t, []core.Edge{{Source: "A", Target: "B", Weight: 2}}, out.Edges)
}

func TestImportDiscardsRun(t *testing.T) {
	s, _, _ := newSession(t)
	require.NoError(t, s.LoadPreset(core.PresetSimple))
	s.Run()
	require.NoError(t, s.LoadPreset(core.PresetNegative))

	assert.Nil(t, s.Result())
	assert.Equal(t, playback.StateIdle, s.Controller().State())
}

func TestSubscriberMayChangeSelection(t *testing.T) {
	s, clk, rec := newSession(t)
	require.NoError(t, s.LoadPreset(core.PresetSimple))

	var once sync.Once
	s.Subscribe(func(f engine.Frame) {
		if f.Cause == "advance" {
			once.Do(func() { s.SetSelection("A", "D") })
		}
	})
	s.Run()
	clk.Advance(250 * time.Millisecond)

	list := rec.list()
	for i, fr := range list {
		require.Equal(t, uint64(i+1), fr.Seq)
	}
	var sawSelect bool
	for _, fr := range list {
		if fr.Cause == engine.CauseSelect {
			sawSelect = true
			assert.Equal(t, []string{"A", "B", "C", "D"}, fr.Path)
		}
	}
	assert.True(t, sawSelect)
}

func TestUnsubscribe(t *testing.T) {
	s, _, _ := newSession(t)
	var n int
	stop := s.Subscribe(func(engine.Frame) { n++ })
	require.NoError(t, s.LoadPreset(core.PresetSimple))
	s.Run()
	got := n
	stop()
	require.NoError(t, s.Controller().Pause())

	assert.Positive(t, got)
	assert.Equal(t, got, n)
}

func TestProgress(t *testing.T) {
	assert.Zero(t, engine.Progress(0, 0))
	assert.Zero(t, engine.Progress(0, 1))
	assert.Equal(t, 0.5, engine.Progress(1, 3))
	assert.Equal(t, 1.0, engine.Progress(2, 3))
}
