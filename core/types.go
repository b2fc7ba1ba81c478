// SPDX-License-Identifier: MIT
// Package core: Node, Edge, Graph, GraphOption, sentinel errors and NewGraph.

package core

import (
	"errors"
	"math/rand"
	"sync"
)

// Sentinel errors for the serialized-form helpers. Graph mutations never fail.
var (
	// ErrUnknownPreset indicates that Preset was asked for a name it does not know.
	ErrUnknownPreset = errors.New("core: unknown preset")

	// ErrBadDocument indicates that a serialized graph could not be decoded.
	ErrBadDocument = errors.New("core: malformed graph document")
)

// DefaultWeight is the weight a new edge gets when the editor does not say otherwise.
const DefaultWeight = 1.0

// Node is a vertex with a layout position.
// The position is for drawing only and plays no part in any computation.
type Node struct {
	ID string  `json:"id" yaml:"id"`
	X  float64 `json:"x" yaml:"x"`
	Y  float64 `json:"y" yaml:"y"`
}

// Edge is a directed, weighted connection Source → Target.
// Weight may be negative or zero.
type Edge struct {
	Source string  `json:"source" yaml:"source"`
	Target string  `json:"target" yaml:"target"`
	Weight float64 `json:"weight" yaml:"weight"`
}

// edgeKey identifies an ordered pair; at most one edge exists per key.
type edgeKey struct {
	source, target string
}

// Canvas bounds random placement of new nodes: X is drawn from
// [Margin, Width-Margin) and Y from [Margin, Height-Margin).
type Canvas struct {
	Width  float64 `json:"width" yaml:"width" toml:"width"`
	Height float64 `json:"height" yaml:"height" toml:"height"`
	Margin float64 `json:"margin" yaml:"margin" toml:"margin"`
}

// DefaultCanvas matches the editor's 500×400 drawing area with a 50px margin.
var DefaultCanvas = Canvas{Width: 500, Height: 400, Margin: 50}

// GraphOption configures a Graph before first use.
type GraphOption func(g *Graph)

// WithCanvas sets the placement bounds for AddNode.
// Degenerate bounds (non-positive span) fall back to DefaultCanvas.
func WithCanvas(c Canvas) GraphOption {
	return func(g *Graph) {
		if c.Width-2*c.Margin > 0 && c.Height-2*c.Margin > 0 {
			g.canvas = c
		}
	}
}

// WithSeed makes node placement deterministic.
func WithSeed(seed int64) GraphOption {
	return func(g *Graph) { g.rng = rngFromSeed(seed) }
}

// WithRand supplies the placement RNG. The Graph takes ownership of r.
func WithRand(r *rand.Rand) GraphOption {
	return func(g *Graph) {
		if r != nil {
			g.rng = r
		}
	}
}

// Graph is the editable in-memory graph.
//
// order keeps node insertion order, edges keeps edge insertion order; nodes and
// index give O(1) membership checks. mu guards everything including rng,
// because math/rand.Rand is not goroutine-safe.
type Graph struct {
	mu sync.RWMutex

	canvas Canvas
	rng    *rand.Rand

	order []string         // node IDs in insertion order
	nodes map[string]*Node // node ID → Node
	edges []Edge           // edges in insertion order
	index map[edgeKey]int  // (source, target) → position in edges

	version uint64 // bumped on structural change
}

// NewGraph creates an empty Graph. By default placement uses DefaultCanvas and
// a time-seeded RNG.
// Complexity: O(1).
func NewGraph(opts ...GraphOption) *Graph {
	g := &Graph{
		canvas: DefaultCanvas,
		nodes:  make(map[string]*Node),
		index:  make(map[edgeKey]int),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = rngFromSeed(0)
	}

	return g
}
