// SPDX-License-Identifier: MIT

// Package core defines the editable graph the visualizer works on: Nodes with a
// 2D layout position and directed, weighted Edges between them.
//
// What & Why:
//
//	The graph is the input of every Floyd–Warshall run. It is edited by a UI, so
//	every mutation validates its input and silently ignores bad edits instead of
//	failing: adding a blank or duplicate node, a self-loop, an edge with an
//	unknown endpoint, a duplicate edge or a non-finite weight leaves the graph
//	untouched and reports false.
//
// Ordering:
//
//	Nodes() and Edges() return insertion order. Node order is significant: a run
//	uses each node's position in Nodes() as its matrix row/column.
//
// Versioning:
//
//	Version() increases on every structural change (nodes or edges added or
//	removed). Moving a node changes only its layout and leaves Version() alone,
//	so a drag never invalidates a computed trace.
//
// Serialized form:
//
//	Document is the {nodes: [{id, x, y}], edges: [{source, target, weight}]}
//	shape used by graph import/export; JSON and YAML codecs are provided.
//
// Concurrency:
//
//	All Graph methods are safe for concurrent use; a single sync.RWMutex guards
//	nodes, edges and the layout RNG.
package core
