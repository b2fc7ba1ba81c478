// SPDX-License-Identifier: MIT
// File: presets.go
// Role: Built-in example graphs offered by the editor.

package core

import (
	"fmt"
	"sort"
)

// Preset names.
const (
	PresetSimple   = "simple"
	PresetComplex  = "complex"
	PresetNegative = "negative"
)

var presets = map[string]Document{
	// Four nodes in a square with one diagonal: A→D is cheapest around the rim.
	PresetSimple: {
		Nodes: []Node{
			{ID: "A", X: 100, Y: 100},
			{ID: "B", X: 300, Y: 100},
			{ID: "C", X: 300, Y: 300},
			{ID: "D", X: 100, Y: 300},
		},
		Edges: []Edge{
			{Source: "A", Target: "B", Weight: 5},
			{Source: "B", Target: "C", Weight: 3},
			{Source: "C", Target: "D", Weight: 4},
			{Source: "D", Target: "A", Weight: 6},
			{Source: "A", Target: "C", Weight: 10},
		},
	},
	PresetComplex: {
		Nodes: []Node{
			{ID: "A", X: 150, Y: 100},
			{ID: "B", X: 300, Y: 50},
			{ID: "C", X: 450, Y: 100},
			{ID: "D", X: 450, Y: 250},
			{ID: "E", X: 300, Y: 300},
			{ID: "F", X: 150, Y: 250},
		},
		Edges: []Edge{
			{Source: "A", Target: "B", Weight: 2},
			{Source: "A", Target: "F", Weight: 4},
			{Source: "B", Target: "C", Weight: 3},
			{Source: "B", Target: "E", Weight: 8},
			{Source: "C", Target: "D", Weight: 1},
			{Source: "D", Target: "E", Weight: 5},
			{Source: "E", Target: "F", Weight: 7},
			{Source: "F", Target: "A", Weight: 4},
			{Source: "F", Target: "D", Weight: 9},
		},
	},
	// A negative edge that beats a direct edge; no negative cycle.
	PresetNegative: {
		Nodes: []Node{
			{ID: "A", X: 150, Y: 150},
			{ID: "B", X: 350, Y: 150},
			{ID: "C", X: 250, Y: 300},
		},
		Edges: []Edge{
			{Source: "A", Target: "B", Weight: 6},
			{Source: "B", Target: "C", Weight: -3},
			{Source: "C", Target: "A", Weight: 2},
			{Source: "A", Target: "C", Weight: 4},
		},
	},
}

// Preset returns a copy of a built-in example graph.
func Preset(name string) (Document, error) {
	doc, ok := presets[name]
	if !ok {
		return Document{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	out := Document{
		Nodes: append([]Node(nil), doc.Nodes...),
		Edges: append([]Edge(nil), doc.Edges...),
	}

	return out, nil
}

// PresetNames lists the built-in presets in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}
