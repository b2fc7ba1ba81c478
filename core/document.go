// SPDX-License-Identifier: MIT
// File: document.go
// Role: Serialized graph form {nodes, edges} and its JSON/YAML codecs.
//
// Policy:
//   - Decoding only checks shape (both lists present). Semantic validation
//     happens in Graph.Load, which replays the document through AddNodeAt and
//     AddEdge, so a hand-edited file can never smuggle in a self-loop, a
//     duplicate or a dangling edge.

package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Document is the import/export shape of a graph.
type Document struct {
	Nodes []Node `json:"nodes" yaml:"nodes"`
	Edges []Edge `json:"edges" yaml:"edges"`
}

// wireDocument distinguishes a missing list from an empty one.
type wireDocument struct {
	Nodes *[]Node `json:"nodes" yaml:"nodes"`
	Edges *[]Edge `json:"edges" yaml:"edges"`
}

func (w wireDocument) document() (Document, error) {
	if w.Nodes == nil || w.Edges == nil {
		return Document{}, fmt.Errorf("%w: both nodes and edges are required", ErrBadDocument)
	}

	return Document{Nodes: *w.Nodes, Edges: *w.Edges}, nil
}

// ParseJSON decodes a JSON document.
func ParseJSON(b []byte) (Document, error) {
	var w wireDocument
	if err := json.Unmarshal(b, &w); err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrBadDocument, err)
	}

	return w.document()
}

// ParseYAML decodes a YAML document.
func ParseYAML(b []byte) (Document, error) {
	var w wireDocument
	if err := yaml.Unmarshal(b, &w); err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrBadDocument, err)
	}

	return w.document()
}

// ReadDocument loads a document from disk; .yaml/.yml files are parsed as YAML,
// anything else as JSON.
func ReadDocument(path string) (Document, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Document{}, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(b)
	default:
		return ParseJSON(b)
	}
}

// JSON encodes the document with two-space indentation.
func (d Document) JSON() ([]byte, error) {
	d = d.normalized()

	return json.MarshalIndent(d, "", "  ")
}

// YAML encodes the document as YAML.
func (d Document) YAML() ([]byte, error) {
	d = d.normalized()
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// normalized turns nil lists into empty ones so exports always carry both keys.
func (d Document) normalized() Document {
	if d.Nodes == nil {
		d.Nodes = []Node{}
	}
	if d.Edges == nil {
		d.Edges = []Edge{}
	}

	return d
}

// Document exports the graph.
func (g *Graph) Document() Document {
	nodes, edges, _ := g.Snapshot()

	return Document{Nodes: nodes, Edges: edges}
}

// Load replaces the graph with the contents of doc.
// Invalid entries are dropped the same way interactive edits are.
// Returns how many nodes and edges were accepted.
// Complexity: O(V + E).
func (g *Graph) Load(doc Document) (nodes, edges int) {
	g.RemoveAll()
	for _, n := range doc.Nodes {
		if g.AddNodeAt(n.ID, n.X, n.Y) {
			nodes++
		}
	}
	for _, e := range doc.Edges {
		if g.AddEdge(e.Source, e.Target, e.Weight) {
			edges++
		}
	}

	return nodes, edges
}

// Snapshot returns nodes, edges and the structural version read under one
// lock, so a run never sees a half-applied edit.
func (g *Graph) Snapshot() ([]Node, []Edge, uint64) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	nodes := make([]Node, 0, len(g.order))
	for _, id := range g.order {
		nodes = append(nodes, *g.nodes[id])
	}
	edges := make([]Edge, len(g.edges))
	copy(edges, g.edges)

	return nodes, edges, g.version
}
