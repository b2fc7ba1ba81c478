// Package fwviz is an animation engine for the Floyd–Warshall all-pairs
// shortest-path algorithm: it runs the algorithm once over an editable
// directed weighted graph, records every comparison and update as a
// replayable trace, and plays that trace back at a controllable speed to
// whatever renderer is listening.
//
// 🚀 What is inside?
//
//	• core/          : editable Graph of positioned nodes and weighted edges,
//	                   the {nodes, edges} document form and built-in presets
//	• matrix/        : dense distance grid with the +∞ sentinel and the next-hop grid
//	• floydwarshall/ : the recording run, path reconstruction and status texts
//	• playback/      : Idle/Ready/Playing/Paused/Finished controller over a trace
//	• engine/        : Session tying Graph → Result → Controller, publishing Frames
//	• config/        : YAML/TOML configuration and the slog logger
//	• server/        : HTTP control API and websocket frame stream
//	• cmd/fwviz      : terminal replay or server host
//
// ✨ Guarantees
//
//   - Deterministic: the k → i → j order and the strict "<" rule make two runs
//     over the same graph produce identical matrices and traces.
//   - Faithful replay: each step keeps its own snapshot of the distance matrix,
//     O(V⁵) memory in total, which is fine for the tens of nodes a person
//     can follow on screen.
//   - Safe playback: one pending timer at a time, cancelled before any reset,
//     and observers see steps strictly in trace order.
//
// Quick ASCII example (preset "simple"):
//
//	   A ──5──▶ B
//	   ▲ ╲      │
//	   6   10   3
//	   │     ╲  ▼
//	   D ◀──4── C
//
//	dist[A][D] = 12 via A → B → C → D.
//
//	go run ./cmd/fwviz -preset simple -source A -target D
package fwviz
