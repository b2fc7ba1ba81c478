// SPDX-License-Identifier: MIT

// Package engine ties the graph, a Floyd–Warshall run and its playback
// together in one Session object.
//
// A Session owns:
//
//   - the editable core.Graph;
//   - the selected source and target node identifiers;
//   - the *floydwarshall.Result of the latest run;
//   - a playback.Controller replaying that run's trace.
//
// Hosts never reach into those pieces to mutate algorithm state. They call
// Session methods and receive Frames, one per observable change, through
// Subscribe. A Frame carries everything a renderer needs: the current step,
// the vertices to highlight, the matrix snapshot, the selected path and a
// status line.
//
// Error model:
//
// Session keeps the interactive rules of the tool: invalid edits are silently
// ignored (see core.Graph), running an empty graph clears the previous run,
// and an unreachable or unknown selection yields an empty path and an absent
// distance. Only I/O (Import of a malformed document, an unknown preset)
// returns errors.
//
// Ordering:
//
// Frames are delivered one at a time in Seq order. Events that belong to a
// trace which is no longer the current one are dropped, so a renderer never
// sees steps of two runs interleaved.
package engine
