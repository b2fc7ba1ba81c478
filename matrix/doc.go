// SPDX-License-Identifier: MIT

// Package matrix provides the two square grids a Floyd–Warshall run works on:
//
//   - Dense:   row-major float64 distance matrix. +Inf (math.Inf(1)) is the
//     "unreachable" sentinel; it takes part in addition and comparison without
//     special-casing (∞ + finite = ∞, ∞ < ∞ is false).
//   - NextHop: row-major grid of vertex identifiers; "" means "no path known".
//
// Both types are plain values with deep Clone and exact Equal, so a run can take
// an independent snapshot at every step and two runs can be compared bit for bit.
//
// Errors:
//
//	ErrBadShape          - negative order requested.
//	ErrOutOfRange        - row or column index outside [0, n).
//	ErrDimensionMismatch - two matrices of different order compared or combined.
//
// Concurrency:
//
//	Neither type is synchronized. A matrix is owned by one run while it is being
//	filled and is read-only afterwards; concurrent readers are then safe.
package matrix
