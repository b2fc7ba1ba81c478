// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// Every message is prefixed with "matrix: ..." for consistency; callers match
// with errors.Is, wrapped context is added with fmt.Errorf("ctx: %w", ErrX).

package matrix

import (
	"errors"
	"fmt"
)

var (
	// ErrBadShape is returned when a requested order is negative.
	ErrBadShape = errors.New("matrix: invalid shape")

	// ErrOutOfRange indicates that a row or column index is outside valid bounds.
	// Public indexers (At/Set) MUST return this, not panic.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates two operands of different order.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")
)

// indexErrorf wraps ErrOutOfRange with the accessor name and the offending indices.
func indexErrorf(method string, row, col int) error {
	return fmt.Errorf("%s(%d,%d): %w", method, row, col, ErrOutOfRange)
}
