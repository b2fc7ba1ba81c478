// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Square row-major distance matrix used by the Floyd–Warshall recorder.
//   - Flat backing slice: one allocation per matrix and per snapshot.
//
// Contract:
//   - +Inf means "no path"; the diagonal of a fresh distance matrix is 0.
//   - NaN never enters a matrix built from finite edge weights.

package matrix

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Dense is a square row-major matrix of float64 values.
// n is the order, data holds n*n elements in row-major order.
type Dense struct {
	n    int       // order (rows == cols)
	data []float64 // flat backing storage, length == n*n
}

// NewDense creates an n×n Dense matrix initialized to zeros.
// A zero order is allowed and yields an empty matrix.
// Complexity: O(n²) time and memory.
func NewDense(n int) (*Dense, error) {
	if n < 0 {
		return nil, ErrBadShape
	}

	return &Dense{n: n, data: make([]float64, n*n)}, nil
}

// NewDistance creates the starting distance matrix for n vertices:
//
//	diag = 0; off-diagonal = +Inf.
//
// Complexity: O(n²).
func NewDistance(n int) (*Dense, error) {
	d, err := NewDense(n)
	if err != nil {
		return nil, err
	}

	inf := math.Inf(1)
	var i, j int
	for i = 0; i < n; i++ {
		base := i * n
		for j = 0; j < n; j++ {
			if i != j {
				d.data[base+j] = inf
			}
		}
	}

	return d, nil
}

// Rows returns the number of rows. Complexity: O(1).
func (m *Dense) Rows() int { return m.n }

// Cols returns the number of columns. Complexity: O(1).
func (m *Dense) Cols() int { return m.n }

// indexOf computes the flat index for (row, col) or returns ErrOutOfRange.
func (m *Dense) indexOf(method string, row, col int) (int, error) {
	if row < 0 || row >= m.n || col < 0 || col >= m.n {
		return 0, indexErrorf("Dense."+method, row, col)
	}

	return row*m.n + col, nil
}

// At retrieves the element at (row, col).
// Complexity: O(1).
func (m *Dense) At(row, col int) (float64, error) {
	idx, err := m.indexOf("At", row, col)
	if err != nil {
		return 0, err
	}

	return m.data[idx], nil
}

// Set assigns v at (row, col).
// Complexity: O(1).
func (m *Dense) Set(row, col int, v float64) error {
	idx, err := m.indexOf("Set", row, col)
	if err != nil {
		return err
	}
	m.data[idx] = v

	return nil
}

// Relax performs one Floyd–Warshall relaxation for intermediate vertex k:
//
//	if d[i,k] + d[k,j] < d[i,j] { d[i,j] = d[i,k] + d[k,j] }
//
// It reports the resulting d[i,j] and whether it changed. The comparison is
// strict, so ties keep the earlier value. +Inf propagates through the sum, so
// unreachable legs never win and need no special case.
//
// Indices are trusted: Relax is the inner step of an O(n³) loop whose bounds
// are the matrix order, and an out-of-range index panics like a slice access.
// Complexity: O(1), no allocations.
func (m *Dense) Relax(i, k, j int) (float64, bool) {
	n := m.n
	ij := i*n + j
	cand := m.data[i*n+k] + m.data[k*n+j]
	if cand < m.data[ij] {
		m.data[ij] = cand

		return cand, true
	}

	return m.data[ij], false
}

// Clone returns a deep copy; later writes to either matrix never show in the other.
// Complexity: O(n²) time and memory.
func (m *Dense) Clone() *Dense {
	cp := make([]float64, len(m.data))
	copy(cp, m.data)

	return &Dense{n: m.n, data: cp}
}

// Equal reports whether o has the same order and bit-identical entries
// (+Inf equals +Inf). A nil matrix equals only another nil matrix.
// Complexity: O(n²).
func (m *Dense) Equal(o *Dense) bool {
	if m == nil || o == nil {
		return m == o
	}
	if m.n != o.n {
		return false
	}
	for i, v := range m.data {
		if math.Float64bits(v) != math.Float64bits(o.data[i]) {
			return false
		}
	}

	return true
}

// Rows2D exports the matrix as a fresh [][]float64.
// Complexity: O(n²).
func (m *Dense) Rows2D() [][]float64 {
	out := make([][]float64, m.n)
	for i := 0; i < m.n; i++ {
		row := make([]float64, m.n)
		copy(row, m.data[i*m.n:(i+1)*m.n])
		out[i] = row
	}

	return out
}

// FromRows builds a Dense from a square [][]float64.
// Returns ErrDimensionMismatch when any row length differs from the row count.
func FromRows(rows [][]float64) (*Dense, error) {
	n := len(rows)
	d, _ := NewDense(n) // n >= 0
	for i, row := range rows {
		if len(row) != n {
			return nil, ErrDimensionMismatch
		}
		copy(d.data[i*n:(i+1)*n], row)
	}

	return d, nil
}

// Bytes reports the size of the backing storage in bytes.
func (m *Dense) Bytes() uint64 { return uint64(len(m.data)) * 8 }

// MarshalJSON encodes the matrix as an array of rows. JSON has no infinity,
// so +Inf is written as null.
func (m *Dense) MarshalJSON() ([]byte, error) {
	out := make([][]*float64, m.n)
	for i := 0; i < m.n; i++ {
		row := make([]*float64, m.n)
		for j := 0; j < m.n; j++ {
			v := m.data[i*m.n+j]
			if !math.IsInf(v, 1) {
				row[j] = &v
			}
		}
		out[i] = row
	}

	return json.Marshal(out)
}

// UnmarshalJSON is the inverse of MarshalJSON: null decodes to +Inf.
func (m *Dense) UnmarshalJSON(b []byte) error {
	var in [][]*float64
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	n := len(in)
	data := make([]float64, n*n)
	for i, row := range in {
		if len(row) != n {
			return ErrDimensionMismatch
		}
		for j, v := range row {
			if v == nil {
				data[i*n+j] = math.Inf(1)
			} else {
				data[i*n+j] = *v
			}
		}
	}
	m.n, m.data = n, data

	return nil
}

// String renders one bracketed row per line, ∞ for unreachable entries.
func (m *Dense) String() string {
	var sb strings.Builder
	var i, j int
	for i = 0; i < m.n; i++ {
		sb.WriteByte('[')
		for j = 0; j < m.n; j++ {
			if j > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(FormatDistance(m.data[i*m.n+j]))
		}
		sb.WriteString("]\n")
	}

	return sb.String()
}

// FormatDistance prints a distance the way a reader expects it:
// integers without a fraction, ∞ for the unreachable sentinel.
func FormatDistance(v float64) string {
	if math.IsInf(v, 1) {
		return "∞"
	}
	if math.IsInf(v, -1) {
		return "-∞"
	}

	return strconv.FormatFloat(v, 'f', -1, 64)
}
