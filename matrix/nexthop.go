// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Next-hop grid filled in lock-step with the distance matrix.
//   - next[i][j] is the identifier of the vertex that follows i on the best
//     known path from i to j; "" encodes "no path known".

package matrix

// NextHop is a square row-major grid of vertex identifiers.
type NextHop struct {
	n    int
	data []string
}

// NewNextHop creates an n×n grid with every cell empty.
// Complexity: O(n²).
func NewNextHop(n int) (*NextHop, error) {
	if n < 0 {
		return nil, ErrBadShape
	}

	return &NextHop{n: n, data: make([]string, n*n)}, nil
}

// Order returns n. Complexity: O(1).
func (h *NextHop) Order() int { return h.n }

// At returns next[row][col], "" when no path is known.
func (h *NextHop) At(row, col int) (string, error) {
	if row < 0 || row >= h.n || col < 0 || col >= h.n {
		return "", indexErrorf("NextHop.At", row, col)
	}

	return h.data[row*h.n+col], nil
}

// Set assigns next[row][col] = id.
func (h *NextHop) Set(row, col int, id string) error {
	if row < 0 || row >= h.n || col < 0 || col >= h.n {
		return indexErrorf("NextHop.Set", row, col)
	}
	h.data[row*h.n+col] = id

	return nil
}

// Follow copies next[i][k] into next[i][j]: after a relaxation through k,
// the path i→j starts the same way as the path i→k.
// Indices are trusted, as in Dense.Relax.
func (h *NextHop) Follow(i, k, j int) {
	h.data[i*h.n+j] = h.data[i*h.n+k]
}

// Clone returns a deep copy.
func (h *NextHop) Clone() *NextHop {
	cp := make([]string, len(h.data))
	copy(cp, h.data)

	return &NextHop{n: h.n, data: cp}
}

// Equal reports whether o has the same order and identical cells.
func (h *NextHop) Equal(o *NextHop) bool {
	if h == nil || o == nil {
		return h == o
	}
	if h.n != o.n {
		return false
	}
	for i, v := range h.data {
		if v != o.data[i] {
			return false
		}
	}

	return true
}

// Rows2D exports the grid as a fresh [][]string.
func (h *NextHop) Rows2D() [][]string {
	out := make([][]string, h.n)
	for i := 0; i < h.n; i++ {
		row := make([]string, h.n)
		copy(row, h.data[i*h.n:(i+1)*h.n])
		out[i] = row
	}

	return out
}
