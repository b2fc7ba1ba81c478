// SPDX-License-Identifier: MIT
// Package core: placement RNG for new nodes.
//
// Policy:
//   - seed == 0 ⇒ seed from the wall clock (a fresh editor session looks different each time).
//   - seed != 0 ⇒ the seed is used verbatim, so tests and demos are reproducible.

package core

import (
	"math/rand"
	"time"
)

func rngFromSeed(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return rand.New(rand.NewSource(seed))
}

// place draws a position inside the canvas bounds. Caller holds g.mu.
func (g *Graph) place() (x, y float64) {
	c := g.canvas
	x = g.rng.Float64()*(c.Width-2*c.Margin) + c.Margin
	y = g.rng.Float64()*(c.Height-2*c.Margin) + c.Margin

	return x, y
}
