//
// Copyright (c) 2020-2025 Markku Rossi
//
// All rights reserved.
//

package circuits

import (
	"github.com/markkurossi/xtabs/circuit"
)

// NewMUX returns t if cond is set and f otherwise. Each bit costs one
// AND gate:
//
//	out = f XOR ((f XOR t) AND cond)
func NewMUX(b *Builder, cond circuit.Wire, t, f []circuit.Wire) []circuit.Wire {
	out := make([]circuit.Wire, len(t))
	for i := range t {
		out[i] = NewBitMUX(b, cond, t[i], f[i])
	}
	return out
}

// NewBitMUX returns t if cond is set and f otherwise.
func NewBitMUX(b *Builder, cond, t, f circuit.Wire) circuit.Wire {
	return b.XOR(f, b.AND(b.XOR(f, t), cond))
}
