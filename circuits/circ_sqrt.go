//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

package circuits

import (
	"github.com/markkurossi/xtabs/circuit"
)

// NewSqrt returns the integer square root floor(sqrt(x)) of the
// unsigned value x. The result has half the width of x, rounded up.
// This function implements the digit-by-digit method with one
// subtractor and one multiplexer per result bit.
func NewSqrt(b *Builder, x []circuit.Wire) []circuit.Wire {
	if len(x)%2 != 0 {
		x = append(append([]circuit.Wire{}, x...), circuit.Zero)
	}
	k := len(x) / 2
	w := k + 2

	rem := b.ConstWires(0, w)
	root := b.ConstWires(0, k)

	for i := k - 1; i >= 0; i-- {
		// rem = rem<<2 | x[2i+1..2i]
		shifted := make([]circuit.Wire, w)
		shifted[0] = x[2*i]
		shifted[1] = x[2*i+1]
		copy(shifted[2:], rem[:w-2])

		// trial = root<<2 | 1
		trial := make([]circuit.Wire, w)
		trial[0] = circuit.One
		trial[1] = circuit.Zero
		copy(trial[2:], root)

		d, ge := NewSubtractorBorrow(b, shifted, trial)
		rem = NewMUX(b, ge, d, shifted)

		next := make([]circuit.Wire, k)
		next[0] = ge
		copy(next[1:], root[:k-1])
		root = next
	}
	return root
}
