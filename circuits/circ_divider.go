//
// Copyright (c) 2019-2025 Markku Rossi
//
// All rights reserved.
//

package circuits

import (
	"github.com/markkurossi/xtabs/circuit"
)

// NewDivider returns the quotient and remainder of the unsigned
// division x/y. The quotient has the width of x and the remainder the
// width of y. This function implements restoring division: each
// quotient bit costs one subtractor and one multiplexer. Division by
// zero gives the all ones quotient.
func NewDivider(b *Builder, x, y []circuit.Wire) (q, r []circuit.Wire) {
	n := len(y)

	divisor := make([]circuit.Wire, n+1)
	copy(divisor, y)
	divisor[n] = circuit.Zero

	r = b.ConstWires(0, n+1)
	q = make([]circuit.Wire, len(x))

	for i := len(x) - 1; i >= 0; i-- {
		// r = r<<1 | x[i]. The remainder is below the divisor so
		// its top bit is always zero.
		shifted := make([]circuit.Wire, n+1)
		shifted[0] = x[i]
		copy(shifted[1:], r[:n])

		d, ge := NewSubtractorBorrow(b, shifted, divisor)
		q[i] = ge
		r = NewMUX(b, ge, d, shifted)
	}
	return q, r[:n]
}
