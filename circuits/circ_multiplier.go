//
// circ_multiplier.go
//
// Copyright (c) 2019-2025 Markku Rossi
//
// All rights reserved.
//

package circuits

import (
	"github.com/markkurossi/xtabs/circuit"
)

// NewMultiplier returns x*y modulo 2^n. The low n bits of the product
// are the same for unsigned and two's complement values. This
// function implements an array multiplier that skips the partial
// product bits above n.
func NewMultiplier(b *Builder, x, y []circuit.Wire) []circuit.Wire {
	n := len(x)
	z := b.ConstWires(0, n)

	for j := 0; j < n; j++ {
		pp := make([]circuit.Wire, n-j)
		for i := range pp {
			pp[i] = b.AND(x[i], y[j])
		}
		copy(z[j:], NewAdder(b, z[j:], pp))
	}
	return z
}

// NewFullMultiplier returns the 2n bit product x*y of the unsigned
// values.
func NewFullMultiplier(b *Builder, x, y []circuit.Wire) []circuit.Wire {
	n := len(x)
	z := b.ConstWires(0, 2*n)

	for j := 0; j < n; j++ {
		pp := make([]circuit.Wire, n)
		for i := range pp {
			pp[i] = b.AND(x[i], y[j])
		}
		sum, carry := NewAdderCarry(b, z[j:j+n], pp, circuit.Zero)
		copy(z[j:], sum)
		z[j+n] = carry
	}
	return z
}
