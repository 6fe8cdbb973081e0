//
// Copyright (c) 2020-2025 Markku Rossi
//
// All rights reserved.
//

package circuits

import (
	"github.com/markkurossi/xtabs/circuit"
)

// comparator tests if x>y if cin=0, and x>=y if cin=1. The values are
// unsigned. Each bit costs one AND gate.
func comparator(b *Builder, cin circuit.Wire, x, y []circuit.Wire) circuit.Wire {
	for i := range x {
		w1 := b.XNOR(cin, y[i])
		w2 := b.XOR(cin, x[i])
		w3 := b.AND(w1, w2)
		cin = b.XOR(cin, w3)
	}
	return cin
}

// NewGtComparator tests if x>y.
func NewGtComparator(b *Builder, x, y []circuit.Wire) circuit.Wire {
	return comparator(b, circuit.Zero, x, y)
}

// NewGeComparator tests if x>=y.
func NewGeComparator(b *Builder, x, y []circuit.Wire) circuit.Wire {
	return comparator(b, circuit.One, x, y)
}

// NewLtComparator tests if x<y.
func NewLtComparator(b *Builder, x, y []circuit.Wire) circuit.Wire {
	return comparator(b, circuit.Zero, y, x)
}

// NewLeComparator tests if x<=y.
func NewLeComparator(b *Builder, x, y []circuit.Wire) circuit.Wire {
	return comparator(b, circuit.One, y, x)
}

// signFlip flips the sign bit so that unsigned comparison of the
// results orders the two's complement values.
func signFlip(b *Builder, x []circuit.Wire) []circuit.Wire {
	result := make([]circuit.Wire, len(x))
	copy(result, x)
	result[len(x)-1] = b.INV(x[len(x)-1])
	return result
}

// NewSignedLtComparator tests if x<y for two's complement values.
func NewSignedLtComparator(b *Builder, x, y []circuit.Wire) circuit.Wire {
	return NewLtComparator(b, signFlip(b, x), signFlip(b, y))
}

// NewSignedLeComparator tests if x<=y for two's complement values.
func NewSignedLeComparator(b *Builder, x, y []circuit.Wire) circuit.Wire {
	return NewLeComparator(b, signFlip(b, x), signFlip(b, y))
}

// NewSignedGeComparator tests if x>=y for two's complement values.
func NewSignedGeComparator(b *Builder, x, y []circuit.Wire) circuit.Wire {
	return NewGeComparator(b, signFlip(b, x), signFlip(b, y))
}

// NewNeqComparator tests if x!=y.
func NewNeqComparator(b *Builder, x, y []circuit.Wire) circuit.Wire {
	c := circuit.Zero
	for i := range x {
		c = b.OR(c, b.XOR(x[i], y[i]))
	}
	return c
}

// NewEqComparator tests if x==y.
func NewEqComparator(b *Builder, x, y []circuit.Wire) circuit.Wire {
	return b.INV(NewNeqComparator(b, x, y))
}
