//
// circ_adder.go
//
// Copyright (c) 2019-2025 Markku Rossi
//
// All rights reserved.
//

package circuits

import (
	"github.com/markkurossi/xtabs/circuit"
)

// NewHalfAdder returns the sum and carry of a+b.
func NewHalfAdder(b *Builder, x, y circuit.Wire) (s, c circuit.Wire) {
	return b.XOR(x, y), b.AND(x, y)
}

// NewFullAdder returns the sum and carry of x+y+cin. It uses one AND
// gate:
//
//	s = x XOR y XOR cin
//	cout = cin XOR ((x XOR cin) AND (y XOR cin))
func NewFullAdder(b *Builder, x, y, cin circuit.Wire) (s, cout circuit.Wire) {
	w1 := b.XOR(y, cin)
	s = b.XOR(x, w1)
	w2 := b.XOR(x, cin)
	w3 := b.AND(w1, w2)
	cout = b.XOR(cin, w3)
	return
}

// NewAdderCarry returns x+y+cin and the carry out. The inputs must
// have the same width.
func NewAdderCarry(b *Builder, x, y []circuit.Wire, cin circuit.Wire) (
	[]circuit.Wire, circuit.Wire) {

	z := make([]circuit.Wire, len(x))
	for i := range x {
		z[i], cin = NewFullAdder(b, x[i], y[i], cin)
	}
	return z, cin
}

// NewAdder returns x+y modulo 2^n. The inputs must have the same width.
func NewAdder(b *Builder, x, y []circuit.Wire) []circuit.Wire {
	z, _ := NewAdderCarry(b, x, y, circuit.Zero)
	return z
}

// NewSubtractorBorrow returns x-y modulo 2^n and a bit that is set if
// x>=y as unsigned values. The subtraction is computed as x+^y+1.
func NewSubtractorBorrow(b *Builder, x, y []circuit.Wire) (
	[]circuit.Wire, circuit.Wire) {

	ny := make([]circuit.Wire, len(y))
	for i, w := range y {
		ny[i] = b.INV(w)
	}
	return NewAdderCarry(b, x, ny, circuit.One)
}

// NewSubtractor returns x-y modulo 2^n.
func NewSubtractor(b *Builder, x, y []circuit.Wire) []circuit.Wire {
	z, _ := NewSubtractorBorrow(b, x, y)
	return z
}

// NewNegator returns -x modulo 2^n.
func NewNegator(b *Builder, x []circuit.Wire) []circuit.Wire {
	return NewSubtractor(b, b.ConstWires(0, len(x)), x)
}
