//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

package circuits

import (
	"github.com/markkurossi/xtabs/circuit"
)

// Sign returns the sign bit of the two's complement value.
func Sign(x []circuit.Wire) circuit.Wire {
	return x[len(x)-1]
}

// NewAbs returns the absolute value of the two's complement value
// as an unsigned value of the same width.
func NewAbs(b *Builder, x []circuit.Wire) []circuit.Wire {
	return NewMUX(b, Sign(x), NewNegator(b, x), x)
}

// applySign negates the unsigned magnitude if neg is set.
func applySign(b *Builder, neg circuit.Wire, x []circuit.Wire) []circuit.Wire {
	return NewMUX(b, neg, NewNegator(b, x), x)
}

// NewSignedDivider returns x/y truncated toward zero for two's
// complement values. The division uses the magnitudes of the
// arguments and applies the sign to the quotient. Division by zero
// gives -1 for non-negative x and 1 for negative x.
func NewSignedDivider(b *Builder, x, y []circuit.Wire) []circuit.Wire {
	q, _ := NewDivider(b, NewAbs(b, x), NewAbs(b, y))
	return applySign(b, b.XOR(Sign(x), Sign(y)), q)
}

// NewFixedMultiplier multiplies two's complement fixed-point values
// with frac fractional bits. The product magnitude is truncated.
func NewFixedMultiplier(b *Builder, x, y []circuit.Wire,
	frac int) []circuit.Wire {

	n := len(x)
	p := NewFullMultiplier(b, NewAbs(b, x), NewAbs(b, y))
	return applySign(b, b.XOR(Sign(x), Sign(y)), p[frac:frac+n])
}

// NewFixedSquare returns x*x for a fixed-point value.
func NewFixedSquare(b *Builder, x []circuit.Wire, frac int) []circuit.Wire {
	n := len(x)
	a := NewAbs(b, x)
	p := NewFullMultiplier(b, a, a)
	return append([]circuit.Wire{}, p[frac:frac+n]...)
}

// NewFixedDivider divides two's complement fixed-point values with
// frac fractional bits. The quotient magnitude is truncated.
func NewFixedDivider(b *Builder, x, y []circuit.Wire,
	frac int) []circuit.Wire {

	n := len(x)
	dividend := append(b.ConstWires(0, frac), NewAbs(b, x)...)
	q, _ := NewDivider(b, dividend, NewAbs(b, y))
	return applySign(b, b.XOR(Sign(x), Sign(y)), q[:n])
}

// NewFixedSqrt returns the square root of a fixed-point value with
// frac fractional bits. Negative values give zero.
func NewFixedSqrt(b *Builder, x []circuit.Wire, frac int) []circuit.Wire {
	n := len(x)

	// sqrt(v/2^f)*2^f = sqrt(v*2^f)
	scaled := append(b.ConstWires(0, frac), x...)
	root := NewSqrt(b, scaled)

	result := b.ConstWires(0, n)
	copy(result, root)

	return NewMUX(b, Sign(x), b.ConstWires(0, n), result)
}
