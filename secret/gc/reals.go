//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

package gc

import (
	"math"

	"github.com/markkurossi/xtabs/circuit"
	"github.com/markkurossi/xtabs/circuits"
	"github.com/markkurossi/xtabs/secret"
)

// Fixed-point format of the real kind.
const (
	RealBits = 64
	FracBits = 16
)

var (
	_ secret.Real[Float, Bit] = &Reals{}
)

// Float implements a secret real number as a two's complement
// fixed-point value with FracBits fractional bits.
type Float struct {
	w []circuit.Wire
}

// Reals implements the real kind of a session.
type Reals struct {
	*Session
}

// Reals returns the real kind.
func (s *Session) Reals() *Reals {
	return &Reals{
		Session: s,
	}
}

// ToFixed converts the value to the fixed-point representation.
func ToFixed(v float64) int64 {
	return int64(math.Round(v * (1 << FracBits)))
}

// FromFixed converts the fixed-point representation to float64.
func FromFixed(v int64) float64 {
	return float64(v) / (1 << FracBits)
}

// Input creates secret values owned by the party.
func (r *Reals) Input(owner secret.Party, values []float64) []Float {
	result := make([]Float, len(values))
	for idx, v := range values {
		result[idx] = Float{r.input(owner, uint64(ToFixed(v)), RealBits)}
	}
	return result
}

// Const returns a public value.
func (r *Reals) Const(v float64) Float {
	return Float{r.b.ConstWires(uint64(ToFixed(v)), RealBits)}
}

// Add returns a+b.
func (r *Reals) Add(a, b Float) Float {
	return Float{circuits.NewAdder(r.b, a.w, b.w)}
}

// Sub returns a-b.
func (r *Reals) Sub(a, b Float) Float {
	return Float{circuits.NewSubtractor(r.b, a.w, b.w)}
}

// Mul returns a*b.
func (r *Reals) Mul(a, b Float) Float {
	return Float{circuits.NewFixedMultiplier(r.b, a.w, b.w, FracBits)}
}

// Div returns a/b.
func (r *Reals) Div(a, b Float) Float {
	return Float{circuits.NewFixedDivider(r.b, a.w, b.w, FracBits)}
}

// Square returns a*a.
func (r *Reals) Square(a Float) Float {
	return Float{circuits.NewFixedSquare(r.b, a.w, FracBits)}
}

// Sqrt returns the square root of a. Negative values give zero.
func (r *Reals) Sqrt(a Float) Float {
	return Float{circuits.NewFixedSqrt(r.b, a.w, FracBits)}
}

// Equal tests if a==b.
func (r *Reals) Equal(a, b Float) Bit {
	return Bit{circuits.NewEqComparator(r.b, a.w, b.w)}
}

// LessThan tests if a<b.
func (r *Reals) LessThan(a, b Float) Bit {
	return Bit{circuits.NewSignedLtComparator(r.b, a.w, b.w)}
}

// LessEqual tests if a<=b.
func (r *Reals) LessEqual(a, b Float) Bit {
	return Bit{circuits.NewSignedLeComparator(r.b, a.w, b.w)}
}

// GreaterEqual tests if a>=b.
func (r *Reals) GreaterEqual(a, b Float) Bit {
	return Bit{circuits.NewSignedGeComparator(r.b, a.w, b.w)}
}

// Select returns t if c is set and f otherwise.
func (r *Reals) Select(c Bit, t, f Float) Float {
	return Float{circuits.NewMUX(r.b, c.w, t.w, f.w)}
}

// Reveal reveals the values to both parties.
func (r *Reals) Reveal(values ...Float) ([]float64, error) {
	bits, err := r.reveal(concat(values, func(v Float) []circuit.Wire {
		return v.w
	}))
	if err != nil {
		return nil, err
	}
	result := make([]float64, len(values))
	for idx := range result {
		v := toUint64(bits[idx*RealBits : (idx+1)*RealBits])
		result[idx] = FromFixed(int64(v))
	}
	return result, nil
}
