//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

package gc

import (
	"github.com/markkurossi/xtabs/circuit"
	"github.com/markkurossi/xtabs/circuits"
	"github.com/markkurossi/xtabs/secret"
)

var (
	_ secret.Arith[Int, Bit, int64] = &Ints{}
)

// Int implements a secret two's complement integer.
type Int struct {
	w []circuit.Wire
}

// Ints implements the integer kind of a session.
type Ints struct {
	*Session
	bits int
}

// Ints returns the integer kind with the bit width.
func (s *Session) Ints(bits int) *Ints {
	if bits <= 0 || bits > 64 {
		bits = 64
	}
	return &Ints{
		Session: s,
		bits:    bits,
	}
}

// Bits returns the integer width.
func (i *Ints) Bits() int {
	return i.bits
}

// Input creates secret values owned by the party.
func (i *Ints) Input(owner secret.Party, values []int64) []Int {
	result := make([]Int, len(values))
	for idx, v := range values {
		result[idx] = Int{i.input(owner, uint64(v), i.bits)}
	}
	return result
}

// Const returns a public value.
func (i *Ints) Const(v int64) Int {
	return Int{i.b.ConstWires(uint64(v), i.bits)}
}

// Add returns a+b.
func (i *Ints) Add(a, b Int) Int {
	return Int{circuits.NewAdder(i.b, a.w, b.w)}
}

// Sub returns a-b.
func (i *Ints) Sub(a, b Int) Int {
	return Int{circuits.NewSubtractor(i.b, a.w, b.w)}
}

// Mul returns a*b.
func (i *Ints) Mul(a, b Int) Int {
	return Int{circuits.NewMultiplier(i.b, a.w, b.w)}
}

// Div returns a/b truncated toward zero.
func (i *Ints) Div(a, b Int) Int {
	return Int{circuits.NewSignedDivider(i.b, a.w, b.w)}
}

// Equal tests if a==b.
func (i *Ints) Equal(a, b Int) Bit {
	return Bit{circuits.NewEqComparator(i.b, a.w, b.w)}
}

// LessThan tests if a<b.
func (i *Ints) LessThan(a, b Int) Bit {
	return Bit{circuits.NewSignedLtComparator(i.b, a.w, b.w)}
}

// LessEqual tests if a<=b.
func (i *Ints) LessEqual(a, b Int) Bit {
	return Bit{circuits.NewSignedLeComparator(i.b, a.w, b.w)}
}

// GreaterEqual tests if a>=b.
func (i *Ints) GreaterEqual(a, b Int) Bit {
	return Bit{circuits.NewSignedGeComparator(i.b, a.w, b.w)}
}

// Select returns t if c is set and f otherwise.
func (i *Ints) Select(c Bit, t, f Int) Int {
	return Int{circuits.NewMUX(i.b, c.w, t.w, f.w)}
}

// Reveal reveals the values to both parties.
func (i *Ints) Reveal(values ...Int) ([]int64, error) {
	bits, err := i.reveal(concat(values, func(v Int) []circuit.Wire {
		return v.w
	}))
	if err != nil {
		return nil, err
	}
	result := make([]int64, len(values))
	for idx := range result {
		v := toUint64(bits[idx*i.bits : (idx+1)*i.bits])
		result[idx] = signExtend(v, i.bits)
	}
	return result, nil
}
