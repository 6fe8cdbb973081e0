//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

// Package plain implements an in-process cleartext simulation of the
// secret value substrate. It computes the same results as the
// garbled circuit substrate and records an operation trace.
package plain

import (
	"math"

	"github.com/markkurossi/xtabs/secret"
)

var (
	_ secret.Arith[Int, Bit, int64] = &Ints{}
	_ secret.Real[Float, Bit]       = &Reals{}
)

// Bit implements a simulated secret bit.
type Bit struct {
	v bool
}

// Int implements a simulated secret integer.
type Int struct {
	v int64
}

// Float implements a simulated secret real number.
type Float struct {
	v float64
}

// Simulator implements the secret bit operations and holds the
// operation trace shared by the integer and real kinds.
type Simulator struct {
	Trace *Trace
}

// New creates a new simulator.
func New() *Simulator {
	return &Simulator{
		Trace: NewTrace(),
	}
}

// Ints returns the integer kind with the bit width. Values wrap
// around at the width as two's complement integers.
func (s *Simulator) Ints(bits int) *Ints {
	if bits <= 0 || bits > 64 {
		bits = 64
	}
	return &Ints{
		Simulator: s,
		bits:      bits,
	}
}

// Reals returns the real kind.
func (s *Simulator) Reals() *Reals {
	return &Reals{
		Simulator: s,
	}
}

// Bit returns a public bit.
func (s *Simulator) Bit(v bool) Bit {
	return Bit{v}
}

// And returns a AND b.
func (s *Simulator) And(a, b Bit) Bit {
	s.Trace.op("and")
	return Bit{a.v && b.v}
}

// Or returns a OR b.
func (s *Simulator) Or(a, b Bit) Bit {
	s.Trace.op("or")
	return Bit{a.v || b.v}
}

// Xor returns a XOR b.
func (s *Simulator) Xor(a, b Bit) Bit {
	s.Trace.op("xor")
	return Bit{a.v != b.v}
}

// Not returns NOT a.
func (s *Simulator) Not(a Bit) Bit {
	s.Trace.op("not")
	return Bit{!a.v}
}

// Choose returns t if c is set and f otherwise.
func (s *Simulator) Choose(c, t, f Bit) Bit {
	s.Trace.op("choose")
	if c.v {
		return t
	}
	return f
}

// RevealBits reveals the bits.
func (s *Simulator) RevealBits(bits ...Bit) ([]bool, error) {
	s.Trace.reveal(len(bits))
	result := make([]bool, len(bits))
	for i, b := range bits {
		result[i] = b.v
	}
	return result, nil
}

// Ints implements the integer kind.
type Ints struct {
	*Simulator
	bits int
}

// Bits returns the integer width.
func (i *Ints) Bits() int {
	return i.bits
}

func (i *Ints) wrap(v int64) Int {
	if i.bits < 64 {
		shift := 64 - i.bits
		v = v << shift >> shift
	}
	return Int{v}
}

// Input creates secret values owned by the party.
func (i *Ints) Input(owner secret.Party, values []int64) []Int {
	i.Trace.op("input")
	result := make([]Int, len(values))
	for idx, v := range values {
		result[idx] = i.wrap(v)
	}
	return result
}

// Const returns a public value.
func (i *Ints) Const(v int64) Int {
	return i.wrap(v)
}

// Add returns a+b.
func (i *Ints) Add(a, b Int) Int {
	i.Trace.op("add")
	return i.wrap(a.v + b.v)
}

// Sub returns a-b.
func (i *Ints) Sub(a, b Int) Int {
	i.Trace.op("sub")
	return i.wrap(a.v - b.v)
}

// Mul returns a*b.
func (i *Ints) Mul(a, b Int) Int {
	i.Trace.op("mul")
	return i.wrap(a.v * b.v)
}

// Div returns a/b truncated toward zero. Division by zero gives -1
// for non-negative a and 1 for negative a, matching the restoring
// divider circuit.
func (i *Ints) Div(a, b Int) Int {
	i.Trace.op("div")
	if b.v == 0 {
		if a.v >= 0 {
			return i.wrap(-1)
		}
		return i.wrap(1)
	}
	return i.wrap(a.v / b.v)
}

// Equal tests if a==b.
func (i *Ints) Equal(a, b Int) Bit {
	i.Trace.op("eq")
	return Bit{a.v == b.v}
}

// LessThan tests if a<b.
func (i *Ints) LessThan(a, b Int) Bit {
	i.Trace.op("lt")
	return Bit{a.v < b.v}
}

// LessEqual tests if a<=b.
func (i *Ints) LessEqual(a, b Int) Bit {
	i.Trace.op("le")
	return Bit{a.v <= b.v}
}

// GreaterEqual tests if a>=b.
func (i *Ints) GreaterEqual(a, b Int) Bit {
	i.Trace.op("ge")
	return Bit{a.v >= b.v}
}

// Select returns t if c is set and f otherwise.
func (i *Ints) Select(c Bit, t, f Int) Int {
	i.Trace.op("select")
	if c.v {
		return t
	}
	return f
}

// Reveal reveals the values.
func (i *Ints) Reveal(values ...Int) ([]int64, error) {
	i.Trace.reveal(len(values))
	result := make([]int64, len(values))
	for idx, v := range values {
		result[idx] = v.v
	}
	return result, nil
}

// Reals implements the real kind with float64 arithmetic.
type Reals struct {
	*Simulator
}

// Input creates secret values owned by the party.
func (r *Reals) Input(owner secret.Party, values []float64) []Float {
	r.Trace.op("input")
	result := make([]Float, len(values))
	for idx, v := range values {
		result[idx] = Float{v}
	}
	return result
}

// Const returns a public value.
func (r *Reals) Const(v float64) Float {
	return Float{v}
}

// Add returns a+b.
func (r *Reals) Add(a, b Float) Float {
	r.Trace.op("fadd")
	return Float{a.v + b.v}
}

// Sub returns a-b.
func (r *Reals) Sub(a, b Float) Float {
	r.Trace.op("fsub")
	return Float{a.v - b.v}
}

// Mul returns a*b.
func (r *Reals) Mul(a, b Float) Float {
	r.Trace.op("fmul")
	return Float{a.v * b.v}
}

// Div returns a/b.
func (r *Reals) Div(a, b Float) Float {
	r.Trace.op("fdiv")
	return Float{a.v / b.v}
}

// Square returns a*a.
func (r *Reals) Square(a Float) Float {
	r.Trace.op("fsquare")
	return Float{a.v * a.v}
}

// Sqrt returns the square root of a.
func (r *Reals) Sqrt(a Float) Float {
	r.Trace.op("fsqrt")
	return Float{math.Sqrt(a.v)}
}

// Equal tests if a==b.
func (r *Reals) Equal(a, b Float) Bit {
	r.Trace.op("feq")
	return Bit{a.v == b.v}
}

// LessThan tests if a<b.
func (r *Reals) LessThan(a, b Float) Bit {
	r.Trace.op("flt")
	return Bit{a.v < b.v}
}

// LessEqual tests if a<=b.
func (r *Reals) LessEqual(a, b Float) Bit {
	r.Trace.op("fle")
	return Bit{a.v <= b.v}
}

// GreaterEqual tests if a>=b.
func (r *Reals) GreaterEqual(a, b Float) Bit {
	r.Trace.op("fge")
	return Bit{a.v >= b.v}
}

// Select returns t if c is set and f otherwise.
func (r *Reals) Select(c Bit, t, f Float) Float {
	r.Trace.op("fselect")
	if c.v {
		return t
	}
	return f
}

// Reveal reveals the values.
func (r *Reals) Reveal(values ...Float) ([]float64, error) {
	r.Trace.reveal(len(values))
	result := make([]float64, len(values))
	for idx, v := range values {
		result[idx] = v.v
	}
	return result, nil
}
