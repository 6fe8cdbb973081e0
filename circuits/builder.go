//
// Copyright (c) 2019-2025 Markku Rossi
//
// All rights reserved.
//

// Package circuits implements a gate-level circuit builder and the
// arithmetic circuits of the secret integer and fixed-point types.
// Wire vectors are little-endian: index 0 holds the least significant
// bit.
package circuits

import (
	"github.com/markkurossi/xtabs/circuit"
)

// Builder builds a circuit gate by gate. Gates with constant inputs
// are folded at build time so public values cost nothing. The builder
// keeps all gates so that later circuits can reuse earlier results.
type Builder struct {
	numWires  int
	garbler   []circuit.Wire
	evaluator []circuit.Wire
	gates     []circuit.Gate
	inv       map[circuit.Wire]circuit.Wire
}

// NewBuilder creates a new circuit builder.
func NewBuilder() *Builder {
	return &Builder{
		numWires: 2,
		inv: map[circuit.Wire]circuit.Wire{
			circuit.Zero: circuit.One,
			circuit.One:  circuit.Zero,
		},
	}
}

// NumGates returns the number of gates added so far.
func (b *Builder) NumGates() int {
	return len(b.gates)
}

// NumInputs returns the number of garbler and evaluator inputs.
func (b *Builder) NumInputs() (garbler, evaluator int) {
	return len(b.garbler), len(b.evaluator)
}

func (b *Builder) newWire() circuit.Wire {
	w := circuit.Wire(b.numWires)
	b.numWires++
	return w
}

// GarblerInput allocates a new garbler input wire.
func (b *Builder) GarblerInput() circuit.Wire {
	w := b.newWire()
	b.garbler = append(b.garbler, w)
	return w
}

// EvaluatorInput allocates a new evaluator input wire.
func (b *Builder) EvaluatorInput() circuit.Wire {
	w := b.newWire()
	b.evaluator = append(b.evaluator, w)
	return w
}

// Const returns the constant wire for the bit value.
func (b *Builder) Const(v bool) circuit.Wire {
	if v {
		return circuit.One
	}
	return circuit.Zero
}

// ConstWires returns the n lowest bits of the value as constant wires.
func (b *Builder) ConstWires(v uint64, n int) []circuit.Wire {
	result := make([]circuit.Wire, n)
	for i := range result {
		result[i] = b.Const(i < 64 && v&(1<<i) != 0)
	}
	return result
}

// IsConst tests if the wire is a constant wire and returns its value.
func IsConst(w circuit.Wire) (value, ok bool) {
	switch w {
	case circuit.Zero:
		return false, true
	case circuit.One:
		return true, true
	default:
		return false, false
	}
}

func (b *Builder) gate(op circuit.Operation, i0, i1 circuit.Wire) circuit.Wire {
	o := b.newWire()
	b.gates = append(b.gates, circuit.Gate{
		Input0: i0,
		Input1: i1,
		Output: o,
		Op:     op,
	})
	return o
}

// INV returns NOT a.
func (b *Builder) INV(a circuit.Wire) circuit.Wire {
	if o, ok := b.inv[a]; ok {
		return o
	}
	o := b.gate(circuit.INV, a, a)
	b.inv[a] = o
	b.inv[o] = a
	return o
}

// XOR returns a XOR b.
func (b *Builder) XOR(x, y circuit.Wire) circuit.Wire {
	if v, ok := IsConst(x); ok {
		if v {
			return b.INV(y)
		}
		return y
	}
	if v, ok := IsConst(y); ok {
		if v {
			return b.INV(x)
		}
		return x
	}
	if x == y {
		return circuit.Zero
	}
	if o, ok := b.inv[x]; ok && o == y {
		return circuit.One
	}
	return b.gate(circuit.XOR, x, y)
}

// XNOR returns NOT(a XOR b).
func (b *Builder) XNOR(x, y circuit.Wire) circuit.Wire {
	if _, ok := IsConst(x); ok {
		return b.INV(b.XOR(x, y))
	}
	if _, ok := IsConst(y); ok {
		return b.INV(b.XOR(x, y))
	}
	if x == y {
		return circuit.One
	}
	return b.gate(circuit.XNOR, x, y)
}

// AND returns a AND b.
func (b *Builder) AND(x, y circuit.Wire) circuit.Wire {
	if v, ok := IsConst(x); ok {
		if v {
			return y
		}
		return circuit.Zero
	}
	if v, ok := IsConst(y); ok {
		if v {
			return x
		}
		return circuit.Zero
	}
	if x == y {
		return x
	}
	if o, ok := b.inv[x]; ok && o == y {
		return circuit.Zero
	}
	return b.gate(circuit.AND, x, y)
}

// OR returns a OR b.
func (b *Builder) OR(x, y circuit.Wire) circuit.Wire {
	if v, ok := IsConst(x); ok {
		if v {
			return circuit.One
		}
		return y
	}
	if v, ok := IsConst(y); ok {
		if v {
			return circuit.One
		}
		return x
	}
	if x == y {
		return x
	}
	if o, ok := b.inv[x]; ok && o == y {
		return circuit.One
	}
	return b.gate(circuit.OR, x, y)
}

// Program is a compiled circuit with the mapping from circuit inputs
// to the builder's input allocation order.
type Program struct {
	Circuit *circuit.Circuit
	// Garbler holds, for each circuit garbler input, the index of the
	// builder garbler input.
	Garbler []int
	// Evaluator holds, for each circuit evaluator input, the index of
	// the builder evaluator input.
	Evaluator []int
}

// Compile compiles a circuit computing the output wires. Only gates
// and inputs the outputs depend on are included. Wires are renumbered
// densely.
func (b *Builder) Compile(outputs []circuit.Wire) *Program {
	live := make([]bool, b.numWires)
	for _, w := range outputs {
		live[w] = true
	}
	var numLive int
	for i := len(b.gates) - 1; i >= 0; i-- {
		g := &b.gates[i]
		if !live[g.Output] {
			continue
		}
		numLive++
		live[g.Input0] = true
		if g.Op != circuit.INV {
			live[g.Input1] = true
		}
	}

	mapping := make([]circuit.Wire, b.numWires)
	next := circuit.Wire(2)
	mapping[circuit.Zero] = circuit.Zero
	mapping[circuit.One] = circuit.One

	prog := &Program{
		Circuit: &circuit.Circuit{
			Gates: make([]circuit.Gate, 0, numLive),
		},
	}
	circ := prog.Circuit

	for idx, w := range b.garbler {
		if live[w] {
			mapping[w] = next
			next++
			circ.Garbler = append(circ.Garbler, mapping[w])
			prog.Garbler = append(prog.Garbler, idx)
		}
	}
	for idx, w := range b.evaluator {
		if live[w] {
			mapping[w] = next
			next++
			circ.Evaluator = append(circ.Evaluator, mapping[w])
			prog.Evaluator = append(prog.Evaluator, idx)
		}
	}
	for _, g := range b.gates {
		if !live[g.Output] {
			continue
		}
		mapping[g.Output] = next
		next++

		gate := circuit.Gate{
			Input0: mapping[g.Input0],
			Input1: mapping[g.Input1],
			Output: mapping[g.Output],
			Op:     g.Op,
		}
		if g.Op == circuit.INV {
			gate.Input1 = gate.Input0
		}
		circ.Gates = append(circ.Gates, gate)
		circ.Stats[g.Op]++
	}
	circ.NumWires = int(next)

	circ.Outputs = make([]circuit.Wire, len(outputs))
	for i, w := range outputs {
		circ.Outputs[i] = mapping[w]
	}
	return prog
}
