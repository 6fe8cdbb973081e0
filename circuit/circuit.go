//
// Copyright (c) 2019-2025 Markku Rossi
//
// All rights reserved.
//

// Package circuit implements boolean circuits and the two-party
// garbled circuit protocol that evaluates them.
package circuit

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
)

// Operation specifies gate function.
type Operation byte

// Gate functions.
const (
	XOR Operation = iota
	XNOR
	AND
	OR
	INV
)

func (op Operation) String() string {
	switch op {
	case XOR:
		return "XOR"
	case XNOR:
		return "XNOR"
	case AND:
		return "AND"
	case OR:
		return "OR"
	case INV:
		return "INV"
	default:
		return fmt.Sprintf("{Operation %d}", op)
	}
}

// Free tests if the operation is free to garble and evaluate.
func (op Operation) Free() bool {
	return op != AND && op != OR
}

// Stats holds statistics about circuit operations.
type Stats [INV + 1]int

// Add adds the argument statistics to this statistics object.
func (stats *Stats) Add(o Stats) {
	for i, v := range o {
		stats[i] += v
	}
}

// Count returns the total number of gates.
func (stats Stats) Count() int {
	var count int
	for _, v := range stats {
		count += v
	}
	return count
}

// Cost returns the number of garbled table rows the gates need.
func (stats Stats) Cost() int {
	return (stats[AND] + stats[OR]) * 4
}

func (stats Stats) String() string {
	var result string
	for i, v := range stats {
		if len(result) > 0 {
			result += " "
		}
		result += fmt.Sprintf("%s=%d", Operation(i), v)
	}
	return result
}

// Wire specifies a wire ID.
type Wire uint32

// Constant wires present in every circuit.
const (
	Zero Wire = 0
	One  Wire = 1
)

func (w Wire) String() string {
	return fmt.Sprintf("w%d", w)
}

// Gate specifies a circuit gate. INV gates use only Input0.
type Gate struct {
	Input0 Wire
	Input1 Wire
	Output Wire
	Op     Operation
}

func (g Gate) String() string {
	if g.Op == INV {
		return fmt.Sprintf("%v %v %v", g.Input0, g.Op, g.Output)
	}
	return fmt.Sprintf("%v %v %v %v", g.Input0, g.Input1, g.Op, g.Output)
}

// Circuit specifies a boolean circuit. Wires 0 and 1 hold the
// constant values false and true. Gates are in topological order:
// gate inputs are constants, inputs, or outputs of earlier gates.
type Circuit struct {
	NumWires  int
	Garbler   []Wire
	Evaluator []Wire
	Outputs   []Wire
	Gates     []Gate
	Stats     Stats
}

func (c *Circuit) String() string {
	return fmt.Sprintf("#gates=%d (%s) #w=%d in=%d/%d out=%d",
		len(c.Gates), c.Stats, c.NumWires, len(c.Garbler),
		len(c.Evaluator), len(c.Outputs))
}

// Cost returns the number of garbled table rows the circuit needs.
func (c *Circuit) Cost() int {
	return c.Stats.Cost()
}

// Digest computes a digest of the circuit structure. The parties
// compare digests before running the protocol to verify they are
// evaluating the same circuit.
func (c *Circuit) Digest() []byte {
	h := sha256.New()
	var buf [16]byte

	put := func(vals ...uint32) {
		for _, v := range vals {
			binary.BigEndian.PutUint32(buf[:], v)
			h.Write(buf[:4])
		}
	}
	putWires := func(wires []Wire) {
		put(uint32(len(wires)))
		for _, w := range wires {
			put(uint32(w))
		}
	}

	put(uint32(c.NumWires))
	putWires(c.Garbler)
	putWires(c.Evaluator)
	putWires(c.Outputs)
	put(uint32(len(c.Gates)))
	for _, g := range c.Gates {
		put(uint32(g.Op), uint32(g.Input0), uint32(g.Input1),
			uint32(g.Output))
	}
	return h.Sum(nil)
}
