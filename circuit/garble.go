//
// garble.go
//
// Copyright (c) 2019-2025 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"crypto/aes"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/markkurossi/xtabs/ot"
)

// Garbled holds the garbler's view of a garbled circuit.
type Garbled struct {
	// Key is the fixed AES key of the gate encryption.
	Key []byte
	// R is the free-XOR offset. Its S bit is set.
	R ot.Label
	// Wires holds the 0 and 1 labels of all circuit wires.
	Wires []ot.Wire
	// Tables holds four rows for each AND and OR gate in gate order.
	Tables []ot.Label
}

// Garble garbles the circuit with free-XOR and point-and-permute.
// XOR, XNOR, and INV gates are free. AND and OR gates get a four row
// table indexed by the S bits of the input labels.
func (c *Circuit) Garble(rand io.Reader) (*Garbled, error) {
	key := make([]byte, 16)
	if _, err := io.ReadFull(rand, key); err != nil {
		return nil, err
	}
	alg, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	r, err := ot.NewLabel(rand)
	if err != nil {
		return nil, err
	}
	r.SetS(true)

	g := &Garbled{
		Key:    key,
		R:      r,
		Wires:  make([]ot.Wire, c.NumWires),
		Tables: make([]ot.Label, 0, c.Cost()),
	}

	inputs := []Wire{Zero, One}
	inputs = append(inputs, c.Garbler...)
	inputs = append(inputs, c.Evaluator...)
	for _, w := range inputs {
		g.Wires[w], err = ot.NewWire(rand, r)
		if err != nil {
			return nil, err
		}
	}

	var data ot.LabelData
	var table [4]ot.Label

	for id, gate := range c.Gates {
		a := g.Wires[gate.Input0]
		b := g.Wires[gate.Input1]

		switch gate.Op {
		case XOR, XNOR:
			l0 := a.L0
			l0.Xor(b.L0)
			l1 := l0
			l1.Xor(r)
			out := ot.Wire{
				L0: l0,
				L1: l1,
			}
			if gate.Op == XNOR {
				out = out.Swap()
			}
			g.Wires[gate.Output] = out

		case INV:
			g.Wires[gate.Output] = a.Swap()

		case AND, OR:
			out, err := ot.NewWire(rand, r)
			if err != nil {
				return nil, err
			}
			g.Wires[gate.Output] = out

			for ai := 0; ai < 2; ai++ {
				for bi := 0; bi < 2; bi++ {
					av := ai == 1
					bv := bi == 1
					var cv bool
					if gate.Op == AND {
						cv = av && bv
					} else {
						cv = av || bv
					}
					al := a.Label(av)
					bl := b.Label(bv)
					table[idx(al, bl)] = encrypt(alg, al, bl, out.Label(cv),
						uint32(id), &data)
				}
			}
			g.Tables = append(g.Tables, table[:]...)

		default:
			return nil, errors.Newf("invalid gate type %s", gate.Op)
		}
	}

	return g, nil
}

// Decode decodes the output labels into bits.
func (g *Garbled) Decode(c *Circuit, labels []ot.Label) ([]bool, error) {
	if len(labels) != len(c.Outputs) {
		return nil, errors.Newf("invalid output labels: got %d, expected %d",
			len(labels), len(c.Outputs))
	}
	result := make([]bool, len(labels))
	for i, l := range labels {
		wire := g.Wires[c.Outputs[i]]
		switch {
		case l.Equal(wire.L0):
			result[i] = false
		case l.Equal(wire.L1):
			result[i] = true
		default:
			return nil, errors.Newf("unknown label %s for output %d", l, i)
		}
	}
	return result, nil
}
