//
// eval.go
//
// Copyright (c) 2019-2025 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"crypto/aes"

	"github.com/cockroachdb/errors"
	"github.com/markkurossi/xtabs/ot"
)

// Eval evaluates the garbled circuit. The wires argument holds the
// active labels of the constant and input wires and receives the
// active labels of all gate outputs.
func (c *Circuit) Eval(key []byte, wires []ot.Label, tables []ot.Label) error {
	if len(wires) < c.NumWires {
		return errors.Newf("too few wires: %d < %d", len(wires), c.NumWires)
	}
	if len(tables) != c.Cost() {
		return errors.Newf("invalid garbled tables: got %d, expected %d",
			len(tables), c.Cost())
	}
	alg, err := aes.NewCipher(key)
	if err != nil {
		return err
	}

	var data ot.LabelData
	var pos int

	for id, gate := range c.Gates {
		a := wires[gate.Input0]
		b := wires[gate.Input1]

		switch gate.Op {
		case XOR, XNOR:
			a.Xor(b)
			wires[gate.Output] = a

		case INV:
			wires[gate.Output] = a

		case AND, OR:
			entry := tables[pos+idx(a, b)]
			pos += 4
			wires[gate.Output] = decrypt(alg, a, b, uint32(id), entry, &data)

		default:
			return errors.Newf("invalid gate type %s", gate.Op)
		}
	}
	return nil
}
