//
// Copyright (c) 2020-2025 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"github.com/cockroachdb/errors"
)

// Compute evaluates the circuit in cleartext.
func (c *Circuit) Compute(garbler, evaluator []bool) ([]bool, error) {
	if len(garbler) != len(c.Garbler) {
		return nil, errors.Newf("invalid garbler inputs: got %d, expected %d",
			len(garbler), len(c.Garbler))
	}
	if len(evaluator) != len(c.Evaluator) {
		return nil, errors.Newf(
			"invalid evaluator inputs: got %d, expected %d",
			len(evaluator), len(c.Evaluator))
	}

	wires := make([]bool, c.NumWires)
	wires[One] = true
	for i, w := range c.Garbler {
		wires[w] = garbler[i]
	}
	for i, w := range c.Evaluator {
		wires[w] = evaluator[i]
	}

	for _, gate := range c.Gates {
		a := wires[gate.Input0]
		b := wires[gate.Input1]

		var result bool
		switch gate.Op {
		case XOR:
			result = a != b
		case XNOR:
			result = a == b
		case AND:
			result = a && b
		case OR:
			result = a || b
		case INV:
			result = !a
		default:
			return nil, errors.Newf("invalid gate %s", gate.Op)
		}
		wires[gate.Output] = result
	}

	result := make([]bool, len(c.Outputs))
	for i, w := range c.Outputs {
		result[i] = wires[w]
	}
	return result, nil
}
