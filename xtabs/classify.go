//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

package xtabs

import (
	"github.com/cockroachdb/errors"
	"github.com/markkurossi/xtabs/secret"
)

// ValidateEdges checks that the public bin edges are strictly
// ascending and define at least one bin.
func ValidateEdges[C secret.Number](edges []C) error {
	if len(edges) < 2 {
		return errors.Wrapf(ErrTooFewEdges, "%d edges", len(edges))
	}
	for i := 1; i < len(edges); i++ {
		if edges[i] <= edges[i-1] {
			return errors.Wrapf(ErrNotAscending, "edge %d: %v <= %v",
				i, edges[i], edges[i-1])
		}
	}
	return nil
}

// Classify returns the code of the bin containing the value. The bin i
// is the interval (edges[i], edges[i+1]] and the first bin also
// contains edges[0]. The classifier visits all edges. Values outside
// the edges are handled according to the policy.
func (e *Engine[I, V, B, C]) Classify(value V, edges []V, ids *Index[I],
	policy Policy) I {

	var found B
	var result I

	switch policy {
	case Clamp:
		found = e.Ints.Bit(false)
		result = ids.Codes[ids.K-1]
	default:
		// Values below the first edge keep the OutOfRange code.
		found = e.Values.LessThan(value, edges[0])
		result = e.Ints.Const(OutOfRange)
	}
	for i := 1; i < len(edges); i++ {
		leq := e.Values.LessEqual(value, edges[i])
		result = e.Ints.Select(found, result,
			e.Ints.Select(leq, ids.Codes[i-1], result))
		found = e.Ints.Or(found, leq)
	}
	return result
}

// ClassifyColumn classifies all values of the column. It returns the
// codes and the index of the bins.
func (e *Engine[I, V, B, C]) ClassifyColumn(column, edges []V,
	policy Policy) ([]I, *Index[I], error) {

	if len(edges) < 2 {
		return nil, nil, errors.Wrapf(ErrTooFewEdges, "%d edges", len(edges))
	}
	ids, err := e.Index(len(edges) - 1)
	if err != nil {
		return nil, nil, err
	}
	codes := make([]I, len(column))
	for i, v := range column {
		codes[i] = e.Classify(v, edges, ids, policy)
	}
	return codes, ids, nil
}
