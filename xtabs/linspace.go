//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

package xtabs

import (
	"github.com/cockroachdb/errors"
)

// Extremes returns the minimum and maximum of the column.
func (e *Engine[I, V, B, C]) Extremes(column []V) (lo, hi V, err error) {
	if len(column) == 0 {
		return lo, hi, errors.Wrap(ErrShape, "empty column")
	}
	lo = column[0]
	hi = column[0]
	for _, v := range column[1:] {
		lo = e.Values.Select(e.Values.LessThan(v, lo), v, lo)
		hi = e.Values.Select(e.Values.LessThan(hi, v), v, hi)
	}
	return lo, hi, nil
}

// Linspace returns n evenly spaced edges from lo to hi. The last
// edge is hi itself so rounding in the step does not leave the
// maximum outside the last bin.
func (e *Engine[I, V, B, C]) Linspace(lo, hi V, n int) ([]V, error) {
	if n < 2 {
		return nil, errors.Wrapf(ErrTooFewEdges, "%d edges", n)
	}
	step := e.Values.Div(e.Values.Sub(hi, lo), e.Values.Const(C(n-1)))

	edges := make([]V, n)
	edges[0] = lo
	for i := 1; i < n-1; i++ {
		edges[i] = e.Values.Add(edges[i-1], step)
	}
	edges[n-1] = hi

	return edges, nil
}
