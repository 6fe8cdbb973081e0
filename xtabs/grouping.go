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

// Grouping matches records against the category tuples of one or more
// grouping dimensions.
type Grouping[I, B any] struct {
	ints    secret.Arith[I, B, int64]
	columns [][]I
	indices []*Index[I]
	Rows    int
	Shape   []int
}

// Group creates a grouping over the columns. The column d is matched
// against the categories of indices[d]. All columns must have the same
// number of rows.
func (e *Engine[I, V, B, C]) Group(columns [][]I, indices []*Index[I]) (
	*Grouping[I, B], error) {

	if len(columns) == 0 {
		return nil, errors.Wrap(ErrShape, "no grouping columns")
	}
	if len(columns) != len(indices) {
		return nil, errors.Wrapf(ErrShape, "%d columns, %d indices",
			len(columns), len(indices))
	}
	rows := len(columns[0])
	shape := make([]int, len(indices))
	for d, col := range columns {
		if len(col) != rows {
			return nil, errors.Wrapf(ErrShape,
				"column %d has %d rows, expected %d", d, len(col), rows)
		}
		if indices[d] == nil || indices[d].K < 1 {
			return nil, errors.Wrapf(ErrShape, "invalid index %d", d)
		}
		shape[d] = indices[d].K
	}
	return &Grouping[I, B]{
		ints:    e.Ints,
		columns: columns,
		indices: indices,
		Rows:    rows,
		Shape:   shape,
	}, nil
}

// Cells returns the number of category tuples.
func (g *Grouping[I, B]) Cells() int {
	size := 1
	for _, k := range g.Shape {
		size *= k
	}
	return size
}

// Scan calls fn for every record and category tuple in row-major order
// with the secret bit telling if the record belongs to the tuple. The
// tuple bits are the AND of the per-dimension equality bits and the
// prefix ANDs are shared between tuples.
func (g *Grouping[I, B]) Scan(fn func(record, cell int, match B)) {
	eq := make([][]B, len(g.Shape))
	for d, k := range g.Shape {
		eq[d] = make([]B, k)
	}

	var walk func(record, d, cell int, prefix B)
	walk = func(record, d, cell int, prefix B) {
		for j, bit := range eq[d] {
			match := bit
			if d > 0 {
				match = g.ints.And(prefix, bit)
			}
			next := cell*g.Shape[d] + j
			if d+1 == len(g.Shape) {
				fn(record, next, match)
			} else {
				walk(record, d+1, next, match)
			}
		}
	}

	for r := 0; r < g.Rows; r++ {
		for d, col := range g.columns {
			for j, code := range g.indices[d].Codes {
				eq[d][j] = g.ints.Equal(col[r], code)
			}
		}
		var none B
		walk(r, 0, 0, none)
	}
}

// Sum accumulates the values per category tuple.
func (e *Engine[I, V, B, C]) Sum(g *Grouping[I, B], values []V) (
	*Registers[V], error) {

	sums, _, err := e.accumulate(g, values, false)
	return sums, err
}

// SumCount accumulates the values and the record counts per category
// tuple in one pass. The counts are of the value kind.
func (e *Engine[I, V, B, C]) SumCount(g *Grouping[I, B], values []V) (
	sums, counts *Registers[V], err error) {

	return e.accumulate(g, values, true)
}

// Count counts the records per category tuple. The counts are of the
// value kind.
func (e *Engine[I, V, B, C]) Count(g *Grouping[I, B]) *Registers[V] {
	zero := e.Values.Const(0)
	one := e.Values.Const(1)
	counts := newRegisters(g.Shape, zero)
	g.Scan(func(record, cell int, match B) {
		counts.Cells[cell] = e.Values.Add(counts.Cells[cell],
			e.Values.Select(match, one, zero))
	})
	return counts
}

// Frequencies counts the records per category tuple. The counts are of
// the integer kind.
func (e *Engine[I, V, B, C]) Frequencies(g *Grouping[I, B]) *Registers[I] {
	zero := e.Ints.Const(0)
	one := e.Ints.Const(1)
	freqs := newRegisters(g.Shape, zero)
	g.Scan(func(record, cell int, match B) {
		freqs.Cells[cell] = e.Ints.Add(freqs.Cells[cell],
			e.Ints.Select(match, one, zero))
	})
	return freqs
}

func (e *Engine[I, V, B, C]) accumulate(g *Grouping[I, B], values []V,
	count bool) (sums, counts *Registers[V], err error) {

	if len(values) != g.Rows {
		return nil, nil, errors.Wrapf(ErrShape, "%d values for %d rows",
			len(values), g.Rows)
	}
	zero := e.Values.Const(0)
	one := e.Values.Const(1)
	sums = newRegisters(g.Shape, zero)
	if count {
		counts = newRegisters(g.Shape, zero)
	}
	g.Scan(func(record, cell int, match B) {
		sums.Cells[cell] = e.Values.Add(sums.Cells[cell],
			e.Values.Select(match, values[record], zero))
		if count {
			counts.Cells[cell] = e.Values.Add(counts.Cells[cell],
				e.Values.Select(match, one, zero))
		}
	})
	return sums, counts, nil
}
