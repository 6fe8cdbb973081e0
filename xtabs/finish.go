//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

package xtabs

import (
	"math"

	"github.com/cockroachdb/errors"
	"github.com/markkurossi/xtabs/secret"
)

// RevealTable reveals the registers.
func RevealTable[V, B any, C secret.Number](arith secret.Arith[V, B, C],
	regs *Registers[V]) (*Table[C], error) {

	values, err := arith.Reveal(regs.Cells...)
	if err != nil {
		return nil, err
	}
	return &Table[C]{
		Shape: regs.Shape,
		Cells: values,
	}, nil
}

// RevealSum computes and reveals the per-category sums.
func (e *Engine[I, V, B, C]) RevealSum(g *Grouping[I, B], values []V) (
	*Table[C], error) {

	sums, err := e.Sum(g, values)
	if err != nil {
		return nil, err
	}
	return RevealTable(e.Values, sums)
}

// RevealFrequencies computes and reveals the per-category record
// counts.
func (e *Engine[I, V, B, C]) RevealFrequencies(g *Grouping[I, B]) (
	*Table[int64], error) {

	return RevealTable(e.Ints, e.Frequencies(g))
}

// AverageRevealed reveals the per-category sums and counts and divides
// them in cleartext. The averages of empty categories are NaN. The
// counts are returned with the averages.
func (e *Engine[I, V, B, C]) AverageRevealed(g *Grouping[I, B],
	values []V) (avg *Table[float64], counts *Table[int64], err error) {

	if len(values) != g.Rows {
		return nil, nil, errors.Wrapf(ErrShape, "%d values for %d rows",
			len(values), g.Rows)
	}
	zero := e.Values.Const(0)
	izero := e.Ints.Const(0)
	ione := e.Ints.Const(1)

	sums := newRegisters(g.Shape, zero)
	freqs := newRegisters(g.Shape, izero)
	g.Scan(func(record, cell int, match B) {
		sums.Cells[cell] = e.Values.Add(sums.Cells[cell],
			e.Values.Select(match, values[record], zero))
		freqs.Cells[cell] = e.Ints.Add(freqs.Cells[cell],
			e.Ints.Select(match, ione, izero))
	})

	s, err := RevealTable(e.Values, sums)
	if err != nil {
		return nil, nil, err
	}
	counts, err = RevealTable(e.Ints, freqs)
	if err != nil {
		return nil, nil, err
	}
	avg = NewTable(g.Shape, math.NaN())
	for i, n := range counts.Cells {
		if n != 0 {
			avg.Cells[i] = float64(s.Cells[i]) / float64(n)
		}
	}
	return avg, counts, nil
}

// AverageSecret divides the secret sums by the secret counts and
// reveals only the averages with a defined bit per category. The
// averages of empty categories are NaN. Integer values give truncated
// averages.
func (e *Engine[I, V, B, C]) AverageSecret(g *Grouping[I, B],
	values []V) (*Table[float64], error) {

	sums, counts, err := e.SumCount(g, values)
	if err != nil {
		return nil, err
	}
	zero := e.Values.Const(0)

	means := make([]V, len(sums.Cells))
	defined := make([]B, len(sums.Cells))
	for i := range sums.Cells {
		means[i] = e.Values.Div(sums.Cells[i], counts.Cells[i])
		defined[i] = e.Values.Not(e.Values.Equal(counts.Cells[i], zero))
	}
	return e.revealDefined(g.Shape, means, defined)
}

// Mode computes for each row of a two-dimensional grouping the column
// with the highest count. The scan starts from a maximum of zero and
// ties go to the later column, so a row without records reports the
// last column.
func (e *Engine[I, V, B, C]) Mode(g *Grouping[I, B]) (*Table[int64], error) {
	if len(g.Shape) != 2 {
		return nil, errors.Wrapf(ErrShape, "mode needs 2 dimensions, got %d",
			len(g.Shape))
	}
	freqs := e.Frequencies(g)

	rows := g.Shape[0]
	modes := newRegisters([]int{rows}, e.Ints.Const(-1))
	for i := 0; i < rows; i++ {
		best := e.Ints.Const(0)
		arg := e.Ints.Const(-1)
		for j, f := range freqs.Row(i) {
			geq := e.Ints.GreaterEqual(f, best)
			best = e.Ints.Select(geq, f, best)
			arg = e.Ints.Select(geq, e.Ints.Const(int64(j)), arg)
		}
		modes.Cells[i] = arg
	}
	return RevealTable(e.Ints, modes)
}

type realOps[V any] interface {
	Square(a V) V
	Sqrt(a V) V
}

// StdDev computes the per-category standard deviations with two passes
// over the records. The first pass computes the averages and the
// second the squared deviations. The ddof is subtracted from the
// counts and must be 0 or 1. Categories with no more than ddof records
// report NaN. The value kind must support square roots.
func (e *Engine[I, V, B, C]) StdDev(g *Grouping[I, B], values []V,
	ddof int) (*Table[float64], error) {

	if ddof != 0 && ddof != 1 {
		return nil, errors.Newf("invalid ddof %d", ddof)
	}
	reals, ok := e.Values.(realOps[V])
	if !ok {
		return nil, errors.Newf("%T does not support square roots", e.Values)
	}
	sums, counts, err := e.SumCount(g, values)
	if err != nil {
		return nil, err
	}
	zero := e.Values.Const(0)

	means := make([]V, len(sums.Cells))
	for i := range sums.Cells {
		means[i] = e.Values.Div(sums.Cells[i], counts.Cells[i])
	}

	squares := newRegisters(g.Shape, zero)
	g.Scan(func(record, cell int, match B) {
		d := e.Values.Select(match,
			e.Values.Sub(values[record], means[cell]), zero)
		squares.Cells[cell] = e.Values.Add(squares.Cells[cell],
			reals.Square(d))
	})

	ddofs := e.Values.Const(C(ddof))
	devs := make([]V, len(squares.Cells))
	defined := make([]B, len(squares.Cells))
	for i := range squares.Cells {
		n := e.Values.Sub(counts.Cells[i], ddofs)
		devs[i] = reals.Sqrt(e.Values.Div(squares.Cells[i], n))
		defined[i] = e.Values.LessThan(zero, n)
	}
	return e.revealDefined(g.Shape, devs, defined)
}

func (e *Engine[I, V, B, C]) revealDefined(shape []int, values []V,
	defined []B) (*Table[float64], error) {

	result, err := e.Values.Reveal(values...)
	if err != nil {
		return nil, err
	}
	bits, err := e.Values.RevealBits(defined...)
	if err != nil {
		return nil, err
	}
	table := NewTable(shape, math.NaN())
	for i, v := range result {
		if bits[i] {
			table.Cells[i] = float64(v)
		}
	}
	return table, nil
}
