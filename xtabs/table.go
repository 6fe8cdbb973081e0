//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

package xtabs

import (
	"fmt"
	"io"
	"strconv"

	"github.com/markkurossi/tabulate"
)

// Table holds a value per category tuple in row-major order.
type Table[T any] struct {
	Shape []int
	Cells []T
}

// NewTable creates a table of the shape with all cells set to init.
func NewTable[T any](shape []int, init T) *Table[T] {
	size := 1
	for _, n := range shape {
		size *= n
	}
	cells := make([]T, size)
	for i := range cells {
		cells[i] = init
	}
	return &Table[T]{
		Shape: append([]int{}, shape...),
		Cells: cells,
	}
}

// Offset returns the cell offset of the category tuple.
func (t *Table[T]) Offset(idx ...int) int {
	if len(idx) != len(t.Shape) {
		panic(fmt.Sprintf("invalid index %v for shape %v", idx, t.Shape))
	}
	var offset int
	for d, i := range idx {
		if i < 0 || i >= t.Shape[d] {
			panic(fmt.Sprintf("index %v out of shape %v", idx, t.Shape))
		}
		offset = offset*t.Shape[d] + i
	}
	return offset
}

// At returns the value of the category tuple.
func (t *Table[T]) At(idx ...int) T {
	return t.Cells[t.Offset(idx...)]
}

// Row returns the cells of the row of a two-dimensional table.
func (t *Table[T]) Row(i int) []T {
	cols := t.Shape[len(t.Shape)-1]
	return t.Cells[i*cols : (i+1)*cols]
}

// Print prints the table. One-dimensional tables print a row per
// category. Two-dimensional tables print a matrix with the first
// dimension as rows. Higher dimensions print one row per tuple.
func (t *Table[T]) Print(out io.Writer, title string,
	format func(v T) string) {

	tab := tabulate.New(tabulate.UnicodeLight)

	switch len(t.Shape) {
	case 2:
		tab.Header(title).SetAlign(tabulate.ML)
		for j := 0; j < t.Shape[1]; j++ {
			tab.Header(fmt.Sprintf("%d", j)).SetAlign(tabulate.MR)
		}
		for i := 0; i < t.Shape[0]; i++ {
			row := tab.Row()
			row.Column(fmt.Sprintf("%d", i))
			for _, v := range t.Row(i) {
				row.Column(format(v))
			}
		}

	default:
		tab.Header("Category").SetAlign(tabulate.ML)
		tab.Header(title).SetAlign(tabulate.MR)
		for offset, v := range t.Cells {
			row := tab.Row()
			row.Column(fmt.Sprintf("%v", t.tuple(offset)))
			row.Column(format(v))
		}
	}
	tab.Print(out)
}

func (t *Table[T]) tuple(offset int) []int {
	result := make([]int, len(t.Shape))
	for d := len(t.Shape) - 1; d >= 0; d-- {
		result[d] = offset % t.Shape[d]
		offset /= t.Shape[d]
	}
	return result
}

// FormatInt formats an integer cell.
func FormatInt(v int64) string {
	return strconv.FormatInt(v, 10)
}

// FormatFloat formats a real cell. Undefined cells print as NaN.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Registers hold the secret accumulators of a group-by aggregation.
type Registers[V any] struct {
	Table[V]
}

func newRegisters[V any](shape []int, zero V) *Registers[V] {
	return &Registers[V]{
		Table: *NewTable(shape, zero),
	}
}
