//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

package plain

import (
	"bytes"
	"math"
	"testing"

	"github.com/markkurossi/xtabs/secret"
)

func TestIntsWrap(t *testing.T) {
	ints := New().Ints(8)

	tests := []struct {
		a, b int64
		op   func(a, b Int) Int
		want int64
	}{
		{100, 100, ints.Add, -56},
		{-128, 1, ints.Sub, 127},
		{16, 16, ints.Mul, 0},
		{-7, 2, ints.Div, -3},
		{7, 0, ints.Div, -1},
		{-7, 0, ints.Div, 1},
		{-128, -1, ints.Div, -128},
	}
	for _, test := range tests {
		got, err := ints.Reveal(test.op(ints.Const(test.a), ints.Const(test.b)))
		if err != nil {
			t.Fatal(err)
		}
		if got[0] != test.want {
			t.Errorf("%d op %d: got %d, expected %d",
				test.a, test.b, got[0], test.want)
		}
	}
}

func TestReals(t *testing.T) {
	reals := New().Reals()
	v := reals.Input(secret.Alice, []float64{2.25})
	r, err := reals.Reveal(reals.Sqrt(v[0]), reals.Square(v[0]))
	if err != nil {
		t.Fatal(err)
	}
	if r[0] != 1.5 || r[1] != 5.0625 {
		t.Errorf("got %v", r)
	}
	nan, _ := reals.Reveal(reals.Div(reals.Const(0), reals.Const(0)))
	if !math.IsNaN(nan[0]) {
		t.Errorf("0/0: got %v", nan[0])
	}
}

func TestTrace(t *testing.T) {
	run := func(a, b int64) *Trace {
		sim := New()
		ints := sim.Ints(32)
		x := ints.Input(secret.Alice, []int64{a})[0]
		y := ints.Input(secret.Bob, []int64{b})[0]
		c := ints.LessThan(x, y)
		ints.Reveal(ints.Select(c, x, y))
		return sim.Trace
	}
	t1 := run(1, 2)
	t2 := run(5, -3)
	if !bytes.Equal(t1.Digest(), t2.Digest()) {
		t.Errorf("traces differ for equal shapes")
	}
	if t1.Reveals != 1 || t1.Revealed != 1 {
		t.Errorf("reveals: %d/%d", t1.Reveals, t1.Revealed)
	}
	if t1.Ops["select"] != 1 || t1.Count() != 5 {
		t.Errorf("ops: %v", t1.Ops)
	}
}
