//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

package gc

import (
	"math"
	"testing"

	"github.com/markkurossi/xtabs/env"
	"github.com/markkurossi/xtabs/p2p"
	"github.com/markkurossi/xtabs/secret"
)

type result[T any] struct {
	values T
	err    error
}

// runPair runs f as both parties and returns Alice's and Bob's
// results.
func runPair[T any](t *testing.T, f func(s *Session) (T, error)) (T, T) {
	t.Helper()

	aconn, bconn := p2p.Pipe()

	run := func(conn *p2p.Conn, party secret.Party, done chan result[T]) {
		s, err := NewSession(&env.Config{}, conn, party)
		if err != nil {
			done <- result[T]{err: err}
			return
		}
		v, err := f(s)
		if err != nil {
			conn.Close()
		}
		done <- result[T]{values: v, err: err}
	}
	aliceDone := make(chan result[T])
	bobDone := make(chan result[T])
	go run(aconn, secret.Alice, aliceDone)
	go run(bconn, secret.Bob, bobDone)

	r0 := <-aliceDone
	r1 := <-bobDone
	if r0.err != nil {
		t.Fatalf("alice: %v", r0.err)
	}
	if r1.err != nil {
		t.Fatalf("bob: %v", r1.err)
	}
	return r0.values, r1.values
}

// own returns the values if the session's party owns them and zeros
// otherwise.
func own[C any](s *Session, owner secret.Party, values []C) []C {
	if s.Self() == owner {
		return values
	}
	return make([]C, len(values))
}

func TestInts(t *testing.T) {
	x := []int64{17, -40, 0, 1000}
	y := []int64{-5, 7, 3, 0}

	a, b := runPair(t, func(s *Session) ([]int64, error) {
		ints := s.Ints(16)
		xs := ints.Input(secret.Alice, own(s, secret.Alice, x))
		ys := ints.Input(secret.Bob, own(s, secret.Bob, y))

		var outputs []Int
		for i := range xs {
			outputs = append(outputs,
				ints.Add(xs[i], ys[i]),
				ints.Sub(xs[i], ys[i]),
				ints.Mul(xs[i], ys[i]),
				ints.Div(xs[i], ys[i]),
				ints.Select(ints.LessThan(xs[i], ys[i]),
					ints.Const(1), ints.Const(0)),
				ints.Select(ints.Equal(xs[i], ys[i]),
					ints.Const(1), ints.Const(0)),
			)
		}
		return ints.Reveal(outputs...)
	})

	for i := range x {
		div := int64(-1)
		if y[i] != 0 {
			div = x[i] / y[i]
		}
		lt := int64(0)
		if x[i] < y[i] {
			lt = 1
		}
		eq := int64(0)
		if x[i] == y[i] {
			eq = 1
		}
		expected := []int64{
			x[i] + y[i], x[i] - y[i], int64(int16(x[i] * y[i])), div, lt, eq,
		}
		for j, e := range expected {
			if a[i*6+j] != e || b[i*6+j] != e {
				t.Errorf("x=%d, y=%d, op %d: got %d/%d, expected %d",
					x[i], y[i], j, a[i*6+j], b[i*6+j], e)
			}
		}
	}
}

func TestReals(t *testing.T) {
	x := []float64{2.25, 10.5, -3}
	y := []float64{4, -2, 0.5}

	a, b := runPair(t, func(s *Session) ([]float64, error) {
		reals := s.Reals()
		xs := reals.Input(secret.Alice, own(s, secret.Alice, x))
		ys := reals.Input(secret.Bob, own(s, secret.Bob, y))

		var outputs []Float
		for i := range xs {
			outputs = append(outputs,
				reals.Add(xs[i], ys[i]),
				reals.Mul(xs[i], ys[i]),
				reals.Div(xs[i], ys[i]),
				reals.Sqrt(xs[i]),
				reals.Square(ys[i]),
			)
		}
		return reals.Reveal(outputs...)
	})

	for i := range x {
		sqrt := 0.0
		if x[i] > 0 {
			sqrt = math.Sqrt(x[i])
		}
		expected := []float64{
			x[i] + y[i], x[i] * y[i], x[i] / y[i], sqrt, y[i] * y[i],
		}
		for j, e := range expected {
			if math.Abs(a[i*5+j]-e) > 1e-3 || a[i*5+j] != b[i*5+j] {
				t.Errorf("x=%v, y=%v, op %d: got %v/%v, expected %v",
					x[i], y[i], j, a[i*5+j], b[i*5+j], e)
			}
		}
	}
}

func TestRevealBits(t *testing.T) {
	a, b := runPair(t, func(s *Session) ([]bool, error) {
		ints := s.Ints(8)
		x := ints.Input(secret.Alice, own(s, secret.Alice, []int64{3}))[0]
		y := ints.Input(secret.Bob, own(s, secret.Bob, []int64{5}))[0]

		lt := ints.LessThan(x, y)
		ge := ints.GreaterEqual(x, y)
		return s.RevealBits(lt, ge, s.Not(lt), s.And(lt, ge), s.Or(lt, ge),
			s.Xor(lt, s.Bit(true)), s.Choose(lt, s.Bit(false), s.Bit(true)))
	})
	expected := []bool{true, false, false, false, true, false, false}
	for i, e := range expected {
		if a[i] != e || b[i] != e {
			t.Errorf("bit %d: got %v/%v, expected %v", i, a[i], b[i], e)
		}
	}
}

func TestPublicReveal(t *testing.T) {
	a, _ := runPair(t, func(s *Session) ([]int64, error) {
		ints := s.Ints(32)
		v, err := ints.Reveal(ints.Add(ints.Const(40), ints.Const(2)))
		if s.Reveals() != 0 {
			t.Errorf("public reveal ran the protocol")
		}
		return v, err
	})
	if a[0] != 42 {
		t.Errorf("got %d, expected 42", a[0])
	}
}

func TestNewSession(t *testing.T) {
	if _, err := NewSession(&env.Config{}, nil, secret.Public); err == nil {
		t.Errorf("NewSession accepted public party")
	}
}
