//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

// Package secret defines the capabilities of a secure computation
// substrate. Secret values are opaque: they can only be combined with
// oblivious operations or revealed to both parties. Oblivious
// operations never fail. Only the reveal operations cross the trust
// boundary and return errors.
package secret

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"golang.org/x/exp/constraints"
)

// Party identifies the owner of a value.
type Party int

// Parties. Alice is the garbler and Bob is the evaluator of the
// garbled circuit substrate.
const (
	Public Party = iota
	Alice
	Bob
)

func (p Party) String() string {
	switch p {
	case Public:
		return "public"
	case Alice:
		return "alice"
	case Bob:
		return "bob"
	default:
		return fmt.Sprintf("{Party %d}", int(p))
	}
}

// Peer returns the other party.
func (p Party) Peer() Party {
	switch p {
	case Alice:
		return Bob
	case Bob:
		return Alice
	default:
		return Public
	}
}

// ParseParty parses the party name. The names "a" and "b" are
// accepted as short forms.
func ParseParty(name string) (Party, error) {
	switch strings.ToLower(name) {
	case "public":
		return Public, nil
	case "a", "alice":
		return Alice, nil
	case "b", "bob":
		return Bob, nil
	default:
		return Public, errors.Newf("unknown party %q", name)
	}
}

// Number defines the cleartext kinds of secret values.
type Number interface {
	constraints.Signed | constraints.Float
}

// Logic defines the operations of secret bits B.
type Logic[B any] interface {
	// Bit returns a public bit.
	Bit(v bool) B
	And(a, b B) B
	Or(a, b B) B
	Xor(a, b B) B
	Not(a B) B
	// Choose returns t if c is set and f otherwise.
	Choose(c, t, f B) B
	// RevealBits reveals the bits to both parties.
	RevealBits(bits ...B) ([]bool, error)
}

// Arith defines the operations of secret values V with cleartext
// kind C and secret bits B.
type Arith[V, B any, C Number] interface {
	Logic[B]

	// Input creates secret values owned by the party. The party
	// that does not own the values passes a zero-filled slice of
	// the same length. Public values are known to both parties.
	Input(owner Party, values []C) []V
	// Const returns a public value.
	Const(v C) V

	Add(a, b V) V
	Sub(a, b V) V
	Mul(a, b V) V
	// Div divides a by b. Integer division truncates toward
	// zero. The result of division by zero is defined by the
	// substrate and must not be relied on.
	Div(a, b V) V

	Equal(a, b V) B
	LessThan(a, b V) B
	LessEqual(a, b V) B
	GreaterEqual(a, b V) B

	// Select returns t if c is set and f otherwise. Both values are
	// always consumed.
	Select(c B, t, f V) V

	// Reveal reveals the values to both parties.
	Reveal(values ...V) ([]C, error)
}

// Real defines the operations of secret real numbers.
type Real[V, B any] interface {
	Arith[V, B, float64]

	Square(a V) V
	Sqrt(a V) V
}
