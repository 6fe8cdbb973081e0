//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

// Package gc implements the secret value substrate with garbled
// circuits. Both parties build the same circuit gate by gate; each
// reveal garbles the part of the circuit the revealed values depend
// on and runs the two-party protocol over the peer connection. Alice
// garbles and Bob evaluates.
package gc

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/markkurossi/text/superscript"
	"github.com/markkurossi/xtabs/circuit"
	"github.com/markkurossi/xtabs/circuits"
	"github.com/markkurossi/xtabs/env"
	"github.com/markkurossi/xtabs/ot"
	"github.com/markkurossi/xtabs/p2p"
	"github.com/markkurossi/xtabs/secret"
)

// Bit implements a secret bit as a circuit wire.
type Bit struct {
	w circuit.Wire
}

// Session implements the secret bit operations for one party of a
// two-party run. The integer and real kinds share the session's
// circuit builder.
type Session struct {
	cfg       *env.Config
	conn      *p2p.Conn
	self      secret.Party
	b         *circuits.Builder
	garbler   []bool
	evaluator []bool
	reveals   int

	// Timing collects the protocol timing samples of all reveals.
	Timing *circuit.Timing
}

// NewSession creates a new session for the party. The party must be
// Alice or Bob.
func NewSession(cfg *env.Config, conn *p2p.Conn, self secret.Party) (
	*Session, error) {

	if self != secret.Alice && self != secret.Bob {
		return nil, errors.Newf("invalid party %v", self)
	}
	return &Session{
		cfg:    cfg,
		conn:   conn,
		self:   self,
		b:      circuits.NewBuilder(),
		Timing: circuit.NewTiming(),
	}, nil
}

// Self returns the session's party.
func (s *Session) Self() secret.Party {
	return s.self
}

// Conn returns the session's peer connection.
func (s *Session) Conn() *p2p.Conn {
	return s.conn
}

// Reveals returns the number of reveals run.
func (s *Session) Reveals() int {
	return s.reveals
}

// Builder returns the session's circuit builder.
func (s *Session) Builder() *circuits.Builder {
	return s.b
}

func (s *Session) tag() string {
	return "P" + superscript.Itoa(int(s.self))
}

func (s *Session) String() string {
	g, e := s.b.NumInputs()
	return fmt.Sprintf("%s: gates=%d inputs=%d/%d reveals=%d",
		s.tag(), s.b.NumGates(), g, e, s.reveals)
}

// input allocates n input wires for the owner's value v. The party
// that does not own the value allocates the same wires with zero
// bits.
func (s *Session) input(owner secret.Party, v uint64, n int) []circuit.Wire {
	if owner == secret.Public {
		return s.b.ConstWires(v, n)
	}
	result := make([]circuit.Wire, n)
	for i := range result {
		bit := owner == s.self && v&(1<<i) != 0
		if owner == secret.Alice {
			result[i] = s.b.GarblerInput()
			s.garbler = append(s.garbler, bit)
		} else {
			result[i] = s.b.EvaluatorInput()
			s.evaluator = append(s.evaluator, bit)
		}
	}
	return result
}

// reveal runs the protocol for the output wires.
func (s *Session) reveal(outputs []circuit.Wire) ([]bool, error) {
	result := make([]bool, len(outputs))
	public := true
	for i, w := range outputs {
		v, ok := circuits.IsConst(w)
		if !ok {
			public = false
			break
		}
		result[i] = v
	}
	if public {
		return result, nil
	}

	prog := s.b.Compile(outputs)
	s.reveals++
	s.cfg.Printf("%s reveal %d: %v\n", s.tag(), s.reveals, prog.Circuit)

	oti := ot.NewCO(s.cfg.GetRandom())

	var err error
	if s.self == secret.Alice {
		inputs := make([]bool, len(prog.Garbler))
		for i, idx := range prog.Garbler {
			inputs[i] = s.garbler[idx]
		}
		result, err = circuit.Garbler(s.cfg, s.conn, oti, prog.Circuit,
			inputs, s.Timing)
	} else {
		inputs := make([]bool, len(prog.Evaluator))
		for i, idx := range prog.Evaluator {
			inputs[i] = s.evaluator[idx]
		}
		result, err = circuit.Evaluator(s.cfg, s.conn, oti, prog.Circuit,
			inputs, s.Timing)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "reveal %d", s.reveals)
	}
	return result, nil
}

// Bit returns a public bit.
func (s *Session) Bit(v bool) Bit {
	return Bit{s.b.Const(v)}
}

// And returns a AND b.
func (s *Session) And(a, b Bit) Bit {
	return Bit{s.b.AND(a.w, b.w)}
}

// Or returns a OR b.
func (s *Session) Or(a, b Bit) Bit {
	return Bit{s.b.OR(a.w, b.w)}
}

// Xor returns a XOR b.
func (s *Session) Xor(a, b Bit) Bit {
	return Bit{s.b.XOR(a.w, b.w)}
}

// Not returns NOT a.
func (s *Session) Not(a Bit) Bit {
	return Bit{s.b.INV(a.w)}
}

// Choose returns t if c is set and f otherwise.
func (s *Session) Choose(c, t, f Bit) Bit {
	return Bit{circuits.NewBitMUX(s.b, c.w, t.w, f.w)}
}

// RevealBits reveals the bits to both parties.
func (s *Session) RevealBits(bits ...Bit) ([]bool, error) {
	wires := make([]circuit.Wire, len(bits))
	for i, b := range bits {
		wires[i] = b.w
	}
	return s.reveal(wires)
}

func concat[V any](values []V, wires func(v V) []circuit.Wire) []circuit.Wire {
	var result []circuit.Wire
	for _, v := range values {
		result = append(result, wires(v)...)
	}
	return result
}

func toUint64(bits []bool) uint64 {
	var v uint64
	for i, bit := range bits {
		if bit {
			v |= 1 << i
		}
	}
	return v
}

func signExtend(v uint64, n int) int64 {
	if n >= 64 {
		return int64(v)
	}
	shift := 64 - n
	return int64(v<<shift) >> shift
}
