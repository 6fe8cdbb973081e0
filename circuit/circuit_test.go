//
// Copyright (c) 2019-2025 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/markkurossi/xtabs/env"
	"github.com/markkurossi/xtabs/ot"
	"github.com/markkurossi/xtabs/p2p"
)

// fullAdder returns a circuit computing the sum and carry of the
// garbler input a, the evaluator input b, and the garbler input cin.
// It also outputs a XNOR b, NOT cin, and a OR b.
func fullAdder() *Circuit {
	// Wires: 0, 1 constants; 2 a; 3 cin; 4 b
	gates := []Gate{
		{Input0: 4, Input1: 3, Output: 5, Op: XOR},
		{Input0: 2, Input1: 5, Output: 6, Op: XOR},
		{Input0: 2, Input1: 3, Output: 7, Op: XOR},
		{Input0: 5, Input1: 7, Output: 8, Op: AND},
		{Input0: 3, Input1: 8, Output: 9, Op: XOR},
		{Input0: 2, Input1: 4, Output: 10, Op: XNOR},
		{Input0: 3, Output: 11, Op: INV},
		{Input0: 2, Input1: 4, Output: 12, Op: OR},
	}
	c := &Circuit{
		NumWires:  13,
		Garbler:   []Wire{2, 3},
		Evaluator: []Wire{4},
		Outputs:   []Wire{6, 9, 10, 11, 12},
		Gates:     gates,
	}
	for _, g := range gates {
		c.Stats[g.Op]++
	}
	return c
}

func expected(a, b, cin bool) []bool {
	var n int
	for _, v := range []bool{a, b, cin} {
		if v {
			n++
		}
	}
	return []bool{n%2 == 1, n >= 2, a == b, !cin, a || b}
}

func eachInput(f func(a, b, cin bool)) {
	for i := 0; i < 8; i++ {
		f(i&1 != 0, i&2 != 0, i&4 != 0)
	}
}

func TestCompute(t *testing.T) {
	c := fullAdder()
	eachInput(func(a, b, cin bool) {
		result, err := c.Compute([]bool{a, cin}, []bool{b})
		if err != nil {
			t.Fatalf("Compute: %v", err)
		}
		exp := expected(a, b, cin)
		for i := range exp {
			if result[i] != exp[i] {
				t.Errorf("%v+%v+%v: output %d: got %v, expected %v",
					a, b, cin, i, result[i], exp[i])
			}
		}
	})
	if _, err := c.Compute([]bool{true}, []bool{true}); err == nil {
		t.Errorf("Compute accepted short input")
	}
}

func TestGarbleEval(t *testing.T) {
	c := fullAdder()
	prg := env.NewPRG([]byte("garble"))

	eachInput(func(a, b, cin bool) {
		g, err := c.Garble(prg)
		if err != nil {
			t.Fatalf("Garble: %v", err)
		}
		if len(g.Tables) != c.Cost() {
			t.Fatalf("tables: got %d, expected %d", len(g.Tables), c.Cost())
		}
		wires := make([]ot.Label, c.NumWires)
		wires[Zero] = g.Wires[Zero].L0
		wires[One] = g.Wires[One].L1
		wires[2] = g.Wires[2].Label(a)
		wires[3] = g.Wires[3].Label(cin)
		wires[4] = g.Wires[4].Label(b)

		if err := c.Eval(g.Key, wires, g.Tables); err != nil {
			t.Fatalf("Eval: %v", err)
		}
		labels := make([]ot.Label, len(c.Outputs))
		for i, w := range c.Outputs {
			labels[i] = wires[w]
		}
		result, err := g.Decode(c, labels)
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		exp := expected(a, b, cin)
		for i := range exp {
			if result[i] != exp[i] {
				t.Errorf("%v+%v+%v: output %d: got %v, expected %v",
					a, b, cin, i, result[i], exp[i])
			}
		}
	})
}

func TestDigest(t *testing.T) {
	a := fullAdder()
	b := fullAdder()
	if !bytes.Equal(a.Digest(), b.Digest()) {
		t.Fatalf("equal circuits have different digests")
	}
	b.Gates[3].Op = OR
	if bytes.Equal(a.Digest(), b.Digest()) {
		t.Fatalf("different circuits have equal digests")
	}
}

type party struct {
	result []bool
	err    error
}

func run(ga, ev *Circuit, gIn, eIn []bool) (party, party) {
	gconn, econn := p2p.Pipe()
	done := make(chan party)

	go func() {
		cfg := &env.Config{}
		result, err := Garbler(cfg, gconn, ot.NewCO(nil), ga, gIn,
			NewTiming())
		if err != nil {
			gconn.Close()
		}
		done <- party{result, err}
	}()

	cfg := &env.Config{}
	result, err := Evaluator(cfg, econn, ot.NewCO(nil), ev, eIn, NewTiming())
	if err != nil {
		econn.Close()
	}
	return <-done, party{result, err}
}

func TestProtocol(t *testing.T) {
	c := fullAdder()
	eachInput(func(a, b, cin bool) {
		g, e := run(c, c, []bool{a, cin}, []bool{b})
		if g.err != nil {
			t.Fatalf("Garbler: %v", g.err)
		}
		if e.err != nil {
			t.Fatalf("Evaluator: %v", e.err)
		}
		exp := expected(a, b, cin)
		for i := range exp {
			if g.result[i] != exp[i] || e.result[i] != exp[i] {
				t.Errorf("%v+%v+%v: output %d: got %v/%v, expected %v",
					a, b, cin, i, g.result[i], e.result[i], exp[i])
			}
		}
	})
}

func TestProtocolDesync(t *testing.T) {
	ga := fullAdder()
	ev := fullAdder()
	ev.Gates[3].Op = OR

	g, e := run(ga, ev, []bool{true, false}, []bool{true})
	if !errors.Is(g.err, ErrDesync) {
		t.Errorf("Garbler: got %v, expected ErrDesync", g.err)
	}
	if !errors.Is(e.err, ErrDesync) {
		t.Errorf("Evaluator: got %v, expected ErrDesync", e.err)
	}
}

type brokenLink struct {
	in io.Reader
}

var errLinkDown = errors.New("link down")

func (b *brokenLink) Read(p []byte) (int, error) {
	return b.in.Read(p)
}

func (b *brokenLink) Write(p []byte) (int, error) {
	return 0, errLinkDown
}

func TestProtocolDesyncStatusError(t *testing.T) {
	// Handshake with a digest of some other circuit.
	var in bytes.Buffer
	peer := p2p.NewConn(&in)
	if err := peer.SendData(make([]byte, 16)); err != nil {
		t.Fatal(err)
	}
	if err := peer.SendData(make([]byte, 32)); err != nil {
		t.Fatal(err)
	}
	if err := peer.Close(); err != nil {
		t.Fatal(err)
	}

	conn := p2p.NewConn(&brokenLink{in: &in})
	// Wait until the writer has failed: the third flush blocks until
	// the first buffer comes back from the writer.
	for i := 0; i < 3; i++ {
		conn.SendByte(0)
		conn.Flush()
	}

	_, err := Evaluator(&env.Config{}, conn, ot.NewCO(nil), fullAdder(),
		[]bool{true}, NewTiming())
	if !errors.Is(err, ErrDesync) {
		t.Fatalf("Evaluator: got %v, expected ErrDesync", err)
	}
	if !strings.Contains(err.Error(), errLinkDown.Error()) {
		t.Errorf("Evaluator: status error hidden: %v", err)
	}
}

func TestPackBits(t *testing.T) {
	bits := []bool{true, false, true, true, false, false, false, true, true}
	packed := packBits(bits)
	if len(packed) != 2 || packed[0] != 0x8d || packed[1] != 0x01 {
		t.Fatalf("packBits: %x", packed)
	}
	unpacked := unpackBits(packed, len(bits))
	for i := range bits {
		if unpacked[i] != bits[i] {
			t.Errorf("bit %d: got %v, expected %v", i, unpacked[i], bits[i])
		}
	}
}
