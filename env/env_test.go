//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

package env

import (
	"bytes"
	"testing"
)

func TestPRG(t *testing.T) {
	var a, b, c [64]byte

	NewPRG([]byte("seed")).Read(a[:])
	NewPRG([]byte("seed")).Read(b[:])
	NewPRG([]byte("other")).Read(c[:])

	if !bytes.Equal(a[:], b[:]) {
		t.Fatalf("PRG not deterministic")
	}
	if bytes.Equal(a[:], c[:]) {
		t.Fatalf("different seeds produced equal streams")
	}
	if bytes.Equal(a[:32], a[32:]) {
		t.Fatalf("PRG stream repeats")
	}
}

func TestGetRandom(t *testing.T) {
	cfg := &Config{}
	if cfg.GetRandom() == nil {
		t.Fatalf("no default random source")
	}
	prg := NewPRG(nil)
	cfg.Rand = prg
	if cfg.GetRandom() != prg {
		t.Fatalf("configured random source not used")
	}
}
