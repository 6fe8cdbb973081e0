//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

package plain

import (
	"crypto/sha256"
	"hash"
)

// Trace records the sequence of operations of a simulation. It never
// records values so two runs over different secret inputs of the
// same public shape produce equal traces.
type Trace struct {
	Ops      map[string]int
	Reveals  int
	Revealed int
	h        hash.Hash
}

// NewTrace creates a new empty trace.
func NewTrace() *Trace {
	return &Trace{
		Ops: make(map[string]int),
		h:   sha256.New(),
	}
}

func (t *Trace) op(name string) {
	t.Ops[name]++
	t.h.Write([]byte(name))
	t.h.Write([]byte{0})
}

func (t *Trace) reveal(count int) {
	t.op("reveal")
	t.Reveals++
	t.Revealed += count

	var buf [4]byte
	buf[0] = byte(count >> 24)
	buf[1] = byte(count >> 16)
	buf[2] = byte(count >> 8)
	buf[3] = byte(count)
	t.h.Write(buf[:])
}

// Count returns the total number of operations.
func (t *Trace) Count() int {
	var count int
	for _, v := range t.Ops {
		count += v
	}
	return count
}

// Digest returns the digest of the operation sequence.
func (t *Trace) Digest() []byte {
	return t.h.Sum(nil)
}
