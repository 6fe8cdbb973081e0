//
// label.go
//
// Copyright (c) 2019-2025 Markku Rossi
//
// All rights reserved.
//

package ot

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Wire holds the 0 and 1 labels of a garbled wire.
type Wire struct {
	L0 Label
	L1 Label
}

func (w Wire) String() string {
	return fmt.Sprintf("%s/%s", w.L0, w.L1)
}

// NewWire creates a wire with a random zero label. The one label is
// the zero label xor'ed with the global free-XOR offset r. The
// offset's S bit must be set so the labels have opposite S bits.
func NewWire(rand io.Reader, r Label) (Wire, error) {
	l0, err := NewLabel(rand)
	if err != nil {
		return Wire{}, err
	}
	l1 := l0
	l1.Xor(r)
	return Wire{
		L0: l0,
		L1: l1,
	}, nil
}

// Label returns the wire's label for the bit value.
func (w Wire) Label(bit bool) Label {
	if bit {
		return w.L1
	}
	return w.L0
}

// Swap returns the wire with its labels swapped. It implements free
// inversion.
func (w Wire) Swap() Wire {
	return Wire{
		L0: w.L1,
		L1: w.L0,
	}
}

// Label implements a 128 bit wire label.
type Label struct {
	D0 uint64
	D1 uint64
}

// LabelData contains label data as byte array.
type LabelData [16]byte

func (l Label) String() string {
	return fmt.Sprintf("%016x%016x", l.D0, l.D1)
}

// Equal tests if the labels are equal.
func (l Label) Equal(o Label) bool {
	return l.D0 == o.D0 && l.D1 == o.D1
}

// NewLabel creates a new random label.
func NewLabel(rand io.Reader) (Label, error) {
	var buf LabelData
	var label Label

	if _, err := io.ReadFull(rand, buf[:]); err != nil {
		return label, err
	}
	label.SetData(&buf)
	return label, nil
}

// NewTweak creates a new label from the tweak value.
func NewTweak(tweak uint32) Label {
	return Label{
		D1: uint64(tweak),
	}
}

const sBit = uint64(1) << 63

// S tests the label's S bit.
func (l Label) S() bool {
	return l.D0&sBit != 0
}

// SetS sets the label's S bit.
func (l *Label) SetS(set bool) {
	if set {
		l.D0 |= sBit
	} else {
		l.D0 &^= sBit
	}
}

// Mul2 multiplies the label by 2 in GF(2^128) without reduction.
func (l *Label) Mul2() {
	l.D0 = l.D0<<1 | l.D1>>63
	l.D1 <<= 1
}

// Mul4 multiplies the label by 4 in GF(2^128) without reduction.
func (l *Label) Mul4() {
	l.D0 = l.D0<<2 | l.D1>>62
	l.D1 <<= 2
}

// Xor xors the label with the argument label.
func (l *Label) Xor(o Label) {
	l.D0 ^= o.D0
	l.D1 ^= o.D1
}

// GetData gets the label as label data.
func (l Label) GetData(buf *LabelData) {
	binary.BigEndian.PutUint64(buf[0:8], l.D0)
	binary.BigEndian.PutUint64(buf[8:16], l.D1)
}

// SetData sets the label from label data.
func (l *Label) SetData(data *LabelData) {
	l.SetBytes(data[:])
}

// Bytes returns the label data as bytes.
func (l Label) Bytes(buf *LabelData) []byte {
	l.GetData(buf)
	return buf[:]
}

// SetBytes sets the label data from bytes. The data must be at least
// 16 bytes long.
func (l *Label) SetBytes(data []byte) {
	l.D0 = binary.BigEndian.Uint64(data[0:8])
	l.D1 = binary.BigEndian.Uint64(data[8:16])
}
