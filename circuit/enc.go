//
// enc.go
//
// Copyright (c) 2019-2025 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"crypto/cipher"

	"github.com/markkurossi/xtabs/ot"
)

// idx returns the point-and-permute table index of the labels.
func idx(a, b ot.Label) int {
	var ret int
	if a.S() {
		ret |= 0x2
	}
	if b.S() {
		ret |= 0x1
	}
	return ret
}

// makeK computes the tweaked key K = 2A ^ 4B ^ T.
func makeK(a, b ot.Label, t uint32) ot.Label {
	a.Mul2()
	b.Mul4()
	a.Xor(b)
	a.Xor(ot.NewTweak(t))
	return a
}

// encrypt computes the garbled table entry π(K) ^ K ^ C with a
// fixed-key AES π.
func encrypt(alg cipher.Block, a, b, c ot.Label, t uint32,
	data *ot.LabelData) ot.Label {

	k := makeK(a, b, t)

	k.GetData(data)
	alg.Encrypt(data[:], data[:])

	var pi ot.Label
	pi.SetData(data)
	pi.Xor(k)
	pi.Xor(c)

	return pi
}

// decrypt recovers C from the garbled table entry.
func decrypt(alg cipher.Block, a, b ot.Label, t uint32, entry ot.Label,
	data *ot.LabelData) ot.Label {

	k := makeK(a, b, t)

	k.GetData(data)
	alg.Encrypt(data[:], data[:])

	var c ot.Label
	c.SetData(data)
	c.Xor(k)
	c.Xor(entry)

	return c
}
