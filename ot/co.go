//
// co.go
//
// Copyright (c) 2019-2023 Markku Rossi
//
// All rights reserved.
//
// Chou Orlandi OT - The Simplest Protocol for Oblivious Transfer.
//  - https://eprint.iacr.org/2015/267.pdf

/*

This implementation is derived from the EMP Toolkit's co.h
(https://github.com/emp-toolkit/emp-ot/blob/master/emp-ot/co.h)
with original license as follows:

MIT License

Copyright (c) 2018 Xiao Wang (wangxiao1254@gmail.com)

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.

Enquiries about further applications and development opportunities are welcome.

*/

package ot

import (
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"hash"
	"io"
	"math/big"

	"github.com/cockroachdb/errors"
)

var (
	bo    = binary.BigEndian
	_  OT = &CO{}
)

// CO implements the Chou Orlandi OT as the OT interface. All
// transfers of one Send/Receive call share the sender's A point.
type CO struct {
	curve  elliptic.Curve
	hash   hash.Hash
	digest []byte
	rand   io.Reader
	io     IO
}

// NewCO creates a new CO OT over the P-256 curve. The rand argument
// is the entropy source for the OT secrets; nil uses crypto/rand.
func NewCO(r io.Reader) *CO {
	if r == nil {
		r = rand.Reader
	}
	return &CO{
		curve:  elliptic.P256(),
		hash:   sha256.New(),
		digest: make([]byte, 0, sha256.Size),
		rand:   r,
	}
}

// InitSender initializes the OT sender.
func (co *CO) InitSender(io IO) error {
	co.io = io
	if err := SendString(io, co.curve.Params().Name); err != nil {
		return err
	}
	return io.Flush()
}

// InitReceiver initializes the OT receiver.
func (co *CO) InitReceiver(io IO) error {
	co.io = io

	name, err := ReceiveString(io)
	if err != nil {
		return err
	}
	if name != co.curve.Params().Name {
		return errors.Newf("invalid curve %s, expected %s",
			name, co.curve.Params().Name)
	}
	return nil
}

// Send sends the wire labels with OT.
func (co *CO) Send(wires []Wire) error {
	params := co.curve.Params()

	// a <- Zp, A = G^a
	a, err := rand.Int(co.rand, params.N)
	if err != nil {
		return err
	}
	aBytes := a.Bytes()
	Ax, Ay := co.curve.ScalarBaseMult(aBytes)

	if err := SendPoint(co.io, Ax, Ay); err != nil {
		return err
	}
	if err := co.io.Flush(); err != nil {
		return err
	}

	// -A^a = {x, p-y}
	Aax, Aay := co.curve.ScalarMult(Ax, Ay, aBytes)
	AaInvy := new(big.Int).Sub(params.P, Aay)

	keys := make([][2][2]*big.Int, len(wires))
	for i := range wires {
		Bx, By, err := ReceivePoint(co.io)
		if err != nil {
			return err
		}
		if !co.curve.IsOnCurve(Bx, By) {
			return errors.Newf("OT point %d not on curve", i)
		}
		k0x, k0y := co.curve.ScalarMult(Bx, By, aBytes)
		k1x, k1y := co.curve.Add(k0x, k0y, Aax, AaInvy)
		keys[i] = [2][2]*big.Int{{k0x, k0y}, {k1x, k1y}}
	}

	var data LabelData
	for i, wire := range wires {
		for bit := 0; bit < 2; bit++ {
			wire.Label(bit == 1).GetData(&data)
			k := keys[i][bit]
			e := xor(co.kdf(k[0], k[1], uint64(i)), data[:])
			if err := co.io.SendData(e); err != nil {
				return err
			}
		}
	}
	return co.io.Flush()
}

// Receive receives the wire labels with OT based on the flag values.
func (co *CO) Receive(flags []bool, result []Label) error {
	if len(result) < len(flags) {
		return errors.Newf("result too short: %d < %d",
			len(result), len(flags))
	}
	params := co.curve.Params()

	Ax, Ay, err := ReceivePoint(co.io)
	if err != nil {
		return err
	}
	if !co.curve.IsOnCurve(Ax, Ay) {
		return errors.New("OT sender point not on curve")
	}

	secrets := make([][]byte, len(flags))
	for i, flag := range flags {
		// b <- Zp, B = G^b or A*G^b
		b, err := rand.Int(co.rand, params.N)
		if err != nil {
			return err
		}
		secrets[i] = b.Bytes()

		Bx, By := co.curve.ScalarBaseMult(secrets[i])
		if flag {
			Bx, By = co.curve.Add(Bx, By, Ax, Ay)
		}
		if err := SendPoint(co.io, Bx, By); err != nil {
			return err
		}
	}
	if err := co.io.Flush(); err != nil {
		return err
	}

	for i, flag := range flags {
		kx, ky := co.curve.ScalarMult(Ax, Ay, secrets[i])

		var e [2][]byte
		for bit := 0; bit < 2; bit++ {
			e[bit], err = co.io.ReceiveData()
			if err != nil {
				return err
			}
		}
		var sel []byte
		if flag {
			sel = e[1]
		} else {
			sel = e[0]
		}
		if len(sel) < len(LabelData{}) {
			return errors.Newf("OT message %d too short: %d", i, len(sel))
		}
		// The kdf output is in co.digest and is overwritten by the
		// next call.
		result[i].SetBytes(xor(co.kdf(kx, ky, uint64(i)), sel))
	}
	return nil
}

func (co *CO) kdf(x, y *big.Int, id uint64) []byte {
	co.hash.Reset()
	co.hash.Write(x.Bytes())
	co.hash.Write(y.Bytes())

	var tmp [8]byte
	bo.PutUint64(tmp[:], id)
	co.hash.Write(tmp[:])

	co.digest = co.hash.Sum(co.digest[:0])
	return co.digest
}

func xor(a, b []byte) []byte {
	l := min(len(a), len(b))
	for i := 0; i < l; i++ {
		a[i] ^= b[i]
	}
	return a[:l]
}
