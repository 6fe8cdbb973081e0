//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

package env

import (
	"io"

	"golang.org/x/crypto/chacha20"
)

var (
	_ io.Reader = &PRG{}
)

// PRG implements a deterministic ChaCha20 keystream reader. It is
// used as Config.Rand to make garbling reproducible.
type PRG struct {
	c *chacha20.Cipher
}

// NewPRG creates a new PRG from the seed. The seed is repeated or
// trimmed to the 32 byte ChaCha20 key. The nonce is zero.
func NewPRG(seed []byte) *PRG {
	key := make([]byte, chacha20.KeySize)
	if len(seed) > 0 {
		for i := 0; i < len(key); i++ {
			key[i] = seed[i%len(seed)]
		}
	}
	nonce := make([]byte, chacha20.NonceSize)

	// The key and nonce sizes are always valid.
	c, err := chacha20.NewUnauthenticatedCipher(key, nonce)
	if err != nil {
		panic(err)
	}
	return &PRG{
		c: c,
	}
}

// Read fills data with the next bytes of the keystream.
func (prg *PRG) Read(data []byte) (int, error) {
	clear(data)
	prg.c.XORKeyStream(data, data)
	return len(data), nil
}
