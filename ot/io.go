//
// io.go
//
// Copyright (c) 2023-2025 Markku Rossi
//
// All rights reserved.
//

package ot

import (
	"math/big"
)

// IO defines an I/O interface to communicate between peers.
type IO interface {
	// SendData sends binary data.
	SendData(val []byte) error
	// SendUint32 sends an uint32 value.
	SendUint32(val int) error
	// Flush flushes any pending data in the connection.
	Flush() error
	// ReceiveData receives binary data.
	ReceiveData() ([]byte, error)
	// ReceiveUint32 receives an uint32 value.
	ReceiveUint32() (int, error)
}

// SendString sends a string value.
func SendString(io IO, str string) error {
	return io.SendData([]byte(str))
}

// ReceiveString receives a string value.
func ReceiveString(io IO) (string, error) {
	data, err := io.ReceiveData()
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// SendPoint sends an elliptic curve point.
func SendPoint(io IO, x, y *big.Int) error {
	if err := io.SendData(x.Bytes()); err != nil {
		return err
	}
	return io.SendData(y.Bytes())
}

// ReceivePoint receives an elliptic curve point.
func ReceivePoint(io IO) (x, y *big.Int, err error) {
	x, err = ReceiveBigInt(io)
	if err != nil {
		return
	}
	y, err = ReceiveBigInt(io)
	return
}

// ReceiveBigInt receives a big.Int from the connection.
func ReceiveBigInt(io IO) (*big.Int, error) {
	data, err := io.ReceiveData()
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetBytes(data), nil
}
