//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

package p2p

import (
	"encoding/binary"
	"net"

	"github.com/cockroachdb/errors"
)

var bo = binary.BigEndian

// Listen listens at the address and returns a connection for the
// first accepted peer.
func Listen(addr string) (*Conn, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, errors.Wrapf(err, "listen %s", addr)
	}
	defer listener.Close()

	nc, err := listener.Accept()
	if err != nil {
		return nil, errors.Wrapf(err, "accept %s", addr)
	}
	return NewConn(nc), nil
}

// Dial connects to the peer at the address.
func Dial(addr string) (*Conn, error) {
	nc, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, errors.Wrapf(err, "dial %s", addr)
	}
	return NewConn(nc), nil
}
