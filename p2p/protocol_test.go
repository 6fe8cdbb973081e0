//
// protocol_test.go
//
// Copyright (c) 2023-2025 Markku Rossi
//
// All rights reserved.
//

package p2p

import (
	"bytes"
	"fmt"
	"reflect"
	"testing"

	"github.com/markkurossi/xtabs/ot"
)

type message struct {
	name    string
	send    func(c *Conn) error
	receive func(c *Conn) (any, error)
	want    any
}

func messages() []message {
	big := bytes.Repeat([]byte{0xa5}, 3*readBufSize+17)
	return []message{
		{
			name:    "byte",
			send:    func(c *Conn) error { return c.SendByte(42) },
			receive: func(c *Conn) (any, error) { return c.ReceiveByte() },
			want:    byte(42),
		},
		{
			name:    "uint32",
			send:    func(c *Conn) error { return c.SendUint32(0xdeadbeef) },
			receive: func(c *Conn) (any, error) { return c.ReceiveUint32() },
			want:    0xdeadbeef,
		},
		{
			name:    "empty",
			send:    func(c *Conn) error { return c.SendData(nil) },
			receive: func(c *Conn) (any, error) { return c.ReceiveData() },
			want:    []byte{},
		},
		{
			name: "string",
			send: func(c *Conn) error {
				return ot.SendString(c, "Hello, world!")
			},
			receive: func(c *Conn) (any, error) { return ot.ReceiveString(c) },
			want:    "Hello, world!",
		},
		{
			name:    "large",
			send:    func(c *Conn) error { return c.SendData(big) },
			receive: func(c *Conn) (any, error) { return c.ReceiveData() },
			want:    big,
		},
	}
}

func TestProtocol(t *testing.T) {
	cw, c := Pipe()
	msgs := messages()

	go func() {
		for _, msg := range msgs {
			if err := msg.send(cw); err != nil {
				fmt.Printf("%s: %v\n", msg.name, err)
			}
		}
		if err := cw.Close(); err != nil {
			fmt.Printf("Close: %v\n", err)
		}
	}()

	for _, msg := range msgs {
		v, err := msg.receive(c)
		if err != nil {
			t.Fatalf("%s: %v", msg.name, err)
		}
		if !reflect.DeepEqual(v, msg.want) {
			t.Errorf("%s: got %T, expected %T", msg.name, v, msg.want)
		}
	}
	if _, err := c.ReceiveByte(); err == nil {
		t.Errorf("ReceiveByte succeeded after peer closed")
	}
	if err := c.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestLabels(t *testing.T) {
	cw, c := Pipe()

	labels := make([]ot.Label, 10000)
	for i := range labels {
		labels[i] = ot.Label{
			D0: uint64(i) << 32,
			D1: uint64(i),
		}
	}
	go func() {
		var data ot.LabelData
		for _, l := range labels {
			if err := cw.SendLabel(l, &data); err != nil {
				fmt.Printf("SendLabel: %v\n", err)
				return
			}
		}
		if err := cw.Flush(); err != nil {
			fmt.Printf("Flush: %v\n", err)
		}
	}()

	var data ot.LabelData
	for i, expected := range labels {
		var l ot.Label
		if err := c.ReceiveLabel(&l, &data); err != nil {
			t.Fatalf("ReceiveLabel: %v", err)
		}
		if !l.Equal(expected) {
			t.Fatalf("label %d: got %v, expected %v", i, l, expected)
		}
	}
	if c.Stats.Recvd.Load() != uint64(len(labels)*len(data)) {
		t.Errorf("Recvd: got %v, expected %v",
			c.Stats.Recvd.Load(), len(labels)*len(data))
	}
	if cw.Stats.Sent.Load() != c.Stats.Recvd.Load() {
		t.Errorf("Sent %v != Recvd %v",
			cw.Stats.Sent.Load(), c.Stats.Recvd.Load())
	}
}

func TestDataChunks(t *testing.T) {
	cw, c := Pipe()

	payload := bytes.Repeat([]byte("xtabs"), 100*1024)
	go func() {
		cw.SendData(payload)
		cw.Flush()
	}()
	got, err := c.ReceiveData()
	if err != nil {
		t.Fatalf("ReceiveData: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("ReceiveData: payload mismatch")
	}
}

func TestIOStats(t *testing.T) {
	a := NewIOStats()
	a.Sent.Store(10)
	a.Recvd.Store(20)
	b := NewIOStats()
	b.Sent.Store(1)
	b.Recvd.Store(2)

	sum := a.Add(b)
	if sum.Sum() != 33 {
		t.Errorf("Add: got %v, expected 33", sum.Sum())
	}
	diff := sum.Sub(b)
	if diff.Sent.Load() != 10 || diff.Recvd.Load() != 20 {
		t.Errorf("Sub: got %v/%v", diff.Sent.Load(), diff.Recvd.Load())
	}
	snap := a.Snapshot()
	a.Sent.Add(5)
	if snap.Sent.Load() != 10 {
		t.Errorf("Snapshot tracks its source: %v", snap.Sent.Load())
	}
}
