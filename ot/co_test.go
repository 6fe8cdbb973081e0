//
// co_test.go
//
// Copyright (c) 2023-2025 Markku Rossi
//
// All rights reserved.
//

package ot_test

import (
	"crypto/rand"
	"testing"

	"github.com/markkurossi/xtabs/ot"
	"github.com/markkurossi/xtabs/p2p"
)

func TestCO(t *testing.T) {
	const count = 64

	var r ot.Label
	r.SetS(true)
	r.D1 = 0x1234

	wires := make([]ot.Wire, count)
	flags := make([]bool, count)
	for i := range wires {
		w, err := ot.NewWire(rand.Reader, r)
		if err != nil {
			t.Fatal(err)
		}
		wires[i] = w
		flags[i] = i%3 == 0
	}

	sconn, rconn := p2p.Pipe()
	done := make(chan error)

	go func() {
		sender := ot.NewCO(nil)
		if err := sender.InitSender(sconn); err != nil {
			done <- err
			return
		}
		done <- sender.Send(wires)
	}()

	receiver := ot.NewCO(nil)
	if err := receiver.InitReceiver(rconn); err != nil {
		t.Fatalf("InitReceiver: %v", err)
	}
	result := make([]ot.Label, count)
	if err := receiver.Receive(flags, result); err != nil {
		t.Fatalf("Receive: %v", err)
	}
	if err := <-done; err != nil {
		t.Fatalf("Send: %v", err)
	}

	for i := range wires {
		if !result[i].Equal(wires[i].Label(flags[i])) {
			t.Errorf("wire %d: got %v, expected %v",
				i, result[i], wires[i].Label(flags[i]))
		}
	}
}
