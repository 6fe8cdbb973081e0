//
// main.go
//
// Copyright (c) 2019-2025 Markku Rossi
//
// All rights reserved.
//

// The ot runs a batch of Chou-Orlandi oblivious transfers between two
// in-process parties and verifies the received labels.
package main

import (
	"crypto/rand"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/markkurossi/xtabs/ot"
	"github.com/markkurossi/xtabs/p2p"
)

func main() {
	count := flag.Int("n", 1024, "number of transfers")
	flag.Parse()

	log.SetFlags(0)

	r, err := ot.NewLabel(rand.Reader)
	if err != nil {
		log.Fatal(err)
	}
	r.SetS(true)

	wires := make([]ot.Wire, *count)
	flags := make([]bool, *count)
	var buf [1]byte
	for i := range wires {
		wires[i], err = ot.NewWire(rand.Reader, r)
		if err != nil {
			log.Fatal(err)
		}
		if _, err := rand.Read(buf[:]); err != nil {
			log.Fatal(err)
		}
		flags[i] = buf[0]&1 == 1
	}

	sconn, rconn := p2p.Pipe()
	start := time.Now()

	done := make(chan error)
	go func() {
		sender := ot.NewCO(rand.Reader)
		err := sender.InitSender(sconn)
		if err == nil {
			err = sender.Send(wires)
		}
		done <- err
	}()

	receiver := ot.NewCO(rand.Reader)
	result := make([]ot.Label, *count)
	err = receiver.InitReceiver(rconn)
	if err == nil {
		err = receiver.Receive(flags, result)
	}
	if serr := <-done; serr != nil {
		log.Fatal(errors.Wrap(serr, "sender"))
	}
	if err != nil {
		log.Fatal(errors.Wrap(err, "receiver"))
	}
	elapsed := time.Since(start)

	for i, label := range result {
		if !label.Equal(wires[i].Label(flags[i])) {
			log.Fatalf("transfer %d: got %v, expected %v",
				i, label, wires[i].Label(flags[i]))
		}
	}
	fmt.Printf("%d transfers in %v (%v/OT)\n", *count, elapsed,
		elapsed/time.Duration(*count))
}
