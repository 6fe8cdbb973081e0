//
// main.go
//
// Copyright (c) 2019-2025 Markku Rossi
//
// All rights reserved.
//

// The iotest measures the peer connection throughput by streaming
// wire labels from the garbler to the evaluator.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/markkurossi/xtabs/circuit"
	"github.com/markkurossi/xtabs/ot"
	"github.com/markkurossi/xtabs/p2p"
)

func main() {
	evaluator := flag.Bool("e", false, "evaluator / garbler mode")
	addr := flag.String("addr", ":8080", "peer address")
	size := flag.Int64("size", 64*1024*1024, "number of bytes to send")
	flag.Parse()

	log.SetFlags(0)

	var err error
	if *evaluator {
		err = receive(*addr)
	} else {
		err = send(*addr, *size)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func receive(addr string) error {
	fmt.Printf("Listening for connections at %s\n", addr)
	conn, err := p2p.Listen(addr)
	if err != nil {
		return err
	}
	defer conn.Close()

	start := time.Now()
	var label ot.Label
	var labelData ot.LabelData
	for {
		err = conn.ReceiveLabel(&label, &labelData)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
	}
	report("Received", conn, time.Since(start))
	return nil
}

func send(addr string, size int64) error {
	conn, err := p2p.Dial(addr)
	if err != nil {
		return err
	}
	start := time.Now()

	var label ot.Label
	var labelData ot.LabelData
	for sent := int64(0); sent < size; sent += int64(len(labelData)) {
		label.D0 = uint64(sent)
		if err := conn.SendLabel(label, &labelData); err != nil {
			return err
		}
	}
	if err := conn.Flush(); err != nil {
		return err
	}
	if err := conn.Close(); err != nil {
		return err
	}
	report("Sent", conn, time.Since(start))
	return nil
}

func report(what string, conn *p2p.Conn, elapsed time.Duration) {
	bytes := conn.Stats.Sum()
	fmt.Printf("%s: %v in %v (%v/s)\n", what, circuit.FileSize(bytes),
		elapsed, circuit.FileSize(float64(bytes)/elapsed.Seconds()))
}
