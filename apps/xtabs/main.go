//
// main.go
//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/markkurossi/xtabs/dataset"
	"github.com/markkurossi/xtabs/env"
	"github.com/markkurossi/xtabs/p2p"
	"github.com/markkurossi/xtabs/secret"
	"github.com/markkurossi/xtabs/secret/gc"
	"github.com/markkurossi/xtabs/secret/plain"
	"github.com/markkurossi/xtabs/xtabs"
)

func main() {
	evaluator := flag.Bool("e", false, "evaluator (bob) mode")
	sim := flag.Bool("sim", false, "single process cleartext simulation")
	addr := flag.String("addr", ":8080", "peer address")
	agg := flag.String("agg", "sum",
		"aggregation: sum, freq, avg, avgf, mode, std, hist2d, linreg, innerprod")
	by := flag.String("by", "a0",
		"grouping columns, or x and y for hist2d, linreg, innerprod")
	value := flag.String("value", "b0", "value column")
	k := flag.Int("k", 2, "number of categories of the first grouping column")
	k2 := flag.Int("k2", 2,
		"number of categories of the second grouping column")
	rows := flag.Int("rows", 0, "number of rows in each column")
	ddof := flag.Int("ddof", 0, "standard deviation degrees of freedom")
	bits := flag.Int("bits", 32, "integer bit width")
	bins := flag.Int("bins", 10, "number of histogram bins per axis")
	edgesX := flag.String("edges-x", "",
		"public histogram x edges: comma separated list or file")
	edgesY := flag.String("edges-y", "",
		"public histogram y edges: comma separated list or file")
	float := flag.Bool("float", false, "real number values")
	scale := flag.Bool("scale", true, "standardize the linreg feature")
	policy := flag.String("policy", "drop", "out-of-range policy: drop, clamp")
	dir := flag.String("dir", "", "data directory")
	peerDir := flag.String("peer-dir", "",
		"peer's data directory in simulation mode")
	verbose := flag.Bool("v", false, "verbose output")
	flag.Parse()

	log.SetFlags(0)

	self := secret.Alice
	if *evaluator {
		self = secret.Bob
	}

	cfg := dataset.Config{
		Rows: *rows,
	}
	switch {
	case *sim:
		cfg.Self = secret.Public
		cfg.AliceDir = *dir
		cfg.BobDir = *peerDir
	case self == secret.Alice:
		cfg.Self = self
		cfg.AliceDir = *dir
	default:
		cfg.Self = self
		cfg.BobDir = *dir
	}
	loader, err := dataset.NewLoader(cfg)
	if err != nil {
		log.Fatal(err)
	}

	j := &job{
		agg:    *agg,
		k:      []int{*k, *k2},
		ddof:   *ddof,
		bins:   *bins,
		float:  *float,
		scale:  *scale,
		loader: loader,
	}
	j.policy, err = xtabs.ParsePolicy(*policy)
	if err != nil {
		log.Fatal(err)
	}
	j.by, err = dataset.ParseColumnRefs(*by)
	if err != nil {
		log.Fatal(err)
	}
	j.value, err = dataset.ParseColumnRef(*value)
	if err != nil {
		log.Fatal(err)
	}
	if err := j.validate(*edgesX, *edgesY); err != nil {
		log.Fatal(err)
	}

	if *sim {
		simulate(j, *bits, *verbose)
		return
	}

	ecfg := &env.Config{
		Verbose: *verbose,
	}
	var conn *p2p.Conn
	if self == secret.Alice {
		fmt.Printf("Listening for connections at %s\n", *addr)
		conn, err = p2p.Listen(*addr)
	} else {
		conn, err = p2p.Dial(*addr)
	}
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	session, err := gc.NewSession(ecfg, conn, self)
	if err != nil {
		log.Fatal(err)
	}
	ints := session.Ints(*bits)
	if j.float {
		err = run(j, xtabs.New[gc.Int, gc.Float, gc.Bit, float64](ints,
			session.Reals()))
	} else {
		err = run(j, xtabs.New[gc.Int, gc.Int, gc.Bit, int64](ints, ints))
	}
	if err != nil {
		log.Fatal(err)
	}
	if *verbose {
		fmt.Println(session)
		session.Timing.Print(os.Stdout, conn.Stats)
	}
}

func simulate(j *job, bits int, verbose bool) {
	sim := plain.New()
	ints := sim.Ints(bits)

	var err error
	if j.float {
		err = run(j, xtabs.New[plain.Int, plain.Float, plain.Bit, float64](
			ints, sim.Reals()))
	} else {
		err = run(j, xtabs.New[plain.Int, plain.Int, plain.Bit, int64](
			ints, ints))
	}
	if err != nil {
		log.Fatal(err)
	}
	if verbose {
		var ops []string
		for op := range sim.Trace.Ops {
			ops = append(ops, op)
		}
		sort.Strings(ops)
		for _, op := range ops {
			fmt.Printf("%-8s %d\n", op, sim.Trace.Ops[op])
		}
		fmt.Printf("reveals: %d (%d values)\n", sim.Trace.Reveals,
			sim.Trace.Revealed)
		fmt.Printf("trace:   %x\n", sim.Trace.Digest())
	}
}
