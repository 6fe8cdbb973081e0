//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

package xtabs_test

import (
	"testing"

	"github.com/markkurossi/xtabs/env"
	"github.com/markkurossi/xtabs/p2p"
	"github.com/markkurossi/xtabs/secret"
	"github.com/markkurossi/xtabs/secret/gc"
	"github.com/markkurossi/xtabs/secret/plain"
	"github.com/markkurossi/xtabs/xtabs"
	"github.com/stretchr/testify/require"
)

type gcEngine = xtabs.Engine[gc.Int, gc.Int, gc.Bit, int64]

type outcome struct {
	values [][]int64
	err    error
}

// runPair runs f as both parties over 8-bit integers and returns
// Alice's and Bob's results. The own function returns the values if
// the party owns them and zeros otherwise.
func runPair(t *testing.T, f func(e *gcEngine,
	own func(secret.Party, []int64) []int64) ([][]int64, error)) (
	[][]int64, [][]int64) {

	t.Helper()

	run := func(conn *p2p.Conn, self secret.Party, done chan outcome) {
		own := func(owner secret.Party, values []int64) []int64 {
			if self == owner {
				return values
			}
			return make([]int64, len(values))
		}
		s, err := gc.NewSession(&env.Config{}, conn, self)
		if err != nil {
			done <- outcome{err: err}
			return
		}
		ints := s.Ints(8)
		v, err := f(xtabs.New[gc.Int, gc.Int, gc.Bit, int64](ints, ints), own)
		if err != nil {
			conn.Close()
		}
		done <- outcome{values: v, err: err}
	}

	aconn, bconn := p2p.Pipe()
	aliceDone := make(chan outcome)
	bobDone := make(chan outcome)
	go run(aconn, secret.Alice, aliceDone)
	go run(bconn, secret.Bob, bobDone)
	alice := <-aliceDone
	bob := <-bobDone

	require.NoError(t, alice.err, "alice")
	require.NoError(t, bob.err, "bob")
	return alice.values, bob.values
}

func TestGarbledAgreement(t *testing.T) {
	keys := []int64{0, 1, 0, 1, 2, 5}
	values := []int64{10, 20, 30, 40, -5, 7}

	sim := plain.New()
	pints := sim.Ints(8)
	pe := xtabs.New[plain.Int, plain.Int, plain.Bit, int64](pints, pints)
	idx, err := pe.Index(3)
	require.NoError(t, err)
	g, err := pe.Group([][]plain.Int{pints.Input(secret.Alice, keys)},
		[]*xtabs.Index[plain.Int]{idx})
	require.NoError(t, err)
	want, err := pe.RevealSum(g, pints.Input(secret.Bob, values))
	require.NoError(t, err)
	wantFreqs, err := pe.RevealFrequencies(g)
	require.NoError(t, err)
	require.Equal(t, []int64{40, 60, -5}, want.Cells)

	alice, bob := runPair(t, func(e *gcEngine,
		own func(secret.Party, []int64) []int64) ([][]int64, error) {

		idx, err := e.Index(3)
		if err != nil {
			return nil, err
		}
		g, err := e.Group([][]gc.Int{
			e.Ints.Input(secret.Alice, own(secret.Alice, keys)),
		}, []*xtabs.Index[gc.Int]{idx})
		if err != nil {
			return nil, err
		}
		sums, err := e.RevealSum(g,
			e.Values.Input(secret.Bob, own(secret.Bob, values)))
		if err != nil {
			return nil, err
		}
		freqs, err := e.RevealFrequencies(g)
		if err != nil {
			return nil, err
		}
		return [][]int64{sums.Cells, freqs.Cells}, nil
	})
	for _, got := range [][][]int64{alice, bob} {
		require.Equal(t, want.Cells, got[0])
		require.Equal(t, wantFreqs.Cells, got[1])
	}
}

func TestGarbledMode(t *testing.T) {
	rows := []int64{0, 0, 0, 0, 0, 1, 1, 1, 1, 1}
	cols := []int64{2, 0, 2, 1, 2, 1, 3, 3, 1, 0}

	alice, bob := runPair(t, func(e *gcEngine,
		own func(secret.Party, []int64) []int64) ([][]int64, error) {

		rowIdx, err := e.Index(3)
		if err != nil {
			return nil, err
		}
		colIdx, err := e.Index(4)
		if err != nil {
			return nil, err
		}
		g, err := e.Group([][]gc.Int{
			e.Ints.Input(secret.Alice, own(secret.Alice, rows)),
			e.Ints.Input(secret.Bob, own(secret.Bob, cols)),
		}, []*xtabs.Index[gc.Int]{rowIdx, colIdx})
		if err != nil {
			return nil, err
		}
		modes, err := e.Mode(g)
		if err != nil {
			return nil, err
		}
		return [][]int64{modes.Cells}, nil
	})
	require.Equal(t, []int64{2, 3, 3}, alice[0])
	require.Equal(t, []int64{2, 3, 3}, bob[0])
}
