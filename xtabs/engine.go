//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

// Package xtabs implements oblivious cross tabulation: group-by
// aggregations and two-dimensional histograms over secret columns.
// All control flow and memory access depends only on public shapes:
// every register is updated for every record and every bin edge is
// visited for every value. Only the final aggregates are revealed.
package xtabs

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/markkurossi/xtabs/secret"
)

// Errors.
var (
	ErrShape        = errors.New("shape mismatch")
	ErrNotAscending = errors.New("bin edges not strictly ascending")
	ErrTooFewEdges  = errors.New("too few bin edges")
)

// OutOfRange is the classifier code of dropped values.
const OutOfRange = -1

// Policy defines how the classifier handles values outside the bin
// edges.
type Policy int

// Out-of-range policies.
const (
	// Drop gives values below the first edge or above the last edge
	// the OutOfRange code so they count into no bin.
	Drop Policy = iota
	// Clamp puts values below the first edge into the first bin and
	// values above the last edge into the last bin.
	Clamp
)

func (p Policy) String() string {
	switch p {
	case Drop:
		return "drop"
	case Clamp:
		return "clamp"
	default:
		return "{Policy}"
	}
}

// ParsePolicy parses the policy name.
func ParsePolicy(name string) (Policy, error) {
	switch strings.ToLower(name) {
	case "drop":
		return Drop, nil
	case "clamp":
		return Clamp, nil
	default:
		return Drop, errors.Newf("unknown policy %q", name)
	}
}

// Engine implements the aggregations. The integer kind I holds
// grouping columns, category codes, and frequencies. The value kind V
// with cleartext kind C holds the aggregated values. Both kinds share
// the secret bit kind B.
type Engine[I, V, B any, C secret.Number] struct {
	Ints   secret.Arith[I, B, int64]
	Values secret.Arith[V, B, C]
}

// New creates a new engine.
func New[I, V, B any, C secret.Number](ints secret.Arith[I, B, int64],
	values secret.Arith[V, B, C]) *Engine[I, V, B, C] {

	return &Engine[I, V, B, C]{
		Ints:   ints,
		Values: values,
	}
}
