//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

package xtabs

import (
	"github.com/cockroachdb/errors"
)

// HistogramParams define the bins of a two-dimensional histogram. An
// axis with public edges uses them. Other axes derive Bins evenly
// spaced bins from the secret extremes of their column.
type HistogramParams[C any] struct {
	BinsX  int
	BinsY  int
	EdgesX []C
	EdgesY []C
	Policy Policy
}

// Histogram holds the revealed edges and counts of a two-dimensional
// histogram. The counts have the Y bins as rows and the X bins as
// columns.
type Histogram[C any] struct {
	EdgesX []C
	EdgesY []C
	Counts *Table[int64]
}

// Histogram2D computes the two-dimensional histogram of the columns.
func (e *Engine[I, V, B, C]) Histogram2D(xs, ys []V,
	params HistogramParams[C]) (*Histogram[C], error) {

	if len(xs) != len(ys) {
		return nil, errors.Wrapf(ErrShape, "x has %d rows, y has %d",
			len(xs), len(ys))
	}
	edgesX, err := e.histogramEdges(xs, params.BinsX, params.EdgesX)
	if err != nil {
		return nil, errors.Wrap(err, "x")
	}
	edgesY, err := e.histogramEdges(ys, params.BinsY, params.EdgesY)
	if err != nil {
		return nil, errors.Wrap(err, "y")
	}

	codesX, idsX, err := e.ClassifyColumn(xs, edgesX, params.Policy)
	if err != nil {
		return nil, err
	}
	codesY, idsY, err := e.ClassifyColumn(ys, edgesY, params.Policy)
	if err != nil {
		return nil, err
	}
	g, err := e.Group([][]I{codesY, codesX}, []*Index[I]{idsY, idsX})
	if err != nil {
		return nil, err
	}
	counts, err := e.RevealFrequencies(g)
	if err != nil {
		return nil, err
	}

	all := make([]V, 0, len(edgesX)+len(edgesY))
	all = append(all, edgesX...)
	all = append(all, edgesY...)
	edges, err := e.Values.Reveal(all...)
	if err != nil {
		return nil, err
	}
	return &Histogram[C]{
		EdgesX: edges[:len(edgesX)],
		EdgesY: edges[len(edgesX):],
		Counts: counts,
	}, nil
}

func (e *Engine[I, V, B, C]) histogramEdges(column []V, bins int,
	public []C) ([]V, error) {

	if len(public) > 0 {
		if err := ValidateEdges(public); err != nil {
			return nil, err
		}
		edges := make([]V, len(public))
		for i, v := range public {
			edges[i] = e.Values.Const(v)
		}
		return edges, nil
	}
	if bins < 1 {
		return nil, errors.Newf("invalid bin count %d", bins)
	}
	lo, hi, err := e.Extremes(column)
	if err != nil {
		return nil, err
	}
	return e.Linspace(lo, hi, bins+1)
}
