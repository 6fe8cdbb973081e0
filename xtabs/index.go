//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

package xtabs

import (
	"github.com/cockroachdb/errors"
)

// Index holds the public category codes 0..K-1 of one grouping
// dimension. The codes are secret values used as comparison anchors.
type Index[I any] struct {
	K     int
	Codes []I
}

// Index creates the category index for K categories.
func (e *Engine[I, V, B, C]) Index(k int) (*Index[I], error) {
	if k < 1 {
		return nil, errors.Newf("invalid category count %d", k)
	}
	codes := make([]I, k)
	for i := range codes {
		codes[i] = e.Ints.Const(int64(i))
	}
	return &Index[I]{
		K:     k,
		Codes: codes,
	}, nil
}
