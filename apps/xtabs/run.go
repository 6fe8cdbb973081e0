//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

package main

import (
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/markkurossi/xtabs/dataset"
	"github.com/markkurossi/xtabs/secret"
	"github.com/markkurossi/xtabs/xtabs"
)

type job struct {
	agg     string
	by      []dataset.ColumnRef
	value   dataset.ColumnRef
	k       []int
	ddof    int
	bins    int
	float   bool
	scale   bool
	policy  xtabs.Policy
	edgesXi []int64
	edgesYi []int64
	edgesXf []float64
	edgesYf []float64
	loader  *dataset.Loader
}

// validate checks the public parameters before any secure
// computation.
func (j *job) validate(edgesX, edgesY string) error {
	switch j.agg {
	case "sum", "freq", "avg", "avgf", "std":
		if len(j.by) > len(j.k) {
			return errors.Newf("%s: at most %d grouping columns",
				j.agg, len(j.k))
		}
	case "mode":
		if len(j.by) != 2 {
			return errors.New("mode: needs 2 grouping columns")
		}
	case "hist2d":
		if len(j.by) != 2 {
			return errors.New("hist2d: needs x and y columns")
		}
		if len(edgesX) == 0 || len(edgesY) == 0 {
			if j.bins < 1 {
				return errors.Newf("hist2d: invalid bin count %d", j.bins)
			}
		}
	case "linreg", "innerprod":
		if len(j.by) != 2 {
			return errors.Newf("%s: needs x and y columns", j.agg)
		}
	default:
		return errors.Newf("unknown aggregation %q", j.agg)
	}
	if j.agg == "std" && !j.float {
		return errors.New("std: needs real number values (-float)")
	}
	if j.agg == "linreg" && j.scale && !j.float {
		return errors.New("linreg: scaling needs real number values (-float)")
	}
	if j.agg == "std" && j.ddof != 0 && j.ddof != 1 {
		return errors.Newf("std: invalid ddof %d", j.ddof)
	}
	if j.agg != "linreg" && j.agg != "innerprod" {
		for d := range j.by {
			if d < len(j.k) && j.k[d] < 1 {
				return errors.Newf("invalid category count %d", j.k[d])
			}
		}
	}

	var err error
	if len(edgesX) > 0 {
		if j.float {
			j.edgesXf, err = dataset.LoadEdges[float64](edgesX)
		} else {
			j.edgesXi, err = dataset.LoadEdges[int64](edgesX)
		}
		if err != nil {
			return errors.Wrap(err, "x edges")
		}
	}
	if len(edgesY) > 0 {
		if j.float {
			j.edgesYf, err = dataset.LoadEdges[float64](edgesY)
		} else {
			j.edgesYi, err = dataset.LoadEdges[int64](edgesY)
		}
		if err != nil {
			return errors.Wrap(err, "y edges")
		}
	}
	return nil
}

// edges returns the public edges of the value kind.
func edges[C secret.Number](j *job) (x, y []C) {
	var zero C
	switch any(zero).(type) {
	case float64:
		return any(j.edgesXf).([]C), any(j.edgesYf).([]C)
	default:
		return any(j.edgesXi).([]C), any(j.edgesYi).([]C)
	}
}

func run[I, V, B any, C secret.Number](j *job,
	e *xtabs.Engine[I, V, B, C]) error {

	format := func(v C) string {
		return fmt.Sprintf("%v", v)
	}

	switch j.agg {
	case "linreg", "innerprod":
		xs, err := dataset.LoadColumn(j.loader, e.Values, j.by[0])
		if err != nil {
			return err
		}
		ys, err := dataset.LoadColumn(j.loader, e.Values, j.by[1])
		if err != nil {
			return err
		}
		if j.agg == "innerprod" {
			v, err := e.InnerProduct(xs, ys)
			if err != nil {
				return err
			}
			fmt.Printf("Inner product: %s\n", format(v))
			return nil
		}
		r, err := e.LinReg(xs, ys, j.scale)
		if err != nil {
			return err
		}
		if j.scale {
			fmt.Printf("Scaler: mean=%v, std=%v\n", r.Mean, r.Std)
		}
		fmt.Printf("Intercept: %v\n", r.Intercept)
		fmt.Printf("Slope:     %v\n", r.Slope)
		return nil

	case "hist2d":
		xs, err := dataset.LoadColumn(j.loader, e.Values, j.by[0])
		if err != nil {
			return err
		}
		ys, err := dataset.LoadColumn(j.loader, e.Values, j.by[1])
		if err != nil {
			return err
		}
		ex, ey := edges[C](j)
		h, err := e.Histogram2D(xs, ys, xtabs.HistogramParams[C]{
			BinsX:  j.bins,
			BinsY:  j.bins,
			EdgesX: ex,
			EdgesY: ey,
			Policy: j.policy,
		})
		if err != nil {
			return err
		}
		fmt.Printf("x edges: %v\n", h.EdgesX)
		fmt.Printf("y edges: %v\n", h.EdgesY)
		h.Counts.Print(os.Stdout, "y\\x", xtabs.FormatInt)
		return nil
	}

	g, err := group(j, e)
	if err != nil {
		return err
	}

	switch j.agg {
	case "freq":
		t, err := e.RevealFrequencies(g)
		if err != nil {
			return err
		}
		t.Print(os.Stdout, "Count", xtabs.FormatInt)

	case "mode":
		t, err := e.Mode(g)
		if err != nil {
			return err
		}
		t.Print(os.Stdout, "Mode", xtabs.FormatInt)

	default:
		values, err := dataset.LoadColumn(j.loader, e.Values, j.value)
		if err != nil {
			return err
		}
		switch j.agg {
		case "sum":
			t, err := e.RevealSum(g, values)
			if err != nil {
				return err
			}
			t.Print(os.Stdout, "Sum", format)

		case "avg":
			avg, counts, err := e.AverageRevealed(g, values)
			if err != nil {
				return err
			}
			counts.Print(os.Stdout, "Count", xtabs.FormatInt)
			avg.Print(os.Stdout, "Average", xtabs.FormatFloat)

		case "avgf":
			t, err := e.AverageSecret(g, values)
			if err != nil {
				return err
			}
			t.Print(os.Stdout, "Average", xtabs.FormatFloat)

		case "std":
			t, err := e.StdDev(g, values, j.ddof)
			if err != nil {
				return err
			}
			t.Print(os.Stdout, "StdDev", xtabs.FormatFloat)
		}
	}
	return nil
}

func group[I, V, B any, C secret.Number](j *job,
	e *xtabs.Engine[I, V, B, C]) (*xtabs.Grouping[I, B], error) {

	var columns [][]I
	var indices []*xtabs.Index[I]

	for d, ref := range j.by {
		col, err := dataset.LoadColumn(j.loader, e.Ints, ref)
		if err != nil {
			return nil, err
		}
		idx, err := e.Index(j.k[d])
		if err != nil {
			return nil, err
		}
		columns = append(columns, col)
		indices = append(indices, idx)
	}
	return e.Group(columns, indices)
}
