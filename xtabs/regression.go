//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

package xtabs

import (
	"math"

	"github.com/cockroachdb/errors"
)

// Regression holds the revealed result of a single variable linear
// regression y = Intercept + Slope*x. Mean and Std are the scaler
// parameters of the feature column and NaN when the feature was not
// scaled.
type Regression struct {
	Intercept float64
	Slope     float64
	Mean      float64
	Std       float64
}

// LinReg fits a least squares line to the feature column xs and the
// label column ys. With scale the features are first standardized with
// their mean and population standard deviation and the coefficients
// refer to the standardized feature. A constant feature column gives
// NaN coefficients.
func (e *Engine[I, V, B, C]) LinReg(xs, ys []V, scale bool) (
	*Regression, error) {

	if len(xs) != len(ys) {
		return nil, errors.Wrapf(ErrShape, "x has %d rows, y has %d",
			len(xs), len(ys))
	}
	if len(xs) == 0 {
		return nil, errors.Wrap(ErrShape, "empty columns")
	}
	result := &Regression{
		Mean: math.NaN(),
		Std:  math.NaN(),
	}
	zero := e.Values.Const(0)
	n := e.Values.Const(C(len(xs)))

	if scale {
		scaled, mean, std, err := e.standardize(xs, n)
		if err != nil {
			return nil, err
		}
		params, err := e.Values.Reveal(mean, std)
		if err != nil {
			return nil, err
		}
		result.Mean = float64(params[0])
		result.Std = float64(params[1])
		xs = scaled
	}

	sumX, sumY, sumXY, sumX2 := zero, zero, zero, zero
	for i := range xs {
		sumX = e.Values.Add(sumX, xs[i])
		sumY = e.Values.Add(sumY, ys[i])
		sumXY = e.Values.Add(sumXY, e.Values.Mul(xs[i], ys[i]))
		sumX2 = e.Values.Add(sumX2, e.Values.Mul(xs[i], xs[i]))
	}
	denom := e.Values.Sub(e.Values.Mul(n, sumX2), e.Values.Mul(sumX, sumX))
	slope := e.Values.Div(
		e.Values.Sub(e.Values.Mul(n, sumXY), e.Values.Mul(sumX, sumY)),
		denom)
	intercept := e.Values.Div(
		e.Values.Sub(sumY, e.Values.Mul(slope, sumX)), n)

	defined := e.Values.Not(e.Values.Equal(denom, zero))
	table, err := e.revealDefined([]int{2}, []V{intercept, slope},
		[]B{defined, defined})
	if err != nil {
		return nil, err
	}
	result.Intercept = table.Cells[0]
	result.Slope = table.Cells[1]

	return result, nil
}

// standardize returns (x-mean)/std for the column and the secret mean
// and population standard deviation.
func (e *Engine[I, V, B, C]) standardize(xs []V, n V) (
	scaled []V, mean, std V, err error) {

	reals, ok := e.Values.(realOps[V])
	if !ok {
		return nil, mean, std,
			errors.Newf("%T does not support square roots", e.Values)
	}
	zero := e.Values.Const(0)

	sum := zero
	for _, x := range xs {
		sum = e.Values.Add(sum, x)
	}
	mean = e.Values.Div(sum, n)

	squares := zero
	for _, x := range xs {
		squares = e.Values.Add(squares, reals.Square(e.Values.Sub(x, mean)))
	}
	std = reals.Sqrt(e.Values.Div(squares, n))

	scaled = make([]V, len(xs))
	for i, x := range xs {
		scaled[i] = e.Values.Div(e.Values.Sub(x, mean), std)
	}
	return scaled, mean, std, nil
}

// InnerProduct reveals the inner product of the columns.
func (e *Engine[I, V, B, C]) InnerProduct(xs, ys []V) (C, error) {
	var zero C
	if len(xs) != len(ys) {
		return zero, errors.Wrapf(ErrShape, "x has %d rows, y has %d",
			len(xs), len(ys))
	}
	sum := e.Values.Const(0)
	for i := range xs {
		sum = e.Values.Add(sum, e.Values.Mul(xs[i], ys[i]))
	}
	result, err := e.Values.Reveal(sum)
	if err != nil {
		return zero, err
	}
	return result[0], nil
}
