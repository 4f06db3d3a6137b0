package ml

import (
	"errors"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// rankTolerance is the relative singular value below which a direction is
// treated as degenerate.
const rankTolerance = 1e-10

// fitOLS fits ordinary least squares with an intercept. Columns are centred
// first and the minimum-norm solution is taken, so collinear one-hot columns
// do not make the fit fail.
func fitOLS(x [][]float64, y []float64) (coefficients []float64, intercept float64, err error) {
	n := len(x)
	if n == 0 || n != len(y) {
		return nil, 0, errors.New("regression needs matching, non-empty inputs")
	}
	k := len(x[0])

	means := make([]float64, k)
	column := make([]float64, n)
	for j := 0; j < k; j++ {
		for i := range x {
			column[i] = x[i][j]
		}
		means[j] = stat.Mean(column, nil)
	}
	yMean := stat.Mean(y, nil)

	a := mat.NewDense(n, k, nil)
	b := mat.NewVecDense(n, nil)
	for i := range x {
		for j := 0; j < k; j++ {
			a.Set(i, j, x[i][j]-means[j])
		}
		b.SetVec(i, y[i]-yMean)
	}

	coefficients = make([]float64, k)
	if k == 0 {
		return coefficients, yMean, nil
	}

	var svd mat.SVD
	if !svd.Factorize(a, mat.SVDThin) {
		return nil, 0, errors.New("singular value decomposition did not converge")
	}

	if rank := svd.Rank(rankTolerance); rank > 0 {
		var beta mat.VecDense
		svd.SolveVecTo(&beta, b, rank)
		for j := range coefficients {
			coefficients[j] = beta.AtVec(j)
		}
	}

	return coefficients, yMean - floats.Dot(means, coefficients), nil
}
