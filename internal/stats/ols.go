// Authors: Carlos Bello, Daniela Herrera
// Date: May 1st 2026
// Project: A VECM-based Cointegration Analysis of US Housing Prices and Consumer Sentiment
// Class: 02-613 at Caregie Mellon University

package stats

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// OLSResult holds a least-squares fit.
type OLSResult struct {
	// Coefficients, intercept first when one was requested
	Coef []float64
	// Fitted values X*b
	Fitted []float64
	// y - fitted
	Residuals []float64
	// Coefficient of determination
	R2 float64
	// Residual variance with degrees-of-freedom correction
	Sigma2 float64
}

// OLS fits y on the given regressor columns by ordinary least squares.
// It solves the normal equations directly and falls back to an SVD-based
// minimum-norm solution when X'X is singular.
func OLS(y []float64, regressors [][]float64, intercept bool) (*OLSResult, error) {
	n := len(y)
	if n == 0 {
		return nil, fmt.Errorf("ols: empty response")
	}

	m := len(regressors)
	if intercept {
		m++
	}
	if m == 0 {
		return nil, fmt.Errorf("ols: no regressors")
	}
	if n < m {
		return nil, fmt.Errorf("ols: %d observations for %d parameters", n, m)
	}

	for _, col := range regressors {
		if len(col) != n {
			return nil, fmt.Errorf("ols: regressor length %d does not match response length %d", len(col), n)
		}
	}

	X := mat.NewDense(n, m, nil)
	for t := 0; t < n; t++ {
		col := 0
		if intercept {
			X.Set(t, col, 1.0)
			col++
		}
		for _, reg := range regressors {
			X.Set(t, col, reg[t])
			col++
		}
	}
	yVec := mat.NewDense(n, 1, nil)
	for t := 0; t < n; t++ {
		if math.IsNaN(y[t]) || math.IsInf(y[t], 0) {
			return nil, fmt.Errorf("ols: non-finite response at position %d", t)
		}
		yVec.Set(t, 0, y[t])
	}

	// b = (X'X)^(-1) X'y, with an SVD fallback when X'X cannot be inverted
	var b mat.Dense

	var xtx mat.Dense
	xtx.Mul(X.T(), X)

	var xtxInv mat.Dense
	if errInv := xtxInv.Inverse(&xtx); errInv == nil {
		var xty mat.Dense
		xty.Mul(X.T(), yVec)
		b.Mul(&xtxInv, &xty)
	} else {
		var svd mat.SVD
		if ok := svd.Factorize(X, mat.SVDThin); !ok {
			return nil, fmt.Errorf("ols: X'X singular and SVD factorization failed: %v", errInv)
		}
		rank := svd.Rank(1e-12)
		if rank == 0 {
			b = *mat.NewDense(m, 1, nil)
		} else {
			svd.SolveTo(&b, yVec, rank)
		}
	}

	coef := make([]float64, m)
	for i := 0; i < m; i++ {
		coef[i] = b.At(i, 0)
	}

	fitted := make([]float64, n)
	residuals := make([]float64, n)
	rss := 0.0
	for t := 0; t < n; t++ {
		f := 0.0
		for i := 0; i < m; i++ {
			f += X.At(t, i) * coef[i]
		}
		fitted[t] = f
		residuals[t] = y[t] - f
		rss += residuals[t] * residuals[t]
	}

	// Total sum of squares around the mean when an intercept is present,
	// around zero otherwise.
	tss := 0.0
	if intercept {
		mean := 0.0
		for _, v := range y {
			mean += v
		}
		mean /= float64(n)
		for _, v := range y {
			tss += (v - mean) * (v - mean)
		}
	} else {
		for _, v := range y {
			tss += v * v
		}
	}

	r2 := 0.0
	if tss > 0 {
		r2 = 1.0 - rss/tss
	}

	df := float64(n - m)
	if df <= 0 {
		df = float64(n)
	}

	return &OLSResult{
		Coef:      coef,
		Fitted:    fitted,
		Residuals: residuals,
		R2:        r2,
		Sigma2:    rss / df,
	}, nil
}
