// Authors: Carlos Bello, Daniela Herrera
// Date: May 1st 2026
// Project: A VECM-based Cointegration Analysis of US Housing Prices and Consumer Sentiment
// Class: 02-613 at Caregie Mellon University

package vecm

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// EstimateVAR fits a levels VAR by equation-wise OLS. Y is T x K with one
// column per variable; names labels the columns.
func EstimateVAR(Y *mat.Dense, names []string, spec ModelSpec) (*VAR, error) {
	if Y == nil {
		return nil, fmt.Errorf("var: data not provided")
	}

	T, K := Y.Dims()
	p := spec.Lags
	if p <= 0 {
		return nil, fmt.Errorf("var: lags must be > 0")
	}
	if T <= p {
		return nil, fmt.Errorf("var: need at least p+1 observations: p = %d, T = %d", p, T)
	}
	if len(names) != K {
		return nil, fmt.Errorf("var: %d names for %d columns", len(names), K)
	}

	Treg := T - p
	detCols := spec.Deterministic.columns()
	m := detCols + p*K

	// Response rows y_p .. y_{T-1}
	Yreg := mat.NewDense(Treg, K, nil)
	for t := 0; t < Treg; t++ {
		for k := 0; k < K; k++ {
			Yreg.Set(t, k, Y.At(t+p, k))
		}
	}

	X := varDesign(Y, p, spec.Deterministic)

	B, err := solveLS(X, Yreg)
	if err != nil {
		return nil, fmt.Errorf("var: %v", err)
	}

	// Split B into deterministic coefficients and lag matrices
	var C *mat.Dense
	if detCols > 0 {
		C = mat.NewDense(K, detCols, nil)
		for k := 0; k < K; k++ {
			for d := 0; d < detCols; d++ {
				C.Set(k, d, B.At(d, k))
			}
		}
	}

	A := make([]*mat.Dense, p)
	for j := 0; j < p; j++ {
		Aj := mat.NewDense(K, K, nil)
		rowOffset := detCols + j*K
		for eq := 0; eq < K; eq++ {
			for v := 0; v < K; v++ {
				Aj.Set(eq, v, B.At(rowOffset+v, eq))
			}
		}
		A[j] = Aj
	}

	// Residual covariance with degrees-of-freedom correction
	var Yhat mat.Dense
	Yhat.Mul(X, B)
	var U mat.Dense
	U.Sub(Yreg, &Yhat)

	SigmaU := covarianceOf(&U, Treg-m)

	nm := make([]string, K)
	copy(nm, names)

	return &VAR{Model: spec, Names: nm, A: A, C: C, SigmaU: SigmaU}, nil
}

// Residuals recomputes the one-step-ahead residuals of the fitted VAR on
// the given data, one row per usable observation.
func (v *VAR) Residuals(Y *mat.Dense) (*mat.Dense, error) {
	if v == nil || len(v.A) == 0 {
		return nil, fmt.Errorf("var: model not estimated")
	}
	if Y == nil {
		return nil, fmt.Errorf("var: data not provided")
	}

	T, K := Y.Dims()
	p := v.Model.Lags
	if T <= p {
		return nil, fmt.Errorf("var: need at least p+1 observations: p = %d, T = %d", p, T)
	}

	U := mat.NewDense(T-p, K, nil)
	for t := p; t < T; t++ {
		for eq := 0; eq < K; eq++ {
			fitted := v.fittedAt(Y, t, eq)
			U.Set(t-p, eq, Y.At(t, eq)-fitted)
		}
	}
	return U, nil
}

// fittedAt evaluates equation eq of the VAR at absolute row t, using rows
// t-1..t-p of Y as lags.
func (v *VAR) fittedAt(Y *mat.Dense, t, eq int) float64 {
	_, K := Y.Dims()
	val := 0.0

	if v.C != nil {
		col := 0
		if v.Model.Deterministic.hasConst() {
			val += v.C.At(eq, col)
			col++
		}
		if v.Model.Deterministic.hasTrend() {
			val += v.C.At(eq, col) * float64(t+1)
		}
	}

	for j := 1; j <= v.Model.Lags; j++ {
		Aj := v.A[j-1]
		for k := 0; k < K; k++ {
			val += Aj.At(eq, k) * Y.At(t-j, k)
		}
	}
	return val
}

// varDesign builds the regressor matrix: deterministic columns first, then
// the lag blocks [y_{t-1}, ..., y_{t-p}]. The trend regressor is the
// absolute observation index, starting at one.
func varDesign(Y *mat.Dense, p int, det Deterministic) *mat.Dense {
	T, K := Y.Dims()
	Treg := T - p
	m := det.columns() + p*K

	X := mat.NewDense(Treg, m, nil)
	for t := 0; t < Treg; t++ {
		col := 0
		if det.hasConst() {
			X.Set(t, col, 1.0)
			col++
		}
		if det.hasTrend() {
			X.Set(t, col, float64(t+p+1))
			col++
		}
		for j := 1; j <= p; j++ {
			srcRow := t + p - j
			for k := 0; k < K; k++ {
				X.Set(t, col, Y.At(srcRow, k))
				col++
			}
		}
	}
	return X
}

// solveLS solves X*B ≈ Y in the least-squares sense: normal equations
// first, SVD-based minimum-norm solution when X'X cannot be inverted.
func solveLS(X, Y *mat.Dense) (*mat.Dense, error) {
	_, m := X.Dims()
	_, K := Y.Dims()

	var B mat.Dense

	var xtx mat.Dense
	xtx.Mul(X.T(), X)

	var xtxInv mat.Dense
	if errInv := xtxInv.Inverse(&xtx); errInv == nil {
		var xty mat.Dense
		xty.Mul(X.T(), Y)
		B.Mul(&xtxInv, &xty)
	} else {
		var svd mat.SVD
		if ok := svd.Factorize(X, mat.SVDThin); !ok {
			return nil, fmt.Errorf("least squares failed: X'X singular and SVD factorization failed: %v", errInv)
		}
		rank := svd.Rank(1e-12)
		if rank == 0 {
			B = *mat.NewDense(m, K, nil)
		} else {
			svd.SolveTo(&B, Y, rank)
		}
	}
	return &B, nil
}

// covarianceOf turns a residual matrix into U'U/df. A non-positive df falls
// back to the row count.
func covarianceOf(U *mat.Dense, df int) *mat.SymDense {
	T, K := U.Dims()

	var utu mat.Dense
	utu.Mul(U.T(), U)

	d := float64(df)
	if d <= 0 {
		d = float64(T)
	}

	data := make([]float64, K*K)
	for i := 0; i < K; i++ {
		for j := 0; j < K; j++ {
			data[i*K+j] = utu.At(i, j) / d
		}
	}
	return mat.NewSymDense(K, data)
}
