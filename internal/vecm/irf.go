// Authors: Carlos Bello, Daniela Herrera
// Date: May 1st 2026
// Project: A VECM-based Cointegration Analysis of US Housing Prices and Consumer Sentiment
// Class: 02-613 at Caregie Mellon University

package vecm

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Psi returns the moving-average coefficient matrices Psi_0..Psi_horizon of
// the VAR, with Psi_0 = I.
func (v *VAR) Psi(horizon int) ([]*mat.Dense, error) {
	if v == nil || len(v.A) == 0 {
		return nil, fmt.Errorf("var: model not estimated")
	}
	if horizon < 0 {
		return nil, fmt.Errorf("var: horizon must be >= 0, got %d", horizon)
	}

	K := v.k()
	p := len(v.A)

	psi := make([]*mat.Dense, horizon+1)
	psi0 := mat.NewDense(K, K, nil)
	for i := 0; i < K; i++ {
		psi0.Set(i, i, 1.0)
	}
	psi[0] = psi0

	for h := 1; h <= horizon; h++ {
		ph := mat.NewDense(K, K, nil)
		jMax := h
		if p < jMax {
			jMax = p
		}
		for j := 1; j <= jMax; j++ {
			var term mat.Dense
			term.Mul(v.A[j-1], psi[h-j])
			ph.Add(ph, &term)
		}
		psi[h] = ph
	}
	return psi, nil
}

// IRF computes the orthogonalized impulse responses of all variables to a
// one standard deviation shock in variable shockIdx. The result has
// horizon+1 rows; row h is the response h periods after impact.
func (v *VAR) IRF(horizon, shockIdx int) (*mat.Dense, error) {
	if v == nil || len(v.A) == 0 {
		return nil, fmt.Errorf("var: model not estimated")
	}

	K := v.k()
	if shockIdx < 0 || shockIdx >= K {
		return nil, fmt.Errorf("var: shock index %d out of range for %d variables", shockIdx, K)
	}

	psi, err := v.Psi(horizon)
	if err != nil {
		return nil, err
	}

	impulse := v.shockVector(shockIdx)

	out := mat.NewDense(horizon+1, K, nil)
	resp := mat.NewVecDense(K, nil)
	for h := 0; h <= horizon; h++ {
		resp.MulVec(psi[h], impulse)
		for k := 0; k < K; k++ {
			out.Set(h, k, resp.AtVec(k))
		}
	}
	return out, nil
}

// shockVector is the shockIdx-th column of the Cholesky factor of SigmaU.
// When the covariance is not positive definite the shock degrades to a unit
// impulse in that variable.
func (v *VAR) shockVector(shockIdx int) *mat.VecDense {
	K := v.k()
	impulse := mat.NewVecDense(K, nil)

	var chol mat.Cholesky
	if v.SigmaU != nil && chol.Factorize(v.SigmaU) {
		var L mat.TriDense
		chol.LTo(&L)
		for k := 0; k < K; k++ {
			impulse.SetVec(k, L.At(k, shockIdx))
		}
		return impulse
	}

	impulse.SetVec(shockIdx, 1.0)
	return impulse
}

func (v *VAR) k() int {
	if len(v.Names) > 0 {
		return len(v.Names)
	}
	r, _ := v.A[0].Dims()
	return r
}
