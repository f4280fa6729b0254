// Authors: Carlos Bello, Daniela Herrera
// Date: May 1st 2026
// Project: A VECM-based Cointegration Analysis of US Housing Prices and Consumer Sentiment
// Class: 02-613 at Caregie Mellon University

package vecm

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// FEVD decomposes the forecast error variance of each variable into the
// contributions of the orthogonalized shocks. Shares[i] is an
// (horizon+1) x K matrix for variable i: row h holds the fraction of the
// (h+1)-step forecast error variance attributed to each shock, and each
// row sums to one.
func (v *VAR) FEVD(horizon int) (*FEVDResult, error) {
	if v == nil || len(v.A) == 0 {
		return nil, fmt.Errorf("var: model not estimated")
	}
	if horizon < 0 {
		return nil, fmt.Errorf("var: horizon must be >= 0, got %d", horizon)
	}

	K := v.k()
	psi, err := v.Psi(horizon)
	if err != nil {
		return nil, err
	}

	// Orthogonalized MA matrices Theta_h = Psi_h * L.
	var chol mat.Cholesky
	if v.SigmaU == nil || !chol.Factorize(v.SigmaU) {
		return nil, fmt.Errorf("var: residual covariance is not positive definite")
	}
	var L mat.TriDense
	chol.LTo(&L)

	theta := make([]*mat.Dense, horizon+1)
	for h := 0; h <= horizon; h++ {
		th := mat.NewDense(K, K, nil)
		th.Mul(psi[h], &L)
		theta[h] = th
	}

	shares := make([]*mat.Dense, K)
	for i := 0; i < K; i++ {
		shares[i] = mat.NewDense(horizon+1, K, nil)
	}

	// cum[i][j] accumulates sum over h of Theta_h[i,j]^2.
	cum := make([][]float64, K)
	for i := range cum {
		cum[i] = make([]float64, K)
	}

	for h := 0; h <= horizon; h++ {
		for i := 0; i < K; i++ {
			for j := 0; j < K; j++ {
				t := theta[h].At(i, j)
				cum[i][j] += t * t
			}
		}
		for i := 0; i < K; i++ {
			total := 0.0
			for j := 0; j < K; j++ {
				total += cum[i][j]
			}
			if total == 0 {
				return nil, fmt.Errorf("var: zero forecast error variance for variable %d at horizon %d", i, h)
			}
			for j := 0; j < K; j++ {
				shares[i].Set(h, j, cum[i][j]/total)
			}
		}
	}

	nm := make([]string, K)
	copy(nm, v.Names)

	return &FEVDResult{Names: nm, Horizon: horizon, Shares: shares}, nil
}
