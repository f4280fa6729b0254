// Authors: Carlos Bello, Daniela Herrera
// Date: May 1st 2026
// Project: A VECM-based Cointegration Analysis of US Housing Prices and Consumer Sentiment
// Class: 02-613 at Caregie Mellon University

package vecm

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// SelectLag scores VAR orders 1..maxLag with the standard information
// criteria. Every candidate order is fitted on the same effective sample,
// the one a VAR(maxLag) would use, so the criteria are comparable across
// orders. Index i of each slice holds the score of order i+1.
func SelectLag(Y *mat.Dense, maxLag int, det Deterministic) (*LagSelection, error) {
	if Y == nil {
		return nil, fmt.Errorf("lagselect: data not provided")
	}
	if maxLag <= 0 {
		return nil, fmt.Errorf("lagselect: maxLag must be > 0, got %d", maxLag)
	}

	T, K := Y.Dims()
	Te := T - maxLag
	mMax := det.columns() + maxLag*K
	if Te <= mMax {
		return nil, fmt.Errorf("lagselect: %d effective observations cannot support maxLag %d with %d variables", Te, maxLag, K)
	}

	sel := &LagSelection{
		MaxLag: maxLag,
		AIC:    make([]float64, maxLag),
		BIC:    make([]float64, maxLag),
		HQ:     make([]float64, maxLag),
		FPE:    make([]float64, maxLag),
	}

	names := make([]string, K)
	for k := range names {
		names[k] = fmt.Sprintf("y%d", k+1)
	}

	for p := 1; p <= maxLag; p++ {
		sub := Y.Slice(maxLag-p, T, 0, K).(*mat.Dense)

		v, err := EstimateVAR(sub, names, ModelSpec{Lags: p, Deterministic: det})
		if err != nil {
			return nil, fmt.Errorf("lagselect: order %d: %v", p, err)
		}
		U, err := v.Residuals(sub)
		if err != nil {
			return nil, fmt.Errorf("lagselect: order %d: %v", p, err)
		}

		// Maximum-likelihood covariance, no degrees-of-freedom correction.
		sigma := covarianceOf(U, Te)

		logDet, sign := mat.LogDet(sigma)
		if sign <= 0 {
			return nil, fmt.Errorf("lagselect: order %d: residual covariance is not positive definite", p)
		}

		m := det.columns() + p*K
		te := float64(Te)
		params := float64(K * m)

		sel.AIC[p-1] = logDet + 2.0*params/te
		sel.BIC[p-1] = logDet + math.Log(te)*params/te
		sel.HQ[p-1] = logDet + 2.0*math.Log(math.Log(te))*params/te
		sel.FPE[p-1] = math.Pow((te+float64(m))/(te-float64(m)), float64(K)) * math.Exp(logDet)
	}

	sel.BestAIC = argminOrder(sel.AIC)
	sel.BestBIC = argminOrder(sel.BIC)
	sel.BestHQ = argminOrder(sel.HQ)
	sel.BestFPE = argminOrder(sel.FPE)

	return sel, nil
}

// argminOrder returns the 1-based index of the smallest score, taking the
// lowest order on ties.
func argminOrder(scores []float64) int {
	best := 0
	for i := 1; i < len(scores); i++ {
		if scores[i] < scores[best] {
			best = i
		}
	}
	return best + 1
}
