// Authors: Carlos Bello, Daniela Herrera
// Date: May 1st 2026
// Project: A VECM-based Cointegration Analysis of US Housing Prices and Consumer Sentiment
// Class: 02-613 at Caregie Mellon University

package vecm

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Forecast iterates the VAR forward from the end of yHist and returns a
// steps x K matrix of point forecasts. The trend regressor, when present,
// continues the absolute observation index of yHist.
func (v *VAR) Forecast(yHist *mat.Dense, steps int) (*mat.Dense, error) {
	if v == nil || len(v.A) == 0 {
		return nil, fmt.Errorf("var: model not estimated")
	}
	if yHist == nil {
		return nil, fmt.Errorf("var: history not provided")
	}
	if steps <= 0 {
		return nil, fmt.Errorf("var: steps must be > 0, got %d", steps)
	}

	T, K := yHist.Dims()
	p := v.Model.Lags
	if T < p {
		return nil, fmt.Errorf("var: need at least p history rows: p = %d, T = %d", p, T)
	}

	// Rolling window of the p most recent rows, newest last.
	window := mat.NewDense(p, K, nil)
	for i := 0; i < p; i++ {
		for k := 0; k < K; k++ {
			window.Set(i, k, yHist.At(T-p+i, k))
		}
	}

	out := mat.NewDense(steps, K, nil)
	for s := 0; s < steps; s++ {
		for eq := 0; eq < K; eq++ {
			val := 0.0
			if v.C != nil {
				col := 0
				if v.Model.Deterministic.hasConst() {
					val += v.C.At(eq, col)
					col++
				}
				if v.Model.Deterministic.hasTrend() {
					val += v.C.At(eq, col) * float64(T+s+1)
				}
			}
			for j := 1; j <= p; j++ {
				Aj := v.A[j-1]
				for k := 0; k < K; k++ {
					val += Aj.At(eq, k) * window.At(p-j, k)
				}
			}
			out.Set(s, eq, val)
		}

		// Shift the window up and append the new forecast row.
		for i := 0; i < p-1; i++ {
			for k := 0; k < K; k++ {
				window.Set(i, k, window.At(i+1, k))
			}
		}
		for k := 0; k < K; k++ {
			window.Set(p-1, k, out.At(s, k))
		}
	}
	return out, nil
}
