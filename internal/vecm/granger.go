// Authors: Carlos Bello, Daniela Herrera
// Date: May 1st 2026
// Project: A VECM-based Cointegration Analysis of US Housing Prices and Consumer Sentiment
// Class: 02-613 at Caregie Mellon University

package vecm

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// grangerSignificance is the rejection threshold applied to the F-test
// p-value when flagging a causal direction.
const grangerSignificance = 0.05

// GrangerCausality tests whether the lags of the cause variable improve
// the prediction of the effect variable beyond its own lags and the lags
// of the remaining variables. The test compares the residual sums of
// squares of the restricted and unrestricted level regressions with an
// F statistic on (lags, T_e - m) degrees of freedom.
func GrangerCausality(Y *mat.Dense, names []string, lags int, det Deterministic, causeIdx, effectIdx int) (*GrangerResult, error) {
	if Y == nil {
		return nil, fmt.Errorf("granger: data not provided")
	}
	if lags <= 0 {
		return nil, fmt.Errorf("granger: lags must be > 0, got %d", lags)
	}

	T, K := Y.Dims()
	if causeIdx < 0 || causeIdx >= K || effectIdx < 0 || effectIdx >= K {
		return nil, fmt.Errorf("granger: variable index out of range for %d variables", K)
	}
	if causeIdx == effectIdx {
		return nil, fmt.Errorf("granger: cause and effect must differ")
	}
	if len(names) != K {
		return nil, fmt.Errorf("granger: %d names for %d columns", len(names), K)
	}

	Te := T - lags
	mU := det.columns() + lags*K
	if Te <= mU {
		return nil, fmt.Errorf("granger: %d effective observations cannot support %d regressors", Te, mU)
	}

	y := mat.NewDense(Te, 1, nil)
	for t := 0; t < Te; t++ {
		y.Set(t, 0, Y.At(t+lags, effectIdx))
	}

	rssU, err := grangerRSS(Y, y, lags, det, -1)
	if err != nil {
		return nil, err
	}
	rssR, err := grangerRSS(Y, y, lags, det, causeIdx)
	if err != nil {
		return nil, err
	}
	if rssU <= 0 {
		return nil, fmt.Errorf("granger: unrestricted regression fits perfectly, F statistic undefined")
	}

	df1 := float64(lags)
	df2 := float64(Te - mU)

	f := ((rssR - rssU) / df1) / (rssU / df2)
	if f < 0 {
		f = 0
	}

	dist := distuv.F{D1: df1, D2: df2}
	p := 1.0 - dist.CDF(f)
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}

	return &GrangerResult{
		Cause:       names[causeIdx],
		Effect:      names[effectIdx],
		FStatistic:  f,
		PValue:      p,
		Lags:        lags,
		Significant: p < grangerSignificance,
	}, nil
}

// GrangerMatrix runs the causality test for every ordered pair of
// variables and returns the results in row-major order of (cause, effect).
func GrangerMatrix(Y *mat.Dense, names []string, lags int, det Deterministic) ([]*GrangerResult, error) {
	if Y == nil {
		return nil, fmt.Errorf("granger: data not provided")
	}
	_, K := Y.Dims()

	out := make([]*GrangerResult, 0, K*(K-1))
	for cause := 0; cause < K; cause++ {
		for effect := 0; effect < K; effect++ {
			if cause == effect {
				continue
			}
			res, err := GrangerCausality(Y, names, lags, det, cause, effect)
			if err != nil {
				return nil, err
			}
			out = append(out, res)
		}
	}
	return out, nil
}

// grangerRSS fits the level regression of y on the deterministic terms and
// the lag blocks, excluding every lag of the variable at dropIdx when
// dropIdx >= 0, and returns the residual sum of squares.
func grangerRSS(Y, y *mat.Dense, lags int, det Deterministic, dropIdx int) (float64, error) {
	T, K := Y.Dims()
	Te := T - lags

	kept := K
	if dropIdx >= 0 {
		kept = K - 1
	}
	m := det.columns() + lags*kept

	X := mat.NewDense(Te, m, nil)
	for t := 0; t < Te; t++ {
		col := 0
		if det.hasConst() {
			X.Set(t, col, 1.0)
			col++
		}
		if det.hasTrend() {
			X.Set(t, col, float64(t+lags+1))
			col++
		}
		for j := 1; j <= lags; j++ {
			for k := 0; k < K; k++ {
				if k == dropIdx {
					continue
				}
				X.Set(t, col, Y.At(t+lags-j, k))
				col++
			}
		}
	}

	B, err := solveLS(X, y)
	if err != nil {
		return 0, fmt.Errorf("granger: %v", err)
	}

	var fitted mat.Dense
	fitted.Mul(X, B)

	rss := 0.0
	for t := 0; t < Te; t++ {
		r := y.At(t, 0) - fitted.At(t, 0)
		rss += r * r
	}
	if math.IsNaN(rss) || math.IsInf(rss, 0) {
		return 0, fmt.Errorf("granger: residual sum of squares is not finite")
	}
	return rss, nil
}
