// Authors: Carlos Bello, Daniela Herrera
// Date: May 1st 2026
// Project: A VECM-based Cointegration Analysis of US Housing Prices and Consumer Sentiment
// Class: 02-613 at Caregie Mellon University

package stats

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// ACFResult holds sample autocorrelations up to a maximum lag.
type ACFResult struct {
	// Values[k] is the autocorrelation at lag k; Values[0] is always 1.
	Values []float64
	// White-noise band: correlations inside +-Bound are not distinguishable
	// from zero at the 5% level.
	Bound float64
	// Sample size
	N int
}

// ACF computes the sample autocorrelation function of x up to maxLag.
func ACF(x []float64, maxLag int) (*ACFResult, error) {
	n := len(x)
	if maxLag < 1 {
		return nil, fmt.Errorf("acf: maxLag must be >= 1, got %d", maxLag)
	}
	if n <= maxLag {
		return nil, fmt.Errorf("acf: need more than %d observations, got %d", maxLag, n)
	}

	mean := 0.0
	for _, v := range x {
		mean += v
	}
	mean /= float64(n)

	denom := 0.0
	for _, v := range x {
		denom += (v - mean) * (v - mean)
	}
	if denom < 1e-12 {
		return nil, fmt.Errorf("acf: series is constant")
	}

	values := make([]float64, maxLag+1)
	values[0] = 1.0
	for k := 1; k <= maxLag; k++ {
		num := 0.0
		for t := k; t < n; t++ {
			num += (x[t] - mean) * (x[t-k] - mean)
		}
		values[k] = num / denom
	}

	return &ACFResult{
		Values: values,
		Bound:  1.96 / math.Sqrt(float64(n)),
		N:      n,
	}, nil
}

// LjungBoxResult holds the portmanteau whiteness test.
type LjungBoxResult struct {
	Statistic float64
	PValue    float64
	Lags      int
	DF        int
}

// LjungBox tests the null that x is white noise, using autocorrelations up
// to maxLag. fitted is the number of estimated model parameters to subtract
// from the degrees of freedom when testing model residuals; pass 0 for a
// raw series.
func LjungBox(x []float64, maxLag, fitted int) (*LjungBoxResult, error) {
	if fitted < 0 {
		return nil, fmt.Errorf("ljung-box: fitted must be >= 0, got %d", fitted)
	}
	if maxLag <= fitted {
		return nil, fmt.Errorf("ljung-box: maxLag (%d) must exceed fitted parameters (%d)", maxLag, fitted)
	}

	acf, err := ACF(x, maxLag)
	if err != nil {
		return nil, fmt.Errorf("ljung-box: %v", err)
	}

	n := float64(acf.N)
	q := 0.0
	for k := 1; k <= maxLag; k++ {
		r := acf.Values[k]
		q += r * r / (n - float64(k))
	}
	q *= n * (n + 2.0)

	df := maxLag - fitted
	chi := distuv.ChiSquared{K: float64(df)}
	p := 1.0 - chi.CDF(q)
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}

	return &LjungBoxResult{
		Statistic: q,
		PValue:    p,
		Lags:      maxLag,
		DF:        df,
	}, nil
}
