// Authors: Carlos Bello, Daniela Herrera
// Date: May 1st 2026
// Project: A VECM-based Cointegration Analysis of US Housing Prices and Consumer Sentiment
// Class: 02-613 at Caregie Mellon University

package stats

import (
	"fmt"
	"math"
)

// Regression selects the null model of the KPSS test.
type Regression int

const (
	// RegressionLevel tests stationarity around a constant mean.
	RegressionLevel Regression = iota
	// RegressionTrend tests stationarity around a linear trend.
	RegressionTrend
)

func (r Regression) String() string {
	switch r {
	case RegressionLevel:
		return "level"
	case RegressionTrend:
		return "trend"
	default:
		return "unknown"
	}
}

// KPSSResult holds the outcome of one KPSS test.
type KPSSResult struct {
	Statistic  float64
	PValue     float64
	Lags       int
	Regression Regression
}

// Critical values at 10%, 5%, 2.5% and 1% (Kwiatkowski et al. 1992, table 1).
var (
	kpssCritLevel = [4]float64{0.347, 0.463, 0.574, 0.739}
	kpssCritTrend = [4]float64{0.119, 0.146, 0.176, 0.216}
	kpssPValues   = [4]float64{0.10, 0.05, 0.025, 0.01}
)

// CriticalValues returns the 10%/5%/2.5%/1% critical values for the
// regression used in this result.
func (r *KPSSResult) CriticalValues() [4]float64 {
	if r.Regression == RegressionTrend {
		return kpssCritTrend
	}
	return kpssCritLevel
}

// KPSS runs the Kwiatkowski-Phillips-Schmidt-Shin test. The null hypothesis
// is stationarity, so a small p-value is evidence of a unit root.
//
// lags sets the Bartlett-kernel bandwidth for the long-run variance; pass a
// negative value to use the data-driven rule floor(12*(n/100)^0.25).
// The reported p-value is interpolated from the published critical-value
// table and therefore clamped to [0.01, 0.10].
func KPSS(x []float64, regression Regression, lags int) (*KPSSResult, error) {
	n := len(x)
	if n < 4 {
		return nil, fmt.Errorf("kpss: need at least 4 observations, got %d", n)
	}
	for i, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("kpss: non-finite value at position %d", i)
		}
	}

	if lags < 0 {
		lags = int(12.0 * math.Pow(float64(n)/100.0, 0.25))
	}
	if lags >= n {
		return nil, fmt.Errorf("kpss: lags (%d) must be smaller than the sample size (%d)", lags, n)
	}

	e, err := kpssResiduals(x, regression)
	if err != nil {
		return nil, err
	}

	// gamma_0, the plain residual variance
	gamma0 := 0.0
	for _, v := range e {
		gamma0 += v * v
	}
	gamma0 /= float64(n)

	// A constant series has no variance to test; the statistic would be 0/0.
	if gamma0 < 1e-12 {
		return &KPSSResult{Statistic: 0, PValue: kpssPValues[0], Lags: lags, Regression: regression}, nil
	}

	// Bartlett-kernel long-run variance
	s2 := gamma0
	for l := 1; l <= lags; l++ {
		gamma := 0.0
		for t := l; t < n; t++ {
			gamma += e[t] * e[t-l]
		}
		gamma /= float64(n)
		w := 1.0 - float64(l)/float64(lags+1)
		s2 += 2.0 * w * gamma
	}
	if s2 <= 0 {
		// The kernel sum can turn non-positive for strongly negatively
		// autocorrelated residuals; such residuals are stationary.
		return &KPSSResult{Statistic: 0, PValue: kpssPValues[0], Lags: lags, Regression: regression}, nil
	}

	// Partial sums of residuals
	eta := 0.0
	run := 0.0
	for _, v := range e {
		run += v
		eta += run * run
	}
	eta /= float64(n) * float64(n)

	stat := eta / s2

	return &KPSSResult{
		Statistic:  stat,
		PValue:     kpssPValue(stat, regression),
		Lags:       lags,
		Regression: regression,
	}, nil
}

// kpssResiduals removes the deterministic part under the null: the mean for
// a level test, a fitted linear trend for a trend test.
func kpssResiduals(x []float64, regression Regression) ([]float64, error) {
	n := len(x)

	if regression == RegressionLevel {
		mean := 0.0
		for _, v := range x {
			mean += v
		}
		mean /= float64(n)

		e := make([]float64, n)
		for i, v := range x {
			e[i] = v - mean
		}
		return e, nil
	}

	trend := make([]float64, n)
	for i := range trend {
		trend[i] = float64(i + 1)
	}
	fit, err := OLS(x, [][]float64{trend}, true)
	if err != nil {
		return nil, fmt.Errorf("kpss: detrending failed: %v", err)
	}
	return fit.Residuals, nil
}

// kpssPValue interpolates the p-value linearly between tabulated critical
// values, clamping outside the table.
func kpssPValue(stat float64, regression Regression) float64 {
	crit := kpssCritLevel
	if regression == RegressionTrend {
		crit = kpssCritTrend
	}

	if stat <= crit[0] {
		return kpssPValues[0]
	}
	if stat >= crit[3] {
		return kpssPValues[3]
	}
	for i := 0; i < 3; i++ {
		if stat <= crit[i+1] {
			frac := (stat - crit[i]) / (crit[i+1] - crit[i])
			return kpssPValues[i] + frac*(kpssPValues[i+1]-kpssPValues[i])
		}
	}
	return kpssPValues[3]
}
